package reporter

import (
	"strings"
	"sync"
	"time"

	"github.com/valkit/valkit/logging"
	"github.com/valkit/valkit/value"
)

// ErrorType classifies a normalized validation error. This is the shared
// vocabulary callers map the schema, typecheck, and integrity findings into
// for aggregation.
type ErrorType int

const (
	SchemaValidation ErrorType = iota
	TypeValidation
	IntegrityViolation
	ConstraintViolation
	FormatError
	RequiredFieldMissing
	InvalidValue
	CustomValidation
)

// String returns the canonical name of the error type.
func (t ErrorType) String() string {
	switch t {
	case SchemaValidation:
		return "schema_validation"
	case TypeValidation:
		return "type_validation"
	case IntegrityViolation:
		return "integrity_violation"
	case ConstraintViolation:
		return "constraint_violation"
	case FormatError:
		return "format_error"
	case RequiredFieldMissing:
		return "required_field_missing"
	case InvalidValue:
		return "invalid_value"
	case CustomValidation:
		return "custom_validation"
	default:
		return "unknown"
	}
}

// Severity grades a normalized error.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityCritical
)

// String returns the canonical name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Action names what a suggestion proposes doing.
type Action string

const (
	ActionFix      Action = "fix"
	ActionReplace  Action = "replace"
	ActionAdd      Action = "add"
	ActionRemove   Action = "remove"
	ActionConvert  Action = "convert"
	ActionValidate Action = "validate"
)

// CustomAction labels an action outside the fixed set.
func CustomAction(label string) Action {
	return Action("custom:" + label)
}

// Suggestion is a proposed fix for one or more errors.
type Suggestion struct {
	Title       string
	Description string
	Action      Action
	// Confidence is the engine's certainty in the suggestion, 0.0 to 1.0.
	Confidence float64
}

// Error is a normalized validation error in the shared reporter shape.
type Error struct {
	Type       ErrorType
	Path       string
	Message    string
	Severity   Severity
	Suggestion *Suggestion
	// Context optionally carries the offending value.
	Context value.Value
	// Timestamp records when the error was observed; Add fills it when zero.
	Timestamp time.Time
}

// Summary aggregates counts over the collected errors.
type Summary struct {
	TotalErrors    int
	CriticalErrors int
	HighErrors     int
	Warnings       int
	Info           int
	// ErrorTypes counts errors per type name.
	ErrorTypes map[string]int
	// SeverityDistribution counts errors per severity name.
	SeverityDistribution map[string]int
	HasErrors            bool
	HasCriticalErrors    bool
}

// Reporter collects normalized validation errors, summarizes them, and
// proposes fixes. A mutex serializes accumulation; read operations copy
// under the lock.
type Reporter struct {
	mu       sync.RWMutex
	errors   []Error
	rules    []SuggestionRule
	patterns []ErrorPattern
	logger   logging.Logger
	now      func() time.Time
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger logging.Logger) Option {
	return func(r *Reporter) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) {
		if now != nil {
			r.now = now
		}
	}
}

// New creates an empty error reporter.
func New(opts ...Option) *Reporter {
	r := &Reporter{
		logger: logging.NopLogger{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add appends one error, stamping its timestamp if unset.
func (r *Reporter) Add(e Error) {
	if e.Timestamp.IsZero() {
		e.Timestamp = r.now()
	}
	r.mu.Lock()
	r.errors = append(r.errors, e)
	r.mu.Unlock()
	r.logger.Debug("error added", "type", e.Type.String(), "path", e.Path)
}

// AddAll appends a batch of errors in order.
func (r *Reporter) AddAll(errs []Error) {
	for _, e := range errs {
		r.Add(e)
	}
}

// Errors returns a copy of all collected errors in accumulation order.
func (r *Reporter) Errors() []Error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Error, len(r.errors))
	copy(out, r.errors)
	return out
}

// ByType returns the errors of one type.
func (r *Reporter) ByType(t ErrorType) []Error {
	return r.filter(func(e Error) bool { return e.Type == t })
}

// BySeverity returns the errors of one severity.
func (r *Reporter) BySeverity(s Severity) []Error {
	return r.filter(func(e Error) bool { return e.Severity == s })
}

// ByPath returns the errors whose path contains the given substring.
func (r *Reporter) ByPath(path string) []Error {
	return r.filter(func(e Error) bool {
		return strings.Contains(e.Path, path)
	})
}

func (r *Reporter) filter(keep func(Error) bool) []Error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Error
	for _, e := range r.errors {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Summary computes aggregate counts over the collected errors.
func (r *Reporter) Summary() Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Summary{
		TotalErrors:          len(r.errors),
		ErrorTypes:           make(map[string]int),
		SeverityDistribution: make(map[string]int),
	}
	for _, e := range r.errors {
		s.ErrorTypes[e.Type.String()]++
		s.SeverityDistribution[e.Severity.String()]++
		switch e.Severity {
		case SeverityCritical:
			s.CriticalErrors++
		case SeverityError:
			s.HighErrors++
		case SeverityWarning:
			s.Warnings++
		case SeverityInfo:
			s.Info++
		}
	}
	s.HasErrors = s.TotalErrors > 0
	s.HasCriticalErrors = s.CriticalErrors > 0
	return s
}

// Clear drops all collected errors. Registered rules and patterns survive.
func (r *Reporter) Clear() {
	r.mu.Lock()
	r.errors = nil
	r.mu.Unlock()
	r.logger.Info("errors cleared")
}

// Export renders the collected errors and their summary as a value tree.
func (r *Reporter) Export() value.Value {
	errs := r.Errors()
	summary := r.Summary()

	out := make([]value.Value, 0, len(errs))
	for _, e := range errs {
		fields := map[string]value.Value{
			"error_type": value.String(e.Type.String()),
			"path":       value.String(e.Path),
			"message":    value.String(e.Message),
			"severity":   value.String(e.Severity.String()),
			"timestamp":  value.String(e.Timestamp.Format(time.RFC3339)),
		}
		if e.Suggestion != nil {
			fields["suggestion"] = value.Object(map[string]value.Value{
				"title":       value.String(e.Suggestion.Title),
				"description": value.String(e.Suggestion.Description),
				"action":      value.String(string(e.Suggestion.Action)),
				"confidence":  value.Number(e.Suggestion.Confidence),
			})
		}
		if !e.Context.IsNull() {
			fields["context"] = e.Context
		}
		out = append(out, value.Object(fields))
	}

	types := make(map[string]value.Value, len(summary.ErrorTypes))
	for k, n := range summary.ErrorTypes {
		types[k] = value.Int(n)
	}
	severities := make(map[string]value.Value, len(summary.SeverityDistribution))
	for k, n := range summary.SeverityDistribution {
		severities[k] = value.Int(n)
	}

	return value.Object(map[string]value.Value{
		"errors": value.Array(out...),
		"summary": value.Object(map[string]value.Value{
			"total_errors":          value.Int(summary.TotalErrors),
			"critical_errors":       value.Int(summary.CriticalErrors),
			"high_errors":           value.Int(summary.HighErrors),
			"warnings":              value.Int(summary.Warnings),
			"info":                  value.Int(summary.Info),
			"error_types":           value.Object(types),
			"severity_distribution": value.Object(severities),
			"has_errors":            value.Bool(summary.HasErrors),
			"has_critical_errors":   value.Bool(summary.HasCriticalErrors),
		}),
	})
}
