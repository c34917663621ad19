package integrity

import (
	"fmt"
	"sync"
	"time"

	"github.com/valkit/valkit/logging"
	"github.com/valkit/valkit/value"
)

// ViolationKind classifies an integrity violation.
type ViolationKind int

const (
	// ChecksumMismatch reports a document whose structural checksum differs
	// from the one registered for its key.
	ChecksumMismatch ViolationKind = iota
	// ReferentialIntegrityViolation reports a foreign key whose value does
	// not match the expected referenced value.
	ReferentialIntegrityViolation
	// DataConsistencyViolation reports a structural consistency problem such
	// as a circular reference.
	DataConsistencyViolation
	// ConstraintViolation reports a failed custom constraint.
	ConstraintViolation
	// FormatViolation reports a string that does not match its declared
	// format.
	FormatViolation
	// DuplicateKeyViolation reports a duplicate or missing unique value.
	DuplicateKeyViolation
	// NullConstraintViolation reports a null under a NotNull constraint.
	NullConstraintViolation
	// RangeViolation reports a numeric value outside its declared bounds.
	RangeViolation
)

// String returns the canonical name of the violation kind.
func (k ViolationKind) String() string {
	switch k {
	case ChecksumMismatch:
		return "checksum_mismatch"
	case ReferentialIntegrityViolation:
		return "referential_integrity_violation"
	case DataConsistencyViolation:
		return "data_consistency_violation"
	case ConstraintViolation:
		return "constraint_violation"
	case FormatViolation:
		return "format_violation"
	case DuplicateKeyViolation:
		return "duplicate_key_violation"
	case NullConstraintViolation:
		return "null_constraint_violation"
	case RangeViolation:
		return "range_violation"
	default:
		return "unknown"
	}
}

// Severity grades an integrity violation on a four-level scale. Each level
// carries a fixed consistency score penalty.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// String returns the canonical name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// penalty is the consistency score reduction for one violation.
func (s Severity) penalty() float64 {
	switch s {
	case SeverityLow:
		return 5
	case SeverityMedium:
		return 15
	case SeverityHigh:
		return 30
	case SeverityCritical:
		return 50
	default:
		return 0
	}
}

// Violation is a single integrity finding.
type Violation struct {
	Kind       ViolationKind
	Path       string
	Message    string
	Severity   Severity
	Suggestion string
}

// String returns a formatted representation of the violation.
func (v Violation) String() string {
	return fmt.Sprintf("[%s] %s: %s", v.Severity, v.Path, v.Message)
}

// ConstraintKind identifies the check an integrity Constraint performs.
type ConstraintKind int

const (
	// NotNull forbids explicit null at the constraint path.
	NotNull ConstraintKind = iota
	// Unique requires a distinct non-null value at the constraint path.
	// Genuine cross-record uniqueness needs caller-supplied state; see
	// WithSeenIndex.
	Unique
	// ForeignKey requires the value at the path to equal the constraint's
	// expected referenced value.
	ForeignKey
	// Range bounds a numeric value; the constraint value is an object with
	// optional "min" and "max" fields.
	Range
	// Format checks a string against a named format (email, url, date,
	// uuid). Unknown format names pass.
	Format
	// Custom dispatches to a predicate registered under the constraint name.
	Custom
)

// String returns the canonical name of the constraint kind.
func (k ConstraintKind) String() string {
	switch k {
	case NotNull:
		return "not_null"
	case Unique:
		return "unique"
	case ForeignKey:
		return "foreign_key"
	case Range:
		return "range"
	case Format:
		return "format"
	case Custom:
		return "custom"
	default:
		return "unknown"
	}
}

// Constraint is one declarative integrity check. Path addresses the checked
// value by dot traversal from the document root ("root" or "" is the whole
// document); a path that resolves to nothing skips the constraint.
type Constraint struct {
	Name     string
	Kind     ConstraintKind
	Path     string
	Value    value.Value
	Severity Severity
}

// Result contains the outcome of one integrity check.
type Result struct {
	// Valid is true iff Violations is empty.
	Valid bool
	// Violations contains all findings, including any checksum mismatch.
	Violations []Violation
	// ChecksumValid is false only when a registered checksum did not match.
	ChecksumValid bool
	// ConsistencyScore starts at 100 and is reduced per violation by
	// severity, floored at 0.
	ConsistencyScore float64
	// Elapsed is the time taken by the check.
	Elapsed time.Duration
}

// Predicate decides whether a value satisfies a Custom integrity constraint.
type Predicate func(value.Value) bool

// Checker verifies document integrity: registered checksums, declarative
// constraints, and structural consistency.
//
// Checksums, constraints, and predicates are accumulated by explicit
// registration and persist until cleared. A RWMutex serializes writers;
// Check calls only take read locks.
type Checker struct {
	mu          sync.RWMutex
	checksums   map[string]string
	constraints []Constraint
	predicates  map[string]Predicate
	logger      logging.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger logging.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a new integrity checker.
func New(opts ...Option) *Checker {
	c := &Checker{
		checksums:  make(map[string]string),
		predicates: make(map[string]Predicate),
		logger:     logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddChecksum registers the expected checksum for a document key. Use
// value.Checksum to compute one from a known-good document.
func (c *Checker) AddChecksum(key, checksum string) {
	c.mu.Lock()
	c.checksums[key] = checksum
	c.mu.Unlock()
	c.logger.Info("checksum registered", "key", key)
}

// Checksums returns a copy of the registered checksums by key.
func (c *Checker) Checksums() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]string, len(c.checksums))
	for k, v := range c.checksums {
		out[k] = v
	}
	return out
}

// ClearChecksums removes all registered checksums.
func (c *Checker) ClearChecksums() {
	c.mu.Lock()
	c.checksums = make(map[string]string)
	c.mu.Unlock()
}

// AddConstraint appends an integrity constraint.
func (c *Checker) AddConstraint(con Constraint) {
	c.mu.Lock()
	c.constraints = append(c.constraints, con)
	c.mu.Unlock()
	c.logger.Info("constraint added", "name", con.Name, "kind", con.Kind.String())
}

// Constraints returns a copy of the registered constraints.
func (c *Checker) Constraints() []Constraint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Constraint, len(c.constraints))
	copy(out, c.constraints)
	return out
}

// ClearConstraints removes all registered constraints.
func (c *Checker) ClearConstraints() {
	c.mu.Lock()
	c.constraints = nil
	c.mu.Unlock()
}

// RegisterPredicate binds a predicate to a Custom constraint name. Custom
// constraints with no registered predicate pass unconditionally.
func (c *Checker) RegisterPredicate(name string, p Predicate) {
	c.mu.Lock()
	c.predicates[name] = p
	c.mu.Unlock()
}

// CheckOption adjusts a single Check call.
type CheckOption func(*checkState)

// WithSeenIndex supplies previously seen values per constraint path for
// Unique constraints, keyed by path. A Unique value already present in its
// path's seen set is a violation. Without a seen index, Unique only flags
// explicit nulls; real uniqueness needs this caller-owned state.
func WithSeenIndex(seen map[string][]value.Value) CheckOption {
	return func(st *checkState) {
		st.seen = seen
	}
}

type checkState struct {
	seen map[string][]value.Value
}

// Check verifies the integrity of a document registered under key. The key
// selects the expected checksum, if any; constraint and consistency checks
// run unconditionally. Findings are reported in the Result; the call itself
// never fails.
func (c *Checker) Check(doc value.Value, key string, opts ...CheckOption) *Result {
	start := time.Now()

	var st checkState
	for _, opt := range opts {
		opt(&st)
	}

	c.mu.RLock()
	expected, hasChecksum := c.checksums[key]
	constraints := c.constraints
	c.mu.RUnlock()

	result := &Result{ChecksumValid: true}

	if hasChecksum {
		actual := value.Checksum(doc)
		if actual != expected {
			result.ChecksumValid = false
			result.Violations = append(result.Violations, Violation{
				Kind:       ChecksumMismatch,
				Path:       value.RootPath,
				Message:    fmt.Sprintf("Checksum mismatch: expected %s, got %s", expected, actual),
				Severity:   SeverityCritical,
				Suggestion: "Verify data source and recalculate checksum",
			})
		}
	}

	for _, con := range constraints {
		if v := c.checkConstraint(doc, con, &st); v != nil {
			result.Violations = append(result.Violations, *v)
		}
	}

	result.Violations = append(result.Violations, checkConsistency(doc)...)

	result.Valid = len(result.Violations) == 0
	result.ConsistencyScore = consistencyScore(result.Violations)
	result.Elapsed = time.Since(start)

	c.logger.Info("integrity check completed",
		"key", key,
		"violations", len(result.Violations),
		"score", result.ConsistencyScore,
		"elapsed", result.Elapsed)
	return result
}

func (c *Checker) checkConstraint(doc value.Value, con Constraint, st *checkState) *Violation {
	target, ok := value.At(doc, con.Path)
	if !ok {
		return nil
	}

	switch con.Kind {
	case NotNull:
		if target.IsNull() {
			return &Violation{
				Kind:       NullConstraintViolation,
				Path:       con.Path,
				Message:    fmt.Sprintf("Field '%s' cannot be null", con.Path),
				Severity:   con.Severity,
				Suggestion: "Provide a non-null value for this field",
			}
		}
	case Unique:
		if target.IsNull() {
			return &Violation{
				Kind:       DuplicateKeyViolation,
				Path:       con.Path,
				Message:    fmt.Sprintf("Field '%s' must be unique", con.Path),
				Severity:   con.Severity,
				Suggestion: "Ensure the value is unique across all records",
			}
		}
		if st.seen != nil {
			for _, prior := range st.seen[con.Path] {
				if value.Equal(target, prior) {
					return &Violation{
						Kind:       DuplicateKeyViolation,
						Path:       con.Path,
						Message:    fmt.Sprintf("Field '%s' duplicates a previously seen value", con.Path),
						Severity:   con.Severity,
						Suggestion: "Ensure the value is unique across all records",
					}
				}
			}
		}
	case ForeignKey:
		if !con.Value.IsNull() && !value.Equal(target, con.Value) {
			return &Violation{
				Kind:       ReferentialIntegrityViolation,
				Path:       con.Path,
				Message:    fmt.Sprintf("Foreign key '%s' references non-existent value", con.Path),
				Severity:   con.Severity,
				Suggestion: "Ensure the referenced value exists",
			}
		}
	case Range:
		return checkRange(target, con)
	case Format:
		return checkFormat(target, con)
	case Custom:
		c.mu.RLock()
		p, registered := c.predicates[con.Name]
		c.mu.RUnlock()
		if registered && !p(target) {
			return &Violation{
				Kind:       ConstraintViolation,
				Path:       con.Path,
				Message:    fmt.Sprintf("Custom constraint '%s' failed", con.Name),
				Severity:   con.Severity,
				Suggestion: "Adjust the value to satisfy the custom constraint",
			}
		}
	}
	return nil
}

func checkRange(target value.Value, con Constraint) *Violation {
	f, ok := target.AsNumber()
	if !ok {
		return nil
	}
	bounds, ok := con.Value.AsObject()
	if !ok {
		return nil
	}
	if min, ok := bounds["min"]; ok {
		if m, ok := min.AsNumber(); ok && f < m {
			return &Violation{
				Kind:       RangeViolation,
				Path:       con.Path,
				Message:    fmt.Sprintf("Value %s is below minimum %s", value.FormatNumber(f), value.FormatNumber(m)),
				Severity:   con.Severity,
				Suggestion: "Increase the value to meet the minimum requirement",
			}
		}
	}
	if max, ok := bounds["max"]; ok {
		if m, ok := max.AsNumber(); ok && f > m {
			return &Violation{
				Kind:       RangeViolation,
				Path:       con.Path,
				Message:    fmt.Sprintf("Value %s exceeds maximum %s", value.FormatNumber(f), value.FormatNumber(m)),
				Severity:   con.Severity,
				Suggestion: "Decrease the value to meet the maximum requirement",
			}
		}
	}
	return nil
}

func checkFormat(target value.Value, con Constraint) *Violation {
	s, ok := target.AsString()
	if !ok {
		return nil
	}
	format, ok := con.Value.AsString()
	if !ok {
		return nil
	}
	if validFormat(s, format) {
		return nil
	}
	return &Violation{
		Kind:       FormatViolation,
		Path:       con.Path,
		Message:    fmt.Sprintf("Value '%s' does not match format '%s'", s, format),
		Severity:   con.Severity,
		Suggestion: fmt.Sprintf("Update the value to match format '%s'", format),
	}
}

// checkConsistency runs the unconditional structural checks: a top-level
// duplicate key probe (vacuous under the object map invariant) and a
// circular reference probe. Both run on every Check call.
func checkConsistency(doc value.Value) []Violation {
	var violations []Violation

	if _, ok := doc.AsObject(); ok {
		seen := make(map[string]struct{})
		for _, k := range doc.Keys() {
			if _, dup := seen[k]; dup {
				violations = append(violations, Violation{
					Kind:       DuplicateKeyViolation,
					Path:       value.RootPath,
					Message:    fmt.Sprintf("Duplicate key found: %s", k),
					Severity:   SeverityMedium,
					Suggestion: "Remove duplicate keys",
				})
			}
			seen[k] = struct{}{}
		}
	}

	if v := checkCircular(doc, 0); v != nil {
		violations = append(violations, *v)
	}

	return violations
}

// maxNestingDepth bounds the circular reference probe. The value tree is
// immutable, so a genuine cycle cannot be built; nesting past this depth is
// reported as one.
const maxNestingDepth = 1000

func checkCircular(v value.Value, depth int) *Violation {
	if depth > maxNestingDepth {
		return &Violation{
			Kind:       DataConsistencyViolation,
			Path:       value.RootPath,
			Message:    fmt.Sprintf("Possible circular reference: nesting exceeds %d levels", maxNestingDepth),
			Severity:   SeverityHigh,
			Suggestion: "Flatten the document structure",
		}
	}
	if elems, ok := v.AsArray(); ok {
		for _, e := range elems {
			if viol := checkCircular(e, depth+1); viol != nil {
				return viol
			}
		}
	}
	if fields, ok := v.AsObject(); ok {
		for _, k := range v.Keys() {
			if viol := checkCircular(fields[k], depth+1); viol != nil {
				return viol
			}
		}
	}
	return nil
}

// consistencyScore reduces 100 by each violation's severity penalty, floored
// at 0.
func consistencyScore(violations []Violation) float64 {
	score := 100.0
	for _, v := range violations {
		score -= v.Severity.penalty()
	}
	if score < 0 {
		return 0
	}
	return score
}
