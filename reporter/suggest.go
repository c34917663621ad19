package reporter

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/valkit/valkit/value"
)

var titleCaser = cases.Title(language.English)

// titleFor renders an error type as a suggestion title, e.g.
// "Fix Schema Validation".
func titleFor(t ErrorType) string {
	return "Fix " + titleCaser.String(strings.ReplaceAll(t.String(), "_", " "))
}

// SuggestionRule maps errors whose message or path contains Pattern to a
// hand-written suggestion template. Rules are checked in registration order
// and take precedence over the generic per-type suggestions.
type SuggestionRule struct {
	Pattern    string
	Template   string
	Action     Action
	Confidence float64
}

// AddSuggestionRule registers a pattern rule for suggestion generation.
func (r *Reporter) AddSuggestionRule(rule SuggestionRule) {
	r.mu.Lock()
	r.rules = append(r.rules, rule)
	r.mu.Unlock()
}

// Suggestions proposes fixes for the collected errors. Per error, the first
// matching registered rule wins; otherwise a generic suggestion keyed by the
// error type is used. The returned list is sorted by title with equal-titled
// suggestions collapsed.
func (r *Reporter) Suggestions() []Suggestion {
	r.mu.RLock()
	errs := make([]Error, len(r.errors))
	copy(errs, r.errors)
	rules := make([]SuggestionRule, len(r.rules))
	copy(rules, r.rules)
	r.mu.RUnlock()

	suggestions := make([]Suggestion, 0, len(errs))
	for _, e := range errs {
		suggestions = append(suggestions, suggestFor(e, rules))
	}

	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].Title < suggestions[j].Title
	})
	deduped := suggestions[:0]
	for i, s := range suggestions {
		if i == 0 || s.Title != deduped[len(deduped)-1].Title {
			deduped = append(deduped, s)
		}
	}
	return deduped
}

func suggestFor(e Error, rules []SuggestionRule) Suggestion {
	for _, rule := range rules {
		if strings.Contains(e.Message, rule.Pattern) || strings.Contains(e.Path, rule.Pattern) {
			return Suggestion{
				Title:       titleFor(e.Type),
				Description: rule.Template,
				Action:      rule.Action,
				Confidence:  rule.Confidence,
			}
		}
	}
	return genericSuggestion(e.Type)
}

// genericSuggestion is the fixed fallback suggestion per error type.
func genericSuggestion(t ErrorType) Suggestion {
	switch t {
	case SchemaValidation:
		return Suggestion{
			Title:       titleFor(t),
			Description: "Update the data to match the required schema",
			Action:      ActionFix,
			Confidence:  0.7,
		}
	case TypeValidation:
		return Suggestion{
			Title:       titleFor(t),
			Description: "Convert the value to the expected type",
			Action:      ActionConvert,
			Confidence:  0.8,
		}
	case RequiredFieldMissing:
		return Suggestion{
			Title:       "Add Required Field",
			Description: "Add the missing required field",
			Action:      ActionAdd,
			Confidence:  0.9,
		}
	case ConstraintViolation:
		return Suggestion{
			Title:       titleFor(t),
			Description: "Update the value to meet the constraint requirements",
			Action:      ActionFix,
			Confidence:  0.8,
		}
	case FormatError:
		return Suggestion{
			Title:       titleFor(t),
			Description: "Replace the value with one in the expected format",
			Action:      ActionReplace,
			Confidence:  0.8,
		}
	default:
		return Suggestion{
			Title:       "Fix Validation Error",
			Description: "Review and correct the validation error",
			Action:      ActionValidate,
			Confidence:  0.5,
		}
	}
}

// ErrorPattern synthesizes an error when its substring appears in a scanned
// string value.
type ErrorPattern struct {
	Pattern    string
	Type       ErrorType
	Severity   Severity
	Suggestion string
}

// AddErrorPattern registers a pattern for DetectErrors scanning.
func (r *Reporter) AddErrorPattern(p ErrorPattern) {
	r.mu.Lock()
	r.patterns = append(r.patterns, p)
	r.mu.Unlock()
	r.logger.Info("error pattern added", "pattern", p.Pattern)
}

// DetectErrors scans a document against the registered error patterns and
// adds a synthesized error for every match. The scan is shallow: only a
// string-typed document root is inspected, and the path parameter labels the
// synthesized errors rather than steering any descent.
func (r *Reporter) DetectErrors(doc value.Value, path string) {
	s, ok := doc.AsString()
	if !ok {
		return
	}

	r.mu.RLock()
	patterns := make([]ErrorPattern, len(r.patterns))
	copy(patterns, r.patterns)
	r.mu.RUnlock()

	for _, p := range patterns {
		if !strings.Contains(s, p.Pattern) {
			continue
		}
		r.Add(Error{
			Type:     p.Type,
			Path:     path,
			Message:  fmt.Sprintf("Pattern '%s' detected in data", p.Pattern),
			Severity: p.Severity,
			Suggestion: &Suggestion{
				Title:       "Fix Pattern Match",
				Description: p.Suggestion,
				Action:      ActionFix,
				Confidence:  0.8,
			},
			Context: doc,
		})
	}
}
