package typecheck

import (
	"fmt"

	"github.com/valkit/valkit/internal/regexcache"
	"github.com/valkit/valkit/value"
)

// ConstraintKind identifies the check a Constraint performs.
type ConstraintKind int

const (
	// Required flags explicit null values.
	Required ConstraintKind = iota
	// MinLength bounds the character count of string values.
	MinLength
	// MaxLength bounds the character count of string values.
	MaxLength
	// MinValue bounds numeric values from below.
	MinValue
	// MaxValue bounds numeric values from above.
	MaxValue
	// Pattern matches string values against a regular expression.
	Pattern
	// Enum requires the value to appear in an allowed set.
	Enum
	// Custom dispatches to a predicate registered under the constraint name.
	Custom
)

// String returns the canonical name of the constraint kind.
func (k ConstraintKind) String() string {
	switch k {
	case Required:
		return "required"
	case MinLength:
		return "min_length"
	case MaxLength:
		return "max_length"
	case MinValue:
		return "min_value"
	case MaxValue:
		return "max_value"
	case Pattern:
		return "pattern"
	case Enum:
		return "enum"
	case Custom:
		return "custom"
	default:
		return "unknown"
	}
}

// Severity grades a constraint. Warning-severity failures are routed to the
// result's warnings and never affect validity; Error and Critical failures
// both land in errors.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityCritical
)

// String returns the canonical name of the severity.
func (s Severity) String() string {
	switch s {
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

// Constraint is one declarative check against a value. Value carries the
// constraint parameter (a length, a bound, a pattern string, or an enum
// array); kinds that need no parameter leave it as the null value.
type Constraint struct {
	Name     string
	Kind     ConstraintKind
	Value    value.Value
	Severity Severity
}

// evaluate runs a constraint against a value, returning nil when the
// constraint holds or does not apply. Constraints apply only to values of
// their kind's expected type; everything else is skipped, matching the
// per-kind applicability rules of the schema layer's leaf constraints.
func (v *Validator) evaluate(val value.Value, c Constraint) *Error {
	switch c.Kind {
	case Required:
		if val.IsNull() {
			return &Error{
				Path:       "root",
				Message:    fmt.Sprintf("Required field '%s' is missing", c.Name),
				Kind:       RequiredFieldMissing,
				Suggestion: "Provide a value for this required field",
			}
		}
	case MinLength:
		if _, ok := val.AsString(); ok {
			if min, ok := c.Value.AsNumber(); ok && float64(val.Len()) < min {
				return &Error{
					Path:       "root",
					Message:    fmt.Sprintf("String length %d is less than minimum %s", val.Len(), value.FormatNumber(min)),
					Kind:       ConstraintViolation,
					Suggestion: "Increase the string length",
				}
			}
		}
	case MaxLength:
		if _, ok := val.AsString(); ok {
			if max, ok := c.Value.AsNumber(); ok && float64(val.Len()) > max {
				return &Error{
					Path:       "root",
					Message:    fmt.Sprintf("String length %d exceeds maximum %s", val.Len(), value.FormatNumber(max)),
					Kind:       ConstraintViolation,
					Suggestion: "Decrease the string length",
				}
			}
		}
	case MinValue:
		if f, ok := val.AsNumber(); ok {
			if min, ok := c.Value.AsNumber(); ok && f < min {
				return &Error{
					Path:       "root",
					Message:    fmt.Sprintf("Value %s is less than minimum %s", value.FormatNumber(f), value.FormatNumber(min)),
					Kind:       RangeViolation,
					Suggestion: "Increase the value",
				}
			}
		}
	case MaxValue:
		if f, ok := val.AsNumber(); ok {
			if max, ok := c.Value.AsNumber(); ok && f > max {
				return &Error{
					Path:       "root",
					Message:    fmt.Sprintf("Value %s exceeds maximum %s", value.FormatNumber(f), value.FormatNumber(max)),
					Kind:       RangeViolation,
					Suggestion: "Decrease the value",
				}
			}
		}
	case Pattern:
		if s, ok := val.AsString(); ok {
			if pattern, ok := c.Value.AsString(); ok {
				// Non-compiling patterns are skipped.
				if match, ok := regexcache.Matches(pattern, s); ok && !match {
					return &Error{
						Path:       "root",
						Message:    fmt.Sprintf("Value '%s' does not match pattern '%s'", s, pattern),
						Kind:       FormatError,
						Suggestion: fmt.Sprintf("Update the value to match pattern '%s'", pattern),
					}
				}
			}
		}
	case Enum:
		if _, ok := c.Value.AsArray(); ok {
			if !value.Contains(c.Value, val) {
				return &Error{
					Path:       "root",
					Message:    fmt.Sprintf("Value '%s' is not in allowed values", val),
					Kind:       InvalidValue,
					Suggestion: "Use one of the allowed values",
				}
			}
		}
	case Custom:
		return v.evaluateCustom(val, c)
	}
	return nil
}
