package typecheck

import "fmt"

// ErrorKind classifies a type validation error. This vocabulary is separate
// from the schema package's: the two layers fail in different ways and are
// only unified by the reporter.
type ErrorKind int

const (
	// TypeMismatch reports a value whose runtime type is not compatible with
	// the expected type.
	TypeMismatch ErrorKind = iota
	// ConstraintViolation reports a violated length or custom constraint.
	ConstraintViolation
	// ConversionError reports a failed type coercion.
	ConversionError
	// RangeViolation reports a numeric value outside its MinValue/MaxValue
	// bounds.
	RangeViolation
	// FormatError reports a string that does not match a Pattern constraint.
	FormatError
	// RequiredFieldMissing reports a null value under a Required constraint.
	RequiredFieldMissing
	// InvalidValue reports a value outside an Enum constraint's allowed set.
	InvalidValue
)

// String returns the canonical name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case TypeMismatch:
		return "type_mismatch"
	case ConstraintViolation:
		return "constraint_violation"
	case ConversionError:
		return "conversion_error"
	case RangeViolation:
		return "range_violation"
	case FormatError:
		return "format_error"
	case RequiredFieldMissing:
		return "required_field_missing"
	case InvalidValue:
		return "invalid_value"
	default:
		return "unknown"
	}
}

// Error is a single type validation finding.
type Error struct {
	// Path addresses the checked value; type validation operates on whole
	// values, so this is "root" unless a type definition names a subpath.
	Path string
	// Message is a human-readable description of the problem.
	Message string
	// Kind classifies the error.
	Kind ErrorKind
	// Suggestion is an optional hint for fixing the problem.
	Suggestion string
}

// String returns a formatted representation of the error.
func (e Error) String() string {
	return fmt.Sprintf("✗ %s: %s", e.Path, e.Message)
}
