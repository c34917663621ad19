package schema

import "fmt"

// ErrorKind classifies a schema validation error. The set is closed; other
// valkit subsystems (typecheck, integrity) define their own, separate
// vocabularies.
type ErrorKind int

const (
	// RequiredFieldMissing reports a key named in `required` that is absent
	// from the document object.
	RequiredFieldMissing ErrorKind = iota
	// InvalidType reports a document value whose kind does not match the
	// schema's `type`.
	InvalidType
	// ConstraintViolation reports a violated leaf constraint (string length,
	// numeric bounds) or a failed combinator cardinality.
	ConstraintViolation
	// FormatError reports a malformed value for a recognized format.
	FormatError
	// PatternMismatch reports a string that does not match the schema's
	// `pattern`.
	PatternMismatch
	// ArrayConstraintViolation reports a violated minItems/maxItems bound.
	ArrayConstraintViolation
	// ObjectConstraintViolation reports an object key forbidden by
	// `additionalProperties: false`.
	ObjectConstraintViolation
	// CustomValidationFailed reports a value that matches a `not` schema.
	CustomValidationFailed
)

// String returns the canonical name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case RequiredFieldMissing:
		return "required_field_missing"
	case InvalidType:
		return "invalid_type"
	case ConstraintViolation:
		return "constraint_violation"
	case FormatError:
		return "format_error"
	case PatternMismatch:
		return "pattern_mismatch"
	case ArrayConstraintViolation:
		return "array_constraint_violation"
	case ObjectConstraintViolation:
		return "object_constraint_violation"
	case CustomValidationFailed:
		return "custom_validation_failed"
	default:
		return "unknown"
	}
}

// Error is a single schema validation finding. Errors are reported in the
// order checks were performed: document key order (sorted) at each object
// level, combinator branches left-to-right.
type Error struct {
	// Path is the dot/bracket address of the problematic value ("" is the
	// document root).
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
	path := e.Path
	if path == "" {
		path = "root"
	}
	return fmt.Sprintf("✗ %s: %s", path, e.Message)
}
