package valerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrNotFound indicates a schema, version, or type lookup failed.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a (name, version) pair is already registered.
	ErrDuplicate = errors.New("duplicate registration")

	// ErrDependency indicates a declared schema dependency is not registered.
	ErrDependency = errors.New("dependency not found")

	// ErrCircularReference indicates a cyclic $ref chain was detected.
	ErrCircularReference = errors.New("circular reference")

	// ErrShape indicates a schema document failed the structural self-check.
	ErrShape = errors.New("malformed schema")

	// ErrConfig indicates an invalid configuration or input option.
	ErrConfig = errors.New("configuration error")

	// ErrConversion indicates a type coercion failure.
	ErrConversion = errors.New("conversion error")
)

// NotFoundError reports a failed lookup of a registered schema, schema
// version, or type definition.
type NotFoundError struct {
	// Kind names what was looked up: "schema", "schema version", "type".
	Kind string
	// Name is the requested name.
	Name string
	// Version is the requested version ("" when the lookup was by name only).
	Version string
}

// Error returns a human-readable error message.
func (e *NotFoundError) Error() string {
	if e.Version != "" {
		return fmt.Sprintf("%s '%s' version '%s' not found", e.Kind, e.Name, e.Version)
	}
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.Name)
}

// Is reports whether target matches this error type.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DuplicateError reports an attempt to register an identity that already
// exists.
type DuplicateError struct {
	Name    string
	Version string
}

// Error returns a human-readable error message.
func (e *DuplicateError) Error() string {
	return fmt.Sprintf("schema '%s' version '%s' already exists", e.Name, e.Version)
}

// Is reports whether target matches this error type.
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// DependencyError reports a schema registration whose declared dependency has
// no registered version.
type DependencyError struct {
	Schema     string
	Dependency string
}

// Error returns a human-readable error message.
func (e *DependencyError) Error() string {
	return fmt.Sprintf("schema '%s': dependency '%s' not found", e.Schema, e.Dependency)
}

// Is reports whether target matches this error type.
func (e *DependencyError) Is(target error) bool {
	return target == ErrDependency
}

// ShapeError reports a schema document that failed the registration-time
// structural self-check.
type ShapeError struct {
	// Path locates the offending node within the schema document.
	Path string
	// Message describes the structural problem.
	Message string
}

// Error returns a human-readable error message.
func (e *ShapeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("malformed schema at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("malformed schema: %s", e.Message)
}

// Is reports whether target matches this error type.
func (e *ShapeError) Is(target error) bool {
	return target == ErrShape
}

// ConfigError reports an invalid option or configuration value.
type ConfigError struct {
	// Option is the name of the problematic option.
	Option string
	// Value is the invalid value that was provided (may be nil).
	Value any
	// Message describes the configuration error.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// ConversionError reports a failed best-effort type coercion.
type ConversionError struct {
	// TargetType is the type the value could not be converted to.
	TargetType string
	// ActualType is the runtime type of the input value.
	ActualType string
	// Message provides additional context.
	Message string
}

// Error returns a human-readable error message.
func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("cannot convert %s to %s", e.ActualType, e.TargetType)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}
