package typecheck

import (
	"fmt"
	"sync"
	"time"

	"github.com/valkit/valkit/logging"
	"github.com/valkit/valkit/valerrors"
	"github.com/valkit/valkit/value"
)

// validBaseTypes are the accepted base types of a TypeDefinition.
var validBaseTypes = map[string]struct{}{
	"string": {}, "number": {}, "integer": {}, "boolean": {},
	"array": {}, "object": {}, "null": {},
}

// TypeDefinition names a base type plus an attached constraint list.
type TypeDefinition struct {
	Name        string
	BaseType    string
	Constraints []Constraint
	Description string
}

// Result contains the outcome of one ValidateType call.
type Result struct {
	// Valid is true iff Errors is empty; warnings never affect validity.
	Valid bool
	// ActualType is the runtime type tag of the checked value.
	ActualType string
	// ExpectedType is the type name the value was checked against.
	ExpectedType string
	// Errors contains blocking findings.
	Errors []Error
	// Warnings contains findings from Warning-severity constraints.
	Warnings []Error
	// Elapsed is the time taken by the validation.
	Elapsed time.Duration
}

// Validator checks values against named types and registered constraints.
//
// Types and constraints are accumulated by explicit registration and persist
// until removed or cleared. A RWMutex serializes writers; validation calls
// only take read locks and may run concurrently.
type Validator struct {
	mu          sync.RWMutex
	types       map[string]TypeDefinition
	constraints []Constraint
	predicates  map[string]Predicate
	logger      logging.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger logging.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// New creates a new type validator.
func New(opts ...Option) *Validator {
	v := &Validator{
		types:      make(map[string]TypeDefinition),
		predicates: make(map[string]Predicate),
		logger:     logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// RegisterType stores a type definition under its name. The definition must
// carry a non-empty name and a recognized base type.
func (v *Validator) RegisterType(def TypeDefinition) error {
	if def.Name == "" {
		return &valerrors.ConfigError{Option: "name", Message: "type name cannot be empty"}
	}
	if def.BaseType == "" {
		return &valerrors.ConfigError{Option: "base_type", Message: "base type cannot be empty"}
	}
	if _, ok := validBaseTypes[def.BaseType]; !ok {
		return &valerrors.ConfigError{
			Option:  "base_type",
			Value:   def.BaseType,
			Message: "invalid base type",
		}
	}

	v.mu.Lock()
	v.types[def.Name] = def
	v.mu.Unlock()

	v.logger.Info("type registered", "name", def.Name, "base", def.BaseType)
	return nil
}

// HasType reports whether a type definition is registered under name.
func (v *Validator) HasType(name string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.types[name]
	return ok
}

// RemoveType deletes a type definition, returning it if it existed.
func (v *Validator) RemoveType(name string) (TypeDefinition, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	def, ok := v.types[name]
	delete(v.types, name)
	return def, ok
}

// TypeNames returns all registered type names.
func (v *Validator) TypeNames() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	names := make([]string, 0, len(v.types))
	for name := range v.types {
		names = append(names, name)
	}
	return names
}

// AddConstraint appends a globally evaluated constraint. Global constraints
// run on every ValidateType call, independent of any type definition.
func (v *Validator) AddConstraint(c Constraint) {
	v.mu.Lock()
	v.constraints = append(v.constraints, c)
	v.mu.Unlock()
	v.logger.Info("constraint added", "name", c.Name, "kind", c.Kind.String())
}

// ClearConstraints removes all global constraints.
func (v *Validator) ClearConstraints() {
	v.mu.Lock()
	v.constraints = nil
	v.mu.Unlock()
}

// ValidateType checks a value against typeName. The type need not be
// registered: an unregistered name still gets the runtime compatibility check
// and the global constraint pass. Findings are reported in the Result; the
// call itself never fails.
func (v *Validator) ValidateType(val value.Value, typeName string) *Result {
	start := time.Now()

	actual := val.Kind().String()
	result := &Result{
		ActualType:   actual,
		ExpectedType: typeName,
	}

	if !compatible(actual, typeName) {
		result.Errors = append(result.Errors, Error{
			Path:       "root",
			Message:    fmt.Sprintf("Type mismatch: expected '%s', got '%s'", typeName, actual),
			Kind:       TypeMismatch,
			Suggestion: fmt.Sprintf("Convert the value to type '%s'", typeName),
		})
	}

	v.mu.RLock()
	def, hasDef := v.types[typeName]
	global := v.constraints
	v.mu.RUnlock()

	if hasDef {
		if !compatible(actual, def.BaseType) {
			result.Errors = append(result.Errors, Error{
				Path:       "root",
				Message:    fmt.Sprintf("Base type mismatch: expected '%s', got '%s'", def.BaseType, actual),
				Kind:       TypeMismatch,
				Suggestion: fmt.Sprintf("Convert the value to base type '%s'", def.BaseType),
			})
		}
		v.runConstraints(val, def.Constraints, result)
	}

	v.runConstraints(val, global, result)

	result.Valid = len(result.Errors) == 0
	result.Elapsed = time.Since(start)

	v.logger.Info("type validation completed",
		"type", typeName,
		"errors", len(result.Errors),
		"warnings", len(result.Warnings),
		"elapsed", result.Elapsed)
	return result
}

// runConstraints evaluates a constraint list, routing failures into errors or
// warnings by declared severity.
func (v *Validator) runConstraints(val value.Value, constraints []Constraint, result *Result) {
	for _, c := range constraints {
		if e := v.evaluate(val, c); e != nil {
			if c.Severity == SeverityWarning {
				result.Warnings = append(result.Warnings, *e)
			} else {
				result.Errors = append(result.Errors, *e)
			}
		}
	}
}

// compatible reports whether a runtime type tag satisfies an expected type
// name. number and integer satisfy each other; everything else is exact.
func compatible(actual, expected string) bool {
	if actual == "number" && expected == "integer" {
		return true
	}
	if actual == "integer" && expected == "number" {
		return true
	}
	return actual == expected
}
