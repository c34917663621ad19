package schema

import (
	"fmt"
	"sync"
	"time"

	"github.com/valkit/valkit/internal/pathutil"
	"github.com/valkit/valkit/internal/regexcache"
	"github.com/valkit/valkit/logging"
	"github.com/valkit/valkit/valerrors"
	"github.com/valkit/valkit/value"
)

const (
	// defaultErrorCapacity is the initial capacity for error slices
	defaultErrorCapacity = 10
	// defaultWarningCapacity is the initial capacity for warning slices
	defaultWarningCapacity = 4
)

// Result contains the outcome of validating a document against a schema.
type Result struct {
	// Valid is true if no errors were found (warnings are allowed)
	Valid bool
	// Errors contains all validation errors
	Errors []Error
	// Warnings contains non-blocking findings, e.g. unresolved references
	Warnings []Error
	// ErrorCount is the total number of errors
	ErrorCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// Elapsed is the time taken by the validation walk
	Elapsed time.Duration
}

// Validator validates documents against schema documents. Schemas registered
// on a Validator are available as `$ref` targets and as named validation
// entry points.
//
// Registration serializes writers; validation takes a read lock only to
// snapshot the schema table, so concurrent validation calls never block each
// other.
type Validator struct {
	mu      sync.RWMutex
	schemas map[string]value.Value
	logger  logging.Logger

	// IncludeWarnings determines whether warnings are kept in results.
	IncludeWarnings bool
}

// New creates a new Validator with default settings.
func New(opts ...Option) *Validator {
	v := &Validator{
		schemas:         make(map[string]value.Value),
		logger:          logging.NopLogger{},
		IncludeWarnings: true,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Register stores a schema under name after checking its structural shape.
// The shape check requires the top level to carry at least one of `type`,
// `$ref`, or `allOf`; see CheckDocument.
func (v *Validator) Register(name string, schema value.Value) error {
	warnings, err := CheckDocument(schema)
	if err != nil {
		return fmt.Errorf("schema: register %q: %w", name, err)
	}
	for _, w := range warnings {
		v.logger.Warn("unknown schema property", "schema", name, "detail", w)
	}

	v.mu.Lock()
	v.schemas[name] = schema
	v.mu.Unlock()

	v.logger.Info("schema registered", "name", name)
	return nil
}

// Remove deletes a registered schema, reporting whether it existed.
func (v *Validator) Remove(name string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.schemas[name]
	delete(v.schemas, name)
	return ok
}

// Has reports whether a schema is registered under name.
func (v *Validator) Has(name string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.schemas[name]
	return ok
}

// Names returns all registered schema names.
func (v *Validator) Names() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	names := make([]string, 0, len(v.schemas))
	for name := range v.schemas {
		names = append(names, name)
	}
	return names
}

// Validate validates a document against the schema registered under
// schemaName. Validating against an unregistered name is a hard error;
// validation findings themselves are reported in the Result, never as an
// error return.
func (v *Validator) Validate(doc value.Value, schemaName string) (*Result, error) {
	v.mu.RLock()
	schema, ok := v.schemas[schemaName]
	v.mu.RUnlock()
	if !ok {
		return nil, &valerrors.NotFoundError{Kind: "schema", Name: schemaName}
	}

	result := v.ValidateAgainst(doc, schema)
	v.logger.Info("validation completed",
		"schema", schemaName,
		"errors", result.ErrorCount,
		"warnings", result.WarningCount,
		"elapsed", result.Elapsed)
	return result, nil
}

// ValidateAgainst validates a document against an inline schema. Registered
// schemas remain visible as `$ref` targets.
func (v *Validator) ValidateAgainst(doc, schema value.Value) *Result {
	start := time.Now()

	v.mu.RLock()
	table := v.schemas
	v.mu.RUnlock()

	st := &walkState{
		table:    table,
		visiting: make(map[string]bool),
		errors:   make([]Error, 0, defaultErrorCapacity),
		warnings: make([]Error, 0, defaultWarningCapacity),
	}
	st.walk(doc, compile(schema), "")

	result := &Result{
		Errors:   st.errors,
		Warnings: st.warnings,
		Elapsed:  time.Since(start),
	}
	if !v.IncludeWarnings {
		result.Warnings = nil
	}
	result.ErrorCount = len(result.Errors)
	result.WarningCount = len(result.Warnings)
	result.Valid = result.ErrorCount == 0
	return result
}

// walkState carries the error buffers and reference bookkeeping of one
// validation walk. Branch validation (anyOf/oneOf/not) forks fresh buffers
// while sharing the visiting set, so reference cycles are caught across
// combinator boundaries.
type walkState struct {
	table    map[string]value.Value
	visiting map[string]bool
	errors   []Error
	warnings []Error
}

// fork returns a state with fresh buffers for independent branch validation.
func (st *walkState) fork() *walkState {
	return &walkState{table: st.table, visiting: st.visiting}
}

func (st *walkState) addError(path, message string, kind ErrorKind, suggestion string) {
	st.errors = append(st.errors, Error{Path: path, Message: message, Kind: kind, Suggestion: suggestion})
}

func (st *walkState) addWarning(path, message string, kind ErrorKind) {
	st.warnings = append(st.warnings, Error{Path: path, Message: message, Kind: kind})
}

// walk validates doc against the compiled node n, extending path as it
// descends. A nil node performs no checks.
func (st *walkState) walk(doc value.Value, n *node, path string) {
	if n == nil {
		return
	}

	switch n.kind {
	case nodeRef:
		st.walkRef(doc, n.ref, path)
	case nodeAllOf:
		for _, branch := range n.branches {
			st.walk(doc, branch, path)
		}
	case nodeAnyOf:
		st.walkAnyOf(doc, n.branches, path)
	case nodeOneOf:
		st.walkOneOf(doc, n.branches, path)
	case nodeNot:
		st.walkNot(doc, n.inner, path)
	case nodeObject:
		st.walkObject(doc, n, path)
	}
}

// walkRef resolves a schema reference by name. Unregistered references are a
// tolerant no-match (warning only), keeping composition usable with
// partially-registered schema sets; cyclic references are a hard finding.
func (st *walkState) walkRef(doc value.Value, name, path string) {
	if st.visiting[name] {
		st.addError(path,
			fmt.Sprintf("Circular schema reference '%s'", name),
			ConstraintViolation,
			"Break the reference cycle between the registered schemas")
		return
	}

	referenced, ok := st.table[name]
	if !ok {
		st.addWarning(path, fmt.Sprintf("Schema reference '%s' is not registered", name), ConstraintViolation)
		return
	}

	st.visiting[name] = true
	st.walk(doc, compile(referenced), path)
	delete(st.visiting, name)
}

// walkAnyOf passes if any branch validates cleanly. Branches are tried
// left-to-right and evaluation stops at the first clean branch; when none is
// clean, the errors of every tried branch are reported.
func (st *walkState) walkAnyOf(doc value.Value, branches []*node, path string) {
	var collected []Error
	for _, branch := range branches {
		sub := st.fork()
		sub.walk(doc, branch, path)
		if len(sub.errors) == 0 {
			return
		}
		collected = append(collected, sub.errors...)
	}
	st.errors = append(st.errors, collected...)
}

// walkOneOf requires exactly one clean branch. Every branch is evaluated;
// zero or multiple clean branches fail with the union of all branch errors
// attached, plus a cardinality error so the failure is visible even when the
// union is empty (e.g. two clean branches).
func (st *walkState) walkOneOf(doc value.Value, branches []*node, path string) {
	cleanCount := 0
	var collected []Error
	for _, branch := range branches {
		sub := st.fork()
		sub.walk(doc, branch, path)
		if len(sub.errors) == 0 {
			cleanCount++
		} else {
			collected = append(collected, sub.errors...)
		}
	}

	if cleanCount == 1 {
		return
	}
	st.errors = append(st.errors, collected...)
	if cleanCount != 0 || len(collected) == 0 {
		st.addError(path,
			fmt.Sprintf("Value matches %d 'oneOf' branches, expected exactly one", cleanCount),
			ConstraintViolation,
			"Adjust the value so exactly one alternative applies")
	}
}

// walkNot inverts the inner schema: a clean inner validation is the failure
// case, and the inner schema's own errors are never surfaced.
func (st *walkState) walkNot(doc value.Value, inner *node, path string) {
	sub := st.fork()
	sub.walk(doc, inner, path)
	if len(sub.errors) == 0 {
		st.addError(path, "Value matches 'not' schema", CustomValidationFailed,
			"Value should not match the specified schema")
	}
}

// walkObject processes a plain schema node: type, required, properties,
// additionalProperties, items, then leaf constraints. A type mismatch does
// not stop the remaining checks; both findings are reported.
func (st *walkState) walkObject(doc value.Value, n *node, path string) {
	if n.typ != "" {
		actual := doc.Kind().String()
		if actual != n.typ {
			st.addError(path,
				fmt.Sprintf("Expected type '%s', got '%s'", n.typ, actual),
				InvalidType,
				fmt.Sprintf("Convert the value to type '%s'", n.typ))
		}
	}

	if obj, ok := doc.AsObject(); ok {
		for _, name := range n.required {
			if _, present := obj[name]; !present {
				st.addError(pathutil.Child(path, name),
					fmt.Sprintf("Required field '%s' is missing", name),
					RequiredFieldMissing,
					fmt.Sprintf("Add the required field '%s'", name))
			}
		}

		for _, name := range n.propKeys {
			if field, present := obj[name]; present {
				st.walk(field, n.properties[name], pathutil.Join(path, name))
			}
		}

		if n.hasProperties && (n.additionalForbidden || n.additionalSchema != nil) {
			for _, key := range doc.Keys() {
				if _, declared := n.properties[key]; declared {
					continue
				}
				if n.additionalForbidden {
					st.addError(pathutil.Child(path, key),
						fmt.Sprintf("Additional property '%s' is not allowed", key),
						ObjectConstraintViolation,
						"Remove the additional property or update the schema")
				} else {
					st.walk(obj[key], n.additionalSchema, pathutil.Child(path, key))
				}
			}
		}
	}

	if elems, ok := doc.AsArray(); ok && n.items != nil {
		for i, elem := range elems {
			st.walk(elem, n.items, pathutil.Index(path, i))
		}
	}

	st.checkLeafConstraints(doc, n.constraints, path)
}

// checkLeafConstraints evaluates the leaf constraints applicable to the
// document value's runtime kind. Constraints for other kinds are skipped.
func (st *walkState) checkLeafConstraints(doc value.Value, lc leafConstraints, path string) {
	if s, ok := doc.AsString(); ok {
		length := doc.Len()
		if lc.minLength != nil && length < *lc.minLength {
			st.addError(path,
				fmt.Sprintf("String length %d is less than minimum %d", length, *lc.minLength),
				ConstraintViolation, "Increase the string length")
		}
		if lc.maxLength != nil && length > *lc.maxLength {
			st.addError(path,
				fmt.Sprintf("String length %d exceeds maximum %d", length, *lc.maxLength),
				ConstraintViolation, "Decrease the string length")
		}
		if lc.pattern != nil {
			// Non-compiling patterns are skipped, not fatal.
			if match, ok := regexcache.Matches(*lc.pattern, s); ok && !match {
				st.addError(path,
					fmt.Sprintf("String does not match pattern: %s", *lc.pattern),
					PatternMismatch, "Update the string to match the required pattern")
			}
		}
	}

	if f, ok := doc.AsNumber(); ok {
		if lc.minimum != nil && f < *lc.minimum {
			st.addError(path,
				fmt.Sprintf("Value %s is less than minimum %s", value.FormatNumber(f), value.FormatNumber(*lc.minimum)),
				ConstraintViolation, "Increase the value")
		}
		if lc.maximum != nil && f > *lc.maximum {
			st.addError(path,
				fmt.Sprintf("Value %s exceeds maximum %s", value.FormatNumber(f), value.FormatNumber(*lc.maximum)),
				ConstraintViolation, "Decrease the value")
		}
	}

	if elems, ok := doc.AsArray(); ok {
		if lc.minItems != nil && len(elems) < *lc.minItems {
			st.addError(path,
				fmt.Sprintf("Array length %d is less than minimum %d", len(elems), *lc.minItems),
				ArrayConstraintViolation, "Add more items to the array")
		}
		if lc.maxItems != nil && len(elems) > *lc.maxItems {
			st.addError(path,
				fmt.Sprintf("Array length %d exceeds maximum %d", len(elems), *lc.maxItems),
				ArrayConstraintViolation, "Remove items from the array")
		}
	}
}
