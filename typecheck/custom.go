package typecheck

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/valkit/valkit/valerrors"
	"github.com/valkit/valkit/value"
)

// Predicate decides whether a value satisfies a Custom constraint. A non-nil
// error means the predicate itself could not be evaluated; the constraint is
// then skipped and the failure logged, never surfaced as a validation
// finding.
type Predicate func(value.Value) (bool, error)

// RegisterPredicate binds a predicate to a Custom constraint name. Custom
// constraints with no registered predicate pass unconditionally.
func (v *Validator) RegisterPredicate(name string, p Predicate) {
	v.mu.Lock()
	v.predicates[name] = p
	v.mu.Unlock()
	v.logger.Info("predicate registered", "name", name)
}

// RemovePredicate unbinds a predicate, reporting whether it existed.
func (v *Validator) RemovePredicate(name string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.predicates[name]
	delete(v.predicates, name)
	return ok
}

func (v *Validator) evaluateCustom(val value.Value, c Constraint) *Error {
	v.mu.RLock()
	p, ok := v.predicates[c.Name]
	v.mu.RUnlock()
	if !ok {
		return nil
	}

	holds, err := p(val)
	if err != nil {
		v.logger.Warn("custom predicate failed to evaluate", "name", c.Name, "error", err)
		return nil
	}
	if holds {
		return nil
	}
	return &Error{
		Path:       "root",
		Message:    fmt.Sprintf("Custom constraint '%s' failed", c.Name),
		Kind:       ConstraintViolation,
		Suggestion: "Adjust the value to satisfy the custom constraint",
	}
}

// CompilePredicate builds a Predicate from an expression over the variable
// `value`, e.g. `value >= 0 && value <= 100` or `len(value) > 3`. The value
// is exposed in its plain Go form (nil, bool, float64 or int64, string,
// []any, map[string]any).
func CompilePredicate(src string) (Predicate, error) {
	program, err := expr.Compile(src, expr.AsBool())
	if err != nil {
		return nil, &valerrors.ConfigError{
			Option:  "predicate",
			Value:   src,
			Message: "expression does not compile",
			Cause:   err,
		}
	}
	return exprPredicate(program), nil
}

// MustCompilePredicate is like CompilePredicate but panics on a bad
// expression. For use with expressions known at program start.
func MustCompilePredicate(src string) Predicate {
	p, err := CompilePredicate(src)
	if err != nil {
		panic(err)
	}
	return p
}

func exprPredicate(program *vm.Program) Predicate {
	return func(val value.Value) (bool, error) {
		out, err := expr.Run(program, map[string]any{"value": value.ToAny(val)})
		if err != nil {
			return false, err
		}
		b, ok := out.(bool)
		if !ok {
			return false, fmt.Errorf("predicate returned %T, want bool", out)
		}
		return b, nil
	}
}
