// Package typecheck validates values against named types and declarative
// constraint lists.
//
// Unlike the schema package, which walks an inline schema tree, typecheck
// keys validation by type name: a value is checked for runtime type
// compatibility (number and integer satisfy each other), then against a
// registered TypeDefinition's base type and constraints if one exists under
// that name, then against every globally added constraint. Warning-severity
// constraint failures land in the result's warnings and never affect
// validity.
//
// Custom constraints dispatch to predicates registered by name; predicates
// can be written in Go or compiled from expressions with CompilePredicate:
//
//	v := typecheck.New()
//	v.RegisterPredicate("even", typecheck.MustCompilePredicate("value % 2 == 0"))
//	v.AddConstraint(typecheck.Constraint{
//	    Name:     "even",
//	    Kind:     typecheck.Custom,
//	    Severity: typecheck.SeverityError,
//	})
//	result := v.ValidateType(value.Int(3), "integer")
//
// Convert performs best-effort coercion between the value kinds, with a
// fixed token set for string-to-boolean conversion.
package typecheck
