// Package schema validates documents against declarative schema documents.
//
// A schema is itself a value.Value object using a JSON-Schema-like
// vocabulary: type, required, properties, additionalProperties, items, leaf
// constraints (minLength, maxLength, pattern, minimum, maximum, minItems,
// maxItems), the combinators allOf, anyOf, oneOf, and not, and named
// references via $ref. Combinator precedence is fixed: $ref replaces the
// node entirely, then allOf, anyOf, oneOf, and not are recognized in that
// order; sibling keys alongside a combinator are ignored.
//
// Validation findings are reported in the Result, never as an error return;
// hard errors are reserved for malformed call input such as validating
// against an unregistered schema name. Unknown schema keys are tolerated, a
// type mismatch does not suppress the remaining checks at the same node, and
// patterns that fail to compile are skipped. Unregistered $ref targets are a
// tolerant no-match reported as a warning; cyclic $ref chains are detected
// and reported as errors.
//
// Example:
//
//	v := schema.New()
//	err := v.Register("user", userSchema)
//	if err != nil {
//	    return err
//	}
//	result, err := v.Validate(doc, "user")
//	if err != nil {
//	    return err
//	}
//	for _, e := range result.Errors {
//	    fmt.Println(e)
//	}
//
// Validators are safe for concurrent use: registration serializes writers
// and validation only snapshots the schema table under a read lock.
package schema
