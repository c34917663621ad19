// Package valerrors provides structured error types for valkit's
// operational failures.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(). They cover registry operations (duplicate schema, missing
// dependency, not-found lookups, malformed schema documents), invalid call
// options, and type-coercion failures.
//
// Data-validation findings are never represented by these errors: validating
// calls always return a structured result whose content carries the
// diagnosis. Hard errors are reserved for malformed input to the call itself,
// e.g. validating against an unregistered schema name.
//
//	_, err := reg.Get("events", "9.9")
//	if errors.Is(err, valerrors.ErrNotFound) {
//	    // handle missing schema
//	}
package valerrors
