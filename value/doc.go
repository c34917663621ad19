// Package value defines the shared recursive document type used by every
// valkit component for both data and schemas.
//
// A Value is a closed sum over six kinds: null, boolean, number
// (double-precision), string, array (ordered), and object (string-keyed,
// keys unique). Schemas are ordinary Values whose object keys follow the
// vocabulary recognized by the schema package.
//
// Values are immutable by convention: validation never mutates its inputs,
// so a single Value may be validated concurrently from multiple goroutines.
//
// The package also provides structural equality (Equal), a structural
// checksum (Checksum), dot-path addressing (At), and bridges between Values
// and decoded JSON/YAML trees (FromAny, ToAny, DecodeJSON, DecodeYAML).
package value
