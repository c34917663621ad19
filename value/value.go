package value

import (
	"sort"
	"strconv"
)

// Kind identifies which variant of the value model a Value holds.
type Kind int

const (
	// KindNull is the null value.
	KindNull Kind = iota
	// KindBool is a boolean value.
	KindBool
	// KindNumber is a double-precision floating point number.
	KindNumber
	// KindString is a string value.
	KindString
	// KindArray is an ordered sequence of values.
	KindArray
	// KindObject is a mapping of string keys to values with unique keys.
	KindObject
)

// String returns the type name used in schemas and error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is the shared recursive document type used for both data and schemas.
// A Value is immutable by convention: no valkit component mutates a Value in
// place, so Values may be shared freely across concurrent validation calls.
//
// The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	a    []Value
	o    map[string]Value
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{kind: KindNumber, n: f}
}

// Int returns a numeric value from an integer.
func Int(i int) Value {
	return Value{kind: KindNumber, n: float64(i)}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Array returns an array value holding the given elements.
func Array(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindArray, a: elems}
}

// Object returns an object value holding the given fields.
// The map is used as-is; callers must not mutate it afterwards.
func Object(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Value{kind: KindObject, o: fields}
}

// Kind returns the variant tag of v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the boolean content of v.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsNumber returns the numeric content of v.
func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.n, true
}

// AsString returns the string content of v.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsArray returns the elements of v. Callers must not mutate the slice.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.a, true
}

// AsObject returns the fields of v. Callers must not mutate the map.
func (v Value) AsObject() (map[string]Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.o, true
}

// Field returns the named field of an object value.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	f, ok := v.o[name]
	return f, ok
}

// Keys returns the keys of an object value in sorted order. Sorted iteration
// keeps error ordering deterministic across validation calls.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.o))
	for k := range v.o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the element count for arrays, the field count for objects, and
// the character count for strings. It returns 0 for all other kinds.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.a)
	case KindObject:
		return len(v.o)
	case KindString:
		return len([]rune(v.s))
	default:
		return 0
	}
}

// String returns a display form of the value. Strings render without quotes;
// composite values render as compact JSON.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return FormatNumber(v.n)
	case KindString:
		return v.s
	default:
		data, err := EncodeJSON(v)
		if err != nil {
			return "<invalid>"
		}
		return string(data)
	}
}

// FormatNumber renders a float the way document numbers are displayed:
// integral values without a decimal point, everything else in the shortest
// round-trip form.
func FormatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
