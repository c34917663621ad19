package value

import (
	"encoding/json"
	"fmt"

	yaml "go.yaml.in/yaml/v4"
)

// FromAny converts a decoded JSON/YAML tree (nil, bool, numeric, string,
// []any, map[string]any) into a Value. It is the bridge between the caller's
// decoder of choice and the value model; the validating packages never parse
// bytes themselves.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("value: invalid number %q: %w", t.String(), err)
		}
		return Number(f), nil
	case string:
		return String(t), nil
	case []any:
		elems := make([]Value, 0, len(t))
		for i, e := range t {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, fmt.Errorf("value: element %d: %w", i, err)
			}
			elems = append(elems, ev)
		}
		return Array(elems...), nil
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for k, e := range t {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, fmt.Errorf("value: field %q: %w", k, err)
			}
			fields[k] = ev
		}
		return Object(fields), nil
	case map[any]any:
		// Older YAML decoders produce any-keyed maps.
		fields := make(map[string]Value, len(t))
		for k, e := range t {
			ks, ok := k.(string)
			if !ok {
				return Value{}, fmt.Errorf("value: non-string object key %v", k)
			}
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, fmt.Errorf("value: field %q: %w", ks, err)
			}
			fields[ks] = ev
		}
		return Object(fields), nil
	case Value:
		return t, nil
	default:
		return Value{}, fmt.Errorf("value: unsupported Go type %T", x)
	}
}

// MustFromAny is FromAny for trees known to be convertible; it panics on
// unsupported input and is intended for test fixtures and literals.
func MustFromAny(x any) Value {
	v, err := FromAny(x)
	if err != nil {
		panic(err)
	}
	return v
}

// ToAny converts a Value back into a plain Go tree suitable for
// encoding/json or YAML marshaling.
func ToAny(v Value) any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		if v.n == float64(int64(v.n)) {
			return int64(v.n)
		}
		return v.n
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, 0, len(v.a))
		for _, e := range v.a {
			out = append(out, ToAny(e))
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.o))
		for k, e := range v.o {
			out[k] = ToAny(e)
		}
		return out
	default:
		return nil
	}
}

// DecodeJSON parses JSON bytes into a Value.
func DecodeJSON(data []byte) (Value, error) {
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return Value{}, fmt.Errorf("value: decode json: %w", err)
	}
	return FromAny(tree)
}

// EncodeJSON renders a Value as compact JSON.
func EncodeJSON(v Value) ([]byte, error) {
	data, err := json.Marshal(ToAny(v))
	if err != nil {
		return nil, fmt.Errorf("value: encode json: %w", err)
	}
	return data, nil
}

// DecodeYAML parses YAML bytes into a Value.
func DecodeYAML(data []byte) (Value, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return Value{}, fmt.Errorf("value: decode yaml: %w", err)
	}
	return FromAny(tree)
}

// EncodeYAML renders a Value as YAML.
func EncodeYAML(v Value) ([]byte, error) {
	data, err := yaml.Marshal(ToAny(v))
	if err != nil {
		return nil, fmt.Errorf("value: encode yaml: %w", err)
	}
	return data, nil
}
