package typecheck

import (
	"strconv"
	"strings"

	"github.com/valkit/valkit/valerrors"
	"github.com/valkit/valkit/value"
)

// Convert coerces a value to targetType on a best-effort basis:
//
//   - string: any value via its display formatting
//   - number/integer: numbers pass through (integers truncate), strings are
//     parsed
//   - boolean: booleans pass through, strings via a fixed token set
//     ("true"/"1"/"yes"/"on" and "false"/"0"/"no"/"off", case-insensitive)
//   - array: arrays pass through, anything else is wrapped as a single
//     element
//   - object: objects pass through only
//   - null: always succeeds
//
// Failed conversions return a *valerrors.ConversionError.
func Convert(val value.Value, targetType string) (value.Value, error) {
	switch targetType {
	case "string":
		return value.String(val.String()), nil

	case "number":
		if f, ok := val.AsNumber(); ok {
			return value.Number(f), nil
		}
		if s, ok := val.AsString(); ok {
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return value.Number(f), nil
			}
		}
		return value.Null(), conversionError(val, targetType, "value is not numeric")

	case "integer":
		if f, ok := val.AsNumber(); ok {
			return value.Int(int(f)), nil
		}
		if s, ok := val.AsString(); ok {
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return value.Int(int(n)), nil
			}
		}
		return value.Null(), conversionError(val, targetType, "value is not an integer")

	case "boolean":
		if b, ok := val.AsBool(); ok {
			return value.Bool(b), nil
		}
		if s, ok := val.AsString(); ok {
			switch strings.ToLower(s) {
			case "true", "1", "yes", "on":
				return value.Bool(true), nil
			case "false", "0", "no", "off":
				return value.Bool(false), nil
			}
		}
		return value.Null(), conversionError(val, targetType, "value is not a recognized boolean")

	case "array":
		if elems, ok := val.AsArray(); ok {
			return value.Array(elems...), nil
		}
		return value.Array(val), nil

	case "object":
		if _, ok := val.AsObject(); ok {
			return val, nil
		}
		return value.Null(), conversionError(val, targetType, "only objects convert to object")

	case "null":
		return value.Null(), nil

	default:
		return value.Null(), conversionError(val, targetType, "unknown target type")
	}
}

func conversionError(val value.Value, targetType, message string) error {
	return &valerrors.ConversionError{
		TargetType: targetType,
		ActualType: val.Kind().String(),
		Message:    message,
	}
}
