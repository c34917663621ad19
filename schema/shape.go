package schema

import (
	"fmt"

	"github.com/valkit/valkit/internal/pathutil"
	"github.com/valkit/valkit/valerrors"
	"github.com/valkit/valkit/value"
)

// knownSchemaKeys are the schema vocabulary keys the structural sanity pass
// recognizes. Anything else is reported as a warning, never rejected.
var knownSchemaKeys = map[string]struct{}{
	"$ref":                 {},
	"type":                 {},
	"required":             {},
	"properties":           {},
	"additionalProperties": {},
	"items":                {},
	"allOf":                {},
	"anyOf":                {},
	"oneOf":                {},
	"not":                  {},
	"minLength":            {},
	"maxLength":            {},
	"pattern":              {},
	"minimum":              {},
	"maximum":              {},
	"minItems":             {},
	"maxItems":             {},
	"uniqueItems":          {},
	"enum":                 {},
	"const":                {},
	"format":               {},
	"title":                {},
	"description":          {},
	"default":              {},
	"examples":             {},
}

// CheckDocument verifies the structural shape of a schema document before it
// can be registered. The top level must be an object carrying at least one of
// `type`, `$ref`, or `allOf`; that failure is a hard ShapeError. A deeper
// sanity pass then walks nested combinators and properties, returning
// unknown-key findings as warnings rather than rejecting the schema.
func CheckDocument(schema value.Value) ([]string, error) {
	obj, ok := schema.AsObject()
	if !ok {
		return nil, &valerrors.ShapeError{
			Path:    "",
			Message: fmt.Sprintf("schema document must be an object, got %s", schema.Kind()),
		}
	}

	_, hasType := obj["type"]
	_, hasRef := obj["$ref"]
	_, hasAllOf := obj["allOf"]
	if !hasType && !hasRef && !hasAllOf {
		return nil, &valerrors.ShapeError{
			Path:    "",
			Message: "schema document must contain at least one of 'type', '$ref', or 'allOf'",
		}
	}

	var warnings []string
	checkShape(schema, "", &warnings)
	return warnings, nil
}

// checkShape walks the schema tree collecting unknown-key warnings.
func checkShape(schema value.Value, path string, warnings *[]string) {
	obj, ok := schema.AsObject()
	if !ok {
		return
	}

	for _, key := range schema.Keys() {
		if _, known := knownSchemaKeys[key]; !known {
			*warnings = append(*warnings, fmt.Sprintf("unknown schema key '%s' at %s", key, displayPath(path)))
		}
	}

	for _, comb := range []string{"allOf", "anyOf", "oneOf"} {
		if raw, ok := obj[comb]; ok {
			if subs, ok := raw.AsArray(); ok {
				for i, sub := range subs {
					checkShape(sub, pathutil.Index(pathutil.Join(path, comb), i), warnings)
				}
			}
		}
	}
	if not, ok := obj["not"]; ok {
		checkShape(not, pathutil.Join(path, "not"), warnings)
	}
	if props, ok := obj["properties"]; ok {
		if fields, ok := props.AsObject(); ok {
			for _, name := range props.Keys() {
				checkShape(fields[name], pathutil.Join(pathutil.Join(path, "properties"), name), warnings)
			}
		}
	}
	if add, ok := obj["additionalProperties"]; ok && add.Kind() == value.KindObject {
		checkShape(add, pathutil.Join(path, "additionalProperties"), warnings)
	}
	if items, ok := obj["items"]; ok {
		checkShape(items, pathutil.Join(path, "items"), warnings)
	}
}

func displayPath(path string) string {
	if path == "" {
		return "root"
	}
	return path
}
