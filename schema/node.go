package schema

import (
	"sort"

	"github.com/valkit/valkit/value"
)

// nodeKind tags the compiled form of a schema node. Compiling the raw value
// tree into an explicit sum type up front makes combinator precedence a
// property of compilation rather than of key-probing order during the walk.
type nodeKind int

const (
	nodeRef nodeKind = iota
	nodeAllOf
	nodeAnyOf
	nodeOneOf
	nodeNot
	nodeObject
)

// node is the compiled form of one schema tree node.
//
// Combinator precedence is resolved at compile time: $ref wins over allOf,
// which wins over anyOf, oneOf, and not, in that order; a node compiled to a
// combinator carries no plain-object fields, mirroring the documented
// short-circuit (sibling keys alongside a combinator are ignored).
type node struct {
	kind nodeKind

	// nodeRef
	ref string

	// nodeAllOf / nodeAnyOf / nodeOneOf
	branches []*node

	// nodeNot
	inner *node

	// nodeObject
	typ           string
	required      []string
	properties    map[string]*node
	propKeys      []string
	hasProperties bool
	// additionalProperties is honored only when `properties` is present.
	additionalForbidden bool
	additionalSchema    *node
	items               *node
	constraints         leafConstraints
}

// leafConstraints holds the per-kind leaf checks of a plain schema node.
// A nil field means the constraint is absent (or its schema value was not of
// the expected shape, which is tolerated and skipped).
type leafConstraints struct {
	minLength *int
	maxLength *int
	pattern   *string
	minimum   *float64
	maximum   *float64
	minItems  *int
	maxItems  *int
}

// compile converts a schema Value into its compiled node form. Non-object
// schema values compile to nil, which the walk treats as "no checks".
func compile(schema value.Value) *node {
	obj, ok := schema.AsObject()
	if !ok {
		return nil
	}

	// $ref fully replaces the node; only string references count.
	if ref, ok := obj["$ref"]; ok {
		if name, ok := ref.AsString(); ok {
			return &node{kind: nodeRef, ref: name}
		}
	}

	if branches, ok := compileBranches(obj, "allOf"); ok {
		return &node{kind: nodeAllOf, branches: branches}
	}
	if branches, ok := compileBranches(obj, "anyOf"); ok {
		return &node{kind: nodeAnyOf, branches: branches}
	}
	if branches, ok := compileBranches(obj, "oneOf"); ok {
		return &node{kind: nodeOneOf, branches: branches}
	}
	if not, ok := obj["not"]; ok {
		return &node{kind: nodeNot, inner: compile(not)}
	}

	n := &node{kind: nodeObject}

	if t, ok := obj["type"]; ok {
		if s, ok := t.AsString(); ok {
			n.typ = s
		}
	}

	if req, ok := obj["required"]; ok {
		if names, ok := req.AsArray(); ok {
			for _, name := range names {
				if s, ok := name.AsString(); ok {
					n.required = append(n.required, s)
				}
			}
		}
	}

	if props, ok := obj["properties"]; ok {
		if fields, ok := props.AsObject(); ok {
			n.hasProperties = true
			n.properties = make(map[string]*node, len(fields))
			for name, sub := range fields {
				n.properties[name] = compile(sub)
				n.propKeys = append(n.propKeys, name)
			}
			sort.Strings(n.propKeys)
		}
	}

	if add, ok := obj["additionalProperties"]; ok {
		if b, ok := add.AsBool(); ok {
			n.additionalForbidden = !b
		} else if add.Kind() == value.KindObject {
			n.additionalSchema = compile(add)
		}
	}

	if items, ok := obj["items"]; ok {
		n.items = compile(items)
	}

	n.constraints = compileLeafConstraints(obj)
	return n
}

// compileBranches compiles a combinator's sub-schema array. A combinator key
// whose value is not an array is ignored (the caller falls through to the
// next recognized key).
func compileBranches(obj map[string]value.Value, key string) ([]*node, bool) {
	raw, ok := obj[key]
	if !ok {
		return nil, false
	}
	subs, ok := raw.AsArray()
	if !ok {
		return nil, false
	}
	branches := make([]*node, 0, len(subs))
	for _, sub := range subs {
		branches = append(branches, compile(sub))
	}
	return branches, true
}

func compileLeafConstraints(obj map[string]value.Value) leafConstraints {
	var lc leafConstraints
	lc.minLength = compileCount(obj, "minLength")
	lc.maxLength = compileCount(obj, "maxLength")
	lc.minItems = compileCount(obj, "minItems")
	lc.maxItems = compileCount(obj, "maxItems")
	lc.minimum = compileNumber(obj, "minimum")
	lc.maximum = compileNumber(obj, "maximum")

	if p, ok := obj["pattern"]; ok {
		if s, ok := p.AsString(); ok {
			lc.pattern = &s
		}
	}
	return lc
}

// compileCount reads a non-negative integral count constraint. Negative or
// fractional values are tolerated and skipped.
func compileCount(obj map[string]value.Value, key string) *int {
	raw, ok := obj[key]
	if !ok {
		return nil
	}
	f, ok := raw.AsNumber()
	if !ok || f < 0 || f != float64(int(f)) {
		return nil
	}
	n := int(f)
	return &n
}

func compileNumber(obj map[string]value.Value, key string) *float64 {
	raw, ok := obj[key]
	if !ok {
		return nil
	}
	f, ok := raw.AsNumber()
	if !ok {
		return nil
	}
	return &f
}
