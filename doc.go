// Package valkit provides a schema- and constraint-driven validation engine
// for JSON-like documents.
//
// valkit validates tree-shaped documents (null, boolean, number, string,
// array, object) against declarative schemas, named type definitions, and
// cross-cutting integrity constraints, and aggregates the findings into
// structured, actionable reports.
//
// # Overview
//
// The library consists of six primary packages:
//
//   - value: the shared recursive document type used for both data and schemas
//   - schema: recursive structural validation against a schema document
//   - typecheck: named-type validation with constraint sets and coercion
//   - integrity: checksum, referential, range, and format integrity checks
//   - registry: versioned schema storage with tags and dependency tracking
//   - reporter: error aggregation, summaries, and fix suggestions
//
// Supporting packages cover configuration (config), document acquisition
// (httpclient, storage), and analysis of validation results over time
// (metrics). The engine itself never parses or serializes documents; callers
// supply value.Value trees, typically via value.DecodeJSON or
// value.DecodeYAML.
//
// # Quick Start
//
// Validate a document against an inline schema:
//
//	import (
//		"github.com/valkit/valkit/schema"
//		"github.com/valkit/valkit/value"
//	)
//
//	doc, _ := value.DecodeJSON([]byte(`{"id":"a1","age":42}`))
//	sch, _ := value.DecodeJSON([]byte(`{
//		"type": "object",
//		"properties": {
//			"id":  {"type": "string", "minLength": 1},
//			"age": {"type": "number", "minimum": 0}
//		},
//		"required": ["id", "age"]
//	}`))
//
//	v := schema.New()
//	result := v.ValidateAgainst(doc, sch)
//	if !result.Valid {
//		for _, e := range result.Errors {
//			fmt.Println(e)
//		}
//	}
//
// Check a value against a registered type:
//
//	import "github.com/valkit/valkit/typecheck"
//
//	tv := typecheck.New()
//	res := tv.ValidateType(value.String("hello"), "string")
//
// Validation findings are returned in result values; hard errors are reserved
// for malformed calls (unknown schema names, invalid options) and registry
// operations, using the structured types in the valerrors package.
package valkit
