// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes valkit capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/valkit/valkit"
)

const serverInstructions = `valkit MCP server — validates documents against schemas, converts values between types, checks data integrity, and manages a schema registry.

Configuration: All defaults are configurable via VALKIT_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- VALKIT_MCP_RESULT_LIMIT (default: 100) — default pagination limit for error and entry lists
- VALKIT_MCP_MAX_INLINE_SIZE (default: 1048576) — maximum inline document size in bytes
- VALKIT_MCP_INCLUDE_WARNINGS (default: true) — include validation warnings by default

Registry: Schemas registered via registry_register persist for the lifetime of the session and can be referenced by name (and optionally version) from the validate tool.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "valkit", Version: valkit.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate a JSON or YAML document against a schema. The schema can be provided inline or referenced by registered name (see registry_register). Returns errors and warnings with dotted path locations and fix suggestions. Use offset/limit to paginate through results. Warning inclusion defaults to VALKIT_MCP_INCLUDE_WARNINGS.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert_type",
		Description: "Convert a value to a target base type (string, number, integer, boolean, array, object, null). Accepts the value as JSON text; bare words are treated as strings. Returns the converted value as JSON, or a conversion error explaining why the value cannot be represented in the target type.",
	}, handleConvertType)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_integrity",
		Description: "Check a JSON or YAML document for integrity violations: optional structural checksum comparison, not-null/range/format/foreign-key constraints, and structural consistency probes. The checksum is valkit's own structural hash, not a SHA-256 of the bytes; obtain the expected value from the checksum field of a previous call on the trusted document. Returns the violations with severity levels and a consistency score from 0 to 100.",
	}, handleCheckIntegrity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "registry_list",
		Description: "List schemas registered in this session. Supports filtering by tag or substring pattern, and offset/limit pagination. Each entry reports the latest version, description, tags, and deprecation state.",
	}, handleRegistryList)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "registry_register",
		Description: "Register a schema in the session registry under a name and version. The schema document is shape-checked before registration; duplicate (name, version) pairs and unsatisfied dependencies are rejected. Registered schemas can be used by the validate tool via schema_name.",
	}, handleRegistryRegister)
}

// paginate applies offset/limit windowing to a result slice.
// A non-positive limit falls back to cfg.ResultLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ResultLimit
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
