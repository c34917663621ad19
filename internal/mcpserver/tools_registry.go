package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/valkit/valkit/registry"
)

// sessionRegistry holds schemas registered during this MCP session. It is
// shared with the validate tool for schema_name lookups.
var sessionRegistry = registry.New()

type registryListInput struct {
	Tag     string `json:"tag,omitempty"     jsonschema:"Only list schemas carrying this tag"`
	Pattern string `json:"pattern,omitempty" jsonschema:"Only list schemas whose name or description contains this substring"`
	Offset  int    `json:"offset,omitempty"  jsonschema:"Skip the first N entries (for pagination)"`
	Limit   int    `json:"limit,omitempty"   jsonschema:"Maximum number of entries to return (default 100)"`
}

type registryEntry struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Author      string   `json:"author,omitempty"`
	Deprecated  bool     `json:"deprecated,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
}

type registryListOutput struct {
	Total    int             `json:"total"`
	Returned int             `json:"returned"`
	Entries  []registryEntry `json:"entries,omitempty"`
}

func handleRegistryList(_ context.Context, _ *mcp.CallToolRequest, input registryListInput) (*mcp.CallToolResult, registryListOutput, error) {
	var entries []registry.Entry
	switch {
	case input.Tag != "":
		entries = sessionRegistry.ByTag(input.Tag)
	case input.Pattern != "":
		entries = sessionRegistry.Search(input.Pattern)
	default:
		for _, name := range sessionRegistry.List() {
			entry, err := sessionRegistry.GetLatest(name)
			if err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	output := registryListOutput{Total: len(entries)}
	output.Entries = makeSlice[registryEntry](len(entries))
	for _, e := range entries {
		output.Entries = append(output.Entries, entryFrom(e))
	}
	output.Entries = paginate(output.Entries, input.Offset, input.Limit)
	output.Returned = len(output.Entries)

	return nil, output, nil
}

func entryFrom(e registry.Entry) registryEntry {
	out := registryEntry{
		Name:        e.Name,
		Version:     e.Version,
		Description: e.Description,
		Tags:        e.Tags,
		Author:      e.Author,
		Deprecated:  e.Deprecated,
	}
	if !e.CreatedAt.IsZero() {
		out.CreatedAt = e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z")
	}
	return out
}

type registryRegisterInput struct {
	Name         string        `json:"name"                   jsonschema:"Schema name"`
	Version      string        `json:"version"                jsonschema:"Schema version, e.g. 1.0"`
	Schema       documentInput `json:"schema"                 jsonschema:"The schema document"`
	Description  string        `json:"description,omitempty"  jsonschema:"Human-readable description"`
	Tags         string        `json:"tags,omitempty"         jsonschema:"Comma-separated tags"`
	Author       string        `json:"author,omitempty"       jsonschema:"Schema author"`
	Dependencies string        `json:"dependencies,omitempty" jsonschema:"Comma-separated names of schemas this one depends on; each must already be registered"`
}

type registryRegisterOutput struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func handleRegistryRegister(_ context.Context, _ *mcp.CallToolRequest, input registryRegisterInput) (*mcp.CallToolResult, registryRegisterOutput, error) {
	schemaDoc, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), registryRegisterOutput{}, nil
	}

	entry := registry.Entry{
		Name:         input.Name,
		Version:      input.Version,
		Schema:       schemaDoc,
		Description:  input.Description,
		Tags:         splitList(input.Tags),
		Author:       input.Author,
		Dependencies: splitList(input.Dependencies),
	}
	if err := sessionRegistry.Register(entry); err != nil {
		return errResult(err), registryRegisterOutput{}, nil
	}

	return nil, registryRegisterOutput{Name: input.Name, Version: input.Version}, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
