package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/valkit/valkit/schema"
	"github.com/valkit/valkit/value"
)

type validateInput struct {
	Document        documentInput  `json:"document"                     jsonschema:"The document to validate"`
	Schema          *documentInput `json:"schema,omitempty"             jsonschema:"Inline schema to validate against"`
	SchemaName      string         `json:"schema_name,omitempty"        jsonschema:"Name of a schema registered via registry_register"`
	SchemaVersion   string         `json:"schema_version,omitempty"     jsonschema:"Specific registered version (default: latest)"`
	IncludeWarnings *bool          `json:"include_warnings,omitempty"   jsonschema:"Include warnings in the output"`
	Offset          int            `json:"offset,omitempty"             jsonschema:"Skip the first N errors/warnings (for pagination)"`
	Limit           int            `json:"limit,omitempty"              jsonschema:"Maximum number of errors/warnings to return (default 100). Applied independently to errors and warnings arrays."`
}

type validateIssue struct {
	Path       string `json:"path"`
	Message    string `json:"message"`
	Kind       string `json:"kind"`
	Suggestion string `json:"suggestion,omitempty"`
}

type validateOutput struct {
	Valid        bool            `json:"valid"`
	ErrorCount   int             `json:"error_count"`
	WarningCount int             `json:"warning_count"`
	Returned     int             `json:"returned"`
	Errors       []validateIssue `json:"errors,omitempty"`
	Warnings     []validateIssue `json:"warnings,omitempty"`
}

func handleValidate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	// Apply config defaults when input fields are omitted (nil).
	includeWarnings := cfg.IncludeWarnings
	if input.IncludeWarnings != nil {
		includeWarnings = *input.IncludeWarnings
	}

	doc, err := input.Document.resolve()
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	schemaDoc, err := resolveSchema(input)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	v := schema.New(schema.WithIncludeWarnings(includeWarnings))
	result := v.ValidateAgainst(doc, schemaDoc)

	output := validateOutput{
		Valid:      result.Valid,
		ErrorCount: result.ErrorCount,
	}

	output.Errors = makeSlice[validateIssue](len(result.Errors))
	for _, e := range result.Errors {
		output.Errors = append(output.Errors, issueFrom(e))
	}
	if includeWarnings {
		output.WarningCount = result.WarningCount
		output.Warnings = makeSlice[validateIssue](len(result.Warnings))
		for _, w := range result.Warnings {
			output.Warnings = append(output.Warnings, issueFrom(w))
		}
	}

	// Paginate errors and warnings.
	output.Errors = paginate(output.Errors, input.Offset, input.Limit)
	output.Warnings = paginate(output.Warnings, input.Offset, input.Limit)
	output.Returned = len(output.Errors) + len(output.Warnings)

	return nil, output, nil
}

func issueFrom(e schema.Error) validateIssue {
	return validateIssue{
		Path:       e.Path,
		Message:    e.Message,
		Kind:       e.Kind.String(),
		Suggestion: e.Suggestion,
	}
}

// resolveSchema picks the schema source: inline wins over a registry lookup.
func resolveSchema(input validateInput) (value.Value, error) {
	switch {
	case input.Schema != nil && input.SchemaName != "":
		return value.Null(), fmt.Errorf("provide either an inline schema or schema_name, not both")
	case input.Schema != nil:
		return input.Schema.resolve()
	case input.SchemaName != "":
		if input.SchemaVersion != "" {
			entry, err := sessionRegistry.Get(input.SchemaName, input.SchemaVersion)
			if err != nil {
				return value.Null(), err
			}
			return entry.Schema, nil
		}
		entry, err := sessionRegistry.GetLatest(input.SchemaName)
		if err != nil {
			return value.Null(), err
		}
		return entry.Schema, nil
	default:
		return value.Null(), fmt.Errorf("either schema or schema_name must be provided")
	}
}
