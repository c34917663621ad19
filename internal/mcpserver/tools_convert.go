package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/valkit/valkit/typecheck"
	"github.com/valkit/valkit/value"
)

type convertTypeInput struct {
	Value      string `json:"value"       jsonschema:"The value to convert, as JSON text. Bare words are treated as strings."`
	TargetType string `json:"target_type" jsonschema:"Target base type: string, number, integer, boolean, array, object, or null"`
}

type convertTypeOutput struct {
	Value      string `json:"value"`
	SourceType string `json:"source_type"`
	TargetType string `json:"target_type"`
}

func handleConvertType(_ context.Context, _ *mcp.CallToolRequest, input convertTypeInput) (*mcp.CallToolResult, convertTypeOutput, error) {
	val := parseLooseValue(input.Value)

	converted, err := typecheck.Convert(val, input.TargetType)
	if err != nil {
		return errResult(err), convertTypeOutput{}, nil
	}

	encoded, err := value.EncodeJSON(converted)
	if err != nil {
		return errResult(err), convertTypeOutput{}, nil
	}

	return nil, convertTypeOutput{
		Value:      string(encoded),
		SourceType: val.Kind().String(),
		TargetType: input.TargetType,
	}, nil
}

// parseLooseValue decodes text as JSON, falling back to a plain string so
// that unquoted input like hello or 42abc still converts sensibly.
func parseLooseValue(text string) value.Value {
	trimmed := strings.TrimSpace(text)
	if v, err := value.DecodeJSON([]byte(trimmed)); err == nil {
		return v
	}
	return value.String(text)
}
