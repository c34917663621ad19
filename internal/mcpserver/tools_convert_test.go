package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertTypeTool(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		targetType string
		want       string
		sourceType string
	}{
		{name: "string yes to boolean", value: `"yes"`, targetType: "boolean", want: "true", sourceType: "string"},
		{name: "string to integer", value: `"42"`, targetType: "integer", want: "42", sourceType: "string"},
		{name: "number truncated to integer", value: `3.9`, targetType: "integer", want: "3", sourceType: "number"},
		{name: "number to string", value: `42`, targetType: "string", want: `"42"`, sourceType: "number"},
		{name: "bare word is a string", value: `hello`, targetType: "string", want: `"hello"`, sourceType: "string"},
		{name: "scalar wrapped in array", value: `1`, targetType: "array", want: "[1]", sourceType: "number"},
		{name: "anything to null", value: `{"a": 1}`, targetType: "null", want: "null", sourceType: "object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := convertTypeInput{Value: tt.value, TargetType: tt.targetType}
			result, output, err := handleConvertType(context.Background(), &mcp.CallToolRequest{}, input)
			require.NoError(t, err)
			require.Nil(t, result)
			assert.Equal(t, tt.want, output.Value)
			assert.Equal(t, tt.sourceType, output.SourceType)
			assert.Equal(t, tt.targetType, output.TargetType)
		})
	}
}

func TestConvertTypeTool_Failure(t *testing.T) {
	input := convertTypeInput{Value: `"abc"`, TargetType: "number"}
	result, _, err := handleConvertType(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestConvertTypeTool_UnknownTarget(t *testing.T) {
	input := convertTypeInput{Value: `1`, TargetType: "complex"}
	result, _, err := handleConvertType(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
