package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valkit/valkit/value"
)

func TestSetupConvertFlags(t *testing.T) {
	fs, flags := SetupConvertFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Empty(t, flags.Type)
		assert.Empty(t, flags.Value)
		assert.Equal(t, FormatText, flags.Format)
	})

	t.Run("parse flags", func(t *testing.T) {
		require.NoError(t, fs.Parse([]string{"-type", "boolean", "-value", "yes", "-format", "yaml"}))
		assert.Equal(t, "boolean", flags.Type)
		assert.Equal(t, "yes", flags.Value)
		assert.Equal(t, "yaml", flags.Format)
	})
}

func TestHandleConvert_MissingFlags(t *testing.T) {
	assert.Error(t, HandleConvert([]string{}))
	assert.Error(t, HandleConvert([]string{"-type", "boolean"}))
	assert.Error(t, HandleConvert([]string{"-value", "yes"}))
}

func TestHandleConvert_Help(t *testing.T) {
	assert.NoError(t, HandleConvert([]string{"--help"}))
}

func TestHandleConvert_Success(t *testing.T) {
	assert.NoError(t, HandleConvert([]string{"-type", "boolean", "-value", "yes"}))
	assert.NoError(t, HandleConvert([]string{"-type", "integer", "-value", `"42"`}))
	assert.NoError(t, HandleConvert([]string{"-type", "string", "-value", "3.14", "-format", "json"}))
}

func TestHandleConvert_Failure(t *testing.T) {
	assert.Error(t, HandleConvert([]string{"-type", "number", "-value", "abc"}))
	assert.Error(t, HandleConvert([]string{"-type", "complex", "-value", "1"}))
}

func TestParseLooseValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  value.Kind
	}{
		{name: "JSON object", input: `{"a": 1}`, kind: value.KindObject},
		{name: "JSON number", input: "42", kind: value.KindNumber},
		{name: "JSON bool", input: "true", kind: value.KindBool},
		{name: "quoted string", input: `"yes"`, kind: value.KindString},
		{name: "bare word falls back to string", input: "yes", kind: value.KindString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, parseLooseValue(tt.input).Kind())
		})
	}
}
