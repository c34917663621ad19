package mcpserver

import (
	"fmt"
	"os"
	"strings"

	"github.com/valkit/valkit/value"
)

// documentInput represents the two ways a document can be provided to a tool.
// Exactly one of File or Content must be set.
type documentInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a JSON or YAML file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
	Format  string `json:"format,omitempty"  jsonschema:"Force a format: json or yaml. Detected from content when omitted."`
}

// resolve decodes the document from whichever input was provided.
func (d documentInput) resolve() (value.Value, error) {
	if (d.File == "") == (d.Content == "") {
		return value.Null(), fmt.Errorf("exactly one of file or content must be provided")
	}

	data := []byte(d.Content)
	if d.File != "" {
		b, err := os.ReadFile(d.File)
		if err != nil {
			return value.Null(), fmt.Errorf("read document: %w", err)
		}
		data = b
	} else if len(data) > cfg.MaxInlineSize {
		return value.Null(), fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set VALKIT_MCP_MAX_INLINE_SIZE to increase",
			len(data), cfg.MaxInlineSize)
	}

	return decodeDocument(data, d.Format, d.File)
}

// decodeDocument decodes data as JSON or YAML. An explicit format wins;
// otherwise the file extension, then the leading byte, decide.
func decodeDocument(data []byte, format, file string) (value.Value, error) {
	switch strings.ToLower(format) {
	case "json":
		return value.DecodeJSON(data)
	case "yaml", "yml":
		return value.DecodeYAML(data)
	case "":
	default:
		return value.Null(), fmt.Errorf("unsupported format %q; expected json or yaml", format)
	}

	if strings.HasSuffix(file, ".json") {
		return value.DecodeJSON(data)
	}
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return value.DecodeJSON(data)
	}
	return value.DecodeYAML(data)
}
