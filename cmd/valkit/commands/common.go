// Package commands provides CLI command handlers for valkit.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"go.yaml.in/yaml/v4"

	"github.com/valkit/valkit/httpclient"
	"github.com/valkit/valkit/value"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// Severity color printers used by text output.
var (
	errColor  = color.New(color.FgRed)
	warnColor = color.New(color.FgYellow)
	okColor   = color.New(color.FgGreen)
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured outputs data in the specified format (json or yaml) to stdout.
// Returns an error if marshaling fails.
func OutputStructured(data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	fmt.Println(string(bytes))
	return nil
}

// Writef writes formatted output, reporting write failures to stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// ReadDocument loads a JSON or YAML document from a file path, URL, or
// stdin ("-"). JSON is assumed for .json paths and content starting with
// '{' or '['; everything else decodes as YAML.
func ReadDocument(path string) (value.Value, error) {
	var data []byte
	var err error
	switch {
	case path == StdinFilePath:
		data, err = io.ReadAll(os.Stdin)
	case strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://"):
		data, err = httpclient.New().Get(context.Background(), path)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return value.Null(), fmt.Errorf("reading %s: %w", path, err)
	}

	if strings.HasSuffix(path, ".json") {
		return value.DecodeJSON(data)
	}
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return value.DecodeJSON(data)
	}
	return value.DecodeYAML(data)
}
