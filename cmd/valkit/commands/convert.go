package commands

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/valkit/valkit/typecheck"
	"github.com/valkit/valkit/value"
)

// ConvertFlags contains flags for the convert command
type ConvertFlags struct {
	Type   string
	Value  string
	Format string
}

// SetupConvertFlags creates and configures a FlagSet for the convert command.
func SetupConvertFlags() (*flag.FlagSet, *ConvertFlags) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	flags := &ConvertFlags{}

	fs.StringVar(&flags.Type, "type", "", "target base type: string, number, integer, boolean, array, object, or null (required)")
	fs.StringVar(&flags.Value, "value", "", "the value to convert, as JSON text; bare words are treated as strings (required)")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: valkit convert -type <type> -value <value>\n\n")
		Writef(fs.Output(), "Convert a value to a target base type.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  valkit convert -type boolean -value yes\n")
		Writef(fs.Output(), "  valkit convert -type integer -value '\"42\"'\n")
		Writef(fs.Output(), "  valkit convert -type string -value 3.14\n")
	}

	return fs, flags
}

// convertReport is the structured output shape for json/yaml formats.
type convertReport struct {
	Value      string `json:"value" yaml:"value"`
	SourceType string `json:"source_type" yaml:"source_type"`
	TargetType string `json:"target_type" yaml:"target_type"`
}

// HandleConvert executes the convert command
func HandleConvert(args []string) error {
	fs, flags := SetupConvertFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if flags.Type == "" || flags.Value == "" {
		fs.Usage()
		return fmt.Errorf("convert command requires both -type and -value")
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	val := parseLooseValue(flags.Value)
	converted, err := typecheck.Convert(val, flags.Type)
	if err != nil {
		return err
	}

	encoded, err := value.EncodeJSON(converted)
	if err != nil {
		return err
	}

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		return OutputStructured(convertReport{
			Value:      string(encoded),
			SourceType: val.Kind().String(),
			TargetType: flags.Type,
		}, flags.Format)
	}

	fmt.Println(string(encoded))
	return nil
}

// parseLooseValue decodes text as JSON, falling back to a plain string so
// that unquoted input like yes or 42abc still converts sensibly.
func parseLooseValue(text string) value.Value {
	trimmed := strings.TrimSpace(text)
	if v, err := value.DecodeJSON([]byte(trimmed)); err == nil {
		return v
	}
	return value.String(text)
}
