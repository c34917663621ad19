package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/valkit/valkit"
	"github.com/valkit/valkit/schema"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Schema     string
	Data       string
	NoWarnings bool
	Quiet      bool
	Format     string
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.StringVar(&flags.Schema, "schema", "", "path to the schema file (required)")
	fs.StringVar(&flags.Data, "data", "", "path or URL of the document to validate, or '-' for stdin (required)")
	fs.BoolVar(&flags.NoWarnings, "no-warnings", false, "suppress warning messages (only show errors)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output validation result, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output validation result, no diagnostic messages")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: valkit validate -schema <file> -data <file|->\n\n")
		Writef(fs.Output(), "Validate a JSON or YAML document against a schema.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  valkit validate -schema user.schema.json -data user.json\n")
		Writef(fs.Output(), "  valkit validate -schema user.schema.json -data config.yaml\n")
		Writef(fs.Output(), "  valkit validate -schema user.schema.json -data https://example.com/user.json\n")
		Writef(fs.Output(), "  cat user.json | valkit validate -schema user.schema.json -data -\n")
		Writef(fs.Output(), "  valkit validate -schema user.schema.json -data user.json -format json | jq '.valid'\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Validation successful\n")
		Writef(fs.Output(), "  1    Validation failed with errors\n")
	}

	return fs, flags
}

// validateReport is the structured output shape for json/yaml formats.
type validateReport struct {
	Valid        bool            `json:"valid" yaml:"valid"`
	ErrorCount   int             `json:"error_count" yaml:"error_count"`
	WarningCount int             `json:"warning_count" yaml:"warning_count"`
	Errors       []validateIssue `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings     []validateIssue `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type validateIssue struct {
	Path       string `json:"path" yaml:"path"`
	Message    string `json:"message" yaml:"message"`
	Kind       string `json:"kind" yaml:"kind"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if flags.Schema == "" || flags.Data == "" {
		fs.Usage()
		return fmt.Errorf("validate command requires both -schema and -data")
	}

	// Validate format flag early to fail fast before expensive operations
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	schemaDoc, err := ReadDocument(flags.Schema)
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}
	doc, err := ReadDocument(flags.Data)
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}

	v := schema.New(schema.WithIncludeWarnings(!flags.NoWarnings))

	startTime := time.Now()
	result := v.ValidateAgainst(doc, schemaDoc)
	totalTime := time.Since(startTime)

	// Handle structured output formats
	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		report := validateReport{
			Valid:        result.Valid,
			ErrorCount:   result.ErrorCount,
			WarningCount: result.WarningCount,
		}
		for _, e := range result.Errors {
			report.Errors = append(report.Errors, issueFrom(e))
		}
		for _, w := range result.Warnings {
			report.Warnings = append(report.Warnings, issueFrom(w))
		}
		if err := OutputStructured(report, flags.Format); err != nil {
			return err
		}
		if !result.Valid {
			os.Exit(1)
		}
		return nil
	}

	// Text format output (always to stderr so stdout stays pipeable)
	if !flags.Quiet {
		Writef(os.Stderr, "valkit version: %s\n", valkit.Version())
		Writef(os.Stderr, "Schema: %s\n", flags.Schema)
		Writef(os.Stderr, "Document: %s\n", flags.Data)
		Writef(os.Stderr, "Total Time: %v\n\n", totalTime)

		if len(result.Errors) > 0 {
			Writef(os.Stderr, "Errors (%d):\n", result.ErrorCount)
			for _, e := range result.Errors {
				Writef(os.Stderr, "  %s\n", errColor.Sprint(e.String()))
			}
			Writef(os.Stderr, "\n")
		}

		if len(result.Warnings) > 0 {
			Writef(os.Stderr, "Warnings (%d):\n", result.WarningCount)
			for _, w := range result.Warnings {
				Writef(os.Stderr, "  %s\n", warnColor.Sprint(w.String()))
			}
			Writef(os.Stderr, "\n")
		}

		if result.Valid {
			Writef(os.Stderr, "%s", okColor.Sprint("✓ Validation passed"))
			if result.WarningCount > 0 {
				Writef(os.Stderr, " with %d warning(s)", result.WarningCount)
			}
			Writef(os.Stderr, "\n")
		} else {
			Writef(os.Stderr, "%s", errColor.Sprintf("✗ Validation failed: %d error(s)", result.ErrorCount))
			if result.WarningCount > 0 {
				Writef(os.Stderr, ", %d warning(s)", result.WarningCount)
			}
			Writef(os.Stderr, "\n")
		}
	}

	if !result.Valid {
		os.Exit(1)
	}
	return nil
}

func issueFrom(e schema.Error) validateIssue {
	return validateIssue{
		Path:       e.Path,
		Message:    e.Message,
		Kind:       e.Kind.String(),
		Suggestion: e.Suggestion,
	}
}
