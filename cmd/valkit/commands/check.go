package commands

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/valkit/valkit/integrity"
	"github.com/valkit/valkit/value"
)

// CheckFlags contains flags for the check command
type CheckFlags struct {
	Data        string
	Checksum    string
	Constraints string
	Format      string
	Quiet       bool
}

// SetupCheckFlags creates and configures a FlagSet for the check command.
func SetupCheckFlags() (*flag.FlagSet, *CheckFlags) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	flags := &CheckFlags{}

	fs.StringVar(&flags.Data, "data", "", "path to the document to check, or '-' for stdin (required)")
	fs.StringVar(&flags.Checksum, "checksum", "", "expected structural checksum, as printed on the Checksum line of a previous check run")
	fs.StringVar(&flags.Constraints, "constraints", "", "path to a JSON file with integrity constraints")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the result line")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the result line")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: valkit check -data <file|-> [flags]\n\n")
		Writef(fs.Output(), "Check a document for integrity violations: checksum comparison,\n")
		Writef(fs.Output(), "declared constraints, and duplicate-key consistency probes.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nConstraint file format (JSON array):\n")
		Writef(fs.Output(), "  [{\"name\": \"name_required\", \"kind\": \"not_null\", \"path\": \"name\", \"severity\": \"high\"},\n")
		Writef(fs.Output(), "   {\"name\": \"count_bounds\", \"kind\": \"range\", \"path\": \"count\", \"value\": {\"min\": 0, \"max\": 10}},\n")
		Writef(fs.Output(), "   {\"name\": \"email_format\", \"kind\": \"format\", \"path\": \"email\", \"value\": \"email\"}]\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  valkit check -data report.json\n")
		Writef(fs.Output(), "  valkit check -data report.json -checksum 97fa70754845aeb3\n")
		Writef(fs.Output(), "  valkit check -data report.json -constraints rules.json\n")
	}

	return fs, flags
}

// constraintSpec is the on-disk shape of one integrity constraint.
type constraintSpec struct {
	Name     string          `json:"name"`
	Kind     string          `json:"kind"`
	Path     string          `json:"path"`
	Value    json.RawMessage `json:"value,omitempty"`
	Severity string          `json:"severity,omitempty"`
}

// checkReport is the structured output shape for json/yaml formats.
type checkReport struct {
	Valid            bool             `json:"valid" yaml:"valid"`
	ChecksumValid    bool             `json:"checksum_valid" yaml:"checksum_valid"`
	ConsistencyScore float64          `json:"consistency_score" yaml:"consistency_score"`
	Checksum         string           `json:"checksum" yaml:"checksum"`
	Violations       []violationEntry `json:"violations,omitempty" yaml:"violations,omitempty"`
}

type violationEntry struct {
	Kind       string `json:"kind" yaml:"kind"`
	Path       string `json:"path" yaml:"path"`
	Message    string `json:"message" yaml:"message"`
	Severity   string `json:"severity" yaml:"severity"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// HandleCheck executes the check command
func HandleCheck(args []string) error {
	fs, flags := SetupCheckFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if flags.Data == "" {
		fs.Usage()
		return fmt.Errorf("check command requires -data")
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	doc, err := ReadDocument(flags.Data)
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}

	checker := integrity.New()
	if flags.Checksum != "" {
		checker.AddChecksum("document", flags.Checksum)
	}
	if flags.Constraints != "" {
		constraints, err := loadConstraints(flags.Constraints)
		if err != nil {
			return err
		}
		for _, con := range constraints {
			checker.AddConstraint(con)
		}
	}

	result := checker.Check(doc, "document")

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		report := checkReport{
			Valid:            result.Valid,
			ChecksumValid:    result.ChecksumValid,
			ConsistencyScore: result.ConsistencyScore,
			Checksum:         value.Checksum(doc),
		}
		for _, v := range result.Violations {
			report.Violations = append(report.Violations, violationEntry{
				Kind:       v.Kind.String(),
				Path:       v.Path,
				Message:    v.Message,
				Severity:   v.Severity.String(),
				Suggestion: v.Suggestion,
			})
		}
		if err := OutputStructured(report, flags.Format); err != nil {
			return err
		}
		if !result.Valid {
			os.Exit(1)
		}
		return nil
	}

	if !flags.Quiet {
		Writef(os.Stderr, "Document: %s\n", flags.Data)
		Writef(os.Stderr, "Checksum: %s\n", value.Checksum(doc))
		Writef(os.Stderr, "Consistency Score: %.1f\n\n", result.ConsistencyScore)

		if len(result.Violations) > 0 {
			Writef(os.Stderr, "Violations (%d):\n", len(result.Violations))
			for _, v := range result.Violations {
				printer := warnColor
				if v.Severity >= integrity.SeverityHigh {
					printer = errColor
				}
				Writef(os.Stderr, "  %s\n", printer.Sprint(v.String()))
			}
			Writef(os.Stderr, "\n")
		}
	}

	if result.Valid {
		Writef(os.Stderr, "%s\n", okColor.Sprint("✓ Integrity check passed"))
	} else {
		Writef(os.Stderr, "%s\n", errColor.Sprintf("✗ Integrity check failed: %d violation(s)", len(result.Violations)))
		os.Exit(1)
	}
	return nil
}

// loadConstraints reads a constraint file and builds integrity constraints.
func loadConstraints(path string) ([]integrity.Constraint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading constraints: %w", err)
	}
	var specs []constraintSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("decoding constraints: %w", err)
	}

	out := make([]integrity.Constraint, 0, len(specs))
	for _, spec := range specs {
		kind, err := parseConstraintKind(spec.Kind)
		if err != nil {
			return nil, fmt.Errorf("constraint %q: %w", spec.Name, err)
		}
		severity, err := parseSeverity(spec.Severity)
		if err != nil {
			return nil, fmt.Errorf("constraint %q: %w", spec.Name, err)
		}
		con := integrity.Constraint{
			Name:     spec.Name,
			Kind:     kind,
			Path:     spec.Path,
			Severity: severity,
		}
		if len(spec.Value) > 0 {
			v, err := value.DecodeJSON(spec.Value)
			if err != nil {
				return nil, fmt.Errorf("constraint %q: decode value: %w", spec.Name, err)
			}
			con.Value = v
		}
		out = append(out, con)
	}
	return out, nil
}

func parseConstraintKind(s string) (integrity.ConstraintKind, error) {
	switch strings.ToLower(s) {
	case "not_null", "notnull":
		return integrity.NotNull, nil
	case "unique":
		return integrity.Unique, nil
	case "foreign_key", "foreignkey":
		return integrity.ForeignKey, nil
	case "range":
		return integrity.Range, nil
	case "format":
		return integrity.Format, nil
	default:
		return 0, fmt.Errorf("unknown constraint kind %q; expected not_null, unique, foreign_key, range, or format", s)
	}
}

func parseSeverity(s string) (integrity.Severity, error) {
	switch strings.ToLower(s) {
	case "", "medium":
		return integrity.SeverityMedium, nil
	case "low":
		return integrity.SeverityLow, nil
	case "high":
		return integrity.SeverityHigh, nil
	case "critical":
		return integrity.SeverityCritical, nil
	default:
		return 0, fmt.Errorf("unknown severity %q; expected low, medium, high, or critical", s)
	}
}
