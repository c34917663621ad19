package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/valkit/valkit/integrity"
	"github.com/valkit/valkit/value"
)

type integrityConstraintInput struct {
	Name     string `json:"name"               jsonschema:"Constraint name (reported in violations)"`
	Kind     string `json:"kind"               jsonschema:"Constraint kind: not_null, unique, foreign_key, range, or format"`
	Path     string `json:"path"               jsonschema:"Dotted path the constraint applies to (empty for the whole document)"`
	Value    string `json:"value,omitempty"    jsonschema:"Constraint parameter as JSON, e.g. {\"min\":0,\"max\":10} for range or \"email\" for format"`
	Severity string `json:"severity,omitempty" jsonschema:"Violation severity: low, medium, high, or critical (default medium)"`
}

type checkIntegrityInput struct {
	Document    documentInput              `json:"document"              jsonschema:"The document to check"`
	Key         string                     `json:"key,omitempty"         jsonschema:"Document key used for checksum lookup (default: document)"`
	Checksum    string                     `json:"checksum,omitempty"    jsonschema:"Expected structural checksum of the document, taken from the checksum field of a previous call (not a SHA-256 of the bytes)"`
	Constraints []integrityConstraintInput `json:"constraints,omitempty" jsonschema:"Integrity constraints to evaluate"`
	Offset      int                        `json:"offset,omitempty"      jsonschema:"Skip the first N violations (for pagination)"`
	Limit       int                        `json:"limit,omitempty"       jsonschema:"Maximum number of violations to return (default 100)"`
}

type integrityViolation struct {
	Kind       string `json:"kind"`
	Path       string `json:"path"`
	Message    string `json:"message"`
	Severity   string `json:"severity"`
	Suggestion string `json:"suggestion,omitempty"`
}

type checkIntegrityOutput struct {
	Valid            bool                 `json:"valid"`
	ChecksumValid    bool                 `json:"checksum_valid"`
	ConsistencyScore float64              `json:"consistency_score"`
	ViolationCount   int                  `json:"violation_count"`
	Returned         int                  `json:"returned"`
	Checksum         string               `json:"checksum"`
	Violations       []integrityViolation `json:"violations,omitempty"`
}

func handleCheckIntegrity(_ context.Context, _ *mcp.CallToolRequest, input checkIntegrityInput) (*mcp.CallToolResult, checkIntegrityOutput, error) {
	doc, err := input.Document.resolve()
	if err != nil {
		return errResult(err), checkIntegrityOutput{}, nil
	}

	key := input.Key
	if key == "" {
		key = "document"
	}

	checker := integrity.New()
	if input.Checksum != "" {
		checker.AddChecksum(key, input.Checksum)
	}
	for _, c := range input.Constraints {
		con, err := buildConstraint(c)
		if err != nil {
			return errResult(err), checkIntegrityOutput{}, nil
		}
		checker.AddConstraint(con)
	}

	result := checker.Check(doc, key)

	output := checkIntegrityOutput{
		Valid:            result.Valid,
		ChecksumValid:    result.ChecksumValid,
		ConsistencyScore: result.ConsistencyScore,
		ViolationCount:   len(result.Violations),
		Checksum:         value.Checksum(doc),
	}
	output.Violations = makeSlice[integrityViolation](len(result.Violations))
	for _, v := range result.Violations {
		output.Violations = append(output.Violations, integrityViolation{
			Kind:       v.Kind.String(),
			Path:       v.Path,
			Message:    v.Message,
			Severity:   v.Severity.String(),
			Suggestion: v.Suggestion,
		})
	}

	output.Violations = paginate(output.Violations, input.Offset, input.Limit)
	output.Returned = len(output.Violations)

	return nil, output, nil
}

func buildConstraint(in integrityConstraintInput) (integrity.Constraint, error) {
	kind, err := parseConstraintKind(in.Kind)
	if err != nil {
		return integrity.Constraint{}, err
	}
	severity, err := parseSeverity(in.Severity)
	if err != nil {
		return integrity.Constraint{}, err
	}

	con := integrity.Constraint{
		Name:     in.Name,
		Kind:     kind,
		Path:     in.Path,
		Severity: severity,
	}
	if in.Value != "" {
		v, err := value.DecodeJSON([]byte(in.Value))
		if err != nil {
			return integrity.Constraint{}, fmt.Errorf("constraint %q: decode value: %w", in.Name, err)
		}
		con.Value = v
	}
	return con, nil
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
