package reporter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valkit/valkit/value"
)

func TestAddAndFilters(t *testing.T) {
	r := New()
	r.AddAll([]Error{
		{Type: SchemaValidation, Path: "user.id", Message: "bad id", Severity: SeverityError},
		{Type: TypeValidation, Path: "user.age", Message: "bad age", Severity: SeverityCritical},
		{Type: SchemaValidation, Path: "order.total", Message: "bad total", Severity: SeverityWarning},
	})

	assert.Len(t, r.Errors(), 3)
	assert.Len(t, r.ByType(SchemaValidation), 2)
	assert.Len(t, r.ByType(IntegrityViolation), 0)
	assert.Len(t, r.BySeverity(SeverityCritical), 1)
	assert.Len(t, r.ByPath("user"), 2)
	assert.Len(t, r.ByPath("total"), 1)

	// Accumulation order is preserved.
	errs := r.Errors()
	assert.Equal(t, "bad id", errs[0].Message)
	assert.Equal(t, "bad total", errs[2].Message)
}

func TestAdd_StampsTimestamp(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r := New(WithClock(func() time.Time { return fixed }))

	r.Add(Error{Type: SchemaValidation, Message: "x"})
	assert.Equal(t, fixed, r.Errors()[0].Timestamp)

	explicit := fixed.Add(-time.Hour)
	r.Add(Error{Type: SchemaValidation, Message: "y", Timestamp: explicit})
	assert.Equal(t, explicit, r.Errors()[1].Timestamp)
}

func TestSummary(t *testing.T) {
	r := New()
	r.AddAll([]Error{
		{Type: SchemaValidation, Severity: SeverityCritical},
		{Type: SchemaValidation, Severity: SeverityError},
		{Type: TypeValidation, Severity: SeverityWarning},
		{Type: IntegrityViolation, Severity: SeverityInfo},
	})

	s := r.Summary()
	assert.Equal(t, 4, s.TotalErrors)
	assert.Equal(t, 1, s.CriticalErrors)
	assert.Equal(t, 1, s.HighErrors)
	assert.Equal(t, 1, s.Warnings)
	assert.Equal(t, 1, s.Info)
	assert.Equal(t, 2, s.ErrorTypes["schema_validation"])
	assert.Equal(t, 1, s.SeverityDistribution["warning"])
	assert.True(t, s.HasErrors)
	assert.True(t, s.HasCriticalErrors)

	r.Clear()
	empty := r.Summary()
	assert.False(t, empty.HasErrors)
	assert.False(t, empty.HasCriticalErrors)
}

func TestSuggestions_Generic(t *testing.T) {
	r := New()
	r.AddAll([]Error{
		{Type: RequiredFieldMissing, Message: "age missing"},
		{Type: TypeValidation, Message: "wrong type"},
		{Type: InvalidValue, Message: "bad value"},
	})

	got := r.Suggestions()
	require.Len(t, got, 3)
	// Sorted by title.
	assert.Equal(t, "Add Required Field", got[0].Title)
	assert.Equal(t, ActionAdd, got[0].Action)
	assert.Equal(t, "Fix Type Validation", got[1].Title)
	assert.Equal(t, ActionConvert, got[1].Action)
	assert.Equal(t, "Fix Validation Error", got[2].Title)
	assert.Equal(t, ActionValidate, got[2].Action)
}

func TestSuggestions_DeduplicatedByTitle(t *testing.T) {
	r := New()
	r.AddAll([]Error{
		{Type: RequiredFieldMissing, Message: "age missing"},
		{Type: RequiredFieldMissing, Message: "id missing"},
		{Type: ConstraintViolation, Message: "too long"},
	})

	got := r.Suggestions()
	require.Len(t, got, 2)
	assert.Equal(t, "Add Required Field", got[0].Title)
	assert.Equal(t, "Fix Constraint Violation", got[1].Title)
}

func TestSuggestions_RuleTakesPrecedence(t *testing.T) {
	r := New()
	r.AddSuggestionRule(SuggestionRule{
		Pattern:    "email",
		Template:   "Use a valid corporate email address",
		Action:     ActionReplace,
		Confidence: 0.95,
	})
	r.Add(Error{Type: FormatError, Path: "user.email", Message: "malformed address"})

	got := r.Suggestions()
	require.Len(t, got, 1)
	assert.Equal(t, "Use a valid corporate email address", got[0].Description)
	assert.Equal(t, ActionReplace, got[0].Action)
	assert.Equal(t, 0.95, got[0].Confidence)
}

func TestDetectErrors(t *testing.T) {
	r := New()
	r.AddErrorPattern(ErrorPattern{
		Pattern:    "DROP TABLE",
		Type:       CustomValidation,
		Severity:   SeverityCritical,
		Suggestion: "Sanitize the input before processing",
	})

	// Non-string roots are ignored.
	obj, err := value.FromAny(map[string]any{"q": "DROP TABLE users"})
	require.NoError(t, err)
	r.DetectErrors(obj, "payload")
	assert.Empty(t, r.Errors())

	r.DetectErrors(value.String("x; DROP TABLE users;"), "payload")
	errs := r.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, CustomValidation, errs[0].Type)
	assert.Equal(t, "payload", errs[0].Path)
	assert.Contains(t, errs[0].Message, "DROP TABLE")
	require.NotNil(t, errs[0].Suggestion)
	assert.Equal(t, "Fix Pattern Match", errs[0].Suggestion.Title)

	r.DetectErrors(value.String("harmless"), "payload")
	assert.Len(t, r.Errors(), 1)
}

func TestExport(t *testing.T) {
	r := New()
	r.Add(Error{
		Type:     SchemaValidation,
		Path:     "user.id",
		Message:  "bad id",
		Severity: SeverityError,
		Suggestion: &Suggestion{
			Title: "Fix It", Description: "d", Action: ActionFix, Confidence: 0.7,
		},
	})

	exported := r.Export()
	errsVal, ok := exported.Field("errors")
	require.True(t, ok)
	elems, ok := errsVal.AsArray()
	require.True(t, ok)
	require.Len(t, elems, 1)

	msg, ok := elems[0].Field("message")
	require.True(t, ok)
	s, _ := msg.AsString()
	assert.Equal(t, "bad id", s)

	summaryVal, ok := exported.Field("summary")
	require.True(t, ok)
	total, ok := summaryVal.Field("total_errors")
	require.True(t, ok)
	n, _ := total.AsNumber()
	assert.Equal(t, 1.0, n)
}

func TestCustomAction(t *testing.T) {
	a := CustomAction("escalate")
	assert.Equal(t, Action("custom:escalate"), a)
}
