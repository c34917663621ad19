package integrity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valkit/valkit/value"
)

func mustValue(t *testing.T, v any) value.Value {
	t.Helper()
	val, err := value.FromAny(v)
	require.NoError(t, err)
	return val
}

func TestCheck_CleanDocument(t *testing.T) {
	c := New()
	result := c.Check(mustValue(t, map[string]any{"id": 1}), "doc")

	assert.True(t, result.Valid)
	assert.True(t, result.ChecksumValid)
	assert.Empty(t, result.Violations)
	assert.Equal(t, 100.0, result.ConsistencyScore)
}

func TestCheck_Checksum(t *testing.T) {
	c := New()
	doc := mustValue(t, map[string]any{"id": 1, "name": "a"})
	c.AddChecksum("doc", value.Checksum(doc))

	ok := c.Check(doc, "doc")
	assert.True(t, ok.Valid)
	assert.True(t, ok.ChecksumValid)

	tampered := mustValue(t, map[string]any{"id": 2, "name": "a"})
	bad := c.Check(tampered, "doc")
	assert.False(t, bad.Valid)
	assert.False(t, bad.ChecksumValid)
	require.Len(t, bad.Violations, 1)
	assert.Equal(t, ChecksumMismatch, bad.Violations[0].Kind)
	assert.Equal(t, SeverityCritical, bad.Violations[0].Severity)
	assert.Equal(t, 50.0, bad.ConsistencyScore)

	// Checksums only apply to their own key.
	other := c.Check(tampered, "other-doc")
	assert.True(t, other.ChecksumValid)
}

func TestCheck_NotNull(t *testing.T) {
	c := New()
	c.AddConstraint(Constraint{
		Name: "email-set", Kind: NotNull, Path: "email", Severity: SeverityHigh,
	})

	bad := c.Check(mustValue(t, map[string]any{"email": nil}), "doc")
	require.Len(t, bad.Violations, 1)
	assert.Equal(t, NullConstraintViolation, bad.Violations[0].Kind)
	assert.Equal(t, "email", bad.Violations[0].Path)
	assert.Equal(t, 70.0, bad.ConsistencyScore)

	// An absent path skips the constraint.
	absent := c.Check(mustValue(t, map[string]any{"name": "x"}), "doc")
	assert.True(t, absent.Valid)
}

func TestCheck_Unique(t *testing.T) {
	c := New()
	c.AddConstraint(Constraint{
		Name: "email-unique", Kind: Unique, Path: "email", Severity: SeverityMedium,
	})

	// Without a seen index only explicit nulls are flagged.
	nullDoc := c.Check(mustValue(t, map[string]any{"email": nil}), "doc")
	require.Len(t, nullDoc.Violations, 1)
	assert.Equal(t, DuplicateKeyViolation, nullDoc.Violations[0].Kind)

	doc := mustValue(t, map[string]any{"email": "a@b.co"})
	assert.True(t, c.Check(doc, "doc").Valid)

	seen := map[string][]value.Value{
		"email": {value.String("a@b.co")},
	}
	dup := c.Check(doc, "doc", WithSeenIndex(seen))
	require.Len(t, dup.Violations, 1)
	assert.Equal(t, DuplicateKeyViolation, dup.Violations[0].Kind)
	assert.Contains(t, dup.Violations[0].Message, "duplicates")

	fresh := c.Check(mustValue(t, map[string]any{"email": "c@d.co"}), "doc", WithSeenIndex(seen))
	assert.True(t, fresh.Valid)
}

func TestCheck_ForeignKey(t *testing.T) {
	c := New()
	c.AddConstraint(Constraint{
		Name: "owner", Kind: ForeignKey, Path: "owner_id",
		Value: value.Int(7), Severity: SeverityHigh,
	})

	ok := c.Check(mustValue(t, map[string]any{"owner_id": 7}), "doc")
	assert.True(t, ok.Valid)

	bad := c.Check(mustValue(t, map[string]any{"owner_id": 8}), "doc")
	require.Len(t, bad.Violations, 1)
	assert.Equal(t, ReferentialIntegrityViolation, bad.Violations[0].Kind)
}

func TestCheck_Range(t *testing.T) {
	c := New()
	c.AddConstraint(Constraint{
		Name: "age-range", Kind: Range, Path: "age",
		Value:    mustValue(t, map[string]any{"min": 0, "max": 130}),
		Severity: SeverityMedium,
	})

	assert.True(t, c.Check(mustValue(t, map[string]any{"age": 30}), "doc").Valid)

	low := c.Check(mustValue(t, map[string]any{"age": -1}), "doc")
	require.Len(t, low.Violations, 1)
	assert.Equal(t, RangeViolation, low.Violations[0].Kind)
	assert.Contains(t, low.Violations[0].Message, "below minimum")

	high := c.Check(mustValue(t, map[string]any{"age": 200}), "doc")
	require.Len(t, high.Violations, 1)
	assert.Contains(t, high.Violations[0].Message, "exceeds maximum")

	// Non-numeric targets skip the constraint.
	assert.True(t, c.Check(mustValue(t, map[string]any{"age": "old"}), "doc").Valid)
}

func TestCheck_Format(t *testing.T) {
	tests := []struct {
		name   string
		format string
		value  string
		valid  bool
	}{
		{name: "valid email", format: "email", value: "user@example.com", valid: true},
		{name: "invalid email", format: "email", value: "not-an-email", valid: false},
		{name: "valid url", format: "url", value: "https://example.com", valid: true},
		{name: "invalid url", format: "url", value: "ftp://example.com", valid: false},
		{name: "valid date", format: "date", value: "2024-06-01T12:00:00Z", valid: true},
		{name: "invalid date", format: "date", value: "June 1st", valid: false},
		{name: "valid uuid", format: "uuid", value: "123e4567-e89b-12d3-a456-426614174000", valid: true},
		{name: "invalid uuid", format: "uuid", value: "123", valid: false},
		{name: "unknown format passes", format: "phone", value: "whatever", valid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.AddConstraint(Constraint{
				Name: "fmt", Kind: Format, Path: "field",
				Value: value.String(tt.format), Severity: SeverityLow,
			})
			result := c.Check(mustValue(t, map[string]any{"field": tt.value}), "doc")
			if tt.valid {
				assert.True(t, result.Valid)
			} else {
				require.Len(t, result.Violations, 1)
				assert.Equal(t, FormatViolation, result.Violations[0].Kind)
			}
		})
	}
}

func TestCheck_CustomPredicate(t *testing.T) {
	c := New()
	c.AddConstraint(Constraint{
		Name: "even", Kind: Custom, Path: "count", Severity: SeverityLow,
	})

	doc := mustValue(t, map[string]any{"count": 3})

	// Unregistered predicates pass.
	assert.True(t, c.Check(doc, "doc").Valid)

	c.RegisterPredicate("even", func(v value.Value) bool {
		f, ok := v.AsNumber()
		return ok && int(f)%2 == 0
	})

	bad := c.Check(doc, "doc")
	require.Len(t, bad.Violations, 1)
	assert.Equal(t, ConstraintViolation, bad.Violations[0].Kind)

	assert.True(t, c.Check(mustValue(t, map[string]any{"count": 4}), "doc").Valid)
}

func TestCheck_RootPathConstraint(t *testing.T) {
	c := New()
	c.AddConstraint(Constraint{
		Name: "present", Kind: NotNull, Path: "root", Severity: SeverityCritical,
	})

	bad := c.Check(value.Null(), "doc")
	require.Len(t, bad.Violations, 1)
	assert.Equal(t, NullConstraintViolation, bad.Violations[0].Kind)
}

func TestCheck_NestingDepthProbe(t *testing.T) {
	c := New()

	nested := mustValue(t, map[string]any{
		"a": map[string]any{"b": []any{map[string]any{"c": 1}}},
	})
	assert.True(t, c.Check(nested, "doc").Valid)

	deep := value.Int(1)
	for i := 0; i <= maxNestingDepth; i++ {
		deep = value.Array(deep)
	}
	bad := c.Check(deep, "doc")
	assert.False(t, bad.Valid)
	require.Len(t, bad.Violations, 1)
	assert.Equal(t, DataConsistencyViolation, bad.Violations[0].Kind)
	assert.Contains(t, bad.Violations[0].Message, "circular reference")
}

func TestConsistencyScore(t *testing.T) {
	assert.Equal(t, 100.0, consistencyScore(nil))

	violations := []Violation{
		{Severity: SeverityLow},      // -5
		{Severity: SeverityMedium},   // -15
		{Severity: SeverityHigh},     // -30
		{Severity: SeverityCritical}, // -50
	}
	assert.Equal(t, 0.0, consistencyScore(violations))

	// Score is monotonically non-increasing as violations accumulate.
	prev := 100.0
	var acc []Violation
	for _, v := range violations {
		acc = append(acc, v)
		score := consistencyScore(acc)
		assert.LessOrEqual(t, score, prev)
		prev = score
	}

	// Floored at zero no matter how many violations.
	many := make([]Violation, 50)
	for i := range many {
		many[i] = Violation{Severity: SeverityCritical}
	}
	assert.Equal(t, 0.0, consistencyScore(many))
}

func TestClearOperations(t *testing.T) {
	c := New()
	c.AddChecksum("a", "123")
	c.AddConstraint(Constraint{Name: "x", Kind: NotNull, Path: "f"})

	assert.Len(t, c.Checksums(), 1)
	assert.Len(t, c.Constraints(), 1)

	c.ClearChecksums()
	c.ClearConstraints()

	assert.Empty(t, c.Checksums())
	assert.Empty(t, c.Constraints())
}
