package typecheck

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valkit/valkit/valerrors"
	"github.com/valkit/valkit/value"
)

func TestValidateType_Compatibility(t *testing.T) {
	tests := []struct {
		name     string
		val      value.Value
		typeName string
		valid    bool
	}{
		{name: "string matches string", val: value.String("x"), typeName: "string", valid: true},
		{name: "number matches number", val: value.Number(1.5), typeName: "number", valid: true},
		{name: "number matches integer", val: value.Int(3), typeName: "integer", valid: true},
		{name: "fractional number matches integer", val: value.Number(1.5), typeName: "integer", valid: true},
		{name: "string does not match number", val: value.String("3"), typeName: "number", valid: false},
		{name: "null matches null", val: value.Null(), typeName: "null", valid: true},
		{name: "bool does not match string", val: value.Bool(true), typeName: "string", valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			result := v.ValidateType(tt.val, tt.typeName)
			assert.Equal(t, tt.valid, result.Valid)
			assert.Equal(t, tt.typeName, result.ExpectedType)
			if !tt.valid {
				require.Len(t, result.Errors, 1)
				assert.Equal(t, TypeMismatch, result.Errors[0].Kind)
			}
		})
	}
}

func TestValidateType_MismatchDoesNotAbort(t *testing.T) {
	v := New()
	v.AddConstraint(Constraint{
		Name:     "max",
		Kind:     MaxValue,
		Value:    value.Number(10),
		Severity: SeverityError,
	})

	result := v.ValidateType(value.Number(99), "string")

	require.Len(t, result.Errors, 2)
	assert.Equal(t, TypeMismatch, result.Errors[0].Kind)
	assert.Equal(t, RangeViolation, result.Errors[1].Kind)
}

func TestValidateType_TypeDefinition(t *testing.T) {
	v := New()
	require.NoError(t, v.RegisterType(TypeDefinition{
		Name:     "username",
		BaseType: "string",
		Constraints: []Constraint{
			{Name: "min", Kind: MinLength, Value: value.Int(3), Severity: SeverityError},
			{Name: "max", Kind: MaxLength, Value: value.Int(12), Severity: SeverityError},
		},
	}))

	ok := v.ValidateType(value.String("alice"), "username")
	assert.True(t, ok.Valid)

	short := v.ValidateType(value.String("al"), "username")
	require.Len(t, short.Errors, 1)
	assert.Equal(t, ConstraintViolation, short.Errors[0].Kind)

	wrongKind := v.ValidateType(value.Int(5), "username")
	// Name compatibility and base type compatibility both fail.
	assert.Len(t, wrongKind.Errors, 2)
}

func TestValidateType_WarningSeverityRouting(t *testing.T) {
	v := New()
	v.AddConstraint(Constraint{
		Name:     "soft-cap",
		Kind:     MaxValue,
		Value:    value.Number(10),
		Severity: SeverityWarning,
	})
	v.AddConstraint(Constraint{
		Name:     "hard-floor",
		Kind:     MinValue,
		Value:    value.Number(0),
		Severity: SeverityCritical,
	})

	result := v.ValidateType(value.Number(50), "number")
	assert.True(t, result.Valid)
	assert.Len(t, result.Warnings, 1)
	assert.Empty(t, result.Errors)

	result = v.ValidateType(value.Number(-1), "number")
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, RangeViolation, result.Errors[0].Kind)
}

func TestConstraints(t *testing.T) {
	tests := []struct {
		name       string
		constraint Constraint
		val        value.Value
		wantKind   ErrorKind
		wantClean  bool
	}{
		{
			name:       "required fails on null",
			constraint: Constraint{Name: "id", Kind: Required, Severity: SeverityError},
			val:        value.Null(),
			wantKind:   RequiredFieldMissing,
		},
		{
			name:       "required passes on value",
			constraint: Constraint{Name: "id", Kind: Required, Severity: SeverityError},
			val:        value.String(""),
			wantClean:  true,
		},
		{
			name:       "pattern mismatch",
			constraint: Constraint{Name: "hex", Kind: Pattern, Value: value.String("^[0-9a-f]+$"), Severity: SeverityError},
			val:        value.String("xyz"),
			wantKind:   FormatError,
		},
		{
			name:       "bad pattern skipped",
			constraint: Constraint{Name: "bad", Kind: Pattern, Value: value.String("(["), Severity: SeverityError},
			val:        value.String("anything"),
			wantClean:  true,
		},
		{
			name:       "pattern ignores non-strings",
			constraint: Constraint{Name: "hex", Kind: Pattern, Value: value.String("^[0-9a-f]+$"), Severity: SeverityError},
			val:        value.Int(7),
			wantClean:  true,
		},
		{
			name:       "enum rejects value outside set",
			constraint: Constraint{Name: "color", Kind: Enum, Value: value.Array(value.String("red"), value.String("blue")), Severity: SeverityError},
			val:        value.String("green"),
			wantKind:   InvalidValue,
		},
		{
			name:       "enum accepts structural match",
			constraint: Constraint{Name: "color", Kind: Enum, Value: value.Array(value.String("red"), value.String("blue")), Severity: SeverityError},
			val:        value.String("blue"),
			wantClean:  true,
		},
		{
			name:       "min value violation",
			constraint: Constraint{Name: "floor", Kind: MinValue, Value: value.Number(0), Severity: SeverityError},
			val:        value.Number(-3),
			wantKind:   RangeViolation,
		},
		{
			name:       "length constraints skip non-strings",
			constraint: Constraint{Name: "min", Kind: MinLength, Value: value.Int(5), Severity: SeverityError},
			val:        value.Int(1),
			wantClean:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.AddConstraint(tt.constraint)
			result := v.ValidateType(tt.val, tt.val.Kind().String())
			if tt.wantClean {
				assert.True(t, result.Valid)
				assert.Empty(t, result.Errors)
			} else {
				require.Len(t, result.Errors, 1)
				assert.Equal(t, tt.wantKind, result.Errors[0].Kind)
			}
		})
	}
}

func TestCustomConstraint(t *testing.T) {
	v := New()
	v.AddConstraint(Constraint{Name: "non-negative", Kind: Custom, Severity: SeverityError})

	// Unregistered predicates pass unconditionally.
	assert.True(t, v.ValidateType(value.Number(-5), "number").Valid)

	v.RegisterPredicate("non-negative", func(val value.Value) (bool, error) {
		f, ok := val.AsNumber()
		return ok && f >= 0, nil
	})

	assert.True(t, v.ValidateType(value.Number(5), "number").Valid)

	failed := v.ValidateType(value.Number(-5), "number")
	require.Len(t, failed.Errors, 1)
	assert.Equal(t, ConstraintViolation, failed.Errors[0].Kind)
	assert.Contains(t, failed.Errors[0].Message, "'non-negative'")

	assert.True(t, v.RemovePredicate("non-negative"))
	assert.False(t, v.RemovePredicate("non-negative"))
}

func TestCompilePredicate(t *testing.T) {
	even, err := CompilePredicate("int(value) % 2 == 0")
	require.NoError(t, err)

	ok, err := even(value.Int(4))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = even(value.Int(3))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = CompilePredicate("this is not an expression")
	require.Error(t, err)
	assert.True(t, errors.Is(err, valerrors.ErrConfig))
}

func TestRegisterType_Validation(t *testing.T) {
	v := New()

	err := v.RegisterType(TypeDefinition{BaseType: "string"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, valerrors.ErrConfig))

	err = v.RegisterType(TypeDefinition{Name: "thing"})
	require.Error(t, err)

	err = v.RegisterType(TypeDefinition{Name: "thing", BaseType: "tuple"})
	require.Error(t, err)

	require.NoError(t, v.RegisterType(TypeDefinition{Name: "thing", BaseType: "object"}))
	assert.True(t, v.HasType("thing"))

	def, ok := v.RemoveType("thing")
	require.True(t, ok)
	assert.Equal(t, "object", def.BaseType)
	assert.False(t, v.HasType("thing"))
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name    string
		val     value.Value
		target  string
		want    value.Value
		wantErr bool
	}{
		{name: "string true to boolean", val: value.String("true"), target: "boolean", want: value.Bool(true)},
		{name: "string yes to boolean", val: value.String("yes"), target: "boolean", want: value.Bool(true)},
		{name: "string OFF to boolean", val: value.String("OFF"), target: "boolean", want: value.Bool(false)},
		{name: "string abc to number fails", val: value.String("abc"), target: "number", wantErr: true},
		{name: "string to number", val: value.String("3.5"), target: "number", want: value.Number(3.5)},
		{name: "string to integer", val: value.String("42"), target: "integer", want: value.Int(42)},
		{name: "fractional string to integer fails", val: value.String("3.5"), target: "integer", wantErr: true},
		{name: "number truncates to integer", val: value.Number(3.9), target: "integer", want: value.Int(3)},
		{name: "number to string", val: value.Number(7), target: "string", want: value.String("7")},
		{name: "bool passes through", val: value.Bool(true), target: "boolean", want: value.Bool(true)},
		{name: "scalar wraps to array", val: value.Int(1), target: "array", want: value.Array(value.Int(1))},
		{name: "array passes through", val: value.Array(value.Int(1)), target: "array", want: value.Array(value.Int(1))},
		{name: "string to object fails", val: value.String("{}"), target: "object", wantErr: true},
		{name: "anything to null", val: value.String("x"), target: "null", want: value.Null()},
		{name: "null to boolean fails", val: value.Null(), target: "boolean", wantErr: true},
		{name: "unknown target type", val: value.Int(1), target: "tuple", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.val, tt.target)
			if tt.wantErr {
				require.Error(t, err)
				var ce *valerrors.ConversionError
				assert.ErrorAs(t, err, &ce)
				return
			}
			require.NoError(t, err)
			assert.True(t, value.Equal(tt.want, got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestConvert_ObjectPassThrough(t *testing.T) {
	obj := value.Object(map[string]value.Value{"k": value.Int(1)})
	got, err := Convert(obj, "object")
	require.NoError(t, err)
	assert.True(t, value.Equal(obj, got))
}
