package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	testCases := []struct {
		value Value
		want  string
	}{
		{Null(), "null"},
		{Bool(true), "boolean"},
		{Number(3.5), "number"},
		{String("x"), "string"},
		{Array(Int(1)), "array"},
		{Object(map[string]Value{"a": Int(1)}), "object"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.value.Kind().String())
		})
	}
}

func TestZeroValueIsNull(t *testing.T) {
	var v Value
	assert.True(t, v.IsNull())
	assert.Equal(t, KindNull, v.Kind())
}

func TestAccessors(t *testing.T) {
	v := Object(map[string]Value{
		"name":  String("pkg"),
		"count": Int(3),
		"tags":  Array(String("a"), String("b")),
	})

	name, ok := v.Field("name")
	require.True(t, ok)
	s, ok := name.AsString()
	require.True(t, ok)
	assert.Equal(t, "pkg", s)

	_, ok = v.Field("missing")
	assert.False(t, ok)

	tags, ok := v.Field("tags")
	require.True(t, ok)
	assert.Equal(t, 2, tags.Len())

	// Wrong-kind accessors fail cleanly.
	_, ok = name.AsNumber()
	assert.False(t, ok)
	_, ok = name.AsObject()
	assert.False(t, ok)
}

func TestKeysSorted(t *testing.T) {
	v := Object(map[string]Value{"b": Int(1), "a": Int(2), "c": Int(3)})
	assert.Equal(t, []string{"a", "b", "c"}, v.Keys())
}

func TestStringLenCountsRunes(t *testing.T) {
	assert.Equal(t, 4, String("héllo"[0:5]).Len()) // "héll" as bytes decodes to 4 runes
	assert.Equal(t, 5, String("héllo").Len())
	assert.Equal(t, 0, String("").Len())
}

func TestEqual(t *testing.T) {
	testCases := []struct {
		name string
		a, b Value
		want bool
	}{
		{"nulls", Null(), Null(), true},
		{"bools", Bool(true), Bool(true), true},
		{"bool mismatch", Bool(true), Bool(false), false},
		{"kind mismatch", String("1"), Int(1), false},
		{"numbers", Number(1.0), Int(1), true},
		{
			"objects key order independent",
			Object(map[string]Value{"a": Int(1), "b": Int(2)}),
			Object(map[string]Value{"b": Int(2), "a": Int(1)}),
			true,
		},
		{
			"object field mismatch",
			Object(map[string]Value{"a": Int(1)}),
			Object(map[string]Value{"a": Int(2)}),
			false,
		},
		{
			"arrays positional",
			Array(Int(1), Int(2)),
			Array(Int(2), Int(1)),
			false,
		},
		{
			"nested",
			MustFromAny(map[string]any{"a": []any{1, map[string]any{"b": "c"}}}),
			MustFromAny(map[string]any{"a": []any{1, map[string]any{"b": "c"}}}),
			true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Equal(tc.a, tc.b))
		})
	}
}

func TestContains(t *testing.T) {
	arr := Array(String("a"), Int(2), Null())
	assert.True(t, Contains(arr, String("a")))
	assert.True(t, Contains(arr, Number(2)))
	assert.True(t, Contains(arr, Null()))
	assert.False(t, Contains(arr, String("b")))
	assert.False(t, Contains(String("not an array"), String("a")))
}

func TestChecksum(t *testing.T) {
	a := Object(map[string]Value{"x": Int(1), "y": String("z")})
	b := Object(map[string]Value{"y": String("z"), "x": Int(1)})
	c := Object(map[string]Value{"x": Int(2), "y": String("z")})

	assert.Equal(t, Checksum(a), Checksum(b), "equal values must hash equal")
	assert.NotEqual(t, Checksum(a), Checksum(c))
	assert.NotEmpty(t, Checksum(Null()))

	// Kind is part of the hash: "1" and 1 must differ.
	assert.NotEqual(t, Checksum(String("1")), Checksum(Int(1)))
}

func TestAt(t *testing.T) {
	doc := MustFromAny(map[string]any{
		"user": map[string]any{
			"name": "amy",
			"meta": map[string]any{"active": true},
		},
	})

	testCases := []struct {
		path  string
		found bool
		want  Value
	}{
		{"", true, doc},
		{"root", true, doc},
		{"user.name", true, String("amy")},
		{"user.meta.active", true, Bool(true)},
		{"user.missing", false, Value{}},
		{"user.name.deeper", false, Value{}},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			got, ok := At(doc, tc.path)
			require.Equal(t, tc.found, ok)
			if tc.found {
				assert.True(t, Equal(tc.want, got))
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	v, err := DecodeJSON([]byte(`{"id":"a1","n":2.5,"ok":true,"tags":["x"],"none":null}`))
	require.NoError(t, err)

	obj, ok := v.AsObject()
	require.True(t, ok)
	assert.Len(t, obj, 5)

	n, _ := obj["n"].AsNumber()
	assert.Equal(t, 2.5, n)
	assert.True(t, obj["none"].IsNull())

	_, err = DecodeJSON([]byte(`{"broken":`))
	assert.Error(t, err)
}

func TestDecodeYAML(t *testing.T) {
	v, err := DecodeYAML([]byte("name: pkg\ncount: 3\nnested:\n  ok: true\n"))
	require.NoError(t, err)

	obj, ok := v.AsObject()
	require.True(t, ok)
	count, ok := obj["count"].AsNumber()
	require.True(t, ok)
	assert.Equal(t, 3.0, count)

	active, found := At(v, "nested.ok")
	require.True(t, found)
	b, _ := active.AsBool()
	assert.True(t, b)
}

func TestFromAnyNumericWidths(t *testing.T) {
	testCases := []struct {
		name string
		in   any
		want float64
	}{
		{"int", int(7), 7},
		{"int64", int64(-9), -9},
		{"float32", float32(1.5), 1.5},
		{"uint64", uint64(42), 42},
		{"uint64 above int64 range", uint64(1) << 63, 9223372036854775808},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := FromAny(tc.in)
			require.NoError(t, err)
			f, ok := v.AsNumber()
			require.True(t, ok)
			assert.Equal(t, tc.want, f)
		})
	}
}

func TestFromAnyRejectsUnsupported(t *testing.T) {
	_, err := FromAny(struct{}{})
	assert.Error(t, err)

	_, err = FromAny(map[string]any{"k": struct{}{}})
	assert.Error(t, err)
}

func TestDisplayString(t *testing.T) {
	testCases := []struct {
		value Value
		want  string
	}{
		{Null(), "null"},
		{Bool(true), "true"},
		{Int(5), "5"},
		{Number(2.5), "2.5"},
		{String("plain"), "plain"},
		{Array(Int(1), Int(2)), "[1,2]"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.value.String())
		})
	}
}
