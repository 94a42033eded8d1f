package literal

import (
	"testing"

	"github.com/jammie/rdf/internal/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DispatchesOnDatatype(t *testing.T) {
	tests := []struct {
		datatype URI
		kind     Kind
	}{
		{XSDTime, KindTime},
		{XSDDate, KindDate},
		{XSDDateTime, KindDateTime},
		{XSDString, KindOther},
		{"http://example.org/custom", KindOther},
	}

	for _, tt := range tests {
		t.Run(string(tt.datatype), func(t *testing.T) {
			l := New("x", tt.datatype)
			assert.Equal(t, tt.kind, l.Kind())
			assert.Equal(t, tt.datatype, l.Datatype())
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "time", KindTime.String())
	assert.Equal(t, "date", KindDate.String())
	assert.Equal(t, "dateTime", KindDateTime.String())
	assert.Equal(t, "other", KindOther.String())
}

func TestPlain(t *testing.T) {
	l := NewPlain("hello", "")
	assert.Equal(t, XSDString, l.Datatype())
	assert.True(t, l.Valid())
	assert.Equal(t, "hello", l.String())

	c, err := l.Canonicalize()
	require.NoError(t, err)
	assert.Same(t, l, c)

	assert.True(t, l.Equal(NewPlain("hello", XSDString)))
	assert.False(t, l.Equal(NewPlain("hello", "urn:other")))
	assert.False(t, l.Equal(nil))
}

func TestSameTerm_Nil(t *testing.T) {
	assert.True(t, SameTerm(nil, nil))
	assert.True(t, SameTerm((*Time)(nil), nil))
	assert.False(t, SameTerm(NewTime("10:00:00Z"), nil))
	assert.False(t, SameTerm(nil, NewPlain("a", "")))
}

func TestNilInput(t *testing.T) {
	var nilTime *Time
	tests := []struct {
		name  string
		input any
		want  bool
	}{
		{"untyped nil", nil, true},
		{"nil literal", nilTime, true},
		{"nil converter", TimeConverter(nilTime), true},
		{"nil slice", []byte(nil), true},
		{"literal", NewTime("10:00:00Z"), false},
		{"string", "", false},
		{"int", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nilInput(tt.input))
		})
	}
}

func TestConstructors_NilLiteralInputs(t *testing.T) {
	inputs := []any{(*Time)(nil), (*Date)(nil), (*DateTime)(nil), (*Plain)(nil)}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			assert.False(t, NewTime(in).Valid())
			assert.False(t, NewDate(in).Valid())
			assert.False(t, NewDateTime(in).Valid())
		}, "%T", in)
	}
}

func TestCanonical_DoesNotMutate(t *testing.T) {
	l := NewTime("14:30:00-05:00")

	got, err := Canonical(l)
	require.NoError(t, err)
	assert.Equal(t, "19:30:00Z", got)
	assert.Equal(t, "14:30:00-05:00", l.String())

	_, err = Canonical(NewTime("nope"))
	assert.True(t, IsCanonicalizeError(err))

	_, err = Canonical(nil)
	assert.Error(t, err)
}

func TestCanonicalize_Helper(t *testing.T) {
	tests := []struct {
		lit      Literal
		expected string
	}{
		{NewTime("14:30:00-05:00"), "19:30:00Z"},
		{NewDate("2024-01-01+00:00"), "2024-01-01Z"},
		{NewDateTime("2024-01-01T10:00:00+02:00"), "2024-01-01T08:00:00Z"},
		{NewPlain("as is", ""), "as is"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			require.NoError(t, Canonicalize(tt.lit))
			assert.Equal(t, tt.expected, tt.lit.String())
		})
	}

	assert.True(t, IsCanonicalizeError(Canonicalize(NewDate("nope"))))
}

func TestEquality_Symmetric(t *testing.T) {
	lits := []Literal{
		NewTime("10:00:00Z"),
		NewTime("12:00:00+02:00"),
		NewTime("10:00"),
		NewTime("garbage"),
		NewDate("2000-01-01Z"),
		NewDateTime("2000-01-01T10:00:00Z"),
		NewPlain("10:00:00Z", XSDTime),
		NewPlain("10:00:00Z", XSDString),
	}

	for _, a := range lits {
		for _, b := range lits {
			assert.Equal(t, a.Equal(b), b.Equal(a), "%s(%s) vs %s(%s)", a.Kind(), a, b.Kind(), b)
		}
	}
}

func TestToIR(t *testing.T) {
	obj := ToIR(NewTime("14:30:00-05:00"))
	assert.Equal(t, ir.IRObject{
		"datatype":  ir.IRString(XSDTime),
		"kind":      ir.IRString("time"),
		"string":    ir.IRString("14:30:00-05:00"),
		"valid":     ir.IRBool(true),
		"lexical":   ir.IRString("14:30:00-05:00"),
		"canonical": ir.IRString("19:30:00Z"),
	}, obj)

	obj = ToIR(NewTime(42))
	assert.NotContains(t, obj, "lexical")
	assert.NotContains(t, obj, "canonical")
	assert.Equal(t, ir.IRBool(false), obj["valid"])
}

func TestID(t *testing.T) {
	a, err := ID(NewTime("10:00:00Z"))
	require.NoError(t, err)
	b, err := ID(NewPlain("10:00:00Z", XSDTime))
	require.NoError(t, err)
	c, err := ID(NewTime("12:00:00+02:00"))
	require.NoError(t, err)

	assert.Equal(t, a, b, "same term, same id")
	assert.NotEqual(t, a, c, "equal values with different terms keep distinct ids")
	assert.Len(t, a, 64)
}

func TestValueKey(t *testing.T) {
	tests := []struct {
		name string
		lit  Literal
		key  string
		ok   bool
	}{
		{"time", NewTime("12:00:00+02:00"), "time/10:00:00", true},
		{"time fraction dropped", NewTime("10:00:00.75Z"), "time/10:00:00", true},
		{"date", NewDate("2024-01-01+00:00"), "date/2024-01-01Z", true},
		{"dateTime", NewDateTime("2024-01-01T10:00:00+02:00"), "dateTime/2024-01-01T08:00:00Z", true},
		{"invalid", NewTime("10:00"), "", false},
		{"plain", NewPlain("x", ""), "", false},
		{"nil", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := ValueKey(tt.lit)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestValueKey_AgreesWithEqual(t *testing.T) {
	a := NewTime("00:30:00+01:00")
	b := NewTime("23:30:00Z")
	require.True(t, a.Equal(b))

	ka, _ := ValueKey(a)
	kb, _ := ValueKey(b)
	assert.Equal(t, ka, kb)
}
