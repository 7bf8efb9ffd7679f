package typesystem

import (
	"math"
	"testing"

	"github.com/funvibe/typedispatch/internal/config"
	"github.com/funvibe/typedispatch/pkg/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrom(t *testing.T) {
	shape := object.NewClass("Shape", nil)
	seven := num(7)

	tests := []struct {
		name string
		in   any
		want Descriptor
	}{
		{"nil", nil, Null},
		{"undefined", object.UNDEFINED, Null},
		{"nil class", (*object.Class)(nil), Null},
		{"nan value", num(math.NaN()), NaN},
		{"nan float", math.NaN(), NaN},
		{"builtin class", object.NumberClass, Number},
		{"user class", shape, UserType{Class: shape}},
		{"descriptor", Integer, Integer},
		{"null value", object.NULL, NewSingleton(object.NULL)},
		{"number value", seven, NewSingleton(seven)},
		{"float", 2.5, NewSingleton(num(2.5))},
		{"string value", str("add"), NewSingleton(str("add"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := From(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestFromRejectsForeignValues(t *testing.T) {
	for _, in := range []any{"Number", 3, struct{}{}} {
		_, err := From(in)
		requireCode(t, err, CodeInvalidDescriptor)
	}
	assert.Panics(t, func() { MustFrom(42) })

	_, err := Tuple(Number, "oops")
	requireCode(t, err, CodeInvalidDescriptor)
	assert.Contains(t, err.Error(), "position 1")

	types, err := Tuple(nil, object.StringClass, Any)
	require.NoError(t, err)
	assert.Equal(t, "(Null, String, Any)", tupleString(types))
}

func TestSingletonEquality(t *testing.T) {
	a, b := num(1), num(1)
	assert.True(t, Check(b, NewSingleton(a)))
	assert.True(t, NewSingleton(a).Equal(NewSingleton(b)), "primitive singletons compare by value")
	assert.False(t, NewSingleton(a).Equal(NewSingleton(num(2))))
	assert.True(t, NewSingleton(str("k")).Equal(NewSingleton(str("k"))))
	assert.False(t, NewSingleton(num(math.NaN())).Equal(NewSingleton(num(math.NaN()))))

	r1, r2 := object.NewRecord(nil), object.NewRecord(nil)
	assert.True(t, NewSingleton(r1).Equal(NewSingleton(r1)))
	assert.False(t, NewSingleton(r1).Equal(NewSingleton(r2)), "records compare by identity")
	assert.True(t, NewSingleton(object.NULL).Equal(NewSingleton(object.NULL)))
	assert.False(t, NewSingleton(object.NULL).Equal(Null))
}

func TestDescriptorEquality(t *testing.T) {
	always := func(object.Object) bool { return true }
	s1 := NewSpecialized("S", Number, always)
	s2 := NewSpecialized("S", Number, always)

	assert.True(t, s1.Equal(s1))
	assert.False(t, s1.Equal(s2), "specialized descriptors compare by identity")
	assert.True(t, NewArrayOf(Number).Equal(NewArrayOf(Number)))
	assert.False(t, NewArrayOf(Number).Equal(NewArrayOf(String)))
	assert.False(t, NewArrayOf(Number).Equal(Array))
	assert.True(t, TypeOf(object.ArrayClass).Equal(Array))
	assert.False(t, Number.Equal(Object))

	a := NewInterface("I", map[string][]Descriptor{"op": {Self, Any}})
	b := NewInterface("I", map[string][]Descriptor{"op": {Self, Any}})
	assert.False(t, a.Equal(b), "interfaces are nominal")
}

func TestDescriptorString(t *testing.T) {
	shape := object.NewClass("Shape", nil)
	old := config.IsTestMode
	config.IsTestMode = true
	t.Cleanup(func() { config.IsTestMode = old })

	tests := []struct {
		d    Descriptor
		want string
	}{
		{Null, "Null"},
		{NaN, "NaN"},
		{Any, "Any"},
		{Number, "Number"},
		{Object, "Object"},
		{Integer, "Integer"},
		{NewArrayOf(NewArrayOf(String)), "[][]String"},
		{TypeOf(shape), "Shape"},
		{NewSingleton(str("x")), `Singleton("x")`},
		{NewSpecialized("", Boolean, func(object.Object) bool { return true }), "Specialized(Boolean)"},
		{WrappedFunctionType, "WrappedFunction"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.d.String())
	}
}

func TestConstructorsRejectNil(t *testing.T) {
	assert.Panics(t, func() { NewSpecialized("x", nil, func(object.Object) bool { return true }) })
	assert.Panics(t, func() { NewSpecialized("x", Number, nil) })
	assert.Panics(t, func() { NewArrayOf(nil) })
}
