package typesystem

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/funvibe/typedispatch/pkg/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var consClass = object.NewClass("Cons", nil)

func cons(head, tail object.Object) *object.Instance {
	return object.NewInstance(consClass, map[string]object.Object{"head": head, "tail": tail})
}

func newLength() *Generic {
	length := NewGeneric("length")
	length.DefineMethod([]Descriptor{TypeOf(consClass)}, func(args ...object.Object) (object.Object, error) {
		rest, err := length.Call(args[0].(*object.Instance).Get("tail"))
		if err != nil {
			return nil, err
		}
		return num(1 + rest.(*object.Number).Value), nil
	})
	length.DefineMethod([]Descriptor{Null}, constant(num(0)))
	return length
}

func TestGenericRecursion(t *testing.T) {
	length := newLength()

	res, err := length.Call(cons(num(1), cons(num(2), object.NULL)))
	require.NoError(t, err)
	requireNumber(t, res, 2)

	res, err = length.Call(object.UNDEFINED)
	require.NoError(t, err)
	requireNumber(t, res, 0)

	_, err = length.Call(cons(num(1), str("not a list")))
	e := requireCode(t, err, CodeNoApplicableMethod)
	assert.Equal(t, []object.ObjectType{object.STRING_OBJ}, e.ActualTypes)
}

func TestGenericPredicateFallback(t *testing.T) {
	isList := NewGeneric("isList")
	isList.DefineMethods(
		Method{Types: []Descriptor{Any}, Impl: constant(object.FALSE)},
		Method{Types: []Descriptor{Null}, Impl: constant(object.TRUE)},
		Method{Types: []Descriptor{TypeOf(consClass)}, Impl: func(args ...object.Object) (object.Object, error) {
			return isList.Call(args[0].(*object.Instance).Get("tail"))
		}},
	)

	tests := []struct {
		name  string
		value object.Object
		want  *object.Boolean
	}{
		{"empty", object.NULL, object.TRUE},
		{"proper", cons(num(1), cons(num(2), object.NULL)), object.TRUE},
		{"improper", cons(num(1), num(2)), object.FALSE},
		{"number", num(3), object.FALSE},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := isList.Call(tt.value)
			require.NoError(t, err)
			assert.Same(t, tt.want, res)
		})
	}
}

func classifyMethods() []Method {
	return []Method{
		{Types: []Descriptor{Number}, Impl: label("number")},
		{Types: []Descriptor{NaN}, Impl: label("NaN")},
		{Types: []Descriptor{Object}, Impl: label("object")},
		{Types: []Descriptor{Integer}, Impl: label("integer")},
		{Types: []Descriptor{Null}, Impl: label("null")},
		{Types: []Descriptor{String}, Impl: label("string")},
	}
}

func TestGenericSpecificityBeatsRegistrationOrder(t *testing.T) {
	one := NewGeneric("classify")
	for _, m := range classifyMethods() {
		one.DefineMethod(m.Types, m.Impl)
	}
	many := NewGeneric("classify").DefineMethods(classifyMethods()...)

	tests := []struct {
		name  string
		value object.Object
		want  string
	}{
		{"integer", num(1), "integer"},
		{"fraction", num(1.5), "number"},
		{"nan", num(math.NaN()), "NaN"},
		{"record", object.NewRecord(nil), "object"},
		{"null", object.NULL, "null"},
		{"undefined", object.UNDEFINED, "null"},
		{"string", str("test"), "string"},
		{"array", object.NewArray(), "object"},
	}
	for _, g := range []*Generic{one, many} {
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				res, err := g.Call(tt.value)
				require.NoError(t, err)
				requireString(t, res, tt.want)
			})
		}
	}
}

func TestGenericMultipleArguments(t *testing.T) {
	collide := NewGeneric("collide").DefineMethods(
		Method{Types: []Descriptor{Object, Object}, Impl: label("generic")},
		Method{Types: []Descriptor{Number, Object}, Impl: label("number-left")},
		Method{Types: []Descriptor{Number, Number}, Impl: label("numbers")},
		Method{Types: []Descriptor{Number}, Impl: label("unary")},
	)

	tests := []struct {
		name string
		args []object.Object
		want string
	}{
		{"both numbers", []object.Object{num(1), num(2)}, "numbers"},
		{"number first", []object.Object{num(1), str("x")}, "number-left"},
		{"string first", []object.Object{str("x"), num(1)}, "generic"},
		{"unary", []object.Object{num(1)}, "unary"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := collide.Call(tt.args...)
			require.NoError(t, err)
			requireString(t, res, tt.want)
		})
	}

	_, err := collide.Call(num(1), num(2), num(3))
	e := requireCode(t, err, CodeNoApplicableMethod)
	assert.Len(t, e.ActualTypes, 3)
	assert.Equal(t, "collide", e.Details["generic"])

	_, err = collide.Call(object.NULL, num(2))
	e = requireCode(t, err, CodeNoApplicableMethod)
	assert.Equal(t, []object.ObjectType{object.NULL_OBJ, object.NUMBER_OBJ}, e.ActualTypes)
	assert.Contains(t, e.Error(), "collide(NULL, NUMBER)")
}

func TestGenericAmbiguity(t *testing.T) {
	methods := []Method{
		{Types: []Descriptor{Number, Object}, Impl: label("left")},
		{Types: []Descriptor{Object, Number}, Impl: label("right")},
	}

	lenient := NewGeneric("pair").DefineMethods(methods...)
	res, err := lenient.Call(num(1), num(2))
	require.NoError(t, err)
	requireString(t, res, "left")

	strict := NewGeneric("pair", WithAmbiguityErrors()).DefineMethods(methods...)
	_, err = strict.Call(num(1), num(2))
	e := requireCode(t, err, CodeAmbiguousDispatch)
	assert.ErrorIs(t, err, ErrAmbiguousDispatch)
	require.Len(t, e.Candidates, 2)
	assert.True(t, e.Candidates[0][0].Equal(Number))
	assert.True(t, e.Candidates[1][1].Equal(Number))

	res, err = strict.Call(num(1), str("x"))
	require.NoError(t, err, "a unique match is never ambiguous")
	requireString(t, res, "left")

	strict.DefineMethod([]Descriptor{Number, Number}, label("both"))
	res, err = strict.Call(num(1), num(2))
	require.NoError(t, err, "a more specific method settles the tie")
	requireString(t, res, "both")
}

func TestGenericIncomparableSpecializations(t *testing.T) {
	small := NewSpecialized("Small", Number, func(v object.Object) bool { return v.(*object.Number).Value < 10 })
	g := NewGeneric("size").DefineMethods(
		Method{Types: []Descriptor{Integer}, Impl: label("integer")},
		Method{Types: []Descriptor{small}, Impl: label("small")},
		Method{Types: []Descriptor{Number}, Impl: label("number")},
	)

	res, err := g.Call(num(3))
	require.NoError(t, err)
	requireString(t, res, "integer")

	res, err = g.Call(num(3.5))
	require.NoError(t, err)
	requireString(t, res, "small")

	res, err = g.Call(num(30.5))
	require.NoError(t, err)
	requireString(t, res, "number")
}

func TestGenericSnapshotDuringDispatch(t *testing.T) {
	g := NewGeneric("grow")
	g.DefineMethod([]Descriptor{Number}, func(args ...object.Object) (object.Object, error) {
		g.DefineMethod([]Descriptor{Integer}, label("late"))
		return str("early"), nil
	})

	res, err := g.Call(num(1))
	require.NoError(t, err)
	requireString(t, res, "early")
	assert.Len(t, g.Methods(), 2)

	res, err = g.Call(num(1))
	require.NoError(t, err)
	requireString(t, res, "late")
}

func TestGenericIsAFunctionValue(t *testing.T) {
	double := NewGeneric("double").DefineMethod([]Descriptor{Number}, func(args ...object.Object) (object.Object, error) {
		return num(args[0].(*object.Number).Value * 2), nil
	})
	apply := NewGeneric("apply").DefineMethod([]Descriptor{Function, Any}, func(args ...object.Object) (object.Object, error) {
		return args[0].(object.Callable).Call(args[1])
	})

	assert.True(t, Check(double, Function))
	assert.Equal(t, "generic double", double.Inspect())

	res, err := apply.Call(double, num(4))
	require.NoError(t, err)
	requireNumber(t, res, 8)
}

func TestGenericResolveAndApplicable(t *testing.T) {
	g := NewGeneric("classify").DefineMethods(classifyMethods()...)

	applicable := g.Applicable(num(2))
	require.Len(t, applicable, 3)
	assert.True(t, applicable[0].Types[0].Equal(Number))
	assert.True(t, applicable[1].Types[0].Equal(Object))
	assert.True(t, applicable[2].Types[0].Equal(Integer))

	m, err := g.Resolve(num(2))
	require.NoError(t, err)
	assert.True(t, m.Types[0].Equal(Integer))

	_, err = NewGeneric("empty").Resolve(num(2))
	requireCode(t, err, CodeNoApplicableMethod)

	methods := g.Methods()
	methods[0].Types[0] = Boolean
	assert.True(t, g.Methods()[0].Types[0].Equal(Number), "Methods returns a copy of the table")
}

func TestGenericLogsDuplicates(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	g := NewGeneric("dup", WithLogger(logger))
	g.DefineMethod([]Descriptor{Number}, label("first"))
	g.DefineMethod([]Descriptor{Number}, label("second"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "dup", entry["generic"])
	assert.Equal(t, "(Number)", entry["types"])

	res, err := g.Call(num(1))
	require.NoError(t, err)
	requireString(t, res, "first")
	assert.Contains(t, buf.String(), "ambiguous dispatch resolved by registration order")
}

func TestGenericRejectsNil(t *testing.T) {
	g := NewGeneric("g")
	assert.Panics(t, func() { g.DefineMethod([]Descriptor{Number}, nil) })
	assert.Panics(t, func() { g.DefineMethod([]Descriptor{nil}, label("x")) })
	assert.Empty(t, g.Methods())
}

func TestGenericDispatchOnLiteralKeys(t *testing.T) {
	op := NewGeneric("op").DefineMethods(
		Method{Types: []Descriptor{MustFrom(str("add")), Number, Number}, Impl: func(args ...object.Object) (object.Object, error) {
			return addFn.Call(args[1:]...)
		}},
		Method{Types: []Descriptor{MustFrom(str("neg")), Number}, Impl: func(args ...object.Object) (object.Object, error) {
			return num(-args[1].(*object.Number).Value), nil
		}},
		Method{Types: []Descriptor{String, Any}, Impl: label("unknown op")},
		Method{Types: []Descriptor{MustFrom(0.0)}, Impl: label("zero")},
	)

	res, err := op.Call(str("add"), num(1), num(6))
	require.NoError(t, err)
	requireNumber(t, res, 7)

	res, err = op.Call(str("neg"), num(3))
	require.NoError(t, err)
	requireNumber(t, res, -3)

	res, err = op.Call(str("sqrt"), num(9))
	require.NoError(t, err)
	requireString(t, res, "unknown op")

	res, err = op.Call(num(0))
	require.NoError(t, err)
	requireString(t, res, "zero")

	_, err = op.Call(num(1))
	requireCode(t, err, CodeNoApplicableMethod)
}
