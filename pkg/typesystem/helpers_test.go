package typesystem

import (
	"testing"

	"github.com/funvibe/typedispatch/pkg/object"
	"github.com/stretchr/testify/require"
)

func num(v float64) *object.Number { return object.NewNumber(v) }

func str(s string) *object.String { return object.NewString(s) }

func constant(v object.Object) object.BuiltinFunction {
	return func(args ...object.Object) (object.Object, error) { return v, nil }
}

func label(s string) object.BuiltinFunction { return constant(str(s)) }

func requireNumber(t *testing.T, obj object.Object, want float64) {
	t.Helper()
	n, ok := obj.(*object.Number)
	require.Truef(t, ok, "expected *object.Number, got %T", obj)
	require.Equal(t, want, n.Value)
}

func requireString(t *testing.T, obj object.Object, want string) {
	t.Helper()
	s, ok := obj.(*object.String)
	require.Truef(t, ok, "expected *object.String, got %T", obj)
	require.Equal(t, want, s.Value)
}

func requireCode(t *testing.T, err error, code ErrorCode) *Error {
	t.Helper()
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, code, e.Code, "error: %v", err)
	return e
}

var addFn = object.NewBuiltin("add", func(args ...object.Object) (object.Object, error) {
	return num(args[0].(*object.Number).Value + args[1].(*object.Number).Value), nil
})
