package typesystem

import (
	"strings"
	"unsafe"

	"github.com/funvibe/typedispatch/pkg/object"
)

// Signature is a per-position argument contract with an optional return
// contract. It is immutable once built.
type Signature struct {
	args []Descriptor
	ret  Descriptor // nil when the result is not checked
}

// NewSignature builds a contract from argument descriptors and a return
// descriptor; ret may be nil.
func NewSignature(args []Descriptor, ret Descriptor) *Signature {
	for _, a := range args {
		if a == nil {
			panic("typedispatch: nil argument descriptor in signature")
		}
	}
	cp := make([]Descriptor, len(args))
	copy(cp, args)
	return &Signature{args: cp, ret: ret}
}

// SignatureFrom builds a contract from a tuple whose last element is the
// return descriptor: SignatureFrom(Number, Number, Number) takes two numbers
// and returns a number.
func SignatureFrom(types ...Descriptor) *Signature {
	if len(types) == 0 {
		return NewSignature(nil, nil)
	}
	return NewSignature(types[:len(types)-1], types[len(types)-1])
}

func (s *Signature) Arity() int { return len(s.args) }

// Args returns a copy of the argument descriptors.
func (s *Signature) Args() []Descriptor {
	cp := make([]Descriptor, len(s.args))
	copy(cp, s.args)
	return cp
}

// Return returns the return descriptor, or nil.
func (s *Signature) Return() Descriptor { return s.ret }

func (s *Signature) String() string {
	parts := make([]string, len(s.args))
	for i, a := range s.args {
		parts[i] = a.String()
	}
	out := "(" + strings.Join(parts, ", ") + ")"
	if s.ret != nil {
		out += " -> " + s.ret.String()
	}
	return out
}

// Validate checks the argument count and each argument in order,
// reporting the first violation.
func (s *Signature) Validate(args []object.Object) error {
	if len(args) != len(s.args) {
		return newArityMismatch(len(s.args), len(args))
	}
	for i, a := range args {
		if !Check(a, s.args[i]) {
			return newArgumentTypeViolation(i, s.args[i], a)
		}
	}
	return nil
}

// CheckReturn checks a result against the return descriptor, if any.
func (s *Signature) CheckReturn(res object.Object) error {
	if s.ret != nil && !Check(res, s.ret) {
		return newReturnTypeViolation(s.ret, res)
	}
	return nil
}

// Wrap returns a callable that enforces s around fn.
func (s *Signature) Wrap(fn object.Callable) *WrappedFunction {
	if fn == nil {
		panic("typedispatch: nil function wrapped with signature " + s.String())
	}
	return &WrappedFunction{contract: s, fn: fn}
}

// WrapFunc is Wrap for a plain Go function.
func (s *Signature) WrapFunc(name string, fn object.BuiltinFunction) *WrappedFunction {
	return s.Wrap(object.NewBuiltin(name, fn))
}

// WrappedFunction is a callable guarded by a Signature. Arguments are
// checked before the inner function runs; the result is checked after.
type WrappedFunction struct {
	contract *Signature
	fn       object.Callable
}

func (w *WrappedFunction) Type() object.ObjectType { return object.FUNCTION_OBJ }
func (w *WrappedFunction) Inspect() string {
	return "wrapped " + w.fn.Inspect() + " " + w.contract.String()
}
func (w *WrappedFunction) Hash() uint32 { return uint32(uintptr(unsafe.Pointer(w))) }

// Contract returns the signature the function was wrapped with.
func (w *WrappedFunction) Contract() *Signature { return w.contract }

// Unwrap returns the unchecked inner callable.
func (w *WrappedFunction) Unwrap() object.Callable { return w.fn }

func (w *WrappedFunction) Call(args ...object.Object) (object.Object, error) {
	if err := w.contract.Validate(args); err != nil {
		return nil, err
	}
	res, err := w.fn.Call(args...)
	if err != nil {
		return nil, err
	}
	if err := w.contract.CheckReturn(res); err != nil {
		return nil, err
	}
	return res, nil
}

// WrappedFunctionType matches only callables produced by Signature.Wrap.
var WrappedFunctionType = NewSpecialized("WrappedFunction", Function, func(v object.Object) bool {
	_, ok := v.(*WrappedFunction)
	return ok
})
