package object

import (
	"fmt"
	"unsafe"
)

// BuiltinFunction is the Go signature of every callable value.
type BuiltinFunction func(args ...Object) (Object, error)

// Builtin is a Go-implemented function value.
type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

func NewBuiltin(name string, fn BuiltinFunction) *Builtin {
	return &Builtin{Name: name, Fn: fn}
}

func (b *Builtin) Type() ObjectType { return FUNCTION_OBJ }
func (b *Builtin) Inspect() string {
	if b.Name == "" {
		return "builtin function"
	}
	return "builtin function " + b.Name
}
func (b *Builtin) Hash() uint32 {
	// Use pointer address for function identity
	return uint32(uintptr(unsafe.Pointer(b)))
}

func (b *Builtin) Call(args ...Object) (Object, error) {
	return b.Fn(args...)
}

// MethodFunction receives the value the method was looked up on.
type MethodFunction func(this Object, args ...Object) (Object, error)

// Method is a function stored as a member of a record or class that needs
// its receiver. Called directly, the first argument is the receiver.
type Method struct {
	Name string
	Fn   MethodFunction
}

func NewMethod(name string, fn MethodFunction) *Method {
	return &Method{Name: name, Fn: fn}
}

func (m *Method) Type() ObjectType { return FUNCTION_OBJ }
func (m *Method) Inspect() string  { return "method " + m.Name }
func (m *Method) Hash() uint32     { return uint32(uintptr(unsafe.Pointer(m))) }

func (m *Method) Call(args ...Object) (Object, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("method %s called without a receiver", m.Name)
	}
	return m.Fn(args[0], args[1:]...)
}

// Bind fixes the receiver of the method.
func (m *Method) Bind(receiver Object) *BoundMethod {
	return &BoundMethod{Receiver: receiver, Method: m}
}

// BoundMethod represents a method bound to a receiver object.
type BoundMethod struct {
	Receiver Object
	Method   *Method
}

func (bm *BoundMethod) Type() ObjectType { return FUNCTION_OBJ }
func (bm *BoundMethod) Inspect() string  { return fmt.Sprintf("bound %s", bm.Method.Inspect()) }
func (bm *BoundMethod) Hash() uint32 {
	return hash(bm.Receiver) ^ bm.Method.Hash()
}

func (bm *BoundMethod) Call(args ...Object) (Object, error) {
	return bm.Method.Fn(bm.Receiver, args...)
}
