package typesystem

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/funvibe/typedispatch/internal/config"
	"github.com/funvibe/typedispatch/pkg/object"
)

// Descriptor is the interface for all type descriptors.
// The set of variants is closed; descriptors never change once built.
type Descriptor interface {
	String() string
	Equal(Descriptor) bool
	descriptor()
}

// Predicate refines a Specialized descriptor. It must be pure.
type Predicate func(object.Object) bool

// NullType matches the absence of a value.
type NullType struct{}

func (NullType) String() string { return config.NullTypeName }
func (NullType) Equal(other Descriptor) bool {
	_, ok := other.(NullType)
	return ok
}
func (NullType) descriptor() {}

// NaNType matches the numeric not-a-number value.
type NaNType struct{}

func (NaNType) String() string { return config.NaNTypeName }
func (NaNType) Equal(other Descriptor) bool {
	_, ok := other.(NaNType)
	return ok
}
func (NaNType) descriptor() {}

// AnyType matches every value.
type AnyType struct{}

func (AnyType) String() string { return config.AnyTypeName }
func (AnyType) Equal(other Descriptor) bool {
	_, ok := other.(AnyType)
	return ok
}
func (AnyType) descriptor() {}

// BuiltinClass matches values of a built-in category. The Object class
// matches every present value.
type BuiltinClass struct {
	Class *object.Class
}

func (b BuiltinClass) String() string { return b.Class.Name }
func (b BuiltinClass) Equal(other Descriptor) bool {
	o, ok := other.(BuiltinClass)
	return ok && o.Class == b.Class
}
func (BuiltinClass) descriptor() {}

// Singleton matches exactly one value. Numbers, strings and booleans match
// by value; other values match by identity.
type Singleton struct {
	Value object.Object
}

// NewSingleton creates a descriptor matching only v.
func NewSingleton(v object.Object) Singleton {
	return Singleton{Value: v}
}

func (s Singleton) String() string { return "Singleton(" + inspect(s.Value) + ")" }
func (s Singleton) Equal(other Descriptor) bool {
	o, ok := other.(Singleton)
	return ok && identical(o.Value, s.Value)
}
func (Singleton) descriptor() {}

// Specialized narrows Base with a predicate. Specialized descriptors are
// compared by identity.
type Specialized struct {
	Name      string
	Base      Descriptor
	Predicate Predicate
}

// NewSpecialized creates a descriptor matching values of base that satisfy pred.
func NewSpecialized(name string, base Descriptor, pred Predicate) *Specialized {
	if base == nil || pred == nil {
		panic("typedispatch: Specialized needs a base descriptor and a predicate")
	}
	return &Specialized{Name: name, Base: base, Predicate: pred}
}

func (s *Specialized) String() string {
	if s.Name != "" {
		return s.Name
	}
	return "Specialized(" + s.Base.String() + ")"
}
func (s *Specialized) Equal(other Descriptor) bool {
	o, ok := other.(*Specialized)
	return ok && o == s
}
func (*Specialized) descriptor() {}

// test runs the predicate; a panicking predicate counts as not satisfied.
func (s *Specialized) test(v object.Object) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return s.Predicate(v)
}

// UserType matches instances of a user class or its descendants.
type UserType struct {
	Class *object.Class
}

func (u UserType) String() string { return u.Class.String() }
func (u UserType) Equal(other Descriptor) bool {
	o, ok := other.(UserType)
	return ok && o.Class == u.Class
}
func (UserType) descriptor() {}

// ArrayOf matches arrays whose every element matches Elem.
type ArrayOf struct {
	Elem Descriptor
}

// NewArrayOf creates a descriptor for arrays of elem.
func NewArrayOf(elem Descriptor) ArrayOf {
	if elem == nil {
		panic("typedispatch: ArrayOf needs an element descriptor")
	}
	return ArrayOf{Elem: elem}
}

func (a ArrayOf) String() string { return config.ArrayOfPrefix + a.Elem.String() }
func (a ArrayOf) Equal(other Descriptor) bool {
	o, ok := other.(ArrayOf)
	return ok && o.Elem.Equal(a.Elem)
}
func (ArrayOf) descriptor() {}

// selfType stands for the interface under declaration inside its op tuples.
type selfType struct{}

func (selfType) String() string { return "Self" }
func (selfType) Equal(other Descriptor) bool {
	_, ok := other.(selfType)
	return ok
}
func (selfType) descriptor() {}

var (
	Null Descriptor = NullType{}
	NaN  Descriptor = NaNType{}
	Any  Descriptor = AnyType{}

	Number   Descriptor = BuiltinClass{Class: object.NumberClass}
	String   Descriptor = BuiltinClass{Class: object.StringClass}
	Boolean  Descriptor = BuiltinClass{Class: object.BooleanClass}
	Array    Descriptor = BuiltinClass{Class: object.ArrayClass}
	Function Descriptor = BuiltinClass{Class: object.FunctionClass}
	RegExp   Descriptor = BuiltinClass{Class: object.RegExpClass}
	Object   Descriptor = BuiltinClass{Class: object.ObjectClass}

	// Self refers to the enclosing interface inside NewInterface op tuples.
	Self Descriptor = selfType{}

	// Integer matches numbers without a fractional part.
	Integer = NewSpecialized(config.IntegerTypeName, Number, func(v object.Object) bool {
		n, ok := v.(*object.Number)
		return ok && n.IsInteger()
	})
)

// TypeOf returns the descriptor of a class: BuiltinClass for the built-in
// classes and UserType for everything else.
func TypeOf(c *object.Class) Descriptor {
	if c.IsBuiltin() {
		return BuiltinClass{Class: c}
	}
	return UserType{Class: c}
}

// From normalises the shorthands accepted wherever a descriptor is expected:
// nil is Null, a NaN number is NaN, a class is its type, a float64 or any
// other value is a Singleton, and a Descriptor is returned unchanged.
func From(x any) (Descriptor, error) {
	switch v := x.(type) {
	case nil:
		return Null, nil
	case Descriptor:
		return v, nil
	case *object.Class:
		if v == nil {
			return Null, nil
		}
		return TypeOf(v), nil
	case *object.Number:
		if v.IsNaN() {
			return NaN, nil
		}
		return NewSingleton(v), nil
	case float64:
		if math.IsNaN(v) {
			return NaN, nil
		}
		return NewSingleton(object.NewNumber(v)), nil
	case object.Object:
		if v == object.UNDEFINED {
			return Null, nil
		}
		return NewSingleton(v), nil
	}
	return nil, &Error{
		Code:     CodeInvalidDescriptor,
		Message:  fmt.Sprintf("cannot use %T (%v) as a descriptor", x, x),
		Position: -1,
	}
}

// MustFrom is like From but panics on values that are not descriptors.
func MustFrom(x any) Descriptor {
	d, err := From(x)
	if err != nil {
		panic(err)
	}
	return d
}

// Tuple normalises every element with From.
func Tuple(xs ...any) ([]Descriptor, error) {
	out := make([]Descriptor, len(xs))
	for i, x := range xs {
		d, err := From(x)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		out[i] = d
	}
	return out, nil
}

func tupleString(types []Descriptor) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func tupleEqual(a, b []Descriptor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// identical compares numbers, strings and booleans by value (NaN is never
// identical, not even to itself) and every other value by identity, without
// panicking on incomparable dynamic types.
func identical(a, b object.Object) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case *object.Number:
		bv, ok := b.(*object.Number)
		return ok && av.Value == bv.Value
	case *object.String:
		bv, ok := b.(*object.String)
		return ok && av.Value == bv.Value
	case *object.Boolean:
		bv, ok := b.(*object.Boolean)
		return ok && av.Value == bv.Value
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
