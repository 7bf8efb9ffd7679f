package typesystem

import (
	"github.com/funvibe/typedispatch/pkg/object"
)

// MoreSpecificThan reports whether a ranks strictly above b. It is used
// only to order descriptors that already match the same value.
//
// The relation is irreflexive and asymmetric but not total: descriptors
// that no rule relates are incomparable in both directions.
func MoreSpecificThan(a, b Descriptor) bool {
	if a == nil || b == nil || a.Equal(b) {
		return false
	}

	// Singletons and Null beat every structural descriptor.
	if isUnit(a) {
		return !isUnit(b)
	}
	if isUnit(b) {
		return false
	}

	// Everything is more specific than Any.
	if _, ok := b.(AnyType); ok {
		return true
	}
	if _, ok := a.(AnyType); ok {
		return false
	}

	// A specialization ranks above its base and whatever its base ranks above.
	if s, ok := a.(*Specialized); ok {
		return s.Base.Equal(b) || MoreSpecificThan(s.Base, b)
	}
	if _, ok := b.(*Specialized); ok {
		return false
	}

	// Concrete types and interfaces rank above Object.
	if isObject(b) {
		return !isObject(a)
	}
	if isObject(a) {
		return false
	}

	switch at := a.(type) {
	case NaNType:
		return b.Equal(Number) || MoreSpecificThan(Number, b)
	case BuiltinClass:
		if bt, ok := b.(*Interface); ok {
			return bt.Implements(at.Class)
		}
	case UserType:
		switch bt := b.(type) {
		case UserType:
			return at.Class.DescendsFrom(bt.Class)
		case *Interface:
			return bt.Implements(at.Class)
		}
	case ArrayOf:
		switch bt := b.(type) {
		case BuiltinClass:
			return bt.Class == object.ArrayClass
		case ArrayOf:
			return MoreSpecificThan(at.Elem, bt.Elem)
		case *Interface:
			return bt.Implements(object.ArrayClass)
		}
	}
	return false
}

func isUnit(d Descriptor) bool {
	switch d.(type) {
	case NullType, Singleton:
		return true
	}
	return false
}

func isObject(d Descriptor) bool {
	b, ok := d.(BuiltinClass)
	return ok && b.Class == object.ObjectClass
}
