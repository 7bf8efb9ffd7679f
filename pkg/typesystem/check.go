package typesystem

import (
	"github.com/funvibe/typedispatch/pkg/object"
)

// Check reports whether v satisfies d. It never fails: unknown descriptors
// and panicking predicates yield false.
//
// Built-in categories are decided by the value's own category tag, never by
// the class chain, so an instance whose class merely names a built-in class
// as its parent does not pass for that class.
func Check(v object.Object, d Descriptor) bool {
	switch t := d.(type) {
	case AnyType:
		return true
	case NullType:
		return object.IsAbsent(v)
	case NaNType:
		n, ok := v.(*object.Number)
		return ok && n.IsNaN()
	case BuiltinClass:
		if object.IsAbsent(v) {
			return false
		}
		if t.Class == object.ObjectClass {
			return true
		}
		return v.Type() == t.Class.Category()
	case Singleton:
		return identical(v, t.Value)
	case *Specialized:
		return Check(v, t.Base) && t.test(v)
	case UserType:
		inst, ok := v.(*object.Instance)
		return ok && inst.Class.DescendsFrom(t.Class)
	case ArrayOf:
		arr, ok := v.(*object.Array)
		if !ok {
			return false
		}
		for _, el := range arr.Elements {
			if !Check(el, t.Elem) {
				return false
			}
		}
		return true
	case *Interface:
		if object.IsAbsent(v) {
			return false
		}
		return t.Implements(object.ClassOf(v))
	}
	return false
}

// CheckAll reports whether every value satisfies the descriptor at the same
// position. Tuples of different length never match.
func CheckAll(values []object.Object, types []Descriptor) bool {
	if len(values) != len(types) {
		return false
	}
	for i, v := range values {
		if !Check(v, types[i]) {
			return false
		}
	}
	return true
}
