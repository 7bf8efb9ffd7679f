package object

import (
	"hash/fnv"
)

type ObjectType string

const (
	UNDEFINED_OBJ = "UNDEFINED"
	NULL_OBJ      = "NULL"
	NUMBER_OBJ    = "NUMBER"
	STRING_OBJ    = "STRING"
	BOOLEAN_OBJ   = "BOOLEAN"
	ARRAY_OBJ     = "ARRAY"
	FUNCTION_OBJ  = "FUNCTION"
	REGEXP_OBJ    = "REGEXP"
	OBJECT_OBJ    = "OBJECT"   // Plain record of fields
	INSTANCE_OBJ  = "INSTANCE" // Instance of a user class
	CLASS_OBJ     = "CLASS"
	HOST_OBJ      = "HOST" // Opaque Go value
)

// Object is a runtime value. Type returns its category, which is fixed by
// the constructor that produced the value and is the only thing category
// checks consult.
type Object interface {
	Type() ObjectType
	Inspect() string
	Hash() uint32
}

// Callable is implemented by every value that can be invoked.
type Callable interface {
	Object
	Call(args ...Object) (Object, error)
}

// IsAbsent reports whether o is one of the "no value" sentinels.
// A nil Object counts as undefined.
func IsAbsent(o Object) bool {
	if o == nil {
		return true
	}
	switch o.Type() {
	case UNDEFINED_OBJ, NULL_OBJ:
		return true
	}
	return false
}

// TypeName returns the category of o, treating nil as undefined.
func TypeName(o Object) ObjectType {
	if o == nil {
		return UNDEFINED_OBJ
	}
	return o.Type()
}

// Helper for hashing strings
func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}
