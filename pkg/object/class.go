package object

import (
	"github.com/funvibe/typedispatch/internal/config"
	"github.com/google/uuid"
)

// classNamespace seeds the stable identities of the built-in classes.
var classNamespace = uuid.MustParse("5f0b6c1e-8d0c-4b8a-9a57-3f1d2f8e6a10")

// Class is the identity of a type. Built-in classes stand for a value
// category; user classes are created with NewClass and may delegate to a
// parent class.
type Class struct {
	ID     uuid.UUID
	Name   string
	Parent *Class

	// category is set only for the built-in classes.
	category ObjectType
}

func newBuiltinClass(name string, category ObjectType) *Class {
	return &Class{
		ID:       uuid.NewSHA1(classNamespace, []byte(name)),
		Name:     name,
		category: category,
	}
}

var (
	NumberClass   = newBuiltinClass(config.NumberClassName, NUMBER_OBJ)
	StringClass   = newBuiltinClass(config.StringClassName, STRING_OBJ)
	BooleanClass  = newBuiltinClass(config.BooleanClassName, BOOLEAN_OBJ)
	ArrayClass    = newBuiltinClass(config.ArrayClassName, ARRAY_OBJ)
	FunctionClass = newBuiltinClass(config.FunctionClassName, FUNCTION_OBJ)
	RegExpClass   = newBuiltinClass(config.RegExpClassName, REGEXP_OBJ)
	ObjectClass   = newBuiltinClass(config.ObjectClassName, OBJECT_OBJ)
)

var builtinClasses = map[ObjectType]*Class{
	NUMBER_OBJ:   NumberClass,
	STRING_OBJ:   StringClass,
	BOOLEAN_OBJ:  BooleanClass,
	ARRAY_OBJ:    ArrayClass,
	FUNCTION_OBJ: FunctionClass,
	REGEXP_OBJ:   RegExpClass,
	OBJECT_OBJ:   ObjectClass,
}

// BuiltinClasses returns the built-in classes in a fixed order.
func BuiltinClasses() []*Class {
	return []*Class{NumberClass, StringClass, BooleanClass, ArrayClass, FunctionClass, RegExpClass, ObjectClass}
}

// NewClass creates a user class with a fresh identity. parent may be nil.
func NewClass(name string, parent *Class) *Class {
	return &Class{ID: uuid.New(), Name: name, Parent: parent}
}

// IsBuiltin reports whether c stands for a built-in value category.
func (c *Class) IsBuiltin() bool { return c.category != "" }

// Category returns the value category of a built-in class, or "" for user classes.
func (c *Class) Category() ObjectType { return c.category }

// DescendsFrom reports whether c is ancestor or reaches it through Parent.
func (c *Class) DescendsFrom(ancestor *Class) bool {
	for cur := c; cur != nil; cur = cur.Parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}

func (c *Class) Type() ObjectType { return CLASS_OBJ }
func (c *Class) Inspect() string  { return "class " + c.String() }
func (c *Class) Hash() uint32     { return c.ID.ID() }

func (c *Class) String() string {
	if c.IsBuiltin() || config.IsTestMode {
		return c.Name
	}
	return c.Name + "#" + c.ID.String()[:8]
}

// Instance is a value of a user class.
type Instance struct {
	Class  *Class
	Fields *Record
}

// NewInstance creates an instance of class with the given fields.
func NewInstance(class *Class, fields map[string]Object) *Instance {
	return &Instance{Class: class, Fields: NewRecord(fields)}
}

func (i *Instance) Type() ObjectType { return INSTANCE_OBJ }
func (i *Instance) Inspect() string {
	return i.Class.Name + i.Fields.Inspect()
}
func (i *Instance) Hash() uint32 {
	return i.Class.Hash() ^ i.Fields.Hash()
}

// Get returns the field value, or nil if the instance has no such field.
func (i *Instance) Get(key string) Object {
	return i.Fields.Get(key)
}

// ClassOf returns the concrete type of o: the class of an instance or the
// built-in class of the value's category. Absent values and values with no
// class (classes themselves, host objects) return nil.
func ClassOf(o Object) *Class {
	if o == nil {
		return nil
	}
	if inst, ok := o.(*Instance); ok {
		return inst.Class
	}
	return builtinClasses[o.Type()]
}

// InstanceOf is a nominal test that follows the class delegation chain.
// It trusts whatever parent a class declares, so a user class that names a
// built-in class as its parent passes for that built-in class here.
func InstanceOf(o Object, class *Class) bool {
	c := ClassOf(o)
	if c == nil {
		return false
	}
	return c.DescendsFrom(class)
}
