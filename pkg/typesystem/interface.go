package typesystem

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/funvibe/typedispatch/pkg/object"
)

// MethodTable maps op names to implementations. Each implementation
// receives the receiving value plus the op's other arguments.
type MethodTable struct {
	Methods map[string]object.BuiltinFunction
}

// Interface is a named capability set. A type satisfies it only through an
// explicit Implement registration.
type Interface struct {
	name     string
	ops      map[string]*Signature
	receiver map[string]int
	generics map[string]*Generic

	mu    sync.RWMutex
	impls map[*object.Class]*MethodTable
}

// NewInterface declares an interface. Each op maps to a tuple whose last
// element is the return descriptor; Self stands for the interface itself and
// marks the receiver, which is the first Self argument.
func NewInterface(name string, ops map[string][]Descriptor) *Interface {
	iface := &Interface{
		name:     name,
		ops:      make(map[string]*Signature, len(ops)),
		receiver: make(map[string]int, len(ops)),
		generics: make(map[string]*Generic, len(ops)),
		impls:    make(map[*object.Class]*MethodTable),
	}
	for op, types := range ops {
		resolved := make([]Descriptor, len(types))
		for i, t := range types {
			resolved[i] = iface.resolveSelf(t)
		}
		sig := SignatureFrom(resolved...)

		recv := -1
		for i, a := range sig.args {
			if a == Descriptor(iface) {
				recv = i
				break
			}
		}
		if recv < 0 {
			panic(fmt.Sprintf("typedispatch: op %s.%s has no Self argument", name, op))
		}
		iface.ops[op] = sig
		iface.receiver[op] = recv
		iface.generics[op] = iface.newOpGeneric(op, sig, recv)
	}
	return iface
}

func (i *Interface) resolveSelf(d Descriptor) Descriptor {
	switch t := d.(type) {
	case selfType:
		return i
	case ArrayOf:
		return ArrayOf{Elem: i.resolveSelf(t.Elem)}
	}
	return d
}

// newOpGeneric builds the generic that runs op on the registered
// implementation of the receiver's concrete type.
func (i *Interface) newOpGeneric(op string, sig *Signature, recv int) *Generic {
	dispatch := sig.WrapFunc(i.name+"."+op, func(args ...object.Object) (object.Object, error) {
		table, ok := i.Implementation(object.ClassOf(args[recv]))
		if !ok {
			return nil, newNoApplicableMethod(i.name+"."+op, args)
		}
		return table.Methods[op](args...)
	})
	return NewGeneric(i.name+"."+op).DefineMethod(sig.Args(), dispatch.Call)
}

func (i *Interface) String() string { return i.name }
func (i *Interface) Equal(other Descriptor) bool {
	o, ok := other.(*Interface)
	return ok && o == i
}
func (*Interface) descriptor() {}

func (i *Interface) Name() string { return i.name }

// Ops returns the op names in sorted order.
func (i *Interface) Ops() []string {
	names := make([]string, 0, len(i.ops))
	for op := range i.ops {
		names = append(names, op)
	}
	sort.Strings(names)
	return names
}

// Signature returns the contract of op, or nil if the interface has no such op.
func (i *Interface) Signature(op string) *Signature { return i.ops[op] }

// Generic returns the callable for op, or nil if the interface has no such
// op. It dispatches to the implementation registered for the concrete type
// of the receiver, checking arguments and result against the op's contract.
func (i *Interface) Generic(op string) *Generic { return i.generics[op] }

// Implement registers table as the implementation of the interface for
// class. The table must supply every op.
func (i *Interface) Implement(class *object.Class, table MethodTable) error {
	if class == nil {
		return &Error{Code: CodeInvalidDescriptor, Message: "implement needs a class", Position: -1}
	}
	var missing []string
	for _, op := range i.Ops() {
		if table.Methods[op] == nil {
			missing = append(missing, op)
		}
	}
	if len(missing) > 0 {
		return &Error{
			Code:     CodeIncompleteImplementation,
			Message:  fmt.Sprintf("%s does not implement %s: missing %s", class, i.name, strings.Join(missing, ", ")),
			Position: -1,
		}
	}

	methods := make(map[string]object.BuiltinFunction, len(table.Methods))
	for op, fn := range table.Methods {
		methods[op] = fn
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.impls[class] = &MethodTable{Methods: methods}
	return nil
}

// Implementation returns the method table registered for class or the
// nearest ancestor it delegates to. Built-in ancestors of a user class are
// skipped: only a genuine built-in value uses a built-in registration.
func (i *Interface) Implementation(class *object.Class) (*MethodTable, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	for c := class; c != nil; c = c.Parent {
		if c != class && c.IsBuiltin() {
			break
		}
		if table, ok := i.impls[c]; ok {
			return table, true
		}
	}
	return nil, false
}

// Implements reports whether class satisfies the interface.
func (i *Interface) Implements(class *object.Class) bool {
	_, ok := i.Implementation(class)
	return ok
}
