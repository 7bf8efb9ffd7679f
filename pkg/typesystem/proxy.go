package typesystem

import (
	"fmt"
	"sort"
	"strings"
	"unsafe"

	"github.com/funvibe/typedispatch/pkg/object"
)

// Proxy exposes selected members of a base value through Signatures.
// Exposed members are contract-checked callables bound to the base; plain
// data members pass through unchanged; other callables are unreachable.
type Proxy struct {
	base    object.Object
	exposed map[string]*WrappedFunction
}

// NewProxy wraps base. Each entry of exposed maps a member name to a tuple
// whose last element is the return descriptor.
func NewProxy(base object.Object, exposed map[string][]Descriptor) (*Proxy, error) {
	p := &Proxy{base: base, exposed: make(map[string]*WrappedFunction, len(exposed))}
	for name, types := range exposed {
		member := memberOf(base, name)
		if member == nil {
			return nil, &Error{
				Code:     CodeUnknownMember,
				Message:  fmt.Sprintf("%s has no member %q", inspect(base), name),
				Position: -1,
			}
		}
		var fn object.Callable
		switch m := member.(type) {
		case *object.Method:
			fn = m.Bind(base)
		case object.Callable:
			fn = m
		default:
			return nil, &Error{
				Code:     CodeUnknownMember,
				Message:  fmt.Sprintf("member %q is not callable", name),
				Position: -1,
				Actual:   member,
			}
		}
		p.exposed[name] = SignatureFrom(types...).Wrap(fn)
	}
	return p, nil
}

// Get returns a reachable member: the wrapped callable for exposed names,
// the value itself for plain data members.
func (p *Proxy) Get(name string) (object.Object, bool) {
	if w, ok := p.exposed[name]; ok {
		return w, true
	}
	member := memberOf(p.base, name)
	if member == nil || member.Type() == object.FUNCTION_OBJ {
		return nil, false
	}
	return member, true
}

// Call invokes an exposed member.
func (p *Proxy) Call(name string, args ...object.Object) (object.Object, error) {
	w, ok := p.exposed[name]
	if !ok {
		return nil, &Error{
			Code:     CodeUnknownMember,
			Message:  fmt.Sprintf("proxy does not expose %q", name),
			Position: -1,
		}
	}
	return w.Call(args...)
}

// Keys returns the reachable member names in sorted order.
func (p *Proxy) Keys() []string {
	keys := make([]string, 0, len(p.exposed))
	for name := range p.exposed {
		keys = append(keys, name)
	}
	for _, name := range memberNames(p.base) {
		if _, ok := p.exposed[name]; ok {
			continue
		}
		if _, ok := p.Get(name); ok {
			keys = append(keys, name)
		}
	}
	sort.Strings(keys)
	return keys
}

// Base returns the wrapped value.
func (p *Proxy) Base() object.Object { return p.base }

func (p *Proxy) Type() object.ObjectType { return object.OBJECT_OBJ }
func (p *Proxy) Inspect() string {
	keys := p.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		v, _ := p.Get(k)
		parts[i] = k + ": " + v.Inspect()
	}
	return "proxy{" + strings.Join(parts, ", ") + "}"
}
func (p *Proxy) Hash() uint32 { return uint32(uintptr(unsafe.Pointer(p))) }

func memberOf(base object.Object, name string) object.Object {
	switch b := base.(type) {
	case *object.Record:
		return b.Get(name)
	case *object.Instance:
		return b.Get(name)
	case *Proxy:
		v, _ := b.Get(name)
		return v
	}
	return nil
}

func memberNames(base object.Object) []string {
	switch b := base.(type) {
	case *object.Record:
		return b.Keys()
	case *object.Instance:
		return b.Fields.Keys()
	case *Proxy:
		return b.Keys()
	}
	return nil
}
