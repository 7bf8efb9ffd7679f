package typesystem

import (
	"log/slog"
	"sync"
	"unsafe"

	"github.com/funvibe/typedispatch/pkg/object"
)

// Method is one registered implementation of a Generic.
type Method struct {
	Types []Descriptor
	Impl  object.BuiltinFunction
}

// Generic is a multimethod: a callable whose implementation is chosen at
// call time from the runtime types of all positional arguments.
//
// Registration is expected to happen before the generic is shared. Each call
// resolves against a snapshot of the methods registered when it started, so
// a method added by a running implementation is only seen by later calls.
type Generic struct {
	name    string
	mu      sync.RWMutex
	methods []Method // copy-on-write
	logger  *slog.Logger
	strict  bool
}

// Option configures a Generic.
type Option func(*Generic)

// WithLogger sets the logger used for registration warnings and resolution
// traces. Without it the generic does not log.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generic) {
		g.logger = logger
	}
}

// WithAmbiguityErrors makes a call fail with CodeAmbiguousDispatch when
// several mutually incomparable methods remain, instead of running the
// earliest registered one.
func WithAmbiguityErrors() Option {
	return func(g *Generic) {
		g.strict = true
	}
}

// NewGeneric creates a generic function without methods.
func NewGeneric(name string, opts ...Option) *Generic {
	g := &Generic{name: name}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.New(slog.DiscardHandler)
	}
	return g
}

func (g *Generic) Name() string { return g.name }

// DefineMethod appends an implementation for the given descriptor tuple.
// It returns the generic for chaining.
func (g *Generic) DefineMethod(types []Descriptor, impl object.BuiltinFunction) *Generic {
	if impl == nil {
		panic("typedispatch: nil implementation for generic " + g.name)
	}
	for _, t := range types {
		if t == nil {
			panic("typedispatch: nil descriptor in method of generic " + g.name)
		}
	}
	m := Method{Types: make([]Descriptor, len(types)), Impl: impl}
	copy(m.Types, types)

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, existing := range g.methods {
		if tupleEqual(existing.Types, m.Types) {
			g.logger.Warn("duplicate method registration; earlier method wins",
				slog.String("generic", g.name),
				slog.String("types", tupleString(m.Types)))
			break
		}
	}

	next := make([]Method, len(g.methods), len(g.methods)+1)
	copy(next, g.methods)
	g.methods = append(next, m)
	return g
}

// DefineMethods registers several methods in the given order.
func (g *Generic) DefineMethods(methods ...Method) *Generic {
	for _, m := range methods {
		g.DefineMethod(m.Types, m.Impl)
	}
	return g
}

// Methods returns the registered methods in registration order.
func (g *Generic) Methods() []Method {
	methods := g.snapshot()
	out := make([]Method, len(methods))
	for i, m := range methods {
		out[i] = Method{Types: make([]Descriptor, len(m.Types)), Impl: m.Impl}
		copy(out[i].Types, m.Types)
	}
	return out
}

func (g *Generic) snapshot() []Method {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.methods
}

// Applicable returns the methods whose tuples match args, in registration order.
func (g *Generic) Applicable(args ...object.Object) []Method {
	return applicable(g.snapshot(), args)
}

func applicable(methods []Method, args []object.Object) []Method {
	var out []Method
	for _, m := range methods {
		if CheckAll(args, m.Types) {
			out = append(out, m)
		}
	}
	return out
}

// Resolve picks the method a call with args would run, without running it.
func (g *Generic) Resolve(args ...object.Object) (Method, error) {
	candidates := applicable(g.snapshot(), args)
	switch len(candidates) {
	case 0:
		return Method{}, newNoApplicableMethod(g.name, args).WithDetail("generic", g.name)
	case 1:
		return candidates[0], nil
	}

	survivors := mostSpecific(candidates)
	if len(survivors) == 1 {
		g.logger.Debug("dispatch resolved by specificity",
			slog.String("generic", g.name),
			slog.Int("candidates", len(candidates)),
			slog.String("types", tupleString(survivors[0].Types)))
		return survivors[0], nil
	}
	if g.strict {
		return Method{}, newAmbiguousDispatch(g.name, survivors).WithDetail("generic", g.name)
	}
	g.logger.Debug("ambiguous dispatch resolved by registration order",
		slog.String("generic", g.name),
		slog.Int("tied", len(survivors)),
		slog.String("types", tupleString(survivors[0].Types)))
	return survivors[0], nil
}

// Call dispatches on the runtime types of args and runs the chosen method.
func (g *Generic) Call(args ...object.Object) (object.Object, error) {
	m, err := g.Resolve(args...)
	if err != nil {
		return nil, err
	}
	return m.Impl(args...)
}

func (g *Generic) Type() object.ObjectType { return object.FUNCTION_OBJ }
func (g *Generic) Inspect() string        { return "generic " + g.name }
func (g *Generic) Hash() uint32           { return uint32(uintptr(unsafe.Pointer(g))) }

// mostSpecific removes dominated methods until none is dominated. The
// survivors keep registration order. If domination cycles would remove
// everything, the candidates are returned unchanged.
func mostSpecific(candidates []Method) []Method {
	current := candidates
	for {
		next := make([]Method, 0, len(current))
		for i, m := range current {
			dominated := false
			for j, other := range current {
				if i != j && dominates(other.Types, m.Types) {
					dominated = true
					break
				}
			}
			if !dominated {
				next = append(next, m)
			}
		}
		if len(next) == 0 {
			return current
		}
		if len(next) == len(current) {
			return next
		}
		current = next
	}
}

// dominates reports whether a is nowhere less specific than b and strictly
// more specific at some position.
func dominates(a, b []Descriptor) bool {
	strictly := false
	for i := range a {
		if MoreSpecificThan(b[i], a[i]) {
			return false
		}
		if MoreSpecificThan(a[i], b[i]) {
			strictly = true
		}
	}
	return strictly
}
