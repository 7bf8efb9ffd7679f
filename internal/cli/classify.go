package cli

import (
	"github.com/funvibe/typedispatch/internal/config"
	"github.com/funvibe/typedispatch/pkg/object"
	"github.com/funvibe/typedispatch/pkg/typesystem"
)

func labelled(label string) object.BuiltinFunction {
	s := object.NewString(label)
	return func(args ...object.Object) (object.Object, error) { return s, nil }
}

// NewClassifier returns the generic used by the classify command. Its
// methods overlap on purpose; specificity picks the label.
func NewClassifier(opts ...typesystem.Option) *typesystem.Generic {
	one := func(d typesystem.Descriptor) []typesystem.Descriptor { return []typesystem.Descriptor{d} }
	return typesystem.NewGeneric(config.ClassifyFuncName, opts...).DefineMethods(
		typesystem.Method{Types: one(typesystem.Number), Impl: labelled("number")},
		typesystem.Method{Types: one(typesystem.NaN), Impl: labelled("NaN")},
		typesystem.Method{Types: one(typesystem.Object), Impl: labelled("object")},
		typesystem.Method{Types: one(typesystem.Integer), Impl: labelled("integer")},
		typesystem.Method{Types: one(typesystem.Null), Impl: labelled("null")},
		typesystem.Method{Types: one(typesystem.String), Impl: labelled("string")},
		typesystem.Method{Types: one(typesystem.Boolean), Impl: labelled("boolean")},
		typesystem.Method{Types: one(typesystem.Array), Impl: labelled("array")},
		typesystem.Method{Types: one(typesystem.NewArrayOf(typesystem.Number)), Impl: labelled("numbers")},
	)
}
