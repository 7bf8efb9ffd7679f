package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/funvibe/typedispatch/internal/config"
	"github.com/funvibe/typedispatch/pkg/typesystem"
)

var namedDescriptors = map[string]typesystem.Descriptor{
	config.NullTypeName:      typesystem.Null,
	config.NaNTypeName:       typesystem.NaN,
	config.AnyTypeName:       typesystem.Any,
	config.NumberClassName:   typesystem.Number,
	config.StringClassName:   typesystem.String,
	config.BooleanClassName:  typesystem.Boolean,
	config.ArrayClassName:    typesystem.Array,
	config.FunctionClassName: typesystem.Function,
	config.RegExpClassName:   typesystem.RegExp,
	config.ObjectClassName:   typesystem.Object,
	config.IntegerTypeName:   typesystem.Integer,
}

// ParseDescriptor resolves a descriptor name such as "Number" or "[]Integer".
func ParseDescriptor(name string) (typesystem.Descriptor, error) {
	name = strings.TrimSpace(name)
	if elem, ok := strings.CutPrefix(name, config.ArrayOfPrefix); ok {
		d, err := ParseDescriptor(elem)
		if err != nil {
			return nil, err
		}
		return typesystem.NewArrayOf(d), nil
	}
	if d, ok := namedDescriptors[name]; ok {
		return d, nil
	}
	return nil, &typesystem.Error{
		Code:     typesystem.CodeInvalidDescriptor,
		Message:  fmt.Sprintf("unknown descriptor %q (known: %s)", name, strings.Join(DescriptorNames(), ", ")),
		Position: -1,
	}
}

// DescriptorNames lists the names ParseDescriptor accepts, without the
// array prefix.
func DescriptorNames() []string {
	names := make([]string, 0, len(namedDescriptors))
	for name := range namedDescriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
