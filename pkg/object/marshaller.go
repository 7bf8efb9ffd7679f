package object

import (
	"fmt"
	"reflect"
	"regexp"
	"sync"

	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// Marshaller handles conversion between Go values and Objects.
// Every Object produced here goes through the constructors of this package,
// so its category is always the genuine one.
type Marshaller struct{}

func NewMarshaller() *Marshaller {
	return &Marshaller{}
}

// ToValue converts a Go value using a default Marshaller.
func ToValue(val interface{}) (Object, error) {
	return NewMarshaller().ToValue(val)
}

// FromValue converts an Object using a default Marshaller.
func FromValue(obj Object) (interface{}, error) {
	return NewMarshaller().FromValue(obj, nil)
}

// ToValue converts a Go value to an Object.
func (m *Marshaller) ToValue(val interface{}) (Object, error) {
	if val == nil {
		return NULL, nil
	}

	switch v := val.(type) {
	case Object:
		return v, nil
	case proto.Message:
		return m.protoMessage(v.ProtoReflect())
	case *regexp.Regexp:
		if v == nil {
			return NULL, nil
		}
		return &RegExp{Pattern: v}, nil
	case BuiltinFunction:
		return NewBuiltin("", v), nil
	case func(args ...Object) (Object, error):
		return NewBuiltin("", v), nil
	}

	// Unpack interface if it's contained in one
	rv := reflect.ValueOf(val)
	if rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return NULL, nil
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewNumber(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return NewNumber(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return NewNumber(rv.Float()), nil
	case reflect.Bool:
		return NativeBool(rv.Bool()), nil
	case reflect.String:
		return NewString(rv.String()), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return NULL, nil
		}
		return m.sliceToArray(rv)
	case reflect.Map:
		if rv.IsNil() {
			return NULL, nil
		}
		return m.mapToRecord(rv)
	case reflect.Struct:
		// Struct by value -> Record (copy)
		return m.structToRecord(rv)
	case reflect.Ptr:
		if rv.IsNil() {
			return NULL, nil
		}
		// Pointer -> HostObject (reference)
		return &HostObject{Value: val}, nil
	default:
		return &HostObject{Value: val}, nil
	}
}

// FromValue converts an Object to a Go value.
// targetType is optional; if provided, numbers are converted to that kind.
func (m *Marshaller) FromValue(obj Object, targetType reflect.Type) (interface{}, error) {
	if obj == nil {
		return nil, nil
	}

	// If target type is Object, return as is
	if targetType != nil && targetType == reflect.TypeOf((*Object)(nil)).Elem() {
		return obj, nil
	}

	switch o := obj.(type) {
	case *Undefined, *Null:
		return nil, nil
	case *Number:
		if targetType != nil {
			switch targetType.Kind() {
			case reflect.Int:
				return int(o.Value), nil
			case reflect.Int64:
				return int64(o.Value), nil
			case reflect.Float32:
				return float32(o.Value), nil
			}
		}
		return o.Value, nil
	case *String:
		return o.Value, nil
	case *Boolean:
		return o.Value, nil
	case *RegExp:
		return o.Pattern, nil
	case *Array:
		return m.arrayToSlice(o)
	case *Record:
		return m.recordToMap(o)
	case *Instance:
		return m.recordToMap(o.Fields)
	case *HostObject:
		return o.Value, nil
	case Callable:
		return o, nil
	default:
		return nil, fmt.Errorf("unsupported type for conversion: %s", o.Type())
	}
}

func (m *Marshaller) sliceToArray(v reflect.Value) (*Array, error) {
	elements := make([]Object, v.Len())
	for i := 0; i < v.Len(); i++ {
		val, err := m.ToValue(v.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		elements[i] = val
	}
	return NewArray(elements...), nil
}

func (m *Marshaller) mapToRecord(v reflect.Value) (*Record, error) {
	fields := make(map[string]Object, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		val, err := m.ToValue(iter.Value().Interface())
		if err != nil {
			return nil, fmt.Errorf("map value: %w", err)
		}
		fields[fmt.Sprint(iter.Key().Interface())] = val
	}
	return NewRecord(fields), nil
}

func (m *Marshaller) structToRecord(v reflect.Value) (*Record, error) {
	fields := make(map[string]Object)
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" { // Skip unexported fields
			continue
		}
		val, err := m.ToValue(v.Field(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		fields[field.Name] = val
	}
	return NewRecord(fields), nil
}

func (m *Marshaller) arrayToSlice(a *Array) ([]interface{}, error) {
	out := make([]interface{}, len(a.Elements))
	for i, el := range a.Elements {
		val, err := m.FromValue(el, nil)
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	return out, nil
}

func (m *Marshaller) recordToMap(r *Record) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(r.Fields))
	for _, f := range r.Fields {
		val, err := m.FromValue(f.Value, nil)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Key, err)
		}
		out[f.Key] = val
	}
	return out, nil
}

// protoNamespace seeds the identities of protobuf message classes.
var protoNamespace = uuid.MustParse("0d7e3a52-5c4f-4a4e-8f7b-9e1c2d3a4b5c")

var (
	protoClassesMu sync.Mutex
	protoClasses   = make(map[protoreflect.FullName]*Class)
)

// ProtoClass returns the class standing for a protobuf message type.
// The same descriptor always yields the same class.
func ProtoClass(desc protoreflect.MessageDescriptor) *Class {
	name := desc.FullName()
	protoClassesMu.Lock()
	defer protoClassesMu.Unlock()
	if c, ok := protoClasses[name]; ok {
		return c
	}
	c := &Class{ID: uuid.NewSHA1(protoNamespace, []byte(name)), Name: string(name)}
	protoClasses[name] = c
	return c
}

// ProtoClassOf is ProtoClass for the type of msg.
func ProtoClassOf(msg proto.Message) *Class {
	return ProtoClass(msg.ProtoReflect().Descriptor())
}

func (m *Marshaller) protoMessage(msg protoreflect.Message) (Object, error) {
	if !msg.IsValid() {
		return NULL, nil
	}
	desc := msg.Descriptor()
	fields := make(map[string]Object, desc.Fields().Len())
	for i := 0; i < desc.Fields().Len(); i++ {
		fd := desc.Fields().Get(i)
		val, err := m.protoField(fd, msg.Get(fd))
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", desc.FullName(), fd.Name(), err)
		}
		fields[string(fd.Name())] = val
	}
	return NewInstance(ProtoClass(desc), fields), nil
}

func (m *Marshaller) protoField(fd protoreflect.FieldDescriptor, v protoreflect.Value) (Object, error) {
	switch {
	case fd.IsList():
		list := v.List()
		elements := make([]Object, list.Len())
		for i := 0; i < list.Len(); i++ {
			el, err := m.protoScalar(fd, list.Get(i))
			if err != nil {
				return nil, err
			}
			elements[i] = el
		}
		return NewArray(elements...), nil
	case fd.IsMap():
		rec := NewRecord(nil)
		var rangeErr error
		v.Map().Range(func(k protoreflect.MapKey, mv protoreflect.Value) bool {
			val, err := m.protoScalar(fd.MapValue(), mv)
			if err != nil {
				rangeErr = err
				return false
			}
			rec.Set(k.String(), val)
			return true
		})
		if rangeErr != nil {
			return nil, rangeErr
		}
		return rec, nil
	default:
		return m.protoScalar(fd, v)
	}
}

func (m *Marshaller) protoScalar(fd protoreflect.FieldDescriptor, v protoreflect.Value) (Object, error) {
	switch fd.Kind() {
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return m.protoMessage(v.Message())
	case protoreflect.EnumKind:
		if ev := fd.Enum().Values().ByNumber(v.Enum()); ev != nil {
			return NewString(string(ev.Name())), nil
		}
		return NewNumber(float64(v.Enum())), nil
	case protoreflect.BytesKind:
		return &HostObject{Value: v.Bytes()}, nil
	}
	return m.ToValue(v.Interface())
}
