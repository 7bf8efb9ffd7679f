package object

import (
	"fmt"
	"reflect"
)

// HostObject wraps a Go value that has no runtime category of its own.
type HostObject struct {
	Value interface{}
}

func (h *HostObject) Type() ObjectType { return HOST_OBJ }

func (h *HostObject) Inspect() string {
	return fmt.Sprintf("<HostObject: %T %+v>", h.Value, h.Value)
}

func (h *HostObject) Hash() uint32 {
	if h.Value == nil {
		return 0
	}
	val := reflect.ValueOf(h.Value)
	switch val.Kind() {
	case reflect.Ptr, reflect.UnsafePointer, reflect.Chan, reflect.Func, reflect.Map, reflect.Slice:
		return uint32(val.Pointer())
	default:
		return hashString(fmt.Sprintf("%v", h.Value))
	}
}
