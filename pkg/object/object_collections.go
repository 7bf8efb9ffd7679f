package object

import (
	"bytes"
	"sort"
	"strings"
)

// Array is an ordered sequence of values.
type Array struct {
	Elements []Object
}

func NewArray(elements ...Object) *Array {
	if elements == nil {
		elements = []Object{}
	}
	return &Array{Elements: elements}
}

func (a *Array) Type() ObjectType { return ARRAY_OBJ }
func (a *Array) Inspect() string {
	parts := make([]string, len(a.Elements))
	for i, el := range a.Elements {
		parts[i] = inspect(el)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (a *Array) Hash() uint32 {
	h := uint32(17)
	for _, el := range a.Elements {
		h = 31*h + hash(el)
	}
	return h
}

func (a *Array) Len() int { return len(a.Elements) }

// Get returns the element at i, or UNDEFINED when i is out of range.
func (a *Array) Get(i int) Object {
	if i < 0 || i >= len(a.Elements) {
		return UNDEFINED
	}
	return a.Elements[i]
}

// Slice returns a new array holding elements [start, len).
func (a *Array) Slice(start int) *Array {
	if start >= len(a.Elements) {
		return NewArray()
	}
	if start < 0 {
		start = 0
	}
	out := make([]Object, len(a.Elements)-start)
	copy(out, a.Elements[start:])
	return &Array{Elements: out}
}

// RecordField represents a single field in a Record.
type RecordField struct {
	Key   string
	Value Object
}

// Record is a plain object: a set of named members, some of which may be
// methods. Fields are kept sorted by key for O(log N) access.
type Record struct {
	Fields []RecordField // Sorted by Key
}

// NewRecord creates a new Record from a map of fields.
func NewRecord(fieldMap map[string]Object) *Record {
	fields := make([]RecordField, 0, len(fieldMap))
	for k, v := range fieldMap {
		fields = append(fields, RecordField{Key: k, Value: v})
	}
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Key < fields[j].Key
	})
	return &Record{Fields: fields}
}

func (r *Record) Type() ObjectType { return OBJECT_OBJ }
func (r *Record) Inspect() string {
	var out bytes.Buffer
	out.WriteString("{")
	for i, f := range r.Fields {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(f.Key)
		out.WriteString(": ")
		out.WriteString(inspect(f.Value))
	}
	out.WriteString("}")
	return out.String()
}
func (r *Record) Hash() uint32 {
	h := uint32(19)
	for _, f := range r.Fields {
		h = 31*h + hashString(f.Key)
		h = 31*h + hash(f.Value)
	}
	return h
}

func (r *Record) search(key string) int {
	return sort.Search(len(r.Fields), func(i int) bool {
		return r.Fields[i].Key >= key
	})
}

// Get returns the value for a key, or nil if not found.
func (r *Record) Get(key string) Object {
	idx := r.search(key)
	if idx < len(r.Fields) && r.Fields[idx].Key == key {
		return r.Fields[idx].Value
	}
	return nil
}

// Set stores value under key, keeping the fields sorted.
func (r *Record) Set(key string, value Object) {
	idx := r.search(key)
	if idx < len(r.Fields) && r.Fields[idx].Key == key {
		r.Fields[idx].Value = value
		return
	}
	r.Fields = append(r.Fields, RecordField{})
	copy(r.Fields[idx+1:], r.Fields[idx:])
	r.Fields[idx] = RecordField{Key: key, Value: value}
}

// Keys returns the field names in sorted order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		keys[i] = f.Key
	}
	return keys
}

func (r *Record) Len() int { return len(r.Fields) }

func inspect(o Object) string {
	if o == nil {
		return UNDEFINED.Inspect()
	}
	return o.Inspect()
}

func hash(o Object) uint32 {
	if o == nil {
		return 0
	}
	return o.Hash()
}
