package object

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var (
	UNDEFINED = &Undefined{}
	NULL      = &Null{}
	TRUE      = &Boolean{Value: true}
	FALSE     = &Boolean{Value: false}
)

// Undefined is the "no value" sentinel.
type Undefined struct{}

func (u *Undefined) Type() ObjectType { return UNDEFINED_OBJ }
func (u *Undefined) Inspect() string  { return "undefined" }
func (u *Undefined) Hash() uint32     { return 0 }

// Null is the "explicit null" sentinel.
type Null struct{}

func (n *Null) Type() ObjectType { return NULL_OBJ }
func (n *Null) Inspect() string  { return "null" }
func (n *Null) Hash() uint32     { return 1 }

// Number
type Number struct {
	Value float64
}

func NewNumber(v float64) *Number { return &Number{Value: v} }

func (n *Number) Type() ObjectType { return NUMBER_OBJ }
func (n *Number) Inspect() string {
	if math.IsNaN(n.Value) {
		return "NaN"
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}
func (n *Number) Hash() uint32 {
	bits := math.Float64bits(n.Value)
	return uint32(bits ^ (bits >> 32))
}

// IsNaN reports whether the number is the not-a-number value.
func (n *Number) IsNaN() bool { return math.IsNaN(n.Value) }

// IsInteger reports whether the number has no fractional part.
func (n *Number) IsInteger() bool {
	return !math.IsNaN(n.Value) && !math.IsInf(n.Value, 0) && n.Value == math.Trunc(n.Value)
}

// String
type String struct {
	Value string
}

func NewString(s string) *String { return &String{Value: s} }

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return strconv.Quote(s.Value) }
func (s *String) Hash() uint32     { return hashString(s.Value) }

// Boolean
type Boolean struct {
	Value bool
}

// NativeBool returns the shared TRUE or FALSE value.
func NativeBool(b bool) *Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }
func (b *Boolean) Hash() uint32 {
	if b.Value {
		return 1
	}
	return 0
}

// RegExp holds a compiled pattern.
type RegExp struct {
	Pattern *regexp.Regexp
}

func NewRegExp(pattern string) (*RegExp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regexp %q: %w", pattern, err)
	}
	return &RegExp{Pattern: re}, nil
}

// MustRegExp is like NewRegExp but panics on an invalid pattern.
func MustRegExp(pattern string) *RegExp {
	re, err := NewRegExp(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

func (r *RegExp) Type() ObjectType { return REGEXP_OBJ }
func (r *RegExp) Inspect() string  { return "/" + r.Pattern.String() + "/" }
func (r *RegExp) Hash() uint32     { return hashString(r.Pattern.String()) }
