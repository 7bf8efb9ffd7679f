package typesystem

import (
	"errors"
	"fmt"
	"strings"

	"github.com/funvibe/typedispatch/pkg/object"
)

// ErrorCode represents a machine-readable error kind.
type ErrorCode string

const (
	CodeArityMismatch            ErrorCode = "arity_mismatch"
	CodeArgumentTypeViolation    ErrorCode = "argument_type_violation"
	CodeReturnTypeViolation      ErrorCode = "return_type_violation"
	CodeNoApplicableMethod       ErrorCode = "no_applicable_method"
	CodeAmbiguousDispatch        ErrorCode = "ambiguous_dispatch"
	CodeIncompleteImplementation ErrorCode = "incomplete_implementation"
	CodeInvalidDescriptor        ErrorCode = "invalid_descriptor"
	CodeUnknownMember            ErrorCode = "unknown_member"
)

// Sentinels for errors.Is. An *Error matches a sentinel with the same Code.
var (
	ErrArityMismatch            = &Error{Code: CodeArityMismatch}
	ErrArgumentTypeViolation    = &Error{Code: CodeArgumentTypeViolation}
	ErrReturnTypeViolation      = &Error{Code: CodeReturnTypeViolation}
	ErrNoApplicableMethod       = &Error{Code: CodeNoApplicableMethod}
	ErrAmbiguousDispatch        = &Error{Code: CodeAmbiguousDispatch}
	ErrIncompleteImplementation = &Error{Code: CodeIncompleteImplementation}
	ErrInvalidDescriptor        = &Error{Code: CodeInvalidDescriptor}
	ErrUnknownMember            = &Error{Code: CodeUnknownMember}
)

// Error is a contract or dispatch failure.
type Error struct {
	Code    ErrorCode
	Message string

	// Position is the 0-based argument position for argument violations, -1 otherwise.
	Position int
	// Expected is the descriptor that was not satisfied.
	Expected Descriptor
	// Actual is the offending value.
	Actual object.Object
	// ActualTypes is the category tuple of a failed dispatch.
	ActualTypes []object.ObjectType
	// Candidates are the tied method tuples of an ambiguous dispatch.
	Candidates [][]Descriptor

	Details map[string]any
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithDetail returns a copy of e with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	cp := *e
	cp.Details = details
	return &cp
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func newArityMismatch(want, got int) *Error {
	return &Error{
		Code:     CodeArityMismatch,
		Message:  fmt.Sprintf("expected %d argument(s), got %d", want, got),
		Position: -1,
	}
}

func newArgumentTypeViolation(pos int, expected Descriptor, actual object.Object) *Error {
	return &Error{
		Code:     CodeArgumentTypeViolation,
		Message:  fmt.Sprintf("argument %d: expected %s, got %s", pos, expected, inspect(actual)),
		Position: pos,
		Expected: expected,
		Actual:   actual,
	}
}

func newReturnTypeViolation(expected Descriptor, actual object.Object) *Error {
	return &Error{
		Code:     CodeReturnTypeViolation,
		Message:  fmt.Sprintf("return value: expected %s, got %s", expected, inspect(actual)),
		Position: -1,
		Expected: expected,
		Actual:   actual,
	}
}

func newNoApplicableMethod(name string, args []object.Object) *Error {
	types := make([]object.ObjectType, len(args))
	names := make([]string, len(args))
	for i, a := range args {
		types[i] = object.TypeName(a)
		names[i] = string(types[i])
	}
	return &Error{
		Code:        CodeNoApplicableMethod,
		Message:     fmt.Sprintf("no applicable method for %s(%s)", name, strings.Join(names, ", ")),
		Position:    -1,
		ActualTypes: types,
	}
}

func newAmbiguousDispatch(name string, tied []Method) *Error {
	candidates := make([][]Descriptor, len(tied))
	names := make([]string, len(tied))
	for i, m := range tied {
		candidates[i] = m.Types
		names[i] = tupleString(m.Types)
	}
	return &Error{
		Code:       CodeAmbiguousDispatch,
		Message:    fmt.Sprintf("ambiguous call to %s between %s", name, strings.Join(names, " and ")),
		Position:   -1,
		Candidates: candidates,
	}
}

func inspect(o object.Object) string {
	if o == nil {
		return object.UNDEFINED.Inspect()
	}
	return o.Inspect()
}
