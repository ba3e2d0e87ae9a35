package ir

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes construction and evaluation errors.
type ErrorCode string

const (
	// ErrCodeIncomparableRegions indicates a placement failure: two
	// dependency regions are on different branches of the region tree.
	ErrCodeIncomparableRegions ErrorCode = "INCOMPARABLE_REGIONS"

	// ErrCodeTypeMismatch indicates an argument/parameter (or element)
	// type disagreement. Expected and Actual carry both sides.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"

	// ErrCodeTooManyArgs indicates arity overflow: arguments remain
	// after the applied value can no longer curry.
	ErrCodeTooManyArgs ErrorCode = "TOO_MANY_ARGS"

	// ErrCodeParamOutOfRange indicates a parameter index beyond the
	// region's declared parameter count.
	ErrCodeParamOutOfRange ErrorCode = "PARAM_OUT_OF_RANGE"

	// ErrCodeUndefParam indicates substitution reached a parameter of a
	// bound region with no value registered for it.
	ErrCodeUndefParam ErrorCode = "UNDEF_PARAM"

	// ErrCodeNotAType indicates a value used as a type is not one.
	ErrCodeNotAType ErrorCode = "NOT_A_TYPE"

	// ErrCodeNotAFunction indicates application of a value whose type
	// is not a function type.
	ErrCodeNotAFunction ErrorCode = "NOT_A_FUNCTION"

	// ErrCodeNullRegion indicates an operation that needs a binding
	// region was given the global (null) region.
	ErrCodeNullRegion ErrorCode = "NULL_REGION"

	// ErrCodeAffineReused reports a second use of an affine value.
	// Enforcement policy belongs to the lifetime subsystem; this core
	// only reports the fact.
	ErrCodeAffineReused ErrorCode = "AFFINE_REUSED"

	// ErrCodeRelevantUnused reports a relevant value that was never
	// used. Enforcement policy belongs to the lifetime subsystem.
	ErrCodeRelevantUnused ErrorCode = "RELEVANT_UNUSED"

	// ErrCodeUnimplemented marks node kinds that deliberately abort
	// rather than mis-evaluate. Distinct from design errors.
	ErrCodeUnimplemented ErrorCode = "UNIMPLEMENTED"
)

// Error is a typed construction or evaluation error. Errors are data
// for front ends to render: the core never logs or terminates on them,
// and any in-flight substitution state is rolled back before one is
// returned.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Expected and Actual carry both sides of a type mismatch for
	// diagnostics. Nil for other codes.
	Expected TypeId
	Actual   TypeId
}

// Error implements the error interface.
func (e *Error) Error() string {
	if !e.Expected.IsNil() || !e.Actual.IsNil() {
		return fmt.Sprintf("%s: %s (expected %s, got %s)", e.Code, e.Message, e.Expected, e.Actual)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates an Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Errorf creates an Error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// TypeMismatch creates a type error carrying both sides.
func TypeMismatch(expected, actual TypeId) *Error {
	return &Error{
		Code:     ErrCodeTypeMismatch,
		Message:  "type mismatch",
		Expected: expected,
		Actual:   actual,
	}
}

// IsCode returns true if err is (or wraps) an *Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsPlacementError returns true for incomparable-region failures.
func IsPlacementError(err error) bool { return IsCode(err, ErrCodeIncomparableRegions) }

// IsTypeMismatch returns true for argument/parameter type disagreements.
func IsTypeMismatch(err error) bool { return IsCode(err, ErrCodeTypeMismatch) }

// IsArityError returns true for arity overflow or out-of-range indices.
func IsArityError(err error) bool {
	return IsCode(err, ErrCodeTooManyArgs) || IsCode(err, ErrCodeParamOutOfRange)
}

// IsUnimplemented returns true for deliberate unimplemented-feature markers.
func IsUnimplemented(err error) bool { return IsCode(err, ErrCodeUnimplemented) }
