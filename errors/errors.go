package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is the structured error type used across flo packages.
type Error struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context, e.g. the failing position.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error. Unwrap exposes it, so the original
	// kind stays reachable through errors.Is and errors.As.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new Error.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a new Error with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// --- Common Error Constructors ---

// EvalFailed creates an Error for an expression node that failed to
// evaluate. Position is the zero-based index of the failing node counted
// from the placeholder root; op is the rendered operation.
func EvalFailed(position int, op string, cause error) *Error {
	return &Error{
		Code: ErrCodeEvalFailed, Message: fmt.Sprintf("expression node %d (%s) failed", position, op),
		Details: map[string]any{"position": position, "op": op},
		Cause:   cause,
	}
}

// StageFailed creates an Error for a pipeline stage that failed during a
// terminal traversal. Position is the zero-based stage index.
func StageFailed(position int, label string, cause error) *Error {
	return &Error{
		Code: ErrCodeStageFailed, Message: fmt.Sprintf("stage %d (%s) failed", position, label),
		Details: map[string]any{"position": position, "stage": label},
		Cause:   cause,
	}
}

// CollectorFailed creates an Error for a collector that could not build
// its result.
func CollectorFailed(name string, cause error) *Error {
	return &Error{
		Code: ErrCodeCollectorFailed, Message: fmt.Sprintf("collector %s failed", name),
		Details: map[string]any{"collector": name},
		Cause:   cause,
	}
}

// DuplicateKey creates an Error for an index collector that saw the same
// key twice while configured to fail on duplicates.
func DuplicateKey(key any) *Error {
	return &Error{
		Code: ErrCodeDuplicateKey, Message: fmt.Sprintf("non-unique key %v", key),
		Details: map[string]any{"key": key},
	}
}

// InvalidOption creates an Error for an unsupported collector or backend
// option.
func InvalidOption(option, reason string) *Error {
	return &Error{
		Code: ErrCodeInvalidOption, Message: fmt.Sprintf("invalid option %s: %s", option, reason),
		Details: map[string]any{"option": option},
	}
}

// CheckFailed creates an Error for a failed pre/postcondition.
func CheckFailed(message string) *Error {
	return &Error{Code: ErrCodeCheckFailed, Message: message}
}

// InvalidInput creates an Error for invalid input.
func InvalidInput(field, reason string) *Error {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &Error{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("invalid input: %s", reason),
		Details: details,
	}
}

// NoSuchAttr creates an Error for a failed attribute lookup.
func NoSuchAttr(name string, target any) *Error {
	return &Error{
		Code: ErrCodeNoSuchAttr, Message: fmt.Sprintf("no attribute %q on %T", name, target),
		Details: map[string]any{"attribute": name},
	}
}

// NoSuchItem creates an Error for a failed item lookup.
func NoSuchItem(key any, target any) *Error {
	return &Error{
		Code: ErrCodeNoSuchItem, Message: fmt.Sprintf("no item %v in %T", key, target),
		Details: map[string]any{"key": fmt.Sprintf("%v", key)},
	}
}

// NoSuchMethod creates an Error for a failed method lookup.
func NoSuchMethod(name string, target any) *Error {
	return &Error{
		Code: ErrCodeNoSuchMethod, Message: fmt.Sprintf("no method %q on %T", name, target),
		Details: map[string]any{"method": name},
	}
}

// Unsupported creates an Error for an operator applied to operands that do
// not support it.
func Unsupported(op string, operand any) *Error {
	return &Error{
		Code: ErrCodeUnsupportedOp, Message: fmt.Sprintf("operator %q not supported for %T", op, operand),
		Details: map[string]any{"op": op},
	}
}

// --- Inspection helpers ---

// IsError checks if an error is a flo *Error.
func IsError(err error) bool {
	var e *Error
	return stderrors.As(err, &e)
}

// AsError converts an error to a flo *Error if possible.
func AsError(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the error code of err, or the empty code when err is not
// a flo *Error.
func CodeOf(err error) ErrorCode {
	if e, ok := AsError(err); ok {
		return e.Code
	}
	return ""
}

// Position returns the positional context of err when present. The second
// return is false when err carries no position detail.
func Position(err error) (int, bool) {
	e, ok := AsError(err)
	if !ok || e.Details == nil {
		return 0, false
	}
	pos, ok := e.Details["position"].(int)
	return pos, ok
}
