package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Expression engine errors
const (
	// ErrCodeEvalFailed indicates an expression node failed to evaluate.
	ErrCodeEvalFailed ErrorCode = "EXPR_EVAL_FAILED"
	// ErrCodeUnsupportedOp indicates an operator was applied to operands
	// that do not support it.
	ErrCodeUnsupportedOp ErrorCode = "UNSUPPORTED_OPERATION"
	// ErrCodeNoSuchAttr indicates an attribute lookup found no field or key.
	ErrCodeNoSuchAttr ErrorCode = "NO_SUCH_ATTRIBUTE"
	// ErrCodeNoSuchItem indicates an item lookup found no entry or the index
	// was out of range.
	ErrCodeNoSuchItem ErrorCode = "NO_SUCH_ITEM"
	// ErrCodeNoSuchMethod indicates a method invocation found no method.
	ErrCodeNoSuchMethod ErrorCode = "NO_SUCH_METHOD"
)

// Pipeline errors
const (
	// ErrCodeStageFailed indicates a transform or predicate stage failed
	// during a terminal traversal.
	ErrCodeStageFailed ErrorCode = "STAGE_FAILED"
	// ErrCodeCollectorFailed indicates a collector could not build its result.
	ErrCodeCollectorFailed ErrorCode = "COLLECTOR_FAILED"
	// ErrCodeDuplicateKey indicates an index collector saw a duplicate key
	// while configured to fail on duplicates.
	ErrCodeDuplicateKey ErrorCode = "DUPLICATE_KEY"
	// ErrCodeInvalidOption indicates a collector or backend received an
	// unsupported option.
	ErrCodeInvalidOption ErrorCode = "INVALID_OPTION"
)

// Validation errors
const (
	// ErrCodeCheckFailed indicates a pre/postcondition test evaluated false.
	ErrCodeCheckFailed ErrorCode = "CHECK_FAILED"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)
