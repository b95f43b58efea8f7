// Package errors provides structured error handling for the flo toolkit.
// It implements an error type with machine-readable codes and positional
// context, so a failure raised deep inside an expression chain or pipeline
// traversal reaches the caller unchanged in kind (via Unwrap) while carrying
// the position at which it occurred.
package errors
