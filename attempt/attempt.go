package attempt

import (
	"fmt"

	"github.com/kbukum/flo/logger"
)

// Attempt holds either the result of a call or the error it produced.
// The zero value is a failed attempt with a nil error; build values with
// Of, Success or Failure.
type Attempt[T any] struct {
	value T
	err   error
	ok    bool
}

// Success wraps a value in a succeeded attempt.
func Success[T any](v T) Attempt[T] {
	return Attempt[T]{value: v, ok: true}
}

// Failure wraps an error in a failed attempt.
func Failure[T any](err error) Attempt[T] {
	return Attempt[T]{err: err}
}

// Of runs fn and captures its outcome. A panic inside fn is recovered and
// recorded as a failure.
func Of[T any](fn func() (T, error)) (a Attempt[T]) {
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok {
				a = Failure[T](fmt.Errorf("panic: %w", err))
			} else {
				a = Failure[T](fmt.Errorf("panic: %v", r))
			}
		}
	}()
	v, err := fn()
	if err != nil {
		return Failure[T](err)
	}
	return Success[T](v)
}

// Call runs fn with arg and captures its outcome, panics included.
func Call[T, U any](fn func(T) (U, error), arg T) Attempt[U] {
	return Of(func() (U, error) { return fn(arg) })
}

// Succeeded reports whether the attempt holds a result.
func (a Attempt[T]) Succeeded() bool { return a.ok }

// Failed reports whether the attempt holds an error.
func (a Attempt[T]) Failed() bool { return !a.ok }

// Result returns the result and error of the attempt.
func (a Attempt[T]) Result() (T, error) {
	return a.value, a.err
}

// Err returns the captured error, nil when the attempt succeeded.
func (a Attempt[T]) Err() error { return a.err }

// Must returns the result, panicking when the attempt failed.
func (a Attempt[T]) Must() T {
	if !a.ok {
		panic(a.err)
	}
	return a.value
}

// OrElse returns the result when the attempt succeeded, def otherwise.
func (a Attempt[T]) OrElse(def T) T {
	if a.ok {
		return a.value
	}
	return def
}

// OrElseGet returns the result when the attempt succeeded, fn() otherwise.
func (a Attempt[T]) OrElseGet(fn func() T) T {
	if a.ok {
		return a.value
	}
	return fn()
}

// OrElseLog returns the result when the attempt succeeded; otherwise it
// logs the captured error on log and returns def. A nil log uses the
// package's registered logger.
func (a Attempt[T]) OrElseLog(def T, log *logger.Logger) T {
	if a.ok {
		return a.value
	}
	if a.err != nil {
		if log == nil {
			log = logger.Get("attempt")
		}
		log.Error("attempt failed", logger.ErrorFields("attempt", a.err))
	}
	return def
}

// AndThen feeds a succeeded attempt's result through fn, capturing the new
// outcome. A failed attempt passes its error through unchanged.
func AndThen[T, U any](a Attempt[T], fn func(T) (U, error)) Attempt[U] {
	if a.Failed() {
		return Failure[U](a.err)
	}
	return Of(func() (U, error) { return fn(a.value) })
}
