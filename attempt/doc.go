// Package attempt captures the outcome of a fallible call as a value, so
// failures can be chained, defaulted, or logged instead of propagated
// immediately.
//
//	n := attempt.Of(func() (int, error) { return parsePort(s) }).OrElse(8080)
package attempt
