// Package logger provides structured logging for flo using zerolog.
//
// It supports JSON and console output, level configuration, and
// scope-tagged loggers with structured fields.
//
// # Usage
//
//	log := logger.Get("flow")
//	log.Info("collected", logger.Fields(logger.FieldElements, 42))
package logger
