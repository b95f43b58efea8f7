// Package table provides small in-memory Series and Frame types with
// fluent, expression-backed row filters and counting helpers.
//
//	adults := frame.Gt("age", 17).OnlyIn("country", "DE", "FR")
package table
