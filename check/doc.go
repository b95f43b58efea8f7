// Package check provides precondition helpers: expression-based assertions
// over single values, a fluent field validator, and tag-driven struct
// validation.
//
//	age := check.Must(check.That(age, expr.X.Ge(0)))
//	err := check.New().Required("name", name).Range("port", port, 1, 65535).Validate()
package check
