// Package expr builds deferred unary functions by recording operations
// performed on a placeholder value and replaying them later against real
// inputs.
//
// Expressions are immutable chains of tagged nodes. Every builder call
// extends an existing expression with one node and returns the new chain;
// nothing is evaluated until Eval is called with a concrete value. The
// shared root placeholder is X:
//
//	upper := expr.X.Upper()
//	v, _ := upper.Eval("mystr") // "MYSTR"
//
//	startsWithI := expr.X.Method("HasPrefix", "i") // reflect method call
//	gt := expr.X.Attr("Age").Gt(30)                // field access + compare
//	first := expr.X.Item(0)                        // index access
//
// A binary operator side that is itself an expression is evaluated against
// the same input independently:
//
//	eq := expr.X.Len().Eq(expr.X.Upper().Len())
//
// Expressions plug into the flow package as stage functions via Fn and
// Pred, and render themselves for labels and error messages via String.
package expr
