// Package flow provides lazy, pull-based fluent pipelines over arbitrary
// sources.
//
// A Flow wraps a source and accumulates transform and predicate stages
// without executing them. No work happens until a terminal operation pulls
// values. Each source element streams through the stage chain one at a
// time, so bounded terminals work over unbounded sources.
//
//	out, _ := flow.Slice([]string{"pretty", "cool", "items", "kiddo"}).
//		MapE(expr.X.Upper()).
//		FilterE(expr.X.Has("E")).
//		Collect(ctx, flow.UniqueIndex(expr.X.Item(0).Fn()))
//
// Flows are immutable: appending a stage returns a new Flow and leaves the
// original usable. A terminal traversal owns the source's iteration cursor;
// restarting requires a restartable source.
//
// # Stages
//
//   - Map (alias Apply): transform each value
//   - Filter (alias Where), Exclude: keep or drop values by predicate
//   - MapE, FilterE, WhereE, ExcludeE: expression-valued stages via the
//     Evaluator interface
//
// # Stream operators
//
//   - Flatten, FlatMap: expand values into multiple values
//   - TakeWhile, DropWhile, Take: bounded prefixes
//   - Chain: append another source
//   - Tap: side-effect without altering the value
//   - Cache: memoize the stream for cheap re-traversal
//
// # Terminals
//
//   - Collect (alias To): drain into a Collector
//   - Slice, First, Iter: convenience access
package flow
