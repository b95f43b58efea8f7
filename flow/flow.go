package flow

import (
	"context"
	"fmt"

	"github.com/kbukum/flo/util"
)

// Flow is an immutable chain of stages over a source sequence. Appending a
// stage never mutates an existing Flow; prior values remain valid and
// reusable. The source reference is shared, never copied.
type Flow struct {
	source Source
	stages []Stage
	label  string
}

// From wraps an existing source.
func From(src Source) *Flow {
	return &Flow{source: src, label: fmt.Sprintf("%T", src)}
}

// Slice wraps a slice of values.
func Slice[T any](items []T) *Flow {
	return &Flow{source: sliceSource{items: util.Boxed(items)}, label: sourceLabel("slice", len(items))}
}

// ForEach wraps individual values, as if they had been collected into a
// sequence first.
func ForEach(vals ...any) *Flow {
	return &Flow{source: sliceSource{items: vals}, label: sourceLabel("values", len(vals))}
}

// Func wraps an iterator factory. Restartable when each call produces an
// independent cursor.
func Func(fn func(ctx context.Context) Iterator) *Flow {
	return &Flow{source: SourceFunc(fn), label: "func"}
}

// Gen wraps a pull function, usually a closure over a counter. Single-pass:
// a second terminal call continues from where the first stopped. Suits
// unbounded sources combined with bounded terminals like Take or First.
func Gen(next func() (any, bool)) *Flow {
	return &Flow{source: genSource{next: next}, label: "gen"}
}

// Chan wraps a receive channel. Single-pass.
func Chan(ch <-chan any) *Flow {
	return &Flow{source: chanSource{ch: ch}, label: "chan"}
}

// with returns a new Flow extended by one stage, copying the stage list so
// the receiver stays untouched.
func (f *Flow) with(sep string, s Stage) *Flow {
	stages := make([]Stage, len(f.stages), len(f.stages)+1)
	copy(stages, f.stages)
	return &Flow{
		source: f.source,
		stages: append(stages, s),
		label:  f.label + " " + sep + " " + s.label,
	}
}

// --- Stages ---

// Map appends a transform stage applying fn to each element.
func (f *Flow) Map(fn Mapper) *Flow {
	return f.with("*", transformStage("map", fn))
}

// Apply is an alias for Map.
func (f *Flow) Apply(fn Mapper) *Flow { return f.Map(fn) }

// MapE appends a transform stage evaluating the expression against each
// element.
func (f *Flow) MapE(e Evaluator) *Flow {
	return f.with("*", transformStage(e.String(), e.Eval))
}

// Filter appends a predicate stage keeping only elements for which fn is
// true.
func (f *Flow) Filter(fn PredicateFunc) *Flow {
	return f.with("/", predicateStage("filter", fn))
}

// Where is an alias for Filter.
func (f *Flow) Where(fn PredicateFunc) *Flow { return f.Filter(fn) }

// FilterE appends a predicate stage evaluating the expression against each
// element, coercing the result to its truthiness.
func (f *Flow) FilterE(e Evaluator) *Flow {
	return f.with("/", predicateStage(e.String(), evalPredicate(e)))
}

// WhereE is an alias for FilterE.
func (f *Flow) WhereE(e Evaluator) *Flow { return f.FilterE(e) }

// Exclude appends a predicate stage dropping elements for which fn is true.
func (f *Flow) Exclude(fn PredicateFunc) *Flow {
	inverted := func(v any) (bool, error) {
		ok, err := fn(v)
		return !ok, err
	}
	return f.with("/", predicateStage("not filter", inverted))
}

// ExcludeE appends a predicate stage dropping elements for which the
// expression evaluates truthy.
func (f *Flow) ExcludeE(e Evaluator) *Flow {
	pred := evalPredicate(e)
	inverted := func(v any) (bool, error) {
		ok, err := pred(v)
		return !ok, err
	}
	return f.with("/", predicateStage("not "+e.String(), inverted))
}

// --- Stream operators ---

// derive wraps the flow's composed stream in an iterator decorator,
// starting a fresh stage chain on top.
func (f *Flow) derive(label string, wrap func(Iterator) Iterator) *Flow {
	prev := f
	return &Flow{
		source: SourceFunc(func(ctx context.Context) Iterator {
			return wrap(prev.Iter(ctx))
		}),
		label: f.label + " " + label,
	}
}

// Flatten expands elements that are slices or arrays into their elements.
func (f *Flow) Flatten() *Flow {
	return f.derive("* flatten", func(src Iterator) Iterator {
		return &flattenIter{source: src}
	})
}

// FlatMap is shorthand for Map(fn) followed by Flatten.
func (f *Flow) FlatMap(fn Mapper) *Flow {
	return f.Map(fn).Flatten()
}

// TakeWhile yields elements until fn first reports false.
func (f *Flow) TakeWhile(fn PredicateFunc) *Flow {
	return f.derive("takewhile", func(src Iterator) Iterator {
		return &takeWhileIter{source: src, fn: fn}
	})
}

// DropWhile skips elements until fn first reports false, then yields the
// rest.
func (f *Flow) DropWhile(fn PredicateFunc) *Flow {
	return f.derive("dropwhile", func(src Iterator) Iterator {
		return &dropWhileIter{source: src, fn: fn}
	})
}

// Take yields at most n elements. The source is pulled no further than
// needed, so Take bounds unbounded sources.
func (f *Flow) Take(n int) *Flow {
	return f.derive(fmt.Sprintf("take(%d)", n), func(src Iterator) Iterator {
		return &takeIter{source: src, remaining: n}
	})
}

// Chain appends all elements of other after this flow's elements, stages
// included. Both flows stay independently usable.
func (f *Flow) Chain(other *Flow) *Flow {
	prev := f
	return &Flow{
		source: SourceFunc(func(ctx context.Context) Iterator {
			return &chainIter{iters: []Iterator{prev.Iter(ctx), other.Iter(ctx)}}
		}),
		label: f.label + " chain",
	}
}

// Tap calls fn as a side-effect for each value, then passes the value
// through unchanged. Use for logging or metrics.
func (f *Flow) Tap(fn func(any) error) *Flow {
	return f.derive("tap", func(src Iterator) Iterator {
		return &tapIter{source: src, fn: fn}
	})
}

// Cache memoizes the composed stream on first traversal so later terminal
// calls replay it without recomputing stages or re-reading the source. The
// memo is discarded when the first traversal stops early or fails.
func (f *Flow) Cache() *Flow {
	prev := f
	return &Flow{
		source: &cacheSource{upstream: prev},
		label:  f.label + " cached",
	}
}

// --- Terminals ---

// Iter starts a streaming pass and returns the composed iterator. The
// caller owns the cursor and must Close it.
func (f *Flow) Iter(ctx context.Context) Iterator {
	return &stageIter{source: f.source.Iterate(ctx), stages: f.stages}
}

// Collect drives a single streaming pass and drains it into the collector.
func (f *Flow) Collect(ctx context.Context, c Collector) (any, error) {
	it := f.Iter(ctx)
	defer it.Close()
	return c(ctx, it)
}

// To is an alias for Collect.
func (f *Flow) To(ctx context.Context, c Collector) (any, error) {
	return f.Collect(ctx, c)
}

// Slice drains the flow into a plain ordered slice.
func (f *Flow) Slice(ctx context.Context) ([]any, error) {
	out, err := f.Collect(ctx, ToSlice())
	if err != nil {
		return nil, err
	}
	return out.([]any), nil
}

// First pulls a single element. Returns false when the flow is empty.
func (f *Flow) First(ctx context.Context) (any, bool, error) {
	it := f.Iter(ctx)
	defer it.Close()
	return it.Next(ctx)
}

// Stages returns a copy of the stage chain, insertion order preserved.
func (f *Flow) Stages() []Stage {
	out := make([]Stage, len(f.stages))
	copy(out, f.stages)
	return out
}

// String returns the flow's display label.
func (f *Flow) String() string { return f.label }
