package flow

import (
	"context"
	"fmt"
)

// Iterator provides pull-based sequential access to a stream of values.
type Iterator interface {
	// Next returns the next value. Returns (nil, false, nil) when exhausted.
	Next(ctx context.Context) (any, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Source produces iterators over a sequence. A source is restartable when
// each Iterate call yields an independent cursor; single-pass sources are
// exhausted after one terminal traversal.
type Source interface {
	Iterate(ctx context.Context) Iterator
}

// SourceFunc adapts a factory function to the Source interface.
type SourceFunc func(ctx context.Context) Iterator

// Iterate implements Source.
func (f SourceFunc) Iterate(ctx context.Context) Iterator { return f(ctx) }

// --- Slice sources ---

type sliceSource struct {
	items []any
}

func (s sliceSource) Iterate(context.Context) Iterator {
	return &sliceIter{items: s.items}
}

type sliceIter struct {
	items []any
	index int
}

func (it *sliceIter) Next(context.Context) (any, bool, error) {
	if it.index >= len(it.items) {
		return nil, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter) Close() error { return nil }

// --- Generator source ---

// genSource wraps a pull function. Single-pass: every Iterate call shares
// the same cursor.
type genSource struct {
	next func() (any, bool)
}

func (s genSource) Iterate(context.Context) Iterator { return genIter{next: s.next} }

type genIter struct {
	next func() (any, bool)
}

func (it genIter) Next(context.Context) (any, bool, error) {
	v, ok := it.next()
	return v, ok, nil
}

func (it genIter) Close() error { return nil }

// --- Channel source ---

// chanSource reads values from a channel. Single-pass by nature.
type chanSource struct {
	ch <-chan any
}

func (s chanSource) Iterate(context.Context) Iterator { return chanIter{ch: s.ch} }

type chanIter struct {
	ch <-chan any
}

func (it chanIter) Next(ctx context.Context) (any, bool, error) {
	select {
	case v, open := <-it.ch:
		if !open {
			return nil, false, nil
		}
		return v, true, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

func (it chanIter) Close() error { return nil }

func sourceLabel(prefix string, n int) string {
	return fmt.Sprintf("%s[%d]", prefix, n)
}
