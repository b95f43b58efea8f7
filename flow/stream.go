package flow

import (
	"context"
	"reflect"
	"sync"
)

// stageIter streams source elements through the stage chain, one element at
// a time. Elements abandoned by a predicate are skipped without touching
// later stages.
type stageIter struct {
	source Iterator
	stages []Stage
}

func (it *stageIter) Next(ctx context.Context) (any, bool, error) {
	for {
		v, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		out, keep, err := applyStages(it.stages, v)
		if err != nil {
			return nil, false, err
		}
		if keep {
			return out, true, nil
		}
	}
}

func (it *stageIter) Close() error { return it.source.Close() }

// flattenIter expands slice and array elements into their members. Other
// element kinds pass through unchanged.
type flattenIter struct {
	source  Iterator
	current reflect.Value
	index   int
	active  bool
}

func (it *flattenIter) Next(ctx context.Context) (any, bool, error) {
	for {
		if it.active {
			if it.index < it.current.Len() {
				v := it.current.Index(it.index).Interface()
				it.index++
				return v, true, nil
			}
			it.active = false
		}
		v, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			it.current = rv
			it.index = 0
			it.active = true
		default:
			return v, true, nil
		}
	}
}

func (it *flattenIter) Close() error { return it.source.Close() }

type takeWhileIter struct {
	source Iterator
	fn     PredicateFunc
	done   bool
}

func (it *takeWhileIter) Next(ctx context.Context) (any, bool, error) {
	if it.done {
		return nil, false, nil
	}
	v, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return nil, false, err
	}
	keep, err := it.fn(v)
	if err != nil {
		return nil, false, err
	}
	if !keep {
		it.done = true
		return nil, false, nil
	}
	return v, true, nil
}

func (it *takeWhileIter) Close() error { return it.source.Close() }

type dropWhileIter struct {
	source   Iterator
	fn       PredicateFunc
	dropping bool
	started  bool
}

func (it *dropWhileIter) Next(ctx context.Context) (any, bool, error) {
	if !it.started {
		it.started = true
		it.dropping = true
	}
	for {
		v, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return nil, false, err
		}
		if it.dropping {
			drop, err := it.fn(v)
			if err != nil {
				return nil, false, err
			}
			if drop {
				continue
			}
			it.dropping = false
		}
		return v, true, nil
	}
}

func (it *dropWhileIter) Close() error { return it.source.Close() }

type takeIter struct {
	source    Iterator
	remaining int
}

func (it *takeIter) Next(ctx context.Context) (any, bool, error) {
	if it.remaining <= 0 {
		return nil, false, nil
	}
	v, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return nil, false, err
	}
	it.remaining--
	return v, true, nil
}

func (it *takeIter) Close() error { return it.source.Close() }

type chainIter struct {
	iters []Iterator
	index int
}

func (it *chainIter) Next(ctx context.Context) (any, bool, error) {
	for it.index < len(it.iters) {
		v, ok, err := it.iters[it.index].Next(ctx)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return v, true, nil
		}
		it.index++
	}
	return nil, false, nil
}

func (it *chainIter) Close() error {
	var firstErr error
	for _, iter := range it.iters {
		if err := iter.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type tapIter struct {
	source Iterator
	fn     func(any) error
}

func (it *tapIter) Next(ctx context.Context) (any, bool, error) {
	v, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return nil, false, err
	}
	if err := it.fn(v); err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (it *tapIter) Close() error { return it.source.Close() }

// cacheSource memoizes the upstream flow's output on first complete
// traversal. Concurrent first traversals are serialized by the fill lock.
type cacheSource struct {
	upstream *Flow

	mu     sync.Mutex
	filled bool
	memo   []any
}

func (s *cacheSource) Iterate(ctx context.Context) Iterator {
	s.mu.Lock()
	if s.filled {
		memo := s.memo
		s.mu.Unlock()
		return &sliceIter{items: memo}
	}
	s.mu.Unlock()
	return &cacheFillIter{source: s, inner: s.upstream.Iter(ctx)}
}

type cacheFillIter struct {
	source   *cacheSource
	inner    Iterator
	buf      []any
	complete bool
}

func (it *cacheFillIter) Next(ctx context.Context) (any, bool, error) {
	v, ok, err := it.inner.Next(ctx)
	if err != nil {
		it.buf = nil
		return nil, false, err
	}
	if !ok {
		it.complete = true
		it.source.mu.Lock()
		if !it.source.filled {
			it.source.filled = true
			it.source.memo = it.buf
		}
		it.source.mu.Unlock()
		return nil, false, nil
	}
	it.buf = append(it.buf, v)
	return v, true, nil
}

func (it *cacheFillIter) Close() error { return it.inner.Close() }
