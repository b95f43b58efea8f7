package flow

import (
	"context"
	"reflect"

	"github.com/kbukum/flo/errors"
)

// Collector is a terminal function: it consumes a streamed sequence and
// produces a materialized result. Collectors carrying options are built by
// constructor functions; each option is documented by its constructor.
type Collector func(ctx context.Context, it Iterator) (any, error)

// ToSlice collects all values into a plain ordered []any.
func ToSlice() Collector {
	return func(ctx context.Context, it Iterator) (any, error) {
		out := make([]any, 0)
		for {
			v, ok, err := it.Next(ctx)
			if err != nil {
				return nil, err
			}
			if !ok {
				return out, nil
			}
			out = append(out, v)
		}
	}
}

// Count counts the values without retaining them.
func Count() Collector {
	return func(ctx context.Context, it Iterator) (any, error) {
		n := 0
		for {
			_, ok, err := it.Next(ctx)
			if err != nil {
				return nil, err
			}
			if !ok {
				return n, nil
			}
			n++
		}
	}
}

// Reduce folds all values into a single accumulator.
func Reduce(init any, fn func(acc, v any) (any, error)) Collector {
	return func(ctx context.Context, it Iterator) (any, error) {
		acc := init
		for {
			v, ok, err := it.Next(ctx)
			if err != nil {
				return nil, err
			}
			if !ok {
				return acc, nil
			}
			acc, err = fn(acc, v)
			if err != nil {
				return nil, errors.CollectorFailed("reduce", err)
			}
		}
	}
}

// DuplicatePolicy decides what UniqueIndex does when two elements produce
// the same key.
type DuplicatePolicy int

const (
	// FirstWins keeps the first occurrence and silently discards later
	// duplicates. The default.
	FirstWins DuplicatePolicy = iota
	// LastWins keeps the last occurrence.
	LastWins
	// FailOnDuplicate fails the terminal call with a DUPLICATE_KEY error.
	FailOnDuplicate
)

// IndexOption configures the index collectors.
type IndexOption func(*indexOptions)

type indexOptions struct {
	duplicates DuplicatePolicy
}

// WithDuplicatePolicy overrides the duplicate-key policy of UniqueIndex.
func WithDuplicatePolicy(p DuplicatePolicy) IndexOption {
	return func(o *indexOptions) { o.duplicates = p }
}

// UniqueIndex builds a map from key(element) to element.
//
// Options: key is the unary key function (commonly a built expression via
// Fn or Key); WithDuplicatePolicy selects what happens when two elements
// produce the same key. By default the first occurrence wins and later
// duplicates are discarded silently.
func UniqueIndex(key Mapper, opts ...IndexOption) Collector {
	o := indexOptions{duplicates: FirstWins}
	for _, opt := range opts {
		opt(&o)
	}
	return func(ctx context.Context, it Iterator) (any, error) {
		out := make(map[any]any)
		for {
			v, ok, err := it.Next(ctx)
			if err != nil {
				return nil, err
			}
			if !ok {
				return out, nil
			}
			k, err := indexKey(key, v)
			if err != nil {
				return nil, err
			}
			if _, exists := out[k]; exists {
				switch o.duplicates {
				case FirstWins:
					continue
				case FailOnDuplicate:
					return nil, errors.CollectorFailed("unique_index", errors.DuplicateKey(k))
				}
			}
			out[k] = v
		}
	}
}

// Index builds a map from key(element) to all elements sharing that key,
// each group in encounter order.
//
// Options: key is the unary key function.
func Index(key Mapper) Collector {
	return func(ctx context.Context, it Iterator) (any, error) {
		out := make(map[any][]any)
		for {
			v, ok, err := it.Next(ctx)
			if err != nil {
				return nil, err
			}
			if !ok {
				return out, nil
			}
			k, err := indexKey(key, v)
			if err != nil {
				return nil, err
			}
			out[k] = append(out[k], v)
		}
	}
}

func indexKey(key Mapper, v any) (any, error) {
	k, err := key(v)
	if err != nil {
		return nil, errors.CollectorFailed("index", err)
	}
	if k != nil && !reflect.TypeOf(k).Comparable() {
		return nil, errors.CollectorFailed("index",
			errors.InvalidOption("key", "key function produced a non-comparable value"))
	}
	return k, nil
}
