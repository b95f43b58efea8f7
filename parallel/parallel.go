package parallel

import (
	"context"
	"sync"
)

// Map applies fn to every input concurrently and returns the results in
// input order. The first failure cancels the remaining work and is
// returned.
func Map[T, U any](ctx context.Context, inputs []T, fn func(context.Context, T) (U, error), opts ...Option) ([]U, error) {
	o := buildOptions(opts)
	if len(inputs) < o.Workers {
		o.Workers = len(inputs)
	}
	if len(inputs) == 0 {
		return []U{}, nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type job struct {
		index int
		input T
	}
	jobs := make(chan job, o.Buffer)

	results := make([]U, len(inputs))
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for i := 0; i < o.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				out, err := fn(runCtx, j.input)
				if err != nil {
					fail(err)
					return
				}
				results[j.index] = out
				if runCtx.Err() != nil {
					return
				}
			}
		}()
	}

feed:
	for i, in := range inputs {
		select {
		case jobs <- job{index: i, input: in}:
		case <-runCtx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// MapUnordered applies fn to every input concurrently and returns results
// in completion order. The first failure cancels the remaining work and is
// returned.
func MapUnordered[T, U any](ctx context.Context, inputs []T, fn func(context.Context, T) (U, error), opts ...Option) ([]U, error) {
	o := buildOptions(opts)
	if len(inputs) < o.Workers {
		o.Workers = len(inputs)
	}
	if len(inputs) == 0 {
		return []U{}, nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan T, o.Buffer)
	out := make(chan U, o.Buffer)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for i := 0; i < o.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for in := range jobs {
				v, err := fn(runCtx, in)
				if err != nil {
					fail(err)
					return
				}
				select {
				case out <- v:
				case <-runCtx.Done():
					return
				}
			}
		}()
	}

	go func() {
	feed:
		for _, in := range inputs {
			select {
			case jobs <- in:
			case <-runCtx.Done():
				break feed
			}
		}
		close(jobs)
		wg.Wait()
		close(out)
	}()

	results := make([]U, 0, len(inputs))
	for v := range out {
		results = append(results, v)
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Each applies fn to every input concurrently, for side effects only.
func Each[T any](ctx context.Context, inputs []T, fn func(context.Context, T) error, opts ...Option) error {
	_, err := Map(ctx, inputs, func(ctx context.Context, in T) (struct{}, error) {
		return struct{}{}, fn(ctx, in)
	}, opts...)
	return err
}
