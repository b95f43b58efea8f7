package parallel

import (
	"context"
	"sync"

	"github.com/kbukum/flo/flow"
)

type result struct {
	val any
	ok  bool
	err error
}

// Stream applies fn to each element of f concurrently with a bounded worker
// pool. Output order follows completion, not input order. The returned flow
// is single-pass.
func Stream(f *flow.Flow, fn func(context.Context, any) (any, error), opts ...Option) *flow.Flow {
	o := buildOptions(opts)
	return flow.Func(func(ctx context.Context) flow.Iterator {
		source := f.Iter(ctx)
		workerCtx, cancel := context.WithCancel(ctx)
		in := make(chan any, o.Buffer)
		out := make(chan result, o.Buffer)

		var wg sync.WaitGroup

		// Producer: pull from the upstream flow into the input channel.
		go func() {
			defer close(in)
			for {
				val, ok, err := source.Next(workerCtx)
				if err != nil {
					select {
					case out <- result{err: err}:
					case <-workerCtx.Done():
					}
					return
				}
				if !ok {
					return
				}
				select {
				case in <- val:
				case <-workerCtx.Done():
					return
				}
			}
		}()

		// Workers: process input and write to output.
		for i := 0; i < o.Workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for val := range in {
					v, err := fn(workerCtx, val)
					if err != nil {
						select {
						case out <- result{err: err}:
						case <-workerCtx.Done():
						}
						cancel()
						return
					}
					select {
					case out <- result{val: v, ok: true}:
					case <-workerCtx.Done():
						return
					}
				}
			}()
		}

		go func() {
			wg.Wait()
			close(out)
		}()

		return &channelIter{
			ch: out,
			closer: func() error {
				cancel()
				return source.Close()
			},
		}
	})
}

// channelIter reads results from a channel until it is closed.
type channelIter struct {
	ch     <-chan result
	closer func() error
}

func (it *channelIter) Next(ctx context.Context) (any, bool, error) {
	select {
	case r, open := <-it.ch:
		if !open {
			return nil, false, nil
		}
		if r.err != nil {
			return nil, false, r.err
		}
		return r.val, true, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

func (it *channelIter) Close() error {
	if it.closer != nil {
		return it.closer()
	}
	return nil
}
