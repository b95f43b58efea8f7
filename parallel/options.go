package parallel

import (
	"runtime"

	"github.com/kbukum/flo/config"
)

// Options configures a parallel run.
type Options struct {
	// Workers is the worker count. Zero or negative means one per CPU.
	Workers int
	// Buffer is the channel capacity between producer and workers. Zero
	// or negative defaults to the worker count.
	Buffer int
}

// Option mutates Options.
type Option func(*Options)

// WithWorkers sets the worker count.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithBuffer sets the producer-to-worker channel capacity.
func WithBuffer(n int) Option {
	return func(o *Options) { o.Buffer = n }
}

// FromSettings derives options from a loaded configuration section.
func FromSettings(cfg config.ParallelConfig) Option {
	return func(o *Options) {
		o.Workers = cfg.Workers
		o.Buffer = cfg.Buffer
	}
}

func buildOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Buffer <= 0 {
		o.Buffer = o.Workers
	}
	return o
}
