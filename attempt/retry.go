package attempt

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// RetryConfig configures Retry behavior.
type RetryConfig struct {
	// Attempts is the maximum number of calls, the first included.
	Attempts int
	// InitialBackoff is the delay before the second call.
	InitialBackoff time.Duration
	// MaxBackoff caps the delay between calls.
	MaxBackoff time.Duration
	// BackoffFactor is the exponential growth multiplier.
	BackoffFactor float64
	// Jitter adds randomness to each delay (0.0 to 1.0).
	Jitter float64
	// RetryIf decides whether an error is worth another call.
	RetryIf func(error) bool
	// OnRetry is called before each retry.
	OnRetry func(attempt int, err error, backoff time.Duration)
}

func (cfg *RetryConfig) applyDefaults() {
	if cfg.Attempts <= 0 {
		cfg.Attempts = 3
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 100 * time.Millisecond
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 10 * time.Second
	}
	if cfg.BackoffFactor <= 0 {
		cfg.BackoffFactor = 2.0
	}
	if cfg.RetryIf == nil {
		cfg.RetryIf = DefaultRetryIf
	}
}

// DefaultRetryIf retries every error except context cancellation.
func DefaultRetryIf(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Retry calls fn until it succeeds, cfg.Attempts is exhausted, or the
// context ends, backing off exponentially between calls. Panics inside fn
// are captured like Of does, and count as retryable failures.
func Retry[T any](ctx context.Context, cfg RetryConfig, fn func() (T, error)) Attempt[T] {
	cfg.applyDefaults()

	var last Attempt[T]
	for attempt := 1; attempt <= cfg.Attempts; attempt++ {
		select {
		case <-ctx.Done():
			return Failure[T](ctx.Err())
		default:
		}

		last = Of(fn)
		if last.Succeeded() {
			return last
		}
		if !cfg.RetryIf(last.Err()) {
			return last
		}
		if attempt == cfg.Attempts {
			break
		}

		backoff := retryBackoff(attempt, cfg)
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, last.Err(), backoff)
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Failure[T](ctx.Err())
		case <-timer.C:
		}
	}
	return last
}

func retryBackoff(attempt int, cfg RetryConfig) time.Duration {
	d := float64(cfg.InitialBackoff) * math.Pow(cfg.BackoffFactor, float64(attempt-1))

	if cfg.Jitter > 0 {
		jitterRange := d * cfg.Jitter
		d += (rand.Float64()*2 - 1) * jitterRange
	}
	if d > float64(cfg.MaxBackoff) {
		d = float64(cfg.MaxBackoff)
	}
	if d < 0 {
		d = float64(cfg.InitialBackoff)
	}
	return time.Duration(d)
}
