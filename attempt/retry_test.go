package attempt

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	a := Retry(context.Background(), RetryConfig{
		Attempts:       5,
		InitialBackoff: time.Millisecond,
	}, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("not yet")
		}
		return "done", nil
	})

	if a.Failed() {
		t.Fatalf("unexpected failure: %v", a.Err())
	}
	if v := a.OrElse(""); v != "done" {
		t.Errorf("got %q", v)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	permanent := errors.New("permanent")
	calls := 0
	a := Retry(context.Background(), RetryConfig{
		Attempts:       3,
		InitialBackoff: time.Millisecond,
	}, func() (int, error) {
		calls++
		return 0, permanent
	})

	if a.Succeeded() {
		t.Fatal("expected failure")
	}
	if !errors.Is(a.Err(), permanent) {
		t.Errorf("Err = %v", a.Err())
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetry_StopsOnNonRetryable(t *testing.T) {
	fatal := errors.New("fatal")
	calls := 0
	a := Retry(context.Background(), RetryConfig{
		Attempts:       5,
		InitialBackoff: time.Millisecond,
		RetryIf:        func(err error) bool { return !errors.Is(err, fatal) },
	}, func() (int, error) {
		calls++
		return 0, fatal
	})

	if a.Succeeded() || calls != 1 {
		t.Errorf("succeeded=%v calls=%d, want one failed call", a.Succeeded(), calls)
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	a := Retry(ctx, RetryConfig{
		Attempts:       10,
		InitialBackoff: time.Hour,
	}, func() (int, error) {
		calls++
		cancel()
		return 0, errors.New("transient")
	})

	if !errors.Is(a.Err(), context.Canceled) {
		t.Errorf("Err = %v, want context.Canceled", a.Err())
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetry_OnRetryObservesBackoff(t *testing.T) {
	var seen []int
	Retry(context.Background(), RetryConfig{
		Attempts:       3,
		InitialBackoff: time.Millisecond,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			if backoff <= 0 {
				t.Errorf("backoff = %v, want > 0", backoff)
			}
			seen = append(seen, attempt)
		},
	}, func() (int, error) {
		return 0, errors.New("transient")
	})

	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("OnRetry attempts = %v, want [1 2]", seen)
	}
}

func TestRetry_RecoversPanics(t *testing.T) {
	calls := 0
	a := Retry(context.Background(), RetryConfig{
		Attempts:       2,
		InitialBackoff: time.Millisecond,
	}, func() (int, error) {
		calls++
		if calls == 1 {
			panic("boom")
		}
		return 7, nil
	})

	if a.Failed() {
		t.Fatalf("unexpected failure: %v", a.Err())
	}
	if v := a.OrElse(0); v != 7 {
		t.Errorf("got %d", v)
	}
}
