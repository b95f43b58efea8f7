package stopwatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kbukum/flo/errors"
	"github.com/kbukum/flo/logger"
	"github.com/kbukum/flo/observability"
)

// StopWatch measures elapsed time between Start and Stop, with optional
// named laps in between. Not safe for concurrent use.
type StopWatch struct {
	label   string
	started time.Time
	stopped time.Time
	laps    []*StopWatch
	log     *logger.Logger
}

// New creates a stopped StopWatch with the given label.
func New(label string) *StopWatch {
	if label == "" {
		label = "stopwatch"
	}
	return &StopWatch{label: label, log: logger.Get("stopwatch")}
}

// Start creates a StopWatch and starts it immediately.
func Start(label string) *StopWatch {
	return New(label).StartAt(time.Now())
}

// StartAt starts the watch at the given instant and returns the receiver.
func (s *StopWatch) StartAt(t time.Time) *StopWatch {
	s.started = t
	return s
}

// Stop freezes the watch, logs the result, and returns the total duration.
func (s *StopWatch) Stop() (time.Duration, error) {
	if s.started.IsZero() {
		return 0, errors.New(errors.ErrCodeInvalidInput, "stop called before start")
	}
	s.stopped = time.Now()
	s.Log()
	return s.Duration(), nil
}

// Duration returns the elapsed time. On a running watch it measures up to
// now; on a stopped watch it is fixed.
func (s *StopWatch) Duration() time.Duration {
	if s.started.IsZero() {
		return 0
	}
	if s.stopped.IsZero() {
		return time.Since(s.started)
	}
	return s.stopped.Sub(s.started)
}

// Lap records a named interval from the previous lap's end (or the watch
// start) until now.
func (s *StopWatch) Lap(label string) *StopWatch {
	lap := New(label)
	if n := len(s.laps); n > 0 {
		lap.started = s.laps[n-1].stopped
	} else {
		lap.started = s.started
	}
	lap.stopped = time.Now()
	s.laps = append(s.laps, lap)
	return lap
}

// Laps returns the recorded laps in order.
func (s *StopWatch) Laps() []*StopWatch {
	out := make([]*StopWatch, len(s.laps))
	copy(out, s.laps)
	return out
}

// Label returns the watch label.
func (s *StopWatch) Label() string { return s.label }

// String renders the watch and its laps as an indented report.
func (s *StopWatch) String() string {
	var b strings.Builder
	s.render(&b, "")
	return strings.TrimRight(b.String(), "\n")
}

func (s *StopWatch) render(b *strings.Builder, prefix string) {
	switch {
	case s.started.IsZero():
		fmt.Fprintf(b, "%s%s: NOT STARTED\n", prefix, s.label)
	case s.stopped.IsZero():
		fmt.Fprintf(b, "%s%s: %s RUNNING\n", prefix, s.label, s.Duration())
	default:
		fmt.Fprintf(b, "%s%s: %s\n", prefix, s.label, s.Duration())
	}
	for _, lap := range s.laps {
		lap.render(b, prefix+"|-")
	}
}

// Log writes the watch and its laps to the structured logger.
func (s *StopWatch) Log() {
	log := s.log
	if log == nil {
		log = logger.Get("stopwatch")
	}
	log.Info(s.label, logger.DurationFields(s.label, s.Duration()))
	for _, lap := range s.laps {
		log.Info(s.label, logger.Fields(
			logger.FieldLap, lap.label,
			logger.FieldDuration, lap.Duration().Milliseconds(),
		))
	}
}

// Timeit runs fn inside a span and a started watch, stopping and logging
// when fn returns. The measured duration is attached to the span.
func Timeit[T any](ctx context.Context, label string, fn func(context.Context) (T, error)) (T, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanStopwatch)
	defer span.End()

	sw := Start(label)
	out, err := fn(ctx)
	sw.stopped = time.Now()
	sw.Log()

	observability.SetSpanAttribute(ctx, observability.AttrDurationMs, sw.Duration().Milliseconds())
	observability.SetSpanAttribute(ctx, "label", label)
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
	return out, err
}
