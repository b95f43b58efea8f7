package stopwatch

import (
	"context"
	"time"

	"github.com/kbukum/flo/errors"
	"github.com/kbukum/flo/flow"
	"github.com/kbukum/flo/observability"
)

// Instrument drives f into c as a traced, metered run. A span wraps the
// terminal call, the collect counters and duration histogram are recorded
// on the global meter, and the element count is observed through a tap
// stage. The measured duration is also logged the way Timeit logs.
func Instrument(ctx context.Context, f *flow.Flow, c flow.Collector) (any, error) {
	rc := observability.NewRunContext(f.String(), "collect", observability.DefaultMetrics())
	ctx = observability.WithRunContext(ctx, rc)
	ctx, span := rc.StartSpanForRun(ctx, observability.SpanCollect)

	var elements int64
	counted := f.Tap(func(any) error {
		elements++
		return nil
	})

	sw := Start(f.String())
	out, err := counted.Collect(ctx, c)
	sw.stopped = time.Now()
	sw.Log()

	status := "ok"
	if err != nil {
		status = "error"
		if rc.Metrics != nil {
			rc.Metrics.RecordError(ctx, string(errors.CodeOf(err)), "collect")
		}
	}
	rc.EndRun(ctx, span, status, elements, err)
	return out, err
}
