package stopwatch

import (
	"context"
	"fmt"
	"testing"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/kbukum/flo/flow"
)

func TestInstrument_RecordsCollectMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))

	out, err := Instrument(context.Background(), flow.Slice([]int{1, 2, 3}), flow.ToSlice())
	if err != nil {
		t.Fatal(err)
	}
	if got := out.([]any); len(got) != 3 {
		t.Fatalf("collect = %v", got)
	}

	failing := flow.Slice([]int{1}).Map(func(any) (any, error) {
		return nil, fmt.Errorf("stage failure")
	})
	if _, err := Instrument(context.Background(), failing, flow.ToSlice()); err == nil {
		t.Fatal("expected stage failure to surface")
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatal(err)
	}

	names := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			names[m.Name] = true
		}
	}
	for _, want := range []string{
		"flo.collect.total",
		"flo.collect.duration",
		"flo.collect.active",
		"flo.elements.total",
		"flo.error.total",
	} {
		if !names[want] {
			t.Errorf("metric %s not recorded (have %v)", want, names)
		}
	}
}
