package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/flo/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name reported on exported metrics.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds OpenTelemetry metric instruments for pipeline observability.
type Metrics struct {
	collectTotal    metric.Int64Counter
	collectDuration metric.Float64Histogram
	collectActive   metric.Int64UpDownCounter
	elementsTotal   metric.Int64Counter
	errorTotal      metric.Int64Counter
}

var (
	defaultMetricsOnce sync.Once
	defaultMetrics     *Metrics
)

// DefaultMetrics returns the process-wide pipeline instruments, created on
// the global meter at first use. Returns nil when instrument creation
// fails; RunContext treats nil metrics as recording disabled.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		m, err := NewMetrics(Meter(defaultTracerName))
		if err != nil {
			logger.Warn("metric instruments unavailable", logger.ErrorFields("observability", err))
			return
		}
		defaultMetrics = m
	})
	return defaultMetrics
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	collectTotal, err := meter.Int64Counter("flo.collect.total",
		metric.WithDescription("Total number of terminal collect calls"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating flo.collect.total counter: %w", err)
	}

	collectDuration, err := meter.Float64Histogram("flo.collect.duration",
		metric.WithDescription("Duration of terminal collect calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating flo.collect.duration histogram: %w", err)
	}

	collectActive, err := meter.Int64UpDownCounter("flo.collect.active",
		metric.WithDescription("Number of currently running collect calls"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating flo.collect.active gauge: %w", err)
	}

	elementsTotal, err := meter.Int64Counter("flo.elements.total",
		metric.WithDescription("Total number of elements streamed through terminals"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating flo.elements.total counter: %w", err)
	}

	errorTotal, err := meter.Int64Counter("flo.error.total",
		metric.WithDescription("Total errors by code and scope"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating flo.error.total counter: %w", err)
	}

	return &Metrics{
		collectTotal:    collectTotal,
		collectDuration: collectDuration,
		collectActive:   collectActive,
		elementsTotal:   elementsTotal,
		errorTotal:      errorTotal,
	}, nil
}

// RecordCollectStart increments the active collect count.
func (m *Metrics) RecordCollectStart(ctx context.Context) {
	m.collectActive.Add(ctx, 1)
}

// RecordCollect decrements active collects and records the completed call.
func (m *Metrics) RecordCollect(ctx context.Context, pipeline, status string, elements int64, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(AttrPipeline, pipeline),
		attribute.String(AttrStatus, status),
	)
	m.collectActive.Add(ctx, -1)
	m.collectTotal.Add(ctx, 1, attrs)
	m.elementsTotal.Add(ctx, elements, metric.WithAttributes(
		attribute.String(AttrPipeline, pipeline),
	))
	m.collectDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrPipeline, pipeline),
	))
}

// RecordError records an error by code and scope.
func (m *Metrics) RecordError(ctx context.Context, code, scope string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
		attribute.String("scope", scope),
	))
}
