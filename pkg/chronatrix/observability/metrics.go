package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records chronatrix metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordBuild records a context build with its duration and outcome.
	RecordBuild(ctx context.Context, success bool, duration time.Duration)

	// RecordProviderCall records an external provider call (solar,
	// weather, holiday) with its duration and error status.
	RecordProviderCall(ctx context.Context, provider string, duration time.Duration, err error)

	// RecordEvaluation records a condition evaluation. rejected is true
	// when the condition failed to parse.
	RecordEvaluation(ctx context.Context, result, rejected bool)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	builds           metric.Int64Counter
	buildLatency     metric.Float64Histogram
	providerCalls    metric.Int64Counter
	providerLatency  metric.Float64Histogram
	providerFailures metric.Int64Counter
	evaluations      metric.Int64Counter
	rejections       metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("chronatrix")

	builds, err := meter.Int64Counter("chronatrix.build.count",
		metric.WithDescription("Number of context builds"),
	)
	if err != nil {
		return nil, err
	}

	buildLatency, err := meter.Float64Histogram("chronatrix.build.latency_ms",
		metric.WithDescription("Context build latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	providerCalls, err := meter.Int64Counter("chronatrix.provider.calls",
		metric.WithDescription("Number of external provider calls"),
	)
	if err != nil {
		return nil, err
	}

	providerLatency, err := meter.Float64Histogram("chronatrix.provider.latency_ms",
		metric.WithDescription("Provider call latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	providerFailures, err := meter.Int64Counter("chronatrix.provider.failures",
		metric.WithDescription("Number of provider calls that failed or timed out"),
	)
	if err != nil {
		return nil, err
	}

	evaluations, err := meter.Int64Counter("chronatrix.condition.evaluations",
		metric.WithDescription("Number of condition evaluations"),
	)
	if err != nil {
		return nil, err
	}

	rejections, err := meter.Int64Counter("chronatrix.condition.rejections",
		metric.WithDescription("Number of conditions rejected by the parser"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		builds:           builds,
		buildLatency:     buildLatency,
		providerCalls:    providerCalls,
		providerLatency:  providerLatency,
		providerFailures: providerFailures,
		evaluations:      evaluations,
		rejections:       rejections,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordBuild records a context build.
func (m *otelMetrics) RecordBuild(ctx context.Context, success bool, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.Bool("success", success),
	}
	m.builds.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.buildLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordProviderCall records an external provider call.
func (m *otelMetrics) RecordProviderCall(ctx context.Context, provider string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("provider", provider),
	}
	m.providerCalls.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.providerLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.providerFailures.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordEvaluation records a condition evaluation.
func (m *otelMetrics) RecordEvaluation(ctx context.Context, result, rejected bool) {
	m.evaluations.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("result", result),
	))
	if rejected {
		m.rejections.Add(ctx, 1)
	}
}
