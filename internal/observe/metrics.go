// Package observe provides observability primitives for the likho editor
// core: OpenTelemetry metrics with a Prometheus exporter bridge.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A package-level
// default [Metrics] instance ([DefaultMetrics]) is provided for convenience;
// tests should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all likho metrics.
const meterName = "github.com/likhoapp/likho"

// Metrics holds all OpenTelemetry metric instruments for the editor core.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// TranslitDuration tracks remote transliteration lookup latency.
	TranslitDuration metric.Float64Histogram

	// TranslitRequests counts transliteration attempts. Use with attributes:
	//   attribute.String("script", ...), attribute.String("status", ...)
	// where status is one of "ok", "passthrough", "failed".
	TranslitRequests metric.Int64Counter

	// CommandsClassified counts classified utterances by action kind.
	CommandsClassified metric.Int64Counter

	// SpeechErrors counts recognition failures by error code.
	SpeechErrors metric.Int64Counter

	// ActiveSessions tracks the number of live editor sessions.
	ActiveSessions metric.Int64UpDownCounter
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// per-keystroke lookup latencies.
var latencyBuckets = []float64{
	0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.TranslitDuration, err = m.Float64Histogram("likho.translit.duration",
		metric.WithDescription("Latency of remote transliteration lookups."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.TranslitRequests, err = m.Int64Counter("likho.translit.requests",
		metric.WithDescription("Total transliteration attempts by script and status."),
	); err != nil {
		return nil, err
	}
	if met.CommandsClassified, err = m.Int64Counter("likho.commands.classified",
		metric.WithDescription("Total classified utterances by action kind."),
	); err != nil {
		return nil, err
	}
	if met.SpeechErrors, err = m.Int64Counter("likho.speech.errors",
		metric.WithDescription("Total speech recognition failures by error code."),
	); err != nil {
		return nil, err
	}
	if met.ActiveSessions, err = m.Int64UpDownCounter("likho.active_sessions",
		metric.WithDescription("Number of live editor sessions."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordTranslit records one transliteration attempt with its latency.
func (m *Metrics) RecordTranslit(ctx context.Context, script, status string, seconds float64) {
	attrs := metric.WithAttributes(
		attribute.String("script", script),
		attribute.String("status", status),
	)
	m.TranslitRequests.Add(ctx, 1, attrs)
	m.TranslitDuration.Record(ctx, seconds, attrs)
}

// RecordCommand records one classified utterance.
func (m *Metrics) RecordCommand(ctx context.Context, kind string) {
	m.CommandsClassified.Add(ctx, 1,
		metric.WithAttributes(attribute.String("kind", kind)),
	)
}

// RecordSpeechError records one recognition failure.
func (m *Metrics) RecordSpeechError(ctx context.Context, code string) {
	m.SpeechErrors.Add(ctx, 1,
		metric.WithAttributes(attribute.String("code", code)),
	)
}
