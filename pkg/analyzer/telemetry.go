package analyzer

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	// InstrumentationName is the name used for OTEL instrumentation.
	InstrumentationName = "github.com/fyrsmithlabs/circuitfold/pkg/analyzer"
)

// telemetry provides OpenTelemetry metrics for the analyzer.
type telemetry struct {
	// Counters
	analysesTotal metric.Int64Counter
	failuresTotal metric.Int64Counter

	// Histograms
	analysisDuration metric.Float64Histogram
	compressionRatio metric.Float64Histogram
	macrosRetained   metric.Int64Histogram

	// initialized tracks if metrics were successfully initialized
	initialized bool
}

// newTelemetry creates a telemetry instance with the provided meter.
// If meter is nil, uses the global meter provider.
func newTelemetry(meter metric.Meter) (*telemetry, error) {
	if meter == nil {
		meter = otel.Meter(InstrumentationName)
	}

	t := &telemetry{}
	var err error

	t.analysesTotal, err = meter.Int64Counter(
		"analyzer.analyses.total",
		metric.WithDescription("Total number of completed analyses"),
		metric.WithUnit("{analysis}"),
	)
	if err != nil {
		return nil, err
	}

	t.failuresTotal, err = meter.Int64Counter(
		"analyzer.failures.total",
		metric.WithDescription("Total number of failed analyses"),
		metric.WithUnit("{analysis}"),
	)
	if err != nil {
		return nil, err
	}

	t.analysisDuration, err = meter.Float64Histogram(
		"analyzer.analysis.duration.seconds",
		metric.WithDescription("Duration of one analysis call in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30),
	)
	if err != nil {
		return nil, err
	}

	t.compressionRatio, err = meter.Float64Histogram(
		"analyzer.compression.ratio",
		metric.WithDescription("Original gate count over hierarchical item count"),
		metric.WithUnit("1"),
		metric.WithExplicitBucketBoundaries(1, 1.5, 2, 3, 4, 6, 8, 16),
	)
	if err != nil {
		return nil, err
	}

	t.macrosRetained, err = meter.Int64Histogram(
		"analyzer.macros.retained",
		metric.WithDescription("Distinct macros retained per analysis"),
		metric.WithUnit("{macro}"),
		metric.WithExplicitBucketBoundaries(0, 1, 2, 4, 8, 16, 32),
	)
	if err != nil {
		return nil, err
	}

	t.initialized = true
	return t, nil
}

// RecordAnalysis records a completed analysis.
func (t *telemetry) RecordAnalysis(ctx context.Context, stats Statistics, duration time.Duration) {
	if t == nil || !t.initialized {
		return
	}
	t.analysesTotal.Add(ctx, 1)
	t.analysisDuration.Record(ctx, duration.Seconds())
	t.macrosRetained.Record(ctx, int64(stats.NumMacros))
	if stats.CompressionRatio > 0 {
		t.compressionRatio.Record(ctx, stats.CompressionRatio)
	}
}

// RecordFailure records a failed analysis. The stage attribute is bounded
// (validate, match, reconstruct), so cardinality stays small.
func (t *telemetry) RecordFailure(ctx context.Context, stage string, duration time.Duration) {
	if t == nil || !t.initialized {
		return
	}
	attrs := metric.WithAttributes(attribute.String("stage", stage))
	t.failuresTotal.Add(ctx, 1, attrs)
	t.analysisDuration.Record(ctx, duration.Seconds())
}

// tracer returns a tracer for the analyzer package.
func tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}
