package analyzer

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// eventLogger wraps zap.Logger with analysis-specific structured logging.
type eventLogger struct {
	logger *zap.Logger
}

// newEventLogger creates an eventLogger. If logger is nil, uses a no-op
// logger.
func newEventLogger(logger *zap.Logger) *eventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &eventLogger{logger: logger.Named("analyzer")}
}

// AnalysisStarted logs the start of an analysis run.
func (l *eventLogger) AnalysisStarted(ctx context.Context, gateCount, maxWindowSize, minRepetitions int) {
	if l == nil || l.logger == nil {
		return
	}
	fields := []zap.Field{
		zap.Int("gate_count", gateCount),
		zap.Int("max_window_size", maxWindowSize),
		zap.Int("min_repetitions", minRepetitions),
	}
	fields = append(fields, l.traceFields(ctx)...)
	l.logger.Info("analysis started", fields...)
}

// AnalysisCompleted logs a successful analysis run.
func (l *eventLogger) AnalysisCompleted(ctx context.Context, stats Statistics, duration time.Duration) {
	if l == nil || l.logger == nil {
		return
	}
	fields := []zap.Field{
		zap.Int("gate_count", stats.OriginalGateCount),
		zap.Int("item_count", stats.HierarchicalItemCount),
		zap.Int("num_macros", stats.NumMacros),
		zap.Int("macro_instances", stats.TotalMacroInstances),
		zap.Float64("compression_ratio", stats.CompressionRatio),
		zap.Duration("duration", duration),
	}
	fields = append(fields, l.traceFields(ctx)...)
	l.logger.Info("analysis completed", fields...)
}

// AnalysisFailed logs a failed analysis run.
func (l *eventLogger) AnalysisFailed(ctx context.Context, stage string, err error, duration time.Duration) {
	if l == nil || l.logger == nil {
		return
	}
	fields := []zap.Field{
		zap.String("stage", stage),
		zap.Error(err),
		zap.Duration("duration", duration),
	}
	fields = append(fields, l.traceFields(ctx)...)
	l.logger.Error("analysis failed", fields...)
}

// traceFields extracts trace context from the context.
func (l *eventLogger) traceFields(ctx context.Context) []zap.Field {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return nil
	}
	sc := span.SpanContext()
	fields := []zap.Field{
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	}
	if sc.IsSampled() {
		fields = append(fields, zap.Bool("trace_sampled", true))
	}
	return fields
}
