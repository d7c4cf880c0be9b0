package analyzer

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/circuitfold/internal/circuit"
	"github.com/fyrsmithlabs/circuitfold/internal/graphexport"
	"github.com/fyrsmithlabs/circuitfold/internal/hierarchy"
	"github.com/fyrsmithlabs/circuitfold/internal/label"
	"github.com/fyrsmithlabs/circuitfold/internal/pattern"
	"github.com/fyrsmithlabs/circuitfold/internal/reconstruct"
	"github.com/fyrsmithlabs/circuitfold/internal/resolve"
)

// LabelStrategy maps a macro's generic gate list and qubit role count to a
// base label. Implementations must be deterministic and side-effect free;
// Apply-time uniqueness suffixes are handled by the engine.
type LabelStrategy interface {
	Label(gates []MacroGate, numQubits int) string
}

// Service runs the macro-gate detection pipeline. It holds configuration and
// observability hooks only; Analyze is pure per call and safe for concurrent
// use.
type Service struct {
	cfg      Config
	matcher  *pattern.Matcher
	strategy label.Strategy
	events   *eventLogger
	metrics  *telemetry
}

// Option configures a Service.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	meter    metric.Meter
	strategy LabelStrategy
}

// WithLogger supplies the logger for analysis events. Nil means no logging.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMeter supplies the OTEL meter for analysis metrics. Nil means the
// global meter provider.
func WithMeter(meter metric.Meter) Option {
	return func(o *options) { o.meter = meter }
}

// WithLabelStrategy replaces the default rule-table label synthesizer.
func WithLabelStrategy(s LabelStrategy) Option {
	return func(o *options) { o.strategy = s }
}

// New validates cfg and builds a Service.
func New(cfg Config, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	metrics, err := newTelemetry(o.meter)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	var strat label.Strategy = label.NewRuleTable()
	if o.strategy != nil {
		strat = strategyAdapter{o.strategy}
	}

	return &Service{
		cfg:      cfg,
		matcher:  pattern.NewMatcher(cfg.MaxWindowSize, cfg.MinRepetitions, cfg.Workers),
		strategy: strat,
		events:   newEventLogger(o.logger),
		metrics:  metrics,
	}, nil
}

// Analyze runs the full pipeline over ops: pattern matching, greedy overlap
// resolution, label synthesis, hierarchy construction, statistics,
// equivalence-preserving reconstruction, and graph export. The input is never
// mutated. ctx cancellation is honored between stages and inside the
// matcher's parallel passes.
func (s *Service) Analyze(ctx context.Context, ops []Operation) (*Result, error) {
	start := time.Now()

	seq := toSequence(ops)
	if err := seq.Validate(); err != nil {
		s.metrics.RecordFailure(ctx, "validate", time.Since(start))
		return nil, fmt.Errorf("%w: %v", ErrInvalidSequence, err)
	}

	ctx, span := tracer().Start(ctx, "analyzer.Analyze",
		trace.WithAttributes(
			attribute.Int("gate_count", len(seq)),
			attribute.Int("max_window_size", s.cfg.MaxWindowSize),
			attribute.Int("min_repetitions", s.cfg.MinRepetitions),
		))
	defer span.End()

	s.events.AnalysisStarted(ctx, len(seq), s.cfg.MaxWindowSize, s.cfg.MinRepetitions)

	cands, err := s.matcher.Candidates(ctx, seq)
	if err != nil {
		return nil, s.fail(ctx, span, "match", err, start)
	}

	macros := resolve.Resolve(cands, s.cfg.MinRepetitions, len(seq))
	label.Apply(macros, s.strategy)

	items, err := hierarchy.Build(seq, macros)
	if err != nil {
		return nil, s.fail(ctx, span, "hierarchy", err, start)
	}
	stats := hierarchy.ComputeStatistics(seq, items, macros)

	rebuilt, err := reconstruct.Reconstruct(items)
	if err != nil {
		return nil, s.fail(ctx, span, "reconstruct", err, start)
	}

	graph := graphexport.Export(seq, macros)

	duration := time.Since(start)
	span.SetAttributes(
		attribute.Int("num_macros", stats.NumMacros),
		attribute.Float64("compression_ratio", stats.CompressionRatio),
	)
	s.events.AnalysisCompleted(ctx, stats, duration)
	s.metrics.RecordAnalysis(ctx, stats, duration)

	return buildResult(seq, items, macros, stats, rebuilt, graph), nil
}

func (s *Service) fail(ctx context.Context, span trace.Span, stage string, err error, start time.Time) error {
	duration := time.Since(start)
	span.RecordError(err)
	span.SetStatus(codes.Error, stage)
	s.events.AnalysisFailed(ctx, stage, err, duration)
	s.metrics.RecordFailure(ctx, stage, duration)
	return fmt.Errorf("%s: %w", stage, err)
}

// toSequence deep-copies the caller's operations into the internal model.
func toSequence(ops []Operation) circuit.Sequence {
	seq := make(circuit.Sequence, len(ops))
	for i, op := range ops {
		seq[i] = circuit.Operation{
			Position: op.Position,
			Gate:     op.Gate,
			Qubits:   append([]int(nil), op.Qubits...),
			Params:   append([]float64(nil), op.Params...),
		}
	}
	return seq
}

// strategyAdapter bridges the public LabelStrategy to the internal labeler.
type strategyAdapter struct {
	s LabelStrategy
}

func (a strategyAdapter) Label(shape label.Shape) string {
	gates := make([]MacroGate, len(shape.Gates))
	for i, g := range shape.Gates {
		gates[i] = MacroGate{Name: g.Gate, Qubits: append([]int(nil), g.Locals...)}
	}
	return a.s.Label(gates, shape.NumQubits)
}
