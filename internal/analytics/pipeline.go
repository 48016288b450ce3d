package analytics

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"streampulse/pkg/contracts/domain"
)

// Result is the complete output of one analysis run. It is recomputed from
// scratch whenever the active session set changes; the engine never carries
// state between runs.
type Result struct {
	Sessions   []domain.Session           `json:"sessions"`
	Aggregates []domain.CreatorAggregate  `json:"aggregates"`
	Insights   []domain.Insight           `json:"insights"`
	Summary    domain.BatchSummary        `json:"summary"`
	Outcome    ScoreOutcome               `json:"-"`
}

// Engine runs the forward-only analytics pipeline: derived metrics, scoring,
// clustering, aggregation, insights. One Engine may serve many concurrent
// batches because Analyze works purely on its arguments.
type Engine struct {
	params Params
	logger *slog.Logger
	tracer trace.Tracer
}

// NewEngine creates an engine with the given parameters. A nil logger falls
// back to slog.Default.
func NewEngine(params Params, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		params: params,
		logger: logger,
		tracer: otel.Tracer("streampulse/analytics"),
	}
}

// Params returns the engine's active parameters.
func (e *Engine) Params() Params {
	return e.params
}

// Analyze runs every pipeline stage over a copy of the input sessions and
// returns the scored, clustered result. Degraded stages (no variance, too
// few creators) fall back to neutral outputs; Analyze itself never fails.
func (e *Engine) Analyze(ctx context.Context, sessions []domain.Session) *Result {
	start := time.Now()
	ctx, span := e.tracer.Start(ctx, "analytics.Analyze",
		trace.WithAttributes(attribute.Int("sessions", len(sessions))))
	defer span.End()

	// Work on a copy so the caller's batch stays untouched and reruns on
	// the same input stay idempotent.
	working := make([]domain.Session, len(sessions))
	copy(working, sessions)

	ApplyDerivedMetrics(working)

	outcome := ScoreSessions(working, e.params.ScoringWeights)
	if outcome != ScoreComputed {
		e.logger.WarnContext(ctx, "performance scoring degraded",
			slog.Int("outcome", int(outcome)),
			slog.Int("sessions", len(working)))
	}

	aggregates := ClusterCreators(working, e.params)
	insights := GenerateInsights(working)
	summary := Summarize(working)

	span.SetAttributes(
		attribute.Int("creators", len(aggregates)),
		attribute.Int("insights", len(insights)),
	)
	e.logger.InfoContext(ctx, "analysis completed",
		slog.Int("sessions", len(working)),
		slog.Int("creators", len(aggregates)),
		slog.Int("insights", len(insights)),
		slog.Duration("duration", time.Since(start)))

	return &Result{
		Sessions:   working,
		Aggregates: aggregates,
		Insights:   insights,
		Summary:    summary,
		Outcome:    outcome,
	}
}

// Predict fits the on-demand revenue model over the given (already filtered)
// session set.
func (e *Engine) Predict(ctx context.Context, sessions []domain.Session) domain.PredictionResult {
	_, span := e.tracer.Start(ctx, "analytics.Predict",
		trace.WithAttributes(attribute.Int("sessions", len(sessions))))
	defer span.End()

	result := PredictRevenue(sessions, e.params.MinPredictionRows)
	if result.Insufficient {
		e.logger.InfoContext(ctx, "prediction skipped, insufficient data",
			slog.Int("rows", result.Rows),
			slog.Int("required", e.params.MinPredictionRows))
	}
	return result
}
