package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"streampulse/internal/analytics"
	"streampulse/internal/dataprocessing"
	"streampulse/internal/errors"
	"streampulse/internal/exporter"
	"streampulse/internal/infrastructure"
	"streampulse/pkg/contracts/domain"
)

// AnalyticsService orchestrates the upload-to-insight flow: parse the
// workbook, run the engine once, cache the batch, and serve filtered reads.
type AnalyticsService struct {
	parser  *dataprocessing.Parser
	engine  *analytics.Engine
	store   *BatchStore
	metrics *infrastructure.BusinessMetrics
	logger  *slog.Logger
}

// NewAnalyticsService creates the service. metrics may be nil in tests and
// CLI contexts.
func NewAnalyticsService(parser *dataprocessing.Parser, engine *analytics.Engine, store *BatchStore, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *AnalyticsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyticsService{
		parser:  parser,
		engine:  engine,
		store:   store,
		metrics: metrics,
		logger:  logger.With(slog.String("component", "analytics_service")),
	}
}

// AnalyzeUpload parses an uploaded xlsx workbook, runs the full analysis
// pipeline, and stores the result as a new batch.
func (s *AnalyticsService) AnalyzeUpload(ctx context.Context, sourceName string, r io.Reader) (*Batch, error) {
	start := time.Now()

	sessions, err := s.parser.ParseWorkbook(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("parse workbook %q: %w", sourceName, err)
	}

	result := s.engine.Analyze(ctx, sessions)
	batch := s.store.Put(ctx, sourceName, result)

	if s.metrics != nil {
		s.metrics.RecordBatchAnalyzed(ctx, len(sessions), time.Since(start))
	}
	s.logger.InfoContext(ctx, "upload analyzed",
		slog.String("batch_id", batch.ID),
		slog.String("source", sourceName),
		slog.Int("sessions", len(sessions)),
		slog.Duration("duration", time.Since(start)))
	return batch, nil
}

// Batch returns the stored batch or ErrBatchNotFound.
func (s *AnalyticsService) Batch(ctx context.Context, id string) (*Batch, error) {
	batch, ok := s.store.Get(id)
	if !ok {
		return nil, errors.ErrBatchNotFound
	}
	return batch, nil
}

// Sessions returns the batch's scored sessions with the filter applied.
func (s *AnalyticsService) Sessions(ctx context.Context, id string, filter analytics.FilterParams) ([]domain.Session, error) {
	batch, err := s.Batch(ctx, id)
	if err != nil {
		return nil, err
	}
	return filter.Apply(batch.Result.Sessions), nil
}

// Creators returns the per-creator aggregates with cluster assignments.
func (s *AnalyticsService) Creators(ctx context.Context, id string) ([]domain.CreatorAggregate, error) {
	batch, err := s.Batch(ctx, id)
	if err != nil {
		return nil, err
	}
	return batch.Result.Aggregates, nil
}

// Insights returns the batch's narrative insights in generation order.
func (s *AnalyticsService) Insights(ctx context.Context, id string) ([]domain.Insight, error) {
	batch, err := s.Batch(ctx, id)
	if err != nil {
		return nil, err
	}
	return batch.Result.Insights, nil
}

// Summary returns the batch KPI summary with its quality warnings.
func (s *AnalyticsService) Summary(ctx context.Context, id string) (domain.BatchSummary, error) {
	batch, err := s.Batch(ctx, id)
	if err != nil {
		return domain.BatchSummary{}, err
	}
	return batch.Result.Summary, nil
}

// Leaderboard ranks the batch's creators by average performance score.
func (s *AnalyticsService) Leaderboard(ctx context.Context, id string) ([]domain.LeaderboardEntry, error) {
	batch, err := s.Batch(ctx, id)
	if err != nil {
		return nil, err
	}
	return analytics.Leaderboard(batch.Result.Sessions), nil
}

// Predict fits the revenue model over the batch, optionally filtered first.
func (s *AnalyticsService) Predict(ctx context.Context, id string, filter analytics.FilterParams) (domain.PredictionResult, error) {
	batch, err := s.Batch(ctx, id)
	if err != nil {
		return domain.PredictionResult{}, err
	}
	sessions := batch.Result.Sessions
	if !filter.IsZero() {
		sessions = filter.Apply(sessions)
	}
	result := s.engine.Predict(ctx, sessions)
	if s.metrics != nil {
		s.metrics.PredictionsTotal.Add(ctx, 1)
	}
	return result, nil
}

// ExportSessionsCSV streams the batch's session table as CSV.
func (s *AnalyticsService) ExportSessionsCSV(ctx context.Context, id string, filter analytics.FilterParams, w io.Writer) error {
	sessions, err := s.Sessions(ctx, id, filter)
	if err != nil {
		return err
	}
	if err := exporter.WriteSessionsCSV(w, sessions, exporter.WriteOptions{BOMPrefix: true}); err != nil {
		return fmt.Errorf("export sessions csv: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RecordExport(ctx, "sessions_csv")
	}
	return nil
}

// ExportReportCSV streams the creator leaderboard as CSV.
func (s *AnalyticsService) ExportReportCSV(ctx context.Context, id string, w io.Writer) error {
	entries, err := s.Leaderboard(ctx, id)
	if err != nil {
		return err
	}
	if err := exporter.WriteReportCSV(w, entries, exporter.WriteOptions{BOMPrefix: true}); err != nil {
		return fmt.Errorf("export report csv: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RecordExport(ctx, "report_csv")
	}
	return nil
}

// ExportReportWorkbook streams the summary and leaderboard as an xlsx file.
func (s *AnalyticsService) ExportReportWorkbook(ctx context.Context, id string, w io.Writer) error {
	batch, err := s.Batch(ctx, id)
	if err != nil {
		return err
	}
	entries := analytics.Leaderboard(batch.Result.Sessions)
	if err := exporter.WriteReportWorkbook(w, batch.Result.Summary, entries); err != nil {
		return fmt.Errorf("export report workbook: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RecordExport(ctx, "report_xlsx")
	}
	return nil
}
