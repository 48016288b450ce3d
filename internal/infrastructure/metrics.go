package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics holds the application-specific instruments: HTTP traffic
// plus the analytics pipeline counters.
type BusinessMetrics struct {
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	BatchesAnalyzedTotal  metric.Int64Counter
	AnalysisDuration      metric.Float64Histogram
	SessionsParsedTotal   metric.Int64Counter
	ExportsGeneratedTotal metric.Int64Counter
	PredictionsTotal      metric.Int64Counter
}

// CreateBusinessMetrics creates application-specific metrics
func CreateBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	httpRequestsTotal, err := meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	httpRequestDuration, err := meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	httpActiveRequests, err := meter.Int64UpDownCounter(
		"http_active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	batchesAnalyzedTotal, err := meter.Int64Counter(
		"batches_analyzed_total",
		metric.WithDescription("Total number of spreadsheet batches analyzed"),
	)
	if err != nil {
		return nil, err
	}

	analysisDuration, err := meter.Float64Histogram(
		"batch_analysis_duration_seconds",
		metric.WithDescription("End-to-end batch analysis duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	sessionsParsedTotal, err := meter.Int64Counter(
		"sessions_parsed_total",
		metric.WithDescription("Total number of live session rows parsed"),
	)
	if err != nil {
		return nil, err
	}

	exportsGeneratedTotal, err := meter.Int64Counter(
		"exports_generated_total",
		metric.WithDescription("Total number of CSV and Excel exports generated"),
	)
	if err != nil {
		return nil, err
	}

	predictionsTotal, err := meter.Int64Counter(
		"predictions_total",
		metric.WithDescription("Total number of revenue predictions served"),
	)
	if err != nil {
		return nil, err
	}

	return &BusinessMetrics{
		HTTPRequestsTotal:     httpRequestsTotal,
		HTTPRequestDuration:   httpRequestDuration,
		HTTPActiveRequests:    httpActiveRequests,
		BatchesAnalyzedTotal:  batchesAnalyzedTotal,
		AnalysisDuration:      analysisDuration,
		SessionsParsedTotal:   sessionsParsedTotal,
		ExportsGeneratedTotal: exportsGeneratedTotal,
		PredictionsTotal:      predictionsTotal,
	}, nil
}

// RecordHTTPRequest records a completed HTTP request
func (m *BusinessMetrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	)
	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
	m.HTTPRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordBatchAnalyzed records a completed batch analysis
func (m *BusinessMetrics) RecordBatchAnalyzed(ctx context.Context, sessions int, duration time.Duration) {
	m.BatchesAnalyzedTotal.Add(ctx, 1)
	m.SessionsParsedTotal.Add(ctx, int64(sessions))
	m.AnalysisDuration.Record(ctx, duration.Seconds())
}

// RecordExport records a generated export
func (m *BusinessMetrics) RecordExport(ctx context.Context, format string) {
	m.ExportsGeneratedTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("format", format)))
}
