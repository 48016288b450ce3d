package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// HealthService reports liveness plus a few runtime stats for dashboards.
type HealthService struct {
	version   string
	store     *BatchStore
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Version   string         `json:"version"`
	Runtime   map[string]any `json:"runtime,omitempty"`
}

// NewHealthService creates a new health service
func NewHealthService(version string, store *BatchStore, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		store:     store,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// Status returns the current health snapshot. The service has no external
// dependencies, so liveness is always "healthy" once the process is up.
func (s *HealthService) Status(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Runtime: map[string]any{
			"uptime_seconds": time.Since(s.startTime).Seconds(),
			"go_version":     runtime.Version(),
			"goroutines":     runtime.NumGoroutine(),
			"live_batches":   s.store.Len(),
		},
	}
}
