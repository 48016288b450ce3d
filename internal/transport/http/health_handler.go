package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"streampulse/internal/services"
)

// HealthHandler serves the liveness endpoint
type HealthHandler struct {
	service *services.HealthService
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service *services.HealthService, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger.With(slog.String("component", "health_handler")),
	}
}

// Status handles GET /healthz
func (h *HealthHandler) Status(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Status(r.Context()))
}
