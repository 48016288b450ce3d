package http

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"streampulse/internal/analytics"
	"streampulse/internal/dataprocessing"
	apierrors "streampulse/internal/errors"
	"streampulse/internal/middleware"
	"streampulse/internal/services"
)

// BatchHandler handles the batch lifecycle: upload, analytical reads, exports.
type BatchHandler struct {
	service      *services.AnalyticsService
	store        *services.BatchStore
	validation   *middleware.ValidationMiddleware
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	maxFileBytes int64
}

// NewBatchHandler creates a new batch handler
func NewBatchHandler(service *services.AnalyticsService, store *services.BatchStore, validation *middleware.ValidationMiddleware, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxFileBytes int64) *BatchHandler {
	return &BatchHandler{
		service:      service,
		store:        store,
		validation:   validation,
		logger:       logger.With(slog.String("component", "batch_handler")),
		errorHandler: errorHandler,
		maxFileBytes: maxFileBytes,
	}
}

// Routes returns the batch routes
func (h *BatchHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Upload)

	r.Route("/{batchID}", func(r chi.Router) {
		r.Use(h.BatchCtx)
		r.Get("/", h.GetBatch)
		r.Delete("/", h.DeleteBatch)
		r.Get("/sessions", h.GetSessions)
		r.Get("/creators", h.GetCreators)
		r.Get("/insights", h.GetInsights)
		r.Get("/prediction", h.GetPrediction)
		r.Get("/summary", h.GetSummary)
		r.Get("/export/sessions.csv", h.ExportSessionsCSV)
		r.Get("/export/report.csv", h.ExportReportCSV)
		r.Get("/export/report.xlsx", h.ExportReportWorkbook)
	})

	return r
}

// BatchCtx validates the batch ID parameter
func (h *BatchHandler) BatchCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "batchID")
		if id == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("batch_id", "Batch ID is required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Upload handles POST /api/batches: a multipart xlsx upload becomes an
// analyzed batch.
func (h *BatchHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileBytes)
	if err := r.ParseMultipartForm(h.maxFileBytes); err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "A spreadsheet file upload is required"))
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "Only .xlsx uploads are supported"))
		return
	}

	h.logger.InfoContext(ctx, "batch upload received",
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size))

	batch, err := h.service.AnalyzeUpload(ctx, header.Filename, file)
	if err != nil {
		var schemaErr *dataprocessing.SchemaError
		if stderrors.As(err, &schemaErr) {
			h.errorHandler.HandleError(w, r, apierrors.SchemaInvalidWithColumns(schemaErr.Missing))
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, batchResponse(batch))
}

// GetBatch handles GET /api/batches/{id}
func (h *BatchHandler) GetBatch(w http.ResponseWriter, r *http.Request) {
	batch, err := h.service.Batch(r.Context(), chi.URLParam(r, "batchID"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, batchResponse(batch))
}

// DeleteBatch handles DELETE /api/batches/{id}
func (h *BatchHandler) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "batchID")
	if _, err := h.service.Batch(r.Context(), id); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.store.Delete(id)
	render.NoContent(w, r)
}

// GetSessions handles GET /api/batches/{id}/sessions
func (h *BatchHandler) GetSessions(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	sessions, err := h.service.Sessions(r.Context(), chi.URLParam(r, "batchID"), filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]any{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// GetCreators handles GET /api/batches/{id}/creators
func (h *BatchHandler) GetCreators(w http.ResponseWriter, r *http.Request) {
	creators, err := h.service.Creators(r.Context(), chi.URLParam(r, "batchID"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]any{
		"creators": creators,
		"count":    len(creators),
	})
}

// GetInsights handles GET /api/batches/{id}/insights
func (h *BatchHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.service.Insights(r.Context(), chi.URLParam(r, "batchID"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]any{
		"insights": insights,
		"count":    len(insights),
	})
}

// GetPrediction handles GET /api/batches/{id}/prediction
func (h *BatchHandler) GetPrediction(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	prediction, err := h.service.Predict(r.Context(), chi.URLParam(r, "batchID"), filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, prediction)
}

// GetSummary handles GET /api/batches/{id}/summary
func (h *BatchHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "batchID")

	summary, err := h.service.Summary(ctx, id)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	leaderboard, err := h.service.Leaderboard(ctx, id)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]any{
		"summary":     summary,
		"leaderboard": leaderboard,
	})
}

// ExportSessionsCSV handles GET /api/batches/{id}/export/sessions.csv
func (h *BatchHandler) ExportSessionsCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	id := chi.URLParam(r, "batchID")
	if _, err := h.service.Batch(r.Context(), id); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="sessions.csv"`)
	if err := h.service.ExportSessionsCSV(r.Context(), id, filter, w); err != nil {
		h.logger.ErrorContext(r.Context(), "sessions export failed",
			slog.String("batch_id", id),
			slog.String("error", err.Error()))
	}
}

// ExportReportCSV handles GET /api/batches/{id}/export/report.csv
func (h *BatchHandler) ExportReportCSV(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "batchID")
	if _, err := h.service.Batch(r.Context(), id); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="report.csv"`)
	if err := h.service.ExportReportCSV(r.Context(), id, w); err != nil {
		h.logger.ErrorContext(r.Context(), "report export failed",
			slog.String("batch_id", id),
			slog.String("error", err.Error()))
	}
}

// ExportReportWorkbook handles GET /api/batches/{id}/export/report.xlsx
func (h *BatchHandler) ExportReportWorkbook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "batchID")
	if _, err := h.service.Batch(r.Context(), id); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="report.xlsx"`)
	if err := h.service.ExportReportWorkbook(r.Context(), id, w); err != nil {
		h.logger.ErrorContext(r.Context(), "workbook export failed",
			slog.String("batch_id", id),
			slog.String("error", err.Error()))
	}
}

// parseFilter builds FilterParams from query parameters and validates the
// score bounds.
func (h *BatchHandler) parseFilter(q url.Values) (analytics.FilterParams, error) {
	var filter analytics.FilterParams

	if v := q.Get("creators"); v != "" {
		filter.Creators = splitList(v)
	}
	if v := q.Get("clusters"); v != "" {
		filter.Clusters = splitList(v)
	}

	if v := q.Get("min_score"); v != "" {
		score, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, apierrors.ErrValidation("min_score", "min_score must be a number")
		}
		filter.MinScore = &score
	}
	if v := q.Get("max_score"); v != "" {
		score, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filter, apierrors.ErrValidation("max_score", "max_score must be a number")
		}
		filter.MaxScore = &score
	}

	if v := q.Get("from"); v != "" {
		ts, err := parseTimeParam(v)
		if err != nil {
			return filter, apierrors.ErrValidation("from", "from must be RFC 3339 or YYYY-MM-DD")
		}
		filter.From = &ts
	}
	if v := q.Get("to"); v != "" {
		ts, err := parseTimeParam(v)
		if err != nil {
			return filter, apierrors.ErrValidation("to", "to must be RFC 3339 or YYYY-MM-DD")
		}
		filter.To = &ts
	}

	if err := h.validation.ValidateStruct(filter); err != nil {
		return filter, err
	}
	return filter, nil
}

func parseTimeParam(v string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, v); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", v)
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// batchResponse is the batch metadata payload
func batchResponse(batch *services.Batch) map[string]any {
	return map[string]any{
		"id":          batch.ID,
		"source_name": batch.SourceName,
		"created_at":  batch.CreatedAt,
		"expires_at":  batch.ExpiresAt,
		"sessions":    len(batch.Result.Sessions),
		"creators":    batch.Result.Summary.Creators,
	}
}
