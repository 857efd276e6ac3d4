package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"hellomart-dashboard/internal/dataset"
	"hellomart-dashboard/internal/errors"
	"hellomart-dashboard/internal/observability"
	"hellomart-dashboard/internal/services"
)

const cacheControl = "public, max-age=300"

type APIHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

// GET /api/overview returns the full overview page payload for one filter set.
func (h *APIHandlers) HandleOverview(w http.ResponseWriter, r *http.Request) {
	spec, err := parseFilterSpec(r.URL.Query())
	if err != nil {
		errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
		return
	}

	data := h.analytics.Overview(spec)
	w.Header().Set("Cache-Control", cacheControl)
	errors.WriteViewResult(w, data, data.Empty)
}

// GET /api/kpis
func (h *APIHandlers) HandleKPIs(w http.ResponseWriter, r *http.Request) {
	spec, err := parseFilterSpec(r.URL.Query())
	if err != nil {
		errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
		return
	}

	view := h.analytics.View(spec)
	w.Header().Set("Cache-Control", cacheControl)
	errors.WriteViewResult(w, dataset.KPIs(view), view.Empty())
}

// GET /api/revenue/{dimension} returns grouped revenue totals, descending.
func (h *APIHandlers) HandleRevenueBreakdown(w http.ResponseWriter, r *http.Request) {
	dimension := r.PathValue("dimension")
	if dimension == "weekday" {
		dimension = dataset.DimWeekday
	}
	if !dataset.KnownDimension(dimension) {
		errors.WriteError(w, h.logger,
			errors.NotFound("unknown breakdown dimension: "+dimension),
			observability.GetRequestID(r.Context()))
		return
	}

	spec, err := parseFilterSpec(r.URL.Query())
	if err != nil {
		errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
		return
	}

	view := h.analytics.View(spec)
	w.Header().Set("Cache-Control", cacheControl)
	errors.WriteViewResult(w, h.analytics.RevenueBy(dimension, view), view.Empty())
}

// GET /api/top-products?limit=N
func (h *APIHandlers) HandleTopProducts(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	spec, err := parseFilterSpec(r.URL.Query())
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}
	limit, err := parseLimit(r.URL.Query(), 10)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	// The empty marker reflects the view, not the group count: a view can
	// have rows yet produce no groups when every product key is null.
	view := h.analytics.View(spec)
	w.Header().Set("Cache-Control", cacheControl)
	errors.WriteViewResult(w, h.analytics.TopProducts(limit, view), view.Empty())
}

// GET /api/forecast?horizon=N, always over the unfiltered table.
func (h *APIHandlers) HandleForecast(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	horizon, err := parseHorizon(r.URL.Query(), 0)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	result, err := h.analytics.Forecast(horizon)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}
	w.Header().Set("Cache-Control", cacheControl)
	errors.WriteSuccess(w, result)
}

// GET /api/filters lists distinct values for the filter widgets.
func (h *APIHandlers) HandleFilterOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", cacheControl)
	errors.WriteSuccess(w, h.analytics.FilterOptions())
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	})
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.analytics.Stats())
}

// POST /admin/cache/clear drops the table snapshot so the next start
// re-normalizes from the source file.
func (h *APIHandlers) HandleCacheClear(w http.ResponseWriter, r *http.Request) {
	if err := h.analytics.ClearCache(); err != nil {
		errors.WriteError(w, h.logger,
			errors.InternalWrap(err, "failed to clear snapshot cache"),
			observability.GetRequestID(r.Context()))
		return
	}
	errors.WriteSuccess(w, map[string]string{"status": "cleared"})
}
