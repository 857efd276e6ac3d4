package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"hellomart-dashboard/internal/services"
)

var kpiCardsTemplate = template.Must(template.New("kpiCards").Parse(`
<div id="kpi-cards" class="kpi-grid">
{{if .Empty}}<div class="kpi-empty">No rows matched the selected filters. Try widening the date range or clearing a selection.</div>{{else}}
<div class="kpi-card"><div class="kpi-title">Total Revenue</div><div class="kpi-value">{{printf "%.2f" .KPIs.TotalRevenue}}</div></div>
<div class="kpi-card"><div class="kpi-title">Unique Orders</div><div class="kpi-value">{{.KPIs.UniqueOrders}}</div></div>
<div class="kpi-card"><div class="kpi-title">Avg Order Value</div><div class="kpi-value">{{printf "%.2f" .KPIs.AvgOrderValue}}</div></div>
<div class="kpi-card"><div class="kpi-title">Units Sold</div><div class="kpi-value">{{.KPIs.TotalUnits}}</div></div>
{{end}}
</div>`))

type SSEHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewSSEHandlers(analytics *services.Analytics, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

func (h *SSEHandlers) renderKPICards(data services.OverviewData) (string, error) {
	var buf strings.Builder
	err := kpiCardsTemplate.Execute(&buf, data)
	return buf.String(), err
}

// HandleKPIs patches the KPI card grid for the current filter set.
func (h *SSEHandlers) HandleKPIs(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	spec, err := parseFilterSpec(r.URL.Query())
	if err != nil {
		h.logger.Warn("bad filter params on sse request", "error", err)
		return
	}

	view := h.analytics.View(spec)
	data := services.OverviewData{Empty: view.Empty()}
	if !data.Empty {
		data.KPIs = h.analytics.KPIs(spec)
	}

	html, err := h.renderKPICards(data)
	if err != nil {
		h.logger.Error("render kpi cards", "error", err)
		return
	}
	sse.PatchElements(html)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleBreakdowns pushes the chart payloads as datastar signals; the
// charts themselves are drawn client-side.
func (h *SSEHandlers) HandleBreakdowns(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	spec, err := parseFilterSpec(r.URL.Query())
	if err != nil {
		h.logger.Warn("bad filter params on sse request", "error", err)
		return
	}

	data := h.analytics.Overview(spec)
	if data.Empty {
		sse.PatchElements(`<div id="charts-status" class="empty-hint">No data for the selected filters</div>`)
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		return
	}

	jsonData, err := json.Marshal(map[string]any{
		"regionData":   data.RevenueByRegion,
		"categoryData": data.RevenueByCategory,
		"productData":  data.TopProducts,
		"weekdayData":  data.RevenueByWeekday,
	})
	if err != nil {
		h.logger.Error("marshal breakdown signals", "error", err)
		return
	}
	sse.PatchSignals(jsonData)
	sse.PatchElements(`<div id="charts-status">Charts updated</div>`)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleForecast pushes the two-part forecast series as signals.
func (h *SSEHandlers) HandleForecast(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	horizon, err := parseHorizon(r.URL.Query(), 0)
	if err != nil {
		h.logger.Warn("bad horizon on sse request", "error", err)
		return
	}

	result, err := h.analytics.Forecast(horizon)
	if err != nil {
		h.logger.Error("forecast unavailable", "error", err)
		sse.PatchElements(`<div id="forecast-status" class="empty-hint">Forecast unavailable: the dataset has no usable month data</div>`)
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		return
	}

	jsonData, err := json.Marshal(map[string]any{
		"forecastData": result,
	})
	if err != nil {
		h.logger.Error("marshal forecast signals", "error", err)
		return
	}
	sse.PatchSignals(jsonData)
	sse.PatchElements(`<div id="forecast-status">Forecast updated</div>`)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleRefreshAll re-patches the KPI cards and every chart signal in
// one stream, for the dashboard's refresh control.
func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	spec, err := parseFilterSpec(r.URL.Query())
	if err != nil {
		h.logger.Warn("bad filter params on sse request", "error", err)
		return
	}

	data := h.analytics.Overview(spec)
	html, err := h.renderKPICards(data)
	if err != nil {
		h.logger.Error("render kpi cards", "error", err)
		return
	}
	sse.PatchElements(html)

	if !data.Empty {
		allSignals, err := json.Marshal(map[string]any{
			"regionData":   data.RevenueByRegion,
			"categoryData": data.RevenueByCategory,
			"productData":  data.TopProducts,
			"weekdayData":  data.RevenueByWeekday,
		})
		if err != nil {
			h.logger.Error("marshal refresh signals", "error", err)
			return
		}
		sse.PatchSignals(allSignals)
	}

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
