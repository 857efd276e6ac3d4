package handlers

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newSSEHandlers() *SSEHandlers {
	return NewSSEHandlers(createTestAnalytics(), slog.Default())
}

func TestHandleKPIs_SSE(t *testing.T) {
	h := newSSEHandlers()

	req := httptest.NewRequest(http.MethodGet, "/sse/kpis?regions=West", nil)
	rec := httptest.NewRecorder()
	h.HandleKPIs(rec, req)

	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Errorf("content type = %s, want text/event-stream", ct)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "kpi-cards") {
		t.Error("stream should patch the kpi-cards element")
	}
	if !strings.Contains(body, "250.00") {
		t.Errorf("stream should carry the filtered revenue, got:\n%s", body)
	}
}

func TestHandleKPIs_SSE_EmptyView(t *testing.T) {
	h := newSSEHandlers()

	req := httptest.NewRequest(http.MethodGet, "/sse/kpis?regions=Atlantis", nil)
	rec := httptest.NewRecorder()
	h.HandleKPIs(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "No rows matched") {
		t.Error("empty view should render the widen-filters hint")
	}
}

func TestHandleBreakdowns_SSE(t *testing.T) {
	h := newSSEHandlers()

	req := httptest.NewRequest(http.MethodGet, "/sse/breakdowns", nil)
	rec := httptest.NewRecorder()
	h.HandleBreakdowns(rec, req)

	body := rec.Body.String()
	for _, signal := range []string{"regionData", "categoryData", "productData", "weekdayData"} {
		if !strings.Contains(body, signal) {
			t.Errorf("stream missing signal %s", signal)
		}
	}
}

func TestHandleBreakdowns_SSE_EmptyView(t *testing.T) {
	h := newSSEHandlers()

	req := httptest.NewRequest(http.MethodGet, "/sse/breakdowns?regions=Atlantis", nil)
	rec := httptest.NewRecorder()
	h.HandleBreakdowns(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "No data for the selected filters") {
		t.Error("empty view should patch the status hint, not chart signals")
	}
	if strings.Contains(body, "regionData") {
		t.Error("empty view should not push chart signals")
	}
}

func TestHandleForecast_SSE(t *testing.T) {
	h := newSSEHandlers()

	req := httptest.NewRequest(http.MethodGet, "/sse/forecast?horizon=2", nil)
	rec := httptest.NewRecorder()
	h.HandleForecast(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "forecastData") {
		t.Error("stream missing forecast signal")
	}
	if !strings.Contains(body, "forecast-status") {
		t.Error("stream should patch the forecast status element")
	}
}

func TestHandleRefreshAll_SSE(t *testing.T) {
	h := newSSEHandlers()

	req := httptest.NewRequest(http.MethodGet, "/sse/refresh-all", nil)
	rec := httptest.NewRecorder()
	h.HandleRefreshAll(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "kpi-cards") {
		t.Error("refresh should patch the kpi cards")
	}
	if !strings.Contains(body, "regionData") {
		t.Error("refresh should push the chart signals")
	}
}
