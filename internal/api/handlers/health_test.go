package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// stubChecker — ReadinessChecker с фиксированным результатом.
type stubChecker struct {
	status  string
	message string
}

func (s stubChecker) CheckReady() (string, string) {
	return s.status, s.message
}

func TestOverallStatus(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{[]string{"ok", "ok"}, "ok"},
		{[]string{"ok", "degraded"}, "degraded"},
		{[]string{"degraded", "fail"}, "fail"},
		{nil, "ok"},
	}
	for _, tt := range tests {
		if got := overallStatus(tt.in...); got != tt.want {
			t.Errorf("overallStatus(%v) = %q, ожидается %q", tt.in, got, tt.want)
		}
	}
}

func TestHealthLive(t *testing.T) {
	h := NewHealthHandler(nil, nil)
	rec := httptest.NewRecorder()
	h.HealthLive(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200", rec.Code)
	}
	var resp healthLiveResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("ответ не JSON: %v", err)
	}
	if resp.Status != "ok" || resp.Service != serviceName {
		t.Errorf("ответ = %+v", resp)
	}
}

func TestHealthReady(t *testing.T) {
	tests := []struct {
		name       string
		mongo      ReadinessChecker
		deps       ReadinessChecker
		wantCode   int
		wantStatus string
	}{
		{"всё доступно", stubChecker{"ok", ""}, stubChecker{"ok", ""}, http.StatusOK, "ok"},
		{"Image API недоступен", stubChecker{"ok", ""}, stubChecker{"degraded", "image-api недоступен"}, http.StatusOK, "degraded"},
		{"MongoDB недоступна", stubChecker{"fail", "timeout"}, stubChecker{"ok", ""}, http.StatusServiceUnavailable, "fail"},
		{"без topologymetrics", stubChecker{"ok", ""}, nil, http.StatusOK, "ok"},
		{"MongoDB не инициализирована", nil, nil, http.StatusServiceUnavailable, "fail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.mongo, tt.deps)
			rec := httptest.NewRecorder()
			h.HealthReady(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("статус = %d, ожидается %d", rec.Code, tt.wantCode)
			}
			var resp healthReadyResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("ответ не JSON: %v", err)
			}
			if resp.Status != tt.wantStatus {
				t.Errorf("status = %q, ожидается %q", resp.Status, tt.wantStatus)
			}
		})
	}
}

func TestGetMetrics(t *testing.T) {
	h := NewHealthHandler(nil, nil)
	rec := httptest.NewRecorder()
	h.GetMetrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("ответ /metrics без стандартных метрик Go")
	}
}
