package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vietddude/healer/internal/healing/engine"
)

func newTestServer(eng *engine.Engine) *Server {
	return NewServer(NewMonitor(eng), eng, 0)
}

func serve(s *Server, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHandleHealth_Healthy(t *testing.T) {
	strat := &scriptedStrategy{name: "alpha"}
	srv := newTestServer(newTestEngine(strat))

	rec := serve(srv, http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON body: %v", err)
	}
	if body["status"] != string(StatusHealthy) {
		t.Errorf("Expected healthy status, got %q", body["status"])
	}
}

func TestHandleHealth_CriticalReturns503(t *testing.T) {
	strat := &scriptedStrategy{name: "alpha"}
	eng := newTestEngine(strat)
	for i := 0; i < 10; i++ {
		heal(eng, strat, false, i)
	}
	srv := newTestServer(eng)

	rec := serve(srv, http.MethodGet, "/health")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 when critical, got %d", rec.Code)
	}
}

func TestHandleDetailed_IncludesStrategyBreakdown(t *testing.T) {
	strat := &scriptedStrategy{name: "alpha"}
	eng := newTestEngine(strat)
	heal(eng, strat, true, 0)
	srv := newTestServer(eng)

	rec := serve(srv, http.MethodGet, "/health/detailed")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var report Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("Invalid JSON body: %v", err)
	}
	if report.TotalAttempts != 1 {
		t.Errorf("Expected 1 attempt in report, got %d", report.TotalAttempts)
	}
	if _, ok := report.Strategies["alpha"]; !ok {
		t.Error("Expected alpha in strategy breakdown")
	}
}

func TestHandleStats(t *testing.T) {
	strat := &scriptedStrategy{name: "alpha"}
	eng := newTestEngine(strat)
	heal(eng, strat, true, 0)
	heal(eng, strat, false, 1)
	srv := newTestServer(eng)

	rec := serve(srv, http.MethodGet, "/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var stats engine.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Invalid JSON body: %v", err)
	}
	if stats.TotalAttempts != 2 || stats.SuccessfulAttempts != 1 {
		t.Errorf("Unexpected stats payload: %+v", stats)
	}
}

func TestHandleStatsReset(t *testing.T) {
	strat := &scriptedStrategy{name: "alpha"}
	eng := newTestEngine(strat)
	heal(eng, strat, true, 0)
	srv := newTestServer(eng)

	if rec := serve(srv, http.MethodGet, "/stats/reset"); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 for GET, got %d", rec.Code)
	}
	if rec := serve(srv, http.MethodPost, "/stats/reset"); rec.Code != http.StatusNoContent {
		t.Errorf("Expected 204 for POST, got %d", rec.Code)
	}
	if stats := eng.Stats(); stats.TotalAttempts != 0 {
		t.Errorf("Expected stats cleared after reset, got %+v", stats)
	}
}

func TestHandleHistory(t *testing.T) {
	strat := &scriptedStrategy{name: "alpha"}
	eng := newTestEngine(strat)
	heal(eng, strat, true, 0)
	srv := newTestServer(eng)

	if rec := serve(srv, http.MethodGet, "/history"); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without test parameter, got %d", rec.Code)
	}

	rec := serve(srv, http.MethodGet, "/history?test=t0")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var records []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("Invalid JSON body: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected 1 history record, got %d", len(records))
	}
}

func TestHandleMetrics(t *testing.T) {
	strat := &scriptedStrategy{name: "alpha"}
	srv := newTestServer(newTestEngine(strat))

	if rec := serve(srv, http.MethodGet, "/metrics"); rec.Code != http.StatusOK {
		t.Errorf("Expected 200 from metrics endpoint, got %d", rec.Code)
	}
}
