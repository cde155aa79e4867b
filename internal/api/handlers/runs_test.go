package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"roster-routing-service/internal/api/dto"
	"roster-routing-service/internal/domain"
)

func TestRunListEndpoint(t *testing.T) {
	runs := &stubRuns{saved: []*domain.SolveRun{{
		RunID:     "abc",
		Kind:      "routing",
		Instance:  "demo-routing",
		Status:    "optimal",
		Objective: 9,
		Plan:      []byte(`{}`),
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}}}
	h := &RunHandler{Runs: runs}

	req := httptest.NewRequest(http.MethodGet, "/plans", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var res []dto.RunResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res) != 1 || res[0].RunID != "abc" || res[0].Objective != 9 {
		t.Fatalf("response = %+v", res)
	}

	req = httptest.NewRequest(http.MethodPost, "/plans", nil)
	rec = httptest.NewRecorder()
	h.List(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST status = %d, want 405", rec.Code)
	}
}
