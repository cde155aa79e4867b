package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"roster-routing-service/internal/adapters/instances"
	"roster-routing-service/internal/api/dto"
	"roster-routing-service/internal/domain"
	"roster-routing-service/internal/ports"
	"roster-routing-service/internal/services"
)

const (
	defaultTimeLimit = 30 * time.Second
	maxTimeLimit     = 300 * time.Second
)

// ScheduleHandler compiles and solves shift scheduling instances.
type ScheduleHandler struct {
	Instances ports.InstanceRepository
	Engine    ports.Engine
	Runs      ports.PlanRepository
}

func (h *ScheduleHandler) Plan(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSolveRequest(w, r)
	if !ok {
		return
	}

	in, err := h.Instances.LoadSchedule(r.Context(), req.Instance)
	if err != nil {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("instance %q not found", req.Instance))
		return
	}

	opts := solveOptions(req)
	out, err := services.BuildSchedule(r.Context(), h.Engine, in, opts)
	if err != nil {
		writeSolveError(w, r, err)
		return
	}

	res := dto.ScheduleResponse{
		RunID:     uuid.NewString(),
		Instance:  req.Instance,
		Objective: out.Objective,
		Optimal:   out.Optimal,
		Shifts:    out.Shifts,
	}
	recordRun(r, h.Runs, res.RunID, instances.KindSchedule, req.Instance, out.Objective, out.Optimal, res)
	writeJSON(w, r, http.StatusOK, res)
}

// decodeSolveRequest enforces a single-object POST body with known fields.
func decodeSolveRequest(w http.ResponseWriter, r *http.Request) (dto.SolveRequest, bool) {
	var req dto.SolveRequest

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return req, false
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return req, false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "request body must contain a single JSON object")
		return req, false
	}
	if req.Instance == "" {
		writeError(w, r, http.StatusBadRequest, "instance is required")
		return req, false
	}
	if req.TimeLimitSeconds < 0 || req.Workers < 0 {
		writeError(w, r, http.StatusBadRequest, "time_limit_seconds and workers must be non-negative")
		return req, false
	}
	return req, true
}

func solveOptions(req dto.SolveRequest) ports.SolveOptions {
	limit := defaultTimeLimit
	if req.TimeLimitSeconds > 0 {
		limit = time.Duration(req.TimeLimitSeconds) * time.Second
	}
	if limit > maxTimeLimit {
		limit = maxTimeLimit
	}
	return ports.SolveOptions{TimeLimit: limit, Workers: req.Workers}
}

// writeSolveError maps the domain's failure taxonomy onto HTTP statuses.
func writeSolveError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidModel):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInfeasible):
		writeError(w, r, http.StatusUnprocessableEntity, "instance has no feasible solution")
	case errors.Is(err, domain.ErrNoSolution):
		writeError(w, r, http.StatusGatewayTimeout, "no solution found within the time limit")
	default:
		log.Printf("solve failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

// recordRun persists the run for later inspection. Persistence failures are
// logged but do not fail the request.
func recordRun(r *http.Request, runs ports.PlanRepository, runID, kind, instance string, objective int, optimal bool, payload any) {
	if runs == nil {
		return
	}
	status := "feasible"
	if optimal {
		status = "optimal"
	}
	plan, err := json.Marshal(payload)
	if err != nil {
		log.Printf("record run: marshal plan: run_id=%s err=%v", runID, err)
		return
	}
	run := &domain.SolveRun{
		RunID:     runID,
		Kind:      kind,
		Instance:  instance,
		Status:    status,
		Objective: objective,
		Plan:      plan,
		CreatedAt: time.Now().UTC(),
	}
	if err := runs.SaveRun(r.Context(), run); err != nil {
		log.Printf("record run: save failed: run_id=%s err=%v", runID, err)
	}
}
