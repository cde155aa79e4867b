package handlers

import (
	"log"
	"net/http"

	"roster-routing-service/internal/api/dto"
	"roster-routing-service/internal/ports"
)

// RunHandler lists past solve runs.
type RunHandler struct {
	Runs ports.PlanRepository
}

func (h *RunHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	runs, err := h.Runs.ListRuns(r.Context())
	if err != nil {
		log.Printf("list runs failed: err=%v", err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	res := make([]dto.RunResponse, 0, len(runs))
	for _, run := range runs {
		res = append(res, dto.RunResponse{
			RunID:     run.RunID,
			Kind:      run.Kind,
			Instance:  run.Instance,
			Status:    run.Status,
			Objective: run.Objective,
			CreatedAt: run.CreatedAt,
		})
	}
	writeJSON(w, r, http.StatusOK, res)
}
