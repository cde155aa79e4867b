package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"roster-routing-service/internal/adapters/instances"
	"roster-routing-service/internal/api/dto"
	"roster-routing-service/internal/ports"
	"roster-routing-service/internal/services"
)

// RouteHandler compiles and solves vehicle routing instances.
type RouteHandler struct {
	Instances ports.InstanceRepository
	Engine    ports.Engine
	Runs      ports.PlanRepository
}

func (h *RouteHandler) Plan(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSolveRequest(w, r)
	if !ok {
		return
	}

	in, err := h.Instances.LoadRouting(r.Context(), req.Instance)
	if err != nil {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("instance %q not found", req.Instance))
		return
	}

	opts := solveOptions(req)
	out, err := services.BuildRoutes(r.Context(), h.Engine, in, opts)
	if err != nil {
		writeSolveError(w, r, err)
		return
	}

	res := dto.RoutesResponse{
		RunID:     uuid.NewString(),
		Instance:  req.Instance,
		Objective: out.Objective,
		Optimal:   out.Optimal,
		Plans:     make([]dto.RoutePlanResponse, 0, len(out.Plans)),
	}
	for _, plan := range out.Plans {
		p := dto.RoutePlanResponse{
			VehicleID:            plan.VehicleID,
			Stops:                make([]dto.RouteStopResponse, 0, len(plan.Stops)),
			TotalDistanceMeters:  plan.TotalDistanceMeters,
			TotalDurationSeconds: plan.TotalDurationSeconds,
		}
		for _, s := range plan.Stops {
			p.Stops = append(p.Stops, dto.RouteStopResponse{
				Node:           s.Node,
				DistanceMeters: s.DistanceMeters,
				ArriveSeconds:  s.ArriveSeconds,
				Load:           s.Load,
			})
		}
		res.Plans = append(res.Plans, p)
	}
	recordRun(r, h.Runs, res.RunID, instances.KindRouting, req.Instance, out.Objective, out.Optimal, res)
	writeJSON(w, r, http.StatusOK, res)
}
