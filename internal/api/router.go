package api

import (
	"net/http"

	"roster-routing-service/internal/api/handlers"
	"roster-routing-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(instances ports.InstanceRepository, engine ports.Engine, runs ports.PlanRepository) http.Handler {
	mux := http.NewServeMux()

	scheduleHandler := &handlers.ScheduleHandler{Instances: instances, Engine: engine, Runs: runs}
	routeHandler := &handlers.RouteHandler{Instances: instances, Engine: engine, Runs: runs}
	runHandler := &handlers.RunHandler{Runs: runs}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/schedules/plan", scheduleHandler.Plan)
	mux.HandleFunc("/routes/plan", routeHandler.Plan)
	mux.HandleFunc("/plans", runHandler.List)

	return requestIDMiddleware(loggingMiddleware(mux))
}
