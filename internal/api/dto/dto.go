// Package dto defines the JSON request and response shapes of the API.
package dto

import "time"

// SolveRequest triggers a build-and-solve of a named instance.
type SolveRequest struct {
	Instance         string `json:"instance"`
	TimeLimitSeconds int    `json:"time_limit_seconds,omitempty"`
	Workers          int    `json:"workers,omitempty"`
}

type ScheduleResponse struct {
	RunID     string  `json:"run_id"`
	Instance  string  `json:"instance"`
	Objective int     `json:"objective"`
	Optimal   bool    `json:"optimal"`
	Shifts    [][]int `json:"shifts"`
}

type RouteStopResponse struct {
	Node           int `json:"node"`
	DistanceMeters int `json:"distance_meters"`
	ArriveSeconds  int `json:"arrive_seconds"`
	Load           int `json:"load"`
}

type RoutePlanResponse struct {
	VehicleID            int                 `json:"vehicle_id"`
	Stops                []RouteStopResponse `json:"stops"`
	TotalDistanceMeters  int                 `json:"total_distance_meters"`
	TotalDurationSeconds int                 `json:"total_duration_seconds"`
}

type RoutesResponse struct {
	RunID     string              `json:"run_id"`
	Instance  string              `json:"instance"`
	Objective int                 `json:"objective"`
	Optimal   bool                `json:"optimal"`
	Plans     []RoutePlanResponse `json:"plans"`
}

type RunResponse struct {
	RunID     string    `json:"run_id"`
	Kind      string    `json:"kind"`
	Instance  string    `json:"instance"`
	Status    string    `json:"status"`
	Objective int       `json:"objective"`
	CreatedAt time.Time `json:"created_at"`
}
