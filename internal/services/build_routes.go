package services

import (
	"context"
	"fmt"

	"roster-routing-service/internal/domain"
	"roster-routing-service/internal/encoding"
	"roster-routing-service/internal/ports"
)

// BuildRoutes compiles a routing instance into a constraint model, solves it
// under the given budget, and walks the arcs back into per-vehicle plans.
//
// Three dimensions ride on the route graph: distance (meters, reset at route
// start, carries the arc cost and the span cost), time (seconds, floating
// start so vehicles may leave late to meet windows), and load (units,
// bounded by each vehicle's capacity).
func BuildRoutes(
	ctx context.Context,
	engine ports.Engine,
	in *domain.RoutingInstance,
	opts ports.SolveOptions,
) (*domain.RoutingSolution, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("build routes: %w: %w", domain.ErrInvalidModel, err)
	}

	m := engine.NewModel()
	obj := &encoding.Objective{}
	n := in.Nodes()

	graph, err := encoding.NewRouteGraph(m, n, len(in.Vehicles), in.Depot)
	if err != nil {
		return nil, fmt.Errorf("build routes: %w: %w", domain.ErrInvalidModel, err)
	}

	distance, err := graph.AddDimension(
		"distance",
		func(from, to int) int { return in.DistanceMeters[from][to] },
		[]int{distanceHorizon(in.DistanceMeters)},
		true, false,
	)
	if err != nil {
		return nil, fmt.Errorf("build routes: %w: %w", domain.ErrInvalidModel, err)
	}

	timeCaps := make([]int, len(in.Vehicles))
	for v, veh := range in.Vehicles {
		timeCaps[v] = veh.MaxEndSeconds
	}
	travel, err := graph.AddDimension(
		"time",
		func(from, to int) int { return in.DurationSeconds[from][to] },
		timeCaps,
		false, true,
	)
	if err != nil {
		return nil, fmt.Errorf("build routes: %w: %w", domain.ErrInvalidModel, err)
	}

	loadCaps := make([]int, len(in.Vehicles))
	for v, veh := range in.Vehicles {
		loadCaps[v] = veh.Capacity
	}
	load, err := graph.AddDimension(
		"load",
		func(from, to int) int { return in.Demands[to] },
		loadCaps,
		true, false,
	)
	if err != nil {
		return nil, fmt.Errorf("build routes: %w: %w", domain.ErrInvalidModel, err)
	}

	// Arrival windows per customer; the depot window bounds departures.
	for node, w := range in.Windows {
		if err := travel.SetCumulWindow(node, w.Earliest, w.Latest); err != nil {
			return nil, fmt.Errorf("build routes: %w: %w", domain.ErrInvalidModel, err)
		}
	}

	for _, p := range in.Pickups {
		if err := graph.AddPickupDelivery(p.Pickup, p.Delivery); err != nil {
			return nil, fmt.Errorf("build routes: %w: %w", domain.ErrInvalidModel, err)
		}
	}

	distance.SetEndCost(1, obj)
	distance.SetSpanCost(in.SpanCostCoefficient, obj)
	travel.MarkEndpointsForMinimization()

	obj.Apply(m)

	res, err := solveModel(ctx, m, opts)
	if err != nil {
		return nil, fmt.Errorf("build routes: %w", err)
	}
	sol, err := res.Solution()
	if err != nil {
		return nil, fmt.Errorf("build routes: %w", err)
	}

	out := &domain.RoutingSolution{
		Plans:     make([]*domain.RoutePlan, 0, len(in.Vehicles)),
		Objective: sol.Objective(),
		Optimal:   res.Status() == ports.StatusOptimal,
	}
	for v := range in.Vehicles {
		nodes, err := graph.RouteOf(sol, v)
		if err != nil {
			return nil, fmt.Errorf("build routes: %w", err)
		}
		plan := &domain.RoutePlan{VehicleID: v, Stops: make([]domain.RouteStop, 0, len(nodes))}
		for _, node := range nodes {
			plan.Stops = append(plan.Stops, domain.RouteStop{
				Node:           node,
				DistanceMeters: distance.CumulAt(sol, node),
				ArriveSeconds:  travel.CumulAt(sol, node),
				Load:           load.CumulAt(sol, node),
			})
		}
		if len(nodes) > 0 {
			plan.TotalDistanceMeters = distance.EndValue(sol, v)
			plan.TotalDurationSeconds = travel.EndValue(sol, v) - travel.StartValue(sol, v)
		}
		out.Plans = append(out.Plans, plan)
	}
	return out, nil
}

// distanceHorizon bounds any single route's length: the sum over nodes of
// the longest arc leaving each node.
func distanceHorizon(matrix [][]int) int {
	total := 0
	for _, row := range matrix {
		longest := 0
		for _, c := range row {
			if c > longest {
				longest = c
			}
		}
		total += longest
	}
	return total
}
