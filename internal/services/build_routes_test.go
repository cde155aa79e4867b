package services

import (
	"context"
	"errors"
	"testing"

	"roster-routing-service/internal/adapters/sat"
	"roster-routing-service/internal/domain"
)

func pickupInstance() *domain.RoutingInstance {
	return &domain.RoutingInstance{
		Depot: 0,
		DistanceMeters: [][]int{
			{0, 3, 4},
			{3, 0, 2},
			{4, 2, 0},
		},
		DurationSeconds: [][]int{
			{0, 3, 4},
			{3, 0, 2},
			{4, 2, 0},
		},
		Demands: []int{0, 1, -1},
		Windows: []domain.TimeWindow{
			{Earliest: 0, Latest: 30},
			{Earliest: 0, Latest: 30},
			{Earliest: 0, Latest: 30},
		},
		Vehicles: []domain.Vehicle{{Capacity: 1, MaxEndSeconds: 30}},
		Pickups:  []domain.PickupDelivery{{Pickup: 1, Delivery: 2}},
	}
}

func TestBuildRoutesPickupBeforeDelivery(t *testing.T) {
	in := pickupInstance()
	out, err := BuildRoutes(context.Background(), sat.Engine{}, in, testOpts)
	if err != nil {
		t.Fatalf("BuildRoutes: %v", err)
	}
	if !out.Optimal {
		t.Fatal("tiny instance not solved to optimality")
	}
	if len(out.Plans) != 1 {
		t.Fatalf("got %d plans, want 1", len(out.Plans))
	}

	plan := out.Plans[0]
	if len(plan.Stops) != 2 {
		t.Fatalf("route has %d stops, want 2", len(plan.Stops))
	}
	// The capacity of 1 forces the pickup first; precedence would force it
	// anyway.
	if plan.Stops[0].Node != 1 || plan.Stops[1].Node != 2 {
		t.Fatalf("stop order = %d,%d, want pickup 1 before delivery 2",
			plan.Stops[0].Node, plan.Stops[1].Node)
	}
	if plan.Stops[0].Load != 1 {
		t.Fatalf("load after pickup = %d, want 1", plan.Stops[0].Load)
	}

	// 0 -> 1 -> 2 -> 0 drives 3 + 2 + 4 meters and the end cost makes it the
	// whole objective.
	if plan.TotalDistanceMeters != 9 {
		t.Fatalf("total distance = %d, want 9", plan.TotalDistanceMeters)
	}
	if out.Objective != 9 {
		t.Fatalf("objective = %d, want 9", out.Objective)
	}
	if plan.Stops[0].DistanceMeters != 3 || plan.Stops[1].DistanceMeters != 5 {
		t.Fatalf("cumulative distances = %d,%d, want 3,5",
			plan.Stops[0].DistanceMeters, plan.Stops[1].DistanceMeters)
	}

	// Travel times respect the matrix even when departures float.
	if gap := plan.Stops[1].ArriveSeconds - plan.Stops[0].ArriveSeconds; gap < 2 {
		t.Fatalf("arrival gap = %d, want at least the 2s transit", gap)
	}
}

func TestBuildRoutesSplitsByCapacity(t *testing.T) {
	// Two customers of demand 1 and unit-capacity vehicles: each vehicle
	// takes one customer.
	in := &domain.RoutingInstance{
		Depot: 0,
		DistanceMeters: [][]int{
			{0, 3, 4},
			{3, 0, 2},
			{4, 2, 0},
		},
		DurationSeconds: [][]int{
			{0, 3, 4},
			{3, 0, 2},
			{4, 2, 0},
		},
		Demands: []int{0, 1, 1},
		Windows: []domain.TimeWindow{
			{Earliest: 0, Latest: 30},
			{Earliest: 0, Latest: 30},
			{Earliest: 0, Latest: 30},
		},
		Vehicles: []domain.Vehicle{
			{Capacity: 1, MaxEndSeconds: 30},
			{Capacity: 1, MaxEndSeconds: 30},
		},
	}

	out, err := BuildRoutes(context.Background(), sat.Engine{}, in, testOpts)
	if err != nil {
		t.Fatalf("BuildRoutes: %v", err)
	}

	served := map[int]int{}
	for _, plan := range out.Plans {
		if len(plan.Stops) != 1 {
			t.Fatalf("vehicle %d serves %d stops, want 1", plan.VehicleID, len(plan.Stops))
		}
		served[plan.Stops[0].Node]++
	}
	if served[1] != 1 || served[2] != 1 {
		t.Fatalf("customer visits = %v, want each exactly once", served)
	}
	// Out-and-back to each customer: 2*3 + 2*4.
	if out.Objective != 14 {
		t.Fatalf("objective = %d, want 14", out.Objective)
	}
}

func TestBuildRoutesSpanCostAndExactDistances(t *testing.T) {
	// Unit capacities force one short route (1m out, 1m back) and one long
	// route (10m out, 10m back). The span cost must price their imbalance
	// exactly; an encoding that let the short route's end drift upward would
	// pay no span at all and misreport the driven distance.
	in := &domain.RoutingInstance{
		Depot: 0,
		DistanceMeters: [][]int{
			{0, 1, 10},
			{1, 0, 11},
			{10, 11, 0},
		},
		DurationSeconds: [][]int{
			{0, 1, 10},
			{1, 0, 11},
			{10, 11, 0},
		},
		Demands: []int{0, 1, 1},
		Windows: []domain.TimeWindow{
			{Earliest: 0, Latest: 40},
			{Earliest: 0, Latest: 40},
			{Earliest: 0, Latest: 40},
		},
		Vehicles: []domain.Vehicle{
			{Capacity: 1, MaxEndSeconds: 40},
			{Capacity: 1, MaxEndSeconds: 40},
		},
		SpanCostCoefficient: 5,
	}

	out, err := BuildRoutes(context.Background(), sat.Engine{}, in, testOpts)
	if err != nil {
		t.Fatalf("BuildRoutes: %v", err)
	}
	if !out.Optimal {
		t.Fatal("tiny instance not solved to optimality")
	}

	distances := make(map[int]int)
	for _, plan := range out.Plans {
		if len(plan.Stops) != 1 {
			t.Fatalf("vehicle %d serves %d stops, want 1", plan.VehicleID, len(plan.Stops))
		}
		distances[plan.Stops[0].Node] = plan.TotalDistanceMeters
	}
	if distances[1] != 2 {
		t.Fatalf("short route reports %dm driven, want 2", distances[1])
	}
	if distances[2] != 20 {
		t.Fatalf("long route reports %dm driven, want 20", distances[2])
	}

	// End costs 2 + 20 plus 5 * (20 - 2) of span.
	if out.Objective != 112 {
		t.Fatalf("objective = %d, want 112", out.Objective)
	}
}

func TestBuildRoutesInfeasibleWindow(t *testing.T) {
	in := pickupInstance()
	// Node 1 closes before any vehicle can drive the 3 seconds to reach it.
	in.Windows[1] = domain.TimeWindow{Earliest: 0, Latest: 2}

	_, err := BuildRoutes(context.Background(), sat.Engine{}, in, testOpts)
	if !errors.Is(err, domain.ErrInfeasible) {
		t.Fatalf("err = %v, want ErrInfeasible", err)
	}
}

func TestBuildRoutesRejectsInvalidInstance(t *testing.T) {
	in := pickupInstance()
	in.Demands[0] = 5
	_, err := BuildRoutes(context.Background(), sat.Engine{}, in, testOpts)
	if !errors.Is(err, domain.ErrInvalidModel) {
		t.Fatalf("err = %v, want ErrInvalidModel", err)
	}
}
