package domain

import "fmt"

// TimeWindow is a closed interval, in seconds from the start of the horizon,
// during which a node may be visited.
type TimeWindow struct {
	Earliest int
	Latest   int
}

// Vehicle describes one vehicle starting and ending at the depot.
type Vehicle struct {
	Capacity int
	// MaxEndSeconds bounds the vehicle's arrival back at the depot.
	MaxEndSeconds int
}

// PickupDelivery links two nodes that must be served by the same vehicle,
// pickup strictly before delivery.
type PickupDelivery struct {
	Pickup   int
	Delivery int
}

// RoutingInstance is the static input of one routing run.
//
// Unit convention: distances are meters, durations and time windows are
// seconds. Matrices are indexed by node, with the depot included.
type RoutingInstance struct {
	Depot           int
	DistanceMeters  [][]int
	DurationSeconds [][]int
	// Demands[node] is the load picked up at the node; the depot entry must
	// be zero. Negative demands model drop-offs for pickup-delivery pairs.
	Demands []int
	// Windows[node] constrains the arrival time at the node. The depot
	// window bounds every vehicle's departure.
	Windows  []TimeWindow
	Vehicles []Vehicle
	Pickups  []PickupDelivery
	// SpanCostCoefficient penalizes the spread between the longest and the
	// shortest route distance. Zero disables the span cost.
	SpanCostCoefficient int
}

// Nodes returns the node count, depot included.
func (in *RoutingInstance) Nodes() int { return len(in.DistanceMeters) }

// Validate rejects malformed instances before any model is built.
func (in *RoutingInstance) Validate() error {
	n := in.Nodes()
	if n < 2 {
		return fmt.Errorf("routing instance: need a depot and at least one customer, got %d nodes", n)
	}
	if in.Depot < 0 || in.Depot >= n {
		return fmt.Errorf("routing instance: depot %d out of range [0,%d)", in.Depot, n)
	}
	if err := checkMatrix("distance_meters", in.DistanceMeters, n); err != nil {
		return fmt.Errorf("routing instance: %w", err)
	}
	if err := checkMatrix("duration_seconds", in.DurationSeconds, n); err != nil {
		return fmt.Errorf("routing instance: %w", err)
	}
	if len(in.Demands) != n {
		return fmt.Errorf("routing instance: demands has %d entries, want %d", len(in.Demands), n)
	}
	if in.Demands[in.Depot] != 0 {
		return fmt.Errorf("routing instance: depot demand must be zero, got %d", in.Demands[in.Depot])
	}
	if len(in.Windows) != n {
		return fmt.Errorf("routing instance: time_windows has %d entries, want %d", len(in.Windows), n)
	}
	for i, w := range in.Windows {
		if w.Earliest < 0 || w.Earliest > w.Latest {
			return fmt.Errorf("routing instance: time window [%d,%d] for node %d is malformed", w.Earliest, w.Latest, i)
		}
	}
	if len(in.Vehicles) == 0 {
		return fmt.Errorf("routing instance: at least one vehicle is required")
	}
	for i, v := range in.Vehicles {
		if v.Capacity < 0 {
			return fmt.Errorf("routing instance: vehicle %d capacity must be non-negative", i)
		}
		if v.MaxEndSeconds <= 0 {
			return fmt.Errorf("routing instance: vehicle %d max_end_seconds must be positive", i)
		}
	}
	for _, p := range in.Pickups {
		if p.Pickup < 0 || p.Pickup >= n || p.Delivery < 0 || p.Delivery >= n {
			return fmt.Errorf("routing instance: pickup pair %d->%d out of range", p.Pickup, p.Delivery)
		}
		if p.Pickup == in.Depot || p.Delivery == in.Depot || p.Pickup == p.Delivery {
			return fmt.Errorf("routing instance: pickup pair %d->%d must link two distinct customers", p.Pickup, p.Delivery)
		}
	}
	if in.SpanCostCoefficient < 0 {
		return fmt.Errorf("routing instance: span_cost_coefficient must be non-negative")
	}
	return nil
}

func checkMatrix(name string, m [][]int, n int) error {
	if len(m) != n {
		return fmt.Errorf("%s has %d rows, want %d", name, len(m), n)
	}
	for i, row := range m {
		if len(row) != n {
			return fmt.Errorf("%s[%d] has %d entries, want %d", name, i, len(row), n)
		}
		for j, c := range row {
			if c < 0 {
				return fmt.Errorf("%s[%d][%d]=%d must be non-negative", name, i, j, c)
			}
		}
	}
	return nil
}

// RouteStop is one visited node with the cumulative quantities on arrival.
type RouteStop struct {
	Node           int
	DistanceMeters int
	ArriveSeconds  int
	Load           int
}

// RoutePlan is the planned route of a single vehicle. Vehicles that stay at
// the depot produce a plan with no stops.
type RoutePlan struct {
	VehicleID            int
	Stops                []RouteStop
	TotalDistanceMeters  int
	TotalDurationSeconds int
}

// RoutingSolution is the read-only result of a routing run.
type RoutingSolution struct {
	Plans     []*RoutePlan
	Objective int
	// Optimal reports whether the solver proved optimality; false means the
	// plans are feasible but the time budget expired first.
	Optimal bool
}
