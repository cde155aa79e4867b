package domain

import "testing"

func validRoutingInstance() *RoutingInstance {
	return &RoutingInstance{
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
		Windows: []TimeWindow{
			{Earliest: 0, Latest: 30},
			{Earliest: 0, Latest: 30},
			{Earliest: 0, Latest: 30},
		},
		Vehicles: []Vehicle{{Capacity: 1, MaxEndSeconds: 30}},
		Pickups:  []PickupDelivery{{Pickup: 1, Delivery: 2}},
	}
}

func TestRoutingInstanceValidate(t *testing.T) {
	if err := validRoutingInstance().Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	cases := []struct {
		name   string
		mutate func(*RoutingInstance)
	}{
		{"depot out of range", func(in *RoutingInstance) { in.Depot = 7 }},
		{"ragged matrix", func(in *RoutingInstance) { in.DistanceMeters[1] = []int{3, 0} }},
		{"negative distance", func(in *RoutingInstance) { in.DistanceMeters[0][1] = -1 }},
		{"depot demand nonzero", func(in *RoutingInstance) { in.Demands[0] = 2 }},
		{"inverted window", func(in *RoutingInstance) { in.Windows[1] = TimeWindow{Earliest: 9, Latest: 3} }},
		{"no vehicles", func(in *RoutingInstance) { in.Vehicles = nil }},
		{"zero horizon vehicle", func(in *RoutingInstance) { in.Vehicles[0].MaxEndSeconds = 0 }},
		{"pickup at depot", func(in *RoutingInstance) { in.Pickups[0].Pickup = 0 }},
		{"pickup equals delivery", func(in *RoutingInstance) { in.Pickups[0].Delivery = 1 }},
		{"negative span coefficient", func(in *RoutingInstance) { in.SpanCostCoefficient = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRoutingInstance()
			tc.mutate(in)
			if err := in.Validate(); err == nil {
				t.Fatalf("Validate() = nil, want error")
			}
		})
	}
}

func TestScheduleInstanceValidate(t *testing.T) {
	valid := func() *ScheduleInstance {
		return &ScheduleInstance{
			Employees:   2,
			Shifts:      2,
			Days:        2,
			MinCoverage: [][]int{{0, 1}, {0, 1}},
		}
	}
	if err := valid().Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	cases := []struct {
		name   string
		mutate func(*ScheduleInstance)
	}{
		{"no working shift", func(in *ScheduleInstance) { in.Shifts = 1 }},
		{"coverage row count", func(in *ScheduleInstance) { in.MinCoverage = in.MinCoverage[:1] }},
		{"coverage above headcount", func(in *ScheduleInstance) { in.MinCoverage[0][1] = 3 }},
		{"fixed cell out of range", func(in *ScheduleInstance) {
			in.Fixed = []FixedAssignment{{Employee: 5, Shift: 1, Day: 0}}
		}},
		{"request day out of range", func(in *ScheduleInstance) {
			in.Requests = []ShiftRequest{{Employee: 0, Shift: 1, Day: 9}}
		}},
		{"negative transition penalty", func(in *ScheduleInstance) {
			in.Transitions = []TransitionPolicy{{From: 1, To: 1, Penalty: -2}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid()
			tc.mutate(in)
			if err := in.Validate(); err == nil {
				t.Fatalf("Validate() = nil, want error")
			}
		})
	}
}
