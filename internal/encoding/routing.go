package encoding

import (
	"fmt"

	"roster-routing-service/internal/ports"
)

// TransitFunc maps an arc (from, to) to the scalar cost accumulated by
// traversing it: meters, seconds, or units of load. Transit functions are
// pure; they are registered once per dimension and never re-evaluated after
// model build.
type TransitFunc func(from, to int) int

// RouteGraph owns the arc and visit variables of a multi-vehicle routing
// model over a single depot. Every customer node is visited exactly once by
// exactly one vehicle; each vehicle drives at most one depot-to-depot tour.
//
// The graph always carries a built-in stop-order dimension (transit 1,
// reset at route start). It orders stops for precedence constraints and, by
// forcing the cumulative to strictly increase along every arc, excludes
// subtours disconnected from the depot.
type RouteGraph struct {
	m        ports.ModelBuilder
	nodes    int
	depot    int
	vehicles int

	arcs   [][][]ports.BoolVar // arcs[vehicle][from][to]; nil on the diagonal
	visits [][]ports.BoolVar   // visits[vehicle][node]; nil for the depot
	used   []ports.BoolVar

	order *Dimension
}

// NewRouteGraph allocates arc, visit and vehicle-use variables and posts the
// flow conservation constraints tying them together.
func NewRouteGraph(m ports.ModelBuilder, nodes, vehicles, depot int) (*RouteGraph, error) {
	if nodes < 2 {
		return nil, fmt.Errorf("route graph: need a depot and at least one customer, got %d nodes", nodes)
	}
	if depot < 0 || depot >= nodes {
		return nil, fmt.Errorf("route graph: depot %d out of range [0,%d)", depot, nodes)
	}
	if vehicles < 1 {
		return nil, fmt.Errorf("route graph: need at least one vehicle, got %d", vehicles)
	}

	g := &RouteGraph{
		m:        m,
		nodes:    nodes,
		depot:    depot,
		vehicles: vehicles,
		arcs:     make([][][]ports.BoolVar, vehicles),
		visits:   make([][]ports.BoolVar, vehicles),
		used:     make([]ports.BoolVar, vehicles),
	}

	for v := 0; v < vehicles; v++ {
		g.arcs[v] = make([][]ports.BoolVar, nodes)
		for i := 0; i < nodes; i++ {
			g.arcs[v][i] = make([]ports.BoolVar, nodes)
			for j := 0; j < nodes; j++ {
				if i == j {
					continue
				}
				g.arcs[v][i][j] = m.NewBoolVar(fmt.Sprintf("arc(v=%d,%d->%d)", v, i, j))
			}
		}
		g.visits[v] = make([]ports.BoolVar, nodes)
		for i := 0; i < nodes; i++ {
			if i == depot {
				continue
			}
			g.visits[v][i] = m.NewBoolVar(fmt.Sprintf("visit(v=%d,n=%d)", v, i))
		}
		g.used[v] = m.NewBoolVar(fmt.Sprintf("used(v=%d)", v))
	}

	// Every customer is served by exactly one vehicle.
	for i := 0; i < nodes; i++ {
		if i == depot {
			continue
		}
		col := make([]ports.BoolVar, 0, vehicles)
		for v := 0; v < vehicles; v++ {
			col = append(col, g.visits[v][i])
		}
		m.AddBoolSumRange(col, 1, 1)
	}

	for v := 0; v < vehicles; v++ {
		// A visited customer has exactly one incoming and one outgoing arc
		// for its vehicle; an unvisited one has none.
		for i := 0; i < nodes; i++ {
			if i == depot {
				continue
			}
			out := []ports.BoolTerm{{Lit: g.visits[v][i], Weight: -1}}
			in := []ports.BoolTerm{{Lit: g.visits[v][i], Weight: -1}}
			for j := 0; j < nodes; j++ {
				if j == i {
					continue
				}
				out = append(out, ports.BoolTerm{Lit: g.arcs[v][i][j], Weight: 1})
				in = append(in, ports.BoolTerm{Lit: g.arcs[v][j][i], Weight: 1})
			}
			m.AddBoolLinearRange(out, 0, 0)
			m.AddBoolLinearRange(in, 0, 0)
			m.AddClause(g.visits[v][i].Not(), g.used[v])
		}

		// A used vehicle leaves the depot once and returns once.
		dep := []ports.BoolTerm{{Lit: g.used[v], Weight: -1}}
		ret := []ports.BoolTerm{{Lit: g.used[v], Weight: -1}}
		for j := 0; j < nodes; j++ {
			if j == depot {
				continue
			}
			dep = append(dep, ports.BoolTerm{Lit: g.arcs[v][depot][j], Weight: 1})
			ret = append(ret, ports.BoolTerm{Lit: g.arcs[v][j][depot], Weight: 1})
		}
		m.AddBoolLinearRange(dep, 0, 0)
		m.AddBoolLinearRange(ret, 0, 0)
	}

	order, err := g.AddDimension("order", func(from, to int) int { return 1 }, []int{nodes}, true, false)
	if err != nil {
		return nil, fmt.Errorf("route graph: %w", err)
	}
	g.order = order

	return g, nil
}

// Vehicles returns the vehicle count.
func (g *RouteGraph) Vehicles() int { return g.vehicles }

// Dimension tracks one named cumulative quantity along every route. It owns
// one cumulative variable per customer node plus start and end variables per
// vehicle, chained through the registered transit costs on enforced arcs.
type Dimension struct {
	name   string
	graph  *RouteGraph
	cumuls []ports.IntVar // per node; nil for the depot
	starts []ports.IntVar
	ends   []ports.IntVar
	maxCap int
}

// AddDimension builds a cumulative dimension over the graph.
//
// capacities holds either one global bound or one bound per vehicle; each
// vehicle's end variable and every customer it visits stay within its bound.
// startAtZero pins every route's starting cumulative to zero (distance,
// load); otherwise the start floats within [0, capacity] so the solver can
// delay departures (time with windows).
//
// waits decides how cumulative values chain along taken arcs. A waiting
// dimension (time) only accumulates at least the transit, leaving room to
// idle at a stop; a non-waiting one (distance, load) accumulates exactly the
// transit, so its read-back values cannot drift above what the route really
// incurs.
func (g *RouteGraph) AddDimension(name string, transit TransitFunc, capacities []int, startAtZero, waits bool) (*Dimension, error) {
	if transit == nil {
		return nil, fmt.Errorf("dimension %q: transit function is required", name)
	}
	if len(capacities) != 1 && len(capacities) != g.vehicles {
		return nil, fmt.Errorf("dimension %q: got %d capacities, want 1 or %d", name, len(capacities), g.vehicles)
	}
	capOf := func(v int) int {
		if len(capacities) == 1 {
			return capacities[0]
		}
		return capacities[v]
	}
	maxCap := 0
	for v := 0; v < g.vehicles; v++ {
		c := capOf(v)
		if c < 0 {
			return nil, fmt.Errorf("dimension %q: capacity for vehicle %d must be non-negative", name, v)
		}
		if c > maxCap {
			maxCap = c
		}
	}

	d := &Dimension{
		name:   name,
		graph:  g,
		cumuls: make([]ports.IntVar, g.nodes),
		starts: make([]ports.IntVar, g.vehicles),
		ends:   make([]ports.IntVar, g.vehicles),
		maxCap: maxCap,
	}

	m := g.m
	for i := 0; i < g.nodes; i++ {
		if i == g.depot {
			continue
		}
		d.cumuls[i] = m.NewIntVar(fmt.Sprintf("%s: cumul(n=%d)", name, i), 0, maxCap)
	}
	for v := 0; v < g.vehicles; v++ {
		startHi := capOf(v)
		if startAtZero {
			startHi = 0
		}
		d.starts[v] = m.NewIntVar(fmt.Sprintf("%s: start(v=%d)", name, v), 0, startHi)
		d.ends[v] = m.NewIntVar(fmt.Sprintf("%s: end(v=%d)", name, v), 0, capOf(v))
	}

	// Chain cumulative values along every enforced arc. Non-waiting
	// dimensions chain by equality so no slack can accumulate.
	chain := m.AddLinearEqualsIf
	if waits {
		chain = m.AddLinearAtLeastIf
	}
	for v := 0; v < g.vehicles; v++ {
		for i := 0; i < g.nodes; i++ {
			for j := 0; j < g.nodes; j++ {
				arc := g.arcs[v][i][j]
				if arc == nil {
					continue
				}
				switch {
				case i == g.depot && j != g.depot:
					chain(arc, []ports.Term{
						{Var: d.cumuls[j], Coeff: 1},
						{Var: d.starts[v], Coeff: -1},
					}, transit(i, j))
				case i != g.depot && j == g.depot:
					chain(arc, []ports.Term{
						{Var: d.ends[v], Coeff: 1},
						{Var: d.cumuls[i], Coeff: -1},
					}, transit(i, j))
				case i != g.depot && j != g.depot:
					chain(arc, []ports.Term{
						{Var: d.cumuls[j], Coeff: 1},
						{Var: d.cumuls[i], Coeff: -1},
					}, transit(i, j))
				}
			}
		}

		// An idle vehicle accumulates nothing, so its end cannot drift away
		// from its start and distort span or end costs.
		m.AddLinearEqualsIf(g.used[v].Not(), []ports.Term{
			{Var: d.ends[v], Coeff: 1},
			{Var: d.starts[v], Coeff: -1},
		}, 0)

		// Tighter per-vehicle bound on every customer the vehicle serves.
		if capOf(v) < maxCap {
			for i := 0; i < g.nodes; i++ {
				if i == g.depot {
					continue
				}
				m.AddLinearAtLeastIf(g.visits[v][i], []ports.Term{{Var: d.cumuls[i], Coeff: -1}}, -capOf(v))
			}
		}
	}

	return d, nil
}

// SetCumulWindow restricts the cumulative value at a node to [lo, hi]. For
// the depot the window applies to every vehicle's start variable instead.
func (d *Dimension) SetCumulWindow(node, lo, hi int) error {
	if node < 0 || node >= d.graph.nodes {
		return fmt.Errorf("dimension %q: node %d out of range", d.name, node)
	}
	if lo < 0 || lo > hi {
		return fmt.Errorf("dimension %q: window [%d,%d] for node %d is malformed", d.name, lo, hi, node)
	}
	if node == d.graph.depot {
		for v := 0; v < d.graph.vehicles; v++ {
			d.graph.m.TightenBounds(d.starts[v], lo, hi)
		}
		return nil
	}
	d.graph.m.TightenBounds(d.cumuls[node], lo, hi)
	return nil
}

// SetSpanCost appends coeff * (max route end - min route end) to the
// objective, discouraging one vehicle's route from running far longer than
// another's.
func (d *Dimension) SetSpanCost(coeff int, obj *Objective) {
	if coeff <= 0 {
		return
	}
	m := d.graph.m
	maxEnd := m.NewIntVar(d.name+": span_max", 0, d.maxCap)
	minEnd := m.NewIntVar(d.name+": span_min", 0, d.maxCap)
	m.AddMaxEquality(maxEnd, d.ends)
	m.AddMinEquality(minEnd, d.ends)
	obj.AddInt(maxEnd, coeff)
	obj.AddInt(minEnd, -coeff)
}

// SetEndCost appends coeff * (end cumulative) per vehicle to the objective,
// e.g. total driven distance when applied to the distance dimension.
func (d *Dimension) SetEndCost(coeff int, obj *Objective) {
	if coeff <= 0 {
		return
	}
	for v := range d.ends {
		obj.AddInt(d.ends[v], coeff)
	}
}

// MarkEndpointsForMinimization hints every route's start and end cumulative
// for the solver's post-search tightening pass, shrinking slack without
// affecting feasibility.
func (d *Dimension) MarkEndpointsForMinimization() {
	for v := 0; v < d.graph.vehicles; v++ {
		d.graph.m.MarkForMinimization(d.starts[v])
		d.graph.m.MarkForMinimization(d.ends[v])
	}
}

// CumulAt reads the cumulative value at a customer node from a solution.
func (d *Dimension) CumulAt(sol ports.Solution, node int) int {
	return sol.IntValue(d.cumuls[node])
}

// StartValue reads a vehicle's starting cumulative from a solution.
func (d *Dimension) StartValue(sol ports.Solution, vehicle int) int {
	return sol.IntValue(d.starts[vehicle])
}

// EndValue reads a vehicle's final cumulative from a solution.
func (d *Dimension) EndValue(sol ports.Solution, vehicle int) int {
	return sol.IntValue(d.ends[vehicle])
}

// AddPickupDelivery links two customers: the same vehicle serves both, and
// the pickup precedes the delivery in stop order.
func (g *RouteGraph) AddPickupDelivery(pickup, delivery int) error {
	if pickup == g.depot || delivery == g.depot || pickup == delivery {
		return fmt.Errorf("route graph: pickup pair %d->%d must link two distinct customers", pickup, delivery)
	}
	if pickup < 0 || pickup >= g.nodes || delivery < 0 || delivery >= g.nodes {
		return fmt.Errorf("route graph: pickup pair %d->%d out of range", pickup, delivery)
	}
	for v := 0; v < g.vehicles; v++ {
		g.m.AddEquivalence(g.visits[v][pickup], g.visits[v][delivery])
	}
	g.m.AddLinearRange([]ports.Term{
		{Var: g.order.cumuls[delivery], Coeff: 1},
		{Var: g.order.cumuls[pickup], Coeff: -1},
	}, 1, g.nodes)
	return nil
}

// RouteOf walks a vehicle's arcs in a solution and returns its ordered
// customer sequence, excluding the depot endpoints.
func (g *RouteGraph) RouteOf(sol ports.Solution, vehicle int) ([]int, error) {
	if vehicle < 0 || vehicle >= g.vehicles {
		return nil, fmt.Errorf("route graph: vehicle %d out of range", vehicle)
	}
	if !sol.BoolValue(g.used[vehicle]) {
		return []int{}, nil
	}

	route := make([]int, 0, g.nodes)
	current := g.depot
	for steps := 0; steps <= g.nodes; steps++ {
		next := -1
		for j := 0; j < g.nodes; j++ {
			arc := g.arcs[vehicle][current][j]
			if arc != nil && sol.BoolValue(arc) {
				next = j
				break
			}
		}
		if next == -1 {
			return nil, fmt.Errorf("route graph: vehicle %d route breaks at node %d", vehicle, current)
		}
		if next == g.depot {
			return route, nil
		}
		route = append(route, next)
		current = next
	}
	return nil, fmt.Errorf("route graph: vehicle %d route does not return to the depot", vehicle)
}
