package encoding

import (
	"fmt"

	"roster-routing-service/internal/domain"
	"roster-routing-service/internal/ports"
)

// AddSoftSum constrains the number of true values in works to the given
// policy and returns the integer sum variable.
//
// The hard range is the sum variable's own domain. Each soft band, when
// active, materializes an excess variable equal to max(0, deviation) whose
// linear penalty goes into obj. The max is a solver-level maximum-of-two
// constraint, keeping the whole encoding linear.
func AddSoftSum(m ports.ModelBuilder, works []ports.BoolVar, p domain.BoundPolicy, label string, obj *Objective) (ports.IntVar, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("soft sum %q: %w", label, err)
	}
	n := len(works)
	if n == 0 {
		return nil, fmt.Errorf("soft sum %q: empty group", label)
	}
	if p.HardMin > n {
		return nil, fmt.Errorf("soft sum %q: hard_min %d exceeds group size %d", label, p.HardMin, n)
	}

	sum := m.NewIntVar(label+": sum", p.HardMin, p.HardMax)
	m.AddCountEquals(works, sum)

	if p.SoftMin > p.HardMin && p.MinPenalty > 0 {
		// delta == softMin - sum, excess == max(0, delta).
		delta := m.NewIntVar(label+": under_delta", -n, n)
		m.AddLinearRange([]ports.Term{{Var: sum, Coeff: 1}, {Var: delta, Coeff: 1}}, p.SoftMin, p.SoftMin)
		excess := m.NewIntVar(label+": under_sum", 0, n)
		zero := m.NewIntVar(label+": under_zero", 0, 0)
		m.AddMaxEquality(excess, []ports.IntVar{delta, zero})
		obj.AddInt(excess, p.MinPenalty)
	}

	if p.SoftMax < p.HardMax && p.MaxPenalty > 0 {
		// delta == sum - softMax, excess == max(0, delta).
		delta := m.NewIntVar(label+": over_delta", -n, n)
		m.AddLinearRange([]ports.Term{{Var: sum, Coeff: 1}, {Var: delta, Coeff: -1}}, p.SoftMax, p.SoftMax)
		excess := m.NewIntVar(label+": over_sum", 0, n)
		zero := m.NewIntVar(label+": over_zero", 0, 0)
		m.AddMaxEquality(excess, []ports.IntVar{delta, zero})
		obj.AddInt(excess, p.MaxPenalty)
	}

	return sum, nil
}
