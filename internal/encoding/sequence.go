package encoding

import (
	"fmt"

	"roster-routing-service/internal/domain"
	"roster-routing-service/internal/ports"
)

// AddSoftSequence constrains the length of every maximal run of true values
// in works to the given policy.
//
// Runs shorter than hardMin or longer than hardMax make the model
// infeasible. Runs between a hard and a soft bound are permitted through a
// fresh penalty literal whose weight grows linearly with the deviation from
// the soft bound. The penalty terms go into obj, never into the model
// directly.
func AddSoftSequence(m ports.ModelBuilder, works []ports.BoolVar, p domain.BoundPolicy, label string, obj *Objective) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("soft sequence %q: %w", label, err)
	}
	n := len(works)
	if n == 0 {
		return fmt.Errorf("soft sequence %q: empty sequence", label)
	}

	// Forbid any maximal run shorter than the hard minimum.
	for length := 1; length < p.HardMin; length++ {
		for start := 0; start+length <= n; start++ {
			m.AddClause(NegatedBoundedSpan(works, start, length)...)
		}
	}

	// Penalize runs between the hard and the soft minimum. The added literal
	// lets the solver accept the run by paying for it.
	if p.MinPenalty > 0 {
		for length := p.HardMin; length < p.SoftMin; length++ {
			for start := 0; start+length <= n; start++ {
				lit := m.NewBoolVar(fmt.Sprintf("%s: under_span(start=%d, length=%d)", label, start, length))
				m.AddClause(append(NegatedBoundedSpan(works, start, length), lit)...)
				// Shorter runs deviate more and cost more.
				obj.AddBool(lit, p.MinPenalty*(p.SoftMin-length))
			}
		}
	}

	// Penalize runs between the soft and the hard maximum.
	if p.MaxPenalty > 0 {
		for length := p.SoftMax + 1; length <= p.HardMax; length++ {
			for start := 0; start+length <= n; start++ {
				lit := m.NewBoolVar(fmt.Sprintf("%s: over_span(start=%d, length=%d)", label, start, length))
				m.AddClause(append(NegatedBoundedSpan(works, start, length), lit)...)
				obj.AddBool(lit, p.MaxPenalty*(length-p.SoftMax))
			}
		}
	}

	// Absolute ceiling: no window of hardMax+1 consecutive true values, with
	// no boundary literals and no escape hatch.
	for start := 0; start+p.HardMax+1 <= n; start++ {
		clause := make([]ports.BoolVar, 0, p.HardMax+1)
		for i := start; i <= start+p.HardMax; i++ {
			clause = append(clause, works[i].Not())
		}
		m.AddClause(clause...)
	}

	return nil
}
