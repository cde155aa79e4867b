// Package encoding compiles hard/soft business policies into solver-level
// constraints and penalty terms over an abstract constraint engine.
//
// Every encoder takes the ModelBuilder it posts constraints into and an
// Objective it appends penalty terms to. Objectives are plain values threaded
// through the calls and merged by the orchestrator, so each encoder's
// contribution stays observable in isolation.
package encoding

import "roster-routing-service/internal/ports"

// Objective accumulates weighted penalty terms destined for the engine's
// linear minimization objective. Terms are only ever appended.
type Objective struct {
	Bools  []ports.BoolTerm
	Ints   []ports.Term
	Offset int
}

// AddBool appends a weighted boolean indicator term. Zero-weight terms are
// dropped; negative weights reward the literal being true.
func (o *Objective) AddBool(lit ports.BoolVar, weight int) {
	if weight == 0 {
		return
	}
	o.Bools = append(o.Bools, ports.BoolTerm{Lit: lit, Weight: weight})
}

// AddInt appends a weighted integer term.
func (o *Objective) AddInt(v ports.IntVar, coeff int) {
	if coeff == 0 {
		return
	}
	o.Ints = append(o.Ints, ports.Term{Var: v, Coeff: coeff})
}

// AddConstant shifts the objective by a constant. Used when a linear
// expression such as coeff*(x - min) is folded into a single variable term.
func (o *Objective) AddConstant(c int) {
	o.Offset += c
}

// Merge appends every term of other into o.
func (o *Objective) Merge(other *Objective) {
	o.Bools = append(o.Bools, other.Bools...)
	o.Ints = append(o.Ints, other.Ints...)
	o.Offset += other.Offset
}

// Apply hands the accumulated objective to the engine. Call exactly once,
// after all encoders have run.
func (o *Objective) Apply(m ports.ModelBuilder) {
	m.Minimize(o.Bools, o.Ints, o.Offset)
}
