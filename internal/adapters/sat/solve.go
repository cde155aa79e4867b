package sat

import (
	"context"
	"fmt"
	"log"

	"github.com/crillab/gophersat/maxsat"

	"roster-routing-service/internal/platform/obs"
	"roster-routing-service/internal/ports"
)

// Solve runs the MaxSAT search over the accumulated constraints and the soft
// clauses derived from the objective. The backend search runs to completion,
// so any model it returns is optimal.
func (m *Model) Solve(ctx context.Context, opts ports.SolveOptions) (_ ports.SolveResult, err error) {
	defer obs.Time(ctx, "sat.Solve")(&err)

	if m.err != nil {
		return &result{status: ports.StatusInvalid}, fmt.Errorf("solve: invalid model: %w", m.err)
	}
	if opts.Workers > 1 {
		// gophersat searches single-threaded; the worker count is a hint.
		log.Printf("solve workers=%d requested, backend runs one worker", opts.Workers)
	}

	constrs, offset := m.softened()
	problem := maxsat.New(constrs...)

	solveCtx := ctx
	if opts.TimeLimit > 0 {
		var cancel context.CancelFunc
		solveCtx, cancel = context.WithTimeout(ctx, opts.TimeLimit)
		defer cancel()
	}

	type outcome struct {
		model maxsat.Model
		cost  int
	}
	done := make(chan outcome, 1)
	go func() {
		model, cost := problem.Solve()
		done <- outcome{model: model, cost: cost}
	}()

	select {
	case out := <-done:
		if out.model == nil {
			return &result{status: ports.StatusInfeasible}, nil
		}
		return &result{
			status:    ports.StatusOptimal,
			model:     out.model,
			objective: out.cost + offset,
		}, nil
	case <-solveCtx.Done():
		// The search cannot be interrupted mid-flight; an expired budget
		// abandons the goroutine and discards its eventual result.
		return &result{status: ports.StatusTimeLimit}, nil
	}
}

// softened returns the hard constraints plus the objective's soft clauses,
// along with the constant the reported weight must be shifted by.
//
// A positive boolean weight w costs w when the literal holds (soft clause on
// its negation); a negative one rewards it, expressed as a cost on the
// negated literal plus a matching offset. Integer terms decompose over the
// order-encoding bits the same way.
func (m *Model) softened() ([]maxsat.Constr, int) {
	constrs := make([]maxsat.Constr, 0, len(m.constrs)+len(m.objBools))
	constrs = append(constrs, m.constrs...)
	offset := m.objOffset

	for _, t := range m.objBools {
		b, ok := t.Lit.(boolVar)
		if !ok {
			continue
		}
		switch {
		case t.Weight > 0:
			constrs = append(constrs, maxsat.WeightedClause([]maxsat.Lit{b.negated().lit()}, t.Weight))
		case t.Weight < 0:
			constrs = append(constrs, maxsat.WeightedClause([]maxsat.Lit{b.lit()}, -t.Weight))
			offset += t.Weight
		}
	}

	for _, t := range m.objInts {
		x, ok := t.Var.(*intVar)
		if !ok {
			continue
		}
		switch {
		case t.Coeff > 0:
			offset += t.Coeff * x.lo
			for _, b := range x.bits {
				constrs = append(constrs, maxsat.WeightedClause([]maxsat.Lit{b.negated().lit()}, t.Coeff))
			}
		case t.Coeff < 0:
			offset += t.Coeff * x.hi
			for _, b := range x.bits {
				constrs = append(constrs, maxsat.WeightedClause([]maxsat.Lit{b.lit()}, -t.Coeff))
			}
		}
	}

	return constrs, offset
}

type result struct {
	status    ports.Status
	model     maxsat.Model
	objective int
}

func (r *result) Status() ports.Status { return r.status }

func (r *result) Solution() (ports.Solution, error) {
	if !r.status.HasSolution() {
		return nil, fmt.Errorf("solution: status %s has no assignment", r.status)
	}
	return &solution{model: r.model, objective: r.objective}, nil
}

type solution struct {
	model     maxsat.Model
	objective int
}

func (s *solution) BoolValue(v ports.BoolVar) bool {
	b, ok := v.(boolVar)
	if !ok {
		return false
	}
	if b.neg {
		return !s.model[b.name]
	}
	return s.model[b.name]
}

func (s *solution) IntValue(v ports.IntVar) int {
	x, ok := v.(*intVar)
	if !ok {
		return 0
	}
	val := x.lo
	for _, b := range x.bits {
		if s.model[b.name] {
			val++
		}
	}
	return val
}

func (s *solution) Objective() int { return s.objective }
