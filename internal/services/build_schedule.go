package services

import (
	"context"
	"fmt"

	"roster-routing-service/internal/domain"
	"roster-routing-service/internal/encoding"
	"roster-routing-service/internal/ports"
)

// BuildSchedule compiles a scheduling instance into a constraint model,
// solves it under the given budget, and reads the assignment back.
//
// Encoding order is fixed: assignment structure, fixed cells, requests,
// run-length policies, weekly sums, transitions, coverage, then the merged
// objective. Solver status is validated before any variable is read.
func BuildSchedule(
	ctx context.Context,
	engine ports.Engine,
	in *domain.ScheduleInstance,
	opts ports.SolveOptions,
) (*domain.ScheduleAssignment, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("build schedule: %w: %w", domain.ErrInvalidModel, err)
	}

	m := engine.NewModel()
	obj := &encoding.Objective{}

	// work[e][d][s] is true when employee e works shift s on day d.
	work := make([][][]ports.BoolVar, in.Employees)
	for e := 0; e < in.Employees; e++ {
		work[e] = make([][]ports.BoolVar, in.Days)
		for d := 0; d < in.Days; d++ {
			work[e][d] = make([]ports.BoolVar, in.Shifts)
			for s := 0; s < in.Shifts; s++ {
				work[e][d][s] = m.NewBoolVar(fmt.Sprintf("work(e=%d,d=%d,s=%d)", e, d, s))
			}
			// Exactly one shift (possibly the off shift) per employee-day.
			m.AddBoolSumRange(work[e][d], 1, 1)
		}
	}

	for _, f := range in.Fixed {
		m.AddClause(work[f.Employee][f.Day][f.Shift])
	}

	for _, r := range in.Requests {
		obj.AddBool(work[r.Employee][r.Day][r.Shift], r.Weight)
	}

	for _, sp := range in.Sequences {
		for e := 0; e < in.Employees; e++ {
			seq := make([]ports.BoolVar, in.Days)
			for d := 0; d < in.Days; d++ {
				seq[d] = work[e][d][sp.Shift]
			}
			label := fmt.Sprintf("shift_sequence(e=%d,s=%d)", e, sp.Shift)
			if err := encoding.AddSoftSequence(m, seq, sp.Policy, label, obj); err != nil {
				return nil, fmt.Errorf("build schedule: %w: %w", domain.ErrInvalidModel, err)
			}
		}
	}

	// Sum policies run over consecutive 7-day windows; a trailing partial
	// week is encoded over the days it has.
	for _, sp := range in.Sums {
		for e := 0; e < in.Employees; e++ {
			for start := 0; start < in.Days; start += 7 {
				end := start + 7
				if end > in.Days {
					end = in.Days
				}
				group := make([]ports.BoolVar, 0, end-start)
				for d := start; d < end; d++ {
					group = append(group, work[e][d][sp.Shift])
				}
				label := fmt.Sprintf("weekly_sum(e=%d,s=%d,w=%d)", e, sp.Shift, start/7)
				if _, err := encoding.AddSoftSum(m, group, sp.Policy, label, obj); err != nil {
					return nil, fmt.Errorf("build schedule: %w: %w", domain.ErrInvalidModel, err)
				}
			}
		}
	}

	for _, t := range in.Transitions {
		for e := 0; e < in.Employees; e++ {
			for d := 0; d < in.Days-1; d++ {
				a := work[e][d][t.From].Not()
				b := work[e][d+1][t.To].Not()
				if t.Penalty == 0 {
					m.AddClause(a, b)
					continue
				}
				lit := m.NewBoolVar(fmt.Sprintf("transition(e=%d,d=%d,%d->%d)", e, d, t.From, t.To))
				m.AddClause(a, b, lit)
				obj.AddBool(lit, t.Penalty)
			}
		}
	}

	// Minimum coverage is hard; staffing above it costs CoverPenalty per
	// extra employee, encoded as penalty on the count with a constant shift.
	for d := 0; d < in.Days; d++ {
		for s := 1; s < in.Shifts; s++ {
			min := in.MinCoverage[d][s]
			col := make([]ports.BoolVar, in.Employees)
			for e := 0; e < in.Employees; e++ {
				col[e] = work[e][d][s]
			}
			worked := m.NewIntVar(fmt.Sprintf("cover(d=%d,s=%d)", d, s), min, in.Employees)
			m.AddCountEquals(col, worked)
			if in.CoverPenalty > 0 {
				obj.AddInt(worked, in.CoverPenalty)
				obj.AddConstant(-in.CoverPenalty * min)
			}
		}
	}

	obj.Apply(m)

	res, err := solveModel(ctx, m, opts)
	if err != nil {
		return nil, fmt.Errorf("build schedule: %w", err)
	}
	sol, err := res.Solution()
	if err != nil {
		return nil, fmt.Errorf("build schedule: %w", err)
	}

	out := &domain.ScheduleAssignment{
		Shifts:    make([][]int, in.Employees),
		Objective: sol.Objective(),
		Optimal:   res.Status() == ports.StatusOptimal,
	}
	for e := 0; e < in.Employees; e++ {
		out.Shifts[e] = make([]int, in.Days)
		for d := 0; d < in.Days; d++ {
			assigned := -1
			for s := 0; s < in.Shifts; s++ {
				if sol.BoolValue(work[e][d][s]) {
					assigned = s
					break
				}
			}
			if assigned < 0 {
				return nil, fmt.Errorf("build schedule: employee %d day %d has no assigned shift", e, d)
			}
			out.Shifts[e][d] = assigned
		}
	}
	return out, nil
}
