package domain

import "fmt"

// SequencePolicy applies a BoundPolicy to the length of every maximal run of
// consecutive days an employee works the given shift.
type SequencePolicy struct {
	Shift  int
	Policy BoundPolicy
}

// SumPolicy applies a BoundPolicy to the number of days per week an employee
// works the given shift.
type SumPolicy struct {
	Shift  int
	Policy BoundPolicy
}

// FixedAssignment pins one employee to one shift on one day.
type FixedAssignment struct {
	Employee int
	Shift    int
	Day      int
}

// ShiftRequest is a weighted preference for (or, with a negative weight,
// toward) an assignment. The weight is added to the objective when the
// assignment is made, so negative weights reward granting the request.
type ShiftRequest struct {
	Employee int
	Shift    int
	Day      int
	Weight   int
}

// TransitionPolicy restricts one shift following another on consecutive days.
// A zero penalty forbids the transition; a positive penalty allows it at a cost.
type TransitionPolicy struct {
	From    int
	To      int
	Penalty int
}

// ScheduleInstance is the static input of one scheduling run.
// Shift 0 is the off shift; coverage applies to working shifts only.
// Sum policies are evaluated over consecutive 7-day windows.
type ScheduleInstance struct {
	Employees int
	Shifts    int
	Days      int

	// MinCoverage[day][shift] is the minimum number of employees that must
	// work the shift on the day. Entries for shift 0 are ignored.
	MinCoverage [][]int
	// CoverPenalty is the per-employee cost of staffing a shift above its
	// minimum coverage. Zero means excess staffing is free.
	CoverPenalty int

	Fixed       []FixedAssignment
	Requests    []ShiftRequest
	Sequences   []SequencePolicy
	Sums        []SumPolicy
	Transitions []TransitionPolicy
}

// Validate rejects malformed instances before any model is built.
func (in *ScheduleInstance) Validate() error {
	if in.Employees <= 0 {
		return fmt.Errorf("schedule instance: employees must be positive, got %d", in.Employees)
	}
	if in.Shifts < 2 {
		return fmt.Errorf("schedule instance: need the off shift plus at least one working shift, got %d", in.Shifts)
	}
	if in.Days <= 0 {
		return fmt.Errorf("schedule instance: days must be positive, got %d", in.Days)
	}
	if len(in.MinCoverage) != in.Days {
		return fmt.Errorf("schedule instance: min_coverage has %d rows, want %d", len(in.MinCoverage), in.Days)
	}
	for d, row := range in.MinCoverage {
		if len(row) != in.Shifts {
			return fmt.Errorf("schedule instance: min_coverage[%d] has %d entries, want %d", d, len(row), in.Shifts)
		}
		for s, min := range row {
			if min < 0 || min > in.Employees {
				return fmt.Errorf("schedule instance: min_coverage[%d][%d]=%d outside [0,%d]", d, s, min, in.Employees)
			}
		}
	}
	if in.CoverPenalty < 0 {
		return fmt.Errorf("schedule instance: cover_penalty must be non-negative, got %d", in.CoverPenalty)
	}
	for _, f := range in.Fixed {
		if err := in.checkCell(f.Employee, f.Shift, f.Day); err != nil {
			return fmt.Errorf("schedule instance: fixed assignment: %w", err)
		}
	}
	for _, r := range in.Requests {
		if err := in.checkCell(r.Employee, r.Shift, r.Day); err != nil {
			return fmt.Errorf("schedule instance: request: %w", err)
		}
	}
	for _, sp := range in.Sequences {
		if sp.Shift < 0 || sp.Shift >= in.Shifts {
			return fmt.Errorf("schedule instance: sequence policy shift %d out of range", sp.Shift)
		}
		if err := sp.Policy.Validate(); err != nil {
			return fmt.Errorf("schedule instance: sequence policy shift %d: %w", sp.Shift, err)
		}
	}
	for _, sp := range in.Sums {
		if sp.Shift < 0 || sp.Shift >= in.Shifts {
			return fmt.Errorf("schedule instance: sum policy shift %d out of range", sp.Shift)
		}
		if err := sp.Policy.Validate(); err != nil {
			return fmt.Errorf("schedule instance: sum policy shift %d: %w", sp.Shift, err)
		}
	}
	for _, t := range in.Transitions {
		if t.From < 0 || t.From >= in.Shifts || t.To < 0 || t.To >= in.Shifts {
			return fmt.Errorf("schedule instance: transition %d->%d out of range", t.From, t.To)
		}
		if t.Penalty < 0 {
			return fmt.Errorf("schedule instance: transition %d->%d penalty must be non-negative", t.From, t.To)
		}
	}
	return nil
}

func (in *ScheduleInstance) checkCell(employee, shift, day int) error {
	if employee < 0 || employee >= in.Employees {
		return fmt.Errorf("employee %d out of range [0,%d)", employee, in.Employees)
	}
	if shift < 0 || shift >= in.Shifts {
		return fmt.Errorf("shift %d out of range [0,%d)", shift, in.Shifts)
	}
	if day < 0 || day >= in.Days {
		return fmt.Errorf("day %d out of range [0,%d)", day, in.Days)
	}
	return nil
}

// ScheduleAssignment is the read-only result of a scheduling run.
type ScheduleAssignment struct {
	// Shifts[employee][day] is the shift index assigned to the employee.
	Shifts    [][]int
	Objective int
	// Optimal reports whether the solver proved optimality; false means the
	// assignment is feasible but the time budget expired first.
	Optimal bool
}
