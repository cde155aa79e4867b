package ports

import (
	"context"
	"time"
)

// Status is the terminal state of a solve call.
type Status int

const (
	StatusUnsolved Status = iota
	StatusOptimal
	StatusFeasible
	StatusInfeasible
	StatusTimeLimit
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusUnsolved:
		return "unsolved"
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusTimeLimit:
		return "time-limit"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// HasSolution reports whether variable values may be read back.
func (s Status) HasSolution() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// SolveOptions bound one blocking solve call.
type SolveOptions struct {
	// TimeLimit caps wall-clock search time. Zero means no limit.
	TimeLimit time.Duration
	// Workers is a parallelism hint for engines with parallel search.
	Workers int
}

// Solution exposes the assigned values of a solved model. A Solution is only
// obtainable through SolveResult.Solution, which gates access on the status.
type Solution interface {
	BoolValue(v BoolVar) bool
	IntValue(v IntVar) int
	Objective() int
}

// SolveResult is the outcome of one solve call.
type SolveResult interface {
	Status() Status
	// Solution returns the assignment, or an error for any status without
	// one. Reading values from an infeasible or unknown result is a usage
	// error, not a recoverable condition.
	Solution() (Solution, error)
}

// Solver runs the search over a built model. Implemented by engine adapters
// alongside ModelBuilder; obtain it with a type assertion on the builder.
type Solver interface {
	Solve(ctx context.Context, opts SolveOptions) (SolveResult, error)
}

// Engine creates fresh models. One model serves exactly one build-solve run
// and is immutable once solved.
type Engine interface {
	NewModel() ModelBuilder
}
