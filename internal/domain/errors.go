package domain

import "errors"

// Terminal solve failures surfaced by the model orchestrators.
// The orchestrators perform no local recovery; callers decide whether to
// retry with relaxed bounds or a larger time budget.
var (
	// ErrInvalidModel marks a model rejected before or during validation
	// (contradictory bounds, malformed instance data).
	ErrInvalidModel = errors.New("model is invalid")

	// ErrInfeasible marks a well-formed model with no satisfying assignment.
	ErrInfeasible = errors.New("model is infeasible")

	// ErrNoSolution marks a solve that hit its time budget before finding
	// any assignment.
	ErrNoSolution = errors.New("no solution found within the time limit")
)
