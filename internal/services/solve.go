package services

import (
	"context"
	"fmt"

	"roster-routing-service/internal/domain"
	"roster-routing-service/internal/ports"
)

// solveModel runs the engine's search and translates terminal statuses into
// the domain's failure taxonomy. Statuses without a solution never reach the
// value read-back path.
func solveModel(ctx context.Context, m ports.ModelBuilder, opts ports.SolveOptions) (ports.SolveResult, error) {
	solver, ok := m.(ports.Solver)
	if !ok {
		return nil, fmt.Errorf("solve: engine %T does not expose a solver", m)
	}

	res, err := solver.Solve(ctx, opts)
	if err != nil {
		if res != nil && res.Status() == ports.StatusInvalid {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidModel, err)
		}
		return nil, fmt.Errorf("solve: %w", err)
	}

	switch res.Status() {
	case ports.StatusOptimal, ports.StatusFeasible:
		return res, nil
	case ports.StatusInfeasible:
		return nil, domain.ErrInfeasible
	case ports.StatusTimeLimit:
		return nil, domain.ErrNoSolution
	case ports.StatusInvalid:
		return nil, domain.ErrInvalidModel
	default:
		return nil, fmt.Errorf("solve: unexpected status %s", res.Status())
	}
}
