package ports

import (
	"context"
	"roster-routing-service/internal/domain"
)

// Port: a boundary for persisting solve runs for later inspection.
type PlanRepository interface {
	SaveRun(ctx context.Context, run *domain.SolveRun) error
	ListRuns(ctx context.Context) ([]*domain.SolveRun, error)
}
