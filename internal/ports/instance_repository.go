package ports

import (
	"context"
	"roster-routing-service/internal/domain"
)

// Port: a boundary for retrieving problem instances from a data source.
type InstanceRepository interface {
	LoadSchedule(ctx context.Context, name string) (*domain.ScheduleInstance, error)
	LoadRouting(ctx context.Context, name string) (*domain.RoutingInstance, error)
}
