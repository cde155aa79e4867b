package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"roster-routing-service/internal/domain"
)

// Postgres-backed implementation of the PlanRepository port.
type PostgresPlanRepository struct{ DB *sql.DB }

func NewPostgresPlanRepository(db *sql.DB) *PostgresPlanRepository {
	return &PostgresPlanRepository{DB: db}
}

func (r *PostgresPlanRepository) SaveRun(ctx context.Context, run *domain.SolveRun) error {
	if r.DB == nil {
		return errors.New("postgres plan repository: DB is nil")
	}

	query := `
	INSERT INTO solve_runs (
		run_id,
		kind,
		instance,
		status,
		objective,
		plan,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.DB.ExecContext(ctx, query,
		run.RunID, run.Kind, run.Instance, run.Status, run.Objective, run.Plan, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("save run %q: %w", run.RunID, err)
	}
	return nil
}

// Return the most recent solve runs, newest first.
func (r *PostgresPlanRepository) ListRuns(ctx context.Context) ([]*domain.SolveRun, error) {
	if r.DB == nil {
		return nil, errors.New("postgres plan repository: DB is nil")
	}

	query := `
	SELECT
		run_id,
		kind,
		instance,
		status,
		objective,
		plan,
		created_at
	FROM solve_runs
	ORDER BY created_at DESC
	LIMIT 100;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list runs: query solve_runs table: %w", err)
	}
	defer rows.Close()

	runs := make([]*domain.SolveRun, 0, 16)
	for rows.Next() {
		run := &domain.SolveRun{}
		err := rows.Scan(&run.RunID, &run.Kind, &run.Instance, &run.Status, &run.Objective, &run.Plan, &run.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return runs, nil
}
