package repository

import (
	"context"

	"github.com/vibast-solutions/ms-go-portfolio/app/entity"
)

type HealthCheckRepository struct {
	db DBTX
}

func NewHealthCheckRepository(db DBTX) *HealthCheckRepository {
	return &HealthCheckRepository{db: db}
}

// Upsert keeps exactly one row per component.
func (r *HealthCheckRepository) Upsert(ctx context.Context, check *entity.HealthCheck) error {
	query := `
		INSERT INTO health_checks (component, status, details, last_checked_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE status = VALUES(status), details = VALUES(details), last_checked_at = VALUES(last_checked_at)
	`
	_, err := r.db.ExecContext(ctx, query, check.Component, check.Status, check.Details, check.LastCheckedAt)
	return err
}

func (r *HealthCheckRepository) List(ctx context.Context) ([]*entity.HealthCheck, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT component, status, details, last_checked_at FROM health_checks ORDER BY component`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checks := make([]*entity.HealthCheck, 0)
	for rows.Next() {
		check := &entity.HealthCheck{}
		if err := rows.Scan(&check.Component, &check.Status, &check.Details, &check.LastCheckedAt); err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return checks, nil
}

// Ping runs the query used by the database health check.
func (r *HealthCheckRepository) Ping(ctx context.Context) error {
	var one int
	return r.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one)
}
