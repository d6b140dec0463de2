package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vibast-solutions/ms-go-portfolio/app/entity"
)

const experienceColumns = `id, company_name, title, location, start_date, end_date, description, points, user_id, created_at, updated_at`

type WorkExperienceRepository struct {
	db DBTX
}

func NewWorkExperienceRepository(db DBTX) *WorkExperienceRepository {
	return &WorkExperienceRepository{db: db}
}

func (r *WorkExperienceRepository) Create(ctx context.Context, experience *entity.WorkExperience) error {
	query := `
		INSERT INTO work_experiences (id, company_name, title, location, start_date, end_date, description, points, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		experience.ID,
		experience.CompanyName,
		experience.Title,
		experience.Location,
		experience.StartDate,
		experience.EndDate,
		experience.Description,
		experience.Points,
		experience.UserID,
		experience.CreatedAt,
		experience.UpdatedAt,
	)
	return err
}

func (r *WorkExperienceRepository) Update(ctx context.Context, experience *entity.WorkExperience) error {
	query := `
		UPDATE work_experiences SET
			company_name = ?,
			title = ?,
			location = ?,
			start_date = ?,
			end_date = ?,
			description = ?,
			points = ?,
			user_id = ?,
			updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		experience.CompanyName,
		experience.Title,
		experience.Location,
		experience.StartDate,
		experience.EndDate,
		experience.Description,
		experience.Points,
		experience.UserID,
		experience.UpdatedAt,
		experience.ID,
	)
	return err
}

func (r *WorkExperienceRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.db, "work_experiences", id)
}

func (r *WorkExperienceRepository) FindByID(ctx context.Context, id string) (*entity.WorkExperience, error) {
	query := `
		SELECT ` + experienceColumns + `
		FROM work_experiences WHERE id = ?
	`
	experience, err := scanWorkExperience(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return experience, nil
}

// List returns the most recent positions first. Current positions have no end date.
func (r *WorkExperienceRepository) List(ctx context.Context) ([]*entity.WorkExperience, error) {
	query := `
		SELECT ` + experienceColumns + `
		FROM work_experiences ORDER BY start_date DESC, created_at DESC
	`
	return r.list(ctx, query)
}

func (r *WorkExperienceRepository) ListByUser(ctx context.Context, userID string) ([]*entity.WorkExperience, error) {
	query := `
		SELECT ` + experienceColumns + `
		FROM work_experiences WHERE user_id = ? ORDER BY start_date DESC, created_at DESC
	`
	return r.list(ctx, query, userID)
}

func (r *WorkExperienceRepository) list(ctx context.Context, query string, args ...interface{}) ([]*entity.WorkExperience, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	experiences := make([]*entity.WorkExperience, 0)
	for rows.Next() {
		experience, err := scanWorkExperience(rows.Scan)
		if err != nil {
			return nil, err
		}
		experiences = append(experiences, experience)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return experiences, nil
}

func scanWorkExperience(scan rowScanner) (*entity.WorkExperience, error) {
	experience := &entity.WorkExperience{}
	if err := scan(
		&experience.ID,
		&experience.CompanyName,
		&experience.Title,
		&experience.Location,
		&experience.StartDate,
		&experience.EndDate,
		&experience.Description,
		&experience.Points,
		&experience.UserID,
		&experience.CreatedAt,
		&experience.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return experience, nil
}
