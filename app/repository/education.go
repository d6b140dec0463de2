package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vibast-solutions/ms-go-portfolio/app/entity"
)

const educationColumns = `id, degree, college_name, start_date, end_date, description, tags, user_id, created_at, updated_at`

type EducationRepository struct {
	db DBTX
}

func NewEducationRepository(db DBTX) *EducationRepository {
	return &EducationRepository{db: db}
}

func (r *EducationRepository) Create(ctx context.Context, education *entity.Education) error {
	query := `
		INSERT INTO education (id, degree, college_name, start_date, end_date, description, tags, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		education.ID,
		education.Degree,
		education.CollegeName,
		education.StartDate,
		education.EndDate,
		education.Description,
		education.Tags,
		education.UserID,
		education.CreatedAt,
		education.UpdatedAt,
	)
	return err
}

func (r *EducationRepository) Update(ctx context.Context, education *entity.Education) error {
	query := `
		UPDATE education SET
			degree = ?,
			college_name = ?,
			start_date = ?,
			end_date = ?,
			description = ?,
			tags = ?,
			user_id = ?,
			updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		education.Degree,
		education.CollegeName,
		education.StartDate,
		education.EndDate,
		education.Description,
		education.Tags,
		education.UserID,
		education.UpdatedAt,
		education.ID,
	)
	return err
}

func (r *EducationRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.db, "education", id)
}

func (r *EducationRepository) FindByID(ctx context.Context, id string) (*entity.Education, error) {
	query := `
		SELECT ` + educationColumns + `
		FROM education WHERE id = ?
	`
	education, err := scanEducation(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return education, nil
}

func (r *EducationRepository) List(ctx context.Context) ([]*entity.Education, error) {
	query := `
		SELECT ` + educationColumns + `
		FROM education ORDER BY start_date DESC, created_at DESC
	`
	return r.list(ctx, query)
}

func (r *EducationRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Education, error) {
	query := `
		SELECT ` + educationColumns + `
		FROM education WHERE user_id = ? ORDER BY start_date DESC, created_at DESC
	`
	return r.list(ctx, query, userID)
}

func (r *EducationRepository) list(ctx context.Context, query string, args ...interface{}) ([]*entity.Education, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	educations := make([]*entity.Education, 0)
	for rows.Next() {
		education, err := scanEducation(rows.Scan)
		if err != nil {
			return nil, err
		}
		educations = append(educations, education)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return educations, nil
}

func scanEducation(scan rowScanner) (*entity.Education, error) {
	education := &entity.Education{}
	if err := scan(
		&education.ID,
		&education.Degree,
		&education.CollegeName,
		&education.StartDate,
		&education.EndDate,
		&education.Description,
		&education.Tags,
		&education.UserID,
		&education.CreatedAt,
		&education.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return education, nil
}
