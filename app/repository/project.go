package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vibast-solutions/ms-go-portfolio/app/entity"
)

const projectColumns = `id, domain, name, description, skills, images, blob_json, user_id, created_at, updated_at`

type ProjectRepository struct {
	db DBTX
}

func NewProjectRepository(db DBTX) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	query := `
		INSERT INTO projects (id, domain, name, description, skills, images, blob_json, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		project.ID,
		project.Domain,
		project.Name,
		project.Description,
		project.Skills,
		project.Images,
		project.Blob,
		project.UserID,
		project.CreatedAt,
		project.UpdatedAt,
	)
	return err
}

func (r *ProjectRepository) Update(ctx context.Context, project *entity.Project) error {
	query := `
		UPDATE projects SET
			domain = ?,
			name = ?,
			description = ?,
			skills = ?,
			images = ?,
			blob_json = ?,
			user_id = ?,
			updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		project.Domain,
		project.Name,
		project.Description,
		project.Skills,
		project.Images,
		project.Blob,
		project.UserID,
		project.UpdatedAt,
		project.ID,
	)
	return err
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.db, "projects", id)
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects WHERE id = ?
	`
	project, err := scanProject(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]*entity.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects ORDER BY created_at DESC
	`
	return r.list(ctx, query)
}

func (r *ProjectRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects WHERE user_id = ? ORDER BY created_at DESC
	`
	return r.list(ctx, query, userID)
}

func (r *ProjectRepository) list(ctx context.Context, query string, args ...interface{}) ([]*entity.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]*entity.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return projects, nil
}

func scanProject(scan rowScanner) (*entity.Project, error) {
	project := &entity.Project{}
	if err := scan(
		&project.ID,
		&project.Domain,
		&project.Name,
		&project.Description,
		&project.Skills,
		&project.Images,
		&project.Blob,
		&project.UserID,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return project, nil
}
