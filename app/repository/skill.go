package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vibast-solutions/ms-go-portfolio/app/entity"
)

const skillColumns = `id, name, icon_name, section, icon_library, user_id, created_at, updated_at`

type SkillRepository struct {
	db DBTX
}

func NewSkillRepository(db DBTX) *SkillRepository {
	return &SkillRepository{db: db}
}

func (r *SkillRepository) Create(ctx context.Context, skill *entity.Skill) error {
	query := `
		INSERT INTO skills (id, name, icon_name, section, icon_library, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		skill.ID,
		skill.Name,
		skill.IconName,
		skill.Section,
		skill.IconLibrary,
		skill.UserID,
		skill.CreatedAt,
		skill.UpdatedAt,
	)
	return err
}

func (r *SkillRepository) Update(ctx context.Context, skill *entity.Skill) error {
	query := `
		UPDATE skills SET
			name = ?,
			icon_name = ?,
			section = ?,
			icon_library = ?,
			user_id = ?,
			updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		skill.Name,
		skill.IconName,
		skill.Section,
		skill.IconLibrary,
		skill.UserID,
		skill.UpdatedAt,
		skill.ID,
	)
	return err
}

func (r *SkillRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.db, "skills", id)
}

func (r *SkillRepository) FindByID(ctx context.Context, id string) (*entity.Skill, error) {
	query := `
		SELECT ` + skillColumns + `
		FROM skills WHERE id = ?
	`
	skill, err := scanSkill(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return skill, nil
}

func (r *SkillRepository) List(ctx context.Context) ([]*entity.Skill, error) {
	query := `
		SELECT ` + skillColumns + `
		FROM skills ORDER BY created_at DESC
	`
	return r.list(ctx, query)
}

func (r *SkillRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Skill, error) {
	query := `
		SELECT ` + skillColumns + `
		FROM skills WHERE user_id = ? ORDER BY created_at DESC
	`
	return r.list(ctx, query, userID)
}

func (r *SkillRepository) list(ctx context.Context, query string, args ...interface{}) ([]*entity.Skill, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := make([]*entity.Skill, 0)
	for rows.Next() {
		skill, err := scanSkill(rows.Scan)
		if err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return skills, nil
}

func scanSkill(scan rowScanner) (*entity.Skill, error) {
	skill := &entity.Skill{}
	if err := scan(
		&skill.ID,
		&skill.Name,
		&skill.IconName,
		&skill.Section,
		&skill.IconLibrary,
		&skill.UserID,
		&skill.CreatedAt,
		&skill.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return skill, nil
}
