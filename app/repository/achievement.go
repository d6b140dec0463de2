package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vibast-solutions/ms-go-portfolio/app/entity"
)

const achievementColumns = `id, title, subtitle, description, date, image_url, image_public_id, user_id, created_at, updated_at`

type AchievementRepository struct {
	db DBTX
}

func NewAchievementRepository(db DBTX) *AchievementRepository {
	return &AchievementRepository{db: db}
}

func (r *AchievementRepository) Create(ctx context.Context, achievement *entity.Achievement) error {
	query := `
		INSERT INTO achievements (id, title, subtitle, description, date, image_url, image_public_id, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		achievement.ID,
		achievement.Title,
		achievement.Subtitle,
		achievement.Description,
		achievement.Date,
		achievement.ImageURL,
		achievement.ImagePublicID,
		achievement.UserID,
		achievement.CreatedAt,
		achievement.UpdatedAt,
	)
	return err
}

func (r *AchievementRepository) Update(ctx context.Context, achievement *entity.Achievement) error {
	query := `
		UPDATE achievements SET
			title = ?,
			subtitle = ?,
			description = ?,
			date = ?,
			image_url = ?,
			image_public_id = ?,
			user_id = ?,
			updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		achievement.Title,
		achievement.Subtitle,
		achievement.Description,
		achievement.Date,
		achievement.ImageURL,
		achievement.ImagePublicID,
		achievement.UserID,
		achievement.UpdatedAt,
		achievement.ID,
	)
	return err
}

func (r *AchievementRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.db, "achievements", id)
}

func (r *AchievementRepository) FindByID(ctx context.Context, id string) (*entity.Achievement, error) {
	query := `
		SELECT ` + achievementColumns + `
		FROM achievements WHERE id = ?
	`
	achievement, err := scanAchievement(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return achievement, nil
}

func (r *AchievementRepository) List(ctx context.Context) ([]*entity.Achievement, error) {
	query := `
		SELECT ` + achievementColumns + `
		FROM achievements ORDER BY date DESC, created_at DESC
	`
	return r.list(ctx, query)
}

func (r *AchievementRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Achievement, error) {
	query := `
		SELECT ` + achievementColumns + `
		FROM achievements WHERE user_id = ? ORDER BY date DESC, created_at DESC
	`
	return r.list(ctx, query, userID)
}

func (r *AchievementRepository) list(ctx context.Context, query string, args ...interface{}) ([]*entity.Achievement, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	achievements := make([]*entity.Achievement, 0)
	for rows.Next() {
		achievement, err := scanAchievement(rows.Scan)
		if err != nil {
			return nil, err
		}
		achievements = append(achievements, achievement)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return achievements, nil
}

func scanAchievement(scan rowScanner) (*entity.Achievement, error) {
	achievement := &entity.Achievement{}
	if err := scan(
		&achievement.ID,
		&achievement.Title,
		&achievement.Subtitle,
		&achievement.Description,
		&achievement.Date,
		&achievement.ImageURL,
		&achievement.ImagePublicID,
		&achievement.UserID,
		&achievement.CreatedAt,
		&achievement.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return achievement, nil
}
