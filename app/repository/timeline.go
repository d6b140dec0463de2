package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vibast-solutions/ms-go-portfolio/app/entity"
)

const timelineColumns = `id, title, sub_title, type, start_date, end_date, description, tags, skills, user_id, created_at, updated_at`

type TimelineRepository struct {
	db DBTX
}

func NewTimelineRepository(db DBTX) *TimelineRepository {
	return &TimelineRepository{db: db}
}

func (r *TimelineRepository) Create(ctx context.Context, entry *entity.TimelineEntry) error {
	query := `
		INSERT INTO timeline (id, title, sub_title, type, start_date, end_date, description, tags, skills, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.Title,
		entry.SubTitle,
		entry.Type,
		entry.StartDate,
		entry.EndDate,
		entry.Description,
		entry.Tags,
		entry.Skills,
		entry.UserID,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	return err
}

func (r *TimelineRepository) Update(ctx context.Context, entry *entity.TimelineEntry) error {
	query := `
		UPDATE timeline SET
			title = ?,
			sub_title = ?,
			type = ?,
			start_date = ?,
			end_date = ?,
			description = ?,
			tags = ?,
			skills = ?,
			user_id = ?,
			updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.Title,
		entry.SubTitle,
		entry.Type,
		entry.StartDate,
		entry.EndDate,
		entry.Description,
		entry.Tags,
		entry.Skills,
		entry.UserID,
		entry.UpdatedAt,
		entry.ID,
	)
	return err
}

func (r *TimelineRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.db, "timeline", id)
}

func (r *TimelineRepository) FindByID(ctx context.Context, id string) (*entity.TimelineEntry, error) {
	query := `
		SELECT ` + timelineColumns + `
		FROM timeline WHERE id = ?
	`
	entry, err := scanTimelineEntry(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// List orders entries by start date, most recent first.
func (r *TimelineRepository) List(ctx context.Context) ([]*entity.TimelineEntry, error) {
	query := `
		SELECT ` + timelineColumns + `
		FROM timeline ORDER BY start_date DESC, created_at DESC
	`
	return r.list(ctx, query)
}

func (r *TimelineRepository) ListByUser(ctx context.Context, userID string) ([]*entity.TimelineEntry, error) {
	query := `
		SELECT ` + timelineColumns + `
		FROM timeline WHERE user_id = ? ORDER BY start_date DESC, created_at DESC
	`
	return r.list(ctx, query, userID)
}

func (r *TimelineRepository) list(ctx context.Context, query string, args ...interface{}) ([]*entity.TimelineEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*entity.TimelineEntry, 0)
	for rows.Next() {
		entry, err := scanTimelineEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func scanTimelineEntry(scan rowScanner) (*entity.TimelineEntry, error) {
	entry := &entity.TimelineEntry{}
	if err := scan(
		&entry.ID,
		&entry.Title,
		&entry.SubTitle,
		&entry.Type,
		&entry.StartDate,
		&entry.EndDate,
		&entry.Description,
		&entry.Tags,
		&entry.Skills,
		&entry.UserID,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return entry, nil
}
