package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vibast-solutions/ms-go-portfolio/app/entity"
)

type UserQueryRepository struct {
	db DBTX
}

func NewUserQueryRepository(db DBTX) *UserQueryRepository {
	return &UserQueryRepository{db: db}
}

func (r *UserQueryRepository) Create(ctx context.Context, q *entity.UserQuery) error {
	query := `
		INSERT INTO user_queries (id, name, email, subject, message, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query, q.ID, q.Name, q.Email, q.Subject, q.Message, q.CreatedAt, q.UpdatedAt)
	return err
}

func (r *UserQueryRepository) FindByID(ctx context.Context, id string) (*entity.UserQuery, error) {
	query := `
		SELECT id, name, email, subject, message, created_at, updated_at
		FROM user_queries WHERE id = ?
	`
	q := &entity.UserQuery{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&q.ID, &q.Name, &q.Email, &q.Subject, &q.Message, &q.CreatedAt, &q.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *UserQueryRepository) List(ctx context.Context) ([]*entity.UserQuery, error) {
	query := `
		SELECT id, name, email, subject, message, created_at, updated_at
		FROM user_queries ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	queries := make([]*entity.UserQuery, 0)
	for rows.Next() {
		q := &entity.UserQuery{}
		if err := rows.Scan(&q.ID, &q.Name, &q.Email, &q.Subject, &q.Message, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return queries, nil
}

func (r *UserQueryRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.db, "user_queries", id)
}
