package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-portfolio/app/entity"
)

const userColumns = `id, email, password_hash, first_name, last_name, full_name, tags, description,
		       profile_image_url, profile_image_public_id, beyond_code, beyond_code_tags,
		       access_token, refresh_token_hash, reset_token_hash, reset_token_expires_at, created_at, updated_at`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, first_name, last_name, full_name, tags, description,
			profile_image_url, profile_image_public_id, beyond_code, beyond_code_tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.FullName,
		user.Tags,
		user.Description,
		user.ProfileImageURL,
		user.ProfileImagePublicID,
		user.BeyondCode,
		user.BeyondCodeTags,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users WHERE email = ?
	`
	return r.findOne(ctx, query, email)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users WHERE id = ?
	`
	return r.findOne(ctx, query, id)
}

// FindWithActiveResetToken returns every user holding a reset token that has
// not expired at now.
func (r *UserRepository) FindWithActiveResetToken(ctx context.Context, now time.Time) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users WHERE reset_token_hash IS NOT NULL AND reset_token_expires_at >= ?
	`
	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*entity.User, 0)
	for rows.Next() {
		user, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *UserRepository) UpdateSessionTokens(ctx context.Context, userID, accessToken, refreshTokenHash string) error {
	query := `
		UPDATE users SET
			access_token = ?,
			refresh_token_hash = ?,
			updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query, accessToken, refreshTokenHash, time.Now(), userID)
	return err
}

func (r *UserRepository) SetResetToken(ctx context.Context, userID, resetTokenHash string, expiresAt time.Time) error {
	query := `
		UPDATE users SET
			reset_token_hash = ?,
			reset_token_expires_at = ?,
			updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query, resetTokenHash, expiresAt, time.Now(), userID)
	return err
}

// CompletePasswordReset stores the new password and clears the reset token and
// every session artifact in a single statement.
func (r *UserRepository) CompletePasswordReset(ctx context.Context, userID, passwordHash string) error {
	query := `
		UPDATE users SET
			password_hash = ?,
			reset_token_hash = NULL,
			reset_token_expires_at = NULL,
			access_token = NULL,
			refresh_token_hash = NULL,
			updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query, passwordHash, time.Now(), userID)
	return err
}

func (r *UserRepository) UpdateProfile(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET
			first_name = ?,
			last_name = ?,
			full_name = ?,
			tags = ?,
			description = ?,
			profile_image_url = ?,
			profile_image_public_id = ?,
			beyond_code = ?,
			beyond_code_tags = ?,
			updated_at = ?
		WHERE id = ?
	`
	user.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		user.FirstName,
		user.LastName,
		user.FullName,
		user.Tags,
		user.Description,
		user.ProfileImageURL,
		user.ProfileImagePublicID,
		user.BeyondCode,
		user.BeyondCodeTags,
		user.UpdatedAt,
		user.ID,
	)
	return err
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...interface{}) (*entity.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func scanUser(scan rowScanner) (*entity.User, error) {
	user := &entity.User{}
	if err := scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.FullName,
		&user.Tags,
		&user.Description,
		&user.ProfileImageURL,
		&user.ProfileImagePublicID,
		&user.BeyondCode,
		&user.BeyondCodeTags,
		&user.AccessToken,
		&user.RefreshTokenHash,
		&user.ResetTokenHash,
		&user.ResetTokenExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return user, nil
}
