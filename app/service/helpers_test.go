package service_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-portfolio/app/mail"
	"github.com/vibast-solutions/ms-go-portfolio/config"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"
)

var userColumns = []string{
	"id",
	"email",
	"password_hash",
	"first_name",
	"last_name",
	"full_name",
	"tags",
	"description",
	"profile_image_url",
	"profile_image_public_id",
	"beyond_code",
	"beyond_code_tags",
	"access_token",
	"refresh_token_hash",
	"reset_token_hash",
	"reset_token_expires_at",
	"created_at",
	"updated_at",
}

const (
	findUserByEmailQuery     = `(?s)SELECT id, email, password_hash, .+\s+FROM users WHERE email = \?`
	findUserByIDQuery        = `(?s)SELECT id, email, password_hash, .+\s+FROM users WHERE id = \?`
	findActiveResetQuery     = `(?s)SELECT id, email, .+\s+FROM users WHERE reset_token_hash IS NOT NULL AND reset_token_expires_at >= \?`
	insertUserQuery          = `(?s)INSERT INTO users \(id, email, password_hash,`
	updateSessionTokensQuery = `(?s)UPDATE users SET\s+access_token = \?,\s+refresh_token_hash = \?,\s+updated_at = \?\s+WHERE id = \?`
	setResetTokenQuery       = `(?s)UPDATE users SET\s+reset_token_hash = \?,\s+reset_token_expires_at = \?,\s+updated_at = \?\s+WHERE id = \?`
	completeResetQuery       = `(?s)UPDATE users SET\s+password_hash = \?,\s+reset_token_hash = NULL,\s+reset_token_expires_at = NULL,\s+access_token = NULL,\s+refresh_token_hash = NULL,\s+updated_at = \?\s+WHERE id = \?`
	updateProfileQuery       = `(?s)UPDATE users SET\s+first_name = \?,.+WHERE id = \?`
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return db, mock, func() { _ = db.Close() }
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			FrontendURL: "https://portfolio.example.com",
			AdminEmail:  "admin@example.com",
		},
		JWT: config.JWTConfig{
			AccessSecret:    "access-secret",
			AccessTokenTTL:  15 * time.Minute,
			RefreshSecret:   "refresh-secret",
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
		Tokens: config.TokenConfig{
			ResetTTL: time.Hour,
		},
		Password: config.PasswordConfig{
			Policy:     config.DefaultPasswordPolicy(),
			BcryptCost: bcrypt.MinCost,
		},
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hashed)
}

type userRowOpts struct {
	refreshHash  interface{}
	resetHash    interface{}
	resetExpires interface{}
	publicID     interface{}
}

func userRows(id, email, passwordHash string, opts userRowOpts) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(userColumns).AddRow(
		id,
		email,
		passwordHash,
		"Ada",
		"Lovelace",
		"Ada Lovelace",
		[]byte(`[]`),
		nil,
		nil,
		opts.publicID,
		nil,
		[]byte(`[]`),
		nil,
		opts.refreshHash,
		opts.resetHash,
		opts.resetExpires,
		now,
		now,
	)
}

// captureString matches any string argument and records it.
type captureString struct {
	value *string
}

func (c captureString) Match(v driver.Value) bool {
	s, ok := v.(string)
	if ok {
		*c.value = s
	}
	return ok
}

// captureTime matches any time argument and records it.
type captureTime struct {
	value *time.Time
}

func (c captureTime) Match(v driver.Value) bool {
	ts, ok := v.(time.Time)
	if ok {
		*c.value = ts
	}
	return ok
}

type queuedJob struct {
	name    string
	payload interface{}
}

type fakeQueue struct {
	jobs []queuedJob
	err  error
}

func (q *fakeQueue) Enqueue(_ context.Context, name string, payload interface{}) (*mail.Job, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.jobs = append(q.jobs, queuedJob{name: name, payload: payload})
	return &mail.Job{ID: "job-" + name, Name: name}, nil
}
