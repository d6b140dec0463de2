package controller_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-portfolio/app/dto"
	"github.com/vibast-solutions/ms-go-portfolio/app/mail"
	"github.com/vibast-solutions/ms-go-portfolio/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
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
	updateSessionTokensQuery = `(?s)UPDATE users SET\s+access_token = \?,\s+refresh_token_hash = \?,\s+updated_at = \?\s+WHERE id = \?`
	setResetTokenQuery       = `(?s)UPDATE users SET\s+reset_token_hash = \?,\s+reset_token_expires_at = \?,\s+updated_at = \?\s+WHERE id = \?`
	updateProfileQuery       = `(?s)UPDATE users SET\s+first_name = \?,.+WHERE id = \?`
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newTestQueue(t *testing.T) *mail.Queue {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mail.NewQueue(client, config.QueueConfig{Name: "mail-queue", Attempts: 3, Backoff: time.Second})
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
		Storage: config.StorageConfig{
			Bucket:         "portfolio",
			Region:         "us-east-1",
			PublicBaseURL:  "https://cdn.example.com",
			MaxUploadBytes: 1 << 20,
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

func userRow(id, email, passwordHash string, refreshHash interface{}) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(userColumns).AddRow(
		id, email, passwordHash, "Ada", "Lovelace", "Ada Lovelace",
		[]byte(`["go"]`), nil, nil, nil, nil, []byte(`[]`),
		nil, refreshHash, nil, nil, now, now,
	)
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newMultipartContext(t *testing.T, target, filename, contentType string, content []byte, fields map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if filename != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err = part.Write(content); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) dto.Response {
	t.Helper()

	var raw struct {
		dto.Response
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	if raw.StatusCode != rec.Code {
		t.Fatalf("envelope statusCode %d does not match HTTP status %d", raw.StatusCode, rec.Code)
	}
	if data != nil {
		if err := json.Unmarshal(raw.Data, data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return raw.Response
}
