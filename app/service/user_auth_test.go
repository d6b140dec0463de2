package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-portfolio/app/mail"
	"github.com/vibast-solutions/ms-go-portfolio/app/repository"
	"github.com/vibast-solutions/ms-go-portfolio/app/service"
	"github.com/vibast-solutions/ms-go-portfolio/app/types"
	"github.com/vibast-solutions/ms-go-portfolio/config"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"
)

const validPassword = "Secret1@"

func newUserAuthService(t *testing.T, cfg *config.Config) (service.UserAuthService, sqlmock.Sqlmock, *fakeQueue) {
	t.Helper()

	db, mock, cleanup := newMockDB(t)
	t.Cleanup(cleanup)

	queue := &fakeQueue{}
	svc := service.NewUserAuthService(
		repository.NewUserRepository(db),
		service.NewTokenService(cfg.JWT),
		queue,
		cfg,
	)
	return svc, mock, queue
}

func TestUserAuthService_LoginSuccessStoresRefreshHash(t *testing.T) {
	cfg := testConfig()
	svc, mock, _ := newUserAuthService(t, cfg)

	mock.ExpectQuery(findUserByEmailQuery).
		WithArgs("ada@example.com").
		WillReturnRows(userRows("u-1", "ada@example.com", hashPassword(t, validPassword), userRowOpts{}))

	var storedAccess, storedHash string
	mock.ExpectExec(updateSessionTokensQuery).
		WithArgs(captureString{&storedAccess}, captureString{&storedHash}, sqlmock.AnyArg(), "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := svc.Login(context.Background(), &types.LoginRequest{Email: "ada@example.com", Password: validPassword})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.User.ID != "u-1" || res.User.Email != "ada@example.com" || res.User.FirstName != "Ada" {
		t.Fatalf("unexpected user summary: %+v", res.User)
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		t.Fatalf("expected token pair")
	}
	if storedAccess != res.AccessToken {
		t.Fatalf("expected stored access token to match issued token")
	}
	if storedHash == res.RefreshToken {
		t.Fatalf("refresh token stored in plaintext")
	}
	if !service.CompareToken(storedHash, res.RefreshToken) {
		t.Fatalf("stored hash does not verify the issued refresh token")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	cfg := testConfig()
	svc, mock, _ := newUserAuthService(t, cfg)

	mock.ExpectQuery(findUserByEmailQuery).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns))
	mock.ExpectQuery(findUserByEmailQuery).
		WithArgs("ada@example.com").
		WillReturnRows(userRows("u-1", "ada@example.com", hashPassword(t, validPassword), userRowOpts{}))

	_, unknownErr := svc.Login(context.Background(), &types.LoginRequest{Email: "nobody@example.com", Password: validPassword})
	_, wrongErr := svc.Login(context.Background(), &types.LoginRequest{Email: "ada@example.com", Password: "Wrong1@pass"})

	if !errors.Is(unknownErr, service.ErrInvalidCredentials) || !errors.Is(wrongErr, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v and %v", unknownErr, wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("expected identical messages, got %q and %q", unknownErr, wrongErr)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserAuthService_LoginRejectsPolicyViolation(t *testing.T) {
	svc, mock, _ := newUserAuthService(t, testConfig())

	_, err := svc.Login(context.Background(), &types.LoginRequest{Email: "ada@example.com", Password: "short"})
	if !errors.Is(err, service.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if !strings.Contains(err.Error(), "at least 8 characters") {
		t.Fatalf("expected message to name the constraint, got %q", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserAuthService_RefreshRotatesToken(t *testing.T) {
	cfg := testConfig()
	svc, mock, _ := newUserAuthService(t, cfg)
	tokens := service.NewTokenService(cfg.JWT)

	pair, err := tokens.IssueTokens("u-1", "ada@example.com")
	if err != nil {
		t.Fatalf("issue tokens: %v", err)
	}
	originalHash, err := service.HashToken(pair.RefreshToken, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash token: %v", err)
	}

	mock.ExpectQuery(findUserByIDQuery).
		WithArgs("u-1").
		WillReturnRows(userRows("u-1", "ada@example.com", "hash", userRowOpts{refreshHash: originalHash}))
	var rotatedHash string
	mock.ExpectExec(updateSessionTokensQuery).
		WithArgs(sqlmock.AnyArg(), captureString{&rotatedHash}, sqlmock.AnyArg(), "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := svc.RefreshToken(context.Background(), &types.RefreshTokenRequest{RefreshToken: pair.RefreshToken})
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if res.RefreshToken == pair.RefreshToken || res.AccessToken == pair.AccessToken {
		t.Fatalf("expected a new token pair")
	}
	if !service.CompareToken(rotatedHash, res.RefreshToken) {
		t.Fatalf("stored hash does not match the new refresh token")
	}

	// the previous token no longer matches the stored hash
	mock.ExpectQuery(findUserByIDQuery).
		WithArgs("u-1").
		WillReturnRows(userRows("u-1", "ada@example.com", "hash", userRowOpts{refreshHash: rotatedHash}))

	if _, err = svc.RefreshToken(context.Background(), &types.RefreshTokenRequest{RefreshToken: pair.RefreshToken}); !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken on reuse, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserAuthService_RefreshFailures(t *testing.T) {
	cfg := testConfig()
	tokens := service.NewTokenService(cfg.JWT)
	pair, err := tokens.IssueTokens("u-1", "ada@example.com")
	if err != nil {
		t.Fatalf("issue tokens: %v", err)
	}

	t.Run("access token presented as refresh token", func(t *testing.T) {
		svc, mock, _ := newUserAuthService(t, cfg)
		if _, err := svc.RefreshToken(context.Background(), &types.RefreshTokenRequest{RefreshToken: pair.AccessToken}); !errors.Is(err, service.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet expectations: %v", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		svc, _, _ := newUserAuthService(t, cfg)
		if _, err := svc.RefreshToken(context.Background(), &types.RefreshTokenRequest{RefreshToken: "not-a-jwt"}); !errors.Is(err, service.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("no stored hash after password reset", func(t *testing.T) {
		svc, mock, _ := newUserAuthService(t, cfg)
		mock.ExpectQuery(findUserByIDQuery).
			WithArgs("u-1").
			WillReturnRows(userRows("u-1", "ada@example.com", "hash", userRowOpts{}))

		if _, err := svc.RefreshToken(context.Background(), &types.RefreshTokenRequest{RefreshToken: pair.RefreshToken}); !errors.Is(err, service.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet expectations: %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, mock, _ := newUserAuthService(t, cfg)
		mock.ExpectQuery(findUserByIDQuery).
			WithArgs("u-1").
			WillReturnRows(sqlmock.NewRows(userColumns))

		if _, err := svc.RefreshToken(context.Background(), &types.RefreshTokenRequest{RefreshToken: pair.RefreshToken}); !errors.Is(err, service.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("database error is reported as invalid token", func(t *testing.T) {
		svc, mock, _ := newUserAuthService(t, cfg)
		mock.ExpectQuery(findUserByIDQuery).
			WithArgs("u-1").
			WillReturnError(errors.New("connection reset"))

		if _, err := svc.RefreshToken(context.Background(), &types.RefreshTokenRequest{RefreshToken: pair.RefreshToken}); !errors.Is(err, service.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestUserAuthService_ForgotPasswordUnknownEmail(t *testing.T) {
	svc, mock, queue := newUserAuthService(t, testConfig())

	mock.ExpectQuery(findUserByEmailQuery).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns))

	if err := svc.ForgotPassword(context.Background(), &types.ForgotPasswordRequest{Email: "nobody@example.com"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(queue.jobs) != 0 {
		t.Fatalf("expected no job for unknown email, got %+v", queue.jobs)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserAuthService_ForgotPasswordEnqueuesResetEmail(t *testing.T) {
	cfg := testConfig()
	svc, mock, queue := newUserAuthService(t, cfg)

	mock.ExpectQuery(findUserByEmailQuery).
		WithArgs("ada@example.com").
		WillReturnRows(userRows("u-1", "ada@example.com", "hash", userRowOpts{}))

	var storedHash string
	var expiresAt time.Time
	mock.ExpectExec(setResetTokenQuery).
		WithArgs(captureString{&storedHash}, captureTime{&expiresAt}, sqlmock.AnyArg(), "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	before := time.Now()
	if err := svc.ForgotPassword(context.Background(), &types.ForgotPasswordRequest{Email: "ada@example.com"}); err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}

	if len(queue.jobs) != 1 || queue.jobs[0].name != mail.JobPasswordReset {
		t.Fatalf("expected one reset job, got %+v", queue.jobs)
	}
	payload, ok := queue.jobs[0].payload.(mail.PasswordResetPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", queue.jobs[0].payload)
	}
	if payload.Email != "ada@example.com" || payload.UserName != "Ada Lovelace" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if len(payload.ResetToken) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(payload.ResetToken))
	}
	if !service.CompareToken(storedHash, payload.ResetToken) {
		t.Fatalf("stored hash does not match the emailed token")
	}
	if expiresAt.Before(before.Add(time.Hour)) || expiresAt.After(time.Now().Add(time.Hour)) {
		t.Fatalf("expected expiry one hour from now, got %v", expiresAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserAuthService_ForgotPasswordQueueFailure(t *testing.T) {
	svc, mock, queue := newUserAuthService(t, testConfig())
	queue.err = errors.New("redis unavailable")

	mock.ExpectQuery(findUserByEmailQuery).
		WithArgs("ada@example.com").
		WillReturnRows(userRows("u-1", "ada@example.com", "hash", userRowOpts{}))
	mock.ExpectExec(setResetTokenQuery).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.ForgotPassword(context.Background(), &types.ForgotPasswordRequest{Email: "ada@example.com"}); err == nil {
		t.Fatalf("expected enqueue error to propagate")
	}
}

func TestUserAuthService_ResetPasswordSuccess(t *testing.T) {
	svc, mock, queue := newUserAuthService(t, testConfig())

	resetHash, err := service.HashToken("reset-token", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash token: %v", err)
	}
	otherHash, err := service.HashToken("other-token", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash token: %v", err)
	}
	expires := time.Now().Add(30 * time.Minute)

	rows := userRows("u-2", "grace@example.com", "hash", userRowOpts{resetHash: otherHash, resetExpires: expires})
	rows.AddRow("u-1", "ada@example.com", "hash", "Ada", "Lovelace", "Ada Lovelace", nil, nil, nil, nil, nil, nil, nil, nil, resetHash, expires, time.Now(), time.Now())
	mock.ExpectQuery(findActiveResetQuery).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(rows)

	var newPasswordHash string
	mock.ExpectExec(completeResetQuery).
		WithArgs(captureString{&newPasswordHash}, sqlmock.AnyArg(), "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.ResetPassword(context.Background(), &types.ResetPasswordRequest{Token: "reset-token", NewPassword: "Newpass1!"}); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(newPasswordHash), []byte("Newpass1!")) != nil {
		t.Fatalf("stored password hash does not match the new password")
	}
	if len(queue.jobs) != 1 || queue.jobs[0].name != mail.JobPasswordResetConfirmation {
		t.Fatalf("expected confirmation job, got %+v", queue.jobs)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserAuthService_ResetPasswordInvalidToken(t *testing.T) {
	svc, mock, queue := newUserAuthService(t, testConfig())

	otherHash, err := service.HashToken("other-token", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash token: %v", err)
	}
	mock.ExpectQuery(findActiveResetQuery).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(userRows("u-2", "grace@example.com", "hash", userRowOpts{resetHash: otherHash, resetExpires: time.Now().Add(time.Minute)}))

	err = svc.ResetPassword(context.Background(), &types.ResetPasswordRequest{Token: "reset-token", NewPassword: "Newpass1!"})
	if !errors.Is(err, service.ErrInvalidResetToken) {
		t.Fatalf("expected ErrInvalidResetToken, got %v", err)
	}
	if err.Error() != "invalid or expired reset token" {
		t.Fatalf("unexpected message %q", err)
	}
	if len(queue.jobs) != 0 {
		t.Fatalf("expected no jobs, got %+v", queue.jobs)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserAuthService_ResetPasswordExpiredToken(t *testing.T) {
	now := time.Now()
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	cfg := testConfig()
	svc := service.NewUserAuthService(
		repository.NewUserRepository(db),
		service.NewTokenService(cfg.JWT),
		&fakeQueue{},
		cfg,
		service.WithClock(func() time.Time { return now }),
	)

	resetHash, err := service.HashToken("reset-token", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash token: %v", err)
	}
	// a row that slipped past the query filter is still rejected
	mock.ExpectQuery(findActiveResetQuery).
		WithArgs(now).
		WillReturnRows(userRows("u-1", "ada@example.com", "hash", userRowOpts{resetHash: resetHash, resetExpires: now.Add(-time.Second)}))

	err = svc.ResetPassword(context.Background(), &types.ResetPasswordRequest{Token: "reset-token", NewPassword: "Newpass1!"})
	if !errors.Is(err, service.ErrInvalidResetToken) {
		t.Fatalf("expected ErrInvalidResetToken, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserAuthService_ResetPasswordWeakPassword(t *testing.T) {
	svc, mock, _ := newUserAuthService(t, testConfig())

	err := svc.ResetPassword(context.Background(), &types.ResetPasswordRequest{Token: "reset-token", NewPassword: "alllowercase1!"})
	if !errors.Is(err, service.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if !strings.Contains(err.Error(), "uppercase letter") {
		t.Fatalf("expected message to name the missing class, got %q", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserAuthService_GetUserDetails(t *testing.T) {
	svc, mock, _ := newUserAuthService(t, testConfig())

	mock.ExpectQuery(findUserByIDQuery).
		WithArgs("u-1").
		WillReturnRows(userRows("u-1", "ada@example.com", "hash", userRowOpts{}))
	mock.ExpectQuery(findUserByIDQuery).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(userColumns))

	profile, err := svc.GetUserDetails(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if profile.ID != "u-1" || profile.FullName == nil || *profile.FullName != "Ada Lovelace" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if profile.Tags == nil || profile.Description != nil {
		t.Fatalf("unexpected optional fields: %+v", profile)
	}

	if _, err = svc.GetUserDetails(context.Background(), "missing"); !errors.Is(err, service.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserAuthService_UpdateUserDetails(t *testing.T) {
	svc, mock, _ := newUserAuthService(t, testConfig())

	mock.ExpectQuery(findUserByIDQuery).
		WithArgs("u-1").
		WillReturnRows(userRows("u-1", "ada@example.com", "hash", userRowOpts{}))
	mock.ExpectExec(updateProfileQuery).
		WithArgs("Augusta", "Lovelace", "Ada Lovelace", `["math"]`, "Analyst", nil, nil, nil, "[]", sqlmock.AnyArg(), "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(findUserByIDQuery).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
			"u-1", "ada@example.com", "hash", "Augusta", "Lovelace", "Ada Lovelace",
			[]byte(`["math"]`), "Analyst", nil, nil, nil, nil, nil, nil, nil, nil, time.Now(), time.Now(),
		))

	firstName := "Augusta"
	description := "Analyst"
	tags := []string{"math"}
	profile, err := svc.UpdateUserDetails(context.Background(), "u-1", &types.UpdateUserRequest{
		FirstName:   &firstName,
		Description: &description,
		Tags:        &tags,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if profile.FirstName != "Augusta" || profile.Description == nil || *profile.Description != "Analyst" || len(profile.Tags) != 1 {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserAuthService_UpdateUserDetailsNotFound(t *testing.T) {
	svc, mock, _ := newUserAuthService(t, testConfig())

	mock.ExpectQuery(findUserByIDQuery).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(userColumns))

	if _, err := svc.UpdateUserDetails(context.Background(), "missing", &types.UpdateUserRequest{}); !errors.Is(err, service.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserAuthService_CreateUser(t *testing.T) {
	svc, mock, _ := newUserAuthService(t, testConfig())

	mock.ExpectQuery(findUserByEmailQuery).
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns))
	mock.ExpectExec(insertUserQuery).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(findUserByEmailQuery).
		WithArgs("ada@example.com").
		WillReturnRows(userRows("u-1", "ada@example.com", "hash", userRowOpts{}))

	profile, err := svc.CreateUser(context.Background(), "ada@example.com", validPassword, "Ada", "Lovelace")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if profile.ID == "" || profile.Email != "ada@example.com" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	if _, err = svc.CreateUser(context.Background(), "ada@example.com", validPassword, "Ada", "Lovelace"); !errors.Is(err, service.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserAuthService_SendWelcomeEmail(t *testing.T) {
	svc, mock, queue := newUserAuthService(t, testConfig())

	mock.ExpectQuery(findUserByIDQuery).
		WithArgs("u-1").
		WillReturnRows(userRows("u-1", "ada@example.com", "hash", userRowOpts{}))

	if err := svc.SendWelcomeEmail(context.Background(), "u-1"); err != nil {
		t.Fatalf("send welcome failed: %v", err)
	}
	if len(queue.jobs) != 1 || queue.jobs[0].name != mail.JobWelcome {
		t.Fatalf("expected welcome job, got %+v", queue.jobs)
	}
}
