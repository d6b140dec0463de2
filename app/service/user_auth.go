package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/vibast-solutions/ms-go-portfolio/app/entity"
	"github.com/vibast-solutions/ms-go-portfolio/app/mail"
	"github.com/vibast-solutions/ms-go-portfolio/app/types"
	"github.com/vibast-solutions/ms-go-portfolio/config"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrWeakPassword       = errors.New("password does not meet policy requirements")
)

const resetTokenBytes = 32

type userRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindWithActiveResetToken(ctx context.Context, now time.Time) ([]*entity.User, error)
	UpdateSessionTokens(ctx context.Context, userID, accessToken, refreshTokenHash string) error
	SetResetToken(ctx context.Context, userID, resetTokenHash string, expiresAt time.Time) error
	CompletePasswordReset(ctx context.Context, userID, passwordHash string) error
	UpdateProfile(ctx context.Context, user *entity.User) error
}

type mailQueue interface {
	Enqueue(ctx context.Context, name string, payload interface{}) (*mail.Job, error)
}

type UserAuthService interface {
	Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error)
	ForgotPassword(ctx context.Context, req *types.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *types.ResetPasswordRequest) error
	RefreshToken(ctx context.Context, req *types.RefreshTokenRequest) (*types.RefreshTokenResponse, error)
	GetUserDetails(ctx context.Context, userID string) (*types.UserProfile, error)
	UpdateUserDetails(ctx context.Context, userID string, req *types.UpdateUserRequest) (*types.UserProfile, error)
	CreateUser(ctx context.Context, email, password, firstName, lastName string) (*types.UserProfile, error)
	SendWelcomeEmail(ctx context.Context, userID string) error
	ValidateAccessToken(tokenString string) (*Claims, error)
}

type UserAuthServiceOption func(*userAuthService)

type userAuthService struct {
	userRepo userRepository
	tokens   *TokenService
	queue    mailQueue
	cfg      *config.Config
	now      func() time.Time
}

func NewUserAuthService(
	userRepo userRepository,
	tokens *TokenService,
	queue mailQueue,
	cfg *config.Config,
	opts ...UserAuthServiceOption,
) UserAuthService {
	svc := &userAuthService{
		userRepo: userRepo,
		tokens:   tokens,
		queue:    queue,
		cfg:      cfg,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func WithClock(now func() time.Time) UserAuthServiceOption {
	return func(s *userAuthService) {
		if now != nil {
			s.now = now
		}
	}
}

func (s *userAuthService) Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error) {
	if err := s.cfg.Password.Policy.Validate(req.Password); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issueAndStore(ctx, user)
	if err != nil {
		return nil, err
	}

	return &types.LoginResponse{
		User: types.UserSummary{
			ID:        user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
		},
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// ForgotPassword returns nil for unknown emails so callers cannot probe for
// registered addresses.
func (s *userAuthService) ForgotPassword(ctx context.Context, req *types.ForgotPasswordRequest) error {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if user == nil {
		logrus.WithField("email", req.Email).Info("password reset requested for unknown email")
		return nil
	}

	resetToken, err := generateResetToken()
	if err != nil {
		return err
	}

	resetHash, err := HashToken(resetToken, s.bcryptCost())
	if err != nil {
		return err
	}

	if err = s.userRepo.SetResetToken(ctx, user.ID, resetHash, s.now().Add(s.cfg.Tokens.ResetTTL)); err != nil {
		return err
	}

	_, err = s.queue.Enqueue(ctx, mail.JobPasswordReset, mail.PasswordResetPayload{
		Email:      user.Email,
		UserName:   user.DisplayName(),
		ResetToken: resetToken,
	})
	return err
}

func (s *userAuthService) ResetPassword(ctx context.Context, req *types.ResetPasswordRequest) error {
	if err := s.cfg.Password.Policy.Validate(req.NewPassword); err != nil {
		return fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	now := s.now()
	candidates, err := s.userRepo.FindWithActiveResetToken(ctx, now)
	if err != nil {
		return err
	}

	var user *entity.User
	for _, candidate := range candidates {
		if !candidate.ResetTokenHash.Valid || !candidate.ResetTokenExpiresAt.Valid {
			continue
		}
		if candidate.ResetTokenExpiresAt.Time.Before(now) {
			continue
		}
		if CompareToken(candidate.ResetTokenHash.String, req.Token) {
			user = candidate
			break
		}
	}
	if user == nil {
		return ErrInvalidResetToken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost())
	if err != nil {
		return err
	}

	if err = s.userRepo.CompletePasswordReset(ctx, user.ID, string(hashedPassword)); err != nil {
		return err
	}

	_, err = s.queue.Enqueue(ctx, mail.JobPasswordResetConfirmation, mail.PasswordResetConfirmationPayload{
		Email:    user.Email,
		UserName: user.DisplayName(),
	})
	return err
}

// RefreshToken rotates the session: the presented token stops being valid as
// soon as the new hash is stored.
func (s *userAuthService) RefreshToken(ctx context.Context, req *types.RefreshTokenRequest) (*types.RefreshTokenResponse, error) {
	claims, err := s.tokens.VerifyRefresh(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID())
	if err != nil {
		logrus.WithError(err).WithField("user_id", claims.UserID()).Error("failed to load user for refresh")
		return nil, ErrInvalidToken
	}
	if user == nil || !user.RefreshTokenHash.Valid {
		return nil, ErrInvalidToken
	}

	if !CompareToken(user.RefreshTokenHash.String, req.RefreshToken) {
		return nil, ErrInvalidToken
	}

	pair, err := s.issueAndStore(ctx, user)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to rotate refresh token")
		return nil, ErrInvalidToken
	}

	return &types.RefreshTokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

func (s *userAuthService) GetUserDetails(ctx context.Context, userID string) (*types.UserProfile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return toUserProfile(user), nil
}

func (s *userAuthService) UpdateUserDetails(ctx context.Context, userID string, req *types.UpdateUserRequest) (*types.UserProfile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	applyProfileUpdate(user, req)

	if err = s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	updated, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}

	return toUserProfile(updated), nil
}

func (s *userAuthService) CreateUser(ctx context.Context, email, password, firstName, lastName string) (*types.UserProfile, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	if err = s.cfg.Password.Policy.Validate(password); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost())
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &entity.User{
		ID:             uuid.New().String(),
		Email:          email,
		PasswordHash:   string(hashedPassword),
		FirstName:      firstName,
		LastName:       lastName,
		FullName:       sql.NullString{String: firstName + " " + lastName, Valid: true},
		Tags:           entity.StringList{},
		BeyondCodeTags: entity.StringList{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err = s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserProfile(user), nil
}

func (s *userAuthService) SendWelcomeEmail(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	_, err = s.queue.Enqueue(ctx, mail.JobWelcome, mail.WelcomePayload{
		Email:    user.Email,
		UserName: user.DisplayName(),
	})
	return err
}

func (s *userAuthService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.VerifyAccess(tokenString)
}

// issueAndStore signs a new pair and persists the access token together with
// the refresh token hash in one statement.
func (s *userAuthService) issueAndStore(ctx context.Context, user *entity.User) (*TokenPair, error) {
	pair, err := s.tokens.IssueTokens(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	refreshHash, err := HashToken(pair.RefreshToken, s.bcryptCost())
	if err != nil {
		return nil, err
	}

	if err = s.userRepo.UpdateSessionTokens(ctx, user.ID, pair.AccessToken, refreshHash); err != nil {
		return nil, err
	}

	return pair, nil
}

func (s *userAuthService) bcryptCost() int {
	if s.cfg.Password.BcryptCost < bcrypt.MinCost || s.cfg.Password.BcryptCost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return s.cfg.Password.BcryptCost
}

func generateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func applyProfileUpdate(user *entity.User, req *types.UpdateUserRequest) {
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.FullName != nil {
		user.FullName = nullString(*req.FullName)
	}
	if req.Tags != nil {
		user.Tags = entity.StringList(*req.Tags)
	}
	if req.Description != nil {
		user.Description = nullString(*req.Description)
	}
	if req.ProfileImageURL != nil {
		user.ProfileImageURL = nullString(*req.ProfileImageURL)
	}
	if req.ProfileImagePublicID != nil {
		user.ProfileImagePublicID = nullString(*req.ProfileImagePublicID)
	}
	if req.BeyondCode != nil {
		user.BeyondCode = nullString(*req.BeyondCode)
	}
	if req.BeyondCodeTags != nil {
		user.BeyondCodeTags = entity.StringList(*req.BeyondCodeTags)
	}
}

func toUserProfile(user *entity.User) *types.UserProfile {
	return &types.UserProfile{
		ID:                   user.ID,
		Email:                user.Email,
		FirstName:            user.FirstName,
		LastName:             user.LastName,
		FullName:             stringPtr(user.FullName),
		Tags:                 nonNil(user.Tags),
		Description:          stringPtr(user.Description),
		ProfileImageURL:      stringPtr(user.ProfileImageURL),
		ProfileImagePublicID: stringPtr(user.ProfileImagePublicID),
		BeyondCode:           stringPtr(user.BeyondCode),
		BeyondCodeTags:       nonNil(user.BeyondCodeTags),
		CreatedAt:            user.CreatedAt,
		UpdatedAt:            user.UpdatedAt,
	}
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func stringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
