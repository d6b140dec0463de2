package types

import (
	"errors"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// UpdateUserRequest is a partial profile update; nil fields are left unchanged.
type UpdateUserRequest struct {
	FirstName            *string   `json:"firstName"`
	LastName             *string   `json:"lastName"`
	FullName             *string   `json:"fullName"`
	Tags                 *[]string `json:"tags"`
	Description          *string   `json:"description"`
	ProfileImageURL      *string   `json:"profileImageUrl"`
	ProfileImagePublicID *string   `json:"profileImagePublicId"`
	BeyondCode           *string   `json:"beyondCode"`
	BeyondCodeTags       *[]string `json:"beyondCodeTags"`
}

type UserSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type LoginResponse struct {
	User         UserSummary `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type UserProfile struct {
	ID                   string    `json:"id"`
	Email                string    `json:"email"`
	FirstName            string    `json:"firstName"`
	LastName             string    `json:"lastName"`
	FullName             *string   `json:"fullName"`
	Tags                 []string  `json:"tags"`
	Description          *string   `json:"description"`
	ProfileImageURL      *string   `json:"profileImageUrl"`
	ProfileImagePublicID *string   `json:"profileImagePublicId"`
	BeyondCode           *string   `json:"beyondCode"`
	BeyondCodeTags       []string  `json:"beyondCodeTags"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func NewLoginRequestFromContext(ctx echo.Context) (*LoginRequest, error) {
	var body LoginRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return errors.New("email and password are required")
	}

	return validateEmail(r.Email)
}

func NewForgotPasswordRequestFromContext(ctx echo.Context) (*ForgotPasswordRequest, error) {
	var body ForgotPasswordRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *ForgotPasswordRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}

	return validateEmail(r.Email)
}

func NewResetPasswordRequestFromContext(ctx echo.Context) (*ResetPasswordRequest, error) {
	var body ResetPasswordRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *ResetPasswordRequest) Validate() error {
	if strings.TrimSpace(r.Token) == "" || r.NewPassword == "" {
		return errors.New("token and newPassword are required")
	}

	return nil
}

func NewRefreshTokenRequestFromContext(ctx echo.Context) (*RefreshTokenRequest, error) {
	var body RefreshTokenRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *RefreshTokenRequest) Validate() error {
	if strings.TrimSpace(r.RefreshToken) == "" {
		return errors.New("refreshToken is required")
	}

	return nil
}

func NewUpdateUserRequestFromContext(ctx echo.Context) (*UpdateUserRequest, error) {
	var body UpdateUserRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *UpdateUserRequest) Validate() error {
	if r.FirstName != nil && strings.TrimSpace(*r.FirstName) == "" {
		return errors.New("firstName must not be empty")
	}
	if r.LastName != nil && strings.TrimSpace(*r.LastName) == "" {
		return errors.New("lastName must not be empty")
	}
	if r.ProfileImageURL != nil && *r.ProfileImageURL != "" {
		if err := validateURL("profileImageUrl", *r.ProfileImageURL); err != nil {
			return err
		}
	}

	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("email must be a valid email address")
	}

	return nil
}

func validateURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New(field + " must be a valid URL")
	}

	return nil
}
