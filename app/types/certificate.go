package types

import (
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type CreateCertificateRequest struct {
	Title         string  `json:"title"`
	Subtitle      *string `json:"subtitle"`
	Description   *string `json:"description"`
	Date          *Date   `json:"date"`
	ImageURL      *string `json:"imageUrl"`
	ImagePublicID *string `json:"imagePublicId"`
	UserID        *string `json:"userId"`
}

type UpdateCertificateRequest struct {
	ID            string  `param:"id" json:"-"`
	Title         *string `json:"title"`
	Subtitle      *string `json:"subtitle"`
	Description   *string `json:"description"`
	Date          *Date   `json:"date"`
	ImageURL      *string `json:"imageUrl"`
	ImagePublicID *string `json:"imagePublicId"`
	UserID        *string `json:"userId"`
}

type CertificateResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Subtitle      *string   `json:"subtitle"`
	Description   *string   `json:"description"`
	Date          time.Time `json:"date"`
	ImageURL      *string   `json:"imageUrl"`
	ImagePublicID *string   `json:"imagePublicId"`
	UserID        *string   `json:"userId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewCreateCertificateRequestFromContext(ctx echo.Context) (*CreateCertificateRequest, error) {
	var body CreateCertificateRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *CreateCertificateRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	if r.Date == nil {
		return errors.New("date is required")
	}

	return validateOptionalURL("imageUrl", r.ImageURL)
}

func NewUpdateCertificateRequestFromContext(ctx echo.Context) (*UpdateCertificateRequest, error) {
	var body UpdateCertificateRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *UpdateCertificateRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("id is required")
	}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errors.New("title must not be empty")
	}

	return validateOptionalURL("imageUrl", r.ImageURL)
}
