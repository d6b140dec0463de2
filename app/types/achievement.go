package types

import (
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type CreateAchievementRequest struct {
	Title         string  `json:"title"`
	Subtitle      *string `json:"subtitle"`
	Description   *string `json:"description"`
	Date          *Date   `json:"date"`
	ImageURL      *string `json:"imageUrl"`
	ImagePublicID *string `json:"imagePublicId"`
	UserID        *string `json:"userId"`
}

type UpdateAchievementRequest struct {
	ID            string  `param:"id" json:"-"`
	Title         *string `json:"title"`
	Subtitle      *string `json:"subtitle"`
	Description   *string `json:"description"`
	Date          *Date   `json:"date"`
	ImageURL      *string `json:"imageUrl"`
	ImagePublicID *string `json:"imagePublicId"`
	UserID        *string `json:"userId"`
}

type AchievementResponse struct {
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

func NewCreateAchievementRequestFromContext(ctx echo.Context) (*CreateAchievementRequest, error) {
	var body CreateAchievementRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *CreateAchievementRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	if r.Date == nil {
		return errors.New("date is required")
	}

	return validateOptionalURL("imageUrl", r.ImageURL)
}

func NewUpdateAchievementRequestFromContext(ctx echo.Context) (*UpdateAchievementRequest, error) {
	var body UpdateAchievementRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *UpdateAchievementRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("id is required")
	}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errors.New("title must not be empty")
	}

	return validateOptionalURL("imageUrl", r.ImageURL)
}
