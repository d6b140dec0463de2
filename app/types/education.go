package types

import (
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type CreateEducationRequest struct {
	Degree      string   `json:"degree"`
	CollegeName string   `json:"collegeName"`
	StartDate   *Date    `json:"startDate"`
	EndDate     *Date    `json:"endDate"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	UserID      *string  `json:"userId"`
}

type UpdateEducationRequest struct {
	ID          string    `param:"id" json:"-"`
	Degree      *string   `json:"degree"`
	CollegeName *string   `json:"collegeName"`
	StartDate   *Date     `json:"startDate"`
	EndDate     *Date     `json:"endDate"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	UserID      *string   `json:"userId"`
}

type EducationResponse struct {
	ID          string     `json:"id"`
	Degree      string     `json:"degree"`
	CollegeName string     `json:"collegeName"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Description *string    `json:"description"`
	Tags        []string   `json:"tags"`
	UserID      *string    `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func NewCreateEducationRequestFromContext(ctx echo.Context) (*CreateEducationRequest, error) {
	var body CreateEducationRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *CreateEducationRequest) Validate() error {
	if strings.TrimSpace(r.Degree) == "" || strings.TrimSpace(r.CollegeName) == "" {
		return errors.New("degree and collegeName are required")
	}
	if r.StartDate == nil {
		return errors.New("startDate is required")
	}

	return validateDateRange(r.StartDate, r.EndDate)
}

func NewUpdateEducationRequestFromContext(ctx echo.Context) (*UpdateEducationRequest, error) {
	var body UpdateEducationRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *UpdateEducationRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("id is required")
	}
	if r.Degree != nil && strings.TrimSpace(*r.Degree) == "" {
		return errors.New("degree must not be empty")
	}
	if r.CollegeName != nil && strings.TrimSpace(*r.CollegeName) == "" {
		return errors.New("collegeName must not be empty")
	}

	return validateDateRange(r.StartDate, r.EndDate)
}
