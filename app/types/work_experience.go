package types

import (
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type CreateWorkExperienceRequest struct {
	CompanyName string   `json:"companyName"`
	Title       string   `json:"title"`
	Location    *string  `json:"location"`
	StartDate   *Date    `json:"startDate"`
	EndDate     *Date    `json:"endDate"`
	Description *string  `json:"description"`
	Points      []string `json:"points"`
	UserID      *string  `json:"userId"`
}

type UpdateWorkExperienceRequest struct {
	ID          string    `param:"id" json:"-"`
	CompanyName *string   `json:"companyName"`
	Title       *string   `json:"title"`
	Location    *string   `json:"location"`
	StartDate   *Date     `json:"startDate"`
	EndDate     *Date     `json:"endDate"`
	Description *string   `json:"description"`
	Points      *[]string `json:"points"`
	UserID      *string   `json:"userId"`
}

// WorkExperienceResponse has a nil EndDate for the current position.
type WorkExperienceResponse struct {
	ID          string     `json:"id"`
	CompanyName string     `json:"companyName"`
	Title       string     `json:"title"`
	Location    *string    `json:"location"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Description *string    `json:"description"`
	Points      []string   `json:"points"`
	UserID      *string    `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func NewCreateWorkExperienceRequestFromContext(ctx echo.Context) (*CreateWorkExperienceRequest, error) {
	var body CreateWorkExperienceRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *CreateWorkExperienceRequest) Validate() error {
	if strings.TrimSpace(r.CompanyName) == "" || strings.TrimSpace(r.Title) == "" {
		return errors.New("companyName and title are required")
	}
	if r.StartDate == nil {
		return errors.New("startDate is required")
	}

	return validateDateRange(r.StartDate, r.EndDate)
}

func NewUpdateWorkExperienceRequestFromContext(ctx echo.Context) (*UpdateWorkExperienceRequest, error) {
	var body UpdateWorkExperienceRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *UpdateWorkExperienceRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("id is required")
	}
	if r.CompanyName != nil && strings.TrimSpace(*r.CompanyName) == "" {
		return errors.New("companyName must not be empty")
	}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errors.New("title must not be empty")
	}

	return validateDateRange(r.StartDate, r.EndDate)
}
