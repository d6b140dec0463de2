package types

import (
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

var timelineTypes = map[string]bool{
	"EXPERIENCE":  true,
	"EDUCATION":   true,
	"ACHIEVEMENT": true,
	"PROJECT":     true,
	"OTHER":       true,
}

type CreateTimelineRequest struct {
	Title       string   `json:"title"`
	SubTitle    *string  `json:"subTitle"`
	Type        string   `json:"type"`
	StartDate   *Date    `json:"startDate"`
	EndDate     *Date    `json:"endDate"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	Skills      []string `json:"skills"`
	UserID      *string  `json:"userId"`
}

type UpdateTimelineRequest struct {
	ID          string    `param:"id" json:"-"`
	Title       *string   `json:"title"`
	SubTitle    *string   `json:"subTitle"`
	Type        *string   `json:"type"`
	StartDate   *Date     `json:"startDate"`
	EndDate     *Date     `json:"endDate"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	Skills      *[]string `json:"skills"`
	UserID      *string   `json:"userId"`
}

type TimelineResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	SubTitle    *string    `json:"subTitle"`
	Type        string     `json:"type"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Description *string    `json:"description"`
	Tags        []string   `json:"tags"`
	Skills      []string   `json:"skills"`
	UserID      *string    `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func NewCreateTimelineRequestFromContext(ctx echo.Context) (*CreateTimelineRequest, error) {
	var body CreateTimelineRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *CreateTimelineRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	if err := validateTimelineType(r.Type); err != nil {
		return err
	}
	if r.StartDate == nil {
		return errors.New("startDate is required")
	}

	return validateDateRange(r.StartDate, r.EndDate)
}

func NewUpdateTimelineRequestFromContext(ctx echo.Context) (*UpdateTimelineRequest, error) {
	var body UpdateTimelineRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *UpdateTimelineRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("id is required")
	}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errors.New("title must not be empty")
	}
	if r.Type != nil {
		if err := validateTimelineType(*r.Type); err != nil {
			return err
		}
	}

	return validateDateRange(r.StartDate, r.EndDate)
}

func validateTimelineType(value string) error {
	if !timelineTypes[value] {
		return errors.New("type must be one of EXPERIENCE, EDUCATION, ACHIEVEMENT, PROJECT or OTHER")
	}
	return nil
}
