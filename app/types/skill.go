package types

import (
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

var skillSections = map[string]bool{
	"LANGUAGES": true,
	"FRONTEND":  true,
	"BACKEND":   true,
	"DATABASE":  true,
	"DEVOPS":    true,
	"TOOLS":     true,
	"OTHER":     true,
}

type CreateSkillRequest struct {
	Name        string  `json:"name"`
	IconName    *string `json:"iconName"`
	Section     string  `json:"section"`
	IconLibrary *string `json:"iconLibrary"`
	UserID      *string `json:"userId"`
}

type UpdateSkillRequest struct {
	ID          string  `param:"id" json:"-"`
	Name        *string `json:"name"`
	IconName    *string `json:"iconName"`
	Section     *string `json:"section"`
	IconLibrary *string `json:"iconLibrary"`
	UserID      *string `json:"userId"`
}

type SkillResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	IconName    *string   `json:"iconName"`
	Section     string    `json:"section"`
	IconLibrary *string   `json:"iconLibrary"`
	UserID      *string   `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewCreateSkillRequestFromContext(ctx echo.Context) (*CreateSkillRequest, error) {
	var body CreateSkillRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *CreateSkillRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}

	return validateSection(r.Section)
}

func NewUpdateSkillRequestFromContext(ctx echo.Context) (*UpdateSkillRequest, error) {
	var body UpdateSkillRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *UpdateSkillRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("id is required")
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("name must not be empty")
	}
	if r.Section != nil {
		return validateSection(*r.Section)
	}

	return nil
}

func validateSection(section string) error {
	if !skillSections[section] {
		return errors.New("section must be one of LANGUAGES, FRONTEND, BACKEND, DATABASE, DEVOPS, TOOLS or OTHER")
	}
	return nil
}
