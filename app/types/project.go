package types

import (
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type ProjectBlob struct {
	ProjectIntro string `json:"projectIntro,omitempty"`
	GithubLink   string `json:"githubLink,omitempty"`
	DocumentLink string `json:"documentLink,omitempty"`
	LiveLink     string `json:"liveLink,omitempty"`
}

type CreateProjectRequest struct {
	Domain      string       `json:"domain"`
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	Skills      []string     `json:"skills"`
	Images      []string     `json:"images"`
	Blob        *ProjectBlob `json:"blob"`
	UserID      *string      `json:"userId"`
}

type UpdateProjectRequest struct {
	ID          string       `param:"id" json:"-"`
	Domain      *string      `json:"domain"`
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	Skills      *[]string    `json:"skills"`
	Images      *[]string    `json:"images"`
	Blob        *ProjectBlob `json:"blob"`
	UserID      *string      `json:"userId"`
}

type ProjectResponse struct {
	ID          string      `json:"id"`
	Domain      string      `json:"domain"`
	Name        string      `json:"name"`
	Description *string     `json:"description"`
	Skills      []string    `json:"skills"`
	Images      []string    `json:"images"`
	Blob        ProjectBlob `json:"blob"`
	UserID      *string     `json:"userId"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func NewCreateProjectRequestFromContext(ctx echo.Context) (*CreateProjectRequest, error) {
	var body CreateProjectRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *CreateProjectRequest) Validate() error {
	if strings.TrimSpace(r.Domain) == "" || strings.TrimSpace(r.Name) == "" {
		return errors.New("domain and name are required")
	}
	if r.Blob != nil {
		if err := r.Blob.validate(); err != nil {
			return err
		}
	}

	return nil
}

func NewUpdateProjectRequestFromContext(ctx echo.Context) (*UpdateProjectRequest, error) {
	var body UpdateProjectRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *UpdateProjectRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("id is required")
	}
	if r.Domain != nil && strings.TrimSpace(*r.Domain) == "" {
		return errors.New("domain must not be empty")
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("name must not be empty")
	}
	if r.Blob != nil {
		if err := r.Blob.validate(); err != nil {
			return err
		}
	}

	return nil
}

func (b *ProjectBlob) validate() error {
	links := map[string]string{
		"blob.githubLink":   b.GithubLink,
		"blob.documentLink": b.DocumentLink,
		"blob.liveLink":     b.LiveLink,
	}
	for field, link := range links {
		if link == "" {
			continue
		}
		if err := validateURL(field, link); err != nil {
			return err
		}
	}

	return nil
}
