package types

import (
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type CreateUserQueryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type UserQueryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewCreateUserQueryRequestFromContext(ctx echo.Context) (*CreateUserQueryRequest, error) {
	var body CreateUserQueryRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *CreateUserQueryRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Email) == "" ||
		strings.TrimSpace(r.Subject) == "" || strings.TrimSpace(r.Message) == "" {
		return errors.New("name, email, subject and message are required")
	}
	if len(r.Subject) > 255 {
		return errors.New("subject must not exceed 255 characters")
	}

	return validateEmail(r.Email)
}
