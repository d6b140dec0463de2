// Package dto holds the response envelope shared by every HTTP endpoint.
package dto

import (
	"github.com/labstack/echo/v4"
)

type Response struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	StatusCode int         `json:"statusCode"`
}

func Success(ctx echo.Context, status int, data interface{}, message string) error {
	return ctx.JSON(status, Response{
		Success:    true,
		Data:       data,
		Message:    message,
		StatusCode: status,
	})
}

func Error(ctx echo.Context, status int, message string) error {
	return ctx.JSON(status, Response{
		Success:    false,
		Data:       nil,
		Message:    message,
		StatusCode: status,
	})
}
