package controller

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/vibast-solutions/ms-go-portfolio/app/dto"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// currentUserID returns the id set by the bearer middleware.
func currentUserID(ctx echo.Context) (string, bool) {
	userID, ok := ctx.Get("user_id").(string)
	return userID, ok && userID != ""
}

func openFormFile(ctx echo.Context, field string) (*multipart.FileHeader, multipart.File, error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		return nil, nil, err
	}
	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	return header, file, nil
}

// ErrorHandler renders framework errors (unknown routes, oversized bodies,
// panics recovered by middleware) in the response envelope.
func ErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := msgInternalError

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok && status < http.StatusInternalServerError {
			message = msg
		}
	}

	if status >= http.StatusInternalServerError {
		logrus.WithError(err).WithField("path", ctx.Request().URL.Path).Error("Unhandled error")
	}

	if writeErr := dto.Error(ctx, status, message); writeErr != nil {
		logrus.WithError(writeErr).Error("Failed to write error response")
	}
}
