package types

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
)

type DeleteFileRequest struct {
	PublicID string `json:"publicId"`
}

type UploadResponse struct {
	URL         string `json:"url"`
	PublicID    string `json:"publicId"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

func NewDeleteFileRequestFromContext(ctx echo.Context) (*DeleteFileRequest, error) {
	var body DeleteFileRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *DeleteFileRequest) Validate() error {
	if strings.TrimSpace(r.PublicID) == "" {
		return errors.New("publicId is required")
	}

	return nil
}
