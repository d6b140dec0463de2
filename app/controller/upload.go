package controller

import (
	"errors"
	"net/http"

	"github.com/vibast-solutions/ms-go-portfolio/app/dto"
	"github.com/vibast-solutions/ms-go-portfolio/app/service"
	"github.com/vibast-solutions/ms-go-portfolio/app/types"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type UploadController struct {
	uploadService service.UploadService
}

func NewUploadController(uploadService service.UploadService) *UploadController {
	return &UploadController{uploadService: uploadService}
}

func (c *UploadController) UploadFile(ctx echo.Context) error {
	header, file, err := openFormFile(ctx, "file")
	if err != nil {
		logrus.WithError(err).Debug("Upload request without file")
		return dto.Error(ctx, http.StatusBadRequest, msgFileRequired)
	}
	defer file.Close()

	folder := ctx.FormValue("folder")
	logger := logrus.WithFields(logrus.Fields{
		"folder":   folder,
		"filename": header.Filename,
		"size":     header.Size,
	})
	if userID, ok := currentUserID(ctx); ok {
		logger = logger.WithField("user_id", userID)
	}
	logger.Info("Upload request received")

	result, err := c.uploadService.Upload(
		ctx.Request().Context(),
		folder,
		header.Filename,
		header.Header.Get(echo.HeaderContentType),
		header.Size,
		file,
	)
	if err != nil {
		if isUploadRejection(err) {
			logger.WithError(err).Debug("Upload rejected")
			return dto.Error(ctx, http.StatusBadRequest, err.Error())
		}
		logger.WithError(err).Error("Upload failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	logger.WithField("public_id", result.PublicID).Info("File uploaded")
	return dto.Success(ctx, http.StatusCreated, result, msgFileUploaded)
}

func (c *UploadController) DeleteFile(ctx echo.Context) error {
	req, err := types.NewDeleteFileRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind delete file request")
		return dto.Error(ctx, http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err = req.Validate(); err != nil {
		return dto.Error(ctx, http.StatusBadRequest, err.Error())
	}

	if err = c.uploadService.Delete(ctx.Request().Context(), req.PublicID); err != nil {
		if errors.Is(err, service.ErrInvalidPublicID) {
			logrus.WithField("public_id", req.PublicID).Warn("Delete file failed: invalid public id")
			return dto.Error(ctx, http.StatusBadRequest, err.Error())
		}
		logrus.WithError(err).WithField("public_id", req.PublicID).Error("Delete file failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	logrus.WithField("public_id", req.PublicID).Info("File deleted")
	return dto.Success(ctx, http.StatusOK, nil, msgFileDeleted)
}

// isUploadRejection reports upload failures caused by the client's input.
func isUploadRejection(err error) bool {
	return errors.Is(err, service.ErrEmptyFile) ||
		errors.Is(err, service.ErrFileTooLarge) ||
		errors.Is(err, service.ErrUnsupportedFileType) ||
		errors.Is(err, service.ErrInvalidFolder) ||
		errors.Is(err, service.ErrInvalidPublicID)
}
