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

type EducationController struct {
	educationService service.EducationService
}

func NewEducationController(educationService service.EducationService) *EducationController {
	return &EducationController{educationService: educationService}
}

func (c *EducationController) Create(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return dto.Error(ctx, http.StatusUnauthorized, msgUnauthorized)
	}

	req, err := types.NewCreateEducationRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind create education request")
		return dto.Error(ctx, http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err = req.Validate(); err != nil {
		return dto.Error(ctx, http.StatusBadRequest, err.Error())
	}

	education, err := c.educationService.Create(ctx.Request().Context(), userID, req)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Create education failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":      userID,
		"education_id": education.ID,
	}).Info("Education created")
	return dto.Success(ctx, http.StatusCreated, education, msgEducationCreated)
}

func (c *EducationController) List(ctx echo.Context) error {
	educations, err := c.educationService.List(ctx.Request().Context())
	if err != nil {
		logrus.WithError(err).Error("List education failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	return dto.Success(ctx, http.StatusOK, educations, msgEducationListed)
}

func (c *EducationController) ListByUser(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return dto.Error(ctx, http.StatusUnauthorized, msgUnauthorized)
	}

	educations, err := c.educationService.ListByUser(ctx.Request().Context(), userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("List education by user failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	return dto.Success(ctx, http.StatusOK, educations, msgEducationListed)
}

func (c *EducationController) Get(ctx echo.Context) error {
	id := ctx.Param("id")
	education, err := c.educationService.Get(ctx.Request().Context(), id)
	if err != nil {
		return c.failure(ctx, id, "Get education failed", err)
	}

	return dto.Success(ctx, http.StatusOK, education, msgEducationFound)
}

func (c *EducationController) Update(ctx echo.Context) error {
	req, err := types.NewUpdateEducationRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind update education request")
		return dto.Error(ctx, http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err = req.Validate(); err != nil {
		return dto.Error(ctx, http.StatusBadRequest, err.Error())
	}

	education, err := c.educationService.Update(ctx.Request().Context(), req)
	if err != nil {
		return c.failure(ctx, req.ID, "Update education failed", err)
	}

	logrus.WithField("education_id", education.ID).Info("Education updated")
	return dto.Success(ctx, http.StatusOK, education, msgEducationUpdated)
}

func (c *EducationController) Delete(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := c.educationService.Delete(ctx.Request().Context(), id); err != nil {
		return c.failure(ctx, id, "Delete education failed", err)
	}

	logrus.WithField("education_id", id).Info("Education deleted")
	return dto.Success(ctx, http.StatusOK, nil, msgEducationDeleted)
}

func (c *EducationController) failure(ctx echo.Context, id, message string, err error) error {
	if errors.Is(err, service.ErrEducationNotFound) {
		logrus.WithField("education_id", id).Debug(message + ": not found")
		return dto.Error(ctx, http.StatusNotFound, msgEducationNotFound)
	}
	if errors.Is(err, service.ErrInvalidDateRange) {
		return dto.Error(ctx, http.StatusBadRequest, err.Error())
	}
	logrus.WithError(err).WithField("education_id", id).Error(message)
	return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
}
