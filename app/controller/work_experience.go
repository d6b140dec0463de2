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

type WorkExperienceController struct {
	workExperienceService service.WorkExperienceService
}

func NewWorkExperienceController(workExperienceService service.WorkExperienceService) *WorkExperienceController {
	return &WorkExperienceController{workExperienceService: workExperienceService}
}

func (c *WorkExperienceController) Create(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return dto.Error(ctx, http.StatusUnauthorized, msgUnauthorized)
	}

	req, err := types.NewCreateWorkExperienceRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind create work experience request")
		return dto.Error(ctx, http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err = req.Validate(); err != nil {
		return dto.Error(ctx, http.StatusBadRequest, err.Error())
	}

	experience, err := c.workExperienceService.Create(ctx.Request().Context(), userID, req)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Create work experience failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":            userID,
		"work_experience_id": experience.ID,
	}).Info("Work experience created")
	return dto.Success(ctx, http.StatusCreated, experience, msgWorkExperienceCreated)
}

func (c *WorkExperienceController) List(ctx echo.Context) error {
	experiences, err := c.workExperienceService.List(ctx.Request().Context())
	if err != nil {
		logrus.WithError(err).Error("List work experiences failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	return dto.Success(ctx, http.StatusOK, experiences, msgWorkExperienceListed)
}

// ListByUser lists the positions owned by the authenticated user.
func (c *WorkExperienceController) ListByUser(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return dto.Error(ctx, http.StatusUnauthorized, msgUnauthorized)
	}

	experiences, err := c.workExperienceService.ListByUser(ctx.Request().Context(), userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("List work experiences by user failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	return dto.Success(ctx, http.StatusOK, experiences, msgWorkExperienceListed)
}

func (c *WorkExperienceController) Get(ctx echo.Context) error {
	id := ctx.Param("id")
	experience, err := c.workExperienceService.Get(ctx.Request().Context(), id)
	if err != nil {
		return c.failure(ctx, id, "Get work experience failed", err)
	}

	return dto.Success(ctx, http.StatusOK, experience, msgWorkExperienceFound)
}

func (c *WorkExperienceController) Update(ctx echo.Context) error {
	req, err := types.NewUpdateWorkExperienceRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind update work experience request")
		return dto.Error(ctx, http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err = req.Validate(); err != nil {
		return dto.Error(ctx, http.StatusBadRequest, err.Error())
	}

	experience, err := c.workExperienceService.Update(ctx.Request().Context(), req)
	if err != nil {
		return c.failure(ctx, req.ID, "Update work experience failed", err)
	}

	logrus.WithField("work_experience_id", experience.ID).Info("Work experience updated")
	return dto.Success(ctx, http.StatusOK, experience, msgWorkExperienceUpdated)
}

func (c *WorkExperienceController) Delete(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := c.workExperienceService.Delete(ctx.Request().Context(), id); err != nil {
		return c.failure(ctx, id, "Delete work experience failed", err)
	}

	logrus.WithField("work_experience_id", id).Info("Work experience deleted")
	return dto.Success(ctx, http.StatusOK, nil, msgWorkExperienceDeleted)
}

func (c *WorkExperienceController) failure(ctx echo.Context, id, message string, err error) error {
	if errors.Is(err, service.ErrWorkExperienceNotFound) {
		logrus.WithField("work_experience_id", id).Debug(message + ": not found")
		return dto.Error(ctx, http.StatusNotFound, msgWorkExperienceNotFound)
	}
	if errors.Is(err, service.ErrInvalidDateRange) {
		return dto.Error(ctx, http.StatusBadRequest, err.Error())
	}
	logrus.WithError(err).WithField("work_experience_id", id).Error(message)
	return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
}
