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

type AchievementController struct {
	achievementService service.AchievementService
}

func NewAchievementController(achievementService service.AchievementService) *AchievementController {
	return &AchievementController{achievementService: achievementService}
}

func (c *AchievementController) Create(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return dto.Error(ctx, http.StatusUnauthorized, msgUnauthorized)
	}

	req, err := types.NewCreateAchievementRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind create achievement request")
		return dto.Error(ctx, http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err = req.Validate(); err != nil {
		return dto.Error(ctx, http.StatusBadRequest, err.Error())
	}

	achievement, err := c.achievementService.Create(ctx.Request().Context(), userID, req)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Create achievement failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":        userID,
		"achievement_id": achievement.ID,
	}).Info("Achievement created")
	return dto.Success(ctx, http.StatusCreated, achievement, msgAchievementCreated)
}

func (c *AchievementController) List(ctx echo.Context) error {
	achievements, err := c.achievementService.List(ctx.Request().Context())
	if err != nil {
		logrus.WithError(err).Error("List achievements failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	return dto.Success(ctx, http.StatusOK, achievements, msgAchievementListed)
}

func (c *AchievementController) ListByUser(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return dto.Error(ctx, http.StatusUnauthorized, msgUnauthorized)
	}

	achievements, err := c.achievementService.ListByUser(ctx.Request().Context(), userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("List achievements by user failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	return dto.Success(ctx, http.StatusOK, achievements, msgAchievementListed)
}

func (c *AchievementController) Get(ctx echo.Context) error {
	id := ctx.Param("id")
	achievement, err := c.achievementService.Get(ctx.Request().Context(), id)
	if err != nil {
		return c.failure(ctx, id, "Get achievement failed", err)
	}

	return dto.Success(ctx, http.StatusOK, achievement, msgAchievementFound)
}

func (c *AchievementController) Update(ctx echo.Context) error {
	req, err := types.NewUpdateAchievementRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind update achievement request")
		return dto.Error(ctx, http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err = req.Validate(); err != nil {
		return dto.Error(ctx, http.StatusBadRequest, err.Error())
	}

	achievement, err := c.achievementService.Update(ctx.Request().Context(), req)
	if err != nil {
		return c.failure(ctx, req.ID, "Update achievement failed", err)
	}

	logrus.WithField("achievement_id", achievement.ID).Info("Achievement updated")
	return dto.Success(ctx, http.StatusOK, achievement, msgAchievementUpdated)
}

func (c *AchievementController) Delete(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := c.achievementService.Delete(ctx.Request().Context(), id); err != nil {
		return c.failure(ctx, id, "Delete achievement failed", err)
	}

	logrus.WithField("achievement_id", id).Info("Achievement deleted")
	return dto.Success(ctx, http.StatusOK, nil, msgAchievementDeleted)
}

func (c *AchievementController) failure(ctx echo.Context, id, message string, err error) error {
	if errors.Is(err, service.ErrAchievementNotFound) {
		logrus.WithField("achievement_id", id).Debug(message + ": not found")
		return dto.Error(ctx, http.StatusNotFound, msgAchievementNotFound)
	}
	logrus.WithError(err).WithField("achievement_id", id).Error(message)
	return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
}
