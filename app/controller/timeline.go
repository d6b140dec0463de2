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

type TimelineController struct {
	timelineService service.TimelineService
}

func NewTimelineController(timelineService service.TimelineService) *TimelineController {
	return &TimelineController{timelineService: timelineService}
}

func (c *TimelineController) Create(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return dto.Error(ctx, http.StatusUnauthorized, msgUnauthorized)
	}

	req, err := types.NewCreateTimelineRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind create timeline item request")
		return dto.Error(ctx, http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err = req.Validate(); err != nil {
		return dto.Error(ctx, http.StatusBadRequest, err.Error())
	}

	entry, err := c.timelineService.Create(ctx.Request().Context(), userID, req)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Create timeline item failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":     userID,
		"timeline_id": entry.ID,
	}).Info("Timeline item created")
	return dto.Success(ctx, http.StatusCreated, entry, msgTimelineCreated)
}

func (c *TimelineController) List(ctx echo.Context) error {
	entries, err := c.timelineService.List(ctx.Request().Context())
	if err != nil {
		logrus.WithError(err).Error("List timeline items failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	return dto.Success(ctx, http.StatusOK, entries, msgTimelineListed)
}

func (c *TimelineController) ListByUser(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return dto.Error(ctx, http.StatusUnauthorized, msgUnauthorized)
	}

	entries, err := c.timelineService.ListByUser(ctx.Request().Context(), userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("List timeline items by user failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	return dto.Success(ctx, http.StatusOK, entries, msgTimelineListed)
}

func (c *TimelineController) Get(ctx echo.Context) error {
	id := ctx.Param("id")
	entry, err := c.timelineService.Get(ctx.Request().Context(), id)
	if err != nil {
		return c.failure(ctx, id, "Get timeline item failed", err)
	}

	return dto.Success(ctx, http.StatusOK, entry, msgTimelineFound)
}

func (c *TimelineController) Update(ctx echo.Context) error {
	req, err := types.NewUpdateTimelineRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind update timeline item request")
		return dto.Error(ctx, http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err = req.Validate(); err != nil {
		return dto.Error(ctx, http.StatusBadRequest, err.Error())
	}

	entry, err := c.timelineService.Update(ctx.Request().Context(), req)
	if err != nil {
		return c.failure(ctx, req.ID, "Update timeline item failed", err)
	}

	logrus.WithField("timeline_id", entry.ID).Info("Timeline item updated")
	return dto.Success(ctx, http.StatusOK, entry, msgTimelineUpdated)
}

func (c *TimelineController) Delete(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := c.timelineService.Delete(ctx.Request().Context(), id); err != nil {
		return c.failure(ctx, id, "Delete timeline item failed", err)
	}

	logrus.WithField("timeline_id", id).Info("Timeline item deleted")
	return dto.Success(ctx, http.StatusOK, nil, msgTimelineDeleted)
}

func (c *TimelineController) failure(ctx echo.Context, id, message string, err error) error {
	if errors.Is(err, service.ErrTimelineEntryNotFound) {
		logrus.WithField("timeline_id", id).Debug(message + ": not found")
		return dto.Error(ctx, http.StatusNotFound, msgTimelineNotFound)
	}
	if errors.Is(err, service.ErrInvalidDateRange) {
		return dto.Error(ctx, http.StatusBadRequest, err.Error())
	}
	logrus.WithError(err).WithField("timeline_id", id).Error(message)
	return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
}
