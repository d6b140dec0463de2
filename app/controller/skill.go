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

type SkillController struct {
	skillService service.SkillService
}

func NewSkillController(skillService service.SkillService) *SkillController {
	return &SkillController{skillService: skillService}
}

func (c *SkillController) Create(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return dto.Error(ctx, http.StatusUnauthorized, msgUnauthorized)
	}

	req, err := types.NewCreateSkillRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind create skill request")
		return dto.Error(ctx, http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err = req.Validate(); err != nil {
		return dto.Error(ctx, http.StatusBadRequest, err.Error())
	}

	skill, err := c.skillService.Create(ctx.Request().Context(), userID, req)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Create skill failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"skill_id": skill.ID,
	}).Info("Skill created")
	return dto.Success(ctx, http.StatusCreated, skill, msgSkillCreated)
}

func (c *SkillController) List(ctx echo.Context) error {
	skills, err := c.skillService.List(ctx.Request().Context())
	if err != nil {
		logrus.WithError(err).Error("List skills failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	return dto.Success(ctx, http.StatusOK, skills, msgSkillListed)
}

func (c *SkillController) ListByUser(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return dto.Error(ctx, http.StatusUnauthorized, msgUnauthorized)
	}

	skills, err := c.skillService.ListByUser(ctx.Request().Context(), userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("List skills by user failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	return dto.Success(ctx, http.StatusOK, skills, msgSkillListed)
}

func (c *SkillController) Get(ctx echo.Context) error {
	id := ctx.Param("id")
	skill, err := c.skillService.Get(ctx.Request().Context(), id)
	if err != nil {
		return c.failure(ctx, id, "Get skill failed", err)
	}

	return dto.Success(ctx, http.StatusOK, skill, msgSkillFound)
}

func (c *SkillController) Update(ctx echo.Context) error {
	req, err := types.NewUpdateSkillRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind update skill request")
		return dto.Error(ctx, http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err = req.Validate(); err != nil {
		return dto.Error(ctx, http.StatusBadRequest, err.Error())
	}

	skill, err := c.skillService.Update(ctx.Request().Context(), req)
	if err != nil {
		return c.failure(ctx, req.ID, "Update skill failed", err)
	}

	logrus.WithField("skill_id", skill.ID).Info("Skill updated")
	return dto.Success(ctx, http.StatusOK, skill, msgSkillUpdated)
}

func (c *SkillController) Delete(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := c.skillService.Delete(ctx.Request().Context(), id); err != nil {
		return c.failure(ctx, id, "Delete skill failed", err)
	}

	logrus.WithField("skill_id", id).Info("Skill deleted")
	return dto.Success(ctx, http.StatusOK, nil, msgSkillDeleted)
}

func (c *SkillController) failure(ctx echo.Context, id, message string, err error) error {
	if errors.Is(err, service.ErrSkillNotFound) {
		logrus.WithField("skill_id", id).Debug(message + ": not found")
		return dto.Error(ctx, http.StatusNotFound, msgSkillNotFound)
	}
	logrus.WithError(err).WithField("skill_id", id).Error(message)
	return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
}
