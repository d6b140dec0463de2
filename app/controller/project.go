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

type ProjectController struct {
	projectService service.ProjectService
}

func NewProjectController(projectService service.ProjectService) *ProjectController {
	return &ProjectController{projectService: projectService}
}

func (c *ProjectController) Create(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return dto.Error(ctx, http.StatusUnauthorized, msgUnauthorized)
	}

	req, err := types.NewCreateProjectRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind create project request")
		return dto.Error(ctx, http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err = req.Validate(); err != nil {
		return dto.Error(ctx, http.StatusBadRequest, err.Error())
	}

	project, err := c.projectService.Create(ctx.Request().Context(), userID, req)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Create project failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"project_id": project.ID,
	}).Info("Project created")
	return dto.Success(ctx, http.StatusCreated, project, msgProjectCreated)
}

func (c *ProjectController) List(ctx echo.Context) error {
	projects, err := c.projectService.List(ctx.Request().Context())
	if err != nil {
		logrus.WithError(err).Error("List projects failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	return dto.Success(ctx, http.StatusOK, projects, msgProjectsFound)
}

// ListByUser lists the projects owned by the authenticated user.
func (c *ProjectController) ListByUser(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return dto.Error(ctx, http.StatusUnauthorized, msgUnauthorized)
	}

	projects, err := c.projectService.ListByUser(ctx.Request().Context(), userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("List projects by user failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	return dto.Success(ctx, http.StatusOK, projects, msgProjectsFound)
}

func (c *ProjectController) Get(ctx echo.Context) error {
	id := ctx.Param("id")
	project, err := c.projectService.Get(ctx.Request().Context(), id)
	if err != nil {
		return c.failure(ctx, id, "Get project failed", err)
	}

	return dto.Success(ctx, http.StatusOK, project, msgProjectFound)
}

func (c *ProjectController) Update(ctx echo.Context) error {
	req, err := types.NewUpdateProjectRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind update project request")
		return dto.Error(ctx, http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err = req.Validate(); err != nil {
		return dto.Error(ctx, http.StatusBadRequest, err.Error())
	}

	project, err := c.projectService.Update(ctx.Request().Context(), req)
	if err != nil {
		return c.failure(ctx, req.ID, "Update project failed", err)
	}

	logrus.WithField("project_id", project.ID).Info("Project updated")
	return dto.Success(ctx, http.StatusOK, project, msgProjectUpdated)
}

func (c *ProjectController) Delete(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := c.projectService.Delete(ctx.Request().Context(), id); err != nil {
		return c.failure(ctx, id, "Delete project failed", err)
	}

	logrus.WithField("project_id", id).Info("Project deleted")
	return dto.Success(ctx, http.StatusOK, nil, msgProjectDeleted)
}

func (c *ProjectController) failure(ctx echo.Context, id, message string, err error) error {
	if errors.Is(err, service.ErrProjectNotFound) {
		logrus.WithField("project_id", id).Debug(message + ": not found")
		return dto.Error(ctx, http.StatusNotFound, msgProjectNotFound)
	}
	logrus.WithError(err).WithField("project_id", id).Error(message)
	return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
}
