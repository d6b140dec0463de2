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

type UserQueryController struct {
	userQueryService service.UserQueryService
}

func NewUserQueryController(userQueryService service.UserQueryService) *UserQueryController {
	return &UserQueryController{userQueryService: userQueryService}
}

func (c *UserQueryController) Create(ctx echo.Context) error {
	req, err := types.NewCreateUserQueryRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind user query request")
		return dto.Error(ctx, http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err = req.Validate(); err != nil {
		logrus.WithField("email", req.Email).Debug("User query validation failed")
		return dto.Error(ctx, http.StatusBadRequest, err.Error())
	}

	query, err := c.userQueryService.Create(ctx.Request().Context(), req)
	if err != nil {
		logrus.WithError(err).WithField("email", req.Email).Error("Create user query failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	logrus.WithFields(logrus.Fields{
		"query_id": query.ID,
		"email":    query.Email,
	}).Info("User query received")
	return dto.Success(ctx, http.StatusCreated, query, msgUserQueryCreated)
}

func (c *UserQueryController) List(ctx echo.Context) error {
	queries, err := c.userQueryService.List(ctx.Request().Context())
	if err != nil {
		logrus.WithError(err).Error("List user queries failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	return dto.Success(ctx, http.StatusOK, queries, msgUserQueriesFound)
}

func (c *UserQueryController) Get(ctx echo.Context) error {
	id := ctx.Param("id")
	query, err := c.userQueryService.Get(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserQueryNotFound) {
			return dto.Error(ctx, http.StatusNotFound, msgUserQueryNotFound)
		}
		logrus.WithError(err).WithField("query_id", id).Error("Get user query failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	return dto.Success(ctx, http.StatusOK, query, msgUserQueryFound)
}

func (c *UserQueryController) Delete(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := c.userQueryService.Delete(ctx.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrUserQueryNotFound) {
			return dto.Error(ctx, http.StatusNotFound, msgUserQueryNotFound)
		}
		logrus.WithError(err).WithField("query_id", id).Error("Delete user query failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	logrus.WithField("query_id", id).Info("User query deleted")
	return dto.Success(ctx, http.StatusOK, nil, msgUserQueryDeleted)
}
