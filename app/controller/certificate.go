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

type CertificateController struct {
	certificateService service.CertificateService
}

func NewCertificateController(certificateService service.CertificateService) *CertificateController {
	return &CertificateController{certificateService: certificateService}
}

func (c *CertificateController) Create(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return dto.Error(ctx, http.StatusUnauthorized, msgUnauthorized)
	}

	req, err := types.NewCreateCertificateRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind create certificate request")
		return dto.Error(ctx, http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err = req.Validate(); err != nil {
		return dto.Error(ctx, http.StatusBadRequest, err.Error())
	}

	certificate, err := c.certificateService.Create(ctx.Request().Context(), userID, req)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Create certificate failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":        userID,
		"certificate_id": certificate.ID,
	}).Info("Certificate created")
	return dto.Success(ctx, http.StatusCreated, certificate, msgCertificateCreated)
}

func (c *CertificateController) List(ctx echo.Context) error {
	certificates, err := c.certificateService.List(ctx.Request().Context())
	if err != nil {
		logrus.WithError(err).Error("List certificates failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	return dto.Success(ctx, http.StatusOK, certificates, msgCertificateListed)
}

func (c *CertificateController) ListByUser(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return dto.Error(ctx, http.StatusUnauthorized, msgUnauthorized)
	}

	certificates, err := c.certificateService.ListByUser(ctx.Request().Context(), userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("List certificates by user failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	return dto.Success(ctx, http.StatusOK, certificates, msgCertificateListed)
}

func (c *CertificateController) Get(ctx echo.Context) error {
	id := ctx.Param("id")
	certificate, err := c.certificateService.Get(ctx.Request().Context(), id)
	if err != nil {
		return c.failure(ctx, id, "Get certificate failed", err)
	}

	return dto.Success(ctx, http.StatusOK, certificate, msgCertificateFound)
}

func (c *CertificateController) Update(ctx echo.Context) error {
	req, err := types.NewUpdateCertificateRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind update certificate request")
		return dto.Error(ctx, http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err = req.Validate(); err != nil {
		return dto.Error(ctx, http.StatusBadRequest, err.Error())
	}

	certificate, err := c.certificateService.Update(ctx.Request().Context(), req)
	if err != nil {
		return c.failure(ctx, req.ID, "Update certificate failed", err)
	}

	logrus.WithField("certificate_id", certificate.ID).Info("Certificate updated")
	return dto.Success(ctx, http.StatusOK, certificate, msgCertificateUpdated)
}

func (c *CertificateController) Delete(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := c.certificateService.Delete(ctx.Request().Context(), id); err != nil {
		return c.failure(ctx, id, "Delete certificate failed", err)
	}

	logrus.WithField("certificate_id", id).Info("Certificate deleted")
	return dto.Success(ctx, http.StatusOK, nil, msgCertificateDeleted)
}

func (c *CertificateController) failure(ctx echo.Context, id, message string, err error) error {
	if errors.Is(err, service.ErrCertificateNotFound) {
		logrus.WithField("certificate_id", id).Debug(message + ": not found")
		return dto.Error(ctx, http.StatusNotFound, msgCertificateNotFound)
	}
	logrus.WithError(err).WithField("certificate_id", id).Error(message)
	return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
}
