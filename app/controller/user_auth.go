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

type UserAuthController struct {
	userAuthService service.UserAuthService
	avatarService   *service.AvatarService
}

func NewUserAuthController(userAuthService service.UserAuthService, avatarService *service.AvatarService) *UserAuthController {
	return &UserAuthController{
		userAuthService: userAuthService,
		avatarService:   avatarService,
	}
}

func (c *UserAuthController) Login(ctx echo.Context) error {
	req, err := types.NewLoginRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind login request")
		return dto.Error(ctx, http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err = req.Validate(); err != nil {
		logrus.WithField("email", req.Email).Debug("Login validation failed")
		return dto.Error(ctx, http.StatusBadRequest, err.Error())
	}

	logrus.WithField("email", req.Email).Info("Login request received")
	result, err := c.userAuthService.Login(ctx.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logrus.WithField("email", req.Email).Warn("Login failed: invalid credentials")
			return dto.Error(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		}
		if errors.Is(err, service.ErrWeakPassword) {
			logrus.WithField("email", req.Email).Debug("Login failed: password policy")
			return dto.Error(ctx, http.StatusBadRequest, err.Error())
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Login failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	logrus.WithField("user_id", result.User.ID).Info("Login successful")
	return dto.Success(ctx, http.StatusOK, result, msgLoginSuccess)
}

func (c *UserAuthController) ForgotPassword(ctx echo.Context) error {
	req, err := types.NewForgotPasswordRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind forgot password request")
		return dto.Error(ctx, http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err = req.Validate(); err != nil {
		logrus.Debug("Forgot password validation failed")
		return dto.Error(ctx, http.StatusBadRequest, err.Error())
	}

	logrus.WithField("email", req.Email).Info("Forgot password request received")
	if err = c.userAuthService.ForgotPassword(ctx.Request().Context(), req); err != nil {
		logrus.WithError(err).WithField("email", req.Email).Error("Forgot password failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	return dto.Success(ctx, http.StatusOK, nil, msgPasswordResetSent)
}

func (c *UserAuthController) ResetPassword(ctx echo.Context) error {
	req, err := types.NewResetPasswordRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind reset password request")
		return dto.Error(ctx, http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err = req.Validate(); err != nil {
		logrus.Debug("Reset password validation failed")
		return dto.Error(ctx, http.StatusBadRequest, err.Error())
	}

	logrus.Info("Reset password request received")
	if err = c.userAuthService.ResetPassword(ctx.Request().Context(), req); err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			logrus.Warn("Reset password failed: invalid or expired token")
			return dto.Error(ctx, http.StatusBadRequest, msgInvalidResetToken)
		}
		if errors.Is(err, service.ErrWeakPassword) {
			logrus.Debug("Reset password failed: password policy")
			return dto.Error(ctx, http.StatusBadRequest, err.Error())
		}
		logrus.WithError(err).Error("Reset password failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	logrus.Info("Password reset successfully")
	return dto.Success(ctx, http.StatusOK, nil, msgPasswordResetSuccess)
}

func (c *UserAuthController) RefreshToken(ctx echo.Context) error {
	req, err := types.NewRefreshTokenRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind refresh token request")
		return dto.Error(ctx, http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err = req.Validate(); err != nil {
		logrus.Debug("Refresh token validation failed")
		return dto.Error(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := c.userAuthService.RefreshToken(ctx.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			logrus.Warn("Refresh token failed: invalid token")
			return dto.Error(ctx, http.StatusUnauthorized, msgInvalidRefreshToken)
		}
		logrus.WithError(err).Error("Refresh token failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	logrus.Debug("Token refreshed")
	return dto.Success(ctx, http.StatusOK, result, msgTokenRefreshed)
}

func (c *UserAuthController) GetMe(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		logrus.Warn("Get profile failed: missing user_id in context")
		return dto.Error(ctx, http.StatusUnauthorized, msgUnauthorized)
	}

	profile, err := c.userAuthService.GetUserDetails(ctx.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			logrus.WithField("user_id", userID).Warn("Get profile failed: user not found")
			return dto.Error(ctx, http.StatusNotFound, msgUserNotFound)
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Get profile failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	return dto.Success(ctx, http.StatusOK, profile, msgUserFound)
}

func (c *UserAuthController) UpdateMe(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		logrus.Warn("Update profile failed: missing user_id in context")
		return dto.Error(ctx, http.StatusUnauthorized, msgUnauthorized)
	}

	req, err := types.NewUpdateUserRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind update profile request")
		return dto.Error(ctx, http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err = req.Validate(); err != nil {
		logrus.WithField("user_id", userID).Debug("Update profile validation failed")
		return dto.Error(ctx, http.StatusBadRequest, err.Error())
	}

	logrus.WithField("user_id", userID).Info("Update profile request received")
	profile, err := c.userAuthService.UpdateUserDetails(ctx.Request().Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			logrus.WithField("user_id", userID).Warn("Update profile failed: user not found")
			return dto.Error(ctx, http.StatusNotFound, msgUserNotFound)
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Update profile failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	return dto.Success(ctx, http.StatusOK, profile, msgUserUpdated)
}

func (c *UserAuthController) UploadAvatar(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		logrus.Warn("Avatar upload failed: missing user_id in context")
		return dto.Error(ctx, http.StatusUnauthorized, msgUnauthorized)
	}

	header, file, err := openFormFile(ctx, "file")
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Debug("Avatar upload without file")
		return dto.Error(ctx, http.StatusBadRequest, msgFileRequired)
	}
	defer file.Close()

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"filename": header.Filename,
		"size":     header.Size,
	}).Info("Avatar upload request received")

	profile, err := c.avatarService.Replace(
		ctx.Request().Context(),
		userID,
		header.Filename,
		header.Header.Get(echo.HeaderContentType),
		header.Size,
		file,
	)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			logrus.WithField("user_id", userID).Warn("Avatar upload failed: user not found")
			return dto.Error(ctx, http.StatusNotFound, msgUserNotFound)
		}
		if isUploadRejection(err) {
			logrus.WithError(err).WithField("user_id", userID).Debug("Avatar upload rejected")
			return dto.Error(ctx, http.StatusBadRequest, err.Error())
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Avatar upload failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	return dto.Success(ctx, http.StatusOK, profile, msgAvatarUpdated)
}
