package middleware

import (
	"net/http"
	"strings"

	"github.com/vibast-solutions/ms-go-portfolio/app/dto"
	"github.com/vibast-solutions/ms-go-portfolio/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type accessTokenValidator interface {
	ValidateAccessToken(tokenString string) (*service.Claims, error)
}

type AuthMiddleware struct {
	authService accessTokenValidator
}

func NewAuthMiddleware(authService accessTokenValidator) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// RequireAuth accepts "Authorization: Bearer <access token>" and exposes the
// token's subject as user_id and its email as user_email.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			logrus.Debug("Missing authorization header")
			return dto.Error(c, http.StatusUnauthorized, "Missing authorization header")
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logrus.Debug("Invalid authorization header format")
			return dto.Error(c, http.StatusUnauthorized, "Invalid authorization header format")
		}

		claims, err := m.authService.ValidateAccessToken(parts[1])
		if err != nil || claims.UserID() == "" {
			logrus.Debug("Invalid or expired access token")
			return dto.Error(c, http.StatusUnauthorized, "Invalid or expired access token")
		}

		c.Set("user_id", claims.UserID())
		c.Set("user_email", claims.Email)

		return next(c)
	}
}
