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

type HealthController struct {
	healthService service.HealthService
}

func NewHealthController(healthService service.HealthService) *HealthController {
	return &HealthController{healthService: healthService}
}

// Health runs every check now and answers 503 when any component is down.
func (c *HealthController) Health(ctx echo.Context) error {
	report := c.healthService.Check(ctx.Request().Context())
	if !report.Healthy() {
		logrus.WithField("status", report.Status).Warn("Health check reports unhealthy components")
		return ctx.JSON(http.StatusServiceUnavailable, dto.Response{
			Success:    false,
			Data:       report,
			Message:    msgUnhealthy,
			StatusCode: http.StatusServiceUnavailable,
		})
	}

	return dto.Success(ctx, http.StatusOK, report, msgHealthy)
}

func (c *HealthController) Last(ctx echo.Context) error {
	report, err := c.healthService.Last()
	if err != nil {
		if errors.Is(err, service.ErrNoHealthReport) {
			return dto.Error(ctx, http.StatusNotFound, msgHealthNotAvailable)
		}
		logrus.WithError(err).Error("Last health report failed")
		return dto.Error(ctx, http.StatusInternalServerError, msgInternalError)
	}

	return dto.Success(ctx, http.StatusOK, report, msgHealthReportRetrieved)
}

func (c *HealthController) Database(ctx echo.Context) error {
	return component(ctx, c.healthService.CheckDatabase(ctx.Request().Context()))
}

func (c *HealthController) Redis(ctx echo.Context) error {
	return component(ctx, c.healthService.CheckRedis(ctx.Request().Context()))
}

func (c *HealthController) Server(ctx echo.Context) error {
	return component(ctx, c.healthService.CheckServer())
}

func (c *HealthController) Memory(ctx echo.Context) error {
	return component(ctx, c.healthService.CheckMemory())
}

func component(ctx echo.Context, result types.ComponentHealth) error {
	if result.Status != types.StatusUp {
		return ctx.JSON(http.StatusServiceUnavailable, dto.Response{
			Success:    false,
			Data:       result,
			Message:    msgComponentUnhealthy,
			StatusCode: http.StatusServiceUnavailable,
		})
	}
	return dto.Success(ctx, http.StatusOK, result, msgComponentHealthy)
}
