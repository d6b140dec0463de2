package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/vibast-solutions/ms-go-portfolio/app/controller"
	"github.com/vibast-solutions/ms-go-portfolio/app/mail"
	"github.com/vibast-solutions/ms-go-portfolio/app/middleware"
	"github.com/vibast-solutions/ms-go-portfolio/app/migrations"
	"github.com/vibast-solutions/ms-go-portfolio/app/repository"
	"github.com/vibast-solutions/ms-go-portfolio/app/service"
	"github.com/vibast-solutions/ms-go-portfolio/config"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server, mail worker and health scheduler",
	Long:  `Start the HTTP (Echo) API together with the in-process mail worker and the periodic health checker.`,
	Run:   runServe,
}

var serveWithoutWorker bool

func init() {
	serveCmd.Flags().BoolVar(&serveWithoutWorker, "no-worker", false, "do not start the in-process mail worker")
	rootCmd.AddCommand(serveCmd)
}

// handlers groups every controller mounted by the router.
type handlers struct {
	auth           *controller.UserAuthController
	projects       *controller.ProjectController
	skills         *controller.SkillController
	timeline       *controller.TimelineController
	education      *controller.EducationController
	certificates   *controller.CertificateController
	achievements   *controller.AchievementController
	workExperience *controller.WorkExperienceController
	userQuery      *controller.UserQueryController
	upload         *controller.UploadController
	health         *controller.HealthController
	middleware     *middleware.AuthMiddleware
}

// resourceHandler is the CRUD surface shared by the portfolio content controllers.
type resourceHandler interface {
	Create(ctx echo.Context) error
	List(ctx echo.Context) error
	ListByUser(ctx echo.Context) error
	Get(ctx echo.Context) error
	Update(ctx echo.Context) error
	Delete(ctx echo.Context) error
}

// withContent builds the portfolio content controllers on top of db.
func (h *handlers) withContent(db repository.DBTX) *handlers {
	h.projects = controller.NewProjectController(service.NewProjectService(repository.NewProjectRepository(db)))
	h.skills = controller.NewSkillController(service.NewSkillService(repository.NewSkillRepository(db)))
	h.timeline = controller.NewTimelineController(service.NewTimelineService(repository.NewTimelineRepository(db)))
	h.education = controller.NewEducationController(service.NewEducationService(repository.NewEducationRepository(db)))
	h.certificates = controller.NewCertificateController(service.NewCertificateService(repository.NewCertificateRepository(db)))
	h.achievements = controller.NewAchievementController(service.NewAchievementService(repository.NewAchievementRepository(db)))
	h.workExperience = controller.NewWorkExperienceController(service.NewWorkExperienceService(repository.NewWorkExperienceRepository(db)))
	return h
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err = migrations.Up(ctx, db); err != nil {
		logrus.WithError(err).Fatal("Failed to apply migrations")
	}

	redisClient, err := newRedisClient(cfg.Redis)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to configure redis")
	}
	defer redisClient.Close()

	s3Client, err := service.NewS3Client(ctx, cfg.Storage)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to configure object storage")
	}

	queue := mail.NewQueue(redisClient, cfg.Queue)
	userAuthService := newUserAuthService(cfg, db, queue)
	uploadService := service.NewUploadService(s3Client, cfg.Storage)
	healthRepo := repository.NewHealthCheckRepository(db)
	healthService := service.NewHealthService(healthRepo, healthRepo, redisClient, cfg.App.Env, cfg.Health.SlowThreshold)

	h := &handlers{
		auth:       controller.NewUserAuthController(userAuthService, service.NewAvatarService(userAuthService, uploadService)),
		userQuery:  controller.NewUserQueryController(service.NewUserQueryService(repository.NewUserQueryRepository(db), queue, cfg.App.AdminEmail)),
		upload:     controller.NewUploadController(uploadService),
		health:     controller.NewHealthController(healthService),
		middleware: middleware.NewAuthMiddleware(userAuthService),
	}
	h.withContent(db)

	var wg sync.WaitGroup

	if !serveWithoutWorker {
		worker, err := newMailWorker(cfg, queue)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to build mail worker")
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(ctx, cfg.Queue.Concurrency, cfg.Queue.PollInterval)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		healthService.Run(ctx, cfg.Health.Interval)
	}()

	e := newRouter(cfg, h)
	startHTTPServer(ctx, e, cfg.HTTPAddr())

	stop()
	wg.Wait()
	logrus.Info("Shutdown complete")
}

func newRouter(cfg *config.Config, h *handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = controller.ErrorHandler

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			if userID, ok := c.Get("user_id").(string); ok {
				fields["user_id"] = userID
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.App.FrontendURL},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.BodyLimit(bodyLimit(cfg.Storage.MaxUploadBytes)))

	requireAuth := h.middleware.RequireAuth

	auth := e.Group("/auth")
	auth.POST("/login", h.auth.Login)
	auth.POST("/forgot-password", h.auth.ForgotPassword)
	auth.POST("/reset-password", h.auth.ResetPassword)
	auth.POST("/refresh-token", h.auth.RefreshToken)
	auth.GET("/me", h.auth.GetMe, requireAuth)
	auth.PUT("/me", h.auth.UpdateMe, requireAuth)
	auth.POST("/me/avatar", h.auth.UploadAvatar, requireAuth)

	mountResource(e.Group("/projects"), h.projects, requireAuth)
	mountResource(e.Group("/skills"), h.skills, requireAuth)
	mountResource(e.Group("/timeline"), h.timeline, requireAuth)
	mountResource(e.Group("/education"), h.education, requireAuth)
	mountResource(e.Group("/certificates"), h.certificates, requireAuth)
	mountResource(e.Group("/achievements"), h.achievements, requireAuth)
	mountResource(e.Group("/work-experience"), h.workExperience, requireAuth)

	queries := e.Group("/user-queries")
	queries.POST("", h.userQuery.Create)
	queries.GET("", h.userQuery.List, requireAuth)
	queries.GET("/:id", h.userQuery.Get, requireAuth)
	queries.DELETE("/:id", h.userQuery.Delete, requireAuth)

	upload := e.Group("/upload", requireAuth)
	upload.POST("/file", h.upload.UploadFile)
	upload.DELETE("/file", h.upload.DeleteFile)

	health := e.Group("/health")
	health.GET("", h.health.Health)
	health.GET("/last", h.health.Last)
	health.GET("/database", h.health.Database)
	health.GET("/redis", h.health.Redis)
	health.GET("/server", h.health.Server)
	health.GET("/memory", h.health.Memory)

	return e
}

// mountResource registers public reads and authenticated writes. "/user"
// is registered before "/:id" and lists the caller's own records.
func mountResource(g *echo.Group, r resourceHandler, requireAuth echo.MiddlewareFunc) {
	g.GET("", r.List)
	g.GET("/user", r.ListByUser, requireAuth)
	g.GET("/:id", r.Get)
	g.POST("", r.Create, requireAuth)
	g.PUT("/:id", r.Update, requireAuth)
	g.DELETE("/:id", r.Delete, requireAuth)
}

// bodyLimit leaves one megabyte of headroom above the upload cap for
// multipart framing and form fields.
func bodyLimit(maxUploadBytes int64) string {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return fmt.Sprintf("%dK", (maxUploadBytes+(1<<20))/1024)
}

func startHTTPServer(ctx context.Context, e *echo.Echo, addr string) {
	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", addr).Info("Starting HTTP server")
		errCh <- e.Start(addr)
	}()

	select {
	case <-ctx.Done():
		logrus.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("HTTP server shutdown failed")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Failed to start HTTP server")
		}
	}
}
