package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/mas-patas/patitas/internal/alert"
	"github.com/mas-patas/patitas/internal/api/docs"
	"github.com/mas-patas/patitas/internal/api/handler"
	adminHandler "github.com/mas-patas/patitas/internal/api/handler/admin"
	"github.com/mas-patas/patitas/internal/api/middleware"
	"github.com/mas-patas/patitas/internal/audit"
	"github.com/mas-patas/patitas/internal/config"
	"github.com/mas-patas/patitas/internal/embedding"
	"github.com/mas-patas/patitas/internal/matching"
	"github.com/mas-patas/patitas/internal/repository"
	"github.com/mas-patas/patitas/internal/submission"
	"github.com/mas-patas/patitas/internal/usage"
	"github.com/mas-patas/patitas/internal/vision"
)

type Dependencies struct {
	DB             *pgxpool.Pool
	Flags          *config.Flags
	Embedder       embedding.Embedder
	Detector       vision.LabelDetector
	VisionEnabled  bool
	MatchThreshold float64
	MatchTopK      int
	SweepInterval  time.Duration
}

type Router struct {
	app           *fiber.App
	logger        *slog.Logger
	deps          *Dependencies
	sweeper       *submission.Sweeper
	cancelSweeper context.CancelFunc
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Patitas API",
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Swagger documentation
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health check endpoints
	var pinger handler.Pinger
	if r.deps != nil && r.deps.DB != nil {
		pinger = r.deps.DB
	}
	healthHandler := handler.NewHealthHandler(pinger)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	v1 := r.app.Group("/v1")

	// Only configure data-backed routes if dependencies were provided
	if r.deps == nil {
		return
	}

	// Repositories
	reportRepo := repository.NewReportRepository(r.deps.DB)
	savedSearchRepo := repository.NewSavedSearchRepository(r.deps.DB)
	notificationRepo := repository.NewNotificationRepository(r.deps.DB)
	activityRepo := repository.NewActivityRepository(r.deps.DB)
	matchAuditRepo := repository.NewMatchAuditRepository(r.deps.DB)
	usageRepo := usage.NewRepository(r.deps.DB)

	// Usage tracking (best-effort)
	tracker := usage.NewTracker(usageRepo, r.logger)

	// Audit trail (slog-backed)
	auditLogger := audit.NewSlogLogger(r.logger)

	// Matching orchestrator
	matcher := matching.NewService(
		r.deps.Embedder,
		reportRepo,
		matchAuditRepo,
		r.deps.MatchThreshold,
		r.deps.MatchTopK,
		r.logger,
	)

	// Saved-search alerting
	alertEngine := alert.NewEngine()
	alertNotifier := alert.NewNotifier(notificationRepo, savedSearchRepo, r.logger)
	alertService := alert.NewService(savedSearchRepo, alertEngine, alertNotifier, r.logger)

	// Submission gate with the ordered post-commit tasks
	tasks := []submission.PostCommitTask{
		submission.NotifyReporterTask(notificationRepo),
		submission.LogActivityTask(activityRepo),
		submission.ScanSavedSearchesTask(alertService),
		submission.CountReportTask(tracker),
	}
	gate := submission.NewGate(matcher, reportRepo, r.deps.Flags, tasks, r.logger)

	// Expiry sweeper
	r.sweeper = submission.NewSweeper(reportRepo, r.logger, r.deps.SweepInterval)
	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	r.cancelSweeper = sweepCancel
	go r.sweeper.Start(sweepCtx)

	// Report routes
	reportHandler := handler.NewReportHandler(gate, reportRepo, tracker, auditLogger, r.logger)
	v1.Post("/reports", reportHandler.Submit)
	v1.Post("/reports/confirm", reportHandler.Confirm)
	v1.Delete("/submissions/:draft_id", reportHandler.Abandon)
	v1.Get("/reports", reportHandler.List)
	v1.Get("/reports/:id", reportHandler.Get)
	v1.Post("/reports/:id/reunited", reportHandler.Reunited)

	// Photo analysis
	photoHandler := handler.NewPhotoHandler(r.deps.Detector, r.deps.VisionEnabled, r.logger)
	v1.Post("/photos/analyze", photoHandler.Analyze)

	// Saved searches
	savedSearchHandler := handler.NewSavedSearchHandler(savedSearchRepo, r.logger)
	v1.Post("/searches", savedSearchHandler.Create)
	v1.Get("/searches", savedSearchHandler.List)
	v1.Delete("/searches/:id", savedSearchHandler.Delete)

	// Notifications
	notificationHandler := handler.NewNotificationHandler(notificationRepo, r.logger)
	v1.Get("/notifications", notificationHandler.List)

	// Admin routes
	adminGroup := v1.Group("/admin")
	flagsHandler := adminHandler.NewFlagsHandler(r.deps.Flags, r.logger)
	adminGroup.Get("/flags", flagsHandler.Get)
	adminGroup.Put("/flags/matching", flagsHandler.SetMatching)

	usageHandler := adminHandler.NewUsageHandler(usageRepo, r.logger)
	adminGroup.Get("/usage", usageHandler.Get)
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	// Stop expiry sweeper
	if r.cancelSweeper != nil {
		r.cancelSweeper()
	}

	return r.app.Shutdown()
}
