package main

import (
	"github.com/robfig/cron/v3"
	"github.com/sithub/sithub/internal/auth"
	"github.com/sithub/sithub/internal/config"
	"github.com/sithub/sithub/internal/handlers"
	"github.com/sithub/sithub/internal/models"
	"github.com/sithub/sithub/internal/services"
	"github.com/sithub/sithub/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	taskQueue     services.TaskQueue
	worker        *services.Worker
	retentionCron *cron.Cron

	auditService *services.AuditService

	authHandler     *handlers.AuthHandler
	userHandler     *handlers.UserHandler
	projectHandler  *handlers.ProjectHandler
	memberHandler   *handlers.ProjectMemberHandler
	branchHandler   *handlers.BranchHandler
	prHandler       *handlers.PullRequestHandler
	scanHandler     *handlers.ScanHandler
	auditLogHandler *handlers.AuditLogHandler
	healthHandler   *handlers.HealthHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	auth.SetSecret(cfg.JWT.Secret)
	if cfg.JWT.Secret == config.InsecureDefaultJWTSecret {
		logger.Warn().Msg("JWT_SECRET is the built-in default; set a real secret before exposing this server")
	}

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()

	authService := services.NewAuthService(db, &cfg.JWT)
	userService := services.NewUserService(db)
	projectService := services.NewProjectService(db)
	branchService := services.NewBranchService(db)
	prService := services.NewPullRequestService(db)
	auditService := services.NewAuditService(db)

	// Create default admin user
	if err := authService.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	// Task queue (uses Redis if enabled, otherwise sync mode)
	taskQueue := services.NewTaskQueue(&cfg.Redis)
	scanService := services.NewScanService(db, &cfg.Scanner, taskQueue)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(scanService.ProcessScanTask)
	}

	// Start async worker if Redis is enabled
	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.NewWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(scanService.ProcessScanTask)
			worker.Start()
		}
	}

	// Nightly audit log cleanup
	retentionCron := auditService.StartRetentionScheduler(cfg.Audit.RetentionDays)

	return &appServices{
		taskQueue:     taskQueue,
		worker:        worker,
		retentionCron: retentionCron,
		auditService:  auditService,

		authHandler:     handlers.NewAuthHandler(authService),
		userHandler:     handlers.NewUserHandler(userService),
		projectHandler:  handlers.NewProjectHandler(projectService),
		memberHandler:   handlers.NewProjectMemberHandler(projectService),
		branchHandler:   handlers.NewBranchHandler(branchService, projectService),
		prHandler:       handlers.NewPullRequestHandler(prService, projectService),
		scanHandler:     handlers.NewScanHandler(scanService, projectService),
		auditLogHandler: handlers.NewAuditLogHandler(auditService),
		healthHandler:   handlers.NewHealthHandler(db, taskQueue),
	}
}

// shutdown gracefully stops all background services.
func (s *appServices) shutdown() {
	if s.retentionCron != nil {
		s.retentionCron.Stop()
	}
	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
	logger.Info().Msg("Background services stopped")
}
