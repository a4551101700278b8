package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sithub/sithub/internal/middleware"
	"github.com/sithub/sithub/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS())

	// Rate limiter for credential-handling routes
	authLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	r.GET("/health", svc.healthHandler.Check)

	// API routes
	api := r.Group("/api")
	api.Use(middleware.Audit(svc.auditService))
	{
		// Auth routes (public, rate limited)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/register", svc.authHandler.Register)
			auth.POST("/login", svc.authHandler.Login)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			protected.POST("/auth/change-password", svc.authHandler.ChangePassword)

			protected.GET("/users/profile", svc.userHandler.Profile)
			protected.PUT("/users/profile", svc.userHandler.UpdateProfile)

			// Projects
			protected.GET("/projects", svc.projectHandler.List)
			protected.GET("/projects/:id", svc.projectHandler.Get)
			protected.POST("/projects", svc.projectHandler.Create)
			protected.PUT("/projects/:id", svc.projectHandler.Update)
			protected.DELETE("/projects/:id", svc.projectHandler.Delete)

			// Members
			protected.GET("/projects/:id/members", svc.memberHandler.List)
			protected.POST("/projects/:id/members", svc.memberHandler.Add)

			// Branches
			protected.GET("/projects/:id/branches", svc.branchHandler.List)
			protected.POST("/projects/:id/branches", svc.branchHandler.Create)

			// Pull requests
			protected.GET("/projects/:id/pulls", svc.prHandler.List)
			protected.GET("/projects/:id/pulls/:prId", svc.prHandler.Get)
			protected.POST("/projects/:id/pulls", svc.prHandler.Create)
			protected.PUT("/projects/:id/pulls/:prId", svc.prHandler.UpdateStatus)

			// Vulnerability scans
			protected.GET("/projects/:id/scans", svc.scanHandler.List)
			protected.GET("/projects/:id/scans/:scanId", svc.scanHandler.Get)
			protected.POST("/projects/:id/scans", svc.scanHandler.Create)
		}

		// Admin only routes
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/users", svc.userHandler.List)
			admin.PUT("/users/:id", svc.userHandler.Update)
			admin.DELETE("/users/:id", svc.userHandler.Delete)

			admin.GET("/audit-logs", svc.auditLogHandler.List)
		}
	}
}
