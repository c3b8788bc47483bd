package app

import (
	"hipaa_training_backend/docs"
	"hipaa_training_backend/internal/config"
	"hipaa_training_backend/internal/middleware"
	"hipaa_training_backend/internal/model"
	"hipaa_training_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		// Certificate verification is public so facilities can check IDs.
		public.GET("/certificates/:id/verify", c.certificate.Verify)
	}

	// Routes for any authenticated account.
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/me", c.auth.Me)
		authGroup.POST("/mfa/setup", c.auth.SetupMFA)
		authGroup.POST("/mfa/verify", c.auth.VerifyMFA)

		authGroup.GET("/lessons", c.training.ListLessons)
		authGroup.GET("/lessons/:title", c.training.GetLesson)
		authGroup.POST("/lessons/:title/complete", c.training.CompleteLesson)

		authGroup.GET("/quiz", c.training.QuizQuestions)
		authGroup.POST("/quiz/submit", c.training.SubmitQuiz)

		authGroup.GET("/progress", c.training.History)
		authGroup.POST("/progress/reset", c.training.ResetProgress)

		authGroup.GET("/checklist", c.checklist.Get)
		authGroup.PUT("/checklist", c.checklist.Save)
		authGroup.POST("/checklist/complete", c.checklist.CompleteItem)
		authGroup.POST("/checklist/evidence", c.checklist.UploadEvidence)
		authGroup.GET("/checklist/evidence", c.checklist.ListEvidence)
		authGroup.GET("/checklist/evidence/:name", c.checklist.DownloadEvidence)

		authGroup.GET("/certificates", c.certificate.List)
		authGroup.GET("/certificates/:id/download", c.certificate.Download)

		authGroup.GET("/report", c.report.MyReport)
	}

	// Admin and auditor routes. Admins pass every role gate.
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg))
	{
		auditorOrAdmin := adminGroup.Group("")
		auditorOrAdmin.Use(middleware.RoleMiddleware(a.services.audit, model.Auditor))
		{
			auditorOrAdmin.GET("/reports/users/:id", c.report.UserReport)
			auditorOrAdmin.GET("/reports/dashboard", c.report.Dashboard)
			auditorOrAdmin.POST("/reports/dashboard/export", c.report.ExportDashboard)
			auditorOrAdmin.GET("/audit", c.report.AuditTrail)
		}

		adminOnly := adminGroup.Group("")
		adminOnly.Use(middleware.RoleMiddleware(a.services.audit, model.Admin))
		{
			adminOnly.GET("/users", c.auth.ListUsers)
			adminOnly.POST("/certificates/:id/revoke", c.certificate.Revoke)
		}
	}
}
