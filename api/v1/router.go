package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/pcm-backend/middleware"
	"github.com/pcm-backend/pkg/logger"
	"github.com/pcm-backend/services"
	"gorm.io/gorm"
)

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, db *gorm.DB, log *logger.Logger) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	permissionService := services.NewPermissionService(db)

	// Auth endpoints
	authController := NewAuthController(services.NewAuthService(db))
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", authController.Register)
		authGroup.POST("/login", authController.Login)
		authGroup.POST("/logout", authController.Logout)
		// Use auth middleware here only for the /me endpoint
		authGroup.GET("/me", middleware.AuthMiddleware(), authController.GetCurrentUser)
	}

	// Everything else requires authentication
	authRouter := router.Group("")
	authRouter.Use(middleware.AuthMiddleware())

	projectController := NewProjectController(services.NewProjectService(db), permissionService)
	projectController.RegisterRoutes(authRouter)

	wbsController := NewWBSController(services.NewWBSService(db, log), permissionService)
	wbsController.RegisterRoutes(authRouter)

	reportController := NewReportController(services.NewReportService(db), permissionService)
	reportController.RegisterRoutes(authRouter)

	dashboardController := NewDashboardController(services.NewDashboardService(db), permissionService)
	dashboardController.RegisterRoutes(authRouter)

	announcementController := NewAnnouncementController(services.NewAnnouncementService(db), permissionService)
	announcementController.RegisterRoutes(authRouter)
}
