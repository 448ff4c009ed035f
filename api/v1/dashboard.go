package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pcm-backend/middleware"
	"github.com/pcm-backend/models"
	"github.com/pcm-backend/services"
)

// DashboardController handles the read-only project summary endpoint
type DashboardController struct {
	dashboardService  *services.DashboardService
	permissionService *services.PermissionService
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(dashboardService *services.DashboardService, permissionService *services.PermissionService) *DashboardController {
	return &DashboardController{
		dashboardService:  dashboardService,
		permissionService: permissionService,
	}
}

// RegisterRoutes registers dashboard routes
func (ctl *DashboardController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/projects/:projectId/dashboard",
		middleware.RequirePermission(ctl.permissionService, models.PermWBSRead),
		ctl.GetProjectDashboard)
}

// GetProjectDashboard returns the aggregated figures for one project
func (ctl *DashboardController) GetProjectDashboard(c *gin.Context) {
	projectID, ok := uintParam(c, "projectId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Project ID must be an integer"})
		return
	}

	dashboard, err := ctl.dashboardService.ProjectDashboard(projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   dashboard,
	})
}
