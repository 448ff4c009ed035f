package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pcm-backend/dto"
	"github.com/pcm-backend/middleware"
	"github.com/pcm-backend/models"
	"github.com/pcm-backend/services"
)

// ReportController handles daily-report endpoints and the approval
// workflow
type ReportController struct {
	reportService     *services.ReportService
	permissionService *services.PermissionService
}

// NewReportController creates a new report controller
func NewReportController(reportService *services.ReportService, permissionService *services.PermissionService) *ReportController {
	return &ReportController{
		reportService:     reportService,
		permissionService: permissionService,
	}
}

// RegisterRoutes registers report routes
func (ctl *ReportController) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/projects/:projectId/reports")
	{
		projects.GET("", middleware.RequirePermission(ctl.permissionService, models.PermReportRead), ctl.ListProjectReports)
		projects.POST("", middleware.RequirePermission(ctl.permissionService, models.PermReportWrite), ctl.CreateReport)
	}

	reports := router.Group("/reports")
	{
		reports.GET("/:id", ctl.GetReport)
		reports.PUT("/:id", ctl.UpdateReport)
		reports.POST("/:id/submit", ctl.SubmitReport)
		reports.POST("/:id/approve", ctl.ApproveReport)
		reports.POST("/:id/reject", ctl.RejectReport)
	}
}

// ListProjectReports returns a project's reports, newest first
func (ctl *ReportController) ListProjectReports(c *gin.Context) {
	projectID, ok := uintParam(c, "projectId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Project ID must be an integer"})
		return
	}

	reports, err := ctl.reportService.ListByProject(projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   reports,
	})
}

// CreateReport creates a draft report authored by the caller
func (ctl *ReportController) CreateReport(c *gin.Context) {
	projectID, ok := uintParam(c, "projectId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Project ID must be an integer"})
		return
	}

	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	userID, _ := currentUser(c)
	report, err := ctl.reportService.CreateReport(projectID, userID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   report,
	})
}

// GetReport returns one report, gated by project-scoped read access
func (ctl *ReportController) GetReport(c *gin.Context) {
	report, ok := ctl.loadReportChecked(c, models.PermReportRead)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   report,
	})
}

// UpdateReport edits a draft or rejected report
func (ctl *ReportController) UpdateReport(c *gin.Context) {
	report, ok := ctl.loadReportChecked(c, models.PermReportWrite)
	if !ok {
		return
	}

	var req dto.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	userID, _ := currentUser(c)
	updated, err := ctl.reportService.UpdateReport(report.ID, userID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   updated,
	})
}

// SubmitReport moves a report into review
func (ctl *ReportController) SubmitReport(c *gin.Context) {
	report, ok := ctl.loadReportChecked(c, models.PermReportWrite)
	if !ok {
		return
	}

	userID, _ := currentUser(c)
	submitted, err := ctl.reportService.SubmitReport(report.ID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   submitted,
	})
}

// ApproveReport accepts a submitted report
func (ctl *ReportController) ApproveReport(c *gin.Context) {
	ctl.reviewReport(c, true)
}

// RejectReport sends a submitted report back to its author
func (ctl *ReportController) RejectReport(c *gin.Context) {
	ctl.reviewReport(c, false)
}

func (ctl *ReportController) reviewReport(c *gin.Context, approve bool) {
	report, ok := ctl.loadReportChecked(c, models.PermReportApprove)
	if !ok {
		return
	}

	var req dto.ReviewReportRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	userID, _ := currentUser(c)
	var reviewed models.DailyReport
	var err error
	if approve {
		reviewed, err = ctl.reportService.ApproveReport(report.ID, userID, req.Note)
	} else {
		reviewed, err = ctl.reportService.RejectReport(report.ID, userID, req.Note)
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   reviewed,
	})
}

// loadReportChecked resolves the :id report and verifies the caller
// holds the permission within the report's project
func (ctl *ReportController) loadReportChecked(c *gin.Context, permission string) (models.DailyReport, bool) {
	var zero models.DailyReport

	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Report ID must be an integer"})
		return zero, false
	}

	report, err := ctl.reportService.GetReport(id)
	if err != nil {
		handleServiceError(c, err)
		return zero, false
	}

	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Authentication required"})
		return zero, false
	}

	allowed, err := ctl.permissionService.CheckUserPermission(userID.(string), permission, &report.ProjectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Permission check failed"})
		return zero, false
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "Permission denied: " + permission})
		return zero, false
	}

	return report, true
}
