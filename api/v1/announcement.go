package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pcm-backend/dto"
	"github.com/pcm-backend/middleware"
	"github.com/pcm-backend/models"
	"github.com/pcm-backend/services"
)

// AnnouncementController handles announcement endpoints
type AnnouncementController struct {
	announcementService *services.AnnouncementService
	permissionService   *services.PermissionService
}

// NewAnnouncementController creates a new announcement controller
func NewAnnouncementController(announcementService *services.AnnouncementService, permissionService *services.PermissionService) *AnnouncementController {
	return &AnnouncementController{
		announcementService: announcementService,
		permissionService:   permissionService,
	}
}

// RegisterRoutes registers announcement routes. Reading is open to any
// authenticated user; mutation needs announcement.manage.
func (ctl *AnnouncementController) RegisterRoutes(router *gin.RouterGroup) {
	manage := middleware.RequirePermission(ctl.permissionService, models.PermAnnouncementManage)

	announcements := router.Group("/announcements")
	{
		announcements.GET("", ctl.ListAnnouncements)
		announcements.GET("/active", ctl.ListActiveAnnouncements)
		announcements.GET("/:id", ctl.GetAnnouncement)
		announcements.POST("", manage, ctl.CreateAnnouncement)
		announcements.PUT("/:id", manage, ctl.UpdateAnnouncement)
		announcements.DELETE("/:id", manage, ctl.DeleteAnnouncement)
	}
}

// ListAnnouncements returns every announcement
func (ctl *AnnouncementController) ListAnnouncements(c *gin.Context) {
	announcements, err := ctl.announcementService.ListAll()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   announcements,
	})
}

// ListActiveAnnouncements returns only currently visible announcements
func (ctl *AnnouncementController) ListActiveAnnouncements(c *gin.Context) {
	announcements, err := ctl.announcementService.ListActive()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   announcements,
	})
}

// GetAnnouncement returns one announcement
func (ctl *AnnouncementController) GetAnnouncement(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Announcement ID must be an integer"})
		return
	}

	announcement, err := ctl.announcementService.GetAnnouncement(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   announcement,
	})
}

// CreateAnnouncement creates an announcement authored by the caller
func (ctl *AnnouncementController) CreateAnnouncement(c *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	userID, _ := currentUser(c)
	announcement, err := ctl.announcementService.CreateAnnouncement(userID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   announcement,
	})
}

// UpdateAnnouncement edits an announcement
func (ctl *AnnouncementController) UpdateAnnouncement(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Announcement ID must be an integer"})
		return
	}

	var req dto.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	announcement, err := ctl.announcementService.UpdateAnnouncement(id, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   announcement,
	})
}

// DeleteAnnouncement removes an announcement
func (ctl *AnnouncementController) DeleteAnnouncement(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Announcement ID must be an integer"})
		return
	}

	if err := ctl.announcementService.DeleteAnnouncement(id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Announcement deleted",
	})
}
