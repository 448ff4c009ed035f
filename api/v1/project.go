package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pcm-backend/dto"
	"github.com/pcm-backend/middleware"
	"github.com/pcm-backend/models"
	"github.com/pcm-backend/services"
)

// ProjectController handles project CRUD and membership endpoints
type ProjectController struct {
	projectService    *services.ProjectService
	permissionService *services.PermissionService
}

// NewProjectController creates a new project controller
func NewProjectController(projectService *services.ProjectService, permissionService *services.PermissionService) *ProjectController {
	return &ProjectController{
		projectService:    projectService,
		permissionService: permissionService,
	}
}

// RegisterRoutes registers project routes
func (ctl *ProjectController) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/projects")
	{
		projects.GET("", ctl.ListProjects)
		projects.POST("", ctl.CreateProject)
		projects.GET("/:projectId", ctl.GetProject)
		projects.PUT("/:projectId", middleware.RequirePermission(ctl.permissionService, models.PermProjectManage), ctl.UpdateProject)
		projects.DELETE("/:projectId", middleware.RequirePermission(ctl.permissionService, models.PermProjectManage), ctl.DeleteProject)
		projects.GET("/:projectId/members", ctl.ListMembers)
		projects.POST("/:projectId/members", middleware.RequirePermission(ctl.permissionService, models.PermProjectManage), ctl.AddMember)
		projects.DELETE("/:projectId/members/:userId", middleware.RequirePermission(ctl.permissionService, models.PermProjectManage), ctl.RemoveMember)
	}
}

// ListProjects lists projects with pagination and filtering
func (ctl *ProjectController) ListProjects(c *gin.Context) {
	userID, isAdmin := currentUser(c)

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil || pageSize < 1 {
		pageSize = 10
	}

	filter := dto.ProjectFilter{
		UserID:    userID,
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sortBy", "created_at"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
		Page:      page,
		PageSize:  pageSize,
		IsAdmin:   isAdmin,
	}

	response, err := ctl.projectService.ListProjects(filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   response,
	})
}

// CreateProject creates a project owned by the caller
func (ctl *ProjectController) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	userID, _ := currentUser(c)
	project, err := ctl.projectService.CreateProject(userID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   project,
	})
}

// GetProject returns a project with its member list
func (ctl *ProjectController) GetProject(c *gin.Context) {
	projectID, ok := uintParam(c, "projectId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Project ID must be an integer"})
		return
	}

	userID, isAdmin := currentUser(c)
	project, err := ctl.projectService.GetProjectDetail(projectID, userID, isAdmin)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   project,
	})
}

// UpdateProject edits a project
func (ctl *ProjectController) UpdateProject(c *gin.Context) {
	projectID, ok := uintParam(c, "projectId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Project ID must be an integer"})
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	project, err := ctl.projectService.UpdateProject(projectID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   project,
	})
}

// DeleteProject removes a project without WBS items
func (ctl *ProjectController) DeleteProject(c *gin.Context) {
	projectID, ok := uintParam(c, "projectId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Project ID must be an integer"})
		return
	}

	if err := ctl.projectService.DeleteProject(projectID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Project deleted",
	})
}

// ListMembers returns a project's member list
func (ctl *ProjectController) ListMembers(c *gin.Context) {
	projectID, ok := uintParam(c, "projectId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Project ID must be an integer"})
		return
	}

	userID, isAdmin := currentUser(c)
	project, err := ctl.projectService.GetProjectDetail(projectID, userID, isAdmin)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   project.Members,
	})
}

// AddMember adds a user to a project
func (ctl *ProjectController) AddMember(c *gin.Context) {
	projectID, ok := uintParam(c, "projectId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Project ID must be an integer"})
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	member, err := ctl.projectService.AddMember(projectID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   member,
	})
}

// RemoveMember drops a user from a project
func (ctl *ProjectController) RemoveMember(c *gin.Context) {
	projectID, ok := uintParam(c, "projectId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Project ID must be an integer"})
		return
	}

	if err := ctl.projectService.RemoveMember(projectID, c.Param("userId")); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Member removed",
	})
}
