package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pcm-backend/dto"
	"github.com/pcm-backend/middleware"
	"github.com/pcm-backend/models"
	"github.com/pcm-backend/services"
	"github.com/pcm-backend/utils"
)

// WBSController handles the WBS tree and item endpoints
type WBSController struct {
	wbsService        *services.WBSService
	permissionService *services.PermissionService
}

// NewWBSController creates a new WBS controller
func NewWBSController(wbsService *services.WBSService, permissionService *services.PermissionService) *WBSController {
	return &WBSController{
		wbsService:        wbsService,
		permissionService: permissionService,
	}
}

// RegisterRoutes registers WBS routes. Project-scoped routes are gated
// up front; item routes resolve the project from the item and check
// inside the handler.
func (ctl *WBSController) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/projects/:projectId/wbs")
	{
		projects.GET("", middleware.RequirePermission(ctl.permissionService, models.PermWBSRead), ctl.GetProjectTree)
		projects.POST("", middleware.RequirePermission(ctl.permissionService, models.PermWBSCreate), ctl.CreateItem)
	}

	items := router.Group("/wbs/items")
	{
		items.GET("/:id", ctl.GetItem)
		items.PUT("/:id", ctl.UpdateItem)
		items.DELETE("/:id", ctl.DeleteItem)
		items.POST("/:id/reorder", ctl.ReorderItem)
		items.GET("/:id/history", ctl.GetItemHistory)
	}
}

// GetProjectTree returns a project's WBS as a nested forest
func (ctl *WBSController) GetProjectTree(c *gin.Context) {
	projectID, ok := uintParam(c, "projectId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Project ID must be an integer"})
		return
	}

	tree, err := ctl.wbsService.ProjectTree(projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   tree,
	})
}

// CreateItem adds a WBS item to a project
func (ctl *WBSController) CreateItem(c *gin.Context) {
	projectID, ok := uintParam(c, "projectId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Project ID must be an integer"})
		return
	}

	var req dto.CreateWBSItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	userID, _ := currentUser(c)
	item, err := ctl.wbsService.Create(projectID, userID, req)
	if err != nil && !utils.IsChangeLogFailed(err) {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successBody(item, err))
}

// GetItem returns one WBS item
func (ctl *WBSController) GetItem(c *gin.Context) {
	item, ok := ctl.loadItemChecked(c, models.PermWBSRead)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   item,
	})
}

// UpdateItem edits a WBS item's content fields
func (ctl *WBSController) UpdateItem(c *gin.Context) {
	item, ok := ctl.loadItemChecked(c, models.PermWBSUpdate)
	if !ok {
		return
	}

	var req dto.UpdateWBSItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	userID, _ := currentUser(c)
	updated, err := ctl.wbsService.Update(item.ID, userID, req)
	if err != nil && !utils.IsChangeLogFailed(err) {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, successBody(updated, err))
}

// DeleteItem removes a leaf WBS item. A change reason is mandatory.
func (ctl *WBSController) DeleteItem(c *gin.Context) {
	item, ok := ctl.loadItemChecked(c, models.PermWBSDelete)
	if !ok {
		return
	}

	var req dto.DeleteWBSItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "A changeReason is required to delete",
		})
		return
	}

	userID, _ := currentUser(c)
	err := ctl.wbsService.Delete(item.ID, userID, req.ChangeReason)
	if err != nil && !utils.IsChangeLogFailed(err) {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, successBody(gin.H{"deleted": true}, err))
}

// ReorderItem moves a WBS item to a new parent and/or position
func (ctl *WBSController) ReorderItem(c *gin.Context) {
	item, ok := ctl.loadItemChecked(c, models.PermWBSUpdate)
	if !ok {
		return
	}

	var req dto.ReorderWBSItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "newSortOrder must be a non-negative integer",
		})
		return
	}

	userID, _ := currentUser(c)
	moved, err := ctl.wbsService.Reorder(item.ID, userID, req)
	if err != nil && !utils.IsChangeLogFailed(err) {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, successBody(moved, err))
}

// GetItemHistory returns the audit trail of one WBS item
func (ctl *WBSController) GetItemHistory(c *gin.Context) {
	item, ok := ctl.loadItemChecked(c, models.PermWBSRead)
	if !ok {
		return
	}

	history, err := ctl.wbsService.History(item.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   history,
	})
}

// loadItemChecked resolves the :id item and verifies the caller holds
// the permission within the item's project. Writes the error response
// itself when the check fails.
func (ctl *WBSController) loadItemChecked(c *gin.Context, permission string) (models.WBSItem, bool) {
	var zero models.WBSItem

	id, ok := uintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Item ID must be an integer"})
		return zero, false
	}

	item, err := ctl.wbsService.GetItem(id)
	if err != nil {
		handleServiceError(c, err)
		return zero, false
	}

	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Authentication required"})
		return zero, false
	}

	allowed, err := ctl.permissionService.CheckUserPermission(userID.(string), permission, &item.ProjectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Permission check failed"})
		return zero, false
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "Permission denied: " + permission})
		return zero, false
	}

	return item, true
}

// successBody wraps a payload, flagging mutations whose audit entry
// could not be written
func successBody(data interface{}, err error) gin.H {
	body := gin.H{
		"status": "success",
		"data":   data,
	}
	if err != nil && utils.IsChangeLogFailed(err) {
		body["status"] = "partial"
		body["warning"] = "change applied but audit log entry could not be written"
	}
	return body
}
