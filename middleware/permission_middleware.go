package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pcm-backend/services"
)

// RequirePermission gates a route behind a named permission. When the
// route carries a projectId parameter the check is project-scoped.
// Must run after AuthMiddleware.
func RequirePermission(permissionService *services.PermissionService, permissionName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userId")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Authentication required",
			})
			c.Abort()
			return
		}

		var projectID *uint
		if raw := c.Param("projectId"); raw != "" {
			parsed, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"status":  "error",
					"message": "Project ID must be an integer",
				})
				c.Abort()
				return
			}
			id := uint(parsed)
			projectID = &id
		}

		allowed, err := permissionService.CheckUserPermission(userID.(string), permissionName, projectID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Permission check failed",
			})
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "Permission denied: " + permissionName,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminMiddleware ensures the user has the admin role. Must run after
// AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Authentication required",
			})
			c.Abort()
			return
		}

		if roleStr, ok := role.(string); !ok || roleStr != "admin" {
			c.JSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "Admin privileges required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
