package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pcm-backend/utils"
)

// handleServiceError translates the service error taxonomy to an HTTP
// status. Store and unknown errors become a generic 500; the detail
// stays server-side in the logs, not in the response.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case utils.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
	case utils.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": err.Error()})
	case utils.IsPermissionDenied(err):
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": err.Error()})
	case utils.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"status": "error", "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
	}
}
