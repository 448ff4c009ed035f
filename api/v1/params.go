package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// uintParam parses an integer route parameter
func uintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(parsed), true
}

// currentUser pulls the user id and admin flag set by AuthMiddleware
func currentUser(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		return "", false
	}
	role, _ := c.Get("role")
	return userID.(string), role == "admin"
}
