// Package root contains endpoints that don't belong to any resource
package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Validate only ever runs behind the JWT middleware, so reaching it
// means the token checked out
func Validate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"userID":   c.GetString("userID"),
		"username": c.GetString("username"),
	})
}
