package relation

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"synco/social-api/internal"
	"synco/social-api/internal/relations"
)

// RelationDelete removes an edge the authenticated user created. The
// other endpoint of a FRIEND edge can see it but not delete it.
func RelationDelete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	edgeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid relation ID",
			"requestID": requestID,
		})
		return
	}

	err = d.Graph.Delete(uint(edgeID), userID)
	if err != nil {
		switch err {
		case relations.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
		case relations.ErrNotOwner:
			c.JSON(http.StatusForbidden, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to delete relation", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	c.Status(http.StatusNoContent)
}
