// Package account contains the per-user record endpoints: profile,
// address, education, work experience and privacy settings. Reads go
// through the privacy gate, writes require the requester to be the
// record owner.
package account

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"synco/social-api/internal"
	"synco/social-api/internal/model"
	"synco/social-api/internal/privacy"
)

// lookupOwner resolves the :username path parameter to a user. On
// failure the response has already been written and ok is false.
func lookupOwner(c *gin.Context, d *internal.Deps) (owner *model.User, ok bool) {
	requestID := c.MustGet("requestID").(string)

	username := c.Param("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No username provided",
			"requestID": requestID,
		})
		return nil, false
	}

	owner = &model.User{}
	err := d.DB.Where("username = ?", username).First(owner).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
			return nil, false
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return nil, false
	}

	return owner, true
}

// isCurrentUser is the flat ownership predicate: the authenticated
// identity must equal the path identity.
func isCurrentUser(c *gin.Context, owner *model.User) bool {
	return c.GetString("userID") == owner.ID
}

// requireOwner rejects the request unless the requester owns the
// resource. Returns false when the response has been written.
func requireOwner(c *gin.Context, owner *model.User) bool {
	if isCurrentUser(c, owner) {
		return true
	}

	c.JSON(http.StatusForbidden, gin.H{
		"error":     "You do not have permission to access this resource",
		"requestID": c.MustGet("requestID").(string),
	})
	return false
}

// requireVisible runs the privacy gate for a read. Returns false when
// the response has been written. The viewer may be anonymous.
func requireVisible(c *gin.Context, d *internal.Deps, owner *model.User, field privacy.FieldGroup) bool {
	requestID := c.MustGet("requestID").(string)

	allowed, err := d.Gate.CanView(c.GetString("userID"), owner.ID, field)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Privacy check failed", zap.Error(err), zap.String("requestID", requestID))
		return false
	}

	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{
			"error":     "You don't have permission to access this resource",
			"requestID": requestID,
		})
		return false
	}

	return true
}
