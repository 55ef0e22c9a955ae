package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"synco/social-api/internal"
	"synco/social-api/internal/service"
)

// UserVerify consumes an email verification token. Invalid, expired and
// superseded tokens are informational outcomes for the user, not errors.
func UserVerify(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No verification token provided",
			"requestID": requestID,
		})
		return
	}

	status, err := service.RedeemVerificationToken(d.DB, token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to redeem verification token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"detail":    status.Message(),
		"verified":  status == service.TokenVerified,
		"requestID": requestID,
	})
}
