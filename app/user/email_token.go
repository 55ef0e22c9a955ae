package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"synco/social-api/internal"
	"synco/social-api/internal/model"
	"synco/social-api/internal/service"
)

// UserEmailToken issues a fresh verification token for the current user
// and mails the link. Only the account owner can request one, and not
// for an already-verified address.
func UserEmailToken(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	if c.GetString("username") != c.Param("username") {
		c.JSON(http.StatusForbidden, gin.H{
			"error":     "You do not have permission to access this resource",
			"requestID": requestID,
		})
		return
	}

	var user model.User
	if err := d.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		status := http.StatusInternalServerError
		if err == gorm.ErrRecordNotFound {
			status = http.StatusNotFound
		}

		c.JSON(status, gin.H{
			"error":     "User not found",
			"requestID": requestID,
		})
		return
	}

	verified, err := service.EmailVerified(d.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check email status", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if verified {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Email is already verified",
			"requestID": requestID,
		})
		return
	}

	token, err := service.IssueVerificationToken(d.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to issue verification token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	go d.Mailer.SendVerificationMail(token, user.Email, user.FirstName, true)

	c.JSON(http.StatusOK, gin.H{
		"detail":    "Email verification link will be sent to you soon",
		"requestID": requestID,
	})
}
