package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"synco/social-api/internal"
	"synco/social-api/internal/model"
	"synco/social-api/internal/service"
	"synco/social-api/pkg/validators"
)

type changeEmailBody struct {
	Email string `json:"email"`
}

// UserChangeEmail updates the account email and re-issues a verification
// token, which supersedes any previous one. Google accounts keep the
// email Google gave us.
func UserChangeEmail(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	if c.GetString("username") != c.Param("username") {
		c.JSON(http.StatusForbidden, gin.H{
			"error":     "You do not have permission to access this resource",
			"requestID": requestID,
		})
		return
	}

	var data changeEmailBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	var user model.User
	if err := d.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if user.RegistrationMethod == model.RegistrationGoogle {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Email cannot be changed for Google registered users",
			"requestID": requestID,
		})
		return
	}

	var taken bool
	err := d.DB.Model(model.User{}).
		Select("count(*) > 0").
		Where("email = ? AND id <> ?", data.Email, userID).
		Find(&taken).
		Error
	if err != nil && err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check email uniqueness", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if taken {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "This email is already registered",
			"requestID": requestID,
		})
		return
	}

	if err := d.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("email", data.Email).
		Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to change email", zap.Error(err), zap.String("requestID", requestID))
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

	go d.Mailer.SendVerificationMail(token, data.Email, user.FirstName, false)

	c.JSON(http.StatusOK, gin.H{
		"detail":    "Email changed. A verification link has been sent to the new address",
		"requestID": requestID,
	})
}
