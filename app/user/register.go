// Package user contains the account lifecycle endpoints: registration,
// login, email verification and email changes
package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"synco/social-api/internal"
	"synco/social-api/internal/model"
	"synco/social-api/internal/service"
	"synco/social-api/pkg/validators"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

type registerBody struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func UserRegister(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	for _, err := range []error{
		validators.UsernameValidator(data.Username),
		validators.EmailValidator(data.Email),
		validators.PasswordValidator(data.Password),
	} {
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}
	}

	var taken bool

	r := d.DB.Model(model.User{}).
		Select("count(*) > 0").
		Where("email = ? OR username = ?", data.Email, data.Username).
		Find(&taken)
	if r.Error != nil && r.Error != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if user is registered", zap.Error(r.Error), zap.String("requestID", requestID))
		return
	}

	if taken {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "This username or email is already registered. Please login or use different credentials",
			"requestID": requestID,
		})
		return
	}

	hash, err := d.Argon.GenerateFromPassword(data.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	userID, err := gonanoid.Generate(charset, 16)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate user ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := d.DB.Create(&model.User{
		ID:                 userID,
		Username:           data.Username,
		Email:              data.Email,
		PasswordHash:       hash,
		FirstName:          data.FirstName,
		LastName:           data.LastName,
		RegistrationMethod: model.RegistrationEmail,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
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

	// Mail is a side effect of an already-successful registration, its
	// failure never fails the request
	go d.Mailer.SendRegistrationMail(data.Email, data.FirstName)
	go d.Mailer.SendVerificationMail(token, data.Email, data.FirstName, true)

	c.JSON(http.StatusCreated, gin.H{
		"userID":    userID,
		"requestID": requestID,
	})
}
