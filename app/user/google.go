package user

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"synco/social-api/internal"
	"synco/social-api/internal/model"
)

type googleLoginBody struct {
	Code string `json:"code"`
}

// UserGoogleLogin exchanges a Google OAuth authorization code for our own
// session. Unknown emails get an account created on the fly with the
// GOOGLE registration method and a pre-verified email, since Google
// already verified it.
func UserGoogleLogin(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	if !viper.GetBool("google.enabled") {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Google login is disabled",
			"requestID": requestID,
		})
		return
	}

	var data googleLoginBody
	if err := c.ShouldBind(&data); err != nil || data.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No authorization code provided",
			"requestID": requestID,
		})
		return
	}

	token, err := d.Google.Exchange(c.Request.Context(), data.Code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Failed to obtain access token from Google",
			"requestID": requestID,
		})

		zap.L().Debug("Google code exchange failed", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	info, err := d.Google.UserInfo(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     "Failed to obtain user info from Google",
			"requestID": requestID,
		})

		zap.L().Error("Google userinfo failed", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var user model.User

	err = d.DB.Where("email = ?", info.Email).First(&user).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		created, err := createGoogleUser(d, info.Email, info.GivenName, info.FamilyName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to create Google user", zap.Error(err), zap.String("requestID", requestID))
			return
		}
		user = *created
	}

	setAuthCookies(c, d, &user, requestID)
}

func createGoogleUser(d *internal.Deps, email, firstName, lastName string) (*model.User, error) {
	userID, err := gonanoid.Generate(charset, 16)
	if err != nil {
		return nil, err
	}

	// Password logins stay possible in principle but nobody knows this
	// password, Google accounts authenticate through the code exchange
	randomPass, err := gonanoid.New(32)
	if err != nil {
		return nil, err
	}

	hash, err := d.Argon.GenerateFromPassword(randomPass)
	if err != nil {
		return nil, err
	}

	username, err := uniqueUsername(d, email)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &model.User{
		ID:                 userID,
		Username:           username,
		Email:              email,
		PasswordHash:       hash,
		FirstName:          firstName,
		LastName:           lastName,
		RegistrationMethod: model.RegistrationGoogle,
		VerificationTokens: []model.VerificationToken{
			// A redeemed token marks the email verified from the start
			{
				Token:     "google-" + userID,
				ExpiresAt: now,
				Used:      true,
				UsedAt:    &now,
				CreatedAt: now,
			},
		},
	}

	if err := d.DB.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

func uniqueUsername(d *internal.Deps, email string) (string, error) {
	base := strings.Split(email, "@")[0]

	var taken bool
	err := d.DB.Model(model.User{}).
		Select("count(*) > 0").
		Where("username = ?", base).
		Find(&taken).
		Error
	if err != nil {
		return "", err
	}

	if !taken {
		return base, nil
	}

	suffix, err := gonanoid.Generate("0123456789", 6)
	if err != nil {
		return "", err
	}

	return base + suffix, nil
}
