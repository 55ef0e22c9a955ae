package user

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"synco/social-api/internal"
	"synco/social-api/internal/model"
	"synco/social-api/internal/service"
)

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func UserLogin(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Username == "" || data.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Username and password fields can't be empty",
			"requestID": requestID,
		})
		return
	}

	var user model.User

	if err := d.DB.Where("username = ?", data.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "User not found",
			"requestID": requestID,
		})
		return
	}

	ok, err := d.Argon.VerifyPasswd(data.Password, user.PasswordHash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to verify password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Invalid credentials",
			"requestID": requestID,
		})
		return
	}

	setAuthCookies(c, d, &user, requestID)
}

// setAuthCookies issues the JWT cookie pair shared by the password and
// Google login paths.
func setAuthCookies(c *gin.Context, d *internal.Deps, user *model.User, requestID string) {
	authToken, err := makeToken(&jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"type":     "auth",
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Hour * 24 * 30).Unix(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate JWT auth token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	verified, err := service.EmailVerified(d.DB, user.ID)
	if err != nil {
		zap.L().Error("Failed to check email status", zap.Error(err), zap.String("requestID", requestID))
	}

	sslEnabled := viper.GetBool("host.ssl.enabled")

	c.SetCookie("user_id", user.ID, 60*60*24*30, "/", "", sslEnabled, false)
	c.SetCookie("auth_token", authToken, 60*60*24*30, "/", "", sslEnabled, true)
	c.SetCookie("logged_in", "1", 60*60*24*30, "/", "", sslEnabled, false)
	c.JSON(http.StatusOK, gin.H{
		"userID":   user.ID,
		"username": user.Username,
		"verified": verified,
	})
}

func makeToken(claims *jwt.MapClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(viper.GetString("jwt.secret")))
}
