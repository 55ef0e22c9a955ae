package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"synco/social-api/internal/model"
)

// NewJWTMiddleware validates the auth_token cookie and sets userID and
// username on the context. Requests without a valid token are rejected.
func NewJWTMiddleware(d *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		tokenStr, err := c.Cookie("auth_token")
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "No auth_token cookie",
				"requestID": requestID,
			})
			return
		}

		userID, username, err := parseAuthToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "token_invalid",
				"requestID": requestID,
			})

			zap.L().Debug("Failed to parse token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		// In case the account was deleted while a token for it is still
		// floating around
		var found bool
		err = d.Model(model.User{}).
			Select("count(*) > 0").
			Where("id = ?", userID).
			Find(&found).
			Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "internal_server_error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to check if user exists", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if !found {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "user_not_found",
				"requestID": requestID,
			})
			return
		}

		c.Set("userID", userID)
		c.Set("username", username)
		c.Next()
	}
}

// NewOptionalJWTMiddleware sets userID and username if a valid token is
// present but lets anonymous requests through. Used on privacy-gated read
// endpoints where the gate itself decides what an anonymous viewer sees.
func NewOptionalJWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie("auth_token")
		if err != nil {
			c.Next()
			return
		}

		userID, username, err := parseAuthToken(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		c.Set("userID", userID)
		c.Set("username", username)
		c.Next()
	}
}

func parseAuthToken(tokenStr string) (userID, username string, err error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return []byte(viper.GetString("jwt.secret")), nil
	})
	if err != nil {
		return "", "", err
	}

	if !token.Valid {
		return "", "", fmt.Errorf("token invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("unexpected claims type")
	}

	userID, ok = claims["user_id"].(string)
	if !ok {
		return "", "", fmt.Errorf("user_id claim missing")
	}

	username, _ = claims["username"].(string)

	exp, ok := claims["exp"].(float64)
	if !ok {
		return "", "", fmt.Errorf("exp claim missing")
	}

	if time.Now().Unix() >= int64(exp) {
		return "", "", fmt.Errorf("token expired")
	}

	return userID, username, nil
}
