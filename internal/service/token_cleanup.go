package service

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"synco/social-api/internal/model"
)

// TokenCleanup periodically deletes verification tokens that can never
// be redeemed anymore. The newest token per user is always kept, it
// carries the user's verified state.
func TokenCleanup(t time.Duration, db *gorm.DB) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Token cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			res := db.
				Where("expires_at < ? AND used = ?", time.Now(), false).
				Where("id NOT IN (?)", db.
					Model(model.VerificationToken{}).
					Select("max(id)").
					Group("user_id")).
				Delete(&model.VerificationToken{})
			if res.Error != nil {
				zap.L().Error("Failed to cleanup expired tokens", zap.Error(res.Error))
				continue
			}

			if res.RowsAffected > 0 {
				zap.L().Debug("Cleaned up expired tokens", zap.Int64("count", res.RowsAffected))
			}
		}
	}()
}
