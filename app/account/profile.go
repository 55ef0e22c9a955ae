package account

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"synco/social-api/internal"
	"synco/social-api/internal/model"
	"synco/social-api/internal/privacy"
)

// ProfileFetch returns a user's profile, subject to the privacy gate.
// A user who never saved a profile gets an empty one back, the read
// never writes a row.
func ProfileFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	owner, ok := lookupOwner(c, d)
	if !ok {
		return
	}

	if !requireVisible(c, d, owner, privacy.FieldProfile) {
		return
	}

	profile := model.Profile{UserID: owner.ID}

	err := d.DB.Where("user_id = ?", owner.ID).First(&profile).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch profile", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, profile)
}

type profilePatchBody struct {
	Bio       *string       `json:"bio"`
	Gender    *model.Gender `json:"gender"`
	BirthDate *time.Time    `json:"birth_date"`
	Website   *string       `json:"website"`
	Phone     *string       `json:"phone"`
	Avatar    *string       `json:"avatar"`
}

// ProfileUpdate partially updates the owner's profile, creating the row
// on first write.
func ProfileUpdate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	owner, ok := lookupOwner(c, d)
	if !ok {
		return
	}

	if !requireOwner(c, owner) {
		return
	}

	var data profilePatchBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if data.Gender != nil {
		switch *data.Gender {
		case model.GenderMale, model.GenderFemale, model.GenderOther:
		default:
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid gender provided",
				"requestID": requestID,
			})
			return
		}
	}

	profile := model.Profile{UserID: owner.ID}

	err := d.DB.Where("user_id = ?", owner.ID).First(&profile).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch profile", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Bio != nil {
		profile.Bio = *data.Bio
	}
	if data.Gender != nil {
		profile.Gender = *data.Gender
	}
	if data.BirthDate != nil {
		profile.BirthDate = data.BirthDate
	}
	if data.Website != nil {
		profile.Website = *data.Website
	}
	if data.Phone != nil {
		profile.Phone = *data.Phone
	}
	if data.Avatar != nil {
		profile.Avatar = *data.Avatar
	}

	if err := d.DB.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save profile", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, profile)
}
