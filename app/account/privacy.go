package account

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"synco/social-api/internal"
	"synco/social-api/internal/model"
)

// PrivacyFetch returns the owner's privacy settings, creating the row
// with public defaults on first access. Settings are never shown to
// anyone but the owner.
func PrivacyFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	owner, ok := lookupOwner(c, d)
	if !ok {
		return
	}

	if !requireOwner(c, owner) {
		return
	}

	setting, created, err := d.Gate.GetOrCreate(owner.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch privacy settings", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if created {
		zap.L().Debug("Created default privacy settings", zap.String("userID", owner.ID))
	}

	c.JSON(http.StatusOK, setting)
}

type privacyPatchBody struct {
	Profile        *model.Visibility `json:"profile"`
	Address        *model.Visibility `json:"address"`
	Education      *model.Visibility `json:"education"`
	WorkExperience *model.Visibility `json:"work_experience"`
}

func PrivacyUpdate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	owner, ok := lookupOwner(c, d)
	if !ok {
		return
	}

	if !requireOwner(c, owner) {
		return
	}

	var data privacyPatchBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	for _, v := range []*model.Visibility{data.Profile, data.Address, data.Education, data.WorkExperience} {
		if v != nil && !v.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid visibility level provided",
				"requestID": requestID,
			})
			return
		}
	}

	setting, _, err := d.Gate.GetOrCreate(owner.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch privacy settings", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Profile != nil {
		setting.Profile = *data.Profile
	}
	if data.Address != nil {
		setting.Address = *data.Address
	}
	if data.Education != nil {
		setting.Education = *data.Education
	}
	if data.WorkExperience != nil {
		setting.WorkExperience = *data.WorkExperience
	}

	if err := d.DB.Save(setting).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save privacy settings", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, setting)
}
