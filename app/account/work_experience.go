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

// WorkExperienceList returns a user's work history, subject to the
// privacy gate.
func WorkExperienceList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	owner, ok := lookupOwner(c, d)
	if !ok {
		return
	}

	if !requireVisible(c, d, owner, privacy.FieldWorkExperience) {
		return
	}

	var entries []model.WorkExperience

	err := d.DB.
		Where("user_id = ?", owner.ID).
		Order("start_date desc").
		Find(&entries).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch work experience entries", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, entries)
}

type workExperienceBody struct {
	Company     *string    `json:"company"`
	Position    *string    `json:"position"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Description *string    `json:"description"`
}

func WorkExperienceCreate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	owner, ok := lookupOwner(c, d)
	if !ok {
		return
	}

	if !requireOwner(c, owner) {
		return
	}

	var data workExperienceBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if data.Company == nil || *data.Company == "" || data.StartDate == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Company and start date are required",
			"requestID": requestID,
		})
		return
	}

	entry := model.WorkExperience{
		UserID:    owner.ID,
		Company:   *data.Company,
		StartDate: *data.StartDate,
		EndDate:   data.EndDate,
	}
	if data.Position != nil {
		entry.Position = *data.Position
	}
	if data.Description != nil {
		entry.Description = *data.Description
	}

	if err := d.DB.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create work experience entry", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func WorkExperienceUpdate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	owner, ok := lookupOwner(c, d)
	if !ok {
		return
	}

	if !requireOwner(c, owner) {
		return
	}

	entry, ok := lookupWorkExperience(c, d, owner)
	if !ok {
		return
	}

	var data workExperienceBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if data.Company != nil {
		entry.Company = *data.Company
	}
	if data.Position != nil {
		entry.Position = *data.Position
	}
	if data.StartDate != nil {
		entry.StartDate = *data.StartDate
	}
	if data.EndDate != nil {
		entry.EndDate = data.EndDate
	}
	if data.Description != nil {
		entry.Description = *data.Description
	}

	if err := d.DB.Save(entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update work experience entry", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, entry)
}

func WorkExperienceDelete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	owner, ok := lookupOwner(c, d)
	if !ok {
		return
	}

	if !requireOwner(c, owner) {
		return
	}

	entry, ok := lookupWorkExperience(c, d, owner)
	if !ok {
		return
	}

	if err := d.DB.Delete(&model.WorkExperience{}, entry.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete work experience entry", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Status(http.StatusNoContent)
}

func lookupWorkExperience(c *gin.Context, d *internal.Deps, owner *model.User) (*model.WorkExperience, bool) {
	requestID := c.MustGet("requestID").(string)

	var entry model.WorkExperience

	err := d.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), owner.ID).
		First(&entry).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Work experience entry not found",
				"requestID": requestID,
			})
			return nil, false
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch work experience entry", zap.Error(err), zap.String("requestID", requestID))
		return nil, false
	}

	return &entry, true
}
