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

// EducationList returns a user's education entries, subject to the
// privacy gate.
func EducationList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	owner, ok := lookupOwner(c, d)
	if !ok {
		return
	}

	if !requireVisible(c, d, owner, privacy.FieldEducation) {
		return
	}

	var entries []model.Education

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

		zap.L().Error("Failed to fetch education entries", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, entries)
}

type educationBody struct {
	School       *string    `json:"school"`
	Degree       *string    `json:"degree"`
	FieldOfStudy *string    `json:"field_of_study"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Description  *string    `json:"description"`
}

func EducationCreate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	owner, ok := lookupOwner(c, d)
	if !ok {
		return
	}

	if !requireOwner(c, owner) {
		return
	}

	var data educationBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if data.School == nil || *data.School == "" || data.StartDate == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "School and start date are required",
			"requestID": requestID,
		})
		return
	}

	entry := model.Education{
		UserID:    owner.ID,
		School:    *data.School,
		StartDate: *data.StartDate,
		EndDate:   data.EndDate,
	}
	if data.Degree != nil {
		entry.Degree = *data.Degree
	}
	if data.FieldOfStudy != nil {
		entry.FieldOfStudy = *data.FieldOfStudy
	}
	if data.Description != nil {
		entry.Description = *data.Description
	}

	if err := d.DB.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create education entry", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func EducationUpdate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	owner, ok := lookupOwner(c, d)
	if !ok {
		return
	}

	if !requireOwner(c, owner) {
		return
	}

	entry, ok := lookupEducation(c, d, owner)
	if !ok {
		return
	}

	var data educationBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if data.School != nil {
		entry.School = *data.School
	}
	if data.Degree != nil {
		entry.Degree = *data.Degree
	}
	if data.FieldOfStudy != nil {
		entry.FieldOfStudy = *data.FieldOfStudy
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

		zap.L().Error("Failed to update education entry", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, entry)
}

func EducationDelete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	owner, ok := lookupOwner(c, d)
	if !ok {
		return
	}

	if !requireOwner(c, owner) {
		return
	}

	entry, ok := lookupEducation(c, d, owner)
	if !ok {
		return
	}

	if err := d.DB.Delete(&model.Education{}, entry.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete education entry", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Status(http.StatusNoContent)
}

func lookupEducation(c *gin.Context, d *internal.Deps, owner *model.User) (*model.Education, bool) {
	requestID := c.MustGet("requestID").(string)

	var entry model.Education

	err := d.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), owner.ID).
		First(&entry).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Education entry not found",
				"requestID": requestID,
			})
			return nil, false
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch education entry", zap.Error(err), zap.String("requestID", requestID))
		return nil, false
	}

	return &entry, true
}
