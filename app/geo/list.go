// Package geo contains the country and city lookup endpoints backing
// the address form
package geo

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"synco/social-api/internal"
	"synco/social-api/internal/model"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// CountryList returns countries, optionally filtered by a name search,
// with limit/offset pagination.
func CountryList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	limit, offset := pagination(c)

	query := d.DB.Model(model.Country{})
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count countries", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var countries []model.Country
	err := query.Order("name").Limit(limit).Offset(offset).Find(&countries).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch countries", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   total,
		"results": countries,
	})
}

// CityList returns the cities of the country given by its ISO code3.
func CityList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	limit, offset := pagination(c)

	var country model.Country
	if err := d.DB.Where("code3 = ?", c.Param("code")).First(&country).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Country not found",
			"requestID": requestID,
		})
		return
	}

	query := d.DB.Model(model.City{}).Where("country_id = ?", country.ID)
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count cities", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var cities []model.City
	err := query.Order("name").Limit(limit).Offset(offset).Find(&cities).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch cities", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   total,
		"results": cities,
	})
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit"))
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset, _ = strconv.Atoi(c.Query("offset"))
	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
