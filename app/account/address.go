package account

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"synco/social-api/internal"
	"synco/social-api/internal/model"
	"synco/social-api/internal/privacy"
	"synco/social-api/internal/service"
)

// AddressFetch returns a user's address, subject to the privacy gate.
func AddressFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	owner, ok := lookupOwner(c, d)
	if !ok {
		return
	}

	if !requireVisible(c, d, owner, privacy.FieldAddress) {
		return
	}

	address := model.Address{UserID: owner.ID}

	err := d.DB.
		Preload("Country").
		Preload("City").
		Where("user_id = ?", owner.ID).
		First(&address).
		Error
	if err != nil && err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch address", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, address)
}

type addressPatchBody struct {
	CountryID *uint `json:"country_id"`
	CityID    *uint `json:"city_id"`
}

// AddressUpdate sets the owner's country and city. The city has to
// belong to the claimed country.
func AddressUpdate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	owner, ok := lookupOwner(c, d)
	if !ok {
		return
	}

	if !requireOwner(c, owner) {
		return
	}

	var data addressPatchBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	countryID, cityID, err := service.ValidateCountryAndCity(d.DB, data.CountryID, data.CityID)
	if err != nil {
		switch err {
		case service.ErrCityNotFound, service.ErrCountryNotFound, service.ErrCityCountryMismatch:
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to validate country and city", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	address := model.Address{UserID: owner.ID}

	err = d.DB.Where("user_id = ?", owner.ID).First(&address).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch address", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	address.CountryID = countryID
	address.CityID = cityID

	if err := d.DB.Save(&address).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save address", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, address)
}
