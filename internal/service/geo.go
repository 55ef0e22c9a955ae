package service

import (
	"errors"

	"gorm.io/gorm"

	"synco/social-api/internal/model"
)

var (
	ErrCityNotFound        = errors.New("city not found")
	ErrCountryNotFound     = errors.New("country not found")
	ErrCityCountryMismatch = errors.New("city does not belong to the country")
)

// ValidateCountryAndCity checks that the claimed city belongs to the
// claimed country. A city without a country fills the country in from
// the city itself.
func ValidateCountryAndCity(db *gorm.DB, countryID, cityID *uint) (country, city *uint, err error) {
	if cityID == nil {
		if countryID != nil {
			var found bool
			err := db.Model(model.Country{}).
				Select("count(*) > 0").
				Where("id = ?", *countryID).
				Find(&found).
				Error
			if err != nil {
				return nil, nil, err
			}
			if !found {
				return nil, nil, ErrCountryNotFound
			}
		}
		return countryID, nil, nil
	}

	var c model.City
	err = db.Where("id = ?", *cityID).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCityNotFound
		}
		return nil, nil, err
	}

	if countryID == nil {
		return &c.CountryID, cityID, nil
	}

	if c.CountryID != *countryID {
		return nil, nil, ErrCityCountryMismatch
	}

	return countryID, cityID, nil
}
