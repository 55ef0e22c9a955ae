package model

import "time"

type Address struct {
	UserID     string    `gorm:"primaryKey" json:"-"`
	CountryID  *uint     `json:"country_id"`
	CityID     *uint     `json:"city_id"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `gorm:"autoUpdateTime" json:"modified_at"`

	Country *Country `gorm:"foreignKey:CountryID" json:"country,omitempty"`
	City    *City    `gorm:"foreignKey:CityID" json:"city,omitempty"`
}
