package model

import "time"

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

type Profile struct {
	UserID     string     `gorm:"primaryKey" json:"-"`
	Bio        string     `json:"bio"`
	Gender     Gender     `gorm:"size:1" json:"gender"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	Website    string     `json:"website"`
	Phone      string     `gorm:"size:20" json:"phone"`
	Avatar     string     `json:"avatar"`
	CreatedAt  time.Time  `json:"created_at"`
	ModifiedAt time.Time  `gorm:"autoUpdateTime" json:"modified_at"`
}
