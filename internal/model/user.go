// Package model defines database models
package model

import "time"

type RegistrationMethod string

const (
	RegistrationEmail  RegistrationMethod = "EM"
	RegistrationGoogle RegistrationMethod = "GO"
)

type User struct {
	ID                 string             `gorm:"primaryKey" json:"id"`
	Username           string             `gorm:"uniqueIndex;not null" json:"username"`
	Email              string             `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string             `gorm:"not null" json:"-"`
	FirstName          string             `json:"first_name"`
	LastName           string             `json:"last_name"`
	RegistrationMethod RegistrationMethod `gorm:"size:2;default:EM" json:"-"`
	CreatedAt          time.Time          `json:"-"`
	ModifiedAt         time.Time          `gorm:"autoUpdateTime" json:"-"`

	Profile            *Profile            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Address            *Address            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Privacy            *PrivacySetting     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Educations         []Education         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	WorkExperiences    []WorkExperience    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	VerificationTokens []VerificationToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
