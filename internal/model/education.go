package model

import "time"

type Education struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       string     `gorm:"index;not null" json:"-"`
	School       string     `gorm:"size:255;not null" json:"school"`
	Degree       string     `gorm:"size:255" json:"degree"`
	FieldOfStudy string     `gorm:"size:255" json:"field_of_study"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Description  string     `json:"description"`
	CreatedAt    time.Time  `json:"created_at"`
	ModifiedAt   time.Time  `gorm:"autoUpdateTime" json:"modified_at"`
}
