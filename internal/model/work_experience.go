package model

import "time"

type WorkExperience struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      string     `gorm:"index;not null" json:"-"`
	Company     string     `gorm:"size:255;not null" json:"company"`
	Position    string     `gorm:"size:255" json:"position"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	ModifiedAt  time.Time  `gorm:"autoUpdateTime" json:"modified_at"`
}
