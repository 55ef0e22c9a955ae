package model

import "time"

type Visibility string

const (
	VisibilityPublic  Visibility = "PU"
	VisibilityFriends Visibility = "FR"
	VisibilityPrivate Visibility = "PR"
)

// PrivacySetting holds one visibility level per profile field group.
// A user without a row is treated as fully public.
type PrivacySetting struct {
	UserID         string     `gorm:"primaryKey" json:"-"`
	Profile        Visibility `gorm:"size:2;default:PU" json:"profile"`
	Address        Visibility `gorm:"size:2;default:PU" json:"address"`
	Education      Visibility `gorm:"size:2;default:PU" json:"education"`
	WorkExperience Visibility `gorm:"size:2;default:PU" json:"work_experience"`
	CreatedAt      time.Time  `json:"-"`
	ModifiedAt     time.Time  `gorm:"autoUpdateTime" json:"-"`
}

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityFriends, VisibilityPrivate:
		return true
	}
	return false
}
