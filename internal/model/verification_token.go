package model

import "time"

// VerificationToken is an email verification token. Tokens are kept as
// a history per user, only the most recently created one can still be
// redeemed.
type VerificationToken struct {
	ID        uint       `gorm:"primaryKey;autoIncrement"`
	UserID    string     `gorm:"index"`
	Token     string     `gorm:"uniqueIndex"`
	ExpiresAt time.Time
	Used      bool
	UsedAt    *time.Time
	CreatedAt time.Time
}
