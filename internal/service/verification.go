package service

import (
	"errors"
	"time"

	"github.com/spf13/viper"
	"gorm.io/gorm"

	"synco/social-api/internal/model"
	"synco/social-api/pkg/security"
)

// TokenStatus is the user-facing outcome of redeeming a verification
// token. None of these are system errors, they all render as a status
// message.
type TokenStatus int

const (
	TokenVerified TokenStatus = iota
	TokenInvalid
	TokenAlreadyUsed
	TokenExpired
	TokenSuperseded
)

func (s TokenStatus) Message() string {
	switch s {
	case TokenVerified:
		return "Email verified successfully."
	case TokenAlreadyUsed:
		return "Email is already verified."
	case TokenExpired:
		return "Link expired. Please generate a new link."
	case TokenSuperseded:
		return "A newer verification link was issued. Please use the most recent one."
	default:
		return "Invalid link."
	}
}

// IssueVerificationToken creates and stores a fresh token for the user.
// Older tokens stay in the table as history but stop being redeemable,
// only the newest token per user is ever accepted.
func IssueVerificationToken(db *gorm.DB, userID string) (*model.VerificationToken, error) {
	validity := viper.GetInt("token.validity_days")
	if validity <= 0 {
		validity = 2
	}

	expiresAt := time.Now().Add(time.Hour * 24 * time.Duration(validity))

	token, err := security.MakeVerificationToken(&security.VerificationTokenOpts{
		UserID:    userID,
		ExpiresAt: &expiresAt,
	})
	if err != nil {
		return nil, err
	}

	if err := db.Create(token).Error; err != nil {
		return nil, err
	}

	return token, nil
}

// RedeemVerificationToken looks up a token and, if it is the user's
// newest one, unused and unexpired, marks it used. Every other case maps
// to an informational status.
func RedeemVerificationToken(db *gorm.DB, tokenStr string) (TokenStatus, error) {
	var token model.VerificationToken

	err := db.Where("token = ?", tokenStr).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenInvalid, nil
		}
		return TokenInvalid, err
	}

	if token.Used {
		return TokenAlreadyUsed, nil
	}

	latestID, err := latestTokenID(db, token.UserID)
	if err != nil {
		return TokenInvalid, err
	}

	if token.ID != latestID {
		return TokenSuperseded, nil
	}

	if token.ExpiresAt.Before(time.Now()) {
		return TokenExpired, nil
	}

	err = db.Model(&model.VerificationToken{}).
		Where("id = ?", token.ID).
		Updates(map[string]any{
			"used":    true,
			"used_at": time.Now(),
		}).Error
	if err != nil {
		return TokenInvalid, err
	}

	return TokenVerified, nil
}

// EmailVerified reports whether the user's current email address has
// been verified. Changing the address issues a new unused token which
// supersedes the old one, so a verified state is simply "the newest
// token has been redeemed".
func EmailVerified(db *gorm.DB, userID string) (bool, error) {
	var token model.VerificationToken

	err := db.Where("user_id = ?", userID).
		Order("id desc").
		First(&token).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return token.Used, nil
}

func latestTokenID(db *gorm.DB, userID string) (uint, error) {
	var id uint

	err := db.Model(model.VerificationToken{}).
		Where("user_id = ?", userID).
		Select("max(id)").
		Find(&id).
		Error

	return id, err
}
