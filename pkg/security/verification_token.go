package security

import (
	"errors"
	"time"

	"synco/social-api/internal/model"
	"synco/social-api/pkg/util"
)

const tokenSize = 16

type VerificationTokenOpts struct {
	UserID    string
	ExpiresAt *time.Time
}

// MakeVerificationToken builds an unsaved token record for the given user.
func MakeVerificationToken(o *VerificationTokenOpts) (*model.VerificationToken, error) {
	if o == nil {
		return nil, errors.New("no token options provided")
	}

	if o.UserID == "" {
		return nil, errors.New("no user ID provided")
	}

	if o.ExpiresAt == nil {
		return nil, errors.New("no expiry provided")
	}

	token, err := util.GenerateToken(tokenSize)
	if err != nil {
		return nil, err
	}

	return &model.VerificationToken{
		UserID:    o.UserID,
		Token:     token,
		ExpiresAt: *o.ExpiresAt,
		CreatedAt: time.Now(),
		Used:      false,
	}, nil
}
