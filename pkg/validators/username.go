package validators

import (
	"errors"
	"regexp"
)

var (
	ErrUsernameEmpty   = errors.New("no username provided")
	ErrUsernameTooLong = errors.New("username is too long")
	ErrUsernameInvalid = errors.New("username may only contain letters, digits and . @ + - _")
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

func UsernameValidator(u string) error {
	if u == "" {
		return ErrUsernameEmpty
	}

	if len(u) > 150 {
		return ErrUsernameTooLong
	}

	if !usernamePattern.MatchString(u) {
		return ErrUsernameInvalid
	}

	return nil
}
