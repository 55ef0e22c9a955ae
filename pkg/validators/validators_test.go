package validators

import (
	"strings"
	"testing"
)

func TestEmailValidator(t *testing.T) {
	cases := []struct {
		email string
		want  error
	}{
		{"", ErrEmailEmpty},
		{"not-an-email", ErrEmailInvalid},
		{"user@example.com", nil},
		{"User Name <user@example.com>", nil},
	}

	for _, c := range cases {
		if got := EmailValidator(c.email); got != c.want {
			t.Errorf("EmailValidator(%q) = %v, want %v", c.email, got, c.want)
		}
	}
}

func TestPasswordValidator(t *testing.T) {
	cases := []struct {
		password string
		want     error
	}{
		{"", ErrPasswordEmpty},
		{"short", ErrPasswordTooShort},
		{strings.Repeat("a", 256), ErrPasswordTooLong},
		{"longenough", nil},
	}

	for _, c := range cases {
		if got := PasswordValidator(c.password); got != c.want {
			t.Errorf("PasswordValidator(%q) = %v, want %v", c.password, got, c.want)
		}
	}
}

func TestUsernameValidator(t *testing.T) {
	cases := []struct {
		username string
		want     error
	}{
		{"", ErrUsernameEmpty},
		{strings.Repeat("a", 151), ErrUsernameTooLong},
		{"has spaces", ErrUsernameInvalid},
		{"emoji🎯", ErrUsernameInvalid},
		{"normal.user@site+tag-1", nil},
		{"plain_user", nil},
	}

	for _, c := range cases {
		if got := UsernameValidator(c.username); got != c.want {
			t.Errorf("UsernameValidator(%q) = %v, want %v", c.username, got, c.want)
		}
	}
}
