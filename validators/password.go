package validators

import (
	"errors"
	"unicode"
)

var (
	ErrPasswordEmpty    = errors.New("no password provided")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong  = errors.New("password is too long")
	ErrPasswordTooWeak  = errors.New("password must contain at least one uppercase letter, one lowercase letter and one digit")
)

func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}

	if len(p) < 8 {
		return ErrPasswordTooShort
	}

	if len(p) > 32 {
		return ErrPasswordTooLong
	}

	var hasUpper, hasLower, hasDigit bool

	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit {
		return ErrPasswordTooWeak
	}

	return nil
}
