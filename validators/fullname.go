package validators

import (
	"errors"
	"unicode/utf8"
)

var (
	ErrFullNameEmpty    = errors.New("no full name provided")
	ErrFullNameTooShort = errors.New("full name must be at least 5 characters long")
)

func FullNameValidator(n string) error {
	if n == "" {
		return ErrFullNameEmpty
	}

	if utf8.RuneCountInString(n) < 5 {
		return ErrFullNameTooShort
	}

	return nil
}
