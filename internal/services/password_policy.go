package services

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/terraincognita07/hushline/internal/prompt"
)

const minPasswordRunes = 8

var ErrWeakPassword = fmt.Errorf("password needs at least %d characters with upper case, lower case and a digit: %w", minPasswordRunes, prompt.ErrWrongSecret)

// ValidatePasswordStrength works on the raw bytes so no string copy of the
// password is left behind.
func ValidatePasswordStrength(password []byte) error {
	if utf8.RuneCount(password) < minPasswordRunes {
		return ErrWeakPassword
	}

	hasUpper := false
	hasLower := false
	hasDigit := false
	for rest := password; len(rest) > 0; {
		char, size := utf8.DecodeRune(rest)
		rest = rest[size:]
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}

	if hasUpper && hasLower && hasDigit {
		return nil
	}
	return ErrWeakPassword
}
