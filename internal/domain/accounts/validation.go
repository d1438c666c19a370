package accounts

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// passwordSymbols is the punctuation set a password must draw at least one
// character from.
const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

// validateName requires a non-empty name of alphabetic characters and spaces.
func validateName(name string) error {
	stripped := strings.ReplaceAll(name, " ", "")
	if stripped == "" {
		return ValidationError{Message: "Name must contain only alphabetic characters and spaces"}
	}
	for _, r := range stripped {
		if !unicode.IsLetter(r) {
			return ValidationError{Message: "Name must contain only alphabetic characters and spaces"}
		}
	}
	return nil
}

// validatePassword enforces the password policy: at least 8 characters with
// one uppercase letter, one lowercase letter, one digit, and one symbol.
// The first unmet rule wins.
func validatePassword(password string) error {
	// Length is counted in characters, not bytes, so multibyte input is not
	// over-counted toward the minimum.
	if utf8.RuneCountInString(password) < 8 {
		return ValidationError{Message: "Password must be at least 8 characters long"}
	}
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
		if strings.ContainsRune(passwordSymbols, r) {
			hasSymbol = true
		}
	}
	switch {
	case !hasUpper:
		return ValidationError{Message: "Password must contain at least one uppercase letter"}
	case !hasLower:
		return ValidationError{Message: "Password must contain at least one lowercase letter"}
	case !hasDigit:
		return ValidationError{Message: "Password must contain at least one number"}
	case !hasSymbol:
		return ValidationError{Message: "Password must contain at least one special character"}
	}
	return nil
}
