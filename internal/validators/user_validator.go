package validators

import (
	"unicode"

	"gorent/internal/apperrors"
	"gorent/internal/utils"
)

// ValidatePassword enforces the minimum credential policy: length bounds
// plus at least one letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < utils.PasswordMinLength {
		return apperrors.Validation("Password is too weak",
			apperrors.FieldError{Field: "password", Message: "must be at least 8 characters"})
	}
	if len(password) > utils.PasswordMaxLength {
		return apperrors.Validation("Password is too long",
			apperrors.FieldError{Field: "password", Message: "must be at most 128 characters"})
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperrors.Validation("Password is too weak",
			apperrors.FieldError{Field: "password", Message: "must contain at least one letter and one digit"})
	}
	return nil
}
