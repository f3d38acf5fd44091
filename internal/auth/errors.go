package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TranslateError maps provider/database errors to user-facing strings so raw
// driver errors never reach the client. Unknown errors collapse to a generic
// message.
func TranslateError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "Email or password is incorrect"
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return "Email or password is incorrect"
	case errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key"):
		return "This email is already registered"
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		return "Password is too long"
	default:
		return "Something went wrong, please try again"
	}
}

// ValidatePassword enforces the minimum password rule shared by registration
// and password change.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}
