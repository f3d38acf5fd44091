package auth

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"record not found", gorm.ErrRecordNotFound, "Email or password is incorrect"},
		{"bcrypt mismatch", bcrypt.ErrMismatchedHashAndPassword, "Email or password is incorrect"},
		{"duplicate key", errors.New(`duplicate key value violates unique constraint "idx_users_email"`), "This email is already registered"},
		{"unknown", errors.New("connection reset"), "Something went wrong, please try again"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TranslateError(tt.err); got != tt.want {
				t.Errorf("TranslateError() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("short"); err == nil {
		t.Error("short password should be rejected")
	}
	if err := ValidatePassword("long-enough-password"); err != nil {
		t.Errorf("valid password rejected: %v", err)
	}
}
