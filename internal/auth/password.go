package auth

import (
	"fmt"

	"github.com/mkrecek/todolist/internal/apperr"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLen is the minimum accepted password length at registration.
const MinPasswordLen = 6

// HashPassword validates the plaintext against the minimum-strength
// policy and returns its bcrypt hash.
func HashPassword(plaintext string) (string, error) {
	if len(plaintext) < MinPasswordLen {
		return "", fmt.Errorf("%w: password must be at least %d characters", apperr.ErrValidation, MinPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a stored bcrypt hash against a plaintext
// candidate. Any mismatch is apperr.ErrInvalidCredentials.
func CheckPassword(hash, plaintext string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)); err != nil {
		return apperr.ErrInvalidCredentials
	}
	return nil
}
