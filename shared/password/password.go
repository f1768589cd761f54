package password

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultCost = bcrypt.DefaultCost
	MinLength   = 8
	// bcrypt ignores input past 72 bytes.
	MaxBytes = 72
)

var (
	ErrInvalidPassword   = errors.New("invalid password")
	ErrEmptyPassword     = errors.New("password cannot be empty")
	ErrWeakPassword      = fmt.Errorf("password must be at least %d characters", MinLength)
	ErrTooLongPassword   = fmt.Errorf("password must be at most %d bytes", MaxBytes)
	ErrHashingPassword   = errors.New("error hashing password")
	ErrVerifyingPassword = errors.New("error verifying password")
)

// CheckPolicy rejects passwords that would be unsafe or silently truncated.
func CheckPolicy(password string) error {
	switch {
	case password == "":
		return ErrEmptyPassword
	case utf8.RuneCountInString(password) < MinLength:
		return ErrWeakPassword
	case len(password) > MaxBytes:
		return ErrTooLongPassword
	}

	return nil
}

// Hash generates a bcrypt hash of the password.
func Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}

	return string(bytes), nil
}

// Verify checks if the provided password matches the hash.
func Verify(password, hash string) error {
	if password == "" || hash == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPassword
		}

		return fmt.Errorf("%w: %w", ErrVerifyingPassword, err)
	}

	return nil
}
