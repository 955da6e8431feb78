package validation

import (
	"fmt"
	"regexp"
)

// UsernamePattern определяет допустимый формат username
// Латинские буквы, цифры, '_' и '-', длина 1-32 символа
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,32}$`)

const (
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 32
	// MinPasswordLen минимальная длина пароля при регистрации
	MinPasswordLen = 8
	// MaxPasswordLen guards argon2 against oversized inputs
	MaxPasswordLen = 256
)

// ValidateUsername проверяет, что username соответствует требованиям.
// The same rule applies to registered and anonymous authors.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters (a-z, A-Z), numbers (0-9), '_' and '-'")
	}

	return nil
}

// ValidatePassword проверяет требования к паролю при регистрации
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must not exceed %d characters", MaxPasswordLen)
	}

	return nil
}
