package service

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9_.+-]+@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)+$`)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return NewValidationError("Username is required")
	}
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return NewValidationError("Email is required")
	}
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return NewValidationError("Invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return NewValidationError("Password is required")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return NewValidationError("Password must be at least 6 characters long")
	}
	return nil
}
