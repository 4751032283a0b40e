package domain

import (
	"fmt"
	"strings"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
)

// ValidatePassword enforces the baseline password policy.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("%w: password must be <= %d characters", ErrInvalidInput, maxPasswordLength)
	}

	lowered := strings.ToLower(password)
	for _, banned := range []string{"password", "qwerty", "12345678", "letmein"} {
		if lowered == banned {
			return fmt.Errorf("%w: password is too common", ErrInvalidInput)
		}
	}

	return nil
}
