package utils

import (
	"errors"
	"regexp"
)

// Allow alphanumeric, underscore, hyphen, dot - common in transit IDs
var validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// ValidateID validates that an ID is safe and within reasonable limits.
// Stop ids end up inside an upstream query expression, so quotes and
// whitespace are rejected.
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}

	if len(id) > 100 {
		return errors.New("id too long (max 100 characters)")
	}

	if !validIDPattern.MatchString(id) {
		return errors.New("id contains invalid characters")
	}

	return nil
}
