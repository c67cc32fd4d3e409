package validation

import (
	"strconv"
	"strings"

	"trivia-api/internal/domain"
)

// Validator provides request parameter validation
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidatePage parses a 1-based page number. An absent page is page 1.
func (v *Validator) ValidatePage(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError("page must be an integer").WithContext("page", raw)
	}
	if page < 1 {
		return 0, domain.NewValidationError("page must be 1 or greater").WithContext("page", page)
	}
	return page, nil
}

// ValidateID parses a positive resource id from a path segment.
func (v *Validator) ValidateID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NewValidationError(field+" must be a positive integer").WithContext(field, raw)
	}
	return id, nil
}
