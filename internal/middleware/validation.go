package middleware

import (
	"trivia-api/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by ValidationMiddleware.
const (
	LocalPage = "validated_page"
	LocalID   = "validated_id"
)

// ValidationMiddleware validates shared request parameters before they reach handlers
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidatePage validates the ?page query parameter and stores it under LocalPage.
func (vm *ValidationMiddleware) ValidatePage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := vm.validator.ValidatePage(c.Query("page"))
		if err != nil {
			return err
		}
		c.Locals(LocalPage, page)
		return c.Next()
	}
}

// ValidateID validates the :id path parameter and stores it under LocalID.
func (vm *ValidationMiddleware) ValidateID(field string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := vm.validator.ValidateID(field, c.Params("id"))
		if err != nil {
			return err
		}
		c.Locals(LocalID, id)
		return c.Next()
	}
}

// Page returns the validated page, or 1.
func Page(c *fiber.Ctx) int {
	if page, ok := c.Locals(LocalPage).(int); ok {
		return page
	}
	return 1
}

// ID returns the validated path id, or 0.
func ID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalID).(int64)
	return id
}
