package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// CodeValidation marks malformed or missing required input.
	CodeValidation ErrorCode = "VALIDATION_ERROR"
	// CodeInvalidArgument marks a well-formed request that references something unknown.
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	// CodeExhausted is the terminal quiz outcome: no unseen question is left in scope.
	CodeExhausted   ErrorCode = "QUIZ_EXHAUSTED"
	CodeUnavailable ErrorCode = "UNAVAILABLE"
	CodeInternal    ErrorCode = "INTERNAL_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Err     error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a detail that the error handler echoes back to clients.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewValidationError(message string) *DomainError {
	return NewError(CodeValidation, message, nil)
}

func NewMissingFieldError(field string) *DomainError {
	return NewError(CodeValidation, fmt.Sprintf("%s is required", field), nil).WithContext("field", field)
}

func NewInvalidArgumentError(message string) *DomainError {
	return NewError(CodeInvalidArgument, message, nil)
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewQuestionNotFoundError(id int64) *DomainError {
	return NewNotFoundError(fmt.Sprintf("Question not found with ID: %d", id)).WithContext("question_id", id)
}

func NewCategoryNotFoundError(id int64) *DomainError {
	return NewNotFoundError(fmt.Sprintf("Category not found with ID: %d", id)).WithContext("category_id", id)
}

func NewExhaustedError() *DomainError {
	return NewError(CodeExhausted, "No unseen questions remain in this category", nil)
}

func NewUnavailableError(message string, err error) *DomainError {
	return NewError(CodeUnavailable, message, err)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

// CodeOf returns the code of the first DomainError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
