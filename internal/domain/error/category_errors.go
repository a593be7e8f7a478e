// Package error defines domain-specific errors for the Personal Ledger application.
package error

import "errors"

// Category domain errors.
var (
	// ErrInvalidCategoryName is returned when the category name is empty.
	ErrInvalidCategoryName = errors.New("category name must not be empty")

	// ErrInvalidCategoryLimit is returned when the limit is negative.
	ErrInvalidCategoryLimit = errors.New("category limit must not be negative")

	// ErrDuplicateCategory is returned when the user already has an active
	// category with the same name.
	ErrDuplicateCategory = errors.New("category already exists")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidCategoryName  CategoryErrorCode = "CAT-010001"
	ErrCodeInvalidCategoryLimit CategoryErrorCode = "CAT-010002"

	// Conflict errors (03XXXX)
	ErrCodeDuplicateCategory CategoryErrorCode = "CAT-030001"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
