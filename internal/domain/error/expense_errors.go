// Package error defines domain-specific errors for the Personal Ledger application.
package error

import "errors"

// Expense domain errors.
var (
	// ErrInvalidExpenseAmount is returned when the expense amount is not positive.
	ErrInvalidExpenseAmount = errors.New("expense amount must be positive")

	// ErrInvalidPaymentMethod is returned when the payment method is unknown.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrCategoryNotFound is returned when the referenced category is absent.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryNotOwnedByUser is returned when the category belongs to another user.
	ErrCategoryNotOwnedByUser = errors.New("category does not belong to user")

	// ErrMonthlyTotalNotFound is returned when no monthly total row exists for the period.
	ErrMonthlyTotalNotFound = errors.New("monthly total not found")

	// ErrInvalidMonthlyLimit is returned when a monthly limit is negative.
	ErrInvalidMonthlyLimit = errors.New("monthly limit must not be negative")

	// ErrInvalidPeriod is returned when a (year, month) pair is out of range.
	ErrInvalidPeriod = errors.New("invalid year/month period")

	// ErrCardRequired is returned when a credit expense has no card attached.
	ErrCardRequired = errors.New("credit expenses require a card")

	// ErrExpenseNotFound is returned when an expense is absent.
	ErrExpenseNotFound = errors.New("expense not found")
)

// ExpenseErrorCode defines error codes for expense errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidExpenseAmount ExpenseErrorCode = "EXP-010001"
	ErrCodeInvalidPaymentMethod ExpenseErrorCode = "EXP-010002"
	ErrCodeInvalidMonthlyLimit  ExpenseErrorCode = "EXP-010003"
	ErrCodeInvalidPeriod        ExpenseErrorCode = "EXP-010004"
	ErrCodeCardRequired         ExpenseErrorCode = "EXP-010005"

	// Lookup errors (02XXXX)
	ErrCodeCategoryNotFound     ExpenseErrorCode = "EXP-020001"
	ErrCodeCategoryNotOwned     ExpenseErrorCode = "EXP-020002"
	ErrCodeMonthlyTotalNotFound ExpenseErrorCode = "EXP-020003"
	ErrCodeExpenseNotFound      ExpenseErrorCode = "EXP-020004"
)

// ExpenseError represents an expense error with code and message.
type ExpenseError struct {
	Code    ExpenseErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExpenseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
