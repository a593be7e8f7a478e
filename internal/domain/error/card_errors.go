// Package error defines domain-specific errors for the Personal Ledger application.
package error

import "errors"

// Card domain errors.
var (
	// ErrCardNotFound is returned when a card is absent or not owned by the user.
	ErrCardNotFound = errors.New("card not found")

	// ErrCardInactive is returned when an operation targets a deactivated card.
	ErrCardInactive = errors.New("card is inactive")

	// ErrCardAlreadyExists is returned when an identical active card is registered.
	ErrCardAlreadyExists = errors.New("card already registered")

	// ErrInvalidClosingDay is returned when the closing day is outside 1-31.
	ErrInvalidClosingDay = errors.New("closing day must be between 1 and 31")

	// ErrInvalidInstallmentCount is returned when the installment count is not positive.
	ErrInvalidInstallmentCount = errors.New("installment count must be positive")

	// ErrInvoiceNotFound is returned when no invoice exists for the period.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrInvoiceAlreadyPaid is returned when paying an already settled invoice.
	ErrInvoiceAlreadyPaid = errors.New("invoice already paid")

	// ErrPaymentExceedsOutstanding is returned when a payment is larger than the
	// invoice's remaining balance.
	ErrPaymentExceedsOutstanding = errors.New("payment exceeds outstanding invoice amount")

	// ErrInvalidChargeAmount is returned when the charge amount is not positive.
	ErrInvalidChargeAmount = errors.New("charge amount must be positive")

	// ErrInvalidCardDueDay is returned when the due day is outside 1-31.
	ErrInvalidCardDueDay = errors.New("due day must be between 1 and 31")

	// ErrInvalidCardLimit is returned when the card limit is not positive.
	ErrInvalidCardLimit = errors.New("card limit must be positive")

	// ErrInvalidPaymentAmount is returned when an invoice payment is not positive.
	ErrInvalidPaymentAmount = errors.New("payment amount must be positive")
)

// CardErrorCode defines error codes for card errors.
// Format: CARD-XXYYYY where XX is category and YYYY is specific error.
type CardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidClosingDay       CardErrorCode = "CARD-010001"
	ErrCodeInvalidInstallmentCount CardErrorCode = "CARD-010002"
	ErrCodeInvalidChargeAmount     CardErrorCode = "CARD-010003"
	ErrCodeCardAlreadyExists       CardErrorCode = "CARD-010004"
	ErrCodeInvalidCardDueDay       CardErrorCode = "CARD-010005"
	ErrCodeInvalidCardLimit        CardErrorCode = "CARD-010006"
	ErrCodeInvalidPaymentAmount    CardErrorCode = "CARD-010007"

	// Lookup errors (02XXXX)
	ErrCodeCardNotFound    CardErrorCode = "CARD-020001"
	ErrCodeCardInactive    CardErrorCode = "CARD-020002"
	ErrCodeInvoiceNotFound CardErrorCode = "CARD-020003"

	// Payment errors (03XXXX)
	ErrCodeInvoiceAlreadyPaid        CardErrorCode = "CARD-030001"
	ErrCodePaymentExceedsOutstanding CardErrorCode = "CARD-030002"
)

// CardError represents a card error with code and message.
type CardError struct {
	Code    CardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CardError) Unwrap() error {
	return e.Err
}

// NewCardError creates a new CardError with the given code and message.
func NewCardError(code CardErrorCode, message string, err error) *CardError {
	return &CardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
