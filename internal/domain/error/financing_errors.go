// Package error defines domain-specific errors for the Personal Ledger application.
package error

import "errors"

// Financing domain errors.
var (
	// ErrInvalidPrincipal is returned when the principal is not positive.
	ErrInvalidPrincipal = errors.New("principal must be greater than zero")

	// ErrInvalidRate is returned when the monthly rate is negative.
	ErrInvalidRate = errors.New("interest rate must not be negative")

	// ErrInvalidTerm is returned when the installment count is not positive.
	ErrInvalidTerm = errors.New("number of installments must be greater than zero")

	// ErrInvalidDueDay is returned when the due day is outside 1-31.
	ErrInvalidDueDay = errors.New("due day must be between 1 and 31")

	// ErrFinancingNotFound is returned when a financing is absent or not owned by the user.
	ErrFinancingNotFound = errors.New("financing not found")

	// ErrFinancingInactive is returned when an operation targets a settled contract.
	ErrFinancingInactive = errors.New("financing is not active")

	// ErrInstallmentNotFound is returned when an installment is absent.
	ErrInstallmentNotFound = errors.New("installment not found")

	// ErrInstallmentAlreadyPaid is returned when paying a settled installment.
	ErrInstallmentAlreadyPaid = errors.New("installment already paid")

	// ErrInvalidPrepaymentAmount is returned when the prepayment amount is not positive.
	ErrInvalidPrepaymentAmount = errors.New("prepayment amount must be positive")
)

// FinancingErrorCode defines error codes for financing errors.
// Format: FIN-XXYYYY where XX is category and YYYY is specific error.
type FinancingErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPrincipal        FinancingErrorCode = "FIN-010001"
	ErrCodeInvalidRate             FinancingErrorCode = "FIN-010002"
	ErrCodeInvalidTerm             FinancingErrorCode = "FIN-010003"
	ErrCodeInvalidDueDay           FinancingErrorCode = "FIN-010004"
	ErrCodeInvalidPrepaymentAmount FinancingErrorCode = "FIN-010005"

	// Lookup errors (02XXXX)
	ErrCodeFinancingNotFound   FinancingErrorCode = "FIN-020001"
	ErrCodeFinancingInactive   FinancingErrorCode = "FIN-020002"
	ErrCodeInstallmentNotFound FinancingErrorCode = "FIN-020003"

	// Payment errors (03XXXX)
	ErrCodeInstallmentAlreadyPaid FinancingErrorCode = "FIN-030001"
)

// FinancingError represents a financing error with code and message.
type FinancingError struct {
	Code    FinancingErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *FinancingError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *FinancingError) Unwrap() error {
	return e.Err
}

// NewFinancingError creates a new FinancingError with the given code and message.
func NewFinancingError(code FinancingErrorCode, message string, err error) *FinancingError {
	return &FinancingError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
