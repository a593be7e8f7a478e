package error

import "errors"

// Fixed-bill domain errors.
var (
	// ErrInvalidBillTitle is returned when the bill title is empty.
	ErrInvalidBillTitle = errors.New("fixed bill title must not be empty")

	// ErrInvalidBillAmount is returned when the amount is not positive.
	ErrInvalidBillAmount = errors.New("fixed bill amount must be positive")

	// ErrInvalidBillDueDay is returned when the due day is outside 1-31.
	ErrInvalidBillDueDay = errors.New("fixed bill due day must be between 1 and 31")

	// ErrInvalidBillKind is returned for an unknown bill kind.
	ErrInvalidBillKind = errors.New("unknown fixed bill kind")

	// ErrInvalidBillRecurrence is returned for an unknown recurrence.
	ErrInvalidBillRecurrence = errors.New("unknown fixed bill recurrence")

	// ErrFixedBillNotFound is returned when the bill does not exist or belongs
	// to another user.
	ErrFixedBillNotFound = errors.New("fixed bill not found")
)

// FixedBillErrorCode defines error codes for fixed-bill errors.
// Format: BILL-XXYYYY where XX is category and YYYY is specific error.
type FixedBillErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBillTitle      FixedBillErrorCode = "BILL-010001"
	ErrCodeInvalidBillAmount     FixedBillErrorCode = "BILL-010002"
	ErrCodeInvalidBillDueDay     FixedBillErrorCode = "BILL-010003"
	ErrCodeInvalidBillKind       FixedBillErrorCode = "BILL-010004"
	ErrCodeInvalidBillRecurrence FixedBillErrorCode = "BILL-010005"

	// Not found errors (02XXXX)
	ErrCodeFixedBillNotFound FixedBillErrorCode = "BILL-020001"
)

// FixedBillError represents a fixed-bill error with code and message.
type FixedBillError struct {
	Code    FixedBillErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *FixedBillError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *FixedBillError) Unwrap() error {
	return e.Err
}

// NewFixedBillError creates a new FixedBillError with the given code and message.
func NewFixedBillError(code FixedBillErrorCode, message string, err error) *FixedBillError {
	return &FixedBillError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
