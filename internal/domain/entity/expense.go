// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how an expense was paid.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodDebit  PaymentMethod = "DEBIT"
	PaymentMethodPix    PaymentMethod = "PIX"
	PaymentMethodCredit PaymentMethod = "CREDIT"
)

// ExpenseOrigin tags where a ledger entry came from.
type ExpenseOrigin string

const (
	ExpenseOriginManual    ExpenseOrigin = "manual"
	ExpenseOriginFinancing ExpenseOrigin = "financing"
	ExpenseOriginFixed     ExpenseOrigin = "fixed"
)

// Expense represents a ledger entry. CategoryID is nil for loan-payoff
// entries inserted by the financing saga.
type Expense struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	CategoryID    *uuid.UUID
	Amount        decimal.Decimal // Always positive
	Date          time.Time
	Description   string
	PaymentMethod PaymentMethod
	Origin        ExpenseOrigin
	CardID        *uuid.UUID
	FinancingID   *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewExpense creates a new Expense entity.
func NewExpense(
	userID uuid.UUID,
	categoryID *uuid.UUID,
	amount decimal.Decimal,
	date time.Time,
	description string,
	method PaymentMethod,
	origin ExpenseOrigin,
) *Expense {
	now := time.Now().UTC()
	return &Expense{
		ID:            uuid.New(),
		UserID:        userID,
		CategoryID:    categoryID,
		Amount:        amount,
		Date:          date,
		Description:   description,
		PaymentMethod: method,
		Origin:        origin,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsCredit reports whether the expense was paid with a credit card and
// therefore needs card linkage instead of an immediate balance debit.
func (e *Expense) IsCredit() bool {
	return e.PaymentMethod == PaymentMethodCredit
}

// IsValidPaymentMethod reports whether the given method is a known one.
func IsValidPaymentMethod(method PaymentMethod) bool {
	switch method {
	case PaymentMethodCash, PaymentMethodDebit, PaymentMethodPix, PaymentMethodCredit:
		return true
	}
	return false
}
