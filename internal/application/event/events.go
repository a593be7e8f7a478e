// Package event implements the in-process domain event bus and the closed
// set of events it carries. Events never cross process boundaries; delivery
// is synchronous and in registration order.
package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
)

// Kind identifies an event variant.
type Kind string

const (
	// KindExpenseInserted fires after a non-credit ledger entry is written.
	KindExpenseInserted Kind = "expense.inserted"
	// KindCreditExpenseInserted fires after a credit-card ledger entry is
	// written; its handler owns a separate unit of work.
	KindCreditExpenseInserted Kind = "expense.credit_inserted"
	// KindInvoicePaid fires when a card invoice payment is registered.
	KindInvoicePaid Kind = "card.invoice_paid"
	// KindFinancingPaymentMade fires when a loan installment is paid or a
	// prepayment is applied.
	KindFinancingPaymentMade Kind = "financing.payment_made"
)

// Event is an immutable (kind, payload) pair delivered to registered handlers.
type Event interface {
	EventKind() Kind
}

// ExpenseInserted carries a freshly written non-credit ledger entry together
// with the unit of work it was written in. Handlers must use UoW for every
// statement so they share the emitter's transaction.
type ExpenseInserted struct {
	UserID  uuid.UUID
	Expense *entity.Expense
	UoW     adapter.UnitOfWork
}

// EventKind implements Event.
func (ExpenseInserted) EventKind() Kind { return KindExpenseInserted }

// CreditExpenseInserted carries a credit-card ledger entry. Its handler is
// detached: it opens its own unit of work and must not touch the emitter's
// transaction, which may already be committed by the time retries run.
type CreditExpenseInserted struct {
	UserID  uuid.UUID
	Expense *entity.Expense
	CardID  uuid.UUID
}

// EventKind implements Event.
func (CreditExpenseInserted) EventKind() Kind { return KindCreditExpenseInserted }

// InvoicePaid carries a card invoice payment inside the paying transaction.
type InvoicePaid struct {
	UserID uuid.UUID
	CardID uuid.UUID
	Amount decimal.Decimal
	Year   int
	Month  int
	UoW    adapter.UnitOfWork
}

// EventKind implements Event.
func (InvoicePaid) EventKind() Kind { return KindInvoicePaid }

// FinancingPaymentMade carries an installment payment or prepayment inside
// the paying transaction. InstallmentNumber and TotalInstallments are zero
// for prepayments.
type FinancingPaymentMade struct {
	UserID            uuid.UUID
	FinancingID       uuid.UUID
	FinancingTitle    string
	Amount            decimal.Decimal
	InstallmentNumber int
	TotalInstallments int
	PaymentDate       time.Time
	UoW               adapter.UnitOfWork
}

// EventKind implements Event.
func (FinancingPaymentMade) EventKind() Kind { return KindFinancingPaymentMade }
