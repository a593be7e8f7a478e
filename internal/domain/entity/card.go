// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the payment state of a card invoice. Transitions
// are monotonic: OPEN -> PARTIALLY_PAID -> PAID, never backwards.
type InvoiceStatus string

const (
	InvoiceStatusOpen          InvoiceStatus = "OPEN"
	InvoiceStatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoiceStatusPaid          InvoiceStatus = "PAID"
)

// Card represents a credit card. ClosingDay is the billing-cycle cutoff:
// purchases on or after it roll into the next month's invoice.
type Card struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Brand       string
	Last4       string
	ColorHex    string
	LimitAmount decimal.Decimal
	UsedAmount  decimal.Decimal
	ClosingDay  int
	DueDay      int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCard creates a new active Card entity.
func NewCard(userID uuid.UUID, name, brand, last4, colorHex string, limitAmount decimal.Decimal, closingDay, dueDay int) *Card {
	now := time.Now().UTC()
	return &Card{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Brand:       brand,
		Last4:       last4,
		ColorHex:    colorHex,
		LimitAmount: limitAmount,
		UsedAmount:  decimal.Zero,
		ClosingDay:  closingDay,
		DueDay:      dueDay,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AvailableLimit returns how much of the card limit is still free.
func (c *Card) AvailableLimit() decimal.Decimal {
	return c.LimitAmount.Sub(c.UsedAmount)
}

// CardInvoice accumulates charges for one (card, year, month) billing cycle.
type CardInvoice struct {
	ID           uuid.UUID
	CardID       uuid.UUID
	UserID       uuid.UUID
	Year         int
	Month        int
	TotalCharged decimal.Decimal
	TotalPaid    decimal.Decimal
	Status       InvoiceStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Outstanding returns the amount still due on the invoice.
func (i *CardInvoice) Outstanding() decimal.Decimal {
	return i.TotalCharged.Sub(i.TotalPaid)
}

// NextStatus returns the status the invoice should hold after paying the
// given amount on top of TotalPaid. Status never moves backwards.
func (i *CardInvoice) NextStatus(payment decimal.Decimal) InvoiceStatus {
	if i.Status == InvoiceStatusPaid {
		return InvoiceStatusPaid
	}
	if i.TotalPaid.Add(payment).GreaterThanOrEqual(i.TotalCharged) {
		return InvoiceStatusPaid
	}
	return InvoiceStatusPartiallyPaid
}

// CardCharge is a purchase made with a card, conceptually expanded into
// per-month installment shares against CardInvoice rows.
type CardCharge struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	CardID            uuid.UUID
	Description       string
	CategoryName      string
	TotalAmount       decimal.Decimal
	Installments      int
	InstallmentAmount decimal.Decimal
	PurchaseDate      time.Time
	FirstYear         int // First billing cycle the charge affects
	FirstMonth        int
	PaidInstallments  int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewCardCharge creates a new CardCharge entity anchored at its first
// billing cycle.
func NewCardCharge(
	userID, cardID uuid.UUID,
	description, categoryName string,
	totalAmount, installmentAmount decimal.Decimal,
	installments int,
	purchaseDate time.Time,
	firstYear, firstMonth int,
) *CardCharge {
	now := time.Now().UTC()
	return &CardCharge{
		ID:                uuid.New(),
		UserID:            userID,
		CardID:            cardID,
		Description:       description,
		CategoryName:      categoryName,
		TotalAmount:       totalAmount,
		Installments:      installments,
		InstallmentAmount: installmentAmount,
		PurchaseDate:      purchaseDate,
		FirstYear:         firstYear,
		FirstMonth:        firstMonth,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}
