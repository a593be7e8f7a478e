// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// CardRepository defines the interface for credit card persistence.
type CardRepository interface {
	// Create creates a new card in the database.
	Create(ctx context.Context, card *entity.Card) error

	// FindByIDAndUser retrieves a card owned by the given user.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Card, error)

	// FindActiveByUser retrieves all active cards for a user.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Card, error)

	// ExistsActiveDuplicate checks for an active card with the same
	// normalized name, brand and last digits.
	ExistsActiveDuplicate(ctx context.Context, userID uuid.UUID, name, brand, last4 string) (bool, error)

	// ReserveLimit atomically adds amount to the card's used limit.
	ReserveLimit(ctx context.Context, cardID uuid.UUID, amount decimal.Decimal) error

	// ReleaseLimit atomically subtracts amount from the card's used limit.
	ReleaseLimit(ctx context.Context, cardID uuid.UUID, amount decimal.Decimal) error
}

// CardInvoiceRepository defines the interface for invoice persistence.
// Invoices are keyed by (card, year, month) and created lazily.
type CardInvoiceRepository interface {
	// AddCharge upserts the cycle's invoice and adds amount to its total.
	AddCharge(ctx context.Context, userID, cardID uuid.UUID, year, month int, amount decimal.Decimal) error

	// FindByCardAndPeriod retrieves the invoice for a (card, year, month).
	// It returns (nil, nil) when no invoice exists for the cycle.
	FindByCardAndPeriod(ctx context.Context, cardID, userID uuid.UUID, year, month int) (*entity.CardInvoice, error)

	// FindByUserAndPeriod retrieves all of a user's invoices for a (year, month).
	FindByUserAndPeriod(ctx context.Context, userID uuid.UUID, year, month int) ([]*entity.CardInvoice, error)

	// RegisterPayment adds amount to the invoice's paid total and moves its
	// status forward. Status transitions are monotonic.
	RegisterPayment(ctx context.Context, invoiceID uuid.UUID, amount decimal.Decimal, status entity.InvoiceStatus) error
}

// CardChargeRepository defines the interface for purchase persistence.
type CardChargeRepository interface {
	// Create creates a new charge in the database.
	Create(ctx context.Context, charge *entity.CardCharge) error

	// FindBillingInPeriod retrieves the card's charges whose installment
	// window can include the (year, month) cycle.
	FindBillingInPeriod(ctx context.Context, userID, cardID uuid.UUID, year, month int) ([]*entity.CardCharge, error)
}
