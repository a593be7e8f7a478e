// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// MonthlyTotalRepository defines the interface for monthly total persistence.
// Rows are created lazily: both SetLimit and IncrementSpent insert the
// (user, year, month) row when it does not exist yet.
type MonthlyTotalRepository interface {
	// SetLimit upserts the user-set limit for a period.
	SetLimit(ctx context.Context, userID uuid.UUID, year, month int, limit decimal.Decimal) error

	// IncrementSpent atomically adds amount to the period's accumulated spend.
	IncrementSpent(ctx context.Context, userID uuid.UUID, year, month int, amount decimal.Decimal) error

	// SetSpent overwrites the period's accumulated spend (used by recalculation).
	SetSpent(ctx context.Context, userID uuid.UUID, year, month int, amount decimal.Decimal) error

	// FindByPeriod retrieves the row for a (user, year, month). It returns
	// (nil, nil) when no row exists for the period.
	FindByPeriod(ctx context.Context, userID uuid.UUID, year, month int) (*entity.MonthlyTotal, error)
}
