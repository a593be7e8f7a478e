// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// ExpenseRepository defines the interface for ledger entry persistence.
type ExpenseRepository interface {
	// Create creates a new expense in the database.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByID retrieves an expense by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)

	// FindByUserAndPeriod retrieves all expenses of a user in a (year, month).
	FindByUserAndPeriod(ctx context.Context, userID uuid.UUID, year, month int) ([]*entity.Expense, error)

	// SumByCategoryAndMonth totals a category's spend for the month containing date.
	SumByCategoryAndMonth(ctx context.Context, userID, categoryID uuid.UUID, date time.Time) (decimal.Decimal, error)

	// SumByUserAndPeriod totals a user's spend for a (year, month).
	// Credit entries are excluded: their spend lands when the invoice is paid.
	SumByUserAndPeriod(ctx context.Context, userID uuid.UUID, year, month int) (decimal.Decimal, error)
}
