// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyTotal tracks the accumulated spend and the user-set limit for a
// (user, year, month) period. Rows are created lazily on first touch and
// SpentAmount only ever grows through atomic increments.
type MonthlyTotal struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Year        int
	Month       int
	LimitAmount decimal.Decimal
	SpentAmount decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewMonthlyTotal creates a MonthlyTotal with zero accumulated spend.
func NewMonthlyTotal(userID uuid.UUID, year, month int, limitAmount decimal.Decimal) *MonthlyTotal {
	now := time.Now().UTC()
	return &MonthlyTotal{
		ID:          uuid.New(),
		UserID:      userID,
		Year:        year,
		Month:       month,
		LimitAmount: limitAmount,
		SpentAmount: decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
