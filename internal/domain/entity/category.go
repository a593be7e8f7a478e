// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// Category represents a spending category in the Personal Ledger system.
// LimitAmount is the user-set monthly budget for the category; a zero limit
// disables category-limit alerts.
type Category struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Color       string
	LimitAmount decimal.Decimal
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory creates a new Category entity.
func NewCategory(userID uuid.UUID, name, color string, limitAmount decimal.Decimal) *Category {
	now := time.Now().UTC()
	if color == "" {
		color = DefaultCategoryColor
	}
	return &Category{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Color:       color,
		LimitAmount: limitAmount,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HasLimit reports whether the category has a positive monthly limit.
func (c *Category) HasLimit() bool {
	return c.LimitAmount.IsPositive()
}
