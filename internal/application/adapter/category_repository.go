// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByIDAndUser retrieves a category owned by the given user.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Category, error)

	// FindByUser retrieves all categories for a user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)

	// ExistsActiveByName checks for an active category with the same
	// case-insensitive name.
	ExistsActiveByName(ctx context.Context, userID uuid.UUID, name string) (bool, error)

	// UpdateLimit overwrites the category's monthly limit.
	UpdateLimit(ctx context.Context, id uuid.UUID, limit decimal.Decimal) error
}
