package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// FixedBillRepository defines the interface for fixed-bill persistence
// operations.
type FixedBillRepository interface {
	// Create creates a new fixed bill in the database.
	Create(ctx context.Context, bill *entity.FixedBill) error

	// FindByUser retrieves a user's fixed bills, active first, ordered by due
	// day then title. When onlyActive is set, paused bills are excluded.
	FindByUser(ctx context.Context, userID uuid.UUID, onlyActive bool) ([]*entity.FixedBill, error)

	// FindByIDAndUser retrieves a fixed bill owned by the given user.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.FixedBill, error)

	// UpdateActive pauses or resumes a fixed bill.
	UpdateActive(ctx context.Context, id, userID uuid.UUID, active bool) error
}
