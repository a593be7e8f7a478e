// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// AlertRepository defines the interface for alert persistence operations.
type AlertRepository interface {
	// Create creates a new alert in the database.
	Create(ctx context.Context, alert *entity.Alert) error

	// ExistsCategoryAlert checks the (user, category, year, month, kind)
	// uniqueness key used to keep threshold alerts idempotent.
	ExistsCategoryAlert(ctx context.Context, userID, categoryID uuid.UUID, year, month int, kind entity.AlertKind) (bool, error)

	// FindByUser retrieves all alerts for a user, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Alert, error)
}
