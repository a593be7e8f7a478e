package alert

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
)

// ListAlertsInput represents the input for listing a user's alerts.
type ListAlertsInput struct {
	UserID uuid.UUID
}

// ListAlertsOutput represents the output of listing alerts.
type ListAlertsOutput struct {
	Alerts []*entity.Alert
}

// ListAlertsUseCase lists a user's alerts, newest first.
type ListAlertsUseCase struct {
	alertRepo adapter.AlertRepository
}

// NewListAlertsUseCase creates a new ListAlertsUseCase instance.
func NewListAlertsUseCase(alertRepo adapter.AlertRepository) *ListAlertsUseCase {
	return &ListAlertsUseCase{
		alertRepo: alertRepo,
	}
}

// Execute retrieves the alerts.
func (uc *ListAlertsUseCase) Execute(ctx context.Context, input ListAlertsInput) (*ListAlertsOutput, error) {
	alerts, err := uc.alertRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return &ListAlertsOutput{Alerts: alerts}, nil
}
