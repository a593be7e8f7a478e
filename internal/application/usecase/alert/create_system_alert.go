package alert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
)

// CreateSystemAlertInput describes a system alert to persist.
type CreateSystemAlertInput struct {
	UserID     uuid.UUID
	Kind       entity.AlertKind
	Severity   entity.AlertSeverity
	Message    string
	Payload    map[string]any
	RelatedIDs []string
}

// CreateSystemAlertUseCase persists a system alert in its own unit of work
// and pushes a best-effort notification. It is the compensating action of
// the card-linkage retry loop, so it must not depend on any caller
// transaction: the originating write has already committed.
type CreateSystemAlertUseCase struct {
	uowManager    adapter.UnitOfWorkManager
	notifications adapter.NotificationService
}

// NewCreateSystemAlertUseCase creates a new CreateSystemAlertUseCase instance.
func NewCreateSystemAlertUseCase(
	uowManager adapter.UnitOfWorkManager,
	notifications adapter.NotificationService,
) *CreateSystemAlertUseCase {
	return &CreateSystemAlertUseCase{
		uowManager:    uowManager,
		notifications: notifications,
	}
}

// Execute persists the alert and notifies the user.
func (uc *CreateSystemAlertUseCase) Execute(ctx context.Context, input CreateSystemAlertInput) error {
	alert := entity.NewSystemAlert(
		input.UserID, input.Kind, input.Severity,
		input.Message, input.Payload, input.RelatedIDs,
	)

	err := uc.uowManager.Run(ctx, func(uow adapter.UnitOfWork) error {
		return uow.Alerts().Create(ctx, alert)
	})
	if err != nil {
		return fmt.Errorf("failed to persist system alert: %w", err)
	}

	if uc.notifications != nil {
		title := "System notice"
		if input.Severity == entity.AlertSeverityHigh || input.Severity == entity.AlertSeverityCritical {
			title = "Attention required"
		}
		err := uc.notifications.Notify(ctx, adapter.Notification{
			UserID:  input.UserID,
			Title:   title,
			Message: input.Message,
		})
		if err != nil {
			slog.Warn("Failed to push system alert notification",
				"user_id", input.UserID,
				"kind", input.Kind,
				"error", err,
			)
		}
	}

	return nil
}
