// Package alert contains alert-related use cases.
package alert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
)

// nearLimitThresholdPercent is the utilization at which a "near limit"
// warning fires; 100% fires the "exceeded" alert.
var nearLimitThresholdPercent = decimal.NewFromInt(80)

var oneHundred = decimal.NewFromInt(100)

// CheckCategoryLimitInput describes a freshly inserted expense to evaluate.
type CheckCategoryLimitInput struct {
	UserID     uuid.UUID
	CategoryID *uuid.UUID
	Date       time.Time
	ExpenseID  uuid.UUID
}

// CheckCategoryLimitUseCase recomputes a category's monthly utilization after
// an expense insert and creates the threshold alerts, each gated by the
// (user, category, year, month, kind) uniqueness key. It runs inside the
// emitting operation's unit of work, so its failures abort the whole write.
type CheckCategoryLimitUseCase struct {
	notifications adapter.NotificationService
}

// NewCheckCategoryLimitUseCase creates a new CheckCategoryLimitUseCase instance.
func NewCheckCategoryLimitUseCase(notifications adapter.NotificationService) *CheckCategoryLimitUseCase {
	return &CheckCategoryLimitUseCase{
		notifications: notifications,
	}
}

// Execute evaluates the thresholds against the shared unit of work.
// Categories that are absent, inactive or unlimited are skipped silently.
func (uc *CheckCategoryLimitUseCase) Execute(ctx context.Context, uow adapter.UnitOfWork, input CheckCategoryLimitInput) error {
	if input.CategoryID == nil {
		return nil
	}

	category, err := uow.Categories().FindByIDAndUser(ctx, *input.CategoryID, input.UserID)
	if err != nil || category == nil {
		return nil
	}
	if !category.Active || !category.HasLimit() {
		return nil
	}

	total, err := uow.Expenses().SumByCategoryAndMonth(ctx, input.UserID, category.ID, input.Date)
	if err != nil {
		return fmt.Errorf("failed to total category spend: %w", err)
	}

	percent := total.Div(category.LimitAmount).Mul(oneHundred)
	year, month := input.Date.Year(), int(input.Date.Month())

	payload := map[string]any{
		"category_id":   category.ID.String(),
		"category_name": category.Name,
		"year":          year,
		"month":         month,
		"limit":         category.LimitAmount.StringFixed(2),
		"total":         total.StringFixed(2),
		"percent":       percent.StringFixed(2),
	}
	relatedIDs := []string{input.ExpenseID.String()}

	if percent.GreaterThanOrEqual(nearLimitThresholdPercent) && percent.LessThan(oneHundred) {
		message := fmt.Sprintf(
			"You have reached %s%% of the %q category limit (limit %s, spent %s this month).",
			percent.StringFixed(2), category.Name,
			category.LimitAmount.StringFixed(2), total.StringFixed(2),
		)
		alert := entity.NewCategoryAlert(
			input.UserID, category.ID, year, month,
			entity.AlertKindCategoryLimitNear, entity.AlertSeverityWarning,
			message, payload, relatedIDs,
		)
		if err := uc.createIfAbsent(ctx, uow, alert); err != nil {
			return err
		}
	}

	if percent.GreaterThanOrEqual(oneHundred) {
		message := fmt.Sprintf(
			"You have exceeded the %q category limit (%s%%; limit %s, spent %s this month).",
			category.Name, percent.StringFixed(2),
			category.LimitAmount.StringFixed(2), total.StringFixed(2),
		)
		alert := entity.NewCategoryAlert(
			input.UserID, category.ID, year, month,
			entity.AlertKindCategoryLimitExceeded, entity.AlertSeverityCritical,
			message, payload, relatedIDs,
		)
		if err := uc.createIfAbsent(ctx, uow, alert); err != nil {
			return err
		}
	}

	return nil
}

// createIfAbsent persists the alert unless the same threshold was already
// crossed in the period. Re-crossing a threshold is a no-op, not an error.
func (uc *CheckCategoryLimitUseCase) createIfAbsent(ctx context.Context, uow adapter.UnitOfWork, alert *entity.Alert) error {
	exists, err := uow.Alerts().ExistsCategoryAlert(ctx, alert.UserID, *alert.CategoryID, alert.Year, alert.Month, alert.Kind)
	if err != nil {
		return fmt.Errorf("failed to check alert existence: %w", err)
	}
	if exists {
		return nil
	}

	if err := uow.Alerts().Create(ctx, alert); err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}

	uc.notify(ctx, alert)
	return nil
}

// notify pushes the alert to the user's notification channel, best effort.
func (uc *CheckCategoryLimitUseCase) notify(ctx context.Context, alert *entity.Alert) {
	if uc.notifications == nil {
		return
	}
	err := uc.notifications.Notify(ctx, adapter.Notification{
		UserID:  alert.UserID,
		Title:   "Budget alert",
		Message: alert.Message,
	})
	if err != nil {
		slog.Warn("Failed to push category alert notification",
			"user_id", alert.UserID,
			"kind", alert.Kind,
			"error", err,
		)
	}
}
