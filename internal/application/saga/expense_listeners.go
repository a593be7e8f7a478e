// Package saga registers the event listeners that chain ledger writes to
// their side effects: monthly totals, category alerts, balance debits and
// credit-card linkage.
package saga

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/application/event"
	"github.com/personal-ledger/backend/internal/application/retry"
	alertuc "github.com/personal-ledger/backend/internal/application/usecase/alert"
	carduc "github.com/personal-ledger/backend/internal/application/usecase/card"
	"github.com/personal-ledger/backend/internal/domain/entity"
)

// payload narrows an event to the concrete type a listener expects. A
// mismatch means a registration bug, so the error aborts the emit instead
// of letting the listener panic.
func payload[T event.Event](evt event.Event) (T, error) {
	e, ok := evt.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("event %s carried unexpected payload %T", evt.EventKind(), evt)
	}
	return e, nil
}

// RegisterExpenseListeners wires the side effects of a non-credit ledger
// entry, in order: accumulate the monthly total, evaluate category limits,
// debit the balance. All three share the emitter's transaction; any failure
// rolls the insert back.
func RegisterExpenseListeners(bus *event.Bus, checkLimit *alertuc.CheckCategoryLimitUseCase) {
	bus.Register(event.KindExpenseInserted, func(ctx context.Context, evt event.Event) error {
		e, err := payload[*event.ExpenseInserted](evt)
		if err != nil {
			return err
		}
		date := e.Expense.Date
		if err := e.UoW.MonthlyTotals().IncrementSpent(ctx, e.UserID, date.Year(), int(date.Month()), e.Expense.Amount); err != nil {
			return fmt.Errorf("failed to increment monthly total: %w", err)
		}
		return nil
	})

	bus.Register(event.KindExpenseInserted, func(ctx context.Context, evt event.Event) error {
		e, err := payload[*event.ExpenseInserted](evt)
		if err != nil {
			return err
		}
		return checkLimit.Execute(ctx, e.UoW, alertuc.CheckCategoryLimitInput{
			UserID:     e.UserID,
			CategoryID: e.Expense.CategoryID,
			Date:       e.Expense.Date,
			ExpenseID:  e.Expense.ID,
		})
	})

	bus.Register(event.KindExpenseInserted, func(ctx context.Context, evt event.Event) error {
		e, err := payload[*event.ExpenseInserted](evt)
		if err != nil {
			return err
		}
		if err := e.UoW.Users().DebitBalance(ctx, e.UserID, e.Expense.Amount); err != nil {
			return fmt.Errorf("failed to debit balance: %w", err)
		}
		return nil
	})
}

// ChargeCreator places a card charge for a credit ledger entry. Satisfied
// by carduc.CreateChargeUseCase.
type ChargeCreator interface {
	Execute(ctx context.Context, input carduc.CreateChargeInput) (*carduc.CreateChargeOutput, error)
}

// RegisterCreditLinkageListener wires the detached card-linkage saga: a
// credit ledger entry becomes a card charge through the retry executor.
// Exhaustion is contained, leaving one HIGH system alert behind; the entry
// itself stays committed either way.
func RegisterCreditLinkageListener(
	bus *event.Bus,
	executor *retry.Executor,
	categoryRepo adapter.CategoryRepository,
	createCharge ChargeCreator,
	createSystemAlert *alertuc.CreateSystemAlertUseCase,
) {
	bus.Register(event.KindCreditExpenseInserted, func(ctx context.Context, evt event.Event) error {
		e, err := payload[*event.CreditExpenseInserted](evt)
		if err != nil {
			return err
		}
		logger := slog.With(
			"expense_id", e.Expense.ID.String(),
			"card_id", e.CardID.String(),
			"user_id", e.UserID.String(),
		)

		categoryName := ""
		if e.Expense.CategoryID != nil {
			if category, err := categoryRepo.FindByID(ctx, *e.Expense.CategoryID); err == nil {
				categoryName = category.Name
			}
		}

		input := carduc.CreateChargeInput{
			UserID:       e.UserID,
			CardID:       e.CardID,
			Description:  e.Expense.Description,
			CategoryName: categoryName,
			Amount:       e.Expense.Amount,
			Installments: 1,
			PurchaseDate: e.Expense.Date,
		}

		err = executor.Do(ctx, func(ctx context.Context) error {
			_, err := createCharge.Execute(ctx, input)
			return err
		})
		if err == nil {
			return nil
		}

		logger.Error("card linkage failed after retries", "error", err)
		alertErr := createSystemAlert.Execute(ctx, alertuc.CreateSystemAlertInput{
			UserID:   e.UserID,
			Kind:     entity.AlertKindCardLinkageFailed,
			Severity: entity.AlertSeverityHigh,
			Message:  "A credit expense could not be linked to its card invoice",
			Payload: map[string]any{
				"expense_id": e.Expense.ID.String(),
				"card_id":    e.CardID.String(),
				"amount":     e.Expense.Amount.StringFixed(2),
				"error":      err.Error(),
			},
			RelatedIDs: []string{e.Expense.ID.String(), e.CardID.String()},
		})
		if alertErr != nil {
			logger.Error("failed to record card linkage alert", "error", alertErr)
		}
		return nil
	})
}
