package saga

import (
	"context"
	"fmt"

	"github.com/personal-ledger/backend/internal/application/event"
	"github.com/personal-ledger/backend/internal/domain/entity"
)

// RegisterFinancingListeners wires the side effects of a loan payment: the
// balance debit and a categoryless ledger entry, both inside the paying
// transaction. A failure here aborts the payment.
func RegisterFinancingListeners(bus *event.Bus) {
	bus.Register(event.KindFinancingPaymentMade, func(ctx context.Context, evt event.Event) error {
		e, err := payload[*event.FinancingPaymentMade](evt)
		if err != nil {
			return err
		}
		if err := e.UoW.Users().DebitBalance(ctx, e.UserID, e.Amount); err != nil {
			return fmt.Errorf("failed to debit balance: %w", err)
		}
		return nil
	})

	bus.Register(event.KindFinancingPaymentMade, func(ctx context.Context, evt event.Event) error {
		e, err := payload[*event.FinancingPaymentMade](evt)
		if err != nil {
			return err
		}

		description := fmt.Sprintf("Prepayment - %s", e.FinancingTitle)
		if e.InstallmentNumber > 0 {
			description = fmt.Sprintf("Installment %d/%d - %s", e.InstallmentNumber, e.TotalInstallments, e.FinancingTitle)
		}

		entry := entity.NewExpense(
			e.UserID,
			nil,
			e.Amount,
			e.PaymentDate,
			description,
			entity.PaymentMethodDebit,
			entity.ExpenseOriginFinancing,
		)
		financingID := e.FinancingID
		entry.FinancingID = &financingID

		if err := e.UoW.Expenses().Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to create financing ledger entry: %w", err)
		}
		return nil
	})
}
