package saga

import (
	"context"
	"fmt"

	"github.com/personal-ledger/backend/internal/application/event"
)

// RegisterCardListeners wires the side effects of an invoice payment: the
// balance debit and the monthly total increment, both inside the paying
// transaction. Credit spend reaches monthly totals here, not at insert time.
func RegisterCardListeners(bus *event.Bus) {
	bus.Register(event.KindInvoicePaid, func(ctx context.Context, evt event.Event) error {
		e, err := payload[*event.InvoicePaid](evt)
		if err != nil {
			return err
		}
		if err := e.UoW.Users().DebitBalance(ctx, e.UserID, e.Amount); err != nil {
			return fmt.Errorf("failed to debit balance: %w", err)
		}
		return nil
	})

	bus.Register(event.KindInvoicePaid, func(ctx context.Context, evt event.Event) error {
		e, err := payload[*event.InvoicePaid](evt)
		if err != nil {
			return err
		}
		if err := e.UoW.MonthlyTotals().IncrementSpent(ctx, e.UserID, e.Year, e.Month, e.Amount); err != nil {
			return fmt.Errorf("failed to increment monthly total: %w", err)
		}
		return nil
	})
}
