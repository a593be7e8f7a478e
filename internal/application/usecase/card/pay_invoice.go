package card

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/application/event"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// PayInvoiceInput represents the input for invoice payment.
type PayInvoiceInput struct {
	UserID uuid.UUID
	CardID uuid.UUID
	Year   int
	Month  int
	Amount decimal.Decimal
	PaidAt time.Time
}

// PayInvoiceOutput represents the output of invoice payment.
type PayInvoiceOutput struct {
	InvoiceID   uuid.UUID
	Status      entity.InvoiceStatus
	Outstanding decimal.Decimal
}

// PayInvoiceUseCase settles part or all of a card invoice. The balance debit
// and monthly total increment ride the same transaction through the InvoicePaid
// event; the payment also releases the paid amount back to the card limit.
type PayInvoiceUseCase struct {
	uowManager adapter.UnitOfWorkManager
	bus        *event.Bus
}

// NewPayInvoiceUseCase creates a new PayInvoiceUseCase instance.
func NewPayInvoiceUseCase(uowManager adapter.UnitOfWorkManager, bus *event.Bus) *PayInvoiceUseCase {
	return &PayInvoiceUseCase{uowManager: uowManager, bus: bus}
}

// Execute performs the invoice payment.
func (uc *PayInvoiceUseCase) Execute(ctx context.Context, input PayInvoiceInput) (*PayInvoiceOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeInvalidPaymentAmount,
			"payment amount must be positive",
			domainerror.ErrInvalidPaymentAmount,
		)
	}

	var out *PayInvoiceOutput
	err := uc.uowManager.Run(ctx, func(uow adapter.UnitOfWork) error {
		invoice, err := uow.CardInvoices().FindByCardAndPeriod(ctx, input.CardID, input.UserID, input.Year, input.Month)
		if err != nil {
			return err
		}
		if invoice == nil {
			return domainerror.NewCardError(
				domainerror.ErrCodeInvoiceNotFound,
				"invoice not found",
				domainerror.ErrInvoiceNotFound,
			)
		}
		if invoice.Status == entity.InvoiceStatusPaid {
			return domainerror.NewCardError(
				domainerror.ErrCodeInvoiceAlreadyPaid,
				"invoice already paid",
				domainerror.ErrInvoiceAlreadyPaid,
			)
		}
		if input.Amount.GreaterThan(invoice.Outstanding()) {
			return domainerror.NewCardError(
				domainerror.ErrCodePaymentExceedsOutstanding,
				"payment exceeds outstanding invoice amount",
				domainerror.ErrPaymentExceedsOutstanding,
			)
		}

		// Balance debit and monthly spend increment run here, inside the
		// shared transaction.
		if err := uc.bus.Emit(ctx, &event.InvoicePaid{
			UserID: input.UserID,
			CardID: input.CardID,
			Amount: input.Amount,
			Year:   input.Year,
			Month:  input.Month,
			UoW:    uow,
		}); err != nil {
			return err
		}

		if err := uow.Cards().ReleaseLimit(ctx, input.CardID, input.Amount); err != nil {
			return err
		}

		status := invoice.NextStatus(input.Amount)
		if err := uow.CardInvoices().RegisterPayment(ctx, invoice.ID, input.Amount, status); err != nil {
			return err
		}

		out = &PayInvoiceOutput{
			InvoiceID:   invoice.ID,
			Status:      status,
			Outstanding: invoice.Outstanding().Sub(input.Amount),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
