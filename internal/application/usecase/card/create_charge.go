package card

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/domain/finance"
)

// CreateChargeInput represents the input for card purchase registration.
type CreateChargeInput struct {
	UserID       uuid.UUID
	CardID       uuid.UUID
	Description  string
	CategoryName string
	Amount       decimal.Decimal
	Installments int
	PurchaseDate time.Time
}

// CreateChargeOutput represents the output of purchase registration.
type CreateChargeOutput struct {
	Charge *entity.CardCharge
	Shares []finance.InvoiceShare
}

// CreateChargeUseCase registers a card purchase, expanding it into monthly
// invoice shares starting at the billing cycle the closing day dictates and
// reserving the purchase total on the card limit. Everything runs inside its
// own transaction, independent of any caller transaction.
type CreateChargeUseCase struct {
	uowManager adapter.UnitOfWorkManager
	cardRepo   adapter.CardRepository
}

// NewCreateChargeUseCase creates a new CreateChargeUseCase instance.
func NewCreateChargeUseCase(uowManager adapter.UnitOfWorkManager, cardRepo adapter.CardRepository) *CreateChargeUseCase {
	return &CreateChargeUseCase{uowManager: uowManager, cardRepo: cardRepo}
}

// Execute performs the purchase registration.
func (uc *CreateChargeUseCase) Execute(ctx context.Context, input CreateChargeInput) (*CreateChargeOutput, error) {
	card, err := uc.cardRepo.FindByIDAndUser(ctx, input.CardID, input.UserID)
	if err != nil {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeCardNotFound,
			"card not found",
			domainerror.ErrCardNotFound,
		)
	}
	if !card.Active {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeCardInactive,
			"card is inactive",
			domainerror.ErrCardInactive,
		)
	}

	shares, err := finance.AllocatePurchase(input.Amount, input.PurchaseDate, input.Installments, card.ClosingDay)
	if err != nil {
		return nil, err
	}

	charge := entity.NewCardCharge(
		input.UserID,
		input.CardID,
		input.Description,
		input.CategoryName,
		input.Amount,
		shares[0].Amount,
		input.Installments,
		input.PurchaseDate,
		shares[0].Year,
		shares[0].Month,
	)

	err = uc.uowManager.Run(ctx, func(uow adapter.UnitOfWork) error {
		if err := uow.CardCharges().Create(ctx, charge); err != nil {
			return fmt.Errorf("failed to create charge: %w", err)
		}
		for _, share := range shares {
			if err := uow.CardInvoices().AddCharge(ctx, input.UserID, input.CardID, share.Year, share.Month, share.Amount); err != nil {
				return fmt.Errorf("failed to add charge to invoice %d-%02d: %w", share.Year, share.Month, err)
			}
		}
		return uow.Cards().ReserveLimit(ctx, input.CardID, input.Amount)
	})
	if err != nil {
		return nil, err
	}

	return &CreateChargeOutput{Charge: charge, Shares: shares}, nil
}
