// Package card contains credit card use cases.
package card

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// CreateCardInput represents the input for card registration.
type CreateCardInput struct {
	UserID      uuid.UUID
	Name        string
	Brand       string
	Last4       string
	ColorHex    string
	LimitAmount decimal.Decimal
	ClosingDay  int
	DueDay      int
}

// CreateCardOutput represents the output of card registration.
type CreateCardOutput struct {
	Card *entity.Card
}

// CreateCardUseCase registers a credit card, rejecting an active duplicate of
// the same name, brand and last digits.
type CreateCardUseCase struct {
	cardRepo adapter.CardRepository
}

// NewCreateCardUseCase creates a new CreateCardUseCase instance.
func NewCreateCardUseCase(cardRepo adapter.CardRepository) *CreateCardUseCase {
	return &CreateCardUseCase{cardRepo: cardRepo}
}

// Execute performs the card registration.
func (uc *CreateCardUseCase) Execute(ctx context.Context, input CreateCardInput) (*CreateCardOutput, error) {
	if input.ClosingDay < 1 || input.ClosingDay > 31 {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeInvalidClosingDay,
			"closing day must be between 1 and 31",
			domainerror.ErrInvalidClosingDay,
		)
	}
	if input.DueDay < 1 || input.DueDay > 31 {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeInvalidCardDueDay,
			"due day must be between 1 and 31",
			domainerror.ErrInvalidCardDueDay,
		)
	}
	if !input.LimitAmount.IsPositive() {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeInvalidCardLimit,
			"card limit must be positive",
			domainerror.ErrInvalidCardLimit,
		)
	}

	name := strings.TrimSpace(input.Name)
	exists, err := uc.cardRepo.ExistsActiveDuplicate(ctx, input.UserID, name, input.Brand, input.Last4)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeCardAlreadyExists,
			"an identical active card is already registered",
			domainerror.ErrCardAlreadyExists,
		)
	}

	card := entity.NewCard(
		input.UserID,
		name,
		input.Brand,
		input.Last4,
		input.ColorHex,
		input.LimitAmount,
		input.ClosingDay,
		input.DueDay,
	)
	if err := uc.cardRepo.Create(ctx, card); err != nil {
		return nil, err
	}
	return &CreateCardOutput{Card: card}, nil
}
