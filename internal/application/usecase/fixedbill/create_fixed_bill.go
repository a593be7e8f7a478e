// Package fixedbill contains recurring fixed-bill use cases.
package fixedbill

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// CreateFixedBillInput represents the input for registering a fixed bill.
type CreateFixedBillInput struct {
	UserID      uuid.UUID
	Kind        entity.FixedBillKind
	Title       string
	Description string
	Amount      decimal.Decimal
	DueDay      int
	Recurrence  entity.BillRecurrence
}

// CreateFixedBillOutput represents the output of fixed-bill creation.
type CreateFixedBillOutput struct {
	Bill *entity.FixedBill
}

// CreateFixedBillUseCase registers a recurring bill. Bills are descriptive:
// they feed the monthly budget overview but never post ledger entries on
// their own.
type CreateFixedBillUseCase struct {
	billRepo adapter.FixedBillRepository
}

// NewCreateFixedBillUseCase creates a new CreateFixedBillUseCase instance.
func NewCreateFixedBillUseCase(billRepo adapter.FixedBillRepository) *CreateFixedBillUseCase {
	return &CreateFixedBillUseCase{billRepo: billRepo}
}

// Execute performs the fixed-bill creation.
func (uc *CreateFixedBillUseCase) Execute(ctx context.Context, input CreateFixedBillInput) (*CreateFixedBillOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domainerror.NewFixedBillError(
			domainerror.ErrCodeInvalidBillTitle,
			"fixed bill title must not be empty",
			domainerror.ErrInvalidBillTitle,
		)
	}
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewFixedBillError(
			domainerror.ErrCodeInvalidBillAmount,
			"fixed bill amount must be positive",
			domainerror.ErrInvalidBillAmount,
		)
	}
	if input.DueDay < 1 || input.DueDay > 31 {
		return nil, domainerror.NewFixedBillError(
			domainerror.ErrCodeInvalidBillDueDay,
			"fixed bill due day must be between 1 and 31",
			domainerror.ErrInvalidBillDueDay,
		)
	}
	if input.Kind != "" && !entity.IsValidFixedBillKind(input.Kind) {
		return nil, domainerror.NewFixedBillError(
			domainerror.ErrCodeInvalidBillKind,
			"unknown fixed bill kind",
			domainerror.ErrInvalidBillKind,
		)
	}
	if input.Recurrence != "" && !entity.IsValidBillRecurrence(input.Recurrence) {
		return nil, domainerror.NewFixedBillError(
			domainerror.ErrCodeInvalidBillRecurrence,
			"unknown fixed bill recurrence",
			domainerror.ErrInvalidBillRecurrence,
		)
	}

	bill := entity.NewFixedBill(
		input.UserID,
		input.Kind,
		title,
		strings.TrimSpace(input.Description),
		input.Amount,
		input.DueDay,
		input.Recurrence,
	)
	if err := uc.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}
	return &CreateFixedBillOutput{Bill: bill}, nil
}
