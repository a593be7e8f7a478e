package expense

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
)

// GetMonthlyTotalInput represents the input for reading a period's totals.
type GetMonthlyTotalInput struct {
	UserID uuid.UUID
	Year   int
	Month  int
}

// GetMonthlyTotalOutput represents a period's accumulated spend and limit.
type GetMonthlyTotalOutput struct {
	Year        int
	Month       int
	LimitAmount decimal.Decimal
	SpentAmount decimal.Decimal
}

// GetMonthlyTotalUseCase reads the accumulated totals for a period. A period
// with no row yet reads as zero spend and zero limit rather than an error.
type GetMonthlyTotalUseCase struct {
	monthlyTotalRepo adapter.MonthlyTotalRepository
}

// NewGetMonthlyTotalUseCase creates a new GetMonthlyTotalUseCase instance.
func NewGetMonthlyTotalUseCase(monthlyTotalRepo adapter.MonthlyTotalRepository) *GetMonthlyTotalUseCase {
	return &GetMonthlyTotalUseCase{monthlyTotalRepo: monthlyTotalRepo}
}

// Execute performs the read.
func (uc *GetMonthlyTotalUseCase) Execute(ctx context.Context, input GetMonthlyTotalInput) (*GetMonthlyTotalOutput, error) {
	if err := validatePeriod(input.Year, input.Month); err != nil {
		return nil, err
	}

	total, err := uc.monthlyTotalRepo.FindByPeriod(ctx, input.UserID, input.Year, input.Month)
	if err != nil {
		return nil, err
	}
	if total == nil {
		return &GetMonthlyTotalOutput{
			Year:        input.Year,
			Month:       input.Month,
			LimitAmount: decimal.Zero,
			SpentAmount: decimal.Zero,
		}, nil
	}
	return totalOutput(total), nil
}

func totalOutput(total *entity.MonthlyTotal) *GetMonthlyTotalOutput {
	return &GetMonthlyTotalOutput{
		Year:        total.Year,
		Month:       total.Month,
		LimitAmount: total.LimitAmount,
		SpentAmount: total.SpentAmount,
	}
}
