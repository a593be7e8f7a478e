package expense

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/adapter"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// SetMonthlyLimitInput represents the input for setting a monthly spending limit.
type SetMonthlyLimitInput struct {
	UserID uuid.UUID
	Year   int
	Month  int
	Limit  decimal.Decimal
}

// SetMonthlyLimitUseCase upserts the spending limit for a (year, month)
// period, creating the period row when it does not exist yet.
type SetMonthlyLimitUseCase struct {
	monthlyTotalRepo adapter.MonthlyTotalRepository
}

// NewSetMonthlyLimitUseCase creates a new SetMonthlyLimitUseCase instance.
func NewSetMonthlyLimitUseCase(monthlyTotalRepo adapter.MonthlyTotalRepository) *SetMonthlyLimitUseCase {
	return &SetMonthlyLimitUseCase{monthlyTotalRepo: monthlyTotalRepo}
}

// Execute performs the limit upsert.
func (uc *SetMonthlyLimitUseCase) Execute(ctx context.Context, input SetMonthlyLimitInput) error {
	if err := validatePeriod(input.Year, input.Month); err != nil {
		return err
	}
	if input.Limit.IsNegative() {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidMonthlyLimit,
			"monthly limit must not be negative",
			domainerror.ErrInvalidMonthlyLimit,
		)
	}
	return uc.monthlyTotalRepo.SetLimit(ctx, input.UserID, input.Year, input.Month, input.Limit)
}

func validatePeriod(year, month int) error {
	if year < 1970 || year > 9999 || month < 1 || month > 12 {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidPeriod,
			"period must be a valid year and month",
			domainerror.ErrInvalidPeriod,
		)
	}
	return nil
}
