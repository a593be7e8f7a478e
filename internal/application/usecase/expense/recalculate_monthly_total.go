package expense

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/adapter"
)

// RecalculateMonthlyTotalInput represents the input for total recalculation.
type RecalculateMonthlyTotalInput struct {
	UserID uuid.UUID
	Year   int
	Month  int
}

// RecalculateMonthlyTotalOutput carries the recomputed spend.
type RecalculateMonthlyTotalOutput struct {
	Year        int
	Month       int
	SpentAmount decimal.Decimal
}

// RecalculateMonthlyTotalUseCase recomputes a period's accumulated spend from
// source records and overwrites the stored counter. The recomputed value is
// the sum of non-credit ledger entries plus invoice payments registered in
// the period, which mirrors what the incremental event handlers accumulate.
type RecalculateMonthlyTotalUseCase struct {
	uowManager adapter.UnitOfWorkManager
}

// NewRecalculateMonthlyTotalUseCase creates a new RecalculateMonthlyTotalUseCase instance.
func NewRecalculateMonthlyTotalUseCase(uowManager adapter.UnitOfWorkManager) *RecalculateMonthlyTotalUseCase {
	return &RecalculateMonthlyTotalUseCase{uowManager: uowManager}
}

// Execute performs the recalculation inside a single transaction.
func (uc *RecalculateMonthlyTotalUseCase) Execute(ctx context.Context, input RecalculateMonthlyTotalInput) (*RecalculateMonthlyTotalOutput, error) {
	if err := validatePeriod(input.Year, input.Month); err != nil {
		return nil, err
	}

	var spent decimal.Decimal
	err := uc.uowManager.Run(ctx, func(uow adapter.UnitOfWork) error {
		entrySum, err := uow.Expenses().SumByUserAndPeriod(ctx, input.UserID, input.Year, input.Month)
		if err != nil {
			return fmt.Errorf("failed to sum expenses: %w", err)
		}

		invoices, err := uow.CardInvoices().FindByUserAndPeriod(ctx, input.UserID, input.Year, input.Month)
		if err != nil {
			return fmt.Errorf("failed to load invoices: %w", err)
		}

		spent = entrySum
		for _, invoice := range invoices {
			spent = spent.Add(invoice.TotalPaid)
		}
		return uow.MonthlyTotals().SetSpent(ctx, input.UserID, input.Year, input.Month, spent)
	})
	if err != nil {
		return nil, err
	}

	return &RecalculateMonthlyTotalOutput{
		Year:        input.Year,
		Month:       input.Month,
		SpentAmount: spent,
	}, nil
}
