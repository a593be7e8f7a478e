package financing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
)

// ActiveContract pairs a contract with its next open installment.
type ActiveContract struct {
	Financing       *entity.Financing
	NextInstallment *entity.Installment // nil when the schedule is exhausted
}

// ListActiveOutput is the portfolio summary of a user's active contracts.
type ListActiveOutput struct {
	Contracts      []ActiveContract
	TotalDebt      decimal.Decimal
	MonthlyPayment decimal.Decimal
	MeanRate       decimal.Decimal
	NextDueDate    *time.Time
}

// ListActiveUseCase lists a user's active financings with a portfolio
// summary: outstanding debt, combined monthly payment, mean contract rate
// and the soonest upcoming due date.
type ListActiveUseCase struct {
	financingRepo adapter.FinancingRepository
}

// NewListActiveUseCase creates a new ListActiveUseCase instance.
func NewListActiveUseCase(financingRepo adapter.FinancingRepository) *ListActiveUseCase {
	return &ListActiveUseCase{financingRepo: financingRepo}
}

// Execute builds the portfolio summary.
func (uc *ListActiveUseCase) Execute(ctx context.Context, userID uuid.UUID) (*ListActiveOutput, error) {
	contracts, err := uc.financingRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &ListActiveOutput{
		Contracts:      make([]ActiveContract, 0, len(contracts)),
		TotalDebt:      decimal.Zero,
		MonthlyPayment: decimal.Zero,
		MeanRate:       decimal.Zero,
	}

	rateSum := decimal.Zero
	for _, contract := range contracts {
		entry := ActiveContract{Financing: contract}

		next, err := uc.financingRepo.FindNextOpenInstallment(ctx, contract.ID)
		if err != nil {
			return nil, err
		}
		if next != nil {
			entry.NextInstallment = next
			out.MonthlyPayment = out.MonthlyPayment.Add(next.Amount)
			if out.NextDueDate == nil || next.DueDate.Before(*out.NextDueDate) {
				due := next.DueDate
				out.NextDueDate = &due
			}
		}

		out.TotalDebt = out.TotalDebt.Add(contract.RemainingAmount)
		rateSum = rateSum.Add(contract.MonthlyRate)
		out.Contracts = append(out.Contracts, entry)
	}

	if len(contracts) > 0 {
		out.MeanRate = rateSum.Div(decimal.NewFromInt(int64(len(contracts)))).Round(4)
	}
	return out, nil
}
