package financing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/domain/finance"
)

// SimulateInput represents the input for a schedule simulation.
type SimulateInput struct {
	TotalAmount  decimal.Decimal
	Installments int
	MonthlyRate  decimal.Decimal // Percentage
	StartDate    time.Time       // Zero value means "today"
	DueDay       int             // Zero means DefaultDueDay
}

// SimulateOutput represents the simulated schedule and its totals.
type SimulateOutput struct {
	Schedule      []finance.ScheduledInstallment
	TotalPaid     decimal.Decimal
	TotalInterest decimal.Decimal
}

// SimulateUseCase generates a PRICE schedule without persisting anything.
type SimulateUseCase struct{}

// NewSimulateUseCase creates a new SimulateUseCase instance.
func NewSimulateUseCase() *SimulateUseCase {
	return &SimulateUseCase{}
}

// Execute performs the simulation.
func (uc *SimulateUseCase) Execute(_ context.Context, input SimulateInput) (*SimulateOutput, error) {
	startDate := input.StartDate
	if startDate.IsZero() {
		startDate = time.Now().UTC()
	}
	dueDay := input.DueDay
	if dueDay == 0 {
		dueDay = DefaultDueDay
	}

	schedule, err := finance.AmortizePrice(finance.AmortizationInput{
		Principal:          input.TotalAmount,
		MonthlyRatePercent: input.MonthlyRate,
		Installments:       input.Installments,
		StartDate:          startDate,
		DueDay:             dueDay,
		FirstInstallment:   1,
	})
	if err != nil {
		return nil, err
	}

	out := &SimulateOutput{Schedule: schedule, TotalPaid: decimal.Zero, TotalInterest: decimal.Zero}
	for _, line := range schedule {
		out.TotalPaid = out.TotalPaid.Add(line.Total)
		out.TotalInterest = out.TotalInterest.Add(line.Interest)
	}
	return out, nil
}
