// Package financing contains installment loan use cases.
package financing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	"github.com/personal-ledger/backend/internal/domain/finance"
)

// DefaultDueDay is used when a contract does not specify a due day.
const DefaultDueDay = 10

// CreateFinancingInput represents the input for contract creation.
type CreateFinancingInput struct {
	UserID       uuid.UUID
	Title        string
	Institution  string
	TotalAmount  decimal.Decimal
	Installments int
	MonthlyRate  decimal.Decimal // Percentage
	StartDate    time.Time       // Zero value means "today"
	DueDay       int             // Zero means DefaultDueDay
}

// CreateFinancingOutput represents the output of contract creation.
type CreateFinancingOutput struct {
	Financing    *entity.Financing
	Installments []*entity.Installment
}

// CreateFinancingUseCase registers a PRICE loan contract and persists its
// full installment schedule, first due date landing on the month after the
// start date.
type CreateFinancingUseCase struct {
	financingRepo adapter.FinancingRepository
}

// NewCreateFinancingUseCase creates a new CreateFinancingUseCase instance.
func NewCreateFinancingUseCase(financingRepo adapter.FinancingRepository) *CreateFinancingUseCase {
	return &CreateFinancingUseCase{financingRepo: financingRepo}
}

// Execute performs the contract creation.
func (uc *CreateFinancingUseCase) Execute(ctx context.Context, input CreateFinancingInput) (*CreateFinancingOutput, error) {
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

	contract := entity.NewFinancing(
		input.UserID,
		input.Title,
		input.Institution,
		input.TotalAmount,
		input.Installments,
		input.MonthlyRate,
		startDate,
		dueDay,
	)
	installments := toInstallments(contract, schedule)

	if err := uc.financingRepo.Create(ctx, contract, installments); err != nil {
		return nil, err
	}
	return &CreateFinancingOutput{Financing: contract, Installments: installments}, nil
}

// toInstallments maps a generated schedule onto persistable installments.
func toInstallments(contract *entity.Financing, schedule []finance.ScheduledInstallment) []*entity.Installment {
	now := time.Now().UTC()
	installments := make([]*entity.Installment, 0, len(schedule))
	for _, line := range schedule {
		installments = append(installments, &entity.Installment{
			ID:              uuid.New(),
			FinancingID:     contract.ID,
			UserID:          contract.UserID,
			Number:          line.Number,
			Year:            line.Year,
			Month:           line.Month,
			DueDate:         line.DueDate,
			Amount:          line.Total,
			PrincipalAmount: line.Principal,
			InterestAmount:  line.Interest,
			Status:          entity.InstallmentStatusOpen,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}
	return installments
}
