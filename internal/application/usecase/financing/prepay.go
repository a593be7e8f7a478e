package financing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/application/event"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/domain/finance"
)

// PrepayInput represents the input for an extraordinary principal payment.
type PrepayInput struct {
	UserID      uuid.UUID
	FinancingID uuid.UUID
	Amount      decimal.Decimal
	PaymentDate time.Time // Zero value means "now"
}

// PrepayOutput represents the contract state after re-amortization.
type PrepayOutput struct {
	FinancingID     uuid.UUID
	RemainingAmount decimal.Decimal
	Active          bool
	NewInstallments []*entity.Installment
}

// PrepayUseCase applies an extraordinary payment straight to principal,
// discards the still-open tail of the schedule and regenerates it over the
// reduced balance. The number of remaining installments is kept; only their
// value shrinks. Regenerated due dates anchor on the payment date.
type PrepayUseCase struct {
	uowManager adapter.UnitOfWorkManager
	bus        *event.Bus
}

// NewPrepayUseCase creates a new PrepayUseCase instance.
func NewPrepayUseCase(uowManager adapter.UnitOfWorkManager, bus *event.Bus) *PrepayUseCase {
	return &PrepayUseCase{uowManager: uowManager, bus: bus}
}

// Execute performs the prepayment and re-amortization.
func (uc *PrepayUseCase) Execute(ctx context.Context, input PrepayInput) (*PrepayOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewFinancingError(
			domainerror.ErrCodeInvalidPrepaymentAmount,
			"prepayment amount must be positive",
			domainerror.ErrInvalidPrepaymentAmount,
		)
	}
	paymentDate := input.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now().UTC()
	}

	var out *PrepayOutput
	err := uc.uowManager.Run(ctx, func(uow adapter.UnitOfWork) error {
		contract, err := uow.Financings().FindByIDAndUser(ctx, input.FinancingID, input.UserID)
		if err != nil {
			return domainerror.NewFinancingError(
				domainerror.ErrCodeFinancingNotFound,
				"financing not found",
				domainerror.ErrFinancingNotFound,
			)
		}
		if !contract.Active {
			return domainerror.NewFinancingError(
				domainerror.ErrCodeFinancingInactive,
				"financing is not active",
				domainerror.ErrFinancingInactive,
			)
		}

		remaining := contract.RemainingAmount.Sub(input.Amount)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		if err := uow.Financings().DeleteOpenInstallmentsFrom(ctx, contract.ID, contract.PaidInstallments+1); err != nil {
			return err
		}

		var regenerated []*entity.Installment
		openCount := contract.Installments - contract.PaidInstallments
		active := remaining.IsPositive() && openCount > 0
		if active {
			schedule, err := finance.AmortizePrice(finance.AmortizationInput{
				Principal:          remaining,
				MonthlyRatePercent: contract.MonthlyRate,
				Installments:       openCount,
				StartDate:          paymentDate,
				DueDay:             contract.DueDay,
				FirstInstallment:   contract.PaidInstallments + 1,
			})
			if err != nil {
				return err
			}
			regenerated = toInstallments(contract, schedule)
			if err := uow.Financings().InsertInstallments(ctx, regenerated); err != nil {
				return err
			}
		}

		if err := uow.Financings().UpdateProgress(ctx, contract.ID, remaining, contract.PaidInstallments, active); err != nil {
			return err
		}

		// The prepayment itself is a payment: debit the balance and insert
		// the ledger entry through the same listeners, numberless.
		if err := uc.bus.Emit(ctx, &event.FinancingPaymentMade{
			UserID:            input.UserID,
			FinancingID:       contract.ID,
			FinancingTitle:    contract.Title,
			Amount:            input.Amount,
			InstallmentNumber: 0,
			TotalInstallments: 0,
			PaymentDate:       paymentDate,
			UoW:               uow,
		}); err != nil {
			return err
		}

		out = &PrepayOutput{
			FinancingID:     contract.ID,
			RemainingAmount: remaining,
			Active:          active,
			NewInstallments: regenerated,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
