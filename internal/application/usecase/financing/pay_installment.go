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
)

// PayInstallmentInput represents the input for an installment payment.
type PayInstallmentInput struct {
	UserID        uuid.UUID
	InstallmentID uuid.UUID
	PaymentDate   time.Time // Zero value means "now"
}

// PayInstallmentOutput represents the contract state after the payment.
type PayInstallmentOutput struct {
	FinancingID      uuid.UUID
	RemainingAmount  decimal.Decimal
	PaidInstallments int
	Active           bool
}

// PayInstallmentUseCase settles one open installment. The ledger entry and
// balance debit ride the same transaction through the FinancingPaymentMade
// event; a listener failure aborts the whole payment.
type PayInstallmentUseCase struct {
	uowManager adapter.UnitOfWorkManager
	bus        *event.Bus
}

// NewPayInstallmentUseCase creates a new PayInstallmentUseCase instance.
func NewPayInstallmentUseCase(uowManager adapter.UnitOfWorkManager, bus *event.Bus) *PayInstallmentUseCase {
	return &PayInstallmentUseCase{uowManager: uowManager, bus: bus}
}

// Execute performs the installment payment.
func (uc *PayInstallmentUseCase) Execute(ctx context.Context, input PayInstallmentInput) (*PayInstallmentOutput, error) {
	paymentDate := input.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now().UTC()
	}

	var out *PayInstallmentOutput
	err := uc.uowManager.Run(ctx, func(uow adapter.UnitOfWork) error {
		pair, err := uow.Financings().FindInstallmentByIDAndUser(ctx, input.InstallmentID, input.UserID)
		if err != nil {
			return domainerror.NewFinancingError(
				domainerror.ErrCodeInstallmentNotFound,
				"installment not found",
				domainerror.ErrInstallmentNotFound,
			)
		}
		installment, contract := pair.Installment, pair.Financing

		if installment.Status == entity.InstallmentStatusPaid {
			return domainerror.NewFinancingError(
				domainerror.ErrCodeInstallmentAlreadyPaid,
				"installment already paid",
				domainerror.ErrInstallmentAlreadyPaid,
			)
		}
		if !contract.Active {
			return domainerror.NewFinancingError(
				domainerror.ErrCodeFinancingInactive,
				"financing is not active",
				domainerror.ErrFinancingInactive,
			)
		}

		if err := uow.Financings().MarkInstallmentPaid(ctx, installment.ID); err != nil {
			return err
		}

		remaining := contract.RemainingAmount.Sub(installment.PrincipalAmount)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		paid := contract.PaidInstallments + 1
		active := paid < contract.Installments && remaining.IsPositive()

		if err := uow.Financings().UpdateProgress(ctx, contract.ID, remaining, paid, active); err != nil {
			return err
		}

		// Ledger entry and balance debit run here; any failure rolls the
		// payment back.
		if err := uc.bus.Emit(ctx, &event.FinancingPaymentMade{
			UserID:            input.UserID,
			FinancingID:       contract.ID,
			FinancingTitle:    contract.Title,
			Amount:            installment.Amount,
			InstallmentNumber: installment.Number,
			TotalInstallments: contract.Installments,
			PaymentDate:       paymentDate,
			UoW:               uow,
		}); err != nil {
			return err
		}

		out = &PayInstallmentOutput{
			FinancingID:      contract.ID,
			RemainingAmount:  remaining,
			PaidInstallments: paid,
			Active:           active,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
