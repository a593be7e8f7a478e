package financing

import (
	"context"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// GetFinancingOutput represents one contract with its full schedule.
type GetFinancingOutput struct {
	Financing    *entity.Financing
	Installments []*entity.Installment
}

// GetFinancingUseCase retrieves a contract and its installment schedule.
type GetFinancingUseCase struct {
	financingRepo adapter.FinancingRepository
}

// NewGetFinancingUseCase creates a new GetFinancingUseCase instance.
func NewGetFinancingUseCase(financingRepo adapter.FinancingRepository) *GetFinancingUseCase {
	return &GetFinancingUseCase{financingRepo: financingRepo}
}

// Execute performs the lookup.
func (uc *GetFinancingUseCase) Execute(ctx context.Context, financingID, userID uuid.UUID) (*GetFinancingOutput, error) {
	contract, err := uc.financingRepo.FindByIDAndUser(ctx, financingID, userID)
	if err != nil {
		return nil, domainerror.NewFinancingError(
			domainerror.ErrCodeFinancingNotFound,
			"financing not found",
			domainerror.ErrFinancingNotFound,
		)
	}
	installments, err := uc.financingRepo.FindInstallmentsByFinancing(ctx, contract.ID)
	if err != nil {
		return nil, err
	}
	return &GetFinancingOutput{Financing: contract, Installments: installments}, nil
}
