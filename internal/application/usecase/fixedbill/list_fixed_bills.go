package fixedbill

import (
	"context"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
)

// ListFixedBillsUseCase lists a user's fixed bills, optionally restricted to
// active ones.
type ListFixedBillsUseCase struct {
	billRepo adapter.FixedBillRepository
}

// NewListFixedBillsUseCase creates a new ListFixedBillsUseCase instance.
func NewListFixedBillsUseCase(billRepo adapter.FixedBillRepository) *ListFixedBillsUseCase {
	return &ListFixedBillsUseCase{billRepo: billRepo}
}

// Execute performs the listing.
func (uc *ListFixedBillsUseCase) Execute(ctx context.Context, userID uuid.UUID, onlyActive bool) ([]*entity.FixedBill, error) {
	return uc.billRepo.FindByUser(ctx, userID, onlyActive)
}
