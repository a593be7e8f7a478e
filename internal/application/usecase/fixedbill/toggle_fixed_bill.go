package fixedbill

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// ToggleFixedBillInput represents the input for pausing or resuming a bill.
type ToggleFixedBillInput struct {
	UserID uuid.UUID
	BillID uuid.UUID
	Active bool
}

// ToggleFixedBillUseCase pauses or resumes a fixed bill. Paused bills stay
// listed but drop out of every overview total.
type ToggleFixedBillUseCase struct {
	billRepo adapter.FixedBillRepository
}

// NewToggleFixedBillUseCase creates a new ToggleFixedBillUseCase instance.
func NewToggleFixedBillUseCase(billRepo adapter.FixedBillRepository) *ToggleFixedBillUseCase {
	return &ToggleFixedBillUseCase{billRepo: billRepo}
}

// Execute performs the toggle.
func (uc *ToggleFixedBillUseCase) Execute(ctx context.Context, input ToggleFixedBillInput) error {
	// Look up first so a missing bill and a missing user are reported the
	// same way regardless of the target state.
	if _, err := uc.billRepo.FindByIDAndUser(ctx, input.BillID, input.UserID); err != nil {
		if errors.Is(err, domainerror.ErrFixedBillNotFound) {
			return domainerror.NewFixedBillError(
				domainerror.ErrCodeFixedBillNotFound,
				"fixed bill not found for this user",
				domainerror.ErrFixedBillNotFound,
			)
		}
		return err
	}

	if err := uc.billRepo.UpdateActive(ctx, input.BillID, input.UserID, input.Active); err != nil {
		if errors.Is(err, domainerror.ErrFixedBillNotFound) {
			return domainerror.NewFixedBillError(
				domainerror.ErrCodeFixedBillNotFound,
				"fixed bill not found for this user",
				domainerror.ErrFixedBillNotFound,
			)
		}
		return err
	}
	return nil
}
