package expense

import (
	"context"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
)

// ListExpensesInput represents the input for listing a period's entries.
type ListExpensesInput struct {
	UserID uuid.UUID
	Year   int
	Month  int
}

// ListExpensesUseCase lists a user's ledger entries for a period.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{expenseRepo: expenseRepo}
}

// Execute performs the listing.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) ([]*entity.Expense, error) {
	if err := validatePeriod(input.Year, input.Month); err != nil {
		return nil, err
	}
	return uc.expenseRepo.FindByUserAndPeriod(ctx, input.UserID, input.Year, input.Month)
}
