package category

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/adapter"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// UpdateCategoryLimitInput represents the input for changing a category's limit.
type UpdateCategoryLimitInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Limit      decimal.Decimal
}

// UpdateCategoryLimitUseCase overwrites a category's monthly limit. Setting
// the limit to zero disables alerts for the category.
type UpdateCategoryLimitUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewUpdateCategoryLimitUseCase creates a new UpdateCategoryLimitUseCase instance.
func NewUpdateCategoryLimitUseCase(categoryRepo adapter.CategoryRepository) *UpdateCategoryLimitUseCase {
	return &UpdateCategoryLimitUseCase{categoryRepo: categoryRepo}
}

// Execute performs the limit update.
func (uc *UpdateCategoryLimitUseCase) Execute(ctx context.Context, input UpdateCategoryLimitInput) error {
	if input.Limit.IsNegative() {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryLimit,
			"category limit must not be negative",
			domainerror.ErrInvalidCategoryLimit,
		)
	}

	if _, err := uc.categoryRepo.FindByIDAndUser(ctx, input.CategoryID, input.UserID); err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return err
		}
		return domainerror.NewExpenseError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}
	return uc.categoryRepo.UpdateLimit(ctx, input.CategoryID, input.Limit)
}
