// Package category contains spending category use cases.
package category

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	UserID      uuid.UUID
	Name        string
	Color       string
	LimitAmount decimal.Decimal
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase creates a spending category with an optional monthly
// limit. A zero limit means no category-limit alerts.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryName,
			"category name must not be empty",
			domainerror.ErrInvalidCategoryName,
		)
	}
	if input.LimitAmount.IsNegative() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryLimit,
			"category limit must not be negative",
			domainerror.ErrInvalidCategoryLimit,
		)
	}

	exists, err := uc.categoryRepo.ExistsActiveByName(ctx, input.UserID, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeDuplicateCategory,
			"an active category with this name already exists",
			domainerror.ErrDuplicateCategory,
		)
	}

	category := entity.NewCategory(input.UserID, name, input.Color, input.LimitAmount)
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return &CreateCategoryOutput{Category: category}, nil
}
