package category

import (
	"context"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
)

// ListCategoriesUseCase lists a user's categories.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{categoryRepo: categoryRepo}
}

// Execute performs the listing.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	return uc.categoryRepo.FindByUser(ctx, userID)
}
