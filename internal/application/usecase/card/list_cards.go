package card

import (
	"context"

	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
)

// ListCardsUseCase lists a user's active cards.
type ListCardsUseCase struct {
	cardRepo adapter.CardRepository
}

// NewListCardsUseCase creates a new ListCardsUseCase instance.
func NewListCardsUseCase(cardRepo adapter.CardRepository) *ListCardsUseCase {
	return &ListCardsUseCase{cardRepo: cardRepo}
}

// Execute performs the listing.
func (uc *ListCardsUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.Card, error) {
	return uc.cardRepo.FindActiveByUser(ctx, userID)
}
