package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/persistence/model"
)

// fixedBillRepository implements the adapter.FixedBillRepository interface.
type fixedBillRepository struct {
	db *gorm.DB
}

// NewFixedBillRepository creates a new fixed-bill repository instance.
func NewFixedBillRepository(db *gorm.DB) adapter.FixedBillRepository {
	return &fixedBillRepository{
		db: db,
	}
}

// Create creates a new fixed bill in the database.
func (r *fixedBillRepository) Create(ctx context.Context, bill *entity.FixedBill) error {
	billModel := model.FixedBillFromEntity(bill)
	result := r.db.WithContext(ctx).Create(billModel)
	return result.Error
}

// FindByUser retrieves a user's fixed bills, active first, ordered by due day
// then title.
func (r *fixedBillRepository) FindByUser(ctx context.Context, userID uuid.UUID, onlyActive bool) ([]*entity.FixedBill, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if onlyActive {
		query = query.Where("active = ?", true)
	}

	var billModels []model.FixedBillModel
	result := query.
		Order("active DESC").
		Order("due_day ASC").
		Order("title ASC").
		Find(&billModels)
	if result.Error != nil {
		return nil, result.Error
	}

	bills := make([]*entity.FixedBill, len(billModels))
	for i, bm := range billModels {
		bills[i] = bm.ToEntity()
	}
	return bills, nil
}

// FindByIDAndUser retrieves a fixed bill owned by the given user.
func (r *fixedBillRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.FixedBill, error) {
	var billModel model.FixedBillModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&billModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrFixedBillNotFound
		}
		return nil, result.Error
	}
	return billModel.ToEntity(), nil
}

// UpdateActive pauses or resumes a fixed bill.
func (r *fixedBillRepository) UpdateActive(ctx context.Context, id, userID uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&model.FixedBillModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"active":     active,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrFixedBillNotFound
	}
	return nil
}
