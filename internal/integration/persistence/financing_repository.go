package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/persistence/model"
)

// financingRepository implements the adapter.FinancingRepository interface.
type financingRepository struct {
	db *gorm.DB
}

// NewFinancingRepository creates a new financing repository instance.
func NewFinancingRepository(db *gorm.DB) adapter.FinancingRepository {
	return &financingRepository{
		db: db,
	}
}

// Create persists the contract header and its full installment schedule.
func (r *financingRepository) Create(ctx context.Context, financing *entity.Financing, installments []*entity.Installment) error {
	financingModel := model.FinancingFromEntity(financing)

	installmentModels := make([]*model.InstallmentModel, len(installments))
	for i, installment := range installments {
		installmentModels[i] = model.InstallmentFromEntity(installment)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(financingModel).Error; err != nil {
			return err
		}
		return tx.Create(installmentModels).Error
	})
}

// FindByIDAndUser retrieves a financing owned by the given user.
func (r *financingRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Financing, error) {
	var financingModel model.FinancingModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&financingModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrFinancingNotFound
		}
		return nil, result.Error
	}
	return financingModel.ToEntity(), nil
}

// FindActiveByUser retrieves all active financings for a user.
func (r *financingRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Financing, error) {
	var financingModels []model.FinancingModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("created_at ASC").
		Find(&financingModels)
	if result.Error != nil {
		return nil, result.Error
	}

	financings := make([]*entity.Financing, len(financingModels))
	for i, fm := range financingModels {
		financings[i] = fm.ToEntity()
	}
	return financings, nil
}

// UpdateProgress updates the contract's remaining principal, paid count and
// active flag after a payment or prepayment.
func (r *financingRepository) UpdateProgress(ctx context.Context, financingID uuid.UUID, remaining decimal.Decimal, paidInstallments int, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&model.FinancingModel{}).
		Where("id = ?", financingID).
		Updates(map[string]any{
			"remaining_amount":  remaining,
			"paid_installments": paidInstallments,
			"active":            active,
			"updated_at":        time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrFinancingNotFound
	}
	return nil
}

// FindInstallmentByIDAndUser retrieves an installment with its contract.
func (r *financingRepository) FindInstallmentByIDAndUser(ctx context.Context, installmentID, userID uuid.UUID) (*adapter.InstallmentWithContract, error) {
	var installmentModel model.InstallmentModel
	result := r.db.WithContext(ctx).
		Preload("Financing").
		Where("id = ? AND user_id = ?", installmentID, userID).
		First(&installmentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInstallmentNotFound
		}
		return nil, result.Error
	}
	if installmentModel.Financing == nil {
		return nil, domainerror.ErrFinancingNotFound
	}
	return &adapter.InstallmentWithContract{
		Installment: installmentModel.ToEntity(),
		Financing:   installmentModel.Financing.ToEntity(),
	}, nil
}

// FindInstallmentsByFinancing retrieves a contract's installments ordered by number.
func (r *financingRepository) FindInstallmentsByFinancing(ctx context.Context, financingID uuid.UUID) ([]*entity.Installment, error) {
	var installmentModels []model.InstallmentModel
	result := r.db.WithContext(ctx).
		Where("financing_id = ?", financingID).
		Order("number ASC").
		Find(&installmentModels)
	if result.Error != nil {
		return nil, result.Error
	}

	installments := make([]*entity.Installment, len(installmentModels))
	for i, im := range installmentModels {
		installments[i] = im.ToEntity()
	}
	return installments, nil
}

// FindNextOpenInstallment retrieves the lowest-numbered open installment.
// It returns (nil, nil) when the contract has no open installments left.
func (r *financingRepository) FindNextOpenInstallment(ctx context.Context, financingID uuid.UUID) (*entity.Installment, error) {
	var installmentModel model.InstallmentModel
	result := r.db.WithContext(ctx).
		Where("financing_id = ? AND status = ?", financingID, string(entity.InstallmentStatusOpen)).
		Order("number ASC").
		First(&installmentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return installmentModel.ToEntity(), nil
}

// MarkInstallmentPaid flips an installment to paid and stamps the payment time.
func (r *financingRepository) MarkInstallmentPaid(ctx context.Context, installmentID uuid.UUID) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&model.InstallmentModel{}).
		Where("id = ? AND status = ?", installmentID, string(entity.InstallmentStatusOpen)).
		Updates(map[string]any{
			"status":     string(entity.InstallmentStatusPaid),
			"paid_at":    now,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrInstallmentAlreadyPaid
	}
	return nil
}

// DeleteOpenInstallmentsFrom removes still-open installments numbered
// fromNumber and above, making room for a regenerated schedule.
func (r *financingRepository) DeleteOpenInstallmentsFrom(ctx context.Context, financingID uuid.UUID, fromNumber int) error {
	result := r.db.WithContext(ctx).
		Where("financing_id = ? AND number >= ? AND status = ?",
			financingID, fromNumber, string(entity.InstallmentStatusOpen)).
		Delete(&model.InstallmentModel{})
	return result.Error
}

// InsertInstallments appends regenerated installments to a contract.
func (r *financingRepository) InsertInstallments(ctx context.Context, installments []*entity.Installment) error {
	if len(installments) == 0 {
		return nil
	}
	installmentModels := make([]*model.InstallmentModel, len(installments))
	for i, installment := range installments {
		installmentModels[i] = model.InstallmentFromEntity(installment)
	}
	result := r.db.WithContext(ctx).Create(installmentModels)
	return result.Error
}
