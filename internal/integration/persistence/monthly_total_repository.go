package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	"github.com/personal-ledger/backend/internal/integration/persistence/model"
)

// monthlyTotalRepository implements the adapter.MonthlyTotalRepository interface.
type monthlyTotalRepository struct {
	db *gorm.DB
}

// NewMonthlyTotalRepository creates a new monthly total repository instance.
func NewMonthlyTotalRepository(db *gorm.DB) adapter.MonthlyTotalRepository {
	return &monthlyTotalRepository{
		db: db,
	}
}

// SetLimit upserts the user-set limit for a period.
func (r *monthlyTotalRepository) SetLimit(ctx context.Context, userID uuid.UUID, year, month int, limit decimal.Decimal) error {
	if err := r.ensureRow(ctx, userID, year, month); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&model.MonthlyTotalModel{}).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Updates(map[string]any{
			"limit_amount": limit,
			"updated_at":   time.Now().UTC(),
		})
	return result.Error
}

// IncrementSpent atomically adds amount to the period's accumulated spend.
func (r *monthlyTotalRepository) IncrementSpent(ctx context.Context, userID uuid.UUID, year, month int, amount decimal.Decimal) error {
	if err := r.ensureRow(ctx, userID, year, month); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&model.MonthlyTotalModel{}).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Updates(map[string]any{
			"spent_amount": gorm.Expr("spent_amount + ?", amount),
			"updated_at":   time.Now().UTC(),
		})
	return result.Error
}

// SetSpent overwrites the period's accumulated spend (used by recalculation).
func (r *monthlyTotalRepository) SetSpent(ctx context.Context, userID uuid.UUID, year, month int, amount decimal.Decimal) error {
	if err := r.ensureRow(ctx, userID, year, month); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&model.MonthlyTotalModel{}).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Updates(map[string]any{
			"spent_amount": amount,
			"updated_at":   time.Now().UTC(),
		})
	return result.Error
}

// FindByPeriod retrieves the row for a (user, year, month). It returns
// (nil, nil) when no row exists for the period.
func (r *monthlyTotalRepository) FindByPeriod(ctx context.Context, userID uuid.UUID, year, month int) (*entity.MonthlyTotal, error) {
	var totalModel model.MonthlyTotalModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		First(&totalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return totalModel.ToEntity(), nil
}

// ensureRow lazily creates the (user, year, month) row. The unique index on
// the period key makes concurrent creation safe.
func (r *monthlyTotalRepository) ensureRow(ctx context.Context, userID uuid.UUID, year, month int) error {
	row := model.MonthlyTotalFromEntity(entity.NewMonthlyTotal(userID, year, month, decimal.Zero))
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "year"}, {Name: "month"}},
			DoNothing: true,
		}).
		Create(row)
	return result.Error
}
