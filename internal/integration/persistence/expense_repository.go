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

// expenseRepository implements the adapter.ExpenseRepository interface.
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository instance.
func NewExpenseRepository(db *gorm.DB) adapter.ExpenseRepository {
	return &expenseRepository{
		db: db,
	}
}

// Create creates a new expense in the database.
func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	expenseModel := model.ExpenseFromEntity(expense)
	result := r.db.WithContext(ctx).Create(expenseModel)
	return result.Error
}

// FindByID retrieves an expense by its ID.
func (r *expenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expenseModel model.ExpenseModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&expenseModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrExpenseNotFound
		}
		return nil, result.Error
	}
	return expenseModel.ToEntity(), nil
}

// FindByUserAndPeriod retrieves all expenses of a user in a (year, month).
func (r *expenseRepository) FindByUserAndPeriod(ctx context.Context, userID uuid.UUID, year, month int) ([]*entity.Expense, error) {
	start, end := periodBounds(year, month)

	var expenseModels []model.ExpenseModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Order("date DESC, created_at DESC").
		Find(&expenseModels)
	if result.Error != nil {
		return nil, result.Error
	}

	expenses := make([]*entity.Expense, len(expenseModels))
	for i, em := range expenseModels {
		expenses[i] = em.ToEntity()
	}
	return expenses, nil
}

// SumByCategoryAndMonth totals a category's spend for the month containing date.
func (r *expenseRepository) SumByCategoryAndMonth(ctx context.Context, userID, categoryID uuid.UUID, date time.Time) (decimal.Decimal, error) {
	start, end := periodBounds(date.Year(), int(date.Month()))

	var raw *string
	result := r.db.WithContext(ctx).
		Model(&model.ExpenseModel{}).
		Select("SUM(amount)").
		Where("user_id = ? AND category_id = ? AND date >= ? AND date < ?", userID, categoryID, start, end).
		Scan(&raw)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	return sumFromRaw(raw)
}

// SumByUserAndPeriod totals a user's non-credit spend for a (year, month).
// Credit entries are excluded: their spend lands when the invoice is paid.
func (r *expenseRepository) SumByUserAndPeriod(ctx context.Context, userID uuid.UUID, year, month int) (decimal.Decimal, error) {
	start, end := periodBounds(year, month)

	var raw *string
	result := r.db.WithContext(ctx).
		Model(&model.ExpenseModel{}).
		Select("SUM(amount)").
		Where("user_id = ? AND payment_method <> ? AND date >= ? AND date < ?",
			userID, string(entity.PaymentMethodCredit), start, end).
		Scan(&raw)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	return sumFromRaw(raw)
}

// periodBounds returns the [start, end) date range of a (year, month).
func periodBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// sumFromRaw parses a SUM() result, treating NULL as zero.
func sumFromRaw(raw *string) (decimal.Decimal, error) {
	if raw == nil || *raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(*raw)
}
