package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/personal-ledger/backend/internal/application/adapter"
)

// unitOfWork exposes transaction-scoped repositories over one *gorm.DB
// transaction handle.
type unitOfWork struct {
	tx *gorm.DB
}

func (u *unitOfWork) Users() adapter.UserRepository          { return NewUserRepository(u.tx) }
func (u *unitOfWork) Categories() adapter.CategoryRepository { return NewCategoryRepository(u.tx) }
func (u *unitOfWork) Expenses() adapter.ExpenseRepository    { return NewExpenseRepository(u.tx) }
func (u *unitOfWork) MonthlyTotals() adapter.MonthlyTotalRepository {
	return NewMonthlyTotalRepository(u.tx)
}
func (u *unitOfWork) Alerts() adapter.AlertRepository { return NewAlertRepository(u.tx) }
func (u *unitOfWork) Cards() adapter.CardRepository   { return NewCardRepository(u.tx) }
func (u *unitOfWork) CardInvoices() adapter.CardInvoiceRepository {
	return NewCardInvoiceRepository(u.tx)
}
func (u *unitOfWork) CardCharges() adapter.CardChargeRepository { return NewCardChargeRepository(u.tx) }
func (u *unitOfWork) Financings() adapter.FinancingRepository   { return NewFinancingRepository(u.tx) }

// unitOfWorkManager implements adapter.UnitOfWorkManager on GORM's
// transaction support: commit on nil, rollback on error or panic.
type unitOfWorkManager struct {
	db *gorm.DB
}

// NewUnitOfWorkManager creates a new unit of work manager instance.
func NewUnitOfWorkManager(db *gorm.DB) adapter.UnitOfWorkManager {
	return &unitOfWorkManager{
		db: db,
	}
}

// Run opens a transaction and invokes fn with a scoped unit of work.
func (m *unitOfWorkManager) Run(ctx context.Context, fn func(uow adapter.UnitOfWork) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&unitOfWork{tx: tx})
	})
}
