package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date          time.Time       `gorm:"type:date;not null;index"`
	Description   string          `gorm:"type:varchar(255);not null"`
	PaymentMethod string          `gorm:"type:varchar(10);not null;index"`
	Origin        string          `gorm:"type:varchar(20);not null"`
	CardID        *uuid.UUID      `gorm:"type:uuid;index"`
	FinancingID   *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`

	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
	User     *UserModel     `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	return &entity.Expense{
		ID:            m.ID,
		UserID:        m.UserID,
		CategoryID:    m.CategoryID,
		Amount:        m.Amount,
		Date:          m.Date,
		Description:   m.Description,
		PaymentMethod: entity.PaymentMethod(m.PaymentMethod),
		Origin:        entity.ExpenseOrigin(m.Origin),
		CardID:        m.CardID,
		FinancingID:   m.FinancingID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(expense *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:            expense.ID,
		UserID:        expense.UserID,
		CategoryID:    expense.CategoryID,
		Amount:        expense.Amount,
		Date:          expense.Date,
		Description:   expense.Description,
		PaymentMethod: string(expense.PaymentMethod),
		Origin:        string(expense.Origin),
		CardID:        expense.CardID,
		FinancingID:   expense.FinancingID,
		CreatedAt:     expense.CreatedAt,
		UpdatedAt:     expense.UpdatedAt,
	}
}
