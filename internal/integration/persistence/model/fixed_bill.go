package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// FixedBillModel represents the fixed_bills table in the database.
type FixedBillModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind        string          `gorm:"type:varchar(20);not null"`
	Title       string          `gorm:"type:varchar(100);not null"`
	Description string          `gorm:"type:varchar(255)"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DueDay      int             `gorm:"not null"`
	Recurrence  string          `gorm:"type:varchar(20);not null"`
	Active      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`

	User *UserModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the FixedBillModel.
func (FixedBillModel) TableName() string {
	return "fixed_bills"
}

// ToEntity converts a FixedBillModel to a domain FixedBill entity.
func (m *FixedBillModel) ToEntity() *entity.FixedBill {
	return &entity.FixedBill{
		ID:          m.ID,
		UserID:      m.UserID,
		Kind:        entity.FixedBillKind(m.Kind),
		Title:       m.Title,
		Description: m.Description,
		Amount:      m.Amount,
		DueDay:      m.DueDay,
		Recurrence:  entity.BillRecurrence(m.Recurrence),
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FixedBillFromEntity creates a FixedBillModel from a domain FixedBill entity.
func FixedBillFromEntity(bill *entity.FixedBill) *FixedBillModel {
	return &FixedBillModel{
		ID:          bill.ID,
		UserID:      bill.UserID,
		Kind:        string(bill.Kind),
		Title:       bill.Title,
		Description: bill.Description,
		Amount:      bill.Amount,
		DueDay:      bill.DueDay,
		Recurrence:  string(bill.Recurrence),
		Active:      bill.Active,
		CreatedAt:   bill.CreatedAt,
		UpdatedAt:   bill.UpdatedAt,
	}
}
