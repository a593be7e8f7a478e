package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// MonthlyTotalModel represents the monthly_totals table in the database.
// One row exists per (user, year, month), created lazily.
type MonthlyTotalModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_monthly_totals_period"`
	Year        int             `gorm:"not null;uniqueIndex:idx_monthly_totals_period"`
	Month       int             `gorm:"not null;uniqueIndex:idx_monthly_totals_period"`
	LimitAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	SpentAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the MonthlyTotalModel.
func (MonthlyTotalModel) TableName() string {
	return "monthly_totals"
}

// ToEntity converts a MonthlyTotalModel to a domain MonthlyTotal entity.
func (m *MonthlyTotalModel) ToEntity() *entity.MonthlyTotal {
	return &entity.MonthlyTotal{
		ID:          m.ID,
		UserID:      m.UserID,
		Year:        m.Year,
		Month:       m.Month,
		LimitAmount: m.LimitAmount,
		SpentAmount: m.SpentAmount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// MonthlyTotalFromEntity creates a MonthlyTotalModel from a domain entity.
func MonthlyTotalFromEntity(total *entity.MonthlyTotal) *MonthlyTotalModel {
	return &MonthlyTotalModel{
		ID:          total.ID,
		UserID:      total.UserID,
		Year:        total.Year,
		Month:       total.Month,
		LimitAmount: total.LimitAmount,
		SpentAmount: total.SpentAmount,
		CreatedAt:   total.CreatedAt,
		UpdatedAt:   total.UpdatedAt,
	}
}
