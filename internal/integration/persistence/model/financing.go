package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// FinancingModel represents the financings table in the database.
type FinancingModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title            string          `gorm:"type:varchar(150);not null"`
	Institution      string          `gorm:"type:varchar(100)"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	RemainingAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Installments     int             `gorm:"not null"`
	PaidInstallments int             `gorm:"not null;default:0"`
	MonthlyRate      decimal.Decimal `gorm:"type:decimal(8,4);not null"`
	System           string          `gorm:"type:varchar(10);not null;default:'PRICE'"`
	StartDate        time.Time       `gorm:"type:date;not null"`
	DueDay           int             `gorm:"not null"`
	Active           bool            `gorm:"not null;default:true;index"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`

	User *UserModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the FinancingModel.
func (FinancingModel) TableName() string {
	return "financings"
}

// ToEntity converts a FinancingModel to a domain Financing entity.
func (m *FinancingModel) ToEntity() *entity.Financing {
	return &entity.Financing{
		ID:               m.ID,
		UserID:           m.UserID,
		Title:            m.Title,
		Institution:      m.Institution,
		TotalAmount:      m.TotalAmount,
		RemainingAmount:  m.RemainingAmount,
		Installments:     m.Installments,
		PaidInstallments: m.PaidInstallments,
		MonthlyRate:      m.MonthlyRate,
		System:           m.System,
		StartDate:        m.StartDate,
		DueDay:           m.DueDay,
		Active:           m.Active,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// FinancingFromEntity creates a FinancingModel from a domain entity.
func FinancingFromEntity(financing *entity.Financing) *FinancingModel {
	return &FinancingModel{
		ID:               financing.ID,
		UserID:           financing.UserID,
		Title:            financing.Title,
		Institution:      financing.Institution,
		TotalAmount:      financing.TotalAmount,
		RemainingAmount:  financing.RemainingAmount,
		Installments:     financing.Installments,
		PaidInstallments: financing.PaidInstallments,
		MonthlyRate:      financing.MonthlyRate,
		System:           financing.System,
		StartDate:        financing.StartDate,
		DueDay:           financing.DueDay,
		Active:           financing.Active,
		CreatedAt:        financing.CreatedAt,
		UpdatedAt:        financing.UpdatedAt,
	}
}

// InstallmentModel represents the financing_installments table. Numbers are
// unique and gap-free within a contract.
type InstallmentModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	FinancingID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_installments_number"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Number          int             `gorm:"not null;uniqueIndex:idx_installments_number"`
	Year            int             `gorm:"not null"`
	Month           int             `gorm:"not null"`
	DueDate         time.Time       `gorm:"type:date;not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PrincipalAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	InterestAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status          string          `gorm:"type:varchar(10);not null;default:'open';index"`
	PaidAt          *time.Time      `gorm:"type:timestamp"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`

	Financing *FinancingModel `gorm:"foreignKey:FinancingID;references:ID"`
}

// TableName returns the table name for the InstallmentModel.
func (InstallmentModel) TableName() string {
	return "financing_installments"
}

// ToEntity converts an InstallmentModel to a domain Installment entity.
func (m *InstallmentModel) ToEntity() *entity.Installment {
	return &entity.Installment{
		ID:              m.ID,
		FinancingID:     m.FinancingID,
		UserID:          m.UserID,
		Number:          m.Number,
		Year:            m.Year,
		Month:           m.Month,
		DueDate:         m.DueDate,
		Amount:          m.Amount,
		PrincipalAmount: m.PrincipalAmount,
		InterestAmount:  m.InterestAmount,
		Status:          entity.InstallmentStatus(m.Status),
		PaidAt:          m.PaidAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// InstallmentFromEntity creates an InstallmentModel from a domain entity.
func InstallmentFromEntity(installment *entity.Installment) *InstallmentModel {
	return &InstallmentModel{
		ID:              installment.ID,
		FinancingID:     installment.FinancingID,
		UserID:          installment.UserID,
		Number:          installment.Number,
		Year:            installment.Year,
		Month:           installment.Month,
		DueDate:         installment.DueDate,
		Amount:          installment.Amount,
		PrincipalAmount: installment.PrincipalAmount,
		InterestAmount:  installment.InterestAmount,
		Status:          string(installment.Status),
		PaidAt:          installment.PaidAt,
		CreatedAt:       installment.CreatedAt,
		UpdatedAt:       installment.UpdatedAt,
	}
}
