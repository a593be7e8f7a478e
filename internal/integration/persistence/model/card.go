package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// CardModel represents the cards table in the database.
type CardModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(100);not null"`
	Brand       string          `gorm:"type:varchar(30);not null"`
	Last4       string          `gorm:"type:varchar(4);not null"`
	ColorHex    string          `gorm:"type:varchar(7)"`
	LimitAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	UsedAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	ClosingDay  int             `gorm:"not null"`
	DueDay      int             `gorm:"not null"`
	Active      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`

	User *UserModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the CardModel.
func (CardModel) TableName() string {
	return "cards"
}

// ToEntity converts a CardModel to a domain Card entity.
func (m *CardModel) ToEntity() *entity.Card {
	return &entity.Card{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Brand:       m.Brand,
		Last4:       m.Last4,
		ColorHex:    m.ColorHex,
		LimitAmount: m.LimitAmount,
		UsedAmount:  m.UsedAmount,
		ClosingDay:  m.ClosingDay,
		DueDay:      m.DueDay,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// CardFromEntity creates a CardModel from a domain Card entity.
func CardFromEntity(card *entity.Card) *CardModel {
	return &CardModel{
		ID:          card.ID,
		UserID:      card.UserID,
		Name:        card.Name,
		Brand:       card.Brand,
		Last4:       card.Last4,
		ColorHex:    card.ColorHex,
		LimitAmount: card.LimitAmount,
		UsedAmount:  card.UsedAmount,
		ClosingDay:  card.ClosingDay,
		DueDay:      card.DueDay,
		Active:      card.Active,
		CreatedAt:   card.CreatedAt,
		UpdatedAt:   card.UpdatedAt,
	}
}

// CardInvoiceModel represents the card_invoices table in the database.
// One row exists per (card, year, month) billing cycle, created lazily.
type CardInvoiceModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CardID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_card_invoices_cycle"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Year         int             `gorm:"not null;uniqueIndex:idx_card_invoices_cycle"`
	Month        int             `gorm:"not null;uniqueIndex:idx_card_invoices_cycle"`
	TotalCharged decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalPaid    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Status       string          `gorm:"type:varchar(20);not null;default:'OPEN'"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the CardInvoiceModel.
func (CardInvoiceModel) TableName() string {
	return "card_invoices"
}

// ToEntity converts a CardInvoiceModel to a domain CardInvoice entity.
func (m *CardInvoiceModel) ToEntity() *entity.CardInvoice {
	return &entity.CardInvoice{
		ID:           m.ID,
		CardID:       m.CardID,
		UserID:       m.UserID,
		Year:         m.Year,
		Month:        m.Month,
		TotalCharged: m.TotalCharged,
		TotalPaid:    m.TotalPaid,
		Status:       entity.InvoiceStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// CardChargeModel represents the card_charges table in the database.
type CardChargeModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	CardID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description       string          `gorm:"type:varchar(255);not null"`
	CategoryName      string          `gorm:"type:varchar(100)"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Installments      int             `gorm:"not null"`
	InstallmentAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PurchaseDate      time.Time       `gorm:"type:date;not null"`
	FirstYear         int             `gorm:"not null;index:idx_card_charges_first"`
	FirstMonth        int             `gorm:"not null;index:idx_card_charges_first"`
	PaidInstallments  int             `gorm:"not null;default:0"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for the CardChargeModel.
func (CardChargeModel) TableName() string {
	return "card_charges"
}

// ToEntity converts a CardChargeModel to a domain CardCharge entity.
func (m *CardChargeModel) ToEntity() *entity.CardCharge {
	return &entity.CardCharge{
		ID:                m.ID,
		UserID:            m.UserID,
		CardID:            m.CardID,
		Description:       m.Description,
		CategoryName:      m.CategoryName,
		TotalAmount:       m.TotalAmount,
		Installments:      m.Installments,
		InstallmentAmount: m.InstallmentAmount,
		PurchaseDate:      m.PurchaseDate,
		FirstYear:         m.FirstYear,
		FirstMonth:        m.FirstMonth,
		PaidInstallments:  m.PaidInstallments,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// CardChargeFromEntity creates a CardChargeModel from a domain entity.
func CardChargeFromEntity(charge *entity.CardCharge) *CardChargeModel {
	return &CardChargeModel{
		ID:                charge.ID,
		UserID:            charge.UserID,
		CardID:            charge.CardID,
		Description:       charge.Description,
		CategoryName:      charge.CategoryName,
		TotalAmount:       charge.TotalAmount,
		Installments:      charge.Installments,
		InstallmentAmount: charge.InstallmentAmount,
		PurchaseDate:      charge.PurchaseDate,
		FirstYear:         charge.FirstYear,
		FirstMonth:        charge.FirstMonth,
		PaidInstallments:  charge.PaidInstallments,
		CreatedAt:         charge.CreatedAt,
		UpdatedAt:         charge.UpdatedAt,
	}
}
