// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AmortizationSystemPrice is the fixed-installment amortization system.
const AmortizationSystemPrice = "PRICE"

// InstallmentStatus represents the payment state of a loan installment.
type InstallmentStatus string

const (
	InstallmentStatusOpen InstallmentStatus = "open"
	InstallmentStatusPaid InstallmentStatus = "paid"
)

// Financing represents an installment loan contract. It becomes inactive
// when the remaining principal reaches zero.
type Financing struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Title            string
	Institution      string
	TotalAmount      decimal.Decimal
	RemainingAmount  decimal.Decimal
	Installments     int
	PaidInstallments int
	MonthlyRate      decimal.Decimal // Percentage, e.g. 1.5 for 1.5% a month
	System           string
	StartDate        time.Time
	DueDay           int
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewFinancing creates an active PRICE financing contract.
func NewFinancing(
	userID uuid.UUID,
	title, institution string,
	totalAmount decimal.Decimal,
	installments int,
	monthlyRate decimal.Decimal,
	startDate time.Time,
	dueDay int,
) *Financing {
	now := time.Now().UTC()
	return &Financing{
		ID:              uuid.New(),
		UserID:          userID,
		Title:           title,
		Institution:     institution,
		TotalAmount:     totalAmount,
		RemainingAmount: totalAmount,
		Installments:    installments,
		MonthlyRate:     monthlyRate,
		System:          AmortizationSystemPrice,
		StartDate:       startDate,
		DueDay:          dueDay,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Installment is one fixed payment of a financing. Numbers within a contract
// are gap-free and unique (1..N).
type Installment struct {
	ID              uuid.UUID
	FinancingID     uuid.UUID
	UserID          uuid.UUID
	Number          int
	Year            int
	Month           int
	DueDate         time.Time
	Amount          decimal.Decimal
	PrincipalAmount decimal.Decimal
	InterestAmount  decimal.Decimal
	Status          InstallmentStatus
	PaidAt          *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
