package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// CreateExpenseRequest represents the request body for ledger entry creation.
type CreateExpenseRequest struct {
	CategoryID    *string         `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Date          time.Time       `json:"date" binding:"required"`
	Description   string          `json:"description" binding:"max=255"`
	PaymentMethod string          `json:"payment_method" binding:"required,oneof=CASH DEBIT PIX CREDIT"`
	CardID        *string         `json:"card_id,omitempty" binding:"omitempty,uuid"`
}

// SetMonthlyLimitRequest represents the request body for setting a monthly
// spending limit.
type SetMonthlyLimitRequest struct {
	Year  int             `json:"year" binding:"required"`
	Month int             `json:"month" binding:"required"`
	Limit decimal.Decimal `json:"limit" binding:"required"`
}

// ExpenseResponse represents a single ledger entry in API responses.
type ExpenseResponse struct {
	ID            string          `json:"id"`
	CategoryID    *string         `json:"category_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	PaymentMethod string          `json:"payment_method"`
	Origin        string          `json:"origin"`
	CardID        *string         `json:"card_id,omitempty"`
	FinancingID   *string         `json:"financing_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ExpenseListResponse represents the response for listing a period's entries.
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// MonthlyTotalResponse represents a period's accumulated spend and limit.
type MonthlyTotalResponse struct {
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
	SpentAmount decimal.Decimal `json:"spent_amount"`
}

// ToExpenseResponse converts a domain Expense entity to an ExpenseResponse DTO.
func ToExpenseResponse(expense *entity.Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ID:            expense.ID.String(),
		Amount:        expense.Amount,
		Date:          expense.Date,
		Description:   expense.Description,
		PaymentMethod: string(expense.PaymentMethod),
		Origin:        string(expense.Origin),
		CreatedAt:     expense.CreatedAt,
	}
	if expense.CategoryID != nil {
		id := expense.CategoryID.String()
		resp.CategoryID = &id
	}
	if expense.CardID != nil {
		id := expense.CardID.String()
		resp.CardID = &id
	}
	if expense.FinancingID != nil {
		id := expense.FinancingID.String()
		resp.FinancingID = &id
	}
	return resp
}

// ToExpenseListResponse converts a list of entries to ExpenseListResponse.
func ToExpenseListResponse(expenses []*entity.Expense) ExpenseListResponse {
	out := make([]ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		out[i] = ToExpenseResponse(expense)
	}
	return ExpenseListResponse{Expenses: out}
}
