package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/usecase/financing"
	"github.com/personal-ledger/backend/internal/domain/entity"
	"github.com/personal-ledger/backend/internal/domain/finance"
)

// CreateFinancingRequest represents the request body for contract creation.
type CreateFinancingRequest struct {
	Title        string          `json:"title" binding:"required,min=1,max=100"`
	Institution  string          `json:"institution" binding:"max=100"`
	TotalAmount  decimal.Decimal `json:"total_amount" binding:"required"`
	Installments int             `json:"installments" binding:"required,min=1,max=480"`
	MonthlyRate  decimal.Decimal `json:"monthly_rate"`
	StartDate    *time.Time      `json:"start_date,omitempty"`
	DueDay       int             `json:"due_day,omitempty"`
}

// SimulateFinancingRequest represents the request body for a schedule simulation.
type SimulateFinancingRequest struct {
	TotalAmount  decimal.Decimal `json:"total_amount" binding:"required"`
	Installments int             `json:"installments" binding:"required,min=1,max=480"`
	MonthlyRate  decimal.Decimal `json:"monthly_rate"`
	StartDate    *time.Time      `json:"start_date,omitempty"`
	DueDay       int             `json:"due_day,omitempty"`
}

// PayInstallmentRequest represents the request body for an installment payment.
type PayInstallmentRequest struct {
	PaymentDate *time.Time `json:"payment_date,omitempty"`
}

// PrepayRequest represents the request body for an extraordinary payment.
type PrepayRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
}

// InstallmentResponse represents a loan installment in API responses.
type InstallmentResponse struct {
	ID              string          `json:"id"`
	Number          int             `json:"number"`
	Year            int             `json:"year"`
	Month           int             `json:"month"`
	DueDate         time.Time       `json:"due_date"`
	Amount          decimal.Decimal `json:"amount"`
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	InterestAmount  decimal.Decimal `json:"interest_amount"`
	Status          string          `json:"status"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
}

// FinancingResponse represents a loan contract in API responses.
type FinancingResponse struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Institution      string          `json:"institution"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	RemainingAmount  decimal.Decimal `json:"remaining_amount"`
	Installments     int             `json:"installments"`
	PaidInstallments int             `json:"paid_installments"`
	MonthlyRate      decimal.Decimal `json:"monthly_rate"`
	System           string          `json:"system"`
	StartDate        time.Time       `json:"start_date"`
	DueDay           int             `json:"due_day"`
	Active           bool            `json:"active"`
	CreatedAt        time.Time       `json:"created_at"`
}

// FinancingDetailResponse pairs a contract with its installment schedule.
type FinancingDetailResponse struct {
	Financing    FinancingResponse     `json:"financing"`
	Installments []InstallmentResponse `json:"installments"`
}

// ActiveContractResponse pairs a contract with its next open installment.
type ActiveContractResponse struct {
	Financing       FinancingResponse    `json:"financing"`
	NextInstallment *InstallmentResponse `json:"next_installment,omitempty"`
}

// FinancingListResponse represents the portfolio of active contracts.
type FinancingListResponse struct {
	Financings     []ActiveContractResponse `json:"financings"`
	TotalDebt      decimal.Decimal          `json:"total_debt"`
	MonthlyPayment decimal.Decimal          `json:"monthly_payment"`
	MeanRate       decimal.Decimal          `json:"mean_rate"`
	NextDueDate    *time.Time               `json:"next_due_date,omitempty"`
}

// ScheduledInstallmentResponse is one simulated schedule line.
type ScheduledInstallmentResponse struct {
	Number           int             `json:"number"`
	Year             int             `json:"year"`
	Month            int             `json:"month"`
	DueDate          time.Time       `json:"due_date"`
	Amount           decimal.Decimal `json:"amount"`
	PrincipalAmount  decimal.Decimal `json:"principal_amount"`
	InterestAmount   decimal.Decimal `json:"interest_amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// SimulateFinancingResponse represents a simulated schedule and its totals.
type SimulateFinancingResponse struct {
	Schedule      []ScheduledInstallmentResponse `json:"schedule"`
	TotalPaid     decimal.Decimal                `json:"total_paid"`
	TotalInterest decimal.Decimal                `json:"total_interest"`
}

// PayInstallmentResponse represents the contract state after a payment.
type PayInstallmentResponse struct {
	FinancingID      string          `json:"financing_id"`
	RemainingAmount  decimal.Decimal `json:"remaining_amount"`
	PaidInstallments int             `json:"paid_installments"`
	Active           bool            `json:"active"`
}

// PrepayResponse represents the contract state after re-amortization.
type PrepayResponse struct {
	FinancingID     string                `json:"financing_id"`
	RemainingAmount decimal.Decimal       `json:"remaining_amount"`
	Active          bool                  `json:"active"`
	NewInstallments []InstallmentResponse `json:"new_installments"`
}

// ToFinancingResponse converts a domain Financing entity to a FinancingResponse DTO.
func ToFinancingResponse(f *entity.Financing) FinancingResponse {
	return FinancingResponse{
		ID:               f.ID.String(),
		Title:            f.Title,
		Institution:      f.Institution,
		TotalAmount:      f.TotalAmount,
		RemainingAmount:  f.RemainingAmount,
		Installments:     f.Installments,
		PaidInstallments: f.PaidInstallments,
		MonthlyRate:      f.MonthlyRate,
		System:           f.System,
		StartDate:        f.StartDate,
		DueDay:           f.DueDay,
		Active:           f.Active,
		CreatedAt:        f.CreatedAt,
	}
}

// ToInstallmentResponse converts a domain Installment entity to an InstallmentResponse DTO.
func ToInstallmentResponse(inst *entity.Installment) InstallmentResponse {
	return InstallmentResponse{
		ID:              inst.ID.String(),
		Number:          inst.Number,
		Year:            inst.Year,
		Month:           inst.Month,
		DueDate:         inst.DueDate,
		Amount:          inst.Amount,
		PrincipalAmount: inst.PrincipalAmount,
		InterestAmount:  inst.InterestAmount,
		Status:          string(inst.Status),
		PaidAt:          inst.PaidAt,
	}
}

// ToInstallmentListResponse converts a list of installments.
func ToInstallmentListResponse(installments []*entity.Installment) []InstallmentResponse {
	out := make([]InstallmentResponse, len(installments))
	for i, inst := range installments {
		out[i] = ToInstallmentResponse(inst)
	}
	return out
}

// ToFinancingListResponse converts a portfolio output to FinancingListResponse.
func ToFinancingListResponse(output *financing.ListActiveOutput) FinancingListResponse {
	contracts := make([]ActiveContractResponse, len(output.Contracts))
	for i, contract := range output.Contracts {
		resp := ActiveContractResponse{
			Financing: ToFinancingResponse(contract.Financing),
		}
		if contract.NextInstallment != nil {
			next := ToInstallmentResponse(contract.NextInstallment)
			resp.NextInstallment = &next
		}
		contracts[i] = resp
	}
	return FinancingListResponse{
		Financings:     contracts,
		TotalDebt:      output.TotalDebt,
		MonthlyPayment: output.MonthlyPayment,
		MeanRate:       output.MeanRate,
		NextDueDate:    output.NextDueDate,
	}
}

// ToScheduleResponse converts a simulated schedule.
func ToScheduleResponse(schedule []finance.ScheduledInstallment) []ScheduledInstallmentResponse {
	out := make([]ScheduledInstallmentResponse, len(schedule))
	for i, line := range schedule {
		out[i] = ScheduledInstallmentResponse{
			Number:           line.Number,
			Year:             line.Year,
			Month:            line.Month,
			DueDate:          line.DueDate,
			Amount:           line.Total,
			PrincipalAmount:  line.Principal,
			InterestAmount:   line.Interest,
			RemainingBalance: line.RemainingBalance,
		}
	}
	return out
}
