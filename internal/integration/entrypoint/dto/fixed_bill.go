package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/usecase/fixedbill"
	"github.com/personal-ledger/backend/internal/domain/entity"
)

// CreateFixedBillRequest represents the request body for registering a fixed
// bill.
type CreateFixedBillRequest struct {
	Kind        string          `json:"kind,omitempty"`
	Title       string          `json:"title" binding:"required,min=1,max=100"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	DueDay      int             `json:"due_day" binding:"required"`
	Recurrence  string          `json:"recurrence,omitempty"`
}

// ToggleFixedBillRequest represents the request body for pausing or resuming
// a fixed bill.
type ToggleFixedBillRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// FixedBillResponse represents a single fixed bill in API responses.
type FixedBillResponse struct {
	ID                string          `json:"id"`
	Kind              string          `json:"kind"`
	Group             string          `json:"group"`
	Title             string          `json:"title"`
	Description       string          `json:"description,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	MonthlyEquivalent decimal.Decimal `json:"monthly_equivalent"`
	DueDay            int             `json:"due_day"`
	Recurrence        string          `json:"recurrence"`
	Active            bool            `json:"active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// FixedBillListResponse represents the response for listing fixed bills.
type FixedBillListResponse struct {
	Bills []FixedBillResponse `json:"bills"`
}

// FixedBillGroupTotalResponse is one display group's slice of the overview.
type FixedBillGroupTotalResponse struct {
	Group        string          `json:"group"`
	MonthlyTotal decimal.Decimal `json:"monthly_total"`
	Count        int             `json:"count"`
}

// FixedBillUpcomingResponse summarizes the bills due in the next seven days.
type FixedBillUpcomingResponse struct {
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// FixedBillOverviewResponse represents the consolidated fixed-bill screen.
type FixedBillOverviewResponse struct {
	MonthlyTotal decimal.Decimal               `json:"monthly_total"`
	AnnualTotal  decimal.Decimal               `json:"annual_total"`
	Upcoming     FixedBillUpcomingResponse     `json:"upcoming"`
	GroupTotals  []FixedBillGroupTotalResponse `json:"group_totals"`
	Bills        []FixedBillResponse           `json:"bills"`
}

// ToFixedBillResponse converts a domain FixedBill entity to a
// FixedBillResponse DTO.
func ToFixedBillResponse(bill *entity.FixedBill) FixedBillResponse {
	return FixedBillResponse{
		ID:                bill.ID.String(),
		Kind:              string(bill.Kind),
		Group:             string(bill.Group()),
		Title:             bill.Title,
		Description:       bill.Description,
		Amount:            bill.Amount,
		MonthlyEquivalent: bill.MonthlyEquivalent(),
		DueDay:            bill.DueDay,
		Recurrence:        string(bill.Recurrence),
		Active:            bill.Active,
		CreatedAt:         bill.CreatedAt,
		UpdatedAt:         bill.UpdatedAt,
	}
}

// ToFixedBillListResponse converts a list of fixed bills to
// FixedBillListResponse.
func ToFixedBillListResponse(bills []*entity.FixedBill) FixedBillListResponse {
	out := make([]FixedBillResponse, len(bills))
	for i, bill := range bills {
		out[i] = ToFixedBillResponse(bill)
	}
	return FixedBillListResponse{Bills: out}
}

// ToFixedBillOverviewResponse converts the overview output to its response
// DTO.
func ToFixedBillOverviewResponse(overview *fixedbill.FixedBillOverviewOutput) FixedBillOverviewResponse {
	groups := make([]FixedBillGroupTotalResponse, len(overview.GroupTotals))
	for i, gt := range overview.GroupTotals {
		groups[i] = FixedBillGroupTotalResponse{
			Group:        string(gt.Group),
			MonthlyTotal: gt.MonthlyTotal,
			Count:        gt.Count,
		}
	}
	return FixedBillOverviewResponse{
		MonthlyTotal: overview.MonthlyTotal,
		AnnualTotal:  overview.AnnualTotal,
		Upcoming: FixedBillUpcomingResponse{
			Total: overview.Upcoming.Total,
			Count: overview.Upcoming.Count,
		},
		GroupTotals: groups,
		Bills:       ToFixedBillListResponse(overview.Bills).Bills,
	}
}
