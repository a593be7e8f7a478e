package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/usecase/card"
	"github.com/personal-ledger/backend/internal/domain/entity"
)

// CreateCardRequest represents the request body for card registration.
type CreateCardRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=50"`
	Brand       string          `json:"brand" binding:"max=30"`
	Last4       string          `json:"last4" binding:"omitempty,len=4,numeric"`
	ColorHex    string          `json:"color_hex,omitempty"`
	LimitAmount decimal.Decimal `json:"limit_amount" binding:"required"`
	ClosingDay  int             `json:"closing_day" binding:"required"`
	DueDay      int             `json:"due_day" binding:"required"`
}

// CreateChargeRequest represents the request body for a card purchase.
type CreateChargeRequest struct {
	Description  string          `json:"description" binding:"required,max=255"`
	CategoryName string          `json:"category_name" binding:"max=50"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Installments int             `json:"installments" binding:"required,min=1,max=48"`
	PurchaseDate time.Time       `json:"purchase_date" binding:"required"`
}

// PayInvoiceRequest represents the request body for an invoice payment.
type PayInvoiceRequest struct {
	Year   int             `json:"year" binding:"required"`
	Month  int             `json:"month" binding:"required,min=1,max=12"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CardResponse represents a single card in API responses.
type CardResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Brand          string          `json:"brand"`
	Last4          string          `json:"last4"`
	ColorHex       string          `json:"color_hex"`
	LimitAmount    decimal.Decimal `json:"limit_amount"`
	UsedAmount     decimal.Decimal `json:"used_amount"`
	AvailableLimit decimal.Decimal `json:"available_limit"`
	ClosingDay     int             `json:"closing_day"`
	DueDay         int             `json:"due_day"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CardListResponse represents the response for listing cards.
type CardListResponse struct {
	Cards []CardResponse `json:"cards"`
}

// ChargeShareResponse is one monthly invoice share of a purchase.
type ChargeShareResponse struct {
	Year   int             `json:"year"`
	Month  int             `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// ChargeResponse represents a registered card purchase.
type ChargeResponse struct {
	ID                string                `json:"id"`
	CardID            string                `json:"card_id"`
	Description       string                `json:"description"`
	CategoryName      string                `json:"category_name"`
	TotalAmount       decimal.Decimal       `json:"total_amount"`
	Installments      int                   `json:"installments"`
	InstallmentAmount decimal.Decimal       `json:"installment_amount"`
	PurchaseDate      time.Time             `json:"purchase_date"`
	FirstYear         int                   `json:"first_year"`
	FirstMonth        int                   `json:"first_month"`
	Shares            []ChargeShareResponse `json:"shares"`
}

// InvoiceResponse represents a card invoice in API responses.
type InvoiceResponse struct {
	ID           string          `json:"id"`
	CardID       string          `json:"card_id"`
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	TotalCharged decimal.Decimal `json:"total_charged"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	Outstanding  decimal.Decimal `json:"outstanding"`
	Status       string          `json:"status"`
}

// PayInvoiceResponse represents the result of an invoice payment.
type PayInvoiceResponse struct {
	InvoiceID   string          `json:"invoice_id"`
	Status      string          `json:"status"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// OverviewItemResponse is one purchase billing the requested month.
type OverviewItemResponse struct {
	ChargeID          string          `json:"charge_id"`
	Description       string          `json:"description"`
	CategoryName      string          `json:"category_name"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	Installment       int             `json:"installment"`
	Installments      int             `json:"installments"`
}

// CardOverviewResponse aggregates one card's activity for the month.
type CardOverviewResponse struct {
	Card           CardResponse               `json:"card"`
	Invoice        *InvoiceResponse           `json:"invoice,omitempty"`
	Items          []OverviewItemResponse     `json:"items"`
	CategoryTotals map[string]decimal.Decimal `json:"category_totals"`
	MonthTotal     decimal.Decimal            `json:"month_total"`
}

// MonthOverviewResponse represents the full card overview for a month.
type MonthOverviewResponse struct {
	Year       int                    `json:"year"`
	Month      int                    `json:"month"`
	Cards      []CardOverviewResponse `json:"cards"`
	GrandTotal decimal.Decimal        `json:"grand_total"`
}

// ToCardResponse converts a domain Card entity to a CardResponse DTO.
func ToCardResponse(c *entity.Card) CardResponse {
	return CardResponse{
		ID:             c.ID.String(),
		Name:           c.Name,
		Brand:          c.Brand,
		Last4:          c.Last4,
		ColorHex:       c.ColorHex,
		LimitAmount:    c.LimitAmount,
		UsedAmount:     c.UsedAmount,
		AvailableLimit: c.AvailableLimit(),
		ClosingDay:     c.ClosingDay,
		DueDay:         c.DueDay,
		Active:         c.Active,
		CreatedAt:      c.CreatedAt,
	}
}

// ToCardListResponse converts a list of cards to CardListResponse.
func ToCardListResponse(cards []*entity.Card) CardListResponse {
	out := make([]CardResponse, len(cards))
	for i, c := range cards {
		out[i] = ToCardResponse(c)
	}
	return CardListResponse{Cards: out}
}

// ToChargeResponse converts a charge creation output to a ChargeResponse DTO.
func ToChargeResponse(output *card.CreateChargeOutput) ChargeResponse {
	shares := make([]ChargeShareResponse, len(output.Shares))
	for i, share := range output.Shares {
		shares[i] = ChargeShareResponse{
			Year:   share.Year,
			Month:  share.Month,
			Amount: share.Amount,
		}
	}
	charge := output.Charge
	return ChargeResponse{
		ID:                charge.ID.String(),
		CardID:            charge.CardID.String(),
		Description:       charge.Description,
		CategoryName:      charge.CategoryName,
		TotalAmount:       charge.TotalAmount,
		Installments:      charge.Installments,
		InstallmentAmount: charge.InstallmentAmount,
		PurchaseDate:      charge.PurchaseDate,
		FirstYear:         charge.FirstYear,
		FirstMonth:        charge.FirstMonth,
		Shares:            shares,
	}
}

// ToInvoiceResponse converts a domain CardInvoice entity to an InvoiceResponse DTO.
func ToInvoiceResponse(invoice *entity.CardInvoice) InvoiceResponse {
	return InvoiceResponse{
		ID:           invoice.ID.String(),
		CardID:       invoice.CardID.String(),
		Year:         invoice.Year,
		Month:        invoice.Month,
		TotalCharged: invoice.TotalCharged,
		TotalPaid:    invoice.TotalPaid,
		Outstanding:  invoice.Outstanding(),
		Status:       string(invoice.Status),
	}
}

// ToMonthOverviewResponse converts an overview output to a MonthOverviewResponse DTO.
func ToMonthOverviewResponse(output *card.MonthOverviewOutput) MonthOverviewResponse {
	cards := make([]CardOverviewResponse, len(output.Cards))
	for i, overview := range output.Cards {
		items := make([]OverviewItemResponse, len(overview.Items))
		for j, item := range overview.Items {
			items[j] = OverviewItemResponse{
				ChargeID:          item.ChargeID.String(),
				Description:       item.Description,
				CategoryName:      item.CategoryName,
				InstallmentAmount: item.InstallmentAmount,
				Installment:       item.Installment,
				Installments:      item.Installments,
			}
		}
		resp := CardOverviewResponse{
			Card:           ToCardResponse(overview.Card),
			Items:          items,
			CategoryTotals: overview.CategoryTotals,
			MonthTotal:     overview.MonthTotal,
		}
		if overview.Invoice != nil {
			invoice := ToInvoiceResponse(overview.Invoice)
			resp.Invoice = &invoice
		}
		cards[i] = resp
	}
	return MonthOverviewResponse{
		Year:       output.Year,
		Month:      output.Month,
		Cards:      cards,
		GrandTotal: output.GrandTotal,
	}
}
