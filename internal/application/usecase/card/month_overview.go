package card

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
	"github.com/personal-ledger/backend/internal/domain/finance"
)

// MonthOverviewInput represents the input for the monthly card overview.
type MonthOverviewInput struct {
	UserID uuid.UUID
	Year   int
	Month  int
}

// OverviewItem is one purchase billing the requested month.
type OverviewItem struct {
	ChargeID          uuid.UUID
	Description       string
	CategoryName      string
	InstallmentAmount decimal.Decimal
	Installment       int // 1-based installment number for this month
	Installments      int
}

// CardOverview aggregates one card's activity for the requested month.
type CardOverview struct {
	Card           *entity.Card
	Invoice        *entity.CardInvoice // nil when no charges landed on the cycle
	Items          []OverviewItem
	CategoryTotals map[string]decimal.Decimal
	MonthTotal     decimal.Decimal
}

// MonthOverviewOutput represents the full overview for a (year, month).
type MonthOverviewOutput struct {
	Year       int
	Month      int
	Cards      []CardOverview
	GrandTotal decimal.Decimal
}

// MonthOverviewUseCase builds a read-only snapshot of every active card's
// billing for one month: the items whose installment window covers the cycle,
// per-category totals and the invoice state.
type MonthOverviewUseCase struct {
	cardRepo    adapter.CardRepository
	chargeRepo  adapter.CardChargeRepository
	invoiceRepo adapter.CardInvoiceRepository
}

// NewMonthOverviewUseCase creates a new MonthOverviewUseCase instance.
func NewMonthOverviewUseCase(
	cardRepo adapter.CardRepository,
	chargeRepo adapter.CardChargeRepository,
	invoiceRepo adapter.CardInvoiceRepository,
) *MonthOverviewUseCase {
	return &MonthOverviewUseCase{
		cardRepo:    cardRepo,
		chargeRepo:  chargeRepo,
		invoiceRepo: invoiceRepo,
	}
}

// Execute builds the overview.
func (uc *MonthOverviewUseCase) Execute(ctx context.Context, input MonthOverviewInput) (*MonthOverviewOutput, error) {
	cards, err := uc.cardRepo.FindActiveByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	out := &MonthOverviewOutput{
		Year:       input.Year,
		Month:      input.Month,
		Cards:      make([]CardOverview, 0, len(cards)),
		GrandTotal: decimal.Zero,
	}

	for _, c := range cards {
		overview := CardOverview{
			Card:           c,
			Items:          []OverviewItem{},
			CategoryTotals: map[string]decimal.Decimal{},
			MonthTotal:     decimal.Zero,
		}

		charges, err := uc.chargeRepo.FindBillingInPeriod(ctx, input.UserID, c.ID, input.Year, input.Month)
		if err != nil {
			return nil, err
		}
		for _, charge := range charges {
			number, active := finance.ActiveInstallment(
				charge.FirstYear, charge.FirstMonth, charge.Installments,
				input.Year, input.Month,
			)
			if !active {
				continue
			}
			overview.Items = append(overview.Items, OverviewItem{
				ChargeID:          charge.ID,
				Description:       charge.Description,
				CategoryName:      charge.CategoryName,
				InstallmentAmount: charge.InstallmentAmount,
				Installment:       number,
				Installments:      charge.Installments,
			})
			key := charge.CategoryName
			if key == "" {
				key = "uncategorized"
			}
			overview.CategoryTotals[key] = overview.CategoryTotals[key].Add(charge.InstallmentAmount)
			overview.MonthTotal = overview.MonthTotal.Add(charge.InstallmentAmount)
		}

		invoice, err := uc.invoiceRepo.FindByCardAndPeriod(ctx, c.ID, input.UserID, input.Year, input.Month)
		if err != nil {
			return nil, err
		}
		overview.Invoice = invoice

		out.Cards = append(out.Cards, overview)
		out.GrandTotal = out.GrandTotal.Add(overview.MonthTotal)
	}

	return out, nil
}
