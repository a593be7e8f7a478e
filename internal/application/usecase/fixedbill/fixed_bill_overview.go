package fixedbill

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/domain/entity"
)

// upcomingWindowDays is how far ahead the overview looks for due bills.
const upcomingWindowDays = 7

// GroupTotal aggregates the active bills of one display group.
type GroupTotal struct {
	Group        entity.BillGroup
	MonthlyTotal decimal.Decimal
	Count        int
}

// UpcomingBills summarizes the bills falling due inside the upcoming window.
type UpcomingBills struct {
	Total decimal.Decimal
	Count int
}

// FixedBillOverviewOutput is the consolidated fixed-bill screen: totals over
// active bills, the next week's dues, per-group breakdown, and the full list
// including paused bills.
type FixedBillOverviewOutput struct {
	MonthlyTotal decimal.Decimal
	AnnualTotal  decimal.Decimal
	Upcoming     UpcomingBills
	GroupTotals  []GroupTotal
	Bills        []*entity.FixedBill
}

// FixedBillOverviewUseCase assembles the fixed-bill overview. Recurrences
// other than monthly are pro-rated into a monthly equivalent so the totals
// are comparable across bills.
type FixedBillOverviewUseCase struct {
	billRepo adapter.FixedBillRepository
}

// NewFixedBillOverviewUseCase creates a new FixedBillOverviewUseCase instance.
func NewFixedBillOverviewUseCase(billRepo adapter.FixedBillRepository) *FixedBillOverviewUseCase {
	return &FixedBillOverviewUseCase{billRepo: billRepo}
}

// Execute assembles the overview. The now argument anchors the upcoming-dues
// window; only its date matters.
func (uc *FixedBillOverviewUseCase) Execute(ctx context.Context, userID uuid.UUID, now time.Time) (*FixedBillOverviewOutput, error) {
	bills, err := uc.billRepo.FindByUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	out := &FixedBillOverviewOutput{
		MonthlyTotal: decimal.Zero,
		AnnualTotal:  decimal.Zero,
		Upcoming:     UpcomingBills{Total: decimal.Zero},
		Bills:        bills,
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	windowEnd := today.AddDate(0, 0, upcomingWindowDays)

	groupIndex := map[entity.BillGroup]int{}
	for _, bill := range bills {
		if !bill.Active {
			continue
		}

		monthly := bill.MonthlyEquivalent()
		out.MonthlyTotal = out.MonthlyTotal.Add(monthly)
		out.AnnualTotal = out.AnnualTotal.Add(bill.AnnualAmount())

		group := bill.Group()
		idx, ok := groupIndex[group]
		if !ok {
			idx = len(out.GroupTotals)
			groupIndex[group] = idx
			out.GroupTotals = append(out.GroupTotals, GroupTotal{
				Group:        group,
				MonthlyTotal: decimal.Zero,
			})
		}
		out.GroupTotals[idx].MonthlyTotal = out.GroupTotals[idx].MonthlyTotal.Add(monthly)
		out.GroupTotals[idx].Count++

		nextDue := bill.NextDueDate(today)
		if !nextDue.Before(today) && !nextDue.After(windowEnd) {
			out.Upcoming.Total = out.Upcoming.Total.Add(bill.Amount)
			out.Upcoming.Count++
		}
	}

	return out, nil
}
