package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FixedBillKind classifies a recurring bill.
type FixedBillKind string

const (
	FixedBillKindElectricity  FixedBillKind = "electricity"
	FixedBillKindWater        FixedBillKind = "water"
	FixedBillKindInternet     FixedBillKind = "internet"
	FixedBillKindSubscription FixedBillKind = "subscription"
	FixedBillKindPhone        FixedBillKind = "phone"
	FixedBillKindStreaming    FixedBillKind = "streaming"
	FixedBillKindGym          FixedBillKind = "gym"
	FixedBillKindOther        FixedBillKind = "other"
)

// IsValidFixedBillKind reports whether the given kind is a known one.
func IsValidFixedBillKind(kind FixedBillKind) bool {
	switch kind {
	case FixedBillKindElectricity, FixedBillKindWater, FixedBillKindInternet,
		FixedBillKindSubscription, FixedBillKindPhone, FixedBillKindStreaming,
		FixedBillKindGym, FixedBillKindOther:
		return true
	}
	return false
}

// BillRecurrence is how often a fixed bill is charged.
type BillRecurrence string

const (
	BillRecurrenceMonthly   BillRecurrence = "monthly"
	BillRecurrenceBimonthly BillRecurrence = "bimonthly"
	BillRecurrenceQuarterly BillRecurrence = "quarterly"
	BillRecurrenceYearly    BillRecurrence = "yearly"
)

// IsValidBillRecurrence reports whether the given recurrence is a known one.
func IsValidBillRecurrence(recurrence BillRecurrence) bool {
	switch recurrence {
	case BillRecurrenceMonthly, BillRecurrenceBimonthly,
		BillRecurrenceQuarterly, BillRecurrenceYearly:
		return true
	}
	return false
}

// monthsPerCharge maps each recurrence to the number of months one charge
// covers.
var monthsPerCharge = map[BillRecurrence]int64{
	BillRecurrenceMonthly:   1,
	BillRecurrenceBimonthly: 2,
	BillRecurrenceQuarterly: 3,
	BillRecurrenceYearly:    12,
}

// FixedBill represents a recurring obligation (rent, utilities, subscriptions)
// that hits the ledger on a fixed day of the month.
type FixedBill struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Kind        FixedBillKind
	Title       string
	Description string
	Amount      decimal.Decimal
	DueDay      int
	Recurrence  BillRecurrence
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewFixedBill creates a new FixedBill entity. Unknown kinds default to
// "other" and unknown recurrences to "monthly", mirroring how untyped manual
// entries are absorbed elsewhere; callers validate before construction when a
// hard rejection is wanted.
func NewFixedBill(
	userID uuid.UUID,
	kind FixedBillKind,
	title, description string,
	amount decimal.Decimal,
	dueDay int,
	recurrence BillRecurrence,
) *FixedBill {
	now := time.Now().UTC()
	if kind == "" {
		kind = FixedBillKindOther
	}
	if recurrence == "" {
		recurrence = BillRecurrenceMonthly
	}
	return &FixedBill{
		ID:          uuid.New(),
		UserID:      userID,
		Kind:        kind,
		Title:       title,
		Description: description,
		Amount:      amount,
		DueDay:      dueDay,
		Recurrence:  recurrence,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// MonthlyEquivalent spreads the charge over the months it covers, rounded to
// cents. A quarterly 300.00 bill weighs 100.00 on a monthly budget.
func (b *FixedBill) MonthlyEquivalent() decimal.Decimal {
	months, ok := monthsPerCharge[b.Recurrence]
	if !ok {
		months = 1
	}
	return b.Amount.Div(decimal.NewFromInt(months)).Round(2)
}

// AnnualAmount is the total charged over a year, rounded to cents.
func (b *FixedBill) AnnualAmount() decimal.Decimal {
	months, ok := monthsPerCharge[b.Recurrence]
	if !ok {
		months = 1
	}
	return b.Amount.Mul(decimal.NewFromInt(12)).Div(decimal.NewFromInt(months)).Round(2)
}

// BillGroup is the display grouping for fixed bills.
type BillGroup string

const (
	BillGroupUtilities     BillGroup = "Utilities"
	BillGroupSubscriptions BillGroup = "Subscriptions"
	BillGroupOther         BillGroup = "Other"
)

// Group buckets the bill's kind for overview displays.
func (b *FixedBill) Group() BillGroup {
	switch b.Kind {
	case FixedBillKindElectricity, FixedBillKindWater, FixedBillKindPhone:
		return BillGroupUtilities
	case FixedBillKindInternet, FixedBillKindSubscription:
		return BillGroupSubscriptions
	default:
		return BillGroupOther
	}
}

// NextDueDate returns the first due date on or after the given day. The due
// day is clamped to the length of the target month, so a bill due on the 31st
// falls on Feb 28 in February.
func (b *FixedBill) NextDueDate(from time.Time) time.Time {
	year, month, day := from.Date()
	if b.DueDay >= day {
		return clampedDate(year, month, b.DueDay, from.Location())
	}
	return clampedDate(year, month+1, b.DueDay, from.Location())
}

func clampedDate(year int, month time.Month, day int, loc *time.Location) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
