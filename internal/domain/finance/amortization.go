// Package finance holds the pure financial algorithms: fixed-installment
// (PRICE) loan amortization and credit-card invoice allocation. Nothing in
// this package performs I/O.
package finance

import (
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// residualEpsilon absorbs sub-cent residue left on the running balance by
// per-installment arithmetic; anything below it is treated as paid off.
var residualEpsilon = decimal.NewFromFloat(0.01)

// ScheduledInstallment is one line of an amortization schedule.
type ScheduledInstallment struct {
	Number           int
	Year             int
	Month            int
	DueDate          time.Time
	Total            decimal.Decimal
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	RemainingBalance decimal.Decimal
}

// AmortizationInput describes a PRICE schedule to generate.
// FirstInstallment defaults to 1; values above 1 are used when regenerating
// the tail of a contract after a prepayment.
type AmortizationInput struct {
	Principal          decimal.Decimal
	MonthlyRatePercent decimal.Decimal
	Installments       int
	StartDate          time.Time
	DueDay             int
	FirstInstallment   int
}

// AmortizePrice generates a fixed-installment schedule using the PRICE
// (annuity) method: PMT = PV * [i(1+i)^n] / [(1+i)^n - 1], or PV/n when the
// rate is zero. Amounts are rounded to 2 decimals per installment; the
// rounding remainder is not redistributed across installments.
func AmortizePrice(in AmortizationInput) ([]ScheduledInstallment, error) {
	if !in.Principal.IsPositive() {
		return nil, domainerror.NewFinancingError(
			domainerror.ErrCodeInvalidPrincipal,
			"principal must be greater than zero",
			domainerror.ErrInvalidPrincipal,
		)
	}
	if in.Installments < 1 {
		return nil, domainerror.NewFinancingError(
			domainerror.ErrCodeInvalidTerm,
			"number of installments must be greater than zero",
			domainerror.ErrInvalidTerm,
		)
	}
	if in.MonthlyRatePercent.IsNegative() {
		return nil, domainerror.NewFinancingError(
			domainerror.ErrCodeInvalidRate,
			"interest rate must not be negative",
			domainerror.ErrInvalidRate,
		)
	}
	if in.DueDay < 1 || in.DueDay > 31 {
		return nil, domainerror.NewFinancingError(
			domainerror.ErrCodeInvalidDueDay,
			"due day must be between 1 and 31",
			domainerror.ErrInvalidDueDay,
		)
	}

	first := in.FirstInstallment
	if first < 1 {
		first = 1
	}

	rate := in.MonthlyRatePercent.Div(decimal.NewFromInt(100))
	installments := decimal.NewFromInt(int64(in.Installments))

	var payment decimal.Decimal
	if rate.IsZero() {
		payment = in.Principal.Div(installments)
	} else {
		factor := decimal.NewFromInt(1).Add(rate).Pow(installments)
		payment = in.Principal.Mul(rate.Mul(factor)).Div(factor.Sub(decimal.NewFromInt(1)))
	}

	schedule := make([]ScheduledInstallment, 0, in.Installments)
	remaining := in.Principal

	for k := 0; k < in.Installments; k++ {
		interest := remaining.Mul(rate)
		principal := payment.Sub(interest)

		remaining = remaining.Sub(principal)
		if remaining.LessThan(residualEpsilon) {
			remaining = decimal.Zero
		}

		// The first installment of a fresh contract is due one month after
		// the start date; regenerated tails start in the anchor month itself.
		monthsAhead := k
		if first == 1 {
			monthsAhead++
		}
		dueDate := dueDateFor(in.StartDate, monthsAhead, in.DueDay)

		schedule = append(schedule, ScheduledInstallment{
			Number:           first + k,
			Year:             dueDate.Year(),
			Month:            int(dueDate.Month()),
			DueDate:          dueDate,
			Total:            payment.Round(2),
			Principal:        principal.Round(2),
			Interest:         interest.Round(2),
			RemainingBalance: remaining.Round(2),
		})
	}

	return schedule, nil
}

// dueDateFor anchors on the first day of the start month, advances the given
// number of months, then applies the due day clamped to the target month's
// length so day 31 lands on Feb 28 instead of rolling into March.
func dueDateFor(start time.Time, monthsAhead, dueDay int) time.Time {
	anchor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	ref := anchor.AddDate(0, monthsAhead, 0)

	// Day 0 of the following month is the last day of ref's month.
	lastDay := time.Date(ref.Year(), ref.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	day := dueDay
	if day > lastDay {
		day = lastDay
	}
	return time.Date(ref.Year(), ref.Month(), day, 0, 0, 0, 0, time.UTC)
}
