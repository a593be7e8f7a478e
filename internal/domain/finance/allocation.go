package finance

import (
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// InvoiceShare is the portion of a card purchase billed to one
// (year, month) invoice cycle.
type InvoiceShare struct {
	Year   int
	Month  int
	Amount decimal.Decimal
}

// FirstBillingMonth returns the first invoice cycle a purchase lands on.
// Purchases on or after the card's closing day belong to the next calendar
// month: the current cycle has already closed.
func FirstBillingMonth(purchaseDate time.Time, closingDay int) (int, int) {
	year, month := purchaseDate.Year(), purchaseDate.Month()
	if purchaseDate.Day() >= closingDay {
		next := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
		return next.Year(), int(next.Month())
	}
	return year, int(month)
}

// AllocatePurchase splits a card purchase into N consecutive monthly shares
// of amount/N each, rounded to 2 decimals per share. The rounding remainder
// is not redistributed, so the shares may differ from the total by a cent.
func AllocatePurchase(amount decimal.Decimal, purchaseDate time.Time, installments, closingDay int) ([]InvoiceShare, error) {
	if !amount.IsPositive() {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeInvalidChargeAmount,
			"charge amount must be positive",
			domainerror.ErrInvalidChargeAmount,
		)
	}
	if installments < 1 {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeInvalidInstallmentCount,
			"installment count must be positive",
			domainerror.ErrInvalidInstallmentCount,
		)
	}
	if closingDay < 1 || closingDay > 31 {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeInvalidClosingDay,
			"closing day must be between 1 and 31",
			domainerror.ErrInvalidClosingDay,
		)
	}

	share := InstallmentShare(amount, installments)
	firstYear, firstMonth := FirstBillingMonth(purchaseDate, closingDay)

	shares := make([]InvoiceShare, 0, installments)
	cursor := time.Date(firstYear, time.Month(firstMonth), 1, 0, 0, 0, 0, time.UTC)
	for k := 0; k < installments; k++ {
		shares = append(shares, InvoiceShare{
			Year:   cursor.Year(),
			Month:  int(cursor.Month()),
			Amount: share,
		})
		cursor = cursor.AddDate(0, 1, 0)
	}
	return shares, nil
}

// InstallmentShare is the per-cycle amount of a purchase split into n parts.
func InstallmentShare(amount decimal.Decimal, installments int) decimal.Decimal {
	return amount.Div(decimal.NewFromInt(int64(installments))).Round(2)
}

// MonthsBetween counts whole calendar months from (fromYear, fromMonth) to
// (toYear, toMonth); negative when the target precedes the origin.
func MonthsBetween(fromYear, fromMonth, toYear, toMonth int) int {
	return (toYear-fromYear)*12 + (toMonth - fromMonth)
}

// ActiveInstallment reports whether a purchase starting at its first billing
// month still bills the target month, and which installment number applies.
func ActiveInstallment(firstYear, firstMonth, installments, targetYear, targetMonth int) (int, bool) {
	diff := MonthsBetween(firstYear, firstMonth, targetYear, targetMonth)
	if diff < 0 || diff >= installments {
		return 0, false
	}
	return diff + 1, true
}
