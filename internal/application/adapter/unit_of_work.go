// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// UnitOfWork is a scoped handle over one database transaction. Every
// repository obtained from it runs against that same transaction, so
// handlers sharing a UnitOfWork must execute serially.
type UnitOfWork interface {
	// Users returns the transaction-scoped user repository.
	Users() UserRepository

	// Categories returns the transaction-scoped category repository.
	Categories() CategoryRepository

	// Expenses returns the transaction-scoped expense repository.
	Expenses() ExpenseRepository

	// MonthlyTotals returns the transaction-scoped monthly total repository.
	MonthlyTotals() MonthlyTotalRepository

	// Alerts returns the transaction-scoped alert repository.
	Alerts() AlertRepository

	// Cards returns the transaction-scoped card repository.
	Cards() CardRepository

	// CardInvoices returns the transaction-scoped invoice repository.
	CardInvoices() CardInvoiceRepository

	// CardCharges returns the transaction-scoped charge repository.
	CardCharges() CardChargeRepository

	// Financings returns the transaction-scoped financing repository.
	Financings() FinancingRepository
}

// UnitOfWorkManager opens transactions. Run commits when fn returns nil,
// rolls back on any error or panic, and always releases the underlying
// connection.
type UnitOfWorkManager interface {
	Run(ctx context.Context, fn func(uow UnitOfWork) error) error
}
