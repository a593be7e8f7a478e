// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// InstallmentWithContract pairs an installment with its owning contract.
type InstallmentWithContract struct {
	Installment *entity.Installment
	Financing   *entity.Financing
}

// FinancingRepository defines the interface for loan persistence operations.
type FinancingRepository interface {
	// Create persists the contract header and its full installment schedule.
	Create(ctx context.Context, financing *entity.Financing, installments []*entity.Installment) error

	// FindByIDAndUser retrieves a financing owned by the given user.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Financing, error)

	// FindActiveByUser retrieves all active financings for a user.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Financing, error)

	// UpdateProgress updates the contract's remaining principal, paid count
	// and active flag after a payment or prepayment.
	UpdateProgress(ctx context.Context, financingID uuid.UUID, remaining decimal.Decimal, paidInstallments int, active bool) error

	// FindInstallmentByIDAndUser retrieves an installment with its contract.
	FindInstallmentByIDAndUser(ctx context.Context, installmentID, userID uuid.UUID) (*InstallmentWithContract, error)

	// FindInstallmentsByFinancing retrieves a contract's installments ordered by number.
	FindInstallmentsByFinancing(ctx context.Context, financingID uuid.UUID) ([]*entity.Installment, error)

	// FindNextOpenInstallment retrieves the lowest-numbered open installment.
	// It returns (nil, nil) when the contract has no open installments left.
	FindNextOpenInstallment(ctx context.Context, financingID uuid.UUID) (*entity.Installment, error)

	// MarkInstallmentPaid flips an installment to paid and stamps the payment time.
	MarkInstallmentPaid(ctx context.Context, installmentID uuid.UUID) error

	// DeleteOpenInstallmentsFrom removes still-open installments numbered
	// fromNumber and above, making room for a regenerated schedule.
	DeleteOpenInstallmentsFrom(ctx context.Context, financingID uuid.UUID, fromNumber int) error

	// InsertInstallments appends regenerated installments to a contract.
	InsertInstallments(ctx context.Context, installments []*entity.Installment) error
}
