// Package expense contains ledger entry use cases.
package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/application/event"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
)

// AddExpenseInput represents the input for ledger entry creation.
type AddExpenseInput struct {
	UserID        uuid.UUID
	CategoryID    *uuid.UUID
	Amount        decimal.Decimal
	Date          time.Time
	Description   string
	PaymentMethod entity.PaymentMethod
	CardID        *uuid.UUID
}

// AddExpenseOutput represents the output of ledger entry creation.
type AddExpenseOutput struct {
	Expense *entity.Expense
}

// AddExpenseUseCase writes a ledger entry and emits the domain events that
// drive its side effects. Non-credit entries propagate monthly totals,
// category alerts and the balance debit inside the same transaction; credit
// entries hand off to the detached card-linkage saga after commit.
type AddExpenseUseCase struct {
	uowManager   adapter.UnitOfWorkManager
	categoryRepo adapter.CategoryRepository
	bus          *event.Bus
}

// NewAddExpenseUseCase creates a new AddExpenseUseCase instance.
func NewAddExpenseUseCase(
	uowManager adapter.UnitOfWorkManager,
	categoryRepo adapter.CategoryRepository,
	bus *event.Bus,
) *AddExpenseUseCase {
	return &AddExpenseUseCase{
		uowManager:   uowManager,
		categoryRepo: categoryRepo,
		bus:          bus,
	}
}

// Execute performs the ledger entry creation.
func (uc *AddExpenseUseCase) Execute(ctx context.Context, input AddExpenseInput) (*AddExpenseOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseAmount,
			"expense amount must be positive",
			domainerror.ErrInvalidExpenseAmount,
		)
	}
	if !entity.IsValidPaymentMethod(input.PaymentMethod) {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidPaymentMethod,
			"payment method must be CASH, DEBIT, PIX or CREDIT",
			domainerror.ErrInvalidPaymentMethod,
		)
	}
	if input.PaymentMethod == entity.PaymentMethodCredit && input.CardID == nil {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeCardRequired,
			"credit expenses require a card id",
			domainerror.ErrCardRequired,
		)
	}

	if input.CategoryID != nil {
		category, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		if category.UserID != input.UserID {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeCategoryNotOwned,
				"category does not belong to user",
				domainerror.ErrCategoryNotOwnedByUser,
			)
		}
	}

	expense := entity.NewExpense(
		input.UserID,
		input.CategoryID,
		input.Amount,
		input.Date,
		input.Description,
		input.PaymentMethod,
		entity.ExpenseOriginManual,
	)
	expense.CardID = input.CardID

	err := uc.uowManager.Run(ctx, func(uow adapter.UnitOfWork) error {
		if err := uow.Expenses().Create(ctx, expense); err != nil {
			return fmt.Errorf("failed to create expense: %w", err)
		}

		// Transactional side effects run here; any handler error rolls the
		// whole write back.
		if !expense.IsCredit() {
			return uc.bus.Emit(ctx, &event.ExpenseInserted{
				UserID:  input.UserID,
				Expense: expense,
				UoW:     uow,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Card linkage is a best-effort secondary step: it runs after the entry
	// has committed, owns its own transactions, and never fails the insert.
	if expense.IsCredit() {
		if err := uc.bus.Emit(ctx, &event.CreditExpenseInserted{
			UserID:  input.UserID,
			Expense: expense,
			CardID:  *input.CardID,
		}); err != nil {
			return nil, err
		}
	}

	return &AddExpenseOutput{Expense: expense}, nil
}
