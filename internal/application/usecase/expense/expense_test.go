package expense

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/personal-ledger/backend/internal/application/adapter"
	"github.com/personal-ledger/backend/internal/application/event"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/persistence"
	"github.com/personal-ledger/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	db, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	err = db.AutoMigrate(
		&model.UserModel{},
		&model.CategoryModel{},
		&model.CardModel{},
		&model.ExpenseModel{},
		&model.MonthlyTotalModel{},
		&model.CardInvoiceModel{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type expenseEnv struct {
	db           *gorm.DB
	categories   adapter.CategoryRepository
	invoices     adapter.CardInvoiceRepository
	monthlyTotal adapter.MonthlyTotalRepository

	addExpense  *AddExpenseUseCase
	setLimit    *SetMonthlyLimitUseCase
	getTotal    *GetMonthlyTotalUseCase
	recalculate *RecalculateMonthlyTotalUseCase
	list        *ListExpensesUseCase
}

// An empty bus isolates these tests from the listener side effects, which
// have their own coverage.
func newExpenseEnv(t *testing.T) *expenseEnv {
	t.Helper()
	db := newTestDB(t)
	uowManager := persistence.NewUnitOfWorkManager(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	monthlyTotalRepo := persistence.NewMonthlyTotalRepository(db)

	return &expenseEnv{
		db:           db,
		categories:   categoryRepo,
		invoices:     persistence.NewCardInvoiceRepository(db),
		monthlyTotal: monthlyTotalRepo,
		addExpense:   NewAddExpenseUseCase(uowManager, categoryRepo, event.NewBus()),
		setLimit:     NewSetMonthlyLimitUseCase(monthlyTotalRepo),
		getTotal:     NewGetMonthlyTotalUseCase(monthlyTotalRepo),
		recalculate:  NewRecalculateMonthlyTotalUseCase(uowManager),
		list:         NewListExpensesUseCase(persistence.NewExpenseRepository(db)),
	}
}

func TestAddExpense_Validation(t *testing.T) {
	env := newExpenseEnv(t)
	ctx := context.Background()
	userID := uuid.New()
	date := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)

	otherUsersCategory := entity.NewCategory(uuid.New(), "Food", "", dec("100"))
	if err := env.categories.Create(ctx, otherUsersCategory); err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	missingCategory := uuid.New()
	cardID := uuid.New()

	cases := []struct {
		name  string
		input AddExpenseInput
		code  domainerror.ExpenseErrorCode
	}{
		{
			name:  "non-positive amount",
			input: AddExpenseInput{UserID: userID, Amount: decimal.Zero, Date: date, PaymentMethod: entity.PaymentMethodDebit},
			code:  domainerror.ErrCodeInvalidExpenseAmount,
		},
		{
			name:  "unknown payment method",
			input: AddExpenseInput{UserID: userID, Amount: dec("10"), Date: date, PaymentMethod: "CHECK"},
			code:  domainerror.ErrCodeInvalidPaymentMethod,
		},
		{
			name:  "credit without a card",
			input: AddExpenseInput{UserID: userID, Amount: dec("10"), Date: date, PaymentMethod: entity.PaymentMethodCredit},
			code:  domainerror.ErrCodeCardRequired,
		},
		{
			name:  "missing category",
			input: AddExpenseInput{UserID: userID, CategoryID: &missingCategory, Amount: dec("10"), Date: date, PaymentMethod: entity.PaymentMethodDebit},
			code:  domainerror.ErrCodeCategoryNotFound,
		},
		{
			name:  "category owned by someone else",
			input: AddExpenseInput{UserID: userID, CategoryID: &otherUsersCategory.ID, Amount: dec("10"), Date: date, PaymentMethod: entity.PaymentMethodDebit},
			code:  domainerror.ErrCodeCategoryNotOwned,
		},
		{
			name:  "credit card id unused for debit is fine but method must be known",
			input: AddExpenseInput{UserID: userID, Amount: dec("10"), Date: date, PaymentMethod: "credit", CardID: &cardID},
			code:  domainerror.ErrCodeInvalidPaymentMethod,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.addExpense.Execute(ctx, tc.input)
			var expErr *domainerror.ExpenseError
			if !errors.As(err, &expErr) || expErr.Code != tc.code {
				t.Fatalf("expected code %s, got %v", tc.code, err)
			}
		})
	}

	if n := countExpenses(t, env.db); n != 0 {
		t.Errorf("expected no rows after rejected inputs, got %d", n)
	}
}

func countExpenses(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&model.ExpenseModel{}).Count(&n).Error; err != nil {
		t.Fatalf("failed to count expenses: %v", err)
	}
	return n
}

func TestSetAndGetMonthlyLimit(t *testing.T) {
	env := newExpenseEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("upserts the limit for the period", func(t *testing.T) {
		err := env.setLimit.Execute(ctx, SetMonthlyLimitInput{UserID: userID, Year: 2025, Month: 3, Limit: dec("500")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out, err := env.getTotal.Execute(ctx, GetMonthlyTotalInput{UserID: userID, Year: 2025, Month: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.LimitAmount.Equal(dec("500")) {
			t.Errorf("limit = %s, want 500", out.LimitAmount)
		}
		if !out.SpentAmount.IsZero() {
			t.Errorf("spent = %s, want 0", out.SpentAmount)
		}
	})

	t.Run("a period with no row reads as zeros", func(t *testing.T) {
		out, err := env.getTotal.Execute(ctx, GetMonthlyTotalInput{UserID: userID, Year: 2025, Month: 7})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.LimitAmount.IsZero() || !out.SpentAmount.IsZero() {
			t.Errorf("got limit %s spent %s, want zeros", out.LimitAmount, out.SpentAmount)
		}
	})

	t.Run("rejects a negative limit", func(t *testing.T) {
		err := env.setLimit.Execute(ctx, SetMonthlyLimitInput{UserID: userID, Year: 2025, Month: 3, Limit: dec("-1")})
		var expErr *domainerror.ExpenseError
		if !errors.As(err, &expErr) || expErr.Code != domainerror.ErrCodeInvalidMonthlyLimit {
			t.Fatalf("expected invalid-limit error, got %v", err)
		}
	})

	t.Run("rejects an invalid period", func(t *testing.T) {
		err := env.setLimit.Execute(ctx, SetMonthlyLimitInput{UserID: userID, Year: 2025, Month: 13, Limit: dec("100")})
		var expErr *domainerror.ExpenseError
		if !errors.As(err, &expErr) || expErr.Code != domainerror.ErrCodeInvalidPeriod {
			t.Fatalf("expected invalid-period error, got %v", err)
		}
	})
}

func TestRecalculateMonthlyTotal(t *testing.T) {
	env := newExpenseEnv(t)
	ctx := context.Background()
	userID := uuid.New()
	cardID := uuid.New()
	march := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)

	add := func(amount string, method entity.PaymentMethod, card *uuid.UUID) {
		t.Helper()
		_, err := env.addExpense.Execute(ctx, AddExpenseInput{
			UserID:        userID,
			Amount:        dec(amount),
			Date:          march,
			Description:   "entry",
			PaymentMethod: method,
			CardID:        card,
		})
		if err != nil {
			t.Fatalf("failed to add expense: %v", err)
		}
	}

	add("40", entity.PaymentMethodDebit, nil)
	add("60", entity.PaymentMethodPix, nil)
	// Credit spend counts through invoice payments, not the entry itself.
	add("100", entity.PaymentMethodCredit, &cardID)

	if err := env.invoices.AddCharge(ctx, userID, cardID, 2025, 3, dec("100")); err != nil {
		t.Fatalf("failed to add invoice charge: %v", err)
	}
	invoice, err := env.invoices.FindByCardAndPeriod(ctx, cardID, userID, 2025, 3)
	if err != nil || invoice == nil {
		t.Fatalf("expected invoice, got %v (err %v)", invoice, err)
	}
	if err := env.invoices.RegisterPayment(ctx, invoice.ID, dec("50"), entity.InvoiceStatusPartiallyPaid); err != nil {
		t.Fatalf("failed to register payment: %v", err)
	}

	out, err := env.recalculate.Execute(ctx, RecalculateMonthlyTotalInput{UserID: userID, Year: 2025, Month: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.SpentAmount.Equal(dec("150")) {
		t.Errorf("recalculated spend = %s, want 100 of entries plus 50 paid", out.SpentAmount)
	}

	stored, err := env.getTotal.Execute(ctx, GetMonthlyTotalInput{UserID: userID, Year: 2025, Month: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stored.SpentAmount.Equal(dec("150")) {
		t.Errorf("stored spend = %s, want 150", stored.SpentAmount)
	}
}

func TestListExpenses_FiltersByPeriod(t *testing.T) {
	env := newExpenseEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	add := func(day int, month time.Month) {
		t.Helper()
		_, err := env.addExpense.Execute(ctx, AddExpenseInput{
			UserID:        userID,
			Amount:        dec("10"),
			Date:          time.Date(2025, month, day, 0, 0, 0, 0, time.UTC),
			Description:   "entry",
			PaymentMethod: entity.PaymentMethodCash,
		})
		if err != nil {
			t.Fatalf("failed to add expense: %v", err)
		}
	}

	add(1, time.March)
	add(31, time.March)
	add(1, time.April)

	entries, err := env.list.Execute(ctx, ListExpensesInput{UserID: userID, Year: 2025, Month: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 march entries, got %d", len(entries))
	}

	entries, err = env.list.Execute(ctx, ListExpensesInput{UserID: userID, Year: 2025, Month: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 april entry, got %d", len(entries))
	}
}
