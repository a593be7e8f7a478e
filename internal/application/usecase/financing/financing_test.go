package financing

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

	"github.com/personal-ledger/backend/internal/application/event"
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
	if err := db.AutoMigrate(&model.UserModel{}, &model.FinancingModel{}, &model.InstallmentModel{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// The payment listeners are exercised elsewhere; an empty bus keeps these
// tests focused on the schedule arithmetic.
func newUseCases(t *testing.T) (*CreateFinancingUseCase, *PayInstallmentUseCase, *PrepayUseCase) {
	t.Helper()
	db := newTestDB(t)
	uowManager := persistence.NewUnitOfWorkManager(db)
	bus := event.NewBus()
	return NewCreateFinancingUseCase(persistence.NewFinancingRepository(db)),
		NewPayInstallmentUseCase(uowManager, bus),
		NewPrepayUseCase(uowManager, bus)
}

func TestCreateFinancing_PersistsFullSchedule(t *testing.T) {
	create, _, _ := newUseCases(t)
	ctx := context.Background()
	userID := uuid.New()

	out, err := create.Execute(ctx, CreateFinancingInput{
		UserID:       userID,
		Title:        "Apartment",
		Institution:  "Bank",
		TotalAmount:  dec("12000"),
		Installments: 12,
		MonthlyRate:  dec("1"),
		StartDate:    time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC),
		DueDay:       10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	contract := out.Financing
	if !contract.RemainingAmount.Equal(dec("12000")) {
		t.Errorf("remaining = %s, want the full principal", contract.RemainingAmount)
	}
	if !contract.Active {
		t.Error("new contract should be active")
	}
	if contract.PaidInstallments != 0 {
		t.Errorf("paid installments = %d, want 0", contract.PaidInstallments)
	}

	if len(out.Installments) != 12 {
		t.Fatalf("expected 12 installments, got %d", len(out.Installments))
	}
	first := out.Installments[0]
	if first.Number != 1 {
		t.Errorf("first number = %d, want 1", first.Number)
	}
	wantDue := time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)
	if !first.DueDate.Equal(wantDue) {
		t.Errorf("first due date = %v, want %v", first.DueDate, wantDue)
	}

	// PRICE keeps the payment flat: 12000 at 1% over 12 months is 1066.19.
	wantPayment := dec("1066.19")
	for _, installment := range out.Installments {
		if installment.Amount.Sub(wantPayment).Abs().GreaterThan(dec("0.01")) {
			t.Errorf("installment %d amount = %s, want ~%s", installment.Number, installment.Amount, wantPayment)
		}
	}
}

func TestCreateFinancing_RejectsInvalidInput(t *testing.T) {
	create, _, _ := newUseCases(t)
	ctx := context.Background()

	_, err := create.Execute(ctx, CreateFinancingInput{
		UserID:       uuid.New(),
		Title:        "Broken",
		TotalAmount:  decimal.Zero,
		Installments: 12,
	})
	if err == nil {
		t.Fatal("expected error for non-positive principal")
	}
}

func TestPayInstallment_AlreadyPaidConflict(t *testing.T) {
	create, pay, _ := newUseCases(t)
	ctx := context.Background()
	userID := uuid.New()

	out, err := create.Execute(ctx, CreateFinancingInput{
		UserID:       userID,
		Title:        "Bike",
		TotalAmount:  dec("200"),
		Installments: 2,
		MonthlyRate:  decimal.Zero,
		StartDate:    time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
		DueDay:       10,
	})
	if err != nil {
		t.Fatalf("failed to create contract: %v", err)
	}

	input := PayInstallmentInput{
		UserID:        userID,
		InstallmentID: out.Installments[0].ID,
		PaymentDate:   time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC),
	}
	if _, err := pay.Execute(ctx, input); err != nil {
		t.Fatalf("first payment failed: %v", err)
	}

	_, err = pay.Execute(ctx, input)
	var finErr *domainerror.FinancingError
	if !errors.As(err, &finErr) || finErr.Code != domainerror.ErrCodeInstallmentAlreadyPaid {
		t.Fatalf("expected already-paid conflict, got %v", err)
	}
}

func TestPayInstallment_LastPaymentClosesContract(t *testing.T) {
	create, pay, _ := newUseCases(t)
	ctx := context.Background()
	userID := uuid.New()

	out, err := create.Execute(ctx, CreateFinancingInput{
		UserID:       userID,
		Title:        "Bike",
		TotalAmount:  dec("200"),
		Installments: 2,
		MonthlyRate:  decimal.Zero,
		StartDate:    time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
		DueDay:       10,
	})
	if err != nil {
		t.Fatalf("failed to create contract: %v", err)
	}

	for i, installment := range out.Installments {
		result, err := pay.Execute(ctx, PayInstallmentInput{
			UserID:        userID,
			InstallmentID: installment.ID,
		})
		if err != nil {
			t.Fatalf("payment %d failed: %v", i+1, err)
		}
		if i == len(out.Installments)-1 {
			if result.Active {
				t.Error("contract should close after the last installment")
			}
			if !result.RemainingAmount.IsZero() {
				t.Errorf("remaining = %s, want 0", result.RemainingAmount)
			}
		}
	}
}

func TestPrepay_RegeneratesOpenTail(t *testing.T) {
	create, pay, prepay := newUseCases(t)
	ctx := context.Background()
	userID := uuid.New()

	out, err := create.Execute(ctx, CreateFinancingInput{
		UserID:       userID,
		Title:        "Car",
		TotalAmount:  dec("1200"),
		Installments: 12,
		MonthlyRate:  decimal.Zero,
		StartDate:    time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
		DueDay:       10,
	})
	if err != nil {
		t.Fatalf("failed to create contract: %v", err)
	}

	// Pay the first two regular installments, then drop 500 on principal.
	for _, installment := range out.Installments[:2] {
		if _, err := pay.Execute(ctx, PayInstallmentInput{UserID: userID, InstallmentID: installment.ID}); err != nil {
			t.Fatalf("payment failed: %v", err)
		}
	}

	result, err := prepay.Execute(ctx, PrepayInput{
		UserID:      userID,
		FinancingID: out.Financing.ID,
		Amount:      dec("500"),
		PaymentDate: time.Date(2025, time.June, 18, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.RemainingAmount.Equal(dec("500")) {
		t.Errorf("remaining = %s, want 500", result.RemainingAmount)
	}
	if !result.Active {
		t.Error("contract should stay active")
	}
	if len(result.NewInstallments) != 10 {
		t.Fatalf("expected 10 regenerated installments, got %d", len(result.NewInstallments))
	}
	first := result.NewInstallments[0]
	if first.Number != 3 {
		t.Errorf("regenerated numbering starts at %d, want 3", first.Number)
	}
	// The regenerated tail anchors on the payment month.
	wantDue := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	if !first.DueDate.Equal(wantDue) {
		t.Errorf("first regenerated due date = %v, want %v", first.DueDate, wantDue)
	}
	for _, installment := range result.NewInstallments {
		if !installment.Amount.Equal(dec("50")) {
			t.Errorf("installment %d amount = %s, want 50", installment.Number, installment.Amount)
		}
	}
}

func TestPrepay_FullBalanceClosesContract(t *testing.T) {
	create, _, prepay := newUseCases(t)
	ctx := context.Background()
	userID := uuid.New()

	out, err := create.Execute(ctx, CreateFinancingInput{
		UserID:       userID,
		Title:        "Car",
		TotalAmount:  dec("1000"),
		Installments: 10,
		MonthlyRate:  decimal.Zero,
		StartDate:    time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
		DueDay:       10,
	})
	if err != nil {
		t.Fatalf("failed to create contract: %v", err)
	}

	result, err := prepay.Execute(ctx, PrepayInput{
		UserID:      userID,
		FinancingID: out.Financing.ID,
		Amount:      dec("1000"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Active {
		t.Error("contract should close when the balance reaches zero")
	}
	if !result.RemainingAmount.IsZero() {
		t.Errorf("remaining = %s, want 0", result.RemainingAmount)
	}
	if len(result.NewInstallments) != 0 {
		t.Errorf("expected no regenerated installments, got %d", len(result.NewInstallments))
	}
}

func TestPrepay_Validation(t *testing.T) {
	_, _, prepay := newUseCases(t)
	ctx := context.Background()

	_, err := prepay.Execute(ctx, PrepayInput{
		UserID:      uuid.New(),
		FinancingID: uuid.New(),
		Amount:      decimal.Zero,
	})
	var finErr *domainerror.FinancingError
	if !errors.As(err, &finErr) || finErr.Code != domainerror.ErrCodeInvalidPrepaymentAmount {
		t.Fatalf("expected invalid-prepayment error, got %v", err)
	}

	_, err = prepay.Execute(ctx, PrepayInput{
		UserID:      uuid.New(),
		FinancingID: uuid.New(),
		Amount:      dec("100"),
	})
	if !errors.As(err, &finErr) || finErr.Code != domainerror.ErrCodeFinancingNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestSimulate_Totals(t *testing.T) {
	simulate := NewSimulateUseCase()
	ctx := context.Background()

	out, err := simulate.Execute(ctx, SimulateInput{
		TotalAmount:  dec("1000"),
		Installments: 4,
		MonthlyRate:  decimal.Zero,
		StartDate:    time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
		DueDay:       15,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Schedule) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(out.Schedule))
	}
	if !out.TotalPaid.Equal(dec("1000")) {
		t.Errorf("total paid = %s, want 1000", out.TotalPaid)
	}
	if !out.TotalInterest.IsZero() {
		t.Errorf("total interest = %s, want 0", out.TotalInterest)
	}

	withInterest, err := simulate.Execute(ctx, SimulateInput{
		TotalAmount:  dec("1000"),
		Installments: 10,
		MonthlyRate:  dec("2"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !withInterest.TotalInterest.IsPositive() {
		t.Error("expected positive interest on a 2% schedule")
	}
	principalPaid := withInterest.TotalPaid.Sub(withInterest.TotalInterest)
	if principalPaid.Sub(dec("1000")).Abs().GreaterThan(dec("0.05")) {
		t.Errorf("principal paid = %s, want ~1000", principalPaid)
	}
}
