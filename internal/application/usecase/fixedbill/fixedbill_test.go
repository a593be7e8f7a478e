package fixedbill

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
	if err := db.AutoMigrate(&model.UserModel{}, &model.FixedBillModel{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustCreate(t *testing.T, create *CreateFixedBillUseCase, input CreateFixedBillInput) *entity.FixedBill {
	t.Helper()
	out, err := create.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("failed to create fixed bill %q: %v", input.Title, err)
	}
	return out.Bill
}

func TestCreateFixedBill(t *testing.T) {
	repo := persistence.NewFixedBillRepository(newTestDB(t))
	create := NewCreateFixedBillUseCase(repo)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates an active bill with trimmed text", func(t *testing.T) {
		out, err := create.Execute(ctx, CreateFixedBillInput{
			UserID:     userID,
			Kind:       entity.FixedBillKindElectricity,
			Title:      "  Electric bill ",
			Amount:     dec("180.50"),
			DueDay:     10,
			Recurrence: entity.BillRecurrenceMonthly,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Bill.Title != "Electric bill" {
			t.Errorf("title = %q, want trimmed Electric bill", out.Bill.Title)
		}
		if !out.Bill.Active {
			t.Error("new bill should be active")
		}
	})

	t.Run("defaults kind and recurrence when omitted", func(t *testing.T) {
		out, err := create.Execute(ctx, CreateFixedBillInput{
			UserID: userID,
			Title:  "Cleaning service",
			Amount: dec("90"),
			DueDay: 5,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Bill.Kind != entity.FixedBillKindOther {
			t.Errorf("kind = %q, want other", out.Bill.Kind)
		}
		if out.Bill.Recurrence != entity.BillRecurrenceMonthly {
			t.Errorf("recurrence = %q, want monthly", out.Bill.Recurrence)
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		cases := []struct {
			name     string
			input    CreateFixedBillInput
			wantCode domainerror.FixedBillErrorCode
		}{
			{
				name:     "blank title",
				input:    CreateFixedBillInput{UserID: userID, Title: "   ", Amount: dec("10"), DueDay: 5},
				wantCode: domainerror.ErrCodeInvalidBillTitle,
			},
			{
				name:     "zero amount",
				input:    CreateFixedBillInput{UserID: userID, Title: "Water", Amount: decimal.Zero, DueDay: 5},
				wantCode: domainerror.ErrCodeInvalidBillAmount,
			},
			{
				name:     "due day past month end",
				input:    CreateFixedBillInput{UserID: userID, Title: "Water", Amount: dec("10"), DueDay: 32},
				wantCode: domainerror.ErrCodeInvalidBillDueDay,
			},
			{
				name:     "zero due day",
				input:    CreateFixedBillInput{UserID: userID, Title: "Water", Amount: dec("10"), DueDay: 0},
				wantCode: domainerror.ErrCodeInvalidBillDueDay,
			},
			{
				name:     "unknown kind",
				input:    CreateFixedBillInput{UserID: userID, Title: "Water", Amount: dec("10"), DueDay: 5, Kind: "groceries"},
				wantCode: domainerror.ErrCodeInvalidBillKind,
			},
			{
				name:     "unknown recurrence",
				input:    CreateFixedBillInput{UserID: userID, Title: "Water", Amount: dec("10"), DueDay: 5, Recurrence: "weekly"},
				wantCode: domainerror.ErrCodeInvalidBillRecurrence,
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := create.Execute(ctx, tc.input)
				var billErr *domainerror.FixedBillError
				if !errors.As(err, &billErr) || billErr.Code != tc.wantCode {
					t.Fatalf("expected code %s, got %v", tc.wantCode, err)
				}
			})
		}
	})
}

func TestListFixedBills_OnlyActiveFilter(t *testing.T) {
	repo := persistence.NewFixedBillRepository(newTestDB(t))
	create := NewCreateFixedBillUseCase(repo)
	list := NewListFixedBillsUseCase(repo)
	toggle := NewToggleFixedBillUseCase(repo)
	ctx := context.Background()
	userID := uuid.New()

	mustCreate(t, create, CreateFixedBillInput{
		UserID: userID, Kind: entity.FixedBillKindInternet,
		Title: "Fiber", Amount: dec("120"), DueDay: 15,
	})
	gym := mustCreate(t, create, CreateFixedBillInput{
		UserID: userID, Kind: entity.FixedBillKindGym,
		Title: "Gym", Amount: dec("80"), DueDay: 3,
	})

	if err := toggle.Execute(ctx, ToggleFixedBillInput{UserID: userID, BillID: gym.ID, Active: false}); err != nil {
		t.Fatalf("failed to pause bill: %v", err)
	}

	t.Run("full list keeps paused bills, active first", func(t *testing.T) {
		bills, err := list.Execute(ctx, userID, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(bills) != 2 {
			t.Fatalf("len = %d, want 2", len(bills))
		}
		if bills[0].Title != "Fiber" || !bills[0].Active {
			t.Errorf("first bill = %q active=%v, want active Fiber", bills[0].Title, bills[0].Active)
		}
		if bills[1].Title != "Gym" || bills[1].Active {
			t.Errorf("second bill = %q active=%v, want paused Gym", bills[1].Title, bills[1].Active)
		}
	})

	t.Run("only-active filter drops the paused bill", func(t *testing.T) {
		bills, err := list.Execute(ctx, userID, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(bills) != 1 || bills[0].Title != "Fiber" {
			t.Fatalf("expected only Fiber, got %d bills", len(bills))
		}
	})

	t.Run("another user's ledger is empty", func(t *testing.T) {
		bills, err := list.Execute(ctx, uuid.New(), false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(bills) != 0 {
			t.Fatalf("len = %d, want 0", len(bills))
		}
	})
}

func TestToggleFixedBill_NotFound(t *testing.T) {
	repo := persistence.NewFixedBillRepository(newTestDB(t))
	create := NewCreateFixedBillUseCase(repo)
	toggle := NewToggleFixedBillUseCase(repo)
	ctx := context.Background()
	userID := uuid.New()

	bill := mustCreate(t, create, CreateFixedBillInput{
		UserID: userID, Title: "Rent", Amount: dec("1500"), DueDay: 1,
	})

	t.Run("unknown bill id", func(t *testing.T) {
		err := toggle.Execute(ctx, ToggleFixedBillInput{UserID: userID, BillID: uuid.New(), Active: false})
		var billErr *domainerror.FixedBillError
		if !errors.As(err, &billErr) || billErr.Code != domainerror.ErrCodeFixedBillNotFound {
			t.Fatalf("expected not-found error, got %v", err)
		}
	})

	t.Run("another user's bill is not reachable", func(t *testing.T) {
		err := toggle.Execute(ctx, ToggleFixedBillInput{UserID: uuid.New(), BillID: bill.ID, Active: false})
		var billErr *domainerror.FixedBillError
		if !errors.As(err, &billErr) || billErr.Code != domainerror.ErrCodeFixedBillNotFound {
			t.Fatalf("expected not-found error, got %v", err)
		}
	})

	t.Run("toggling the same state is idempotent", func(t *testing.T) {
		if err := toggle.Execute(ctx, ToggleFixedBillInput{UserID: userID, BillID: bill.ID, Active: true}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := repo.FindByIDAndUser(ctx, bill.ID, userID)
		if err != nil {
			t.Fatalf("failed to reload bill: %v", err)
		}
		if !got.Active {
			t.Error("bill should still be active")
		}
	})
}

func TestFixedBillOverview(t *testing.T) {
	repo := persistence.NewFixedBillRepository(newTestDB(t))
	create := NewCreateFixedBillUseCase(repo)
	toggle := NewToggleFixedBillUseCase(repo)
	overview := NewFixedBillOverviewUseCase(repo)
	ctx := context.Background()
	userID := uuid.New()

	// Monthly 100 + monthly 50 + quarterly 300 (=100/month) + yearly 240
	// (=20/month), plus a paused 999 that must not count anywhere.
	mustCreate(t, create, CreateFixedBillInput{
		UserID: userID, Kind: entity.FixedBillKindElectricity,
		Title: "Power", Amount: dec("100"), DueDay: 12,
	})
	mustCreate(t, create, CreateFixedBillInput{
		UserID: userID, Kind: entity.FixedBillKindStreaming,
		Title: "Streaming", Amount: dec("50"), DueDay: 25,
	})
	mustCreate(t, create, CreateFixedBillInput{
		UserID: userID, Kind: entity.FixedBillKindWater,
		Title: "Water", Amount: dec("300"), DueDay: 31,
		Recurrence: entity.BillRecurrenceQuarterly,
	})
	mustCreate(t, create, CreateFixedBillInput{
		UserID: userID, Kind: entity.FixedBillKindSubscription,
		Title: "Cloud backup", Amount: dec("240"), DueDay: 2,
		Recurrence: entity.BillRecurrenceYearly,
	})
	paused := mustCreate(t, create, CreateFixedBillInput{
		UserID: userID, Kind: entity.FixedBillKindGym,
		Title: "Gym", Amount: dec("999"), DueDay: 13,
	})
	if err := toggle.Execute(ctx, ToggleFixedBillInput{UserID: userID, BillID: paused.ID, Active: false}); err != nil {
		t.Fatalf("failed to pause bill: %v", err)
	}

	// June 26: Water's due day 31 clamps to June 30 and Cloud backup rolls
	// over to July 2, both inside seven days; Power and Streaming already
	// passed this month and land outside the window.
	now := time.Date(2025, time.June, 26, 9, 30, 0, 0, time.UTC)

	out, err := overview.Execute(ctx, userID, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("pro-rates recurrences into the totals", func(t *testing.T) {
		if !out.MonthlyTotal.Equal(dec("270")) {
			t.Errorf("monthly total = %s, want 270", out.MonthlyTotal)
		}
		if !out.AnnualTotal.Equal(dec("3240")) {
			t.Errorf("annual total = %s, want 3240", out.AnnualTotal)
		}
	})

	t.Run("counts bills due in the next seven days at full value", func(t *testing.T) {
		if out.Upcoming.Count != 2 {
			t.Errorf("upcoming count = %d, want 2", out.Upcoming.Count)
		}
		if !out.Upcoming.Total.Equal(dec("540")) {
			t.Errorf("upcoming total = %s, want 540", out.Upcoming.Total)
		}
	})

	t.Run("groups utilities and subscriptions", func(t *testing.T) {
		totals := map[entity.BillGroup]GroupTotal{}
		for _, gt := range out.GroupTotals {
			totals[gt.Group] = gt
		}
		utilities, ok := totals[entity.BillGroupUtilities]
		if !ok || !utilities.MonthlyTotal.Equal(dec("200")) || utilities.Count != 2 {
			t.Errorf("utilities = %+v, want 200 over 2 bills", utilities)
		}
		subscriptions, ok := totals[entity.BillGroupSubscriptions]
		if !ok || !subscriptions.MonthlyTotal.Equal(dec("20")) || subscriptions.Count != 1 {
			t.Errorf("subscriptions = %+v, want 20 over 1 bill", subscriptions)
		}
		other, ok := totals[entity.BillGroupOther]
		if !ok || !other.MonthlyTotal.Equal(dec("50")) || other.Count != 1 {
			t.Errorf("other = %+v, want 50 over 1 bill", other)
		}
	})

	t.Run("the full list still includes the paused bill", func(t *testing.T) {
		if len(out.Bills) != 5 {
			t.Fatalf("len = %d, want 5", len(out.Bills))
		}
	})
}
