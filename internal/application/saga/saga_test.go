package saga

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
	"github.com/personal-ledger/backend/internal/application/retry"
	alertuc "github.com/personal-ledger/backend/internal/application/usecase/alert"
	carduc "github.com/personal-ledger/backend/internal/application/usecase/card"
	expenseuc "github.com/personal-ledger/backend/internal/application/usecase/expense"
	financinguc "github.com/personal-ledger/backend/internal/application/usecase/financing"
	"github.com/personal-ledger/backend/internal/domain/entity"
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
		&model.RefreshTokenModel{},
		&model.CategoryModel{},
		&model.ExpenseModel{},
		&model.MonthlyTotalModel{},
		&model.AlertModel{},
		&model.CardModel{},
		&model.CardInvoiceModel{},
		&model.CardChargeModel{},
		&model.FinancingModel{},
		&model.InstallmentModel{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

type testEnv struct {
	db           *gorm.DB
	bus          *event.Bus
	users        adapter.UserRepository
	categories   adapter.CategoryRepository
	cards        adapter.CardRepository
	invoices     adapter.CardInvoiceRepository
	alerts       adapter.AlertRepository
	monthlyTotal adapter.MonthlyTotalRepository

	addExpense      *expenseuc.AddExpenseUseCase
	createCharge    *carduc.CreateChargeUseCase
	payInvoice      *carduc.PayInvoiceUseCase
	createFinancing *financinguc.CreateFinancingUseCase
	payInstallment  *financinguc.PayInstallmentUseCase
}

// newTestEnv wires the real use cases, listeners and sqlite persistence the
// same way the injector does in production.
func newTestEnv(t *testing.T, policy retry.Policy) *testEnv {
	return newTestEnvWithCharger(t, policy, nil)
}

// newTestEnvWithCharger lets a test interpose on the charge creator the
// linkage listener calls through the retry executor.
func newTestEnvWithCharger(t *testing.T, policy retry.Policy, wrap func(ChargeCreator) ChargeCreator) *testEnv {
	t.Helper()

	db := newTestDB(t)
	uowManager := persistence.NewUnitOfWorkManager(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	cardRepo := persistence.NewCardRepository(db)

	bus := event.NewBus()
	executor := retry.NewExecutor(policy)

	createCharge := carduc.NewCreateChargeUseCase(uowManager, cardRepo)
	createSystemAlert := alertuc.NewCreateSystemAlertUseCase(uowManager, nil)
	checkLimit := alertuc.NewCheckCategoryLimitUseCase(nil)

	var charger ChargeCreator = createCharge
	if wrap != nil {
		charger = wrap(createCharge)
	}

	RegisterExpenseListeners(bus, checkLimit)
	RegisterCreditLinkageListener(bus, executor, categoryRepo, charger, createSystemAlert)
	RegisterCardListeners(bus)
	RegisterFinancingListeners(bus)

	return &testEnv{
		db:              db,
		bus:             bus,
		users:           persistence.NewUserRepository(db),
		categories:      categoryRepo,
		cards:           cardRepo,
		invoices:        persistence.NewCardInvoiceRepository(db),
		alerts:          persistence.NewAlertRepository(db),
		monthlyTotal:    persistence.NewMonthlyTotalRepository(db),
		addExpense:      expenseuc.NewAddExpenseUseCase(uowManager, categoryRepo, bus),
		createCharge:    createCharge,
		payInvoice:      carduc.NewPayInvoiceUseCase(uowManager, bus),
		createFinancing: financinguc.NewCreateFinancingUseCase(persistence.NewFinancingRepository(db)),
		payInstallment:  financinguc.NewPayInstallmentUseCase(uowManager, bus),
	}
}

func defaultPolicy() retry.Policy {
	return retry.Policy{MaxAttempts: 2, BaseDelay: time.Millisecond, Multiplier: 2}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (env *testEnv) seedUser(t *testing.T, balance string) *entity.User {
	t.Helper()
	user := entity.NewUser("user@example.com", "Test User", "hashed-password", dec(balance))
	if err := env.users.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func (env *testEnv) seedCategory(t *testing.T, userID uuid.UUID, name, limit string) *entity.Category {
	t.Helper()
	category := entity.NewCategory(userID, name, "", dec(limit))
	if err := env.categories.Create(context.Background(), category); err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return category
}

func (env *testEnv) seedCard(t *testing.T, userID uuid.UUID, limit string, closingDay, dueDay int) *entity.Card {
	t.Helper()
	card := entity.NewCard(userID, "Main Card", "VISA", "1234", "#000000", dec(limit), closingDay, dueDay)
	if err := env.cards.Create(context.Background(), card); err != nil {
		t.Fatalf("failed to seed card: %v", err)
	}
	return card
}

func (env *testEnv) countRows(t *testing.T, m any) int64 {
	t.Helper()
	var n int64
	if err := env.db.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return n
}

func TestAddExpense_SharedTransactionSideEffects(t *testing.T) {
	env := newTestEnv(t, defaultPolicy())
	ctx := context.Background()

	user := env.seedUser(t, "1000")
	category := env.seedCategory(t, user.ID, "Food", "100")
	date := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)

	add := func(amount string) error {
		categoryID := category.ID
		_, err := env.addExpense.Execute(ctx, expenseuc.AddExpenseInput{
			UserID:        user.ID,
			CategoryID:    &categoryID,
			Amount:        dec(amount),
			Date:          date,
			Description:   "groceries",
			PaymentMethod: entity.PaymentMethodDebit,
		})
		return err
	}

	if err := add("85"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total, err := env.monthlyTotal.FindByPeriod(ctx, user.ID, 2025, 3)
	if err != nil || total == nil {
		t.Fatalf("expected monthly total, got %v (err %v)", total, err)
	}
	if !total.SpentAmount.Equal(dec("85")) {
		t.Errorf("spent amount = %s, want 85", total.SpentAmount)
	}

	updated, err := env.users.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if !updated.Balance.Equal(dec("915")) {
		t.Errorf("balance = %s, want 915", updated.Balance)
	}

	alerts, err := env.alerts.FindByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("failed to list alerts: %v", err)
	}
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert after crossing 80%%, got %d", len(alerts))
	}
	if alerts[0].Kind != entity.AlertKindCategoryLimitNear {
		t.Errorf("alert kind = %s, want %s", alerts[0].Kind, entity.AlertKindCategoryLimitNear)
	}
	if alerts[0].Severity != entity.AlertSeverityWarning {
		t.Errorf("alert severity = %s, want %s", alerts[0].Severity, entity.AlertSeverityWarning)
	}

	// Still inside the 80% band: the near alert must not duplicate.
	if err := add("10"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	alerts, _ = env.alerts.FindByUser(ctx, user.ID)
	if len(alerts) != 1 {
		t.Fatalf("expected near alert to stay unique, got %d alerts", len(alerts))
	}

	// Crossing 100% adds the exceeded alert.
	if err := add("10"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	alerts, _ = env.alerts.FindByUser(ctx, user.ID)
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts after exceeding the limit, got %d", len(alerts))
	}
	foundExceeded := false
	for _, a := range alerts {
		if a.Kind == entity.AlertKindCategoryLimitExceeded {
			foundExceeded = true
			if a.Severity != entity.AlertSeverityCritical {
				t.Errorf("exceeded alert severity = %s, want %s", a.Severity, entity.AlertSeverityCritical)
			}
		}
	}
	if !foundExceeded {
		t.Error("expected a limit-exceeded alert")
	}

	total, _ = env.monthlyTotal.FindByPeriod(ctx, user.ID, 2025, 3)
	if !total.SpentAmount.Equal(dec("105")) {
		t.Errorf("spent amount = %s, want 105", total.SpentAmount)
	}
	updated, _ = env.users.FindByID(ctx, user.ID)
	if !updated.Balance.Equal(dec("895")) {
		t.Errorf("balance = %s, want 895", updated.Balance)
	}
}

func TestAddExpense_ListenerFailureRollsBackInsert(t *testing.T) {
	env := newTestEnv(t, defaultPolicy())
	ctx := context.Background()

	// No user row: the balance debit listener fails and the whole
	// transaction, insert included, must roll back.
	_, err := env.addExpense.Execute(ctx, expenseuc.AddExpenseInput{
		UserID:        uuid.New(),
		Amount:        dec("50"),
		Date:          time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
		Description:   "orphan",
		PaymentMethod: entity.PaymentMethodDebit,
	})
	if err == nil {
		t.Fatal("expected error when the debit listener fails")
	}

	if n := env.countRows(t, &model.ExpenseModel{}); n != 0 {
		t.Errorf("expected expense insert rolled back, found %d rows", n)
	}
	if n := env.countRows(t, &model.MonthlyTotalModel{}); n != 0 {
		t.Errorf("expected monthly total rolled back, found %d rows", n)
	}
}

func TestAddExpense_CreditLinkageSuccess(t *testing.T) {
	env := newTestEnv(t, defaultPolicy())
	ctx := context.Background()

	user := env.seedUser(t, "1000")
	category := env.seedCategory(t, user.ID, "Shopping", "0")
	card := env.seedCard(t, user.ID, "1000", 10, 20)
	date := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)

	categoryID := category.ID
	cardID := card.ID
	out, err := env.addExpense.Execute(ctx, expenseuc.AddExpenseInput{
		UserID:        user.ID,
		CategoryID:    &categoryID,
		Amount:        dec("300"),
		Date:          date,
		Description:   "headphones",
		PaymentMethod: entity.PaymentMethodCredit,
		CardID:        &cardID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Expense.IsCredit() {
		t.Error("expected a credit entry")
	}

	if n := env.countRows(t, &model.CardChargeModel{}); n != 1 {
		t.Fatalf("expected 1 charge, got %d", n)
	}

	// Purchased before the closing day, so the charge bills in March.
	invoice, err := env.invoices.FindByCardAndPeriod(ctx, card.ID, user.ID, 2025, 3)
	if err != nil || invoice == nil {
		t.Fatalf("expected march invoice, got %v (err %v)", invoice, err)
	}
	if !invoice.TotalCharged.Equal(dec("300")) {
		t.Errorf("invoice total = %s, want 300", invoice.TotalCharged)
	}

	reloaded, err := env.cards.FindByIDAndUser(ctx, card.ID, user.ID)
	if err != nil {
		t.Fatalf("failed to reload card: %v", err)
	}
	if !reloaded.UsedAmount.Equal(dec("300")) {
		t.Errorf("card used amount = %s, want 300", reloaded.UsedAmount)
	}

	// Credit spend must not touch balance or monthly totals at insert time.
	updated, _ := env.users.FindByID(ctx, user.ID)
	if !updated.Balance.Equal(dec("1000")) {
		t.Errorf("balance = %s, want untouched 1000", updated.Balance)
	}
	if n := env.countRows(t, &model.MonthlyTotalModel{}); n != 0 {
		t.Errorf("expected no monthly total for credit insert, got %d rows", n)
	}
	if n := env.countRows(t, &model.AlertModel{}); n != 0 {
		t.Errorf("expected no alerts on successful linkage, got %d", n)
	}
}

// flakyChargeCreator fails a fixed number of calls before delegating to the
// real use case.
type flakyChargeCreator struct {
	inner    ChargeCreator
	failures int
	calls    int
}

func (f *flakyChargeCreator) Execute(ctx context.Context, input carduc.CreateChargeInput) (*carduc.CreateChargeOutput, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("card service unavailable")
	}
	return f.inner.Execute(ctx, input)
}

func TestAddExpense_CreditLinkageRecoversMidRetry(t *testing.T) {
	var flaky *flakyChargeCreator
	env := newTestEnvWithCharger(t,
		retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, Multiplier: 2},
		func(inner ChargeCreator) ChargeCreator {
			flaky = &flakyChargeCreator{inner: inner, failures: 2}
			return flaky
		},
	)
	ctx := context.Background()

	user := env.seedUser(t, "1000")
	card := env.seedCard(t, user.ID, "1000", 10, 20)

	cardID := card.ID
	_, err := env.addExpense.Execute(ctx, expenseuc.AddExpenseInput{
		UserID:        user.ID,
		Amount:        dec("150"),
		Date:          time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
		Description:   "concert tickets",
		PaymentMethod: entity.PaymentMethodCredit,
		CardID:        &cardID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if flaky.calls != 3 {
		t.Errorf("charge creator calls = %d, want 2 failures then success", flaky.calls)
	}

	// Success on the final attempt: the charge lands and no alert is left.
	if n := env.countRows(t, &model.CardChargeModel{}); n != 1 {
		t.Fatalf("expected 1 charge after recovery, got %d", n)
	}
	invoice, err := env.invoices.FindByCardAndPeriod(ctx, card.ID, user.ID, 2025, 3)
	if err != nil || invoice == nil {
		t.Fatalf("expected march invoice, got %v (err %v)", invoice, err)
	}
	if !invoice.TotalCharged.Equal(dec("150")) {
		t.Errorf("invoice total = %s, want 150", invoice.TotalCharged)
	}
	if n := env.countRows(t, &model.AlertModel{}); n != 0 {
		t.Errorf("expected no alerts when a retry succeeds, got %d", n)
	}
}

// mislabeledEvent claims a known kind while carrying a foreign payload.
type mislabeledEvent struct {
	kind event.Kind
}

func (e mislabeledEvent) EventKind() event.Kind { return e.kind }

func TestListeners_RejectMismatchedPayload(t *testing.T) {
	env := newTestEnv(t, defaultPolicy())
	ctx := context.Background()

	kinds := []event.Kind{
		event.KindExpenseInserted,
		event.KindCreditExpenseInserted,
		event.KindInvoicePaid,
		event.KindFinancingPaymentMade,
	}
	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			if err := env.bus.Emit(ctx, mislabeledEvent{kind: kind}); err == nil {
				t.Fatal("expected an error for a mismatched payload")
			}
		})
	}
}

func TestAddExpense_CreditLinkageExhaustionKeepsEntry(t *testing.T) {
	env := newTestEnv(t, defaultPolicy())
	ctx := context.Background()

	user := env.seedUser(t, "1000")
	missingCard := uuid.New()

	out, err := env.addExpense.Execute(ctx, expenseuc.AddExpenseInput{
		UserID:        user.ID,
		Amount:        dec("75.50"),
		Date:          time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
		Description:   "unlinkable",
		PaymentMethod: entity.PaymentMethodCredit,
		CardID:        &missingCard,
	})
	if err != nil {
		t.Fatalf("linkage exhaustion must not fail the insert, got %v", err)
	}
	if out == nil || out.Expense == nil {
		t.Fatal("expected the committed entry back")
	}

	if n := env.countRows(t, &model.ExpenseModel{}); n != 1 {
		t.Errorf("expected the entry to stay committed, got %d rows", n)
	}
	if n := env.countRows(t, &model.CardChargeModel{}); n != 0 {
		t.Errorf("expected no charge rows, got %d", n)
	}

	alerts, err := env.alerts.FindByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("failed to list alerts: %v", err)
	}
	if len(alerts) != 1 {
		t.Fatalf("expected exactly one linkage alert, got %d", len(alerts))
	}
	alert := alerts[0]
	if alert.Kind != entity.AlertKindCardLinkageFailed {
		t.Errorf("alert kind = %s, want %s", alert.Kind, entity.AlertKindCardLinkageFailed)
	}
	if alert.Severity != entity.AlertSeverityHigh {
		t.Errorf("alert severity = %s, want %s", alert.Severity, entity.AlertSeverityHigh)
	}
	if alert.Payload["expense_id"] != out.Expense.ID.String() {
		t.Errorf("alert payload expense_id = %v, want %s", alert.Payload["expense_id"], out.Expense.ID)
	}
	if alert.Payload["amount"] != "75.50" {
		t.Errorf("alert payload amount = %v, want 75.50", alert.Payload["amount"])
	}
}

func TestPayInvoice_DebitsBalanceAndMonthlyTotal(t *testing.T) {
	env := newTestEnv(t, defaultPolicy())
	ctx := context.Background()

	user := env.seedUser(t, "1000")
	card := env.seedCard(t, user.ID, "2000", 10, 20)

	// 240 in two installments billed from March: 120 in March, 120 in April.
	_, err := env.createCharge.Execute(ctx, carduc.CreateChargeInput{
		UserID:       user.ID,
		CardID:       card.ID,
		Description:  "new phone",
		Amount:       dec("240"),
		Installments: 2,
		PurchaseDate: time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("failed to create charge: %v", err)
	}

	out, err := env.payInvoice.Execute(ctx, carduc.PayInvoiceInput{
		UserID: user.ID,
		CardID: card.ID,
		Year:   2025,
		Month:  3,
		Amount: dec("120"),
		PaidAt: time.Date(2025, time.March, 25, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != entity.InvoiceStatusPaid {
		t.Errorf("invoice status = %s, want %s", out.Status, entity.InvoiceStatusPaid)
	}
	if !out.Outstanding.IsZero() {
		t.Errorf("outstanding = %s, want 0", out.Outstanding)
	}

	updated, _ := env.users.FindByID(ctx, user.ID)
	if !updated.Balance.Equal(dec("880")) {
		t.Errorf("balance = %s, want 880", updated.Balance)
	}

	total, err := env.monthlyTotal.FindByPeriod(ctx, user.ID, 2025, 3)
	if err != nil || total == nil {
		t.Fatalf("expected monthly total after payment, got %v (err %v)", total, err)
	}
	if !total.SpentAmount.Equal(dec("120")) {
		t.Errorf("spent amount = %s, want 120", total.SpentAmount)
	}

	// The payment frees the paid share of the card limit.
	reloaded, _ := env.cards.FindByIDAndUser(ctx, card.ID, user.ID)
	if !reloaded.UsedAmount.Equal(dec("120")) {
		t.Errorf("card used amount = %s, want 120", reloaded.UsedAmount)
	}
}

func TestPayInstallment_CreatesLedgerEntryAndDebits(t *testing.T) {
	env := newTestEnv(t, defaultPolicy())
	ctx := context.Background()

	user := env.seedUser(t, "10000")

	created, err := env.createFinancing.Execute(ctx, financinguc.CreateFinancingInput{
		UserID:       user.ID,
		Title:        "Car loan",
		TotalAmount:  dec("1200"),
		Installments: 12,
		MonthlyRate:  decimal.Zero,
		StartDate:    time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
		DueDay:       10,
	})
	if err != nil {
		t.Fatalf("failed to create financing: %v", err)
	}
	if len(created.Installments) != 12 {
		t.Fatalf("expected 12 installments, got %d", len(created.Installments))
	}

	paymentDate := time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)
	out, err := env.payInstallment.Execute(ctx, financinguc.PayInstallmentInput{
		UserID:        user.ID,
		InstallmentID: created.Installments[0].ID,
		PaymentDate:   paymentDate,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.PaidInstallments != 1 {
		t.Errorf("paid installments = %d, want 1", out.PaidInstallments)
	}
	if !out.RemainingAmount.Equal(dec("1100")) {
		t.Errorf("remaining = %s, want 1100", out.RemainingAmount)
	}
	if !out.Active {
		t.Error("contract should stay active with 11 installments open")
	}

	updated, _ := env.users.FindByID(ctx, user.ID)
	if !updated.Balance.Equal(dec("9900")) {
		t.Errorf("balance = %s, want 9900", updated.Balance)
	}

	var entries []model.ExpenseModel
	if err := env.db.Find(&entries).Error; err != nil {
		t.Fatalf("failed to list ledger entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one financing ledger entry, got %d", len(entries))
	}
	entry := entries[0].ToEntity()
	if entry.Origin != entity.ExpenseOriginFinancing {
		t.Errorf("entry origin = %s, want %s", entry.Origin, entity.ExpenseOriginFinancing)
	}
	if entry.FinancingID == nil || *entry.FinancingID != created.Financing.ID {
		t.Error("entry should reference the paid contract")
	}
	if entry.Description != "Installment 1/12 - Car loan" {
		t.Errorf("entry description = %q", entry.Description)
	}
	if !entry.Amount.Equal(dec("100")) {
		t.Errorf("entry amount = %s, want 100", entry.Amount)
	}
}
