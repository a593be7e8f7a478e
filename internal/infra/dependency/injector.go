// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"gorm.io/gorm"

	"github.com/personal-ledger/backend/config"
	"github.com/personal-ledger/backend/internal/application/event"
	"github.com/personal-ledger/backend/internal/application/retry"
	"github.com/personal-ledger/backend/internal/application/saga"
	"github.com/personal-ledger/backend/internal/application/usecase/alert"
	"github.com/personal-ledger/backend/internal/application/usecase/auth"
	"github.com/personal-ledger/backend/internal/application/usecase/card"
	"github.com/personal-ledger/backend/internal/application/usecase/category"
	"github.com/personal-ledger/backend/internal/application/usecase/expense"
	"github.com/personal-ledger/backend/internal/application/usecase/financing"
	"github.com/personal-ledger/backend/internal/application/usecase/fixedbill"
	"github.com/personal-ledger/backend/internal/infra/server/router"
	"github.com/personal-ledger/backend/internal/integration/adapters"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/middleware"
	"github.com/personal-ledger/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) *Injector {
	// Repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	monthlyTotalRepo := persistence.NewMonthlyTotalRepository(db)
	alertRepo := persistence.NewAlertRepository(db)
	cardRepo := persistence.NewCardRepository(db)
	cardInvoiceRepo := persistence.NewCardInvoiceRepository(db)
	cardChargeRepo := persistence.NewCardChargeRepository(db)
	financingRepo := persistence.NewFinancingRepository(db)
	fixedBillRepo := persistence.NewFixedBillRepository(db)
	uowManager := persistence.NewUnitOfWorkManager(db)

	// Adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
		tokenRepo,
	)
	notificationService := adapters.NewNotificationService(
		cfg.Notification.ResendAPIKey,
		cfg.Notification.FromName,
		cfg.Notification.FromEmail,
		cfg.Notification.Enabled,
		userRepo,
	)

	// Event bus and retry executor for the sagas
	bus := event.NewBus()
	executor := retry.NewExecutor(retry.Policy{
		MaxAttempts: cfg.Saga.RetryMaxAttempts,
		BaseDelay:   cfg.Saga.RetryBaseDelay,
		Multiplier:  cfg.Saga.RetryMultiplier,
	})

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Category use cases
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	updateCategoryLimitUseCase := category.NewUpdateCategoryLimitUseCase(categoryRepo)

	// Alert use cases
	checkCategoryLimitUseCase := alert.NewCheckCategoryLimitUseCase(notificationService)
	createSystemAlertUseCase := alert.NewCreateSystemAlertUseCase(uowManager, notificationService)
	listAlertsUseCase := alert.NewListAlertsUseCase(alertRepo)

	// Expense use cases
	addExpenseUseCase := expense.NewAddExpenseUseCase(uowManager, categoryRepo, bus)
	listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo)
	setMonthlyLimitUseCase := expense.NewSetMonthlyLimitUseCase(monthlyTotalRepo)
	getMonthlyTotalUseCase := expense.NewGetMonthlyTotalUseCase(monthlyTotalRepo)
	recalculateUseCase := expense.NewRecalculateMonthlyTotalUseCase(uowManager)

	// Card use cases
	createCardUseCase := card.NewCreateCardUseCase(cardRepo)
	listCardsUseCase := card.NewListCardsUseCase(cardRepo)
	createChargeUseCase := card.NewCreateChargeUseCase(uowManager, cardRepo)
	payInvoiceUseCase := card.NewPayInvoiceUseCase(uowManager, bus)
	monthOverviewUseCase := card.NewMonthOverviewUseCase(cardRepo, cardChargeRepo, cardInvoiceRepo)

	// Financing use cases
	createFinancingUseCase := financing.NewCreateFinancingUseCase(financingRepo)
	listActiveUseCase := financing.NewListActiveUseCase(financingRepo)
	getFinancingUseCase := financing.NewGetFinancingUseCase(financingRepo)
	simulateUseCase := financing.NewSimulateUseCase()
	payInstallmentUseCase := financing.NewPayInstallmentUseCase(uowManager, bus)
	prepayUseCase := financing.NewPrepayUseCase(uowManager, bus)

	// Fixed-bill use cases
	createFixedBillUseCase := fixedbill.NewCreateFixedBillUseCase(fixedBillRepo)
	listFixedBillsUseCase := fixedbill.NewListFixedBillsUseCase(fixedBillRepo)
	toggleFixedBillUseCase := fixedbill.NewToggleFixedBillUseCase(fixedBillRepo)
	fixedBillOverviewUseCase := fixedbill.NewFixedBillOverviewUseCase(fixedBillRepo)

	// Saga listeners. Registration order matters for the shared-transaction
	// expense listeners.
	saga.RegisterExpenseListeners(bus, checkCategoryLimitUseCase)
	saga.RegisterCreditLinkageListener(bus, executor, categoryRepo, createChargeUseCase, createSystemAlertUseCase)
	saga.RegisterCardListeners(bus)
	saga.RegisterFinancingListeners(bus)

	// Controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})
	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)
	categoryController := controller.NewCategoryController(
		createCategoryUseCase,
		listCategoriesUseCase,
		updateCategoryLimitUseCase,
	)
	expenseController := controller.NewExpenseController(
		addExpenseUseCase,
		listExpensesUseCase,
		setMonthlyLimitUseCase,
		getMonthlyTotalUseCase,
		recalculateUseCase,
	)
	cardController := controller.NewCardController(
		createCardUseCase,
		listCardsUseCase,
		createChargeUseCase,
		payInvoiceUseCase,
		monthOverviewUseCase,
	)
	financingController := controller.NewFinancingController(
		createFinancingUseCase,
		listActiveUseCase,
		getFinancingUseCase,
		simulateUseCase,
		payInstallmentUseCase,
		prepayUseCase,
	)
	fixedBillController := controller.NewFixedBillController(
		createFixedBillUseCase,
		listFixedBillsUseCase,
		toggleFixedBillUseCase,
		fixedBillOverviewUseCase,
	)
	alertController := controller.NewAlertController(listAlertsUseCase)

	// Middleware. Higher login rate limits in test environments to prevent
	// flaky tests.
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		categoryController,
		expenseController,
		cardController,
		financingController,
		fixedBillController,
		alertController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}
}
