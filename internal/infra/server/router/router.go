// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/personal-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	authController      *controller.AuthController
	categoryController  *controller.CategoryController
	expenseController   *controller.ExpenseController
	cardController      *controller.CardController
	financingController *controller.FinancingController
	fixedBillController *controller.FixedBillController
	alertController     *controller.AlertController
	loginRateLimiter    *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	categoryController *controller.CategoryController,
	expenseController *controller.ExpenseController,
	cardController *controller.CardController,
	financingController *controller.FinancingController,
	fixedBillController *controller.FixedBillController,
	alertController *controller.AlertController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:    healthController,
		authController:      authController,
		categoryController:  categoryController,
		expenseController:   expenseController,
		cardController:      cardController,
		financingController: financingController,
		fixedBillController: fixedBillController,
		alertController:     alertController,
		loginRateLimiter:    loginRateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
			auth.POST("/logout", r.authController.Logout)
		}

		categories := v1.Group("/categories")
		categories.Use(r.authMiddleware.Authenticate())
		{
			categories.GET("", r.categoryController.List)
			categories.POST("", r.categoryController.Create)
			categories.PATCH("/:id/limit", r.categoryController.UpdateLimit)
		}

		expenses := v1.Group("/expenses")
		expenses.Use(r.authMiddleware.Authenticate())
		{
			expenses.GET("", r.expenseController.List)
			expenses.POST("", r.expenseController.Create)
			expenses.POST("/monthly-limit", r.expenseController.SetMonthlyLimit)
			expenses.GET("/monthly-total", r.expenseController.GetMonthlyTotal)
			expenses.POST("/recalculate", r.expenseController.RecalculateMonthlyTotal)
		}

		cards := v1.Group("/cards")
		cards.Use(r.authMiddleware.Authenticate())
		{
			cards.GET("", r.cardController.List)
			cards.POST("", r.cardController.Create)
			cards.GET("/overview", r.cardController.MonthOverview)
			cards.POST("/:id/charges", r.cardController.CreateCharge)
			cards.POST("/:id/invoices/pay", r.cardController.PayInvoice)
		}

		financings := v1.Group("/financings")
		financings.Use(r.authMiddleware.Authenticate())
		{
			financings.GET("", r.financingController.List)
			financings.POST("", r.financingController.Create)
			financings.POST("/simulate", r.financingController.Simulate)
			financings.GET("/:id", r.financingController.Get)
			financings.POST("/:id/prepay", r.financingController.Prepay)
			financings.POST("/installments/:id/pay", r.financingController.PayInstallment)
		}

		fixedBills := v1.Group("/fixed-bills")
		fixedBills.Use(r.authMiddleware.Authenticate())
		{
			fixedBills.GET("", r.fixedBillController.List)
			fixedBills.POST("", r.fixedBillController.Create)
			fixedBills.GET("/overview", r.fixedBillController.Overview)
			fixedBills.PATCH("/:id/active", r.fixedBillController.Toggle)
		}

		alerts := v1.Group("/alerts")
		alerts.Use(r.authMiddleware.Authenticate())
		{
			alerts.GET("", r.alertController.List)
		}
	}
}
