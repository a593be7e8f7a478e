package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/usecase/expense"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/middleware"
)

// ExpenseController handles ledger entry and monthly total endpoints.
type ExpenseController struct {
	addUseCase         *expense.AddExpenseUseCase
	listUseCase        *expense.ListExpensesUseCase
	setLimitUseCase    *expense.SetMonthlyLimitUseCase
	getTotalUseCase    *expense.GetMonthlyTotalUseCase
	recalculateUseCase *expense.RecalculateMonthlyTotalUseCase
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(
	addUseCase *expense.AddExpenseUseCase,
	listUseCase *expense.ListExpensesUseCase,
	setLimitUseCase *expense.SetMonthlyLimitUseCase,
	getTotalUseCase *expense.GetMonthlyTotalUseCase,
	recalculateUseCase *expense.RecalculateMonthlyTotalUseCase,
) *ExpenseController {
	return &ExpenseController{
		addUseCase:         addUseCase,
		listUseCase:        listUseCase,
		setLimitUseCase:    setLimitUseCase,
		getTotalUseCase:    getTotalUseCase,
		recalculateUseCase: recalculateUseCase,
	}
}

// Create handles POST /expenses requests.
func (c *ExpenseController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidExpenseAmount),
		})
		return
	}

	input := expense.AddExpenseInput{
		UserID:        userID,
		Amount:        req.Amount,
		Date:          req.Date,
		Description:   req.Description,
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
	}
	if req.CategoryID != nil {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category ID",
				Code:  string(domainerror.ErrCodeCategoryNotFound),
			})
			return
		}
		input.CategoryID = &id
	}
	if req.CardID != nil {
		id, err := uuid.Parse(*req.CardID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid card ID",
				Code:  string(domainerror.ErrCodeCardNotFound),
			})
			return
		}
		input.CardID = &id
	}

	output, err := c.addUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToExpenseResponse(output.Expense))
}

// List handles GET /expenses requests.
func (c *ExpenseController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	year, month, ok := parsePeriodQuery(ctx)
	if !ok {
		return
	}

	input := expense.ListExpensesInput{
		UserID: userID,
		Year:   year,
		Month:  month,
	}

	expenses, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(expenses))
}

// SetMonthlyLimit handles POST /expenses/monthly-limit requests.
func (c *ExpenseController) SetMonthlyLimit(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.SetMonthlyLimitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidMonthlyLimit),
		})
		return
	}

	input := expense.SetMonthlyLimitInput{
		UserID: userID,
		Year:   req.Year,
		Month:  req.Month,
		Limit:  req.Limit,
	}

	if err := c.setLimitUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Monthly limit updated",
	})
}

// GetMonthlyTotal handles GET /expenses/monthly-total requests.
func (c *ExpenseController) GetMonthlyTotal(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	year, month, ok := parsePeriodQuery(ctx)
	if !ok {
		return
	}

	input := expense.GetMonthlyTotalInput{
		UserID: userID,
		Year:   year,
		Month:  month,
	}

	output, err := c.getTotalUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MonthlyTotalResponse{
		Year:        output.Year,
		Month:       output.Month,
		LimitAmount: output.LimitAmount,
		SpentAmount: output.SpentAmount,
	})
}

// RecalculateMonthlyTotal handles POST /expenses/recalculate requests.
func (c *ExpenseController) RecalculateMonthlyTotal(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	year, month, ok := parsePeriodQuery(ctx)
	if !ok {
		return
	}

	input := expense.RecalculateMonthlyTotalInput{
		UserID: userID,
		Year:   year,
		Month:  month,
	}

	output, err := c.recalculateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MonthlyTotalResponse{
		Year:        output.Year,
		Month:       output.Month,
		SpentAmount: output.SpentAmount,
	})
}

// parsePeriodQuery reads the year/month query parameters, defaulting to the
// current month when absent.
func parsePeriodQuery(ctx *gin.Context) (int, int, bool) {
	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())

	if yearStr := ctx.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid year parameter",
				Code:  string(domainerror.ErrCodeInvalidPeriod),
			})
			return 0, 0, false
		}
		year = parsed
	}
	if monthStr := ctx.Query("month"); monthStr != "" {
		parsed, err := strconv.Atoi(monthStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid month parameter",
				Code:  string(domainerror.ErrCodeInvalidPeriod),
			})
			return 0, 0, false
		}
		month = parsed
	}

	return year, month, true
}

// handleExpenseError maps expense errors to HTTP responses.
func (c *ExpenseController) handleExpenseError(ctx *gin.Context, err error) {
	var expErr *domainerror.ExpenseError
	if errors.As(err, &expErr) {
		ctx.JSON(c.getStatusCodeForExpenseError(expErr.Code), dto.ErrorResponse{
			Error: expErr.Message,
			Code:  string(expErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForExpenseError maps expense error codes to HTTP status codes.
func (c *ExpenseController) getStatusCodeForExpenseError(code domainerror.ExpenseErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidExpenseAmount,
		domainerror.ErrCodeInvalidPaymentMethod,
		domainerror.ErrCodeInvalidMonthlyLimit,
		domainerror.ErrCodeInvalidPeriod,
		domainerror.ErrCodeCardRequired:
		return http.StatusBadRequest
	case domainerror.ErrCodeCategoryNotFound,
		domainerror.ErrCodeMonthlyTotalNotFound,
		domainerror.ErrCodeExpenseNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryNotOwned:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
