package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/usecase/financing"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/middleware"
)

// FinancingController handles loan contract endpoints.
type FinancingController struct {
	createUseCase         *financing.CreateFinancingUseCase
	listUseCase           *financing.ListActiveUseCase
	getUseCase            *financing.GetFinancingUseCase
	simulateUseCase       *financing.SimulateUseCase
	payInstallmentUseCase *financing.PayInstallmentUseCase
	prepayUseCase         *financing.PrepayUseCase
}

// NewFinancingController creates a new financing controller instance.
func NewFinancingController(
	createUseCase *financing.CreateFinancingUseCase,
	listUseCase *financing.ListActiveUseCase,
	getUseCase *financing.GetFinancingUseCase,
	simulateUseCase *financing.SimulateUseCase,
	payInstallmentUseCase *financing.PayInstallmentUseCase,
	prepayUseCase *financing.PrepayUseCase,
) *FinancingController {
	return &FinancingController{
		createUseCase:         createUseCase,
		listUseCase:           listUseCase,
		getUseCase:            getUseCase,
		simulateUseCase:       simulateUseCase,
		payInstallmentUseCase: payInstallmentUseCase,
		prepayUseCase:         prepayUseCase,
	}
}

// Create handles POST /financings requests.
func (c *FinancingController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateFinancingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidPrincipal),
		})
		return
	}

	input := financing.CreateFinancingInput{
		UserID:       userID,
		Title:        req.Title,
		Institution:  req.Institution,
		TotalAmount:  req.TotalAmount,
		Installments: req.Installments,
		MonthlyRate:  req.MonthlyRate,
		DueDay:       req.DueDay,
	}
	if req.StartDate != nil {
		input.StartDate = *req.StartDate
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleFinancingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.FinancingDetailResponse{
		Financing:    dto.ToFinancingResponse(output.Financing),
		Installments: dto.ToInstallmentListResponse(output.Installments),
	})
}

// List handles GET /financings requests.
func (c *FinancingController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve financings",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFinancingListResponse(output))
}

// Get handles GET /financings/:id requests.
func (c *FinancingController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	financingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid financing ID",
			Code:  string(domainerror.ErrCodeFinancingNotFound),
		})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), financingID, userID)
	if err != nil {
		c.handleFinancingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.FinancingDetailResponse{
		Financing:    dto.ToFinancingResponse(output.Financing),
		Installments: dto.ToInstallmentListResponse(output.Installments),
	})
}

// Simulate handles POST /financings/simulate requests.
func (c *FinancingController) Simulate(ctx *gin.Context) {
	var req dto.SimulateFinancingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidPrincipal),
		})
		return
	}

	input := financing.SimulateInput{
		TotalAmount:  req.TotalAmount,
		Installments: req.Installments,
		MonthlyRate:  req.MonthlyRate,
		DueDay:       req.DueDay,
	}
	if req.StartDate != nil {
		input.StartDate = *req.StartDate
	}

	output, err := c.simulateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleFinancingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SimulateFinancingResponse{
		Schedule:      dto.ToScheduleResponse(output.Schedule),
		TotalPaid:     output.TotalPaid,
		TotalInterest: output.TotalInterest,
	})
}

// PayInstallment handles POST /financings/installments/:id/pay requests.
func (c *FinancingController) PayInstallment(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	installmentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid installment ID",
			Code:  string(domainerror.ErrCodeInstallmentNotFound),
		})
		return
	}

	// Body is optional; an absent payment date defaults to "now".
	var req dto.PayInstallmentRequest
	_ = ctx.ShouldBindJSON(&req)

	input := financing.PayInstallmentInput{
		UserID:        userID,
		InstallmentID: installmentID,
	}
	if req.PaymentDate != nil {
		input.PaymentDate = *req.PaymentDate
	}

	output, err := c.payInstallmentUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleFinancingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PayInstallmentResponse{
		FinancingID:      output.FinancingID.String(),
		RemainingAmount:  output.RemainingAmount,
		PaidInstallments: output.PaidInstallments,
		Active:           output.Active,
	})
}

// Prepay handles POST /financings/:id/prepay requests.
func (c *FinancingController) Prepay(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	financingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid financing ID",
			Code:  string(domainerror.ErrCodeFinancingNotFound),
		})
		return
	}

	var req dto.PrepayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidPrepaymentAmount),
		})
		return
	}

	input := financing.PrepayInput{
		UserID:      userID,
		FinancingID: financingID,
		Amount:      req.Amount,
	}
	if req.PaymentDate != nil {
		input.PaymentDate = *req.PaymentDate
	}

	output, err := c.prepayUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleFinancingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PrepayResponse{
		FinancingID:     output.FinancingID.String(),
		RemainingAmount: output.RemainingAmount,
		Active:          output.Active,
		NewInstallments: dto.ToInstallmentListResponse(output.NewInstallments),
	})
}

// handleFinancingError maps financing errors to HTTP responses.
func (c *FinancingController) handleFinancingError(ctx *gin.Context, err error) {
	var finErr *domainerror.FinancingError
	if errors.As(err, &finErr) {
		ctx.JSON(c.getStatusCodeForFinancingError(finErr.Code), dto.ErrorResponse{
			Error: finErr.Message,
			Code:  string(finErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForFinancingError maps financing error codes to HTTP status codes.
func (c *FinancingController) getStatusCodeForFinancingError(code domainerror.FinancingErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidPrincipal,
		domainerror.ErrCodeInvalidRate,
		domainerror.ErrCodeInvalidTerm,
		domainerror.ErrCodeInvalidDueDay,
		domainerror.ErrCodeInvalidPrepaymentAmount:
		return http.StatusBadRequest
	case domainerror.ErrCodeFinancingNotFound,
		domainerror.ErrCodeInstallmentNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeFinancingInactive,
		domainerror.ErrCodeInstallmentAlreadyPaid:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
