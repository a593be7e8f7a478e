package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/usecase/card"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/middleware"
)

// CardController handles credit card endpoints.
type CardController struct {
	createUseCase       *card.CreateCardUseCase
	listUseCase         *card.ListCardsUseCase
	createChargeUseCase *card.CreateChargeUseCase
	payInvoiceUseCase   *card.PayInvoiceUseCase
	overviewUseCase     *card.MonthOverviewUseCase
}

// NewCardController creates a new card controller instance.
func NewCardController(
	createUseCase *card.CreateCardUseCase,
	listUseCase *card.ListCardsUseCase,
	createChargeUseCase *card.CreateChargeUseCase,
	payInvoiceUseCase *card.PayInvoiceUseCase,
	overviewUseCase *card.MonthOverviewUseCase,
) *CardController {
	return &CardController{
		createUseCase:       createUseCase,
		listUseCase:         listUseCase,
		createChargeUseCase: createChargeUseCase,
		payInvoiceUseCase:   payInvoiceUseCase,
		overviewUseCase:     overviewUseCase,
	}
}

// Create handles POST /cards requests.
func (c *CardController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidCardLimit),
		})
		return
	}

	input := card.CreateCardInput{
		UserID:      userID,
		Name:        req.Name,
		Brand:       req.Brand,
		Last4:       req.Last4,
		ColorHex:    req.ColorHex,
		LimitAmount: req.LimitAmount,
		ClosingDay:  req.ClosingDay,
		DueDay:      req.DueDay,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCardResponse(output.Card))
}

// List handles GET /cards requests.
func (c *CardController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	cards, err := c.listUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve cards",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCardListResponse(cards))
}

// CreateCharge handles POST /cards/:id/charges requests.
func (c *CardController) CreateCharge(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	cardID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid card ID",
			Code:  string(domainerror.ErrCodeCardNotFound),
		})
		return
	}

	var req dto.CreateChargeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidChargeAmount),
		})
		return
	}

	input := card.CreateChargeInput{
		UserID:       userID,
		CardID:       cardID,
		Description:  req.Description,
		CategoryName: req.CategoryName,
		Amount:       req.Amount,
		Installments: req.Installments,
		PurchaseDate: req.PurchaseDate,
	}

	output, err := c.createChargeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToChargeResponse(output))
}

// PayInvoice handles POST /cards/:id/invoices/pay requests.
func (c *CardController) PayInvoice(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	cardID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid card ID",
			Code:  string(domainerror.ErrCodeCardNotFound),
		})
		return
	}

	var req dto.PayInvoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidPaymentAmount),
		})
		return
	}

	input := card.PayInvoiceInput{
		UserID: userID,
		CardID: cardID,
		Year:   req.Year,
		Month:  req.Month,
		Amount: req.Amount,
		PaidAt: time.Now().UTC(),
	}

	output, err := c.payInvoiceUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PayInvoiceResponse{
		InvoiceID:   output.InvoiceID.String(),
		Status:      string(output.Status),
		Outstanding: output.Outstanding,
	})
}

// MonthOverview handles GET /cards/overview requests.
func (c *CardController) MonthOverview(ctx *gin.Context) {
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

	input := card.MonthOverviewInput{
		UserID: userID,
		Year:   year,
		Month:  month,
	}

	output, err := c.overviewUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthOverviewResponse(output))
}

// handleCardError maps card errors to HTTP responses.
func (c *CardController) handleCardError(ctx *gin.Context, err error) {
	var cardErr *domainerror.CardError
	if errors.As(err, &cardErr) {
		ctx.JSON(c.getStatusCodeForCardError(cardErr.Code), dto.ErrorResponse{
			Error: cardErr.Message,
			Code:  string(cardErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForCardError maps card error codes to HTTP status codes.
func (c *CardController) getStatusCodeForCardError(code domainerror.CardErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidClosingDay,
		domainerror.ErrCodeInvalidInstallmentCount,
		domainerror.ErrCodeInvalidChargeAmount,
		domainerror.ErrCodeInvalidCardDueDay,
		domainerror.ErrCodeInvalidCardLimit,
		domainerror.ErrCodeInvalidPaymentAmount:
		return http.StatusBadRequest
	case domainerror.ErrCodeCardNotFound,
		domainerror.ErrCodeInvoiceNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCardAlreadyExists,
		domainerror.ErrCodeCardInactive,
		domainerror.ErrCodeInvoiceAlreadyPaid,
		domainerror.ErrCodePaymentExceedsOutstanding:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
