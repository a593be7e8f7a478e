package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/usecase/fixedbill"
	"github.com/personal-ledger/backend/internal/domain/entity"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/middleware"
)

// FixedBillController handles fixed-bill endpoints.
type FixedBillController struct {
	createUseCase   *fixedbill.CreateFixedBillUseCase
	listUseCase     *fixedbill.ListFixedBillsUseCase
	toggleUseCase   *fixedbill.ToggleFixedBillUseCase
	overviewUseCase *fixedbill.FixedBillOverviewUseCase
}

// NewFixedBillController creates a new fixed-bill controller instance.
func NewFixedBillController(
	createUseCase *fixedbill.CreateFixedBillUseCase,
	listUseCase *fixedbill.ListFixedBillsUseCase,
	toggleUseCase *fixedbill.ToggleFixedBillUseCase,
	overviewUseCase *fixedbill.FixedBillOverviewUseCase,
) *FixedBillController {
	return &FixedBillController{
		createUseCase:   createUseCase,
		listUseCase:     listUseCase,
		toggleUseCase:   toggleUseCase,
		overviewUseCase: overviewUseCase,
	}
}

// Create handles POST /fixed-bills requests.
func (c *FixedBillController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateFixedBillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidBillTitle),
		})
		return
	}

	input := fixedbill.CreateFixedBillInput{
		UserID:      userID,
		Kind:        entity.FixedBillKind(req.Kind),
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		DueDay:      req.DueDay,
		Recurrence:  entity.BillRecurrence(req.Recurrence),
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleFixedBillError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToFixedBillResponse(output.Bill))
}

// List handles GET /fixed-bills requests. The only_active query flag
// restricts the listing to bills that still count toward the totals.
func (c *FixedBillController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	onlyActive := ctx.Query("only_active") == "true"

	bills, err := c.listUseCase.Execute(ctx.Request.Context(), userID, onlyActive)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve fixed bills",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFixedBillListResponse(bills))
}

// Toggle handles PATCH /fixed-bills/:id/active requests.
func (c *FixedBillController) Toggle(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	billID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid fixed bill ID",
			Code:  string(domainerror.ErrCodeFixedBillNotFound),
		})
		return
	}

	var req dto.ToggleFixedBillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeFixedBillNotFound),
		})
		return
	}

	input := fixedbill.ToggleFixedBillInput{
		UserID: userID,
		BillID: billID,
		Active: *req.Active,
	}

	if err := c.toggleUseCase.Execute(ctx.Request.Context(), input); err != nil {
		c.handleFixedBillError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Fixed bill status updated",
	})
}

// Overview handles GET /fixed-bills/overview requests.
func (c *FixedBillController) Overview(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	overview, err := c.overviewUseCase.Execute(ctx.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to build fixed bill overview",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFixedBillOverviewResponse(overview))
}

// handleFixedBillError maps fixed-bill errors to HTTP responses.
func (c *FixedBillController) handleFixedBillError(ctx *gin.Context, err error) {
	var billErr *domainerror.FixedBillError
	if errors.As(err, &billErr) {
		statusCode := http.StatusBadRequest
		if billErr.Code == domainerror.ErrCodeFixedBillNotFound {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: billErr.Message,
			Code:  string(billErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
