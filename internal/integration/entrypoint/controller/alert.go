package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/personal-ledger/backend/internal/application/usecase/alert"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/middleware"
)

// AlertController handles alert endpoints.
type AlertController struct {
	listUseCase *alert.ListAlertsUseCase
}

// NewAlertController creates a new alert controller instance.
func NewAlertController(listUseCase *alert.ListAlertsUseCase) *AlertController {
	return &AlertController{listUseCase: listUseCase}
}

// List handles GET /alerts requests.
func (c *AlertController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), alert.ListAlertsInput{UserID: userID})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve alerts",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAlertListResponse(output.Alerts))
}
