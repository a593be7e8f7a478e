package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/personal-ledger/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=50"`
	Color       string          `json:"color,omitempty"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
}

// UpdateCategoryLimitRequest represents the request body for changing a
// category's monthly limit.
type UpdateCategoryLimitRequest struct {
	LimitAmount decimal.Decimal `json:"limit_amount"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Color       string          `json:"color"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          cat.ID.String(),
		Name:        cat.Name,
		Color:       cat.Color,
		LimitAmount: cat.LimitAmount,
		Active:      cat.Active,
		CreatedAt:   cat.CreatedAt,
		UpdatedAt:   cat.UpdatedAt,
	}
}

// ToCategoryListResponse converts a list of categories to CategoryListResponse.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	out := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		out[i] = ToCategoryResponse(cat)
	}
	return CategoryListResponse{Categories: out}
}
