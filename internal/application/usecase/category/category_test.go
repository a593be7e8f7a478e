package category

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

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
	if err := db.AutoMigrate(&model.UserModel{}, &model.CategoryModel{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateCategory(t *testing.T) {
	repo := persistence.NewCategoryRepository(newTestDB(t))
	create := NewCreateCategoryUseCase(repo)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates with a trimmed name and default color", func(t *testing.T) {
		out, err := create.Execute(ctx, CreateCategoryInput{
			UserID:      userID,
			Name:        "  Food ",
			LimitAmount: dec("300"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Category.Name != "Food" {
			t.Errorf("name = %q, want trimmed Food", out.Category.Name)
		}
		if out.Category.Color == "" {
			t.Error("expected a default color")
		}
		if !out.Category.Active {
			t.Error("new category should be active")
		}
	})

	t.Run("rejects a duplicate active name", func(t *testing.T) {
		_, err := create.Execute(ctx, CreateCategoryInput{UserID: userID, Name: "Food"})
		var catErr *domainerror.CategoryError
		if !errors.As(err, &catErr) || catErr.Code != domainerror.ErrCodeDuplicateCategory {
			t.Fatalf("expected duplicate-category error, got %v", err)
		}
	})

	t.Run("the same name is free for another user", func(t *testing.T) {
		if _, err := create.Execute(ctx, CreateCategoryInput{UserID: uuid.New(), Name: "Food"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects blank names and negative limits", func(t *testing.T) {
		_, err := create.Execute(ctx, CreateCategoryInput{UserID: userID, Name: "   "})
		var catErr *domainerror.CategoryError
		if !errors.As(err, &catErr) || catErr.Code != domainerror.ErrCodeInvalidCategoryName {
			t.Fatalf("expected invalid-name error, got %v", err)
		}

		_, err = create.Execute(ctx, CreateCategoryInput{UserID: userID, Name: "Travel", LimitAmount: dec("-5")})
		if !errors.As(err, &catErr) || catErr.Code != domainerror.ErrCodeInvalidCategoryLimit {
			t.Fatalf("expected invalid-limit error, got %v", err)
		}
	})
}

func TestUpdateCategoryLimit(t *testing.T) {
	repo := persistence.NewCategoryRepository(newTestDB(t))
	create := NewCreateCategoryUseCase(repo)
	update := NewUpdateCategoryLimitUseCase(repo)
	list := NewListCategoriesUseCase(repo)
	ctx := context.Background()
	userID := uuid.New()

	out, err := create.Execute(ctx, CreateCategoryInput{UserID: userID, Name: "Food", LimitAmount: dec("300")})
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	t.Run("overwrites the limit", func(t *testing.T) {
		err := update.Execute(ctx, UpdateCategoryLimitInput{UserID: userID, CategoryID: out.Category.ID, Limit: dec("450")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		categories, err := list.Execute(ctx, userID)
		if err != nil {
			t.Fatalf("failed to list categories: %v", err)
		}
		if len(categories) != 1 {
			t.Fatalf("expected 1 category, got %d", len(categories))
		}
		if !categories[0].LimitAmount.Equal(dec("450")) {
			t.Errorf("limit = %s, want 450", categories[0].LimitAmount)
		}
	})

	t.Run("zero disables the limit", func(t *testing.T) {
		err := update.Execute(ctx, UpdateCategoryLimitInput{UserID: userID, CategoryID: out.Category.ID, Limit: decimal.Zero})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects a negative limit", func(t *testing.T) {
		err := update.Execute(ctx, UpdateCategoryLimitInput{UserID: userID, CategoryID: out.Category.ID, Limit: dec("-1")})
		var catErr *domainerror.CategoryError
		if !errors.As(err, &catErr) || catErr.Code != domainerror.ErrCodeInvalidCategoryLimit {
			t.Fatalf("expected invalid-limit error, got %v", err)
		}
	})

	t.Run("another user's category is not found", func(t *testing.T) {
		err := update.Execute(ctx, UpdateCategoryLimitInput{UserID: uuid.New(), CategoryID: out.Category.ID, Limit: dec("100")})
		if !errors.Is(err, domainerror.ErrCategoryNotFound) {
			var expErr *domainerror.ExpenseError
			if !errors.As(err, &expErr) || expErr.Code != domainerror.ErrCodeCategoryNotFound {
				t.Fatalf("expected category-not-found error, got %v", err)
			}
		}
	})
}
