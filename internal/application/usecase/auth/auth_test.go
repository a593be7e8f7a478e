package auth

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/adapters"
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
	if err := db.AutoMigrate(&model.UserModel{}, &model.RefreshTokenModel{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

type authEnv struct {
	register *RegisterUserUseCase
	login    *LoginUserUseCase
	refresh  *RefreshTokenUseCase
	logout   *LogoutUserUseCase
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()
	db := newTestDB(t)
	userRepo := persistence.NewUserRepository(db)
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(
		"test-secret", 15*time.Minute, 24*time.Hour,
		persistence.NewTokenRepository(db),
	)

	return &authEnv{
		register: NewRegisterUserUseCase(userRepo, passwordService, tokenService),
		login:    NewLoginUserUseCase(userRepo, passwordService, tokenService),
		refresh:  NewRefreshTokenUseCase(tokenService),
		logout:   NewLogoutUserUseCase(tokenService),
	}
}

func registerInput() RegisterUserInput {
	return RegisterUserInput{
		Email:          "user@example.com",
		Name:           "Test User",
		Password:       "Str0ngPassw0rd!",
		InitialBalance: decimal.RequireFromString("1000"),
	}
}

func TestRegisterUser(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	t.Run("registers and issues a token pair", func(t *testing.T) {
		out, err := env.register.Execute(ctx, registerInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.AccessToken == "" || out.RefreshToken == "" {
			t.Error("expected both tokens")
		}
		if !out.User.Balance.Equal(decimal.RequireFromString("1000")) {
			t.Errorf("balance = %s, want the initial 1000", out.User.Balance)
		}
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		_, err := env.register.Execute(ctx, registerInput())
		var authErr *domainerror.AuthError
		if !errors.As(err, &authErr) || authErr.Code != domainerror.ErrCodeEmailExists {
			t.Fatalf("expected email-exists error, got %v", err)
		}
	})

	t.Run("input validation", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*RegisterUserInput)
			code   domainerror.AuthErrorCode
		}{
			{
				name:   "malformed email",
				mutate: func(in *RegisterUserInput) { in.Email = "not-an-email" },
				code:   domainerror.ErrCodeInvalidEmail,
			},
			{
				name:   "weak password",
				mutate: func(in *RegisterUserInput) { in.Password = "short" },
				code:   domainerror.ErrCodeWeakPassword,
			},
			{
				name:   "negative initial balance",
				mutate: func(in *RegisterUserInput) { in.InitialBalance = decimal.RequireFromString("-1") },
				code:   domainerror.ErrCodeInvalidInitialBalance,
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				input := registerInput()
				input.Email = "other@example.com"
				tc.mutate(&input)
				_, err := env.register.Execute(ctx, input)
				var authErr *domainerror.AuthError
				if !errors.As(err, &authErr) || authErr.Code != tc.code {
					t.Fatalf("expected code %s, got %v", tc.code, err)
				}
			})
		}
	})
}

func TestLoginUser(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	if _, err := env.register.Execute(ctx, registerInput()); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		out, err := env.login.Execute(ctx, LoginUserInput{Email: "user@example.com", Password: "Str0ngPassw0rd!"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.AccessToken == "" || out.RefreshToken == "" {
			t.Error("expected both tokens")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := env.login.Execute(ctx, LoginUserInput{Email: "user@example.com", Password: "WrongPassw0rd!"})
		var authErr *domainerror.AuthError
		if !errors.As(err, &authErr) || authErr.Code != domainerror.ErrCodeInvalidCredentials {
			t.Fatalf("expected invalid-credentials error, got %v", err)
		}
	})

	t.Run("unknown email gets the same generic error", func(t *testing.T) {
		_, err := env.login.Execute(ctx, LoginUserInput{Email: "ghost@example.com", Password: "Str0ngPassw0rd!"})
		var authErr *domainerror.AuthError
		if !errors.As(err, &authErr) || authErr.Code != domainerror.ErrCodeInvalidCredentials {
			t.Fatalf("expected invalid-credentials error, got %v", err)
		}
	})
}

func TestRefreshToken_RotatesThePair(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	registered, err := env.register.Execute(ctx, registerInput())
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	refreshed, err := env.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: registered.RefreshToken})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refreshed.RefreshToken == registered.RefreshToken {
		t.Error("expected a rotated refresh token")
	}

	// The old token was invalidated by the rotation.
	_, err = env.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: registered.RefreshToken})
	var authErr *domainerror.AuthError
	if !errors.As(err, &authErr) || authErr.Code != domainerror.ErrCodeInvalidToken {
		t.Fatalf("expected invalid-token error for the used token, got %v", err)
	}

	_, err = env.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: "garbage"})
	if !errors.As(err, &authErr) || authErr.Code != domainerror.ErrCodeInvalidToken {
		t.Fatalf("expected invalid-token error for garbage, got %v", err)
	}
}

func TestLogoutUser_IsIdempotent(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	registered, err := env.register.Execute(ctx, registerInput())
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	if _, err := env.logout.Execute(ctx, LogoutUserInput{RefreshToken: registered.RefreshToken}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Logged-out tokens no longer refresh.
	_, err = env.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: registered.RefreshToken})
	var authErr *domainerror.AuthError
	if !errors.As(err, &authErr) || authErr.Code != domainerror.ErrCodeInvalidToken {
		t.Fatalf("expected invalid-token error after logout, got %v", err)
	}

	// Logging out twice is fine.
	if _, err := env.logout.Execute(ctx, LogoutUserInput{RefreshToken: registered.RefreshToken}); err != nil {
		t.Fatalf("second logout should succeed, got %v", err)
	}
}
