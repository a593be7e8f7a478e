package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
)

// staticTokenService accepts a single known access token.
type staticTokenService struct {
	validToken string
	userID     uuid.UUID
	email      string
}

func (s *staticTokenService) GenerateTokenPair(context.Context, uuid.UUID, string) (*adapter.TokenPair, error) {
	return nil, errors.New("not implemented")
}

func (s *staticTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if token != s.validToken {
		return nil, errors.New("invalid token")
	}
	return &adapter.TokenClaims{UserID: s.userID, Email: s.email}, nil
}

func (s *staticTokenService) ValidateRefreshToken(context.Context, string) (*adapter.TokenClaims, error) {
	return nil, errors.New("not implemented")
}

func (s *staticTokenService) InvalidateRefreshToken(context.Context, string) error {
	return nil
}

func (s *staticTokenService) InvalidateAllUserTokens(context.Context, uuid.UUID) error {
	return nil
}

func newAuthTestRouter(tokenService adapter.TokenService) (*gin.Engine, *uuid.UUID) {
	gin.SetMode(gin.TestMode)
	var seenUserID uuid.UUID

	engine := gin.New()
	engine.GET("/protected", NewAuthMiddleware(tokenService).Authenticate(), func(c *gin.Context) {
		id, ok := GetUserIDFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		seenUserID = id
		c.Status(http.StatusOK)
	})
	return engine, &seenUserID
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()
	service := &staticTokenService{
		validToken: "good-token",
		userID:     userID,
		email:      "ana@example.com",
	}
	engine, seenUserID := newAuthTestRouter(service)

	doRequest := func(authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		return rec
	}

	t.Run("passes a valid bearer token through", func(t *testing.T) {
		rec := doRequest("Bearer good-token")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if *seenUserID != userID {
			t.Errorf("handler saw user %s, want %s", *seenUserID, userID)
		}
	})

	t.Run("rejects requests without credentials", func(t *testing.T) {
		cases := []struct {
			name   string
			header string
		}{
			{name: "no header", header: ""},
			{name: "non-bearer scheme", header: "Basic abc"},
			{name: "empty bearer token", header: "Bearer "},
			{name: "unknown token", header: "Bearer forged"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				rec := doRequest(tc.header)
				if rec.Code != http.StatusUnauthorized {
					t.Fatalf("status = %d, want 401", rec.Code)
				}
			})
		}
	})
}

func TestGetUserIDFromContext_WithoutAuthentication(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if _, ok := GetUserIDFromContext(c); ok {
		t.Error("expected no user on an unauthenticated context")
	}
}

func TestRateLimiter(t *testing.T) {
	t.Run("allows up to the limit and rejects beyond it", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(3, time.Minute)
		for i := 0; i < 3; i++ {
			if !rl.take("10.0.0.1") {
				t.Fatalf("attempt %d should be allowed", i+1)
			}
		}
		if rl.take("10.0.0.1") {
			t.Error("attempt over the limit should be rejected")
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(1, time.Minute)
		if !rl.take("10.0.0.1") {
			t.Fatal("first client should be allowed")
		}
		if !rl.take("10.0.0.2") {
			t.Error("a different client should have its own window")
		}
	})

	t.Run("a fresh window opens after the reset", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(1, 10*time.Millisecond)
		if !rl.take("10.0.0.1") {
			t.Fatal("first attempt should be allowed")
		}
		if rl.take("10.0.0.1") {
			t.Fatal("second attempt inside the window should be rejected")
		}
		time.Sleep(15 * time.Millisecond)
		if !rl.take("10.0.0.1") {
			t.Error("attempt after the window reset should be allowed")
		}
	})

	t.Run("cleanup drops only expired windows", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(1, 10*time.Millisecond)
		rl.take("old-client")
		time.Sleep(15 * time.Millisecond)
		rl.take("new-client")
		rl.Cleanup()

		rl.mu.Lock()
		_, oldKept := rl.windows["old-client"]
		_, newKept := rl.windows["new-client"]
		rl.mu.Unlock()

		if oldKept {
			t.Error("expired window should have been dropped")
		}
		if !newKept {
			t.Error("live window should have been kept")
		}
	})
}
