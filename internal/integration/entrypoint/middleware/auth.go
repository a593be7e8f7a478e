// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/personal-ledger/backend/internal/application/adapter"
	domainerror "github.com/personal-ledger/backend/internal/domain/error"
	"github.com/personal-ledger/backend/internal/integration/entrypoint/dto"
)

// Keys under which the authenticated identity is stored on the Gin context.
// Every ledger route runs behind Authenticate, so controllers read the user
// through GetUserIDFromContext instead of parsing tokens themselves.
const (
	ctxUserIDKey    = "auth.user_id"
	ctxUserEmailKey = "auth.user_email"
)

// AuthMiddleware guards ledger routes with JWT access tokens.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate validates the bearer token and stores the caller's identity
// on the context. Requests without a valid access token never reach the
// controller.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, errCode := bearerToken(c)
		if errCode != "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Missing or malformed authorization header",
				Code:  string(errCode),
			})
			c.Abort()
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid or expired token",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxUserEmailKey, claims.Email)

		c.Next()
	}
}

// bearerToken pulls the token out of the Authorization header. The returned
// code distinguishes an absent header from a malformed one.
func bearerToken(c *gin.Context) (string, domainerror.AuthErrorCode) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", domainerror.ErrCodeMissingToken
	}
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return "", domainerror.ErrCodeInvalidToken
	}
	if token == "" {
		return "", domainerror.ErrCodeMissingToken
	}
	return token, ""
}

// GetUserIDFromContext extracts the authenticated user's ID from the Gin
// context. The second return is false on routes that skipped Authenticate.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

// GetUserEmailFromContext extracts the authenticated user's email from the
// Gin context.
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(ctxUserEmailKey)
	if !exists {
		return "", false
	}
	email, ok := value.(string)
	return email, ok
}
