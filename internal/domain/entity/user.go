// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents an account holder in the Personal Ledger system.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Balance      decimal.Decimal // Current balance, debited by ledger side effects
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User with the given initial balance.
func NewUser(email, name, passwordHash string, initialBalance decimal.Decimal) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Balance:      initialBalance,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
