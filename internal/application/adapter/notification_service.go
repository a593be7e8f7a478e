// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// Notification is a best-effort message pushed to the user when an alert is
// created. Delivery failures are logged and swallowed, never propagated.
type Notification struct {
	UserID  uuid.UUID
	Title   string
	Message string
}

// NotificationService delivers alert notifications to users.
type NotificationService interface {
	// Notify sends the notification to the user's configured channel.
	Notify(ctx context.Context, notification Notification) error
}
