// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/personal-ledger/backend/internal/application/adapter"
)

// notificationService implements adapter.NotificationService by emailing the
// user through Resend. A disabled service is a silent no-op, which keeps the
// alert path working in environments without an API key.
type notificationService struct {
	client    *resend.Client
	userRepo  adapter.UserRepository
	fromName  string
	fromEmail string
	enabled   bool
}

// NewNotificationService creates a new notification service instance.
func NewNotificationService(apiKey, fromName, fromEmail string, enabled bool, userRepo adapter.UserRepository) adapter.NotificationService {
	return &notificationService{
		client:    resend.NewClient(apiKey),
		userRepo:  userRepo,
		fromName:  fromName,
		fromEmail: fromEmail,
		enabled:   enabled && apiKey != "",
	}
}

// Notify sends the notification to the user's email address.
func (s *notificationService) Notify(ctx context.Context, notification adapter.Notification) error {
	if !s.enabled {
		return nil
	}

	user, err := s.userRepo.FindByID(ctx, notification.UserID)
	if err != nil {
		return fmt.Errorf("failed to resolve notification recipient: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail),
		To:      []string{user.Email},
		Subject: notification.Title,
		Text:    notification.Message,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}
	return nil
}

var _ adapter.NotificationService = (*notificationService)(nil)
