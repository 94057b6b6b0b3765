// Package notification contains notification-related use cases.
package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/domain/entity"
)

// Dispatcher persists notifications produced by the rule engine and queues their
// email copies for recipients who opted in.
type Dispatcher struct {
	notificationRepo adapter.NotificationRepository
	userRepo         adapter.UserRepository
	emailService     adapter.EmailService
}

// NewDispatcher creates a new Dispatcher. emailService may be nil to disable emails.
func NewDispatcher(
	notificationRepo adapter.NotificationRepository,
	userRepo adapter.UserRepository,
	emailService adapter.EmailService,
) *Dispatcher {
	return &Dispatcher{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		emailService:     emailService,
	}
}

// Dispatch stores the notifications. Email queueing is best effort: failures are
// logged and never undo the in-app delivery.
func (d *Dispatcher) Dispatch(ctx context.Context, notifications []*entity.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	if err := d.notificationRepo.CreateBatch(ctx, notifications); err != nil {
		return fmt.Errorf("failed to store notifications: %w", err)
	}

	if d.emailService == nil {
		return nil
	}

	recipientIDs := make([]uuid.UUID, 0, len(notifications))
	for _, n := range notifications {
		if n.IsEmailable() {
			recipientIDs = append(recipientIDs, n.RecipientUserID)
		}
	}
	if len(recipientIDs) == 0 {
		return nil
	}

	recipients, err := d.userRepo.FindByIDs(ctx, recipientIDs)
	if err != nil {
		slog.Warn("Failed to load notification recipients for email", "error", err)
		return nil
	}

	for _, n := range notifications {
		if !n.IsEmailable() {
			continue
		}

		recipient, ok := recipients[n.RecipientUserID]
		if !ok || !recipient.EmailNotifications {
			continue
		}

		err := d.emailService.QueueNotificationEmail(ctx, n, recipient)
		if err != nil {
			slog.Warn("Failed to queue notification email",
				"notification_id", n.ID,
				"recipient_id", n.RecipientUserID,
				"error", err,
			)
		}
	}

	return nil
}
