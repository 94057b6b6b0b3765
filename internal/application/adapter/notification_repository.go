package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/domain/entity"
)

// NotificationRepository defines the interface for notification persistence.
type NotificationRepository interface {
	// CreateBatch stores several notifications at once.
	CreateBatch(ctx context.Context, notifications []*entity.Notification) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)

	// FindByRecipient returns a user's notifications, newest first.
	FindByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit int) ([]*entity.Notification, error)

	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)

	MarkRead(ctx context.Context, id uuid.UUID) error

	// MarkAllRead marks every unread notification of a user as read and returns how many changed.
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
}
