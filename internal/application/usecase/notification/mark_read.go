package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
)

// MarkReadInput represents the input for marking one notification as read.
type MarkReadInput struct {
	UserID         uuid.UUID
	NotificationID uuid.UUID
}

// MarkReadUseCase marks a single notification as read.
type MarkReadUseCase struct {
	notificationRepo adapter.NotificationRepository
}

// NewMarkReadUseCase creates a new MarkReadUseCase instance.
func NewMarkReadUseCase(notificationRepo adapter.NotificationRepository) *MarkReadUseCase {
	return &MarkReadUseCase{notificationRepo: notificationRepo}
}

// Execute marks the notification as read. Marking an already read notification is a no-op.
func (uc *MarkReadUseCase) Execute(ctx context.Context, input MarkReadInput) (*entity.Notification, error) {
	n, err := uc.notificationRepo.FindByID(ctx, input.NotificationID)
	if err != nil {
		if errors.Is(err, domainerror.ErrNotificationNotFound) {
			return nil, domainerror.NewNotificationError(
				domainerror.ErrCodeNotificationNotFound,
				"notification not found",
				domainerror.ErrNotificationNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}

	if n.RecipientUserID != input.UserID {
		return nil, domainerror.NewNotificationError(
			domainerror.ErrCodeNotNotificationRecipient,
			"notification belongs to another user",
			domainerror.ErrNotNotificationRecipient,
		)
	}

	if n.IsRead {
		return n, nil
	}

	if err := uc.notificationRepo.MarkRead(ctx, n.ID); err != nil {
		return nil, fmt.Errorf("failed to mark notification as read: %w", err)
	}
	n.MarkRead()

	return n, nil
}

// MarkAllReadUseCase marks every notification of a user as read.
type MarkAllReadUseCase struct {
	notificationRepo adapter.NotificationRepository
}

// NewMarkAllReadUseCase creates a new MarkAllReadUseCase instance.
func NewMarkAllReadUseCase(notificationRepo adapter.NotificationRepository) *MarkAllReadUseCase {
	return &MarkAllReadUseCase{notificationRepo: notificationRepo}
}

// Execute returns the number of notifications that changed.
func (uc *MarkAllReadUseCase) Execute(ctx context.Context, userID uuid.UUID) (int64, error) {
	updated, err := uc.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return updated, nil
}
