package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/domain/entity"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// ListNotificationsInput represents the input for listing notifications.
type ListNotificationsInput struct {
	UserID     uuid.UUID
	UnreadOnly bool
	Limit      int
}

// ListNotificationsOutput represents the output of listing notifications.
type ListNotificationsOutput struct {
	Notifications []*entity.Notification
	UnreadCount   int64
}

// ListNotificationsUseCase returns the caller's notifications, newest first.
type ListNotificationsUseCase struct {
	notificationRepo adapter.NotificationRepository
}

// NewListNotificationsUseCase creates a new ListNotificationsUseCase instance.
func NewListNotificationsUseCase(notificationRepo adapter.NotificationRepository) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{notificationRepo: notificationRepo}
}

// Execute performs the listing.
func (uc *ListNotificationsUseCase) Execute(ctx context.Context, input ListNotificationsInput) (*ListNotificationsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	notifications, err := uc.notificationRepo.FindByRecipient(ctx, input.UserID, input.UnreadOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	unread, err := uc.notificationRepo.CountUnread(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return &ListNotificationsOutput{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

// UnreadCountUseCase returns how many unread notifications a user has.
type UnreadCountUseCase struct {
	notificationRepo adapter.NotificationRepository
}

// NewUnreadCountUseCase creates a new UnreadCountUseCase instance.
func NewUnreadCountUseCase(notificationRepo adapter.NotificationRepository) *UnreadCountUseCase {
	return &UnreadCountUseCase{notificationRepo: notificationRepo}
}

// Execute counts unread notifications.
func (uc *UnreadCountUseCase) Execute(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := uc.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
