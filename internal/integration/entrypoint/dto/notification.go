package dto

import (
	"time"

	"github.com/commitly/backend/internal/domain/entity"
)

// NotificationResponse represents a notification in API responses.
type NotificationResponse struct {
	ID            string                 `json:"id"`
	Kind          string                 `json:"kind"`
	Title         string                 `json:"title"`
	Message       string                 `json:"message"`
	RelatedGoalID *string                `json:"related_goal_id,omitempty"`
	RelatedUserID *string                `json:"related_user_id,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
	IsRead        bool                   `json:"is_read"`
	CreatedAt     time.Time              `json:"created_at"`
}

// NotificationListResponse represents the response for listing notifications.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
}

// UnreadCountResponse represents the unread notification counter.
type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

// MarkAllReadResponse reports how many notifications were marked as read.
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// ToNotificationResponse converts a domain Notification to a NotificationResponse DTO.
func ToNotificationResponse(n *entity.Notification) NotificationResponse {
	response := NotificationResponse{
		ID:        n.ID.String(),
		Kind:      string(n.Kind),
		Title:     n.Title,
		Message:   n.Message,
		Metadata:  n.Metadata,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if n.RelatedGoalID != nil {
		id := n.RelatedGoalID.String()
		response.RelatedGoalID = &id
	}
	if n.RelatedUserID != nil {
		id := n.RelatedUserID.String()
		response.RelatedUserID = &id
	}
	return response
}

// ToNotificationListResponse converts notifications to a NotificationListResponse.
func ToNotificationListResponse(notifications []*entity.Notification, unread int64) NotificationListResponse {
	items := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		items[i] = ToNotificationResponse(n)
	}
	return NotificationListResponse{
		Notifications: items,
		UnreadCount:   unread,
	}
}
