// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind represents the kind of an in-app notification.
type NotificationKind string

const (
	NotificationGoalCompleted         NotificationKind = "goal_completed"
	NotificationGoalMissed            NotificationKind = "goal_missed"
	NotificationStreakMilestone       NotificationKind = "streak_milestone"
	NotificationAccountabilityRequest NotificationKind = "accountability_request"
	NotificationReminder              NotificationKind = "reminder"
	NotificationPartnerUpdate         NotificationKind = "partner_update"
)

// Notification metadata keys.
const (
	MetaOwnerName     = "owner_name"
	MetaGoalTitle     = "goal_title"
	MetaStreak        = "streak"
	MetaRequesterName = "requester_name"
	MetaEncouragement = "encouragement"
)

// Notification represents a message delivered to a user.
type Notification struct {
	ID              uuid.UUID
	RecipientUserID uuid.UUID
	Kind            NotificationKind
	Title           string
	Message         string
	RelatedGoalID   *uuid.UUID
	RelatedUserID   *uuid.UUID
	Metadata        map[string]interface{}
	IsRead          bool
	CreatedAt       time.Time
}

// NewNotification creates a new unread Notification entity.
func NewNotification(recipientID uuid.UUID, kind NotificationKind, title, message string) *Notification {
	return &Notification{
		ID:              uuid.New(),
		RecipientUserID: recipientID,
		Kind:            kind,
		Title:           title,
		Message:         message,
		Metadata:        make(map[string]interface{}),
		CreatedAt:       time.Now().UTC(),
	}
}

// WithGoal sets the related goal.
func (n *Notification) WithGoal(goalID uuid.UUID) *Notification {
	id := goalID
	n.RelatedGoalID = &id
	return n
}

// WithUser sets the related user.
func (n *Notification) WithUser(userID uuid.UUID) *Notification {
	id := userID
	n.RelatedUserID = &id
	return n
}

// MarkRead marks the notification as read.
func (n *Notification) MarkRead() {
	n.IsRead = true
}

// IsEmailable reports whether this kind of notification is also delivered by email.
func (n *Notification) IsEmailable() bool {
	switch n.Kind {
	case NotificationPartnerUpdate, NotificationAccountabilityRequest, NotificationStreakMilestone:
		return true
	default:
		return false
	}
}
