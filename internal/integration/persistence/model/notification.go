package model

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/domain/entity"
)

// NotificationModel represents the notifications table in the database.
type NotificationModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RecipientUserID uuid.UUID  `gorm:"type:uuid;not null;index:idx_notification_recipient"`
	Kind            string     `gorm:"type:varchar(40);not null"`
	Title           string     `gorm:"type:varchar(255);not null"`
	Message         string     `gorm:"type:text;not null"`
	RelatedGoalID   *uuid.UUID `gorm:"type:uuid"`
	RelatedUserID   *uuid.UUID `gorm:"type:uuid"`
	Metadata        string     `gorm:"type:jsonb;not null;default:'{}'"`
	IsRead          bool       `gorm:"not null;default:false;index:idx_notification_recipient"`
	CreatedAt       time.Time  `gorm:"not null"`
}

// TableName returns the table name for the NotificationModel.
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToEntity converts a NotificationModel to a domain Notification entity.
func (m *NotificationModel) ToEntity() *entity.Notification {
	var metadata map[string]interface{}
	if m.Metadata != "" {
		if err := json.Unmarshal([]byte(m.Metadata), &metadata); err != nil {
			slog.Warn("Failed to unmarshal notification metadata", "error", err, "id", m.ID)
		}
	}
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &entity.Notification{
		ID:              m.ID,
		RecipientUserID: m.RecipientUserID,
		Kind:            entity.NotificationKind(m.Kind),
		Title:           m.Title,
		Message:         m.Message,
		RelatedGoalID:   m.RelatedGoalID,
		RelatedUserID:   m.RelatedUserID,
		Metadata:        metadata,
		IsRead:          m.IsRead,
		CreatedAt:       m.CreatedAt,
	}
}

// NotificationFromEntity creates a NotificationModel from a domain Notification entity.
func NotificationFromEntity(n *entity.Notification) *NotificationModel {
	metadata, err := json.Marshal(n.Metadata)
	if err != nil || n.Metadata == nil {
		if err != nil {
			slog.Error("Failed to marshal notification metadata", "error", err, "id", n.ID)
		}
		metadata = []byte("{}")
	}

	return &NotificationModel{
		ID:              n.ID,
		RecipientUserID: n.RecipientUserID,
		Kind:            string(n.Kind),
		Title:           n.Title,
		Message:         n.Message,
		RelatedGoalID:   n.RelatedGoalID,
		RelatedUserID:   n.RelatedUserID,
		Metadata:        string(metadata),
		IsRead:          n.IsRead,
		CreatedAt:       n.CreatedAt,
	}
}
