package model

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/domain/entity"
)

// EmailQueueModel is one row of the email outbox.
type EmailQueueModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	NotificationID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Kind            string     `gorm:"type:varchar(40);not null"`
	RecipientUserID uuid.UUID  `gorm:"type:uuid;not null;index"`
	RecipientEmail  string     `gorm:"type:varchar(255);not null"`
	Content         string     `gorm:"type:jsonb;not null;default:'{}'"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending';index:idx_email_queue_due"`
	Attempts        int        `gorm:"not null;default:0"`
	MaxAttempts     int        `gorm:"not null"`
	LastError       string     `gorm:"type:text"`
	ProviderID      string     `gorm:"type:varchar(100)"`
	CreatedAt       time.Time  `gorm:"not null"`
	ScheduledAt     time.Time  `gorm:"not null;index:idx_email_queue_due"`
	ProcessedAt     *time.Time `gorm:"index"`
}

// TableName returns the table name for the EmailQueueModel.
func (EmailQueueModel) TableName() string {
	return "email_queue"
}

// ToEntity converts the row to a domain EmailJob. Unreadable content yields an empty payload.
func (m *EmailQueueModel) ToEntity() *entity.EmailJob {
	var content entity.EmailContent
	if err := json.Unmarshal([]byte(m.Content), &content); err != nil {
		slog.Warn("Failed to decode email content", "error", err, "job_id", m.ID)
	}

	return &entity.EmailJob{
		ID:              m.ID,
		NotificationID:  m.NotificationID,
		Kind:            entity.NotificationKind(m.Kind),
		RecipientUserID: m.RecipientUserID,
		RecipientEmail:  m.RecipientEmail,
		Content:         content,
		Status:          entity.EmailStatus(m.Status),
		Attempts:        m.Attempts,
		MaxAttempts:     m.MaxAttempts,
		LastError:       m.LastError,
		ProviderID:      m.ProviderID,
		CreatedAt:       m.CreatedAt,
		ScheduledAt:     m.ScheduledAt,
		ProcessedAt:     m.ProcessedAt,
	}
}

// EmailQueueModelFromEntity converts a domain EmailJob to its row.
func EmailQueueModelFromEntity(job *entity.EmailJob) (*EmailQueueModel, error) {
	content, err := json.Marshal(job.Content)
	if err != nil {
		return nil, err
	}

	return &EmailQueueModel{
		ID:              job.ID,
		NotificationID:  job.NotificationID,
		Kind:            string(job.Kind),
		RecipientUserID: job.RecipientUserID,
		RecipientEmail:  job.RecipientEmail,
		Content:         string(content),
		Status:          string(job.Status),
		Attempts:        job.Attempts,
		MaxAttempts:     job.MaxAttempts,
		LastError:       job.LastError,
		ProviderID:      job.ProviderID,
		CreatedAt:       job.CreatedAt,
		ScheduledAt:     job.ScheduledAt,
		ProcessedAt:     job.ProcessedAt,
	}, nil
}
