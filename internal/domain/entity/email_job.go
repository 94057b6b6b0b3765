package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus tracks an email job through the outbox.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailContent is everything a notification email template can show.
// Fields a kind does not use stay empty.
type EmailContent struct {
	RecipientName string `json:"recipient_name"`
	Title         string `json:"title"`
	Message       string `json:"message"`
	GoalTitle     string `json:"goal_title,omitempty"`
	OwnerName     string `json:"owner_name,omitempty"`
	RequesterName string `json:"requester_name,omitempty"`
	Streak        int    `json:"streak,omitempty"`
	Encouragement string `json:"encouragement,omitempty"`
	GoalURL       string `json:"goal_url,omitempty"`
	InboxURL      string `json:"inbox_url,omitempty"`
}

// EmailJob is the outbox entry for the email copy of one notification.
type EmailJob struct {
	ID              uuid.UUID
	NotificationID  uuid.UUID
	Kind            NotificationKind
	RecipientUserID uuid.UUID
	RecipientEmail  string
	Content         EmailContent
	Status          EmailStatus
	Attempts        int
	MaxAttempts     int
	LastError       string
	ProviderID      string
	CreatedAt       time.Time
	ScheduledAt     time.Time
	ProcessedAt     *time.Time
}

// retryDelays[i] is the wait after the (i+1)th failed attempt. The last delay repeats.
var retryDelays = []time.Duration{30 * time.Second, 2 * time.Minute, 10 * time.Minute}

// NewEmailJob queues the email copy of n for recipient, due immediately.
func NewEmailJob(n *Notification, recipient *User, content EmailContent) *EmailJob {
	now := time.Now().UTC()
	content.RecipientName = recipient.Name()
	content.Title = n.Title
	content.Message = n.Message
	return &EmailJob{
		ID:              uuid.New(),
		NotificationID:  n.ID,
		Kind:            n.Kind,
		RecipientUserID: recipient.ID,
		RecipientEmail:  recipient.Email,
		Content:         content,
		Status:          EmailStatusPending,
		MaxAttempts:     len(retryDelays) + 1,
		CreatedAt:       now,
		ScheduledAt:     now,
	}
}

// Subject is the notification title.
func (e *EmailJob) Subject() string {
	return e.Content.Title
}

// MarkProcessing claims the job for the current worker pass.
func (e *EmailJob) MarkProcessing() {
	e.Status = EmailStatusProcessing
}

// MarkSent records a successful delivery.
func (e *EmailJob) MarkSent(providerID string) {
	now := time.Now().UTC()
	e.Status = EmailStatusSent
	e.ProviderID = providerID
	e.ProcessedAt = &now
}

// MarkFailed records a failed attempt. The job ends as failed when the failure is
// permanent or no attempts remain; otherwise it is rescheduled after its backoff.
func (e *EmailJob) MarkFailed(err error, permanent bool) {
	now := time.Now().UTC()
	e.Attempts++
	e.LastError = err.Error()

	if permanent || e.Attempts >= e.MaxAttempts {
		e.Status = EmailStatusFailed
		e.ProcessedAt = &now
		return
	}

	e.Status = EmailStatusPending
	e.ScheduledAt = now.Add(retryDelay(e.Attempts))
}

func retryDelay(attempts int) time.Duration {
	if attempts > len(retryDelays) {
		return retryDelays[len(retryDelays)-1]
	}
	return retryDelays[attempts-1]
}

// IsDue reports whether the job is pending and its scheduled time has come.
func (e *EmailJob) IsDue(now time.Time) bool {
	return e.Status == EmailStatusPending && !now.Before(e.ScheduledAt)
}
