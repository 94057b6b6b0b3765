package adapter

import (
	"context"

	"github.com/commitly/backend/internal/domain/entity"
)

// OutgoingEmail is a rendered message ready for the provider.
type OutgoingEmail struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// EmailSender delivers rendered emails. Implementations return the provider's message ID.
type EmailSender interface {
	Send(ctx context.Context, email OutgoingEmail) (string, error)
}

// EmailService turns in-app notifications into queued emails.
type EmailService interface {
	// QueueNotificationEmail queues the email copy of n once. Kinds without an email are skipped.
	QueueNotificationEmail(ctx context.Context, n *entity.Notification, recipient *entity.User) error
}
