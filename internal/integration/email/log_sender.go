package email

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
)

// LogSender writes emails to the log instead of delivering them. It stands in for
// Resend when no API key is configured.
type LogSender struct{}

// Send logs the email and returns a synthetic provider id.
func (LogSender) Send(_ context.Context, email adapter.OutgoingEmail) (string, error) {
	id := "log-" + uuid.NewString()
	slog.Info("Email delivery disabled, logging instead", "id", id, "to", email.To, "subject", email.Subject)
	return id, nil
}

var _ adapter.EmailSender = LogSender{}
