// Package email queues notification emails and delivers them through Resend.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/commitly/backend/internal/application/adapter"
	domainerror "github.com/commitly/backend/internal/domain/error"
)

// ResendClient delivers email through the Resend API.
type ResendClient struct {
	client *resend.Client
	from   string
}

func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client: resend.NewClient(apiKey),
		from:   fmt.Sprintf("%s <%s>", fromName, fromEmail),
	}
}

// Send returns the Resend message id. Failures are MAIL-020001 when Resend rejected
// the request and MAIL-020002 when a retry may succeed.
func (c *ResendClient) Send(ctx context.Context, email adapter.OutgoingEmail) (string, error) {
	to := email.To
	if email.Name != "" {
		to = fmt.Sprintf("%s <%s>", email.Name, email.To)
	}

	resp, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	})
	if err != nil {
		if rejected(err) {
			return "", domainerror.NewEmailError(domainerror.ErrCodeDeliveryPermanent, "email rejected by provider", err)
		}
		return "", domainerror.NewEmailError(domainerror.ErrCodeDeliveryTemporary, "email delivery failed", err)
	}

	return resp.Id, nil
}

var rejectionMarkers = []string{"401", "403", "422", "unauthorized", "forbidden", "validation", "invalid", "bad request"}

// rejected reports whether the error is an auth or validation failure. Rate limits are never rejections.
func rejected(err error) bool {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") {
		return false
	}
	for _, marker := range rejectionMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

var _ adapter.EmailSender = (*ResendClient)(nil)
