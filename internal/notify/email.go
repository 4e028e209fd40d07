package notify

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendgridSender sends mail through the SendGrid v3 API. Any status outside
// the 2xx range counts as a failure.
type SendgridSender struct {
	client    *sendgrid.Client
	from      *sgmail.Email
	fromEmail string
}

var _ EmailSender = (*SendgridSender)(nil)

func NewSendgridSender(apiKey, fromName, fromEmail string) *SendgridSender {
	return &SendgridSender{
		client:    sendgrid.NewSendClient(apiKey),
		from:      sgmail.NewEmail(fromName, fromEmail),
		fromEmail: fromEmail,
	}
}

func (s *SendgridSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := sgmail.NewSingleEmail(s.from, subject, sgmail.NewEmail("", to), "", htmlBody)

	resp, err := s.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// ConsoleEmailSender logs messages instead of sending them. Default when no
// SendGrid key is configured.
type ConsoleEmailSender struct{}

var _ EmailSender = ConsoleEmailSender{}

func (ConsoleEmailSender) Send(_ context.Context, to, subject, _ string) error {
	log.Printf("[email:console] to=%s subject=%q", to, subject)
	return nil
}
