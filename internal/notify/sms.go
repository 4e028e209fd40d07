package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSender sends SMS through the Twilio REST API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

var _ SMSSender = (*TwilioSender)(nil)

func NewTwilioSender(accountSID, authToken, fromNumber string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: fromNumber,
	}
}

func (s *TwilioSender) Send(_ context.Context, to, body string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio: %w", err)
	}
	return nil
}

// ConsoleSMSSender logs messages instead of sending them. Default when no
// Twilio credentials are configured.
type ConsoleSMSSender struct{}

var _ SMSSender = ConsoleSMSSender{}

func (ConsoleSMSSender) Send(_ context.Context, to, body string) error {
	log.Printf("[sms:console] to=%s body=%q", to, body)
	return nil
}
