package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/savageut/scheduler-backend/internal/scheduling/domain"
)

// EmailSender delivers one rendered HTML message.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMSSender delivers one text message.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// Dispatcher sends confirmation, update and reminder notifications on a
// best-effort basis. Channel failures are logged and swallowed; the mutation
// that triggered the event has already committed and stays committed.
type Dispatcher struct {
	email EmailSender
	sms   SMSSender
}

func NewDispatcher(email EmailSender, sms SMSSender) *Dispatcher {
	return &Dispatcher{email: email, sms: sms}
}

// Dispatch routes a committed mutation to the right message pair. Deletes
// produce no customer-facing message.
func (d *Dispatcher) Dispatch(ctx context.Context, evt domain.Event) error {
	switch evt.Type {
	case domain.EventCreated:
		d.Confirmation(ctx, evt.Project, evt.Customer)
	case domain.EventUpdated:
		d.Update(ctx, evt.Project, evt.Customer)
	}
	return nil
}

func (d *Dispatcher) Confirmation(ctx context.Context, p domain.Project, c domain.Customer) {
	d.sendEmail(ctx, eventConfirmation, p, c)
	d.sendSMS(ctx, c, fmt.Sprintf(
		"Hello %s, your project with Savage Concrete is scheduled for %s at %s. "+
			"Please ensure the area is accessible. Contact us with any questions.",
		c.Name, p.Date.Format(domain.DateFormat), p.Address,
	))
}

func (d *Dispatcher) Update(ctx context.Context, p domain.Project, c domain.Customer) {
	d.sendEmail(ctx, eventUpdate, p, c)
	d.sendSMS(ctx, c, fmt.Sprintf(
		"Hello %s, your project at %s has been updated. It is now scheduled for %s. "+
			"Contact us with any questions.",
		c.Name, p.Address, p.Date.Format(domain.DateFormat),
	))
}

func (d *Dispatcher) Reminder(ctx context.Context, p domain.Project, c domain.Customer) {
	d.sendEmail(ctx, eventReminder, p, c)
	d.sendSMS(ctx, c, fmt.Sprintf(
		"Hello %s, this is Savage Concrete reminding you of your project tomorrow at %s. "+
			"Please ensure the area is accessible.",
		c.Name, p.Address,
	))
}

func (d *Dispatcher) sendEmail(ctx context.Context, evt emailEvent, p domain.Project, c domain.Customer) {
	if d.email == nil || c.Email == "" {
		return
	}
	body, err := renderEmail(evt, p, c)
	if err != nil {
		log.Printf("[notify] render %s email for project %s: %v", evt.name, p.ID, err)
		return
	}
	if err := d.email.Send(ctx, c.Email, evt.subject, body); err != nil {
		log.Printf("[notify] %s email to %s for project %s: %v", evt.name, c.Email, p.ID, err)
		return
	}
	log.Printf("[notify] %s email sent to %s for project %s", evt.name, c.Email, p.ID)
}

func (d *Dispatcher) sendSMS(ctx context.Context, c domain.Customer, body string) {
	if d.sms == nil || c.Phone == "" {
		return
	}
	if err := d.sms.Send(ctx, normalizePhone(c.Phone), body); err != nil {
		log.Printf("[notify] sms to %s: %v", c.Phone, err)
		return
	}
	log.Printf("[notify] sms sent to %s", c.Phone)
}

// normalizePhone adds the US country code when the number has no prefix.
func normalizePhone(phone string) string {
	if strings.HasPrefix(phone, "+") {
		return phone
	}
	return "+1" + phone
}
