// Package mailer wraps transactional email delivery behind a small
// interface so callers can swap the real Resend client for a no-op in
// tests or when no API key is configured.
package mailer

import (
	"context"
	"log"

	"github.com/resend/resend-go/v2"
)

// Message is one outbound email.  The From address must belong to a
// domain verified with the provider.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Mailer sends a single message.  Implementations report delivery
// failures through the returned error; callers on the reservation path
// log and swallow them because a reservation must never fail on email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Resend delivers messages through the Resend HTTP API.
type Resend struct {
	client *resend.Client
}

// NewResend returns a Mailer backed by the Resend API.
func NewResend(apiKey string) *Resend {
	return &Resend{client: resend.NewClient(apiKey)}
}

// Send dispatches the message via Resend.
func (r *Resend) Send(ctx context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	_, err := r.client.Emails.SendWithContext(ctx, params)
	return err
}

// Discard logs messages instead of sending them.  It is used when
// RESEND_API_KEY is not configured so the rest of the system keeps
// working in local development.
type Discard struct{}

// Send logs the message and reports success.
func (Discard) Send(_ context.Context, msg Message) error {
	log.Printf("mailer: RESEND_API_KEY not configured, skipping email to=%v subject=%q", msg.To, msg.Subject)
	return nil
}

// New returns a Resend mailer when an API key is present and a
// Discard mailer otherwise.
func New(apiKey string) Mailer {
	if apiKey == "" {
		return Discard{}
	}
	return NewResend(apiKey)
}
