package mailer

import (
	"context"
	"fmt"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Sender delivers a single email.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Mailgun sends through one reusable client. Every message is tagged so
// appointment mail can be told apart in the Mailgun logs.
type Mailgun struct {
	client  *mg.MailgunImpl
	from    string
	tag     string
	timeout time.Duration
}

func NewMailgun(domain, apiKey, from string) *Mailgun {
	return &Mailgun{
		client:  mg.NewMailgun(domain, apiKey),
		from:    from,
		tag:     "studai-appointment",
		timeout: 10 * time.Second,
	}
}

// Send delivers text and, when non-empty, html as alternative bodies.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.from, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	if err := msg.AddTag(m.tag); err != nil {
		return fmt.Errorf("tag message: %w", err)
	}
	c, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	if _, _, err := m.client.Send(c, msg); err != nil {
		return fmt.Errorf("mailgun send to %s: %w", to, err)
	}
	return nil
}
