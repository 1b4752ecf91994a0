package mailer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/inclusive-studai/pkg/events"
	"github.com/oksasatya/inclusive-studai/pkg/helpers"
)

// Outcome tells the consumer what to do with a delivery.
type Outcome int

const (
	Ack Outcome = iota
	Drop
	Requeue
)

// Notifier turns queued events into emails.
type Notifier struct {
	Sender  Sender
	AppName string
	Logger  *logrus.Logger
	Timeout time.Duration
}

// Handle processes one queued event body.
// Undecodable or unrenderable payloads are dropped, send failures are requeued.
func (n *Notifier) Handle(ctx context.Context, body []byte) Outcome {
	var e events.Event
	if err := json.Unmarshal(body, &e); err != nil {
		helpers.LogError(n.Logger, "bad message", err, nil)
		return Drop
	}
	job, ok, err := JobFromEvent(e, n.AppName)
	if err != nil {
		helpers.LogError(n.Logger, "bad event", err, logrus.Fields{"type": e.Type})
		return Drop
	}
	if !ok {
		helpers.LogInfo(n.Logger, "event skipped", logrus.Fields{"type": e.Type, "user_id": e.UserID})
		return Ack
	}
	if err := job.Render(); err != nil {
		helpers.LogError(n.Logger, "render failed", err, logrus.Fields{"template": job.Template})
		return Drop
	}

	timeout := n.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := n.Sender.Send(c, job.To, job.Subject, job.Text, job.HTML); err != nil {
		helpers.LogError(n.Logger, "send failed", err, logrus.Fields{"to": job.To})
		return Requeue
	}
	helpers.LogInfo(n.Logger, "email sent", logrus.Fields{"to": job.To, "template": job.Template})
	return Ack
}
