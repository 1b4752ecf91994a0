package events

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Publisher sends a JSON message tagged with its type to a broker.
type Publisher interface {
	PublishJSON(ctx context.Context, msgType string, body any) error
}

// Forward relays every event published on b to p. Broker failures are logged
// and never reach the publisher of the event.
func Forward(b *Bus, p Publisher, logger *logrus.Logger) {
	if b == nil || p == nil {
		return
	}
	b.Subscribe(func(ctx context.Context, e Event) {
		c, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
		defer cancel()
		if err := p.PublishJSON(c, e.Type, e); err != nil && logger != nil {
			logger.WithError(err).WithField("type", e.Type).Warn("event forward failed")
		}
	})
}
