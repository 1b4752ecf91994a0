package events

import (
	"context"
	"sync"
	"time"
)

// Event types published by the application.
const (
	StoreSeeded          = "store.seeded"
	PreferencesUpdated   = "preferences.updated"
	ConsentsUpdated      = "consents.updated"
	AppointmentRequested = "appointment.requested"
)

// Event is a domain notification. Data holds type specific fields and must be
// JSON serializable.
type Event struct {
	Type       string         `json:"type"`
	UserID     string         `json:"user_id,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Handler reacts to a published event.
type Handler func(ctx context.Context, e Event)

// Bus is a synchronous in-process publisher. Handlers run in subscription
// order on the publishing goroutine.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
}

func NewBus() *Bus { return &Bus{} }

func (b *Bus) Subscribe(h Handler) {
	if b == nil || h == nil {
		return
	}
	b.mu.Lock()
	b.handlers = append(b.handlers, h)
	b.mu.Unlock()
}

// Publish delivers e to every handler. A nil bus drops the event.
func (b *Bus) Publish(ctx context.Context, e Event) {
	if b == nil {
		return
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	b.mu.RLock()
	hs := make([]Handler, len(b.handlers))
	copy(hs, b.handlers)
	b.mu.RUnlock()
	for _, h := range hs {
		h(ctx, e)
	}
}
