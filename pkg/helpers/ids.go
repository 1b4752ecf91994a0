package helpers

import (
	"strconv"
	"sync"
	"time"
)

// MillisIDs hands out ids derived from the wall clock in milliseconds.
// When two calls land in the same millisecond the later one is bumped,
// so ids are strictly increasing for the lifetime of the generator.
type MillisIDs struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewMillisIDs(now func() time.Time) *MillisIDs {
	if now == nil {
		now = time.Now
	}
	return &MillisIDs{now: now}
}

func (g *MillisIDs) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}
