package middleware

import (
	"math"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// localLimiter keeps one token bucket per key: max tokens refilled evenly over window.
type localLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	max      int
	every    rate.Limit
}

func newLocalLimiter(max int, window time.Duration) *localLimiter {
	return &localLimiter{
		limiters: map[string]*rate.Limiter{},
		max:      max,
		every:    rate.Every(window / time.Duration(max)),
	}
}

func (l *localLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.every, l.max)
		l.limiters[key] = lim
	}
	return lim
}

func (l *localLimiter) check(_ *gin.Context, key string) (int, int, bool) {
	lim := l.get(key)
	now := time.Now()
	if !lim.AllowN(now, 1) {
		r := lim.ReserveN(now, 1)
		wait := r.DelayFrom(now)
		r.CancelAt(now)
		return 0, int(math.Ceil(wait.Seconds())), false
	}
	remaining := int(lim.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return remaining, 0, true
}
