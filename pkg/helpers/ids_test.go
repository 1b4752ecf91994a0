package helpers

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMillisIDs_UsesClock(t *testing.T) {
	at := time.UnixMilli(1715000000123)
	g := NewMillisIDs(func() time.Time { return at })

	assert.Equal(t, "1715000000123", g.Next())
}

func TestMillisIDs_StrictlyIncreasingWithinSameMillisecond(t *testing.T) {
	at := time.UnixMilli(1000)
	g := NewMillisIDs(func() time.Time { return at })

	seen := map[string]bool{}
	var prev int64
	for i := 0; i < 50; i++ {
		id := g.Next()
		n, err := strconv.ParseInt(id, 10, 64)
		require.NoError(t, err)
		assert.Greater(t, n, prev)
		assert.False(t, seen[id])
		seen[id] = true
		prev = n
	}
}

func TestMillisIDs_ClockGoingBackwards(t *testing.T) {
	ticks := []int64{500, 400, 600}
	i := 0
	g := NewMillisIDs(func() time.Time {
		ms := ticks[i]
		i++
		return time.UnixMilli(ms)
	})

	assert.Equal(t, "500", g.Next())
	assert.Equal(t, "501", g.Next())
	assert.Equal(t, "600", g.Next())
}
