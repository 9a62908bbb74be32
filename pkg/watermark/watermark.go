// Package watermark provides the process-wide change counters polling
// clients compare against. A counter only ever moves forward: each bump
// lands on the current epoch-millisecond timestamp, or previous+1 when the
// clock has not advanced, so two bumps never share a value.
package watermark

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	v atomic.Int64
}

// Bump advances the counter and returns the new value.
func (c *Counter) Bump() int64 {
	for {
		prev := c.v.Load()
		next := time.Now().UnixMilli()
		if next <= prev {
			next = prev + 1
		}
		if c.v.CompareAndSwap(prev, next) {
			return next
		}
	}
}

// Load returns the current value. Zero means nothing has changed since
// process start.
func (c *Counter) Load() int64 {
	return c.v.Load()
}

// ChangedSince reports whether the counter has moved strictly past the
// client's last-known value.
func (c *Counter) ChangedSince(seen int64) bool {
	return c.v.Load() > seen
}

// Clock bundles the two independent watermarks: one for catalog/menu
// mutations, one for order mutations. It is shared process state by
// necessity; in a multi-instance deployment it would need to live in a
// shared key-value store instead.
type Clock struct {
	Menu   Counter
	Orders Counter
}

func NewClock() *Clock {
	return &Clock{}
}
