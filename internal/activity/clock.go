// Package activity records when the user last entered a line of input.
package activity

import (
	"sync/atomic"
	"time"
)

// Clock holds the last-activity timestamp. Writes replace the previous value
// atomically; only recency matters, so last writer wins.
type Clock struct {
	now  func() time.Time
	last atomic.Int64
}

// NewClock creates a Clock whose last activity is the moment of creation.
func NewClock() *Clock {
	return NewClockWithNow(time.Now)
}

// NewClockWithNow creates a Clock driven by now, for tests.
func NewClockWithNow(now func() time.Time) *Clock {
	c := &Clock{now: now}
	c.Touch()
	return c
}

// Touch records the current time as the last activity.
func (c *Clock) Touch() {
	c.last.Store(c.now().UnixNano())
}

// Last returns the last recorded activity.
func (c *Clock) Last() time.Time {
	return time.Unix(0, c.last.Load())
}

// IdleFor returns how long it has been since the last activity.
func (c *Clock) IdleFor() time.Duration {
	return c.now().Sub(c.Last())
}
