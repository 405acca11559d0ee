// Package debounce coalesces bursts of calls into a single trailing call.
//
// Interactive parameters such as a dragged quantile slider, and bursts of
// file-system events, both change faster than a full pipeline rebuild is
// worth running. A Coalescer sits in front of such callers; the pipeline
// itself stays synchronous.
package debounce

import (
	"sync"
	"time"
)

// DefaultWindow sits inside the recommended 100-250ms range.
const DefaultWindow = 150 * time.Millisecond

// Coalescer runs only the most recent function passed to Trigger, once the
// window has elapsed without another Trigger.
type Coalescer struct {
	window time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	stopped bool
}

// New returns a Coalescer; a non-positive window uses DefaultWindow.
func New(window time.Duration) *Coalescer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Coalescer{window: window}
}

// Window reports the coalescing interval.
func (c *Coalescer) Window() time.Duration {
	return c.window
}

// Trigger schedules fn, replacing any call still pending.
func (c *Coalescer) Trigger(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.seq++
	seq := c.seq
	c.timer = time.AfterFunc(c.window, func() {
		c.mu.Lock()
		// a later Trigger or Stop superseded this call
		current := seq == c.seq && !c.stopped
		c.mu.Unlock()
		if current {
			fn()
		}
	})
}

// Cancel drops the pending call and reports whether one was pending.
func (c *Coalescer) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer == nil {
		return false
	}
	pending := c.timer.Stop()
	c.timer = nil
	c.seq++
	return pending
}

// Stop cancels any pending call; later Triggers are ignored.
func (c *Coalescer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
