// Package toast holds short-lived user messages that clear themselves.
package toast

import (
	"time"

	"clock_tui/internal/timer"
)

// DefaultTTL is how long a message stays visible.
const DefaultTTL = 3 * time.Second

// Toaster shows one message at a time; a newer message replaces the old one.
type Toaster struct {
	clock   timer.Clock
	ttl     time.Duration
	message string
	until   time.Time
}

func New(clock timer.Clock, ttl time.Duration) *Toaster {
	if clock == nil {
		clock = timer.SystemClock
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Toaster{clock: clock, ttl: ttl}
}

func (t *Toaster) Show(message string) {
	t.message = message
	t.until = t.clock.Now().Add(t.ttl)
}

// Current returns the visible message, or "" once it has expired.
func (t *Toaster) Current() string {
	if t.message == "" {
		return ""
	}
	if !t.clock.Now().Before(t.until) {
		t.message = ""
		return ""
	}
	return t.message
}
