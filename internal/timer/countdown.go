package timer

import "time"

// Unit is the amount a Countdown loses on every tick.
const Unit = time.Second

// Countdown is a single down-counting session. It does not own a goroutine;
// the host calls Tick once per Unit.
type Countdown struct {
	initial   time.Duration
	remaining time.Duration
	running   bool
}

func NewCountdown(d time.Duration) *Countdown {
	c := &Countdown{}
	c.Reset(d)
	return c
}

// Start arms the countdown. It is a no-op when nothing is left to count.
func (c *Countdown) Start() {
	if c.remaining <= 0 {
		return
	}
	c.running = true
}

func (c *Countdown) Pause() {
	c.running = false
}

// Reset loads d as both the initial and remaining duration and stops the
// countdown. Negative durations are treated as zero.
func (c *Countdown) Reset(d time.Duration) {
	d = max(d, 0)
	c.initial = d
	c.remaining = d
	c.running = false
}

// Rewind restores remaining to the initial duration without touching it.
func (c *Countdown) Rewind() {
	c.remaining = c.initial
	c.running = false
}

// Tick advances the countdown by one Unit and reports whether this tick
// expired it. Expiry is reported once: a stopped countdown at zero never
// expires again until it is reset.
func (c *Countdown) Tick() bool {
	if !c.running || c.remaining <= 0 {
		return false
	}
	c.remaining -= Unit
	if c.remaining > 0 {
		return false
	}
	c.remaining = 0
	c.running = false
	return true
}

func (c *Countdown) Initial() time.Duration {
	return c.initial
}

func (c *Countdown) Remaining() time.Duration {
	return c.remaining
}

func (c *Countdown) Running() bool {
	return c.running
}

// Progress returns remaining/initial in [0, 1], or 0 without an initial duration.
func (c *Countdown) Progress() float64 {
	if c.initial <= 0 {
		return 0
	}
	return float64(c.remaining) / float64(c.initial)
}
