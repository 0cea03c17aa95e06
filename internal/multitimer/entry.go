package multitimer

import (
	"fmt"
	"time"

	"clock_tui/internal/timer"
)

// Entry is one independently controlled countdown in the registry.
type Entry struct {
	ID    int64
	Label string

	session *timer.Countdown
}

func newEntry(id int64, minutes int) *Entry {
	return &Entry{
		ID:      id,
		Label:   fmt.Sprintf("%d:00", minutes),
		session: timer.NewCountdown(time.Duration(minutes) * time.Minute),
	}
}

func (e *Entry) Initial() time.Duration {
	return e.session.Initial()
}

func (e *Entry) Remaining() time.Duration {
	return e.session.Remaining()
}

func (e *Entry) Running() bool {
	return e.session.Running()
}

func (e *Entry) IsComplete() bool {
	return e.session.Remaining() <= 0
}

func (e *Entry) Progress() float64 {
	return e.session.Progress()
}
