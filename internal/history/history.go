package history

import "time"

// Kind names the session type that produced a record.
type Kind string

const (
	KindTimer    Kind = "timer"
	KindPomodoro Kind = "pomodoro"
	KindMulti    Kind = "multi"
)

// Record is one completed countdown.
type Record struct {
	ID         int64
	Kind       Kind
	Label      string
	Duration   time.Duration
	FinishedAt time.Time
}
