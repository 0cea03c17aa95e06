package timer

import "time"

// Clock supplies the current wall-clock time.
// Tests swap in a manual clock instead of sleeping.
type Clock interface {
	Now() time.Time
}

// SystemClock is the default Clock backed by the time package.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
