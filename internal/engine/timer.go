package engine

import (
	"time"

	"clock_tui/internal/settings"
	"clock_tui/internal/timer"

	"go.uber.org/zap"
)

// TimerState is the single timer's position in its state machine.
type TimerState int

const (
	TimerIdle TimerState = iota
	TimerRunning
	TimerPaused
	TimerExpired
)

func (s TimerState) String() string {
	switch s {
	case TimerIdle:
		return "idle"
	case TimerRunning:
		return "running"
	case TimerPaused:
		return "paused"
	case TimerExpired:
		return "expired"
	}
	return "unknown"
}

func (e *Engine) TimerState() TimerState {
	return e.timerState
}

func (e *Engine) TimerRemaining() time.Duration {
	return e.timer.Remaining()
}

func (e *Engine) TimerInitial() time.Duration {
	return e.timer.Initial()
}

func (e *Engine) TimerProgress() float64 {
	return e.timer.Progress()
}

// StartTimer runs the timer from Idle or Paused. A timer sitting at zero is
// reloaded from its initial duration; with no initial duration the engine
// switches to duration entry instead of starting a zero-length run.
func (e *Engine) StartTimer() {
	if e.editing || e.timerState == TimerRunning {
		return
	}
	if e.timer.Remaining() <= 0 {
		if e.timer.Initial() <= 0 {
			e.BeginTimerEntry()
			return
		}
		e.timer.Rewind()
	}
	e.timer.Start()
	e.timerState = TimerRunning
}

func (e *Engine) PauseTimer() {
	if e.timerState != TimerRunning {
		return
	}
	e.timer.Pause()
	e.timerState = TimerPaused
}

func (e *Engine) ToggleTimer() {
	if e.timerState == TimerRunning {
		e.PauseTimer()
		return
	}
	e.StartTimer()
}

// ResetTimer stops the timer and reloads its initial duration.
func (e *Engine) ResetTimer() {
	e.timer.Rewind()
	e.timerState = TimerIdle
}

// Editing reports whether duration entry is open.
func (e *Engine) Editing() bool {
	return e.editing
}

func (e *Engine) TimerEntry() *timer.Entry {
	return e.entry
}

// BeginTimerEntry opens duration entry with a cleared keypad.
// It is refused while the timer runs.
func (e *Engine) BeginTimerEntry() {
	if e.timerState == TimerRunning {
		return
	}
	e.editing = true
	e.entry.Clear()
}

func (e *Engine) CancelTimerEntry() {
	e.editing = false
}

// CommitTimerEntry closes duration entry. A positive duration becomes the
// timer's new initial duration, is remembered for next launch, and starts
// running immediately.
func (e *Engine) CommitTimerEntry() {
	if !e.editing {
		return
	}
	e.editing = false
	d := e.entry.Duration()
	if d <= 0 {
		return
	}
	e.timer.Reset(d)
	e.timer.Start()
	e.timerState = TimerRunning
	if err := settings.TimerInitial.Save(e.sinks.Settings, d); err != nil {
		e.logger.Warn("Failed to persist timer duration", zap.Duration("duration", d), zap.Error(err))
	}
}
