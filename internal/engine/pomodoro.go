package engine

import (
	"time"

	"clock_tui/internal/config"
	"clock_tui/internal/history"
	"clock_tui/internal/timer"

	"go.uber.org/zap"
)

// Phase is a pomodoro phase.
type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

func (p Phase) Label() string {
	switch p {
	case PhaseWork:
		return "Work"
	case PhaseShortBreak:
		return "Short Break"
	case PhaseLongBreak:
		return "Long Break"
	}
	return string(p)
}

// next is the phase a finished phase chains into. Long breaks are only ever
// chosen by hand.
func (p Phase) next() Phase {
	if p == PhaseWork {
		return PhaseShortBreak
	}
	return PhaseWork
}

// Pomodoro is one countdown shared by the three phases.
type Pomodoro struct {
	phase     Phase
	durations config.PomodoroConfig
	session   *timer.Countdown
}

func newPomodoro(durations config.PomodoroConfig) *Pomodoro {
	p := &Pomodoro{durations: durations, session: timer.NewCountdown(0)}
	p.load(PhaseWork)
	return p
}

func (p *Pomodoro) duration(phase Phase) time.Duration {
	switch phase {
	case PhaseShortBreak:
		return p.durations.ShortBreak
	case PhaseLongBreak:
		return p.durations.LongBreak
	}
	return p.durations.Work
}

func (p *Pomodoro) load(phase Phase) {
	p.phase = phase
	p.session.Reset(p.duration(phase))
}

func (p *Pomodoro) Phase() Phase {
	return p.phase
}

func (p *Pomodoro) Remaining() time.Duration {
	return p.session.Remaining()
}

func (p *Pomodoro) Initial() time.Duration {
	return p.session.Initial()
}

func (p *Pomodoro) Running() bool {
	return p.session.Running()
}

func (p *Pomodoro) Progress() float64 {
	return p.session.Progress()
}

func (e *Engine) Pomodoro() *Pomodoro {
	return e.pomo
}

// ResetPomodoro stops the pomodoro and loads phase's default duration.
// It has no side effects.
func (e *Engine) ResetPomodoro(phase Phase) {
	e.pomo.load(phase)
}

func (e *Engine) TogglePomodoro() {
	if e.pomo.session.Running() {
		e.pomo.session.Pause()
		return
	}
	e.pomo.session.Start()
}

// SetPomodoroDurations replaces the phase defaults. A phase that has not
// started yet picks up its new length at once; anything in progress keeps
// its current run.
func (e *Engine) SetPomodoroDurations(d config.PomodoroConfig) {
	if d.Work <= 0 || d.ShortBreak <= 0 || d.LongBreak <= 0 {
		return
	}
	p := e.pomo
	untouched := !p.session.Running() && p.session.Remaining() == p.session.Initial()
	p.durations = d
	if untouched {
		p.load(p.phase)
	}
}

func (e *Engine) expirePomodoro() Expiry {
	p := e.pomo
	finished := p.phase
	worked := p.session.Initial()

	x := e.expire(Expiry{
		Kind:     history.KindPomodoro,
		Label:    finished.Label(),
		Title:    "Pomodoro Finished",
		Body:     finished.Label() + " section is complete",
		Duration: worked,
	})

	if finished == PhaseWork && e.focusAnalytics && e.sinks.Focus != nil {
		// Days are the user's local calendar days, not UTC.
		day := x.At.Format(time.DateOnly)
		if err := e.sinks.Focus.AddFocus(day, worked); err != nil {
			e.logger.Warn("Failed to record focus time", zap.String("day", day), zap.Error(err))
		}
	}

	p.load(finished.next())
	p.session.Start()
	return x
}
