// Package engine coordinates the timer, pomodoro, stopwatch and multi-timer
// sessions. It owns no goroutines: the host calls Tick about once a second
// and Frame as often as it wants to redraw the stopwatch.
package engine

import (
	"time"

	"clock_tui/internal/config"
	"clock_tui/internal/history"
	"clock_tui/internal/multitimer"
	"clock_tui/internal/settings"
	"clock_tui/internal/timer"
	"clock_tui/internal/toast"

	"go.uber.org/zap"
)

// Alarm plays a named sound.
type Alarm interface {
	Play(sound string) error
}

// Notifier raises a system notification.
type Notifier interface {
	Notify(title, body string) error
}

// FocusRecorder accumulates focus time per calendar day (YYYY-MM-DD).
type FocusRecorder interface {
	AddFocus(day string, d time.Duration) error
}

// HistoryRecorder stores completed countdowns.
type HistoryRecorder interface {
	CreateRecord(r *history.Record) error
}

// Sinks are the engine's side-effect collaborators. Any of them may be nil.
type Sinks struct {
	Alarm    Alarm
	Notifier Notifier
	Focus    FocusRecorder
	History  HistoryRecorder
	Settings settings.KV
}

type Options struct {
	Pomodoro       config.PomodoroConfig
	TimerInitial   time.Duration
	AlarmSound     string
	FocusAnalytics bool
	Clock          timer.Clock
	Logger         *zap.Logger
}

// Expiry describes one countdown reaching zero while running.
type Expiry struct {
	Kind     history.Kind
	Label    string
	Title    string
	Body     string
	Duration time.Duration
	At       time.Time
}

type Engine struct {
	clock  timer.Clock
	logger *zap.Logger
	sinks  Sinks
	toasts *toast.Toaster

	alarmSound     string
	focusAnalytics bool

	timer      *timer.Countdown
	timerState TimerState
	editing    bool
	entry      *timer.Entry

	pomo      *Pomodoro
	stopwatch *timer.Stopwatch
	multi     *multitimer.Registry
}

func New(opts Options, sinks Sinks) *Engine {
	if opts.Clock == nil {
		opts.Clock = timer.SystemClock
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.AlarmSound == "" {
		opts.AlarmSound = settings.AlarmSound.Default
	}
	defaults := config.Default().Pomodoro
	if opts.Pomodoro.Work <= 0 {
		opts.Pomodoro.Work = defaults.Work
	}
	if opts.Pomodoro.ShortBreak <= 0 {
		opts.Pomodoro.ShortBreak = defaults.ShortBreak
	}
	if opts.Pomodoro.LongBreak <= 0 {
		opts.Pomodoro.LongBreak = defaults.LongBreak
	}

	return &Engine{
		clock:          opts.Clock,
		logger:         opts.Logger,
		sinks:          sinks,
		toasts:         toast.New(opts.Clock, toast.DefaultTTL),
		alarmSound:     opts.AlarmSound,
		focusAnalytics: opts.FocusAnalytics,
		timer:          timer.NewCountdown(opts.TimerInitial),
		timerState:     TimerIdle,
		entry:          timer.NewEntry(),
		pomo:           newPomodoro(opts.Pomodoro),
		stopwatch:      timer.NewStopwatch(opts.Clock),
		multi:          multitimer.NewRegistry(),
	}
}

// Tick advances every running countdown by one second, samples the
// stopwatch, and performs the side effects of anything that expired.
// Sessions are independent; a failing side effect never stops a transition.
func (e *Engine) Tick() []Expiry {
	e.stopwatch.Sample()

	var expired []Expiry
	if e.timer.Tick() {
		e.timerState = TimerExpired
		expired = append(expired, e.expire(Expiry{
			Kind:     history.KindTimer,
			Title:    "Timer Finished",
			Body:     "Your timer has finished",
			Duration: e.timer.Initial(),
		}))
	}
	if e.pomo.session.Tick() {
		expired = append(expired, e.expirePomodoro())
	}
	for _, entry := range e.multi.Tick() {
		expired = append(expired, e.expire(Expiry{
			Kind:     history.KindMulti,
			Label:    entry.Label,
			Title:    "Timer Finished",
			Body:     "Timer " + entry.Label + " has finished",
			Duration: entry.Initial(),
		}))
	}
	return expired
}

// Frame samples the stopwatch only.
func (e *Engine) Frame() {
	e.stopwatch.Sample()
}

// NeedsFrame reports whether sub-second redraws are useful.
func (e *Engine) NeedsFrame() bool {
	return e.stopwatch.Running()
}

func (e *Engine) Stopwatch() *timer.Stopwatch {
	return e.stopwatch
}

func (e *Engine) Multi() *multitimer.Registry {
	return e.multi
}

// Toast returns the current transient message, if any.
func (e *Engine) Toast() string {
	return e.toasts.Current()
}

// ShowMessage surfaces a transient message through the toast.
func (e *Engine) ShowMessage(msg string) {
	e.toasts.Show(msg)
}

func (e *Engine) AlarmSound() string {
	return e.alarmSound
}

// SetAlarmSound changes and persists the alarm sound.
func (e *Engine) SetAlarmSound(name string) {
	e.alarmSound = name
	e.persist(settings.AlarmSound.Key, settings.AlarmSound.Save(e.sinks.Settings, name))
}

func (e *Engine) FocusAnalytics() bool {
	return e.focusAnalytics
}

// SetFocusAnalytics enables or disables focus accounting and persists it.
func (e *Engine) SetFocusAnalytics(enabled bool) {
	e.focusAnalytics = enabled
	e.persist(settings.FocusAnalytics.Key, settings.FocusAnalytics.Save(e.sinks.Settings, enabled))
}

func (e *Engine) persist(key string, err error) {
	if err != nil {
		e.logger.Warn("Failed to persist setting", zap.String("key", key), zap.Error(err))
	}
}
