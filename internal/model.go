package internal

import (
	"strings"
	"time"

	"clock_tui/internal/config"
	"clock_tui/internal/engine"
	"clock_tui/internal/history"
	"clock_tui/internal/multitimer"
	"clock_tui/internal/settings"
	"clock_tui/internal/store"
	"clock_tui/internal/timer"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Mode is the screen currently shown.
type Mode int

const (
	ModeTimer Mode = iota
	ModePomodoro
	ModeStopwatch
	ModeMulti
)

var modeNames = []string{"Timer", "Pomodoro", "Stopwatch", "Multi Timer"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "?"
}

// MsgTick drives the engine's once-a-second Tick.
type MsgTick struct{}

// MsgFrame drives stopwatch redraws between ticks.
type MsgFrame struct{}

// MsgConfig carries a reloaded configuration file.
type MsgConfig struct {
	Config config.Config
}

const (
	flashDuration = time.Second
	historyLimit  = 50
	goalMaxLen    = 80
	focusDays     = 7
)

// Archive is the read side of the persisted history.
type Archive interface {
	RecentRecords(limit int) ([]history.Record, error)
	FocusStats(limit int) ([]store.DayStat, error)
	TotalFocus() (time.Duration, error)
}

// NotificationSwitch turns the notification sink on and off.
type NotificationSwitch interface {
	Enabled() bool
	SetEnabled(bool)
}

type Deps struct {
	Engine        *engine.Engine
	Archive       Archive
	Settings      settings.KV
	Notifications NotificationSwitch
	FrameInterval time.Duration
	Clock         timer.Clock
	Logger        *zap.Logger
}

type Model struct {
	Mode          Mode
	SelectedIndex int
	PresetIndex   int

	// History viewer state
	ShowLogView   bool
	LogViewScroll int
	Records       []history.Record
	FocusWeek     []store.DayStat
	FocusTotal    time.Duration

	// Pomodoro focus goal
	Goal        string
	EditingGoal bool

	engine        *engine.Engine
	archive       Archive
	settings      settings.KV
	notifications NotificationSwitch
	frameInterval time.Duration
	framing       bool
	flashUntil    time.Time
	clock         timer.Clock
	logger        *zap.Logger

	keys      keyMap
	help      help.Model
	goalInput textinput.Model
	progress  progress.Model
	width     int
}

func NewModel(deps Deps) *Model {
	if deps.Clock == nil {
		deps.Clock = timer.SystemClock
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.FrameInterval <= 0 {
		deps.FrameInterval = config.Default().FrameInterval
	}

	goalInput := textinput.New()
	goalInput.Placeholder = "What are you working on?"
	goalInput.CharLimit = goalMaxLen
	goalInput.Width = 40

	m := &Model{
		Mode:          ModeTimer,
		Goal:          settings.FocusGoal.Load(deps.Settings),
		PresetIndex:   2,
		engine:        deps.Engine,
		archive:       deps.Archive,
		settings:      deps.Settings,
		notifications: deps.Notifications,
		frameInterval: deps.FrameInterval,
		clock:         deps.Clock,
		logger:        deps.Logger,
		keys:          newKeyMap(),
		help:          help.New(),
		goalInput:     goalInput,
		progress:      progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(40)),
		width:         80,
	}
	m.refreshFocus()
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgTick:
		if expired := m.engine.Tick(); len(expired) > 0 {
			m.flashUntil = m.clock.Now().Add(flashDuration)
			m.refreshFocus()
		}
		return m, m.scheduleFrame()
	case MsgFrame:
		m.framing = false
		m.engine.Frame()
		return m, m.scheduleFrame()
	case MsgConfig:
		m.engine.SetPomodoroDurations(msg.Config.Pomodoro)
		m.frameInterval = msg.Config.FrameInterval
		m.engine.ShowMessage("Configuration reloaded")
		return m, nil
	case tea.KeyMsg:
		model, cmd := m.handleKeyMsg(msg)
		if cmd != nil {
			return model, cmd
		}
		return model, m.scheduleFrame()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

// scheduleFrame keeps exactly one frame in flight while the stopwatch runs
// and lets frames stop entirely otherwise.
func (m *Model) scheduleFrame() tea.Cmd {
	if m.framing || !m.engine.NeedsFrame() {
		return nil
	}
	m.framing = true
	return tea.Tick(m.frameInterval, func(time.Time) tea.Msg {
		return MsgFrame{}
	})
}

// Flashing reports whether a countdown finished within the last second.
func (m *Model) Flashing() bool {
	return m.clock.Now().Before(m.flashUntil)
}

func (m *Model) View() string {
	if m.ShowLogView {
		return m.allLogsView()
	}
	if m.Mode == ModeTimer && m.engine.Editing() {
		return m.entryView()
	}
	return m.mainView()
}

func (m *Model) SelectedEntry() *multitimer.Entry {
	entries := m.engine.Multi().Entries()
	if m.SelectedIndex >= 0 && m.SelectedIndex < len(entries) {
		return entries[m.SelectedIndex]
	}
	return nil
}

func (m *Model) refreshFocus() {
	if m.archive == nil {
		return
	}
	week, err := m.archive.FocusStats(focusDays)
	if err != nil {
		m.logger.Warn("Failed to load focus stats", zap.Error(err))
		return
	}
	total, err := m.archive.TotalFocus()
	if err != nil {
		m.logger.Warn("Failed to load focus total", zap.Error(err))
		return
	}
	m.FocusWeek = week
	m.FocusTotal = total
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ShowLogView {
		return m.handleLogViewInput(msg)
	}
	if m.Mode == ModeTimer && m.engine.Editing() {
		return m.handleEntryInput(msg)
	}
	if m.EditingGoal {
		return m.handleGoalInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextMode):
		m.Mode = (m.Mode + 1) % Mode(len(modeNames))
	case key.Matches(msg, m.keys.TimerMode):
		m.Mode = ModeTimer
	case key.Matches(msg, m.keys.PomodoroMode):
		m.Mode = ModePomodoro
	case key.Matches(msg, m.keys.StopwatchMode):
		m.Mode = ModeStopwatch
	case key.Matches(msg, m.keys.MultiMode):
		m.Mode = ModeMulti
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Logs):
		m.openLogView()
	case key.Matches(msg, m.keys.Notifications):
		m.toggleNotifications()
	case key.Matches(msg, m.keys.Focus):
		m.engine.SetFocusAnalytics(!m.engine.FocusAnalytics())
	case key.Matches(msg, m.keys.Sound):
		m.engine.SetAlarmSound(settings.NextAlarmSound(m.engine.AlarmSound()))
	default:
		switch m.Mode {
		case ModeTimer:
			m.handleTimerKey(msg)
		case ModePomodoro:
			return m, m.handlePomodoroKey(msg)
		case ModeStopwatch:
			m.handleStopwatchKey(msg)
		case ModeMulti:
			m.handleMultiKey(msg)
		}
	}
	return m, nil
}

func (m *Model) handleTimerKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Toggle):
		m.engine.ToggleTimer()
	case key.Matches(msg, m.keys.Reset):
		m.engine.ResetTimer()
	case key.Matches(msg, m.keys.Escape):
		m.engine.PauseTimer()
	case key.Matches(msg, m.keys.Edit):
		m.engine.BeginTimerEntry()
	}
}

func (m *Model) handlePomodoroKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Goal):
		m.EditingGoal = true
		m.goalInput.SetValue(m.Goal)
		m.goalInput.CursorEnd()
		return m.goalInput.Focus()
	case key.Matches(msg, m.keys.Toggle):
		m.engine.TogglePomodoro()
	case key.Matches(msg, m.keys.Reset), key.Matches(msg, m.keys.Escape):
		m.engine.ResetPomodoro(m.engine.Pomodoro().Phase())
	case key.Matches(msg, m.keys.Work):
		m.engine.ResetPomodoro(engine.PhaseWork)
	case key.Matches(msg, m.keys.ShortBreak):
		m.engine.ResetPomodoro(engine.PhaseShortBreak)
	case key.Matches(msg, m.keys.LongBreak):
		m.engine.ResetPomodoro(engine.PhaseLongBreak)
	}
	return nil
}

// handleGoalInput edits the focus goal. Enter keeps and persists it, Esc
// throws the edit away.
func (m *Model) handleGoalInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.EditingGoal = false
		m.goalInput.Blur()
		return m, nil
	case "enter":
		m.EditingGoal = false
		m.goalInput.Blur()
		m.Goal = strings.TrimSpace(m.goalInput.Value())
		if err := settings.FocusGoal.Save(m.settings, m.Goal); err != nil {
			m.logger.Warn("Failed to persist setting", zap.String("key", settings.FocusGoal.Key), zap.Error(err))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.goalInput, cmd = m.goalInput.Update(msg)
	return m, cmd
}

func (m *Model) handleStopwatchKey(msg tea.KeyMsg) {
	sw := m.engine.Stopwatch()
	switch {
	case key.Matches(msg, m.keys.Toggle):
		sw.Toggle()
	case key.Matches(msg, m.keys.Reset):
		// One button: lap while running, reset while stopped.
		if !sw.Lap() {
			sw.Reset()
		}
	case key.Matches(msg, m.keys.Escape):
		sw.Clear()
	}
}

func (m *Model) handleMultiKey(msg tea.KeyMsg) {
	registry := m.engine.Multi()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.SelectedIndex > 0 {
			m.SelectedIndex--
		}
	case key.Matches(msg, m.keys.Down):
		if m.SelectedIndex < registry.Len()-1 {
			m.SelectedIndex++
		}
	case key.Matches(msg, m.keys.PrevPreset):
		if m.PresetIndex > 0 {
			m.PresetIndex--
		}
	case key.Matches(msg, m.keys.NextPreset):
		if m.PresetIndex < len(multitimer.Presets)-1 {
			m.PresetIndex++
		}
	case key.Matches(msg, m.keys.Add):
		registry.Add(multitimer.Presets[m.PresetIndex])
		m.SelectedIndex = registry.Len() - 1
	case key.Matches(msg, m.keys.Toggle):
		if e := m.SelectedEntry(); e != nil {
			registry.Toggle(e.ID)
		}
	case key.Matches(msg, m.keys.Reset):
		if e := m.SelectedEntry(); e != nil {
			registry.Reset(e.ID)
		}
	case key.Matches(msg, m.keys.Delete):
		if e := m.SelectedEntry(); e != nil {
			registry.Remove(e.ID)
		}
		if m.SelectedIndex >= registry.Len() {
			m.SelectedIndex = max(registry.Len()-1, 0)
		}
	}
}

func (m *Model) handleEntryInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entry := m.engine.TimerEntry()
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.engine.CancelTimerEntry()
	case "enter":
		m.engine.CommitTimerEntry()
	case "backspace":
		entry.Delete()
	case ":":
		entry.PushDoubleZero()
	default:
		runes := []rune(msg.String())
		if len(runes) == 1 {
			entry.Push(runes[0])
		}
	}
	return m, nil
}

func (m *Model) openLogView() {
	m.Records = nil
	if m.archive != nil {
		records, err := m.archive.RecentRecords(historyLimit)
		if err != nil {
			m.logger.Warn("Failed to load history", zap.Error(err))
			m.engine.ShowMessage("Could not load history")
		} else {
			m.Records = records
		}
	}
	m.refreshFocus()
	m.ShowLogView = true
	m.LogViewScroll = 0
}

func (m *Model) handleLogViewInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc", "l":
		m.ShowLogView = false
		m.Records = nil
	case "up", "k":
		if m.LogViewScroll > 0 {
			m.LogViewScroll--
		}
	case "down", "j":
		maxScroll := max(len(m.Records)-1, 0)
		if m.LogViewScroll < maxScroll {
			m.LogViewScroll++
		}
	}
	return m, nil
}

func (m *Model) toggleNotifications() {
	if m.notifications == nil {
		return
	}
	enabled := !m.notifications.Enabled()
	m.notifications.SetEnabled(enabled)
	if err := settings.Notifications.Save(m.settings, enabled); err != nil {
		m.logger.Warn("Failed to persist setting", zap.String("key", settings.Notifications.Key), zap.Error(err))
	}
}
