package internal

import (
	"testing"
	"time"

	"clock_tui/internal/config"
	"clock_tui/internal/engine"
	"clock_tui/internal/history"
	"clock_tui/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

type fakeArchive struct {
	records    []history.Record
	week       []store.DayStat
	focusCalls int
}

func (a *fakeArchive) RecentRecords(limit int) ([]history.Record, error) {
	return a.records, nil
}

func (a *fakeArchive) FocusStats(limit int) ([]store.DayStat, error) {
	a.focusCalls++
	return a.week, nil
}

func (a *fakeArchive) TotalFocus() (time.Duration, error) {
	var total time.Duration
	for _, d := range a.week {
		total += d.Focus
	}
	return total, nil
}

type fakeSwitch struct{ on bool }

func (s *fakeSwitch) Enabled() bool     { return s.on }
func (s *fakeSwitch) SetEnabled(v bool) { s.on = v }

type memKV map[string]string

func (kv memKV) Get(key string) (string, bool, error) {
	v, ok := kv[key]
	return v, ok, nil
}

func (kv memKV) Set(key, value string) error {
	kv[key] = value
	return nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
)

func newTestModel(t *testing.T, opts engine.Options) (*Model, *testClock, *fakeArchive, memKV) {
	t.Helper()
	clock := &testClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	opts.Clock = clock
	kv := memKV{}
	archive := &fakeArchive{}
	e := engine.New(opts, engine.Sinks{Settings: kv})
	m := NewModel(Deps{
		Engine:        e,
		Archive:       archive,
		Settings:      kv,
		Notifications: &fakeSwitch{on: true},
		Clock:         clock,
	})
	return m, clock, archive, kv
}

func send(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestModel_TabCyclesModes(t *testing.T) {
	m, _, _, _ := newTestModel(t, engine.Options{})
	assert.Equal(t, ModeTimer, m.Mode)

	send(m, tab)
	assert.Equal(t, ModePomodoro, m.Mode)
	send(m, tab, tab, tab)
	assert.Equal(t, ModeTimer, m.Mode)

	send(m, runes("3"))
	assert.Equal(t, ModeStopwatch, m.Mode)
	assert.Equal(t, "Stopwatch", m.Mode.String())
}

func TestModel_TimerAtZeroOpensEntryThenRuns(t *testing.T) {
	m, _, _, kv := newTestModel(t, engine.Options{TimerInitial: 0})

	send(m, space)
	require.True(t, m.engine.Editing())
	assert.Contains(t, m.View(), "Set Timer")

	send(m, runes("1"), runes("3"), runes("0"), enter)
	assert.False(t, m.engine.Editing())
	assert.Equal(t, engine.TimerRunning, m.engine.TimerState())
	assert.Equal(t, 90*time.Second, m.engine.TimerRemaining())
	assert.Equal(t, "90", kv["clock_timerInitial"])
}

func TestModel_EntryEscapeCancels(t *testing.T) {
	m, _, _, _ := newTestModel(t, engine.Options{TimerInitial: time.Minute})
	send(m, runes("e"))
	require.True(t, m.engine.Editing())
	send(m, runes("5"), esc)
	assert.False(t, m.engine.Editing())
	assert.Equal(t, time.Minute, m.engine.TimerRemaining())
}

func TestModel_TickExpiryFlashesAndRefreshesFocus(t *testing.T) {
	m, clock, archive, _ := newTestModel(t, engine.Options{TimerInitial: time.Second})
	calls := archive.focusCalls

	send(m, space)
	clock.now = clock.now.Add(time.Second)
	send(m, MsgTick{})

	assert.Equal(t, engine.TimerExpired, m.engine.TimerState())
	assert.True(t, m.Flashing())
	assert.Greater(t, archive.focusCalls, calls)

	clock.now = clock.now.Add(2 * time.Second)
	assert.False(t, m.Flashing())
}

func TestModel_StopwatchSchedulesFramesOnlyWhileRunning(t *testing.T) {
	m, clock, _, _ := newTestModel(t, engine.Options{})
	send(m, runes("3"))

	cmd := send(m, space)
	require.NotNil(t, cmd, "starting the stopwatch schedules a frame")
	assert.Nil(t, send(m, MsgTick{}), "one frame in flight at a time")

	clock.now = clock.now.Add(250 * time.Millisecond)
	cmd = send(m, MsgFrame{})
	assert.NotNil(t, cmd)
	assert.Equal(t, 250*time.Millisecond, m.engine.Stopwatch().Elapsed())

	send(m, runes("r"))
	assert.Len(t, m.engine.Stopwatch().Laps(), 1)

	send(m, space)
	assert.Nil(t, send(m, MsgFrame{}), "frames stop once the stopwatch is paused")

	send(m, runes("r"))
	assert.Zero(t, m.engine.Stopwatch().Elapsed())
	assert.Empty(t, m.engine.Stopwatch().Laps())
}

func TestModel_MultiTimerKeys(t *testing.T) {
	m, _, _, _ := newTestModel(t, engine.Options{})
	send(m, runes("4"))
	assert.Contains(t, m.View(), "No timers yet")

	send(m, runes("n"), runes("]"), runes("n"))
	entries := m.engine.Multi().Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, 5*time.Minute, entries[0].Remaining())
	assert.Equal(t, 10*time.Minute, entries[1].Remaining())
	assert.Equal(t, 1, m.SelectedIndex)

	send(m, runes("k"), space)
	assert.True(t, entries[0].Running())
	assert.False(t, entries[1].Running())

	send(m, runes("d"))
	require.Equal(t, 1, m.engine.Multi().Len())
	assert.Equal(t, entries[1].ID, m.engine.Multi().Entries()[0].ID)

	send(m, runes("d"))
	assert.Zero(t, m.engine.Multi().Len())
	assert.Equal(t, 0, m.SelectedIndex)
}

func TestModel_PomodoroPhaseKeys(t *testing.T) {
	m, _, _, _ := newTestModel(t, engine.Options{})
	send(m, runes("2"), runes("b"))
	assert.Equal(t, engine.PhaseLongBreak, m.engine.Pomodoro().Phase())
	assert.Equal(t, 15*time.Minute, m.engine.Pomodoro().Remaining())

	send(m, space)
	assert.True(t, m.engine.Pomodoro().Running())
	send(m, esc)
	assert.False(t, m.engine.Pomodoro().Running())
	assert.Equal(t, engine.PhaseLongBreak, m.engine.Pomodoro().Phase())
}

func TestModel_FocusGoalPersists(t *testing.T) {
	m, clock, _, kv := newTestModel(t, engine.Options{})
	send(m, runes("2"), runes("g"))
	require.True(t, m.EditingGoal)

	send(m, runes("q"))
	assert.True(t, m.EditingGoal, "typing q edits the goal instead of quitting")
	send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	send(m, runes("write report"), enter)

	assert.False(t, m.EditingGoal)
	assert.Equal(t, "write report", m.Goal)
	assert.Equal(t, "write report", kv["clock_focusGoal"])
	assert.Contains(t, m.View(), "Current Goal: ")

	reopened := NewModel(Deps{
		Engine:   engine.New(engine.Options{Clock: clock}, engine.Sinks{Settings: kv}),
		Settings: kv,
		Clock:    clock,
	})
	reopened.Mode = ModePomodoro
	assert.Equal(t, "write report", reopened.Goal)
	assert.Contains(t, reopened.View(), "write report")
}

func TestModel_FocusGoalEscapeKeepsOldGoal(t *testing.T) {
	m, _, _, kv := newTestModel(t, engine.Options{})
	kv["clock_focusGoal"] = "ship it"
	m.Goal = "ship it"

	send(m, runes("2"), runes("g"), runes(" today"), esc)
	assert.False(t, m.EditingGoal)
	assert.Equal(t, "ship it", m.Goal)
	assert.Equal(t, "ship it", kv["clock_focusGoal"])
}

func TestModel_SettingsKeys(t *testing.T) {
	m, _, _, kv := newTestModel(t, engine.Options{AlarmSound: "beep", FocusAnalytics: true})

	send(m, runes("N"))
	assert.False(t, m.notifications.Enabled())
	assert.Equal(t, "false", kv["clock_notifications"])

	send(m, runes("F"))
	assert.False(t, m.engine.FocusAnalytics())

	send(m, runes("S"))
	assert.Equal(t, "chime", m.engine.AlarmSound())
	assert.Contains(t, m.View(), "sound: chime")
}

func TestModel_LogView(t *testing.T) {
	m, clock, archive, _ := newTestModel(t, engine.Options{})
	archive.records = []history.Record{
		{Kind: history.KindMulti, Label: "5:00", Duration: 5 * time.Minute, FinishedAt: clock.now.Add(-time.Hour)},
		{Kind: history.KindTimer, Duration: time.Minute, FinishedAt: clock.now.Add(-2 * time.Hour)},
	}
	archive.week = []store.DayStat{{Day: "2024-03-01", Focus: 50 * time.Minute}}

	send(m, runes("l"))
	require.True(t, m.ShowLogView)
	view := m.View()
	assert.Contains(t, view, "[multi 5:00]")
	assert.Contains(t, view, "1 hour ago")
	assert.Contains(t, view, "2024-03-01")

	send(m, runes("j"), runes("j"))
	assert.Equal(t, 1, m.LogViewScroll)

	send(m, esc)
	assert.False(t, m.ShowLogView)
	assert.Nil(t, m.Records)
}

func TestModel_ConfigReload(t *testing.T) {
	m, _, _, _ := newTestModel(t, engine.Options{})
	cfg := config.Default()
	cfg.Pomodoro.Work = 40 * time.Minute

	send(m, MsgConfig{Config: cfg})
	assert.Equal(t, 40*time.Minute, m.engine.Pomodoro().Remaining())
	assert.Equal(t, "Configuration reloaded", m.engine.Toast())
}

func TestModel_Quit(t *testing.T) {
	m, _, _, _ := newTestModel(t, engine.Options{})
	cmd := send(m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "05:00", formatDuration(5*time.Minute))
	assert.Equal(t, "1:01:01", formatDuration(time.Hour+time.Minute+time.Second))
	assert.Equal(t, "01:02.34", formatStopwatch(62*time.Second+345*time.Millisecond))
}
