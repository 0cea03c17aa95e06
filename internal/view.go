package internal

import (
	"fmt"
	"strings"
	"time"

	"clock_tui/internal/engine"
	"clock_tui/internal/history"
	"clock_tui/internal/multitimer"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Align(lipgloss.Center)

	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("240"))

	tabActiveStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235"))

	itemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	itemSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	timerDisplayStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("69")).
				Bold(true)

	timerRunningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82")).
				Bold(true)

	flashStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214")).
			Bold(true)

	toastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	inputDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	logHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	logTagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	logTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// formatStopwatch renders mm:ss.cc; minutes keep counting past an hour.
func formatStopwatch(d time.Duration) string {
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d.%02d", ms/60000, ms%60000/1000, ms%1000/10)
}

func (m *Model) mainView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Width(m.width).Render("Clock TUI"))
	sb.WriteString("\n\n")
	sb.WriteString(m.tabsView())
	sb.WriteString("\n\n")

	var body string
	switch m.Mode {
	case ModePomodoro:
		body = m.pomodoroView()
	case ModeStopwatch:
		body = m.stopwatchView()
	case ModeMulti:
		body = m.multiView()
	default:
		body = m.timerView()
	}
	sb.WriteString(boxStyle.Width(50).Render(body))
	sb.WriteString("\n")

	if msg := m.engine.Toast(); msg != "" {
		sb.WriteString(toastStyle.Render(msg))
	}
	sb.WriteString("\n")
	sb.WriteString(m.statusLine())
	sb.WriteString("\n\n")
	sb.WriteString(helpStyle.Render(m.help.View(modeKeys{keyMap: m.keys, mode: m.Mode})))

	return sb.String()
}

func (m *Model) tabsView() string {
	tabs := make([]string, 0, len(modeNames))
	for i, name := range modeNames {
		if Mode(i) == m.Mode {
			tabs = append(tabs, tabActiveStyle.Render(name))
		} else {
			tabs = append(tabs, tabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) clockFace(d time.Duration, running bool) string {
	text := formatDuration(d)
	switch {
	case m.Flashing():
		return flashStyle.Render(" " + text + " ")
	case running:
		return timerRunningStyle.Render(text)
	}
	return timerDisplayStyle.Render(text)
}

func (m *Model) timerView() string {
	e := m.engine
	var sb strings.Builder
	sb.WriteString("Timer\n\n")
	sb.WriteString(m.clockFace(e.TimerRemaining(), e.TimerState() == engine.TimerRunning))
	sb.WriteString("\n\n")
	sb.WriteString(m.progress.ViewAs(e.TimerProgress()))
	sb.WriteString("\n\n")
	sb.WriteString(inactiveStyle.Render(fmt.Sprintf("%s · set to %s", e.TimerState(), formatDuration(e.TimerInitial()))))
	return sb.String()
}

func (m *Model) pomodoroView() string {
	p := m.engine.Pomodoro()
	var sb strings.Builder

	phases := []engine.Phase{engine.PhaseWork, engine.PhaseShortBreak, engine.PhaseLongBreak}
	labels := make([]string, 0, len(phases))
	for _, ph := range phases {
		if ph == p.Phase() {
			labels = append(labels, tabActiveStyle.Render(ph.Label()))
		} else {
			labels = append(labels, tabStyle.Render(ph.Label()))
		}
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labels...))
	sb.WriteString("\n\n")
	sb.WriteString(m.clockFace(p.Remaining(), p.Running()))
	sb.WriteString("\n\n")
	sb.WriteString(m.progress.ViewAs(p.Progress()))
	sb.WriteString("\n\n")
	switch {
	case m.EditingGoal:
		sb.WriteString("Current Goal: " + m.goalInput.View())
		sb.WriteString("\n")
	case m.Goal != "":
		sb.WriteString("Current Goal: " + inputStyle.Render(m.Goal))
		sb.WriteString("\n")
	}
	if len(m.FocusWeek) > 0 {
		today := m.FocusWeek[len(m.FocusWeek)-1]
		sb.WriteString(inactiveStyle.Render(fmt.Sprintf("Focus %s: %s", today.Day, formatDuration(today.Focus))))
	}
	return sb.String()
}

func (m *Model) stopwatchView() string {
	sw := m.engine.Stopwatch()
	var sb strings.Builder
	sb.WriteString("Stopwatch\n\n")

	face := formatStopwatch(sw.Elapsed())
	if sw.Running() {
		sb.WriteString(timerRunningStyle.Render(face))
	} else {
		sb.WriteString(timerDisplayStyle.Render(face))
	}
	sb.WriteString("\n\n")

	laps := sw.Laps()
	for i, lap := range laps {
		if i == 8 {
			sb.WriteString(inactiveStyle.Render(fmt.Sprintf("  … %d more", len(laps)-i)))
			sb.WriteString("\n")
			break
		}
		sb.WriteString(fmt.Sprintf("  Lap %-3d %s\n", len(laps)-i, formatStopwatch(lap)))
	}
	return sb.String()
}

func (m *Model) multiView() string {
	var sb strings.Builder
	sb.WriteString("Timers\n\n")

	entries := m.engine.Multi().Entries()
	if len(entries) == 0 {
		sb.WriteString(inactiveStyle.Render("No timers yet. Press 'n' to add one."))
		sb.WriteString("\n")
	}
	for i, e := range entries {
		running := ""
		if e.Running() {
			running = " ●"
		} else if e.IsComplete() {
			running = " ✓"
		}
		line := fmt.Sprintf("%-6s %s%s", e.Label, formatDuration(e.Remaining()), running)
		if i == m.SelectedIndex {
			sb.WriteString(itemSelectedStyle.Render(line))
		} else {
			sb.WriteString(itemStyle.Render(inactiveStyle.Render(line)))
		}
		sb.WriteString("\n")
	}

	presets := make([]string, 0, len(multitimer.Presets))
	for i, p := range presetsLabels() {
		if i == m.PresetIndex {
			presets = append(presets, inputStyle.Render("+"+p))
		} else {
			presets = append(presets, inputDimStyle.Render("+"+p))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Join(presets, " "))
	return sb.String()
}

func (m *Model) entryView() string {
	digits := m.engine.TimerEntry().Digits()

	// Leading zeros are dimmed, as on a keypad display.
	var face strings.Builder
	lit := false
	units := []string{"h ", "m ", "s"}
	for i := 0; i < 3; i++ {
		pair := digits[i*2 : i*2+2]
		if pair != "00" {
			lit = true
		}
		style := inputDimStyle
		if lit {
			style = inputStyle
		}
		face.WriteString(style.Render(pair + units[i]))
	}

	form := fmt.Sprintf("%s\n\n%s\n\n%s",
		titleStyle.Render("Set Timer"),
		face.String(),
		helpStyle.Render("0-9: Digit | ':': 00 | Backspace: Delete | Enter: Start | Esc: Cancel"),
	)
	return lipgloss.Place(
		m.width, 24,
		lipgloss.Center, lipgloss.Center,
		boxStyle.Width(50).Render(form),
	)
}

func (m *Model) statusLine() string {
	notif := "off"
	if m.notifications != nil && m.notifications.Enabled() {
		notif = "on"
	}
	focus := "off"
	if m.engine.FocusAnalytics() {
		focus = "on"
	}
	return helpStyle.Render(fmt.Sprintf("sound: %s · notifications: %s · focus stats: %s · total focus: %s",
		m.engine.AlarmSound(), notif, focus, formatDuration(m.FocusTotal)))
}

func (m *Model) allLogsView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Width(m.width).Render("History"))
	sb.WriteString("\n\n")

	sb.WriteString(logHeaderStyle.Render("Focus, last 7 days"))
	sb.WriteString("\n")
	if len(m.FocusWeek) == 0 {
		sb.WriteString(inactiveStyle.Render("  no focus time recorded"))
		sb.WriteString("\n")
	}
	for _, day := range m.FocusWeek {
		sb.WriteString(fmt.Sprintf("  %s  %s\n", logTimeStyle.Render(day.Day), formatDuration(day.Focus)))
	}
	sb.WriteString("\n")

	sb.WriteString(logHeaderStyle.Render("Completed"))
	sb.WriteString("\n")
	if len(m.Records) == 0 {
		sb.WriteString(inactiveStyle.Render("  nothing finished yet"))
		sb.WriteString("\n")
	}
	const pageSize = 12
	end := min(m.LogViewScroll+pageSize, len(m.Records))
	for _, r := range m.Records[min(m.LogViewScroll, end):end] {
		sb.WriteString(m.formatRecord(r))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Scroll: Up/Down | Close: Esc/l"))
	return sb.String()
}

func (m *Model) formatRecord(r history.Record) string {
	when := logTimeStyle.Render(humanize.RelTime(r.FinishedAt, m.clock.Now(), "ago", "from now"))
	label := string(r.Kind)
	if r.Label != "" {
		label += " " + r.Label
	}
	return fmt.Sprintf("  %s  %s  %s", logTagStyle.Render("["+label+"]"), formatDuration(r.Duration), when)
}

func presetsLabels() []string {
	labels := make([]string, 0, len(multitimer.Presets))
	for _, p := range multitimer.Presets {
		labels = append(labels, fmt.Sprintf("%dmin", p))
	}
	return labels
}
