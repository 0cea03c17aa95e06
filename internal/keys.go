package internal

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit          key.Binding
	NextMode      key.Binding
	TimerMode     key.Binding
	PomodoroMode  key.Binding
	StopwatchMode key.Binding
	MultiMode     key.Binding
	Toggle        key.Binding
	Reset         key.Binding
	Escape        key.Binding
	Edit          key.Binding
	Work          key.Binding
	ShortBreak    key.Binding
	LongBreak     key.Binding
	Goal          key.Binding
	Up            key.Binding
	Down          key.Binding
	PrevPreset    key.Binding
	NextPreset    key.Binding
	Add           key.Binding
	Delete        key.Binding
	Logs          key.Binding
	Notifications key.Binding
	Focus         key.Binding
	Sound         key.Binding
	Help          key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextMode:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next mode")),
		TimerMode:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "timer")),
		PomodoroMode:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "pomodoro")),
		StopwatchMode: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "stopwatch")),
		MultiMode:     key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "multi")),
		Toggle:        key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "start/pause")),
		Reset:         key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset/lap")),
		Escape:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop")),
		Edit:          key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "set duration")),
		Work:          key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "work")),
		ShortBreak:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "break")),
		LongBreak:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "long break")),
		Goal:          key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "set goal")),
		Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PrevPreset:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "shorter")),
		NextPreset:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "longer")),
		Add:           key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new timer")),
		Delete:        key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Logs:          key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "history")),
		Notifications: key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "notifications")),
		Focus:         key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "focus stats")),
		Sound:         key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "alarm sound")),
		Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

// modeKeys narrows the help line to what the current mode understands.
type modeKeys struct {
	keyMap
	mode Mode
}

func (k modeKeys) ShortHelp() []key.Binding {
	switch k.mode {
	case ModePomodoro:
		return []key.Binding{k.Toggle, k.Reset, k.Work, k.ShortBreak, k.LongBreak, k.Goal, k.NextMode, k.Help, k.Quit}
	case ModeStopwatch:
		return []key.Binding{k.Toggle, k.Reset, k.Escape, k.NextMode, k.Help, k.Quit}
	case ModeMulti:
		return []key.Binding{k.Add, k.PrevPreset, k.NextPreset, k.Toggle, k.Reset, k.Delete, k.NextMode, k.Help, k.Quit}
	}
	return []key.Binding{k.Toggle, k.Reset, k.Edit, k.NextMode, k.Help, k.Quit}
}

func (k modeKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.ShortHelp(),
		{k.TimerMode, k.PomodoroMode, k.StopwatchMode, k.MultiMode, k.Up, k.Down},
		{k.Logs, k.Notifications, k.Focus, k.Sound},
	}
}
