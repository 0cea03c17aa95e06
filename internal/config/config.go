// Package config loads the clock_tui YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appName        = "clock_tui"
	configFileName = "config.yaml"
)

// PomodoroConfig holds the default length of each pomodoro phase.
type PomodoroConfig struct {
	Work       time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
}

type Config struct {
	Pomodoro      PomodoroConfig
	DatabasePath  string
	FrameInterval time.Duration
	LogFile       string
	LogLevel      string
	AppName       string
}

type yamlConfig struct {
	Pomodoro struct {
		WorkMinutes       int `yaml:"work_minutes"`
		ShortBreakMinutes int `yaml:"short_break_minutes"`
		LongBreakMinutes  int `yaml:"long_break_minutes"`
	} `yaml:"pomodoro"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Scheduler struct {
		FrameMillis int `yaml:"frame_ms"`
	} `yaml:"scheduler"`
	Log struct {
		File  string `yaml:"file"`
		Level string `yaml:"level"`
	} `yaml:"log"`
	Notifications struct {
		AppName string `yaml:"app_name"`
	} `yaml:"notifications"`
}

func Default() Config {
	return Config{
		Pomodoro: PomodoroConfig{
			Work:       25 * time.Minute,
			ShortBreak: 5 * time.Minute,
			LongBreak:  15 * time.Minute,
		},
		DatabasePath:  "clock_tui.db",
		FrameInterval: 33 * time.Millisecond,
		LogFile:       "clock_tui.log",
		LogLevel:      "info",
		AppName:       appName,
	}
}

// DefaultPath is config.yaml under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, appName, configFileName), nil
}

// Load reads the file at path. A missing file yields defaults without error;
// an unparseable file yields defaults and the parse error.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(raw, &fileData); err != nil {
		return cfg, fmt.Errorf("parse config yaml: %w", err)
	}

	apply(&cfg, fileData)
	return cfg, nil
}

// Save writes cfg to path, creating its directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	var fileData yamlConfig
	fileData.Pomodoro.WorkMinutes = int(cfg.Pomodoro.Work / time.Minute)
	fileData.Pomodoro.ShortBreakMinutes = int(cfg.Pomodoro.ShortBreak / time.Minute)
	fileData.Pomodoro.LongBreakMinutes = int(cfg.Pomodoro.LongBreak / time.Minute)
	fileData.Database.Path = cfg.DatabasePath
	fileData.Scheduler.FrameMillis = int(cfg.FrameInterval / time.Millisecond)
	fileData.Log.File = cfg.LogFile
	fileData.Log.Level = cfg.LogLevel
	fileData.Notifications.AppName = cfg.AppName

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}
	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func apply(cfg *Config, fileData yamlConfig) {
	if fileData.Pomodoro.WorkMinutes > 0 {
		cfg.Pomodoro.Work = time.Duration(fileData.Pomodoro.WorkMinutes) * time.Minute
	}
	if fileData.Pomodoro.ShortBreakMinutes > 0 {
		cfg.Pomodoro.ShortBreak = time.Duration(fileData.Pomodoro.ShortBreakMinutes) * time.Minute
	}
	if fileData.Pomodoro.LongBreakMinutes > 0 {
		cfg.Pomodoro.LongBreak = time.Duration(fileData.Pomodoro.LongBreakMinutes) * time.Minute
	}
	if fileData.Database.Path != "" {
		cfg.DatabasePath = fileData.Database.Path
	}
	if fileData.Scheduler.FrameMillis >= 10 && fileData.Scheduler.FrameMillis <= 1000 {
		cfg.FrameInterval = time.Duration(fileData.Scheduler.FrameMillis) * time.Millisecond
	}
	if fileData.Log.File != "" {
		cfg.LogFile = fileData.Log.File
	}
	switch fileData.Log.Level {
	case "debug", "info", "warn", "error":
		cfg.LogLevel = fileData.Log.Level
	}
	if fileData.Notifications.AppName != "" {
		cfg.AppName = fileData.Notifications.AppName
	}
}
