package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"clock_tui/internal"
	"clock_tui/internal/config"
	"clock_tui/internal/engine"
	"clock_tui/internal/notify"
	"clock_tui/internal/settings"
	"clock_tui/internal/store"
	"clock_tui/internal/timer"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

var (
	configPath string
	dbPath     string
	debug      bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "clock_tui",
	Short: "Terminal timer, pomodoro, stopwatch and multi-timer",
	Long: `clock_tui is a terminal clock widget with a countdown timer,
a pomodoro cycle, a lap stopwatch and any number of parallel timers.

Settings, focus statistics and a history of finished timers are kept
in a local sqlite database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath == "" {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			configPath = p
		}

		var loadErr error
		cfg, loadErr = config.Load(configPath)
		if dbPath != "" {
			cfg.DatabasePath = dbPath
		}

		var err error
		logger, err = newLogger(cfg, debug)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if loadErr != nil {
			logger.Error("Config file unusable, using defaults", zap.String("path", configPath), zap.Error(loadErr))
		}
		return nil
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/clock_tui/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "sqlite database path (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(statsCmd, historyCmd, initCmd)
}

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}

// execute runs the root command and flushes the logger on every exit path,
// including a failing RunE.
func execute() error {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	return rootCmd.Execute()
}

// newLogger writes to the configured log file; the terminal belongs to the UI.
func newLogger(cfg config.Config, debug bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	if debug {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{cfg.LogFile}
	zc.ErrorOutputPaths = []string{cfg.LogFile}
	return zc.Build()
}

func runTUI(cmd *cobra.Command, args []string) error {
	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	desktop := notify.NewDesktop(cfg.AppName, settings.Notifications.Load(st))
	defer desktop.Close()

	eng := engine.New(engine.Options{
		Pomodoro:       cfg.Pomodoro,
		TimerInitial:   settings.TimerInitial.Load(st),
		AlarmSound:     settings.AlarmSound.Load(st),
		FocusAnalytics: settings.FocusAnalytics.Load(st),
		Logger:         logger.Named("engine"),
	}, engine.Sinks{
		Alarm:    notify.NewBell(os.Stderr),
		Notifier: desktop,
		Focus:    st,
		History:  st,
		Settings: st,
	})

	m := internal.NewModel(internal.Deps{
		Engine:        eng,
		Archive:       st,
		Settings:      st,
		Notifications: desktop,
		FrameInterval: cfg.FrameInterval,
		Logger:        logger.Named("ui"),
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if err != nil && gctx.Err() == nil {
			return fmt.Errorf("error running program: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return internal.RunTicker(gctx, timer.Unit, p.Send)
	})
	g.Go(func() error {
		if _, err := os.Stat(filepath.Dir(configPath)); err != nil {
			logger.Debug("Config directory missing, live reload disabled", zap.String("path", configPath))
			return nil
		}
		err := config.Watch(gctx, configPath, logger.Named("config"), func(c config.Config) {
			p.Send(internal.MsgConfig{Config: c})
		})
		if err != nil {
			logger.Warn("Config watcher stopped", zap.Error(err))
		}
		return nil
	})

	logger.Info("Started", zap.String("db", cfg.DatabasePath), zap.String("config", configPath))
	return g.Wait()
}
