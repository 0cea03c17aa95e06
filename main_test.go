package main

import (
	"bytes"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"clock_tui/internal/config"
	"clock_tui/internal/history"
	"clock_tui/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	out, _ := runCLIConfig(t, args...)
	return out
}

// runCLIConfig runs the root command against a throwaway config file whose
// log output stays inside the test's temp dir.
func runCLIConfig(t *testing.T, args ...string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	logFile := filepath.Join(dir, "clock_tui.log")
	require.NoError(t, os.WriteFile(cfgFile, []byte("log:\n  file: "+logFile+"\n"), 0o644))

	t.Cleanup(func() {
		configPath, dbPath, debug, forceInit = "", "", false, false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", cfgFile))
	require.NoError(t, rootCmd.Execute())
	return out.String(), cfgFile
}

func seedStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clock.db")
	st, err := store.Open(path)
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.AddFocus("2024-03-01", 50*time.Minute))
	require.NoError(t, st.AddFocus("2024-03-02", 25*time.Minute))
	require.NoError(t, st.CreateRecord(&history.Record{
		Kind:       history.KindMulti,
		Label:      "5:00",
		Duration:   5 * time.Minute,
		FinishedAt: time.Now().Add(-time.Hour),
	}))
	return path
}

func TestStatsCommand(t *testing.T) {
	db := seedStore(t)
	out := runCLI(t, "stats", "--db", db)

	assert.Contains(t, out, "2024-03-01    50 min")
	assert.Contains(t, out, "2024-03-02    25 min")
	assert.Contains(t, out, "Total: 75 minutes")
}

func TestStatsCommand_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "empty.db")
	out := runCLI(t, "stats", "--db", db)
	assert.Contains(t, out, "No focus time recorded yet.")
}

func TestHistoryCommand(t *testing.T) {
	db := seedStore(t)
	out := runCLI(t, "history", "--db", db, "-n", "5")

	assert.Contains(t, out, "multi 5:00")
	assert.Contains(t, out, "5m0s")
	assert.Contains(t, out, "1 hour ago")
}

func TestInitCommand_WritesEffectiveConfig(t *testing.T) {
	db := filepath.Join(t.TempDir(), "clock.db")
	out, cfgFile := runCLIConfig(t, "init", "--force", "--db", db)
	assert.Contains(t, out, "Wrote "+cfgFile)

	written, err := config.Load(cfgFile)
	require.NoError(t, err)
	assert.Equal(t, db, written.DatabasePath)
	assert.Equal(t, filepath.Join(filepath.Dir(cfgFile), "clock_tui.log"), written.LogFile)
	assert.Equal(t, config.Default().Pomodoro, written.Pomodoro)
}

// syncSink is a zap sink that only counts Sync calls.
type syncSink struct{ syncs *atomic.Int32 }

func (s syncSink) Write(p []byte) (int, error) { return len(p), nil }
func (s syncSink) Sync() error                 { s.syncs.Add(1); return nil }
func (s syncSink) Close() error                { return nil }

var sinkSyncs atomic.Int32

func init() {
	if err := zap.RegisterSink("countsync", func(*url.URL) (zap.Sink, error) {
		return syncSink{syncs: &sinkSyncs}, nil
	}); err != nil {
		panic(err)
	}
}

func TestExecute_SyncsLoggerWhenCommandFails(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("log:\n  file: countsync://clock_tui\n"), 0o644))
	t.Cleanup(func() {
		configPath, dbPath, debug, forceInit = "", "", false, false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	// init refuses to overwrite the existing file without --force.
	rootCmd.SetArgs([]string{"init", "--config", cfgFile})

	before := sinkSyncs.Load()
	err := execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Greater(t, sinkSyncs.Load(), before)
}
