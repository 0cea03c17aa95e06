package main

import (
	"fmt"
	"strings"
	"time"

	"clock_tui/internal/store"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	statsDays    int
	historyLimit int
)

// statsCmd prints per-day focus time
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show focus time per day",
	Long: `Prints the focus time recorded by finished pomodoro work phases,
one line per day, followed by the all-time total.`,
	Args: cobra.NoArgs,
	RunE: showStats,
}

// historyCmd prints recently finished countdowns
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently finished timers",
	Args:  cobra.NoArgs,
	RunE:  showHistory,
}

func init() {
	statsCmd.Flags().IntVar(&statsDays, "days", 7, "number of most recent days to show (0 = all)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of records to show")
}

func showStats(cmd *cobra.Command, args []string) error {
	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	stats, err := st.FocusStats(statsDays)
	if err != nil {
		return fmt.Errorf("failed to load focus stats: %w", err)
	}
	total, err := st.TotalFocus()
	if err != nil {
		return fmt.Errorf("failed to load focus total: %w", err)
	}
	logger.Debug("Loaded focus stats", zap.Int("days", len(stats)))

	out := cmd.OutOrStdout()
	if len(stats) == 0 {
		fmt.Fprintln(out, "No focus time recorded yet.")
		return nil
	}

	var peak time.Duration
	for _, s := range stats {
		peak = max(peak, s.Focus)
	}
	for _, s := range stats {
		bar := ""
		if peak > 0 {
			bar = strings.Repeat("█", int(20*s.Focus/peak))
		}
		fmt.Fprintf(out, "%s  %4d min  %s\n", s.Day, int(s.Focus.Minutes()), bar)
	}
	fmt.Fprintf(out, "\nTotal: %s minutes\n", humanize.Comma(int64(total.Minutes())))
	return nil
}

func showHistory(cmd *cobra.Command, args []string) error {
	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	records, err := st.RecentRecords(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "Nothing finished yet.")
		return nil
	}
	for _, r := range records {
		label := string(r.Kind)
		if r.Label != "" {
			label += " " + r.Label
		}
		fmt.Fprintf(out, "%-22s %-10s %s\n", label, r.Duration, humanize.Time(r.FinishedAt))
	}
	return nil
}
