package internal

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RunTicker sends MsgTick every interval until ctx is done. It is the host
// scheduler for the engine's once-a-second Tick.
func RunTicker(ctx context.Context, interval time.Duration, send func(tea.Msg)) error {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			send(MsgTick{})
		}
	}
}
