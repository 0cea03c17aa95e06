// Package notify implements the audio and notification sinks.
package notify

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

var ErrUnknownSound = errors.New("unknown alarm sound")

// bellPatterns maps a sound name to how many terminal bells it rings.
var bellPatterns = map[string]int{
	"beep":    1,
	"chime":   2,
	"digital": 3,
}

// Bell plays alarm sounds by ringing the terminal bell.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Play rings the pattern for name. "none" is silent.
func (b *Bell) Play(name string) error {
	if name == "none" {
		return nil
	}
	n, ok := bellPatterns[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSound, name)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := io.WriteString(b.w, strings.Repeat("\a", n)); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}
