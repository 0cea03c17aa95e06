package engine

import (
	"clock_tui/internal/history"

	"go.uber.org/zap"
)

// expire runs the side effects for x exactly once. Every failure is handled
// here: logged, and shown as a toast when the user would notice it missing.
func (e *Engine) expire(x Expiry) Expiry {
	x.At = e.clock.Now()
	fields := []zap.Field{
		zap.String("kind", string(x.Kind)),
		zap.String("label", x.Label),
		zap.Duration("duration", x.Duration),
	}
	e.logger.Info("Countdown expired", fields...)

	if e.sinks.Alarm != nil {
		if err := e.sinks.Alarm.Play(e.alarmSound); err != nil {
			e.logger.Warn("Alarm playback failed", append(fields, zap.String("sound", e.alarmSound), zap.Error(err))...)
			e.toasts.Show("Could not play alarm sound")
		}
	}

	if e.sinks.Notifier != nil {
		if err := e.sinks.Notifier.Notify(x.Title, x.Body); err != nil {
			e.logger.Warn("Notification failed", append(fields, zap.Error(err))...)
			e.toasts.Show("Notifications unavailable")
		}
	}

	if e.sinks.History != nil {
		record := &history.Record{
			Kind:       x.Kind,
			Label:      x.Label,
			Duration:   x.Duration,
			FinishedAt: x.At,
		}
		if err := e.sinks.History.CreateRecord(record); err != nil {
			e.logger.Warn("Failed to record history", append(fields, zap.Error(err))...)
		}
	}

	return x
}
