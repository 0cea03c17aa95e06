// Package settings reads and writes typed user settings through a
// key-value store. A missing or unreadable value always yields the field's
// default; callers never see a parse error.
package settings

import (
	"strconv"
	"time"
)

// KV is the persistence sink settings are kept in.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Field describes one persisted setting.
type Field[T any] struct {
	Key     string
	Default T

	parse  func(string) (T, error)
	format func(T) string
	valid  func(T) bool
}

// Load returns the stored value, or Default when the value is absent,
// unparseable, invalid, or the store fails.
func (f Field[T]) Load(kv KV) T {
	if kv == nil {
		return f.Default
	}
	raw, ok, err := kv.Get(f.Key)
	if err != nil || !ok {
		return f.Default
	}
	v, err := f.parse(raw)
	if err != nil {
		return f.Default
	}
	if f.valid != nil && !f.valid(v) {
		return f.Default
	}
	return v
}

// Save writes v. Invalid values are replaced by Default.
func (f Field[T]) Save(kv KV, v T) error {
	if kv == nil {
		return nil
	}
	if f.valid != nil && !f.valid(v) {
		v = f.Default
	}
	return kv.Set(f.Key, f.format(v))
}

func Bool(key string, def bool) Field[bool] {
	return Field[bool]{
		Key:     key,
		Default: def,
		parse:   strconv.ParseBool,
		format:  strconv.FormatBool,
	}
}

func String(key, def string, allowed ...string) Field[string] {
	f := Field[string]{
		Key:     key,
		Default: def,
		parse:   func(s string) (string, error) { return s, nil },
		format:  func(s string) string { return s },
	}
	if len(allowed) > 0 {
		f.valid = func(s string) bool {
			for _, a := range allowed {
				if s == a {
					return true
				}
			}
			return false
		}
	}
	return f
}

// Seconds stores a non-negative duration as whole seconds.
func Seconds(key string, def time.Duration) Field[time.Duration] {
	return Field[time.Duration]{
		Key:     key,
		Default: def,
		parse: func(s string) (time.Duration, error) {
			n, err := strconv.ParseInt(s, 10, 64)
			return time.Duration(n) * time.Second, err
		},
		format: func(d time.Duration) string {
			return strconv.FormatInt(int64(d/time.Second), 10)
		},
		valid: func(d time.Duration) bool { return d >= 0 },
	}
}

// AlarmSounds are the sounds the audio sink knows how to play.
var AlarmSounds = []string{"beep", "chime", "digital", "none"}

var (
	Notifications  = Bool("clock_notifications", true)
	FocusAnalytics = Bool("clock_focusAnalytics", true)
	AlarmSound     = String("clock_alarmSound", "beep", AlarmSounds...)
	TimerInitial   = Seconds("clock_timerInitial", 25*time.Minute)
	FocusGoal      = String("clock_focusGoal", "")
)

// NextAlarmSound cycles through AlarmSounds.
func NextAlarmSound(current string) string {
	for i, s := range AlarmSounds {
		if s == current {
			return AlarmSounds[(i+1)%len(AlarmSounds)]
		}
	}
	return AlarmSounds[0]
}
