package timer

import "time"

// Stopwatch accumulates elapsed time from wall-clock deltas between samples,
// so it stays correct whatever rate the host samples it at.
type Stopwatch struct {
	clock      Clock
	elapsed    time.Duration
	running    bool
	lastSample time.Time
	laps       []time.Duration
}

func NewStopwatch(clock Clock) *Stopwatch {
	if clock == nil {
		clock = SystemClock
	}
	return &Stopwatch{clock: clock}
}

func (s *Stopwatch) Start() {
	if s.running {
		return
	}
	s.running = true
	s.lastSample = s.clock.Now()
}

// Pause takes a final sample and stops accumulating.
func (s *Stopwatch) Pause() {
	if !s.running {
		return
	}
	s.Sample()
	s.running = false
}

func (s *Stopwatch) Toggle() {
	if s.running {
		s.Pause()
		return
	}
	s.Start()
}

// Sample adds the time since the previous sample to elapsed.
// A clock that stepped backwards contributes nothing.
func (s *Stopwatch) Sample() {
	if !s.running {
		return
	}
	now := s.clock.Now()
	delta := now.Sub(s.lastSample)
	s.lastSample = now
	if delta > 0 {
		s.elapsed += delta
	}
}

// Lap records the current elapsed time, most recent first.
// It only works while the stopwatch is running.
func (s *Stopwatch) Lap() bool {
	if !s.running {
		return false
	}
	s.Sample()
	s.laps = append([]time.Duration{s.elapsed}, s.laps...)
	return true
}

// Reset clears elapsed time and laps. It only works while stopped.
func (s *Stopwatch) Reset() bool {
	if s.running {
		return false
	}
	s.elapsed = 0
	s.laps = nil
	return true
}

// Clear stops the stopwatch and resets it unconditionally.
func (s *Stopwatch) Clear() {
	s.running = false
	s.Reset()
}

func (s *Stopwatch) Elapsed() time.Duration {
	return s.elapsed
}

func (s *Stopwatch) Running() bool {
	return s.running
}

// Laps returns a copy of the recorded laps, most recent first.
func (s *Stopwatch) Laps() []time.Duration {
	return append([]time.Duration(nil), s.laps...)
}
