package timer

import (
	"strconv"
	"time"
)

const entryDigits = 6

// Entry is the HHMMSS keypad buffer used to type a timer duration.
// Digits shift in from the right.
type Entry struct {
	digits string
}

func NewEntry() *Entry {
	e := &Entry{}
	e.Clear()
	return e
}

func (e *Entry) Clear() {
	e.digits = "000000"
}

// Push appends one digit. Anything other than '0'..'9' is ignored.
func (e *Entry) Push(r rune) {
	if r < '0' || r > '9' {
		return
	}
	e.shiftIn(string(r))
}

// PushDoubleZero appends "00".
func (e *Entry) PushDoubleZero() {
	e.shiftIn("00")
}

// Delete drops the last digit and pads a zero on the left.
func (e *Entry) Delete() {
	e.digits = "0" + e.digits[:entryDigits-1]
}

func (e *Entry) shiftIn(s string) {
	v := e.digits + s
	e.digits = v[len(v)-entryDigits:]
}

// Digits returns the raw six-digit buffer.
func (e *Entry) Digits() string {
	return e.digits
}

// Duration interprets the buffer as hours, minutes and seconds.
// Minutes and seconds above 59 carry over, as typed.
func (e *Entry) Duration() time.Duration {
	h, _ := strconv.Atoi(e.digits[0:2])
	m, _ := strconv.Atoi(e.digits[2:4])
	s, _ := strconv.Atoi(e.digits[4:6])
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second
}
