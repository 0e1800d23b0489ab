// Package clock abstracts the wall clock so timer logic can be tested
// against a controlled notion of "now".
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns the real wall clock.
func System() Clock { return systemClock{} }

// Fixed is a manually advanced clock for tests.
type Fixed struct {
	current time.Time
}

func NewFixed(t time.Time) *Fixed {
	return &Fixed{current: t}
}

func (f *Fixed) Now() time.Time { return f.current }

func (f *Fixed) Set(t time.Time) { f.current = t }

func (f *Fixed) Advance(d time.Duration) { f.current = f.current.Add(d) }
