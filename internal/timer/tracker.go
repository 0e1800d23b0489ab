// Package timer implements the task timer state machine: recorded work
// sessions, running state, manual session entry and derived duration.
package timer

import (
	"errors"
	"fmt"
	"time"

	"lawos/case-tracker/internal/clock"
	"lawos/case-tracker/internal/models"
)

// ErrInvalidRange is returned when a manual session's end is not after
// its start, or a supplied timestamp cannot be parsed.
var ErrInvalidRange = errors.New("session end must be after start")

// Accepted layouts for manually entered timestamps. The first two are
// what an HTML datetime-local input produces.
var timestampLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses a manually entered timestamp. Failures are
// reported as ErrInvalidRange so callers surface them the same way as
// an inverted range.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, ErrInvalidRange)
}

// Tracker mutates a task's timer state. It owns no storage: every
// operation takes a Task value and returns the updated value, leaving
// the input untouched.
type Tracker struct {
	clock clock.Clock
}

func New(c clock.Clock) *Tracker {
	return &Tracker{clock: c}
}

// Start opens a new session on the task. Starting a task that is
// already running or completed is a no-op, never an error.
func (tr *Tracker) Start(t models.Task) models.Task {
	if t.IsRunning || t.IsCompleted {
		return t
	}
	sessions := append([]models.WorkSession(nil), t.Sessions...)
	t.Sessions = append(sessions, models.WorkSession{Start: tr.clock.Now()})
	t.IsRunning = true
	return t
}

// Pause closes the most recent open session and clears the running
// flag. The open session is found by scanning backwards rather than
// trusting the last index, since manual edits can append closed
// sessions behind it. Pausing a paused task is a no-op.
func (tr *Tracker) Pause(t models.Task) models.Task {
	if !t.IsRunning {
		return t
	}
	sessions := append([]models.WorkSession(nil), t.Sessions...)
	now := tr.clock.Now()
	for i := len(sessions) - 1; i >= 0; i-- {
		if sessions[i].Open() {
			end := now
			sessions[i].End = &end
			break
		}
	}
	t.Sessions = sessions
	t.IsRunning = false
	return t
}

// Complete stops the timer if it is running and marks the task done.
func (tr *Tracker) Complete(t models.Task) models.Task {
	if t.IsRunning {
		t = tr.Pause(t)
	}
	now := tr.clock.Now()
	t.IsCompleted = true
	t.CompletedAt = &now
	return t
}

// Reopen clears the completed flag. Sessions and CompletedAt are left
// as they were; reopening does not resume the timer.
func (tr *Tracker) Reopen(t models.Task) models.Task {
	t.IsCompleted = false
	return t
}

// AddManualSession appends a fully closed session with the given
// bounds. It does not touch the running state, so a manual entry can
// be recorded while the timer runs. Returns ErrInvalidRange and the
// task unchanged when end is not after start.
func (tr *Tracker) AddManualSession(t models.Task, start, end time.Time) (models.Task, error) {
	if !end.After(start) {
		return t, ErrInvalidRange
	}
	sessions := append([]models.WorkSession(nil), t.Sessions...)
	t.Sessions = append(sessions, models.WorkSession{Start: start, End: &end})
	return t, nil
}

// Duration sums the task's recorded time in whole seconds. Closed
// sessions contribute end-start; an open session contributes now-start
// only while the task is running, so the result is stable once paused
// and grows monotonically while running. Always recomputed from the
// session list, never cached.
func Duration(sessions []models.WorkSession, isRunning bool, now time.Time) int64 {
	var total time.Duration
	for _, s := range sessions {
		switch {
		case s.End != nil:
			total += s.End.Sub(s.Start)
		case isRunning:
			total += now.Sub(s.Start)
		}
	}
	if total < 0 {
		return 0
	}
	return int64(total / time.Second)
}

// TaskDuration is Duration applied to a task at the given instant.
func TaskDuration(t models.Task, now time.Time) int64 {
	return Duration(t.Sessions, t.IsRunning, now)
}

// FormatDuration renders seconds as HH:MM:SS.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
