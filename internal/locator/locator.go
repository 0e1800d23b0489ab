// Package locator finds the single globally running task across the
// whole case collection and remembers the last-known timer reference
// so the timer widget can survive a restart.
package locator

import (
	"time"

	"go.uber.org/zap"

	"lawos/case-tracker/internal/models"
)

// Ref identifies the last task the timer widget was attached to.
type Ref struct {
	CaseID string `json:"caseId"`
	TaskID string `json:"taskId"`
}

// RefStore persists the last-known timer reference independently of
// the main snapshot.
type RefStore interface {
	Load() (Ref, bool, error)
	Save(Ref) error
}

// Active is a located (case, task) pair. The pointers refer into the
// slice passed to Scan/Locate.
type Active struct {
	Case *models.Case
	Task *models.Task
}

// Scan walks every case and task looking for a running task with an
// open session. When corrupted data leaves more than one task marked
// running, the one whose open session started latest wins, so the
// locator degrades gracefully instead of flapping. Pure: no side
// effects.
func Scan(cases []models.Case) (Active, bool) {
	var best Active
	var bestStart time.Time
	found := false

	for ci := range cases {
		c := &cases[ci]
		for ti := range c.Tasks {
			t := &c.Tasks[ti]
			if !t.IsRunning {
				continue
			}
			open := lastOpenSession(t.Sessions)
			if open == nil {
				continue
			}
			if !found || open.Start.After(bestStart) {
				best = Active{Case: c, Task: t}
				bestStart = open.Start
				found = true
			}
		}
	}
	return best, found
}

func lastOpenSession(sessions []models.WorkSession) *models.WorkSession {
	for i := len(sessions) - 1; i >= 0; i-- {
		if sessions[i].Open() {
			return &sessions[i]
		}
	}
	return nil
}

// Locator resolves the active timer, falling back to the persisted
// last-known reference when nothing is running.
type Locator struct {
	store  RefStore
	logger *zap.Logger
}

func New(store RefStore, logger *zap.Logger) *Locator {
	return &Locator{store: store, logger: logger}
}

// Locate returns the task the timer widget should display. A scan hit
// also persists the reference as a side effect, so a later reload
// still shows the task after it has been paused. With no running task
// the stored reference is resolved against the current collection; if
// the case or task has since been deleted the result is "none".
func (l *Locator) Locate(cases []models.Case) (Active, bool) {
	if active, ok := Scan(cases); ok {
		ref := Ref{CaseID: active.Case.ID, TaskID: active.Task.ID}
		if err := l.store.Save(ref); err != nil {
			l.logger.Warn("Failed to persist timer reference",
				zap.String("case_id", ref.CaseID),
				zap.String("task_id", ref.TaskID),
				zap.Error(err),
			)
		}
		return active, true
	}

	ref, ok, err := l.store.Load()
	if err != nil {
		l.logger.Warn("Failed to load timer reference", zap.Error(err))
		return Active{}, false
	}
	if !ok {
		return Active{}, false
	}
	return resolve(cases, ref)
}

func resolve(cases []models.Case, ref Ref) (Active, bool) {
	for ci := range cases {
		c := &cases[ci]
		if c.ID != ref.CaseID {
			continue
		}
		for ti := range c.Tasks {
			if c.Tasks[ti].ID == ref.TaskID {
				return Active{Case: c, Task: &c.Tasks[ti]}, true
			}
		}
		return Active{}, false
	}
	return Active{}, false
}
