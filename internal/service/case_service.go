package service

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lawos/case-tracker/internal/clock"
	"lawos/case-tracker/internal/locator"
	"lawos/case-tracker/internal/models"
	"lawos/case-tracker/internal/repository"
	"lawos/case-tracker/internal/timer"
	"lawos/case-tracker/internal/trash"
)

// CaseService orchestrates every mutation of the case collection. Each
// operation loads the snapshot, applies a pure transformation and
// writes the whole snapshot back, so a failed operation never leaves a
// partially mutated aggregate behind.
type CaseService struct {
	snapshots *repository.SnapshotRepository
	refs      *repository.TimerRefRepository
	tracker   *timer.Tracker
	locator   *locator.Locator
	clock     clock.Clock
	logger    *zap.Logger
}

func NewCaseService(
	snapshots *repository.SnapshotRepository,
	refs *repository.TimerRefRepository,
	tracker *timer.Tracker,
	loc *locator.Locator,
	clk clock.Clock,
	logger *zap.Logger,
) *CaseService {
	return &CaseService{
		snapshots: snapshots,
		refs:      refs,
		tracker:   tracker,
		locator:   loc,
		clock:     clk,
		logger:    logger,
	}
}

// Snapshot returns the full persisted state.
func (s *CaseService) Snapshot() (models.Snapshot, error) {
	return s.snapshots.Load()
}

// ReplaceSnapshot overwrites the persisted state wholesale, filling in
// collections older exports omitted.
func (s *CaseService) ReplaceSnapshot(snap models.Snapshot) error {
	models.Normalize(&snap)
	if err := s.snapshots.Save(snap); err != nil {
		return err
	}
	s.logger.Info("Snapshot replaced",
		zap.Int("cases", len(snap.Cases)),
		zap.Int("parties", len(snap.Parties)),
	)
	return nil
}

// StartTimer starts the timer on the given task. At most one task may
// run across the entire collection, so any other running task is
// paused first. Enforced here rather than left to caller discipline.
func (s *CaseService) StartTimer(caseID, taskID string) (models.Task, error) {
	snap, err := s.snapshots.Load()
	if err != nil {
		return models.Task{}, err
	}

	_, target, err := findTask(&snap, caseID, taskID)
	if err != nil {
		return models.Task{}, err
	}

	if running, ok := locator.Scan(snap.Cases); ok && running.Task.ID != taskID {
		*running.Task = s.tracker.Pause(*running.Task)
		s.logger.Info("Paused previously running task",
			zap.String("case_id", running.Case.ID),
			zap.String("task_id", running.Task.ID),
		)
	}

	*target = s.tracker.Start(*target)

	if err := s.snapshots.Save(snap); err != nil {
		return models.Task{}, err
	}
	if err := s.refs.Save(locator.Ref{CaseID: caseID, TaskID: taskID}); err != nil {
		s.logger.Warn("Failed to persist timer reference", zap.Error(err))
	}

	s.logger.Info("Timer started",
		zap.String("case_id", caseID),
		zap.String("task_id", taskID),
	)
	return *target, nil
}

// PauseTimer closes the task's open session. Pausing a paused task is
// a no-op.
func (s *CaseService) PauseTimer(caseID, taskID string) (models.Task, error) {
	return s.updateTask(caseID, taskID, func(t models.Task) (models.Task, error) {
		return s.tracker.Pause(t), nil
	})
}

// CompleteTask stops the timer if running and marks the task done.
func (s *CaseService) CompleteTask(caseID, taskID string) (models.Task, error) {
	return s.updateTask(caseID, taskID, func(t models.Task) (models.Task, error) {
		return s.tracker.Complete(t), nil
	})
}

// ReopenTask clears the completed flag without resuming the timer.
func (s *CaseService) ReopenTask(caseID, taskID string) (models.Task, error) {
	return s.updateTask(caseID, taskID, func(t models.Task) (models.Task, error) {
		return s.tracker.Reopen(t), nil
	})
}

// AddManualSession records a fully closed session entered by hand.
// Timestamps arrive as strings from the entry form; parse failures and
// inverted ranges both surface timer.ErrInvalidRange with the snapshot
// untouched.
func (s *CaseService) AddManualSession(caseID, taskID, start, end string) (models.Task, error) {
	startAt, err := timer.ParseTimestamp(start)
	if err != nil {
		return models.Task{}, err
	}
	endAt, err := timer.ParseTimestamp(end)
	if err != nil {
		return models.Task{}, err
	}
	return s.updateTask(caseID, taskID, func(t models.Task) (models.Task, error) {
		return s.tracker.AddManualSession(t, startAt, endAt)
	})
}

// ActiveTimer describes the task the timer widget should display.
type ActiveTimer struct {
	CaseID    string `json:"caseId"`
	CaseName  string `json:"caseName"`
	TaskID    string `json:"taskId"`
	TaskDesc  string `json:"taskDesc"`
	IsRunning bool   `json:"isRunning"`
	Seconds   int64  `json:"seconds"`
	Minimized bool   `json:"minimized"`
}

// ActiveTimer resolves the globally running task, or falls back to the
// last-known reference when nothing is running. Returns nil when there
// is nothing to display.
func (s *CaseService) ActiveTimer() (*ActiveTimer, error) {
	snap, err := s.snapshots.Load()
	if err != nil {
		return nil, err
	}

	active, ok := s.locator.Locate(snap.Cases)
	if !ok {
		return nil, nil
	}

	minimized, err := s.refs.Minimized()
	if err != nil {
		s.logger.Warn("Failed to read minimized flag", zap.Error(err))
	}

	return &ActiveTimer{
		CaseID:    active.Case.ID,
		CaseName:  active.Case.Name,
		TaskID:    active.Task.ID,
		TaskDesc:  active.Task.Desc,
		IsRunning: active.Task.IsRunning,
		Seconds:   timer.TaskDuration(*active.Task, s.clock.Now()),
		Minimized: minimized,
	}, nil
}

// ToggleMinimized flips the timer widget's minimized flag and returns
// the new value.
func (s *CaseService) ToggleMinimized() (bool, error) {
	minimized, err := s.refs.Minimized()
	if err != nil {
		return false, err
	}
	if err := s.refs.SetMinimized(!minimized); err != nil {
		return false, err
	}
	return !minimized, nil
}

// SoftDelete moves an entity into the case's trash.
func (s *CaseService) SoftDelete(caseID string, kind trash.Kind, id string) error {
	return s.updateCase(caseID, func(c models.Case) (models.Case, error) {
		return trash.SoftDelete(c, kind, id)
	})
}

// Restore moves an entity out of the case's trash back to the front of
// its live collection.
func (s *CaseService) Restore(caseID string, kind trash.Kind, id string) error {
	return s.updateCase(caseID, func(c models.Case) (models.Case, error) {
		return trash.Restore(c, kind, id)
	})
}

// ListTrash returns the case's trash for one entity kind.
func (s *CaseService) ListTrash(caseID string, kind trash.Kind) (any, error) {
	snap, err := s.snapshots.Load()
	if err != nil {
		return nil, err
	}
	c, err := findCase(&snap, caseID)
	if err != nil {
		return nil, err
	}
	return trash.List(*c, kind)
}

// CreateCaseInput carries the fields a new case is created with.
type CreateCaseInput struct {
	Name                  string         `json:"name"`
	Type                  string         `json:"type"`
	ClientContactName     string         `json:"clientContactName"`
	ClientContactInfo     string         `json:"clientContactInfo"`
	SpecialProjectRemarks string         `json:"specialProjectRemarks"`
	Clients               []models.Party `json:"clients"`
	Opponents             []models.Party `json:"opponents"`
}

// CreateCase adds a new case to the front of the collection.
func (s *CaseService) CreateCase(in CreateCaseInput) (models.Case, error) {
	snap, err := s.snapshots.Load()
	if err != nil {
		return models.Case{}, err
	}

	c := models.Case{
		ID:                    uuid.New().String(),
		Name:                  in.Name,
		Type:                  in.Type,
		Status:                models.CaseStatusActive,
		ClientContactName:     in.ClientContactName,
		ClientContactInfo:     in.ClientContactInfo,
		SpecialProjectRemarks: in.SpecialProjectRemarks,
		Clients:               in.Clients,
		Opponents:             in.Opponents,
	}
	models.NormalizeCase(&c)

	snap.Cases = append([]models.Case{c}, snap.Cases...)
	if err := s.snapshots.Save(snap); err != nil {
		return models.Case{}, err
	}
	s.logger.Info("Case created", zap.String("case_id", c.ID), zap.String("name", c.Name))
	return c, nil
}

// CreateParty adds a party to the shared party book.
func (s *CaseService) CreateParty(p models.Party) (models.Party, error) {
	snap, err := s.snapshots.Load()
	if err != nil {
		return models.Party{}, err
	}
	p.ID = uuid.New().String()
	snap.Parties = append([]models.Party{p}, snap.Parties...)
	if err := s.snapshots.Save(snap); err != nil {
		return models.Party{}, err
	}
	return p, nil
}

// AddTaskInput carries the fields a new task is created with.
type AddTaskInput struct {
	Type       string `json:"type"`
	CustomType string `json:"customType"`
	Desc       string `json:"desc"`
	Assignee   string `json:"assignee"`
	Notes      string `json:"notes"`
}

// AddTask creates a task in the given case. The task starts with no
// sessions and a stopped timer.
func (s *CaseService) AddTask(caseID string, in AddTaskInput) (models.Task, error) {
	t := models.Task{
		ID:         uuid.New().String(),
		Type:       in.Type,
		CustomType: in.CustomType,
		Desc:       in.Desc,
		Assignee:   in.Assignee,
		Notes:      in.Notes,
		CreatedAt:  s.clock.Now(),
		Sessions:   []models.WorkSession{},
	}
	err := s.updateCase(caseID, func(c models.Case) (models.Case, error) {
		c.Tasks = append([]models.Task{t}, c.Tasks...)
		return c, nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// AddLog creates a log entry in the given case.
func (s *CaseService) AddLog(caseID, date, content string) (models.Log, error) {
	l := models.Log{ID: uuid.New().String(), Date: date, Content: content}
	err := s.updateCase(caseID, func(c models.Case) (models.Case, error) {
		c.Logs = append([]models.Log{l}, c.Logs...)
		return c, nil
	})
	if err != nil {
		return models.Log{}, err
	}
	return l, nil
}

// AddReminder creates a reminder in the given case.
func (s *CaseService) AddReminder(caseID, date, timeOfDay, title string) (models.Reminder, error) {
	r := models.Reminder{ID: uuid.New().String(), Date: date, Time: timeOfDay, Title: title}
	err := s.updateCase(caseID, func(c models.Case) (models.Case, error) {
		c.Reminders = append([]models.Reminder{r}, c.Reminders...)
		return c, nil
	})
	if err != nil {
		return models.Reminder{}, err
	}
	return r, nil
}

// AddDeadline creates a deadline in the given case.
func (s *CaseService) AddDeadline(caseID, date, title string) (models.Deadline, error) {
	d := models.Deadline{ID: uuid.New().String(), Date: date, Title: title}
	err := s.updateCase(caseID, func(c models.Case) (models.Case, error) {
		c.Deadlines = append([]models.Deadline{d}, c.Deadlines...)
		return c, nil
	})
	if err != nil {
		return models.Deadline{}, err
	}
	return d, nil
}

// updateTask loads the snapshot, applies fn to one task and saves the
// result. On any error the stored snapshot is left as it was.
func (s *CaseService) updateTask(caseID, taskID string, fn func(models.Task) (models.Task, error)) (models.Task, error) {
	snap, err := s.snapshots.Load()
	if err != nil {
		return models.Task{}, err
	}
	_, target, err := findTask(&snap, caseID, taskID)
	if err != nil {
		return models.Task{}, err
	}
	updated, err := fn(*target)
	if err != nil {
		return models.Task{}, err
	}
	*target = updated
	if err := s.snapshots.Save(snap); err != nil {
		return models.Task{}, err
	}
	return updated, nil
}

// updateCase loads the snapshot, applies fn to one case and saves the
// result. On any error the stored snapshot is left as it was.
func (s *CaseService) updateCase(caseID string, fn func(models.Case) (models.Case, error)) error {
	snap, err := s.snapshots.Load()
	if err != nil {
		return err
	}
	for i := range snap.Cases {
		if snap.Cases[i].ID != caseID {
			continue
		}
		updated, err := fn(snap.Cases[i])
		if err != nil {
			return err
		}
		snap.Cases[i] = updated
		return s.snapshots.Save(snap)
	}
	return fmt.Errorf("case %s: %w", caseID, models.ErrNotFound)
}

func findCase(snap *models.Snapshot, caseID string) (*models.Case, error) {
	for i := range snap.Cases {
		if snap.Cases[i].ID == caseID {
			return &snap.Cases[i], nil
		}
	}
	return nil, fmt.Errorf("case %s: %w", caseID, models.ErrNotFound)
}

func findTask(snap *models.Snapshot, caseID, taskID string) (*models.Case, *models.Task, error) {
	c, err := findCase(snap, caseID)
	if err != nil {
		return nil, nil, err
	}
	for i := range c.Tasks {
		if c.Tasks[i].ID == taskID {
			return c, &c.Tasks[i], nil
		}
	}
	return nil, nil, fmt.Errorf("task %s in case %s: %w", taskID, caseID, models.ErrNotFound)
}
