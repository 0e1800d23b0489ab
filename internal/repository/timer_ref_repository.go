package repository

import (
	"database/sql"
	"fmt"

	"lawos/case-tracker/internal/locator"
)

// TimerRefRepository persists the last-known timer reference and the
// widget's minimized flag, independent of the main snapshot.
type TimerRefRepository struct {
	db *sql.DB
}

func NewTimerRefRepository(db *sql.DB) *TimerRefRepository {
	return &TimerRefRepository{db: db}
}

// Load returns the stored reference. The second result is false when
// no reference has been saved yet.
func (r *TimerRefRepository) Load() (locator.Ref, bool, error) {
	var ref locator.Ref
	err := r.db.QueryRow(`SELECT case_id, task_id FROM timer_ref WHERE id = 1`).
		Scan(&ref.CaseID, &ref.TaskID)
	if err == sql.ErrNoRows {
		return locator.Ref{}, false, nil
	}
	if err != nil {
		return locator.Ref{}, false, fmt.Errorf("failed to read timer reference: %w", err)
	}
	if ref.CaseID == "" || ref.TaskID == "" {
		return locator.Ref{}, false, nil
	}
	return ref, true, nil
}

// Save stores the reference, preserving the minimized flag.
func (r *TimerRefRepository) Save(ref locator.Ref) error {
	_, err := r.db.Exec(`
		INSERT INTO timer_ref (id, case_id, task_id, updated_at)
		VALUES (1, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET case_id = excluded.case_id, task_id = excluded.task_id, updated_at = CURRENT_TIMESTAMP
	`, ref.CaseID, ref.TaskID)
	if err != nil {
		return fmt.Errorf("failed to write timer reference: %w", err)
	}
	return nil
}

// Minimized reports whether the timer widget is minimized.
func (r *TimerRefRepository) Minimized() (bool, error) {
	var minimized bool
	err := r.db.QueryRow(`SELECT minimized FROM timer_ref WHERE id = 1`).Scan(&minimized)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read minimized flag: %w", err)
	}
	return minimized, nil
}

// SetMinimized stores the widget's minimized flag, preserving the
// reference.
func (r *TimerRefRepository) SetMinimized(minimized bool) error {
	_, err := r.db.Exec(`
		INSERT INTO timer_ref (id, minimized, updated_at)
		VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET minimized = excluded.minimized, updated_at = CURRENT_TIMESTAMP
	`, minimized)
	if err != nil {
		return fmt.Errorf("failed to write minimized flag: %w", err)
	}
	return nil
}
