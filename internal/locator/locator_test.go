package locator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lawos/case-tracker/internal/models"
)

type fakeRefStore struct {
	ref    Ref
	hasRef bool
	saves  int
}

func (s *fakeRefStore) Load() (Ref, bool, error) { return s.ref, s.hasRef, nil }

func (s *fakeRefStore) Save(ref Ref) error {
	s.ref = ref
	s.hasRef = true
	s.saves++
	return nil
}

func runningTask(id string, start time.Time) models.Task {
	return models.Task{
		ID:        id,
		IsRunning: true,
		Sessions:  []models.WorkSession{{Start: start}},
	}
}

func TestScan_LatestStartWins(t *testing.T) {
	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	cases := []models.Case{
		{ID: "A", Tasks: []models.Task{runningTask("T1", base)}},
		{ID: "B", Tasks: []models.Task{runningTask("T2", base.Add(5*time.Minute))}},
	}

	active, ok := Scan(cases)
	require.True(t, ok)
	assert.Equal(t, "B", active.Case.ID)
	assert.Equal(t, "T2", active.Task.ID)
}

func TestScan_IgnoresRunningFlagWithoutOpenSession(t *testing.T) {
	end := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	cases := []models.Case{
		{ID: "A", Tasks: []models.Task{{
			ID:        "T1",
			IsRunning: true,
			Sessions:  []models.WorkSession{{Start: end.Add(-time.Hour), End: &end}},
		}}},
	}

	_, ok := Scan(cases)
	assert.False(t, ok, "a running flag with no open session is not a candidate")
}

func TestScan_NoTasks(t *testing.T) {
	_, ok := Scan([]models.Case{{ID: "A"}})
	assert.False(t, ok)
}

func TestLocate_ScanHitPersistsReference(t *testing.T) {
	store := &fakeRefStore{}
	l := New(store, zap.NewNop())

	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	cases := []models.Case{{ID: "A", Tasks: []models.Task{runningTask("T1", base)}}}

	active, ok := l.Locate(cases)
	require.True(t, ok)
	assert.Equal(t, "T1", active.Task.ID)
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, Ref{CaseID: "A", TaskID: "T1"}, store.ref)
}

func TestLocate_FallsBackToStoredReference(t *testing.T) {
	store := &fakeRefStore{ref: Ref{CaseID: "A", TaskID: "T1"}, hasRef: true}
	l := New(store, zap.NewNop())

	cases := []models.Case{{ID: "A", Tasks: []models.Task{{ID: "T1", Desc: "paused work"}}}}

	active, ok := l.Locate(cases)
	require.True(t, ok)
	assert.Equal(t, "A", active.Case.ID)
	assert.Equal(t, "T1", active.Task.ID)
	assert.Equal(t, 0, store.saves, "fallback must not rewrite the reference")
}

func TestLocate_StaleReferenceReportsNone(t *testing.T) {
	store := &fakeRefStore{ref: Ref{CaseID: "A", TaskID: "T1"}, hasRef: true}
	l := New(store, zap.NewNop())

	// T1 has been deleted from case A.
	_, ok := l.Locate([]models.Case{{ID: "A"}})
	assert.False(t, ok)

	// Case A itself is gone.
	_, ok = l.Locate([]models.Case{{ID: "B"}})
	assert.False(t, ok)
}

func TestLocate_NoReferenceReportsNone(t *testing.T) {
	l := New(&fakeRefStore{}, zap.NewNop())

	_, ok := l.Locate([]models.Case{{ID: "A"}})
	assert.False(t, ok)
}
