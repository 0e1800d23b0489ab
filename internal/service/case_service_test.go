package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lawos/case-tracker/internal/clock"
	"lawos/case-tracker/internal/database"
	"lawos/case-tracker/internal/locator"
	"lawos/case-tracker/internal/models"
	"lawos/case-tracker/internal/repository"
	"lawos/case-tracker/internal/timer"
	"lawos/case-tracker/internal/trash"
)

func newTestService(t *testing.T) (*CaseService, *clock.Fixed) {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clk := clock.NewFixed(time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC))
	snapshots := repository.NewSnapshotRepository(db.DB)
	refs := repository.NewTimerRefRepository(db.DB)
	svc := NewCaseService(
		snapshots,
		refs,
		timer.New(clk),
		locator.New(refs, zap.NewNop()),
		clk,
		zap.NewNop(),
	)
	return svc, clk
}

func seedCases(t *testing.T, svc *CaseService, cases ...models.Case) {
	t.Helper()
	require.NoError(t, svc.ReplaceSnapshot(models.Snapshot{Cases: cases}))
}

func TestStartTimer_PausesOtherRunningTask(t *testing.T) {
	svc, clk := newTestService(t)
	seedCases(t, svc,
		models.Case{ID: "A", Name: "Acme v. Smith", Tasks: []models.Task{{ID: "T1", CreatedAt: clk.Now()}}},
		models.Case{ID: "B", Name: "Jones estate", Tasks: []models.Task{{ID: "T2", CreatedAt: clk.Now()}}},
	)

	_, err := svc.StartTimer("A", "T1")
	require.NoError(t, err)

	clk.Advance(5 * time.Minute)
	_, err = svc.StartTimer("B", "T2")
	require.NoError(t, err)

	snap, err := svc.Snapshot()
	require.NoError(t, err)

	t1 := snap.Cases[0].Tasks[0]
	t2 := snap.Cases[1].Tasks[0]
	assert.False(t, t1.IsRunning, "starting T2 must pause T1")
	require.Len(t, t1.Sessions, 1)
	require.NotNil(t, t1.Sessions[0].End)
	assert.True(t, t2.IsRunning)

	running, ok := locator.Scan(snap.Cases)
	require.True(t, ok)
	assert.Equal(t, "T2", running.Task.ID, "exactly one task runs globally")
}

func TestStartTimer_SameTaskIsNoOp(t *testing.T) {
	svc, clk := newTestService(t)
	seedCases(t, svc, models.Case{ID: "A", Tasks: []models.Task{{ID: "T1", CreatedAt: clk.Now()}}})

	_, err := svc.StartTimer("A", "T1")
	require.NoError(t, err)
	clk.Advance(time.Minute)
	task, err := svc.StartTimer("A", "T1")
	require.NoError(t, err)

	assert.True(t, task.IsRunning)
	assert.Len(t, task.Sessions, 1, "restarting the running task must not open a second session")
}

func TestStartTimer_UnknownTask(t *testing.T) {
	svc, _ := newTestService(t)
	seedCases(t, svc, models.Case{ID: "A"})

	_, err := svc.StartTimer("A", "nope")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.StartTimer("nope", "T1")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPauseThenActiveTimer_FallsBackToReference(t *testing.T) {
	svc, clk := newTestService(t)
	seedCases(t, svc, models.Case{ID: "A", Name: "Acme v. Smith", Tasks: []models.Task{{ID: "T1", Desc: "draft brief", CreatedAt: clk.Now()}}})

	_, err := svc.StartTimer("A", "T1")
	require.NoError(t, err)
	clk.Advance(45 * time.Second)
	_, err = svc.PauseTimer("A", "T1")
	require.NoError(t, err)

	active, err := svc.ActiveTimer()
	require.NoError(t, err)
	require.NotNil(t, active, "the widget keeps showing the last task after pause")
	assert.Equal(t, "T1", active.TaskID)
	assert.False(t, active.IsRunning)
	assert.Equal(t, int64(45), active.Seconds)

	clk.Advance(time.Hour)
	active, err = svc.ActiveTimer()
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, int64(45), active.Seconds, "duration is stable once paused")
}

func TestActiveTimer_StaleReferenceReportsNone(t *testing.T) {
	svc, clk := newTestService(t)
	seedCases(t, svc, models.Case{ID: "A", Tasks: []models.Task{{ID: "T1", CreatedAt: clk.Now()}}})

	_, err := svc.StartTimer("A", "T1")
	require.NoError(t, err)
	_, err = svc.PauseTimer("A", "T1")
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete("A", trash.KindTask, "T1"))

	active, err := svc.ActiveTimer()
	require.NoError(t, err)
	assert.Nil(t, active, "a deleted task must not resurface through the reference")
}

func TestCompleteAndReopen(t *testing.T) {
	svc, clk := newTestService(t)
	seedCases(t, svc, models.Case{ID: "A", Tasks: []models.Task{{ID: "T1", CreatedAt: clk.Now()}}})

	_, err := svc.StartTimer("A", "T1")
	require.NoError(t, err)
	clk.Advance(10 * time.Minute)

	task, err := svc.CompleteTask("A", "T1")
	require.NoError(t, err)
	assert.True(t, task.IsCompleted)
	assert.False(t, task.IsRunning)
	require.NotNil(t, task.CompletedAt)

	reopened, err := svc.ReopenTask("A", "T1")
	require.NoError(t, err)
	assert.False(t, reopened.IsCompleted)
	assert.False(t, reopened.IsRunning)
	assert.Equal(t, task.Sessions, reopened.Sessions)
	assert.Equal(t, task.CompletedAt, reopened.CompletedAt)
}

func TestAddManualSession_InvalidRangeLeavesSnapshotUntouched(t *testing.T) {
	svc, _ := newTestService(t)
	seedCases(t, svc, models.Case{ID: "A", Tasks: []models.Task{{ID: "T1"}}})

	before, err := svc.Snapshot()
	require.NoError(t, err)

	_, err = svc.AddManualSession("A", "T1", "2026-03-10T10:00", "2026-03-10T09:00")
	assert.ErrorIs(t, err, timer.ErrInvalidRange)

	_, err = svc.AddManualSession("A", "T1", "garbage", "2026-03-10T09:00")
	assert.ErrorIs(t, err, timer.ErrInvalidRange)

	after, err := svc.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAddManualSession_Valid(t *testing.T) {
	svc, _ := newTestService(t)
	seedCases(t, svc, models.Case{ID: "A", Tasks: []models.Task{{ID: "T1"}}})

	task, err := svc.AddManualSession("A", "T1", "2026-03-10T09:00", "2026-03-10T10:30")
	require.NoError(t, err)
	require.Len(t, task.Sessions, 1)
	require.NotNil(t, task.Sessions[0].End)
	assert.False(t, task.IsRunning)
	assert.Equal(t, int64(5400), timer.Duration(task.Sessions, false, time.Now()))
}

func TestTrashRoundTripThroughService(t *testing.T) {
	svc, _ := newTestService(t)
	seedCases(t, svc, models.Case{ID: "A", Logs: []models.Log{{ID: "L1", Content: "filed motion"}}})

	require.NoError(t, svc.SoftDelete("A", trash.KindLog, "L1"))

	items, err := svc.ListTrash("A", trash.KindLog)
	require.NoError(t, err)
	logs, ok := items.([]models.Log)
	require.True(t, ok)
	require.Len(t, logs, 1)
	assert.Equal(t, "filed motion", logs[0].Content)

	require.NoError(t, svc.Restore("A", trash.KindLog, "L1"))

	snap, err := svc.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Cases[0].Logs, 1)
	assert.Equal(t, "L1", snap.Cases[0].Logs[0].ID)
	assert.Empty(t, snap.Cases[0].Trash.Logs)
}

func TestSoftDelete_NotFoundLeavesSnapshotUntouched(t *testing.T) {
	svc, _ := newTestService(t)
	seedCases(t, svc, models.Case{ID: "A", Logs: []models.Log{{ID: "L1"}}})

	before, err := svc.Snapshot()
	require.NoError(t, err)

	err = svc.SoftDelete("A", trash.KindLog, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)

	after, err := svc.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCreateEntities(t *testing.T) {
	svc, _ := newTestService(t)

	c, err := svc.CreateCase(CreateCaseInput{Name: "Acme v. Smith", Type: "litigation"})
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)
	assert.Equal(t, models.CaseStatusActive, c.Status)
	assert.NotNil(t, c.Trash.Tasks, "a new case starts with an initialized trash")

	task, err := svc.AddTask(c.ID, AddTaskInput{Desc: "draft brief", Assignee: "jz"})
	require.NoError(t, err)
	require.NotEmpty(t, task.ID)
	assert.False(t, task.IsRunning)
	assert.Empty(t, task.Sessions)

	_, err = svc.AddLog(c.ID, "2026-03-10", "filed motion")
	require.NoError(t, err)
	_, err = svc.AddReminder(c.ID, "2026-03-12", "09:30", "hearing prep")
	require.NoError(t, err)
	_, err = svc.AddDeadline(c.ID, "2026-04-01", "appeal deadline")
	require.NoError(t, err)

	p, err := svc.CreateParty(models.Party{Name: "Acme Corp", Type: "company"})
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)

	snap, err := svc.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Cases, 1)
	assert.Len(t, snap.Cases[0].Tasks, 1)
	assert.Len(t, snap.Cases[0].Logs, 1)
	assert.Len(t, snap.Cases[0].Reminders, 1)
	assert.Len(t, snap.Cases[0].Deadlines, 1)
	require.Len(t, snap.Parties, 1)
}

func TestAddTask_PrependsNewest(t *testing.T) {
	svc, _ := newTestService(t)
	seedCases(t, svc, models.Case{ID: "A", Tasks: []models.Task{{ID: "old"}}})

	task, err := svc.AddTask("A", AddTaskInput{Desc: "newer"})
	require.NoError(t, err)

	snap, err := svc.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Cases[0].Tasks, 2)
	assert.Equal(t, task.ID, snap.Cases[0].Tasks[0].ID)
}

func TestToggleMinimized(t *testing.T) {
	svc, _ := newTestService(t)

	minimized, err := svc.ToggleMinimized()
	require.NoError(t, err)
	assert.True(t, minimized)

	minimized, err = svc.ToggleMinimized()
	require.NoError(t, err)
	assert.False(t, minimized)
}
