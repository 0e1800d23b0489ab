package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawos/case-tracker/internal/models"
)

func TestRows_SessionBasedBounds(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	completed := start.Add(2 * time.Hour)

	cases := []models.Case{{
		Name: "Acme v. Smith",
		Tasks: []models.Task{{
			ID:          "t1",
			Desc:        "draft brief",
			Assignee:    "jz",
			CreatedAt:   start.Add(-time.Hour),
			Sessions:    []models.WorkSession{{Start: start, End: &end}},
			CompletedAt: &completed,
			IsCompleted: true,
		}},
	}}

	rows := Rows(cases, completed)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme v. Smith", rows[0].CaseName)
	assert.Equal(t, "2026-03-10 09:00", rows[0].Start)
	assert.Equal(t, "2026-03-10 11:00", rows[0].End, "completedAt wins over last session end")
	assert.Equal(t, 1.5, rows[0].Hours)
}

func TestRows_LastSessionEndWhenNotCompleted(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	cases := []models.Case{{
		Name: "Acme v. Smith",
		Tasks: []models.Task{{
			ID:       "t1",
			Sessions: []models.WorkSession{{Start: start, End: &end}},
		}},
	}}

	rows := Rows(cases, end.Add(time.Hour))
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-03-10 10:00", rows[0].End)
	assert.Equal(t, 1.0, rows[0].Hours)
}

func TestRows_ZeroSessionTaskFallsBackToCreation(t *testing.T) {
	created := time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)
	cases := []models.Case{{
		Name:  "Acme v. Smith",
		Tasks: []models.Task{{ID: "t1", Desc: "untracked", CreatedAt: created}},
	}}

	rows := Rows(cases, created.Add(time.Hour))
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-03-10 08:30", rows[0].Start)
	assert.Equal(t, "", rows[0].End)
	assert.Equal(t, 0.0, rows[0].Hours)
}

func TestRows_RunningTaskCountsOpenSession(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	cases := []models.Case{{
		Tasks: []models.Task{{
			ID:        "t1",
			IsRunning: true,
			Sessions:  []models.WorkSession{{Start: start}},
		}},
	}}

	rows := Rows(cases, start.Add(30*time.Minute))
	require.Len(t, rows, 1)
	assert.Equal(t, 0.5, rows[0].Hours)
	assert.Equal(t, "", rows[0].End, "an in-progress task has no end time yet")
}

func TestWriteCSV(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	cases := []models.Case{{
		Name: "Acme v. Smith",
		Tasks: []models.Task{{
			ID:       "t1",
			Desc:     "draft brief",
			Assignee: "jz",
			Sessions: []models.WorkSession{{Start: start, End: &end}},
		}},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, cases, end))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"case", "task", "assignee", "start", "end", "hours"}, records[0])
	assert.Equal(t, []string{"Acme v. Smith", "draft brief", "jz", "2026-03-10 09:00", "2026-03-10 10:00", "1.00"}, records[1])
}
