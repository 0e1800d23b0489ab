package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_FillsMissingCollections(t *testing.T) {
	snap := Snapshot{Cases: []Case{{ID: "c1", Name: "Acme v. Smith"}}}
	Normalize(&snap)

	c := snap.Cases[0]
	assert.NotNil(t, c.Tasks)
	assert.NotNil(t, c.Logs)
	assert.NotNil(t, c.Reminders)
	assert.NotNil(t, c.Deadlines)
	assert.NotNil(t, c.Clients)
	assert.NotNil(t, c.Opponents)
	assert.NotNil(t, c.Litigation.Proceedings)
	assert.NotNil(t, c.Trash.Tasks)
	assert.NotNil(t, c.Trash.Logs)
	assert.NotNil(t, c.Trash.Reminders)
	assert.NotNil(t, c.Trash.Deadlines)
	assert.Equal(t, CaseStatusActive, c.Status)
	assert.NotNil(t, snap.Parties)
}

func TestNormalize_KeepsExistingData(t *testing.T) {
	snap := Snapshot{Cases: []Case{{
		ID:     "c1",
		Status: CaseStatusArchived,
		Tasks:  []Task{{ID: "t1"}},
	}}}
	Normalize(&snap)

	assert.Equal(t, CaseStatusArchived, snap.Cases[0].Status)
	require.Len(t, snap.Cases[0].Tasks, 1)
	assert.NotNil(t, snap.Cases[0].Tasks[0].Sessions)
}

func TestUnmarshal_LegacyExportWithoutTrash(t *testing.T) {
	// Shape written by older exports: no trash, no litigation block,
	// sessions with null end.
	raw := `{
		"cases": [{
			"id": "c1",
			"name": "Acme v. Smith",
			"type": "litigation",
			"status": "active",
			"tasks": [{
				"id": "t1",
				"desc": "draft brief",
				"createdAt": "2026-03-10T09:00:00Z",
				"completedAt": null,
				"sessions": [{"start": "2026-03-10T09:00:00Z", "end": null}],
				"isRunning": true,
				"isCompleted": false
			}]
		}],
		"parties": []
	}`

	var snap Snapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &snap))
	Normalize(&snap)

	require.Len(t, snap.Cases, 1)
	c := snap.Cases[0]
	require.Len(t, c.Tasks, 1)
	assert.True(t, c.Tasks[0].IsRunning)
	require.Len(t, c.Tasks[0].Sessions, 1)
	assert.True(t, c.Tasks[0].Sessions[0].Open())
	assert.NotNil(t, c.Trash.Tasks)
	assert.NotNil(t, c.Litigation.Proceedings)
}

func TestMarshal_OpenSessionEndIsNull(t *testing.T) {
	s := WorkSession{}
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"end":null`)
}
