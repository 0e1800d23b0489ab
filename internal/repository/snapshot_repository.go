package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"lawos/case-tracker/internal/models"
)

// SnapshotRepository stores the full application state as a single
// JSON document. There are no partial updates: every mutation loads
// the snapshot, applies the change and writes the whole thing back.
type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Load returns the current snapshot, normalized so that collections
// older exports omitted are present and empty. A missing row yields an
// empty snapshot.
func (r *SnapshotRepository) Load() (models.Snapshot, error) {
	var snap models.Snapshot

	var data string
	err := r.db.QueryRow(`SELECT data FROM snapshot WHERE id = 1`).Scan(&data)
	if err == sql.ErrNoRows {
		models.Normalize(&snap)
		return snap, nil
	}
	if err != nil {
		return snap, fmt.Errorf("failed to read snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	models.Normalize(&snap)
	return snap, nil
}

// Save replaces the stored snapshot wholesale.
func (r *SnapshotRepository) Save(snap models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO snapshot (id, data, updated_at)
		VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP
	`, string(data))
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
