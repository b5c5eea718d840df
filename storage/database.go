package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoSnapshot is returned when the snapshot file is missing or empty.
var ErrNoSnapshot = errors.New("no snapshot found")

// JSONDB is a snapshot stored as a single JSON file.
type JSONDB struct {
	path string
}

// Open prepares the JSON file at path. The file itself is created on the first save.
func Open(path string) (*JSONDB, error) {
	if path == "" {
		return nil, fmt.Errorf("snapshot path is required")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("could not resolve snapshot path: %w", err)
	}
	return &JSONDB{path: absPath}, nil
}

// Path returns the absolute path of the snapshot file.
func (db *JSONDB) Path() string {
	return db.path
}

// GetSnapshot reads the stored snapshot.
func (db *JSONDB) GetSnapshot() (*Snapshot, error) {
	data, err := os.ReadFile(db.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("could not read snapshot file: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoSnapshot
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("could not parse snapshot file: %w", err)
	}
	return &snapshot, nil
}

// SaveSnapshot replaces the stored snapshot. The file is swapped in by
// rename, never written in place.
func (db *JSONDB) SaveSnapshot(snapshot *Snapshot) error {
	dir := filepath.Dir(db.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	tmp := db.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("could not write snapshot file: %w", err)
	}
	if err := os.Rename(tmp, db.path); err != nil {
		return fmt.Errorf("could not replace snapshot file: %w", err)
	}
	return nil
}

// Close is a no-op.
func (db *JSONDB) Close() error {
	return nil
}
