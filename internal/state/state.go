// Package state persists streak snapshots between runs.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Shasha12oly/growth-tracker/internal/model"
)

// Snapshot maps usernames to their latest streak entries.
type Snapshot map[string]model.StreakEntry

// Load reads the state file. A missing file yields an empty snapshot.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, nil
		}
		return nil, fmt.Errorf("failed to read streak state: %w", err)
	}
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode streak state: %w", err)
	}
	if snapshot == nil {
		snapshot = Snapshot{}
	}
	return snapshot, nil
}

// Persist merges the snapshot into the existing file contents and writes the
// result back. New entries overwrite same-key old entries; users absent from
// the snapshot keep their existing entries, so the file grows across runs.
// An unreadable existing file is replaced by the snapshot alone.
func Persist(snapshot Snapshot, path string) error {
	merged, err := Load(path)
	if err != nil {
		merged = Snapshot{}
	}
	for username, entry := range snapshot {
		merged[username] = entry
	}

	data, err := json.MarshalIndent(merged, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode streak state: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "streaks-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write streak state: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close streak state: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write streak state: %w", err)
	}
	return nil
}
