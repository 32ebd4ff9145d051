package storage

import (
	"encoding/json"
	"fmt"
)

// Keys of the four persisted collections. Prefixed so they stay apart from
// anything else sharing the same database.
const (
	KeyUsers   = "jobmatch_users"
	KeyCVs     = "jobmatch_cvs"
	KeyJobs    = "jobmatch_jobs"
	KeySession = "jobmatch_session"
)

// Store is a durable string key-value medium. Get reports whether the key
// exists; Set fully replaces the value under the key. There is no locking:
// concurrent writers to the same key race with last-write-wins.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Read loads the JSON value under key into T, returning fallback when the key
// is absent. A missing key is never an error.
func Read[T any](s Store, key string, fallback T) (T, error) {
	raw, found, err := s.Get(key)
	if err != nil {
		return fallback, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !found || raw == "" {
		return fallback, nil
	}
	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return fallback, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return value, nil
}

// Write serializes value as JSON and replaces whatever is stored under key.
func Write[T any](s Store, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.Set(key, string(raw)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
