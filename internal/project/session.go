package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"plateinspect/internal/model"
)

// sessionVersion is bumped when the session file format changes.
const sessionVersion = "1.0.0"

// Session is a saved inspection: the plate, its holes, and their statuses.
// Reloading a session restores the inspection exactly where it stopped.
type Session struct {
	Version string         `json:"version"`
	SavedAt string         `json:"saved_at"`
	Plate   model.Plate    `json:"plate"`
	Holes   model.Snapshot `json:"holes"`
}

// NewSession wraps the current inspection state for saving.
func NewSession(plate model.Plate, holes model.Snapshot) Session {
	return Session{
		Version: sessionVersion,
		SavedAt: time.Now().UTC().Format(time.RFC3339),
		Plate:   plate,
		Holes:   holes,
	}
}

// SaveSession writes a session to a JSON file, creating parent directories
// as needed.
func SaveSession(path string, session Session) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// LoadSession reads a session from a JSON file.
func LoadSession(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, fmt.Errorf("failed to read session file: %w", err)
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}, fmt.Errorf("failed to parse session file: %w", err)
	}
	if session.Version == "" {
		return Session{}, fmt.Errorf("invalid session file: missing version field")
	}
	if len(session.Holes) == 0 {
		return Session{}, fmt.Errorf("invalid session file: no holes")
	}
	return session, nil
}
