package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/rshade/eventcarbon/internal/engine"
	"github.com/rshade/eventcarbon/internal/estimate"
)

// SessionSchemaVersion is written into every session file. Files with a
// different major version are refused.
const SessionSchemaVersion = "1.1.0"

// sessionFileExtension is the file extension used for session files.
const sessionFileExtension = ".json"

// Common store errors.
var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidEventID     = errors.New("invalid event id")
	ErrIncompatibleSchema = errors.New("incompatible session schema")
)

// sessionFile is the on-disk envelope around a session.
type sessionFile struct {
	SchemaVersion string          `json:"schema_version"`
	SavedAt       time.Time       `json:"saved_at"`
	Session       *engine.Session `json:"session"`
}

// FileStore persists sessions as JSON files in a directory.
// Thread-safe for concurrent access.
type FileStore struct {
	directory string
	mu        sync.RWMutex
	clock     func() time.Time
}

// NewFileStore creates a session store rooted at directory, creating it if needed.
func NewFileStore(directory string) (*FileStore, error) {
	if directory == "" {
		return nil, errors.New("session directory cannot be empty")
	}
	if err := os.MkdirAll(directory, 0750); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &FileStore{directory: directory, clock: time.Now}, nil
}

// Directory returns the directory sessions are stored in.
func (s *FileStore) Directory() string {
	return s.directory
}

// Save writes the session, replacing any previous file for the same event.
func (s *FileStore) Save(session *engine.Session) error {
	if session == nil {
		return ErrInvalidEventID
	}
	if err := validateEventID(session.Event.ID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(sessionFile{
		SchemaVersion: SessionSchemaVersion,
		SavedAt:       s.clock().UTC(),
		Session:       session,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	return writeFileAtomic(s.pathFor(session.Event.ID), data)
}

// Load reads the session for an event.
// Returns ErrSessionNotFound if no file exists.
func (s *FileStore) Load(eventID string) (*engine.Session, error) {
	if err := validateEventID(eventID); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadPath(s.pathFor(eventID))
}

func (s *FileStore) loadPath(path string) (*engine.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var file sessionFile
	if err = json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", filepath.Base(path), err)
	}
	if err = checkSchema(file.SchemaVersion); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if file.Session == nil {
		return nil, fmt.Errorf("%s: session body missing", filepath.Base(path))
	}
	if file.Session.Items == nil {
		file.Session.Items = []estimate.Item{}
	}
	return file.Session, nil
}

// Delete removes the session for an event. Missing files are not an error.
func (s *FileStore) Delete(eventID string) error {
	if err := validateEventID(eventID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.pathFor(eventID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// List returns the event IDs that have a stored session, in file name order.
func (s *FileStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read session directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != sessionFileExtension {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), sessionFileExtension))
	}
	return ids, nil
}

// Exists reports whether a session file exists for eventID.
func (s *FileStore) Exists(eventID string) bool {
	if validateEventID(eventID) != nil {
		return false
	}
	_, err := os.Stat(s.pathFor(eventID))
	return err == nil
}

// validateEventID rejects IDs that are empty or would not map to exactly
// one file in the session directory.
func validateEventID(eventID string) error {
	switch {
	case eventID == "":
		return fmt.Errorf("%w: empty", ErrInvalidEventID)
	case eventID == "." || eventID == "..",
		strings.ContainsAny(eventID, "/\\:"),
		strings.ContainsRune(eventID, 0):
		return fmt.Errorf("%w: %q", ErrInvalidEventID, eventID)
	}
	return nil
}

// pathFor maps a validated event ID to its session file.
func (s *FileStore) pathFor(eventID string) string {
	return filepath.Join(s.directory, eventID+sessionFileExtension)
}

// checkSchema accepts any file written with the same major version.
func checkSchema(version string) error {
	if version == "" {
		return fmt.Errorf("%w: missing schema_version", ErrIncompatibleSchema)
	}
	got, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrIncompatibleSchema, version, err)
	}
	current := semver.MustParse(SessionSchemaVersion)
	constraint, err := semver.NewConstraint(fmt.Sprintf("^%d.0.0", current.Major()))
	if err != nil {
		return err
	}
	if !constraint.Check(got) {
		return fmt.Errorf("%w: file has %s, want %d.x", ErrIncompatibleSchema, got, current.Major())
	}
	return nil
}

// writeFileAtomic writes to a temporary file first, then renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
