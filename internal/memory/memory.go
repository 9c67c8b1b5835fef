// Package memory persists the running conversation as a JSON file. The log
// is append-only from the caller's view; each append rewrites the file
// atomically so a crash never leaves a torn log.
package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Role identifies who produced an entry.
type Role string

const (
	RoleAssistant Role = "remi"
	RolePatient   Role = "patient"
)

// Entry is one conversational turn.
type Entry struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Store is a file-backed conversation log. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	path    string
	log     *slog.Logger
	entries []Entry
}

// Open loads the conversation log at path. A missing file starts an empty
// log. A corrupt file also starts an empty log, with a warning; losing
// history beats refusing to run.
func Open(path string, log *slog.Logger) (*Store, error) {
	s := &Store{path: path, log: log}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading conversation log: %w", err)
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		log.Warn("conversation log corrupt, starting fresh", "path", path, "error", err)
		s.entries = nil
	}
	return s, nil
}

// Append adds one entry and flushes the log to disk.
func (s *Store) Append(role Role, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, Entry{
		Role:      role,
		Text:      text,
		Timestamp: time.Now().UTC(),
	})
	return s.flushLocked()
}

// Entries returns a copy of the log in order.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len reports the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// flushLocked writes the whole log through a temp file and rename, so
// readers never observe a partially written file.
func (s *Store) flushLocked() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding conversation log: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".conversation-*.json")
	if err != nil {
		return fmt.Errorf("creating temp log: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing conversation log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing conversation log: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing conversation log: %w", err)
	}
	return nil
}
