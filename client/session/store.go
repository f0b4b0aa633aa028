// Package session persists client credentials between runs.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Credentials is the persisted session state
type Credentials struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// Store is a file-backed credential store. All methods are safe for
// concurrent use. Writes go through a temp file and rename so a crash
// mid-write never leaves a torn session file behind.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store backed by the given file path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save persists the credentials, replacing any previous session
func (s *Store) Save(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close session file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace session file: %w", err)
	}

	return nil
}

// Load retrieves the stored credentials. The second return value is false
// when no session is stored; a corrupt or unreadable file returns an error.
func (s *Store) Load() (Credentials, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Credentials{}, false, nil
	}
	if err != nil {
		return Credentials{}, false, fmt.Errorf("failed to read session file: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, false, fmt.Errorf("failed to decode session file: %w", err)
	}
	if creds.Token == "" {
		return Credentials{}, false, nil
	}

	return creds, true, nil
}

// Clear removes the stored session. Clearing an absent session is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
