package feedback

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

// FileStore persists state as an indented JSON document on disk.
// Writes go through a temp file and rename so a crash cannot leave a
// half-written document. A mutex serializes access within the process.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by the JSON document at path.
// The file is created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the state document. A missing file yields a fresh state
// and no error; an unreadable or corrupt one yields a fresh state and
// the error, so callers can log it and continue.
func (f *FileStore) Load() (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return NewState(), fmt.Errorf("feedback: read %s: %w", f.path, err)
	}
	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return NewState(), fmt.Errorf("feedback: parse %s: %w", f.path, err)
	}
	s.Normalize()
	return s, nil
}

// Save writes the state document atomically.
func (f *FileStore) Save(s State) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("feedback: encode state: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".feedback-*.json")
	if err != nil {
		return fmt.Errorf("feedback: temp file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("feedback: write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("feedback: close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("feedback: replace %s: %w", f.path, err)
	}
	return nil
}
