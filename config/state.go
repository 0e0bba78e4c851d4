package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"selectorkit/log"
)

const StateFileName = "state.json"

// SelectionStore remembers the last value chosen in each selector.
type SelectionStore interface {
	// Selection returns the stored value for a selector ID.
	Selection(id string) (string, bool)
	// SetSelection stores value for id and persists the state.
	SetSelection(id, value string) error
}

// State represents the application state that persists between sessions
type State struct {
	// Selections maps selector ID to the last chosen value.
	Selections map[string]string `json:"selections"`

	path string

	// lastModTime tracks when we last read the state file
	lastModTime time.Time
}

// DefaultState returns an empty state bound to path.
func DefaultState(path string) *State {
	return &State{
		Selections: make(map[string]string),
		path:       path,
	}
}

// StatePath returns the state file location in the config directory.
func StatePath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, StateFileName), nil
}

// LoadState loads the state from the config directory. If it cannot be done,
// an empty state is returned.
func LoadState() *State {
	statePath, err := StatePath()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultState("")
	}
	return LoadStateFrom(statePath)
}

// LoadStateFrom loads the state at statePath. A missing or unreadable file
// yields an empty state still bound to statePath.
func LoadStateFrom(statePath string) *State {
	state, err := readState(statePath)
	if err != nil {
		log.ErrorLog.Printf("failed to load state file: %v", err)
		return DefaultState(statePath)
	}
	return state
}

// readState reads statePath under a shared lock so that concurrent instances
// never read a half-written file. A missing file is an empty state, not an
// error. The file's mtime is returned even when parsing fails.
func readState(statePath string) (*State, error) {
	lock := NewFileLock(statePath)
	if err := lock.RLock(); err != nil {
		log.WarningLog.Printf("failed to acquire read lock: %v", err)
		// Continue without lock - better to have stale data than fail
	} else {
		defer lock.Unlock()
	}

	state := DefaultState(statePath)
	if info, err := os.Stat(statePath); err == nil {
		state.lastModTime = info.ModTime()
	}

	data, err := os.ReadFile(statePath)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return state, fmt.Errorf("failed to read state file: %w", err)
	}

	if err := json.Unmarshal(data, state); err != nil {
		state.Selections = make(map[string]string)
		return state, fmt.Errorf("failed to parse state file %s: %w", statePath, err)
	}
	if state.Selections == nil {
		state.Selections = make(map[string]string)
	}
	return state, nil
}

// Save writes the state under an exclusive lock.
func (s *State) Save() error {
	if s.path == "" {
		return fmt.Errorf("state has no file")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	lock := NewFileLock(s.path)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	defer lock.Unlock()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return err
	}

	if info, err := os.Stat(s.path); err == nil {
		s.lastModTime = info.ModTime()
	}

	return nil
}

// Selection implements SelectionStore.
func (s *State) Selection(id string) (string, bool) {
	v, ok := s.Selections[id]
	return v, ok
}

// SetSelection implements SelectionStore.
func (s *State) SetSelection(id, value string) error {
	s.Selections[id] = value
	return s.Save()
}

// NeedsRefresh checks if the state file has been modified since it was read.
func (s *State) NeedsRefresh() bool {
	info, err := os.Stat(s.path)
	if err != nil {
		return false
	}
	return info.ModTime().After(s.lastModTime)
}

// RefreshFromDisk reloads selections written by another instance.
// Returns true if the state was refreshed, false if no refresh was needed.
// A file that cannot be parsed leaves the current selections in place and is
// not retried until it is written again.
func (s *State) RefreshFromDisk() (bool, error) {
	if !s.NeedsRefresh() {
		return false, nil
	}

	fresh, err := readState(s.path)
	if fresh.lastModTime.After(s.lastModTime) {
		s.lastModTime = fresh.lastModTime
	}
	if err != nil {
		return false, err
	}
	s.Selections = fresh.Selections
	return true, nil
}
