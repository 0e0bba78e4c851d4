// Package inspect provides UI introspection for debugging and automated testing.
// With SK_INSPECT=1 the app writes a JSON snapshot of its component tree,
// including every selector's mode and computed position, after each update.
package inspect

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Introspectable is implemented by UI components that can report their state.
type Introspectable interface {
	// InspectNode returns a structured representation of this component.
	InspectNode() *Node
}

var (
	enabled     bool
	enabledOnce sync.Once
	inspectFile string
)

// IsEnabled returns true if inspection mode is active.
func IsEnabled() bool {
	enabledOnce.Do(func() {
		enabled = os.Getenv("SK_INSPECT") == "1"
		if enabled {
			inspectFile = filepath.Join(os.TempDir(), "selectorkit-inspect.json")
		}
	})
	return enabled
}

// GetInspectFile returns the path to the inspection output file.
func GetInspectFile() string {
	if !IsEnabled() {
		return ""
	}
	return inspectFile
}

// WriteSnapshot writes a snapshot to the inspection file.
func WriteSnapshot(snapshot *Snapshot) error {
	if !IsEnabled() {
		return nil
	}
	return WriteSnapshotToPath(snapshot, inspectFile)
}

// WriteSnapshotToPath writes a snapshot to a specific path.
func WriteSnapshotToPath(snapshot *Snapshot, path string) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return nil
}

// ReadSnapshot loads a snapshot written by WriteSnapshotToPath.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return &s, nil
}
