package state

import (
	"encoding/json" // For JSON encoding and decoding of the state file
	"os"            // For file system operations like reading and writing files
	"path/filepath"
	"time"

	"devsetup/internal/logger" // Custom logger package for logging errors and debug info
)

// DefaultPath returns the per-user state file location under the XDG state
// directory, so runs from any working directory read and write the same file.
// When the home directory cannot be determined it falls back to the working
// directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "state.json"
	}
	return filepath.Join(home, ".local", "state", "devsetup", "state.json")
}

// ToolState records the outcome of the most recent install attempt for one
// logical tool. The state file is a run report only: idempotency decisions are
// driven by presence on the search path, never by this file, so a stale or
// deleted state file is always safe.
type ToolState struct {
	Outcome string    `json:"outcome"` // "already-present", "installed", or "failed-non-fatal"
	Manager string    `json:"manager"` // The package manager the run resolved to
	When    time.Time `json:"when"`    // Timestamp of the attempt
}

// State holds the entire saved state for the bootstrap tool, keyed by the
// logical tool name.
type State struct {
	Tools map[string]ToolState `json:"tools"`
}

// Record stores the outcome of one install attempt.
func (st *State) Record(name, manager, outcome string) {
	st.Tools[name] = ToolState{
		Outcome: outcome,
		Manager: manager,
		When:    time.Now(),
	}
}

// Load loads the saved state from a JSON file at the given path.
// If the file does not exist or cannot be parsed, it returns a new empty State:
// the file is informational, so lenient loading is always correct.
func Load(path string) *State {
	file, err := os.ReadFile(path)
	if err != nil {
		return &State{Tools: make(map[string]ToolState)}
	}

	var st State
	_ = json.Unmarshal(file, &st)

	// Defensive: ensure the map is initialized if JSON contained null for it
	if st.Tools == nil {
		st.Tools = make(map[string]ToolState)
	}
	return &st
}

// Save writes the given State struct to a JSON file at the given path.
// It pretty-prints the JSON with indentation for readability.
// Errors during marshalling or writing are logged but not propagated.
func Save(path string, st *State) {
	file, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		logger.Error("[ERROR] Failed to marshal state: %v\n", err)
		return
	}

	logger.Debug("[DEBUG] Writing state to %s:\n%s\n", path, string(file))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logger.Error("[ERROR] Failed to create state directory for %s: %v\n", path, err)
		return
	}
	if err := os.WriteFile(path, file, 0644); err != nil {
		logger.Error("[ERROR] Failed to write state file %s: %v\n", path, err)
	}
}
