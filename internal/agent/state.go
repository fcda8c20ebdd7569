package agent

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/sidekick-io/sidekick/internal/models"
)

// saveState records the last known agent status on disk so the next
// process start has something to show before its first fetch. The write
// is best-effort: failures are logged, never surfaced, and ordinary
// status polling does not persist at all.
func (c *Client) saveState(status *models.Status) {
	if c.statePath == "" {
		return
	}

	state := models.AgentState{
		IsRunning:     status.IsRunning,
		AutonomyLevel: status.AutonomyLevel,
		LastPoll:      status.LastPoll,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		log.Printf("Failed to encode agent state: %v", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(c.statePath), 0755); err != nil {
		log.Printf("Failed to create state directory: %v", err)
		return
	}
	if err := os.WriteFile(c.statePath, data, 0644); err != nil {
		log.Printf("Failed to write agent state: %v", err)
	}
}

// LoadState reads the persisted agent state. Returns nil if the file is
// missing or unreadable; a corrupt state file is treated the same as no
// state at all.
func (c *Client) LoadState() *models.AgentState {
	if c.statePath == "" {
		return nil
	}

	data, err := os.ReadFile(c.statePath)
	if err != nil {
		return nil
	}

	var state models.AgentState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil
	}
	return &state
}
