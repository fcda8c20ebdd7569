package agent

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sidekick-io/sidekick/internal/models"
)

func stateClient(t *testing.T) *Client {
	t.Helper()
	return New("http://localhost:0", Options{
		StatePath: filepath.Join(t.TempDir(), "nested", "agent_state.json"),
	})
}

func TestStateRoundTrip(t *testing.T) {
	c := stateClient(t)
	defer c.Close()

	c.saveState(&models.Status{
		IsRunning:     true,
		AutonomyLevel: models.AutonomyAutoLow,
		LastPoll:      "2026-08-30T10:00:00Z",
	})

	state := c.LoadState()
	if state == nil {
		t.Fatal("expected persisted state")
	}
	if !state.IsRunning {
		t.Error("is_running not preserved")
	}
	if state.AutonomyLevel != models.AutonomyAutoLow {
		t.Errorf("autonomy_level = %q, want %q", state.AutonomyLevel, models.AutonomyAutoLow)
	}
	if state.LastPoll != "2026-08-30T10:00:00Z" {
		t.Errorf("last_poll = %q", state.LastPoll)
	}

	ts, err := time.Parse(time.RFC3339, state.Timestamp)
	if err != nil {
		t.Fatalf("timestamp %q is not RFC 3339: %v", state.Timestamp, err)
	}
	if time.Since(ts) > time.Minute {
		t.Errorf("timestamp %v is not recent", ts)
	}
}

func TestLoadStateMissingFile(t *testing.T) {
	c := stateClient(t)
	defer c.Close()

	if state := c.LoadState(); state != nil {
		t.Errorf("expected nil for a missing state file, got %+v", state)
	}
}

func TestLoadStateCorruptFile(t *testing.T) {
	c := stateClient(t)
	defer c.Close()

	if err := os.MkdirAll(filepath.Dir(c.statePath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.statePath, []byte("not json {{{"), 0644); err != nil {
		t.Fatal(err)
	}

	if state := c.LoadState(); state != nil {
		t.Errorf("expected nil for a corrupt state file, got %+v", state)
	}
}

func TestSaveStateOverwrites(t *testing.T) {
	c := stateClient(t)
	defer c.Close()

	c.saveState(&models.Status{IsRunning: true, AutonomyLevel: models.AutonomyFull})
	c.saveState(&models.Status{IsRunning: false, AutonomyLevel: models.AutonomySuggest})

	state := c.LoadState()
	if state == nil {
		t.Fatal("expected persisted state")
	}
	if state.IsRunning || state.AutonomyLevel != models.AutonomySuggest {
		t.Errorf("expected the later write to win, got %+v", state)
	}
}
