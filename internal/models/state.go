package models

// AgentState is the on-disk record of the last known agent status, written
// after start/stop so the UI has something to show before the first
// successful fetch. This corresponds to ~/.sidekick/agent_state.json.
type AgentState struct {
	IsRunning     bool   `json:"is_running"`
	AutonomyLevel string `json:"autonomy_level"`
	LastPoll      string `json:"last_poll"`
	Timestamp     string `json:"timestamp"`
}
