package models

// Autonomy levels for the assistant agent.
const (
	AutonomySuggest = "suggest"
	AutonomyAutoLow = "auto_low"
	AutonomyAuto    = "auto"
	AutonomyFull    = "full"
	AutonomyUnknown = "unknown"
)

// Status is a snapshot of the remote agent's state as reported by the
// daemon's status endpoint. A Status is never mutated after construction;
// each refresh produces a new one.
type Status struct {
	IsRunning              bool            `json:"is_running"`
	AutonomyLevel          string          `json:"autonomy_level"`
	LastPoll               string          `json:"last_poll,omitempty"`
	LastRecommendation     string          `json:"last_recommendation,omitempty"`
	SessionStart           string          `json:"session_start,omitempty"`
	SessionStats           map[string]int  `json:"session_stats,omitempty"`
	PendingSuggestions     int             `json:"pending_suggestions"`
	PendingRecommendations int             `json:"pending_recommendations"`
	Integrations           map[string]bool `json:"integrations,omitempty"`
}

// NewUnknownStatus returns the placeholder status used when the daemon
// cannot be reached and no cached snapshot exists.
func NewUnknownStatus() *Status {
	return &Status{
		IsRunning:     false,
		AutonomyLevel: AutonomyUnknown,
	}
}
