package models

// LogEntry is a single remote agent log record. Entries are read-only and
// arrive ordered by recency from the daemon's logs endpoint.
type LogEntry struct {
	ID         int64  `json:"id"`
	Level      string `json:"level"`
	Action     string `json:"action,omitempty"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	TokensUsed int    `json:"tokens_used,omitempty"`
	Model      string `json:"model,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}
