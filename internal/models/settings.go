package models

import "time"

// ClientConfig holds tuning for the daemon status client.
type ClientConfig struct {
	BaseURL         string  `yaml:"base_url"` // empty = resolve from daemon.yaml
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
	TimeoutSeconds  float64 `yaml:"timeout_seconds"`
	MaxRetries      int     `yaml:"max_retries"`
}

// DefaultsConfig holds defaults applied to agent actions.
type DefaultsConfig struct {
	AutonomyLevel string `yaml:"autonomy_level"`
}

// NotificationsConfig holds settings for desktop notifications.
type NotificationsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// UpdatesConfig holds settings for update checking.
type UpdatesConfig struct {
	CheckOnStartup bool       `yaml:"check_on_startup"`
	CheckFrequency string     `yaml:"check_frequency"` // "every_launch" | "daily" | "weekly"
	LastChecked    *time.Time `yaml:"last_checked,omitempty"`
}

// Settings represents global application settings.
// This corresponds to ~/.sidekick/settings.yaml.
type Settings struct {
	Version       int                 `yaml:"version"`
	Client        ClientConfig        `yaml:"client"`
	Defaults      DefaultsConfig      `yaml:"defaults"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Updates       UpdatesConfig       `yaml:"updates"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Client: ClientConfig{
			BaseURL:         "",
			CacheTTLSeconds: 30,
			TimeoutSeconds:  5,
			MaxRetries:      3,
		},
		Defaults: DefaultsConfig{
			AutonomyLevel: AutonomySuggest,
		},
		Notifications: NotificationsConfig{
			Enabled: true,
		},
		Updates: UpdatesConfig{
			CheckOnStartup: true,
			CheckFrequency: "every_launch",
			LastChecked:    nil,
		},
	}
}
