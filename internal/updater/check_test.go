package updater

import (
	"testing"
	"time"

	"github.com/sidekick-io/sidekick/internal/models"
)

func TestCheckDue(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	ago := func(d time.Duration) *time.Time {
		ts := now.Add(-d)
		return &ts
	}

	tests := []struct {
		name string
		cfg  models.UpdatesConfig
		want bool
	}{
		{
			name: "disabled",
			cfg:  models.UpdatesConfig{CheckOnStartup: false, CheckFrequency: "every_launch"},
			want: false,
		},
		{
			name: "never checked",
			cfg:  models.UpdatesConfig{CheckOnStartup: true, CheckFrequency: "weekly"},
			want: true,
		},
		{
			name: "every launch",
			cfg:  models.UpdatesConfig{CheckOnStartup: true, CheckFrequency: "every_launch", LastChecked: ago(time.Minute)},
			want: true,
		},
		{
			name: "daily too soon",
			cfg:  models.UpdatesConfig{CheckOnStartup: true, CheckFrequency: "daily", LastChecked: ago(23 * time.Hour)},
			want: false,
		},
		{
			name: "daily elapsed",
			cfg:  models.UpdatesConfig{CheckOnStartup: true, CheckFrequency: "daily", LastChecked: ago(25 * time.Hour)},
			want: true,
		},
		{
			name: "weekly too soon",
			cfg:  models.UpdatesConfig{CheckOnStartup: true, CheckFrequency: "weekly", LastChecked: ago(6 * 24 * time.Hour)},
			want: false,
		},
		{
			name: "weekly elapsed",
			cfg:  models.UpdatesConfig{CheckOnStartup: true, CheckFrequency: "weekly", LastChecked: ago(8 * 24 * time.Hour)},
			want: true,
		},
		{
			name: "unknown frequency checks",
			cfg:  models.UpdatesConfig{CheckOnStartup: true, CheckFrequency: "hourly", LastChecked: ago(time.Minute)},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckDue(tt.cfg, now); got != tt.want {
				t.Errorf("CheckDue(%+v) = %v, want %v", tt.cfg, got, tt.want)
			}
		})
	}
}
