package updater

import (
	"time"

	"github.com/sidekick-io/sidekick/internal/models"
)

// CheckDue reports whether an automatic update check should run now,
// per the configured cadence. A nil last-checked timestamp means no
// check has ever completed, so one is always due.
func CheckDue(cfg models.UpdatesConfig, now time.Time) bool {
	if !cfg.CheckOnStartup {
		return false
	}
	if cfg.LastChecked == nil {
		return true
	}
	since := now.Sub(*cfg.LastChecked)
	switch cfg.CheckFrequency {
	case "daily":
		return since >= 24*time.Hour
	case "weekly":
		return since >= 7*24*time.Hour
	default:
		// "every_launch"
		return true
	}
}
