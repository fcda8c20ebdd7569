package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sidekick-io/sidekick/internal/config"
	"github.com/sidekick-io/sidekick/internal/updater"
)

var updateCheckOnly bool

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update sidekick to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Checking for updates...")

		result, err := updater.CheckForUpdate()
		if err != nil {
			return fmt.Errorf("failed to check for updates: %w", err)
		}
		stampLastChecked()

		if !result.Available {
			fmt.Printf("Already up to date (v%s).\n", result.CurrentVersion)
			return nil
		}

		fmt.Printf("Update available: v%s → v%s\n", result.CurrentVersion, result.LatestVersion)
		fmt.Printf("Release: %s\n", result.ReleaseURL)

		if updateCheckOnly {
			return nil
		}

		asset := updater.FindAsset(result.Release, updater.CLIAssetName())
		if asset == nil {
			return fmt.Errorf("binary not found in release (expected %s)", updater.CLIAssetName())
		}

		fmt.Printf("Downloading %s...\n", asset.Name)
		tmpPath, err := updater.DownloadAsset(asset)
		if err != nil {
			return fmt.Errorf("failed to download update: %w", err)
		}
		defer os.Remove(tmpPath)

		selfPath, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to find self: %w", err)
		}
		selfPath, err = filepath.EvalSymlinks(selfPath)
		if err != nil {
			return fmt.Errorf("failed to resolve self: %w", err)
		}

		fmt.Println("Installing...")
		if err := updater.ReplaceBinary(selfPath, tmpPath); err != nil {
			return fmt.Errorf("failed to install update: %w", err)
		}

		fmt.Printf("Updated to v%s.\n", result.LatestVersion)
		return nil
	},
}

func init() {
	updateCmd.Flags().BoolVar(&updateCheckOnly, "check", false, "Only check for updates, don't install")
}

// maybeCheckForUpdate runs the startup update check when the configured
// cadence says one is due. It prints a one-line hint when a newer
// release exists; a slow network skips the check rather than stall the
// command.
func maybeCheckForUpdate(cmd *cobra.Command) {
	if cmd == updateCmd || cmd == versionCmd {
		return
	}
	settings, err := config.LoadSettings()
	if err != nil || !updater.CheckDue(settings.Updates, time.Now()) {
		return
	}

	done := make(chan *updater.UpdateResult, 1)
	go func() {
		result, err := updater.CheckForUpdate()
		if err != nil {
			log.Printf("Update check failed: %v", err)
			done <- nil
			return
		}
		done <- result
	}()

	select {
	case result := <-done:
		if result == nil {
			return
		}
		stampLastChecked()
		if result.Available {
			fmt.Println(styleHint.Render(fmt.Sprintf(
				"Update available: v%s → v%s (run `sidekick update`)",
				result.CurrentVersion, result.LatestVersion)))
		}
	case <-time.After(2 * time.Second):
	}
}

// stampLastChecked records when an update check completed so the daily
// and weekly cadences measure from the most recent one.
func stampLastChecked() {
	settings, err := config.LoadSettings()
	if err != nil {
		return
	}
	now := time.Now()
	settings.Updates.LastChecked = &now
	if err := config.SaveSettings(settings); err != nil {
		log.Printf("Failed to record update check: %v", err)
	}
}
