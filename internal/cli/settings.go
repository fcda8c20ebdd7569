package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sidekick-io/sidekick/internal/config"
	"github.com/sidekick-io/sidekick/internal/models"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change client settings",
	Long: `Show or change client settings interactively.

This allows you to modify:
  - Daemon base URL (empty resolves from daemon.yaml)
  - Cache TTL, request timeout, and retry count
  - Default autonomy level
  - Desktop notifications

Press Enter to keep the current value for any setting.`,
	RunE: runSettings,
}

var settingsShowOnly bool

func init() {
	settingsCmd.Flags().BoolVar(&settingsShowOnly, "show", false, "Print current settings without prompting")
}

func runSettings(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if settingsShowOnly {
		printSettings(settings)
		return nil
	}

	reader := bufio.NewReader(os.Stdin)
	changed := false

	// Base URL
	fmt.Printf("Daemon base URL [%s]: ", orDefault(settings.Client.BaseURL, "from daemon.yaml"))
	baseURL, _ := reader.ReadString('\n')
	baseURL = strings.TrimSpace(baseURL)
	if baseURL != "" && baseURL != settings.Client.BaseURL {
		settings.Client.BaseURL = baseURL
		changed = true
	}

	// Cache TTL
	if v, ok := promptInt(reader, "Cache TTL in seconds", settings.Client.CacheTTLSeconds); ok {
		settings.Client.CacheTTLSeconds = v
		changed = true
	}

	// Timeout
	fmt.Printf("Request timeout in seconds [%g]: ", settings.Client.TimeoutSeconds)
	timeout, _ := reader.ReadString('\n')
	timeout = strings.TrimSpace(timeout)
	if timeout != "" {
		parsed, err := strconv.ParseFloat(timeout, 64)
		if err != nil || parsed <= 0 {
			return fmt.Errorf("invalid timeout: %s", timeout)
		}
		if parsed != settings.Client.TimeoutSeconds {
			settings.Client.TimeoutSeconds = parsed
			changed = true
		}
	}

	// Retries
	if v, ok := promptInt(reader, "Max retry attempts", settings.Client.MaxRetries); ok {
		settings.Client.MaxRetries = v
		changed = true
	}

	// Default autonomy level
	fmt.Printf("Default autonomy level [%s]: ", settings.Defaults.AutonomyLevel)
	level, _ := reader.ReadString('\n')
	level = strings.TrimSpace(level)
	if level != "" {
		if !validAutonomyLevel(level) {
			return fmt.Errorf("invalid autonomy level: %s", level)
		}
		if level != settings.Defaults.AutonomyLevel {
			settings.Defaults.AutonomyLevel = level
			changed = true
		}
	}

	// Notifications
	newNotify := promptYesNo(reader, "Desktop notifications on action failure?", settings.Notifications.Enabled)
	if newNotify != settings.Notifications.Enabled {
		settings.Notifications.Enabled = newNotify
		changed = true
	}

	// Update checks
	newCheck := promptYesNo(reader, "Check for updates on startup?", settings.Updates.CheckOnStartup)
	if newCheck != settings.Updates.CheckOnStartup {
		settings.Updates.CheckOnStartup = newCheck
		changed = true
	}

	fmt.Printf("Update check frequency (every_launch/daily/weekly) [%s]: ", settings.Updates.CheckFrequency)
	freq, _ := reader.ReadString('\n')
	freq = strings.TrimSpace(freq)
	if freq != "" {
		switch freq {
		case "every_launch", "daily", "weekly":
		default:
			return fmt.Errorf("invalid check frequency: %s", freq)
		}
		if freq != settings.Updates.CheckFrequency {
			settings.Updates.CheckFrequency = freq
			changed = true
		}
	}

	if !changed {
		fmt.Println("No changes.")
		return nil
	}

	if err := config.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println(styleSuccess.Render("Settings saved."))
	return nil
}

func printSettings(settings *models.Settings) {
	fmt.Printf("%s\n", styleBrand.Render("Client"))
	fmt.Printf("  %s %s\n", styleLabel.Render("Base URL:"), orDefault(settings.Client.BaseURL, "(from daemon.yaml)"))
	fmt.Printf("  %s %ds\n", styleLabel.Render("Cache TTL:"), settings.Client.CacheTTLSeconds)
	fmt.Printf("  %s %gs\n", styleLabel.Render("Timeout:"), settings.Client.TimeoutSeconds)
	fmt.Printf("  %s %d\n", styleLabel.Render("Max retries:"), settings.Client.MaxRetries)
	fmt.Printf("%s\n", styleBrand.Render("Defaults"))
	fmt.Printf("  %s %s\n", styleLabel.Render("Autonomy level:"), settings.Defaults.AutonomyLevel)
	fmt.Printf("%s\n", styleBrand.Render("Notifications"))
	fmt.Printf("  %s %v\n", styleLabel.Render("Enabled:"), settings.Notifications.Enabled)
	fmt.Printf("%s\n", styleBrand.Render("Updates"))
	fmt.Printf("  %s %v\n", styleLabel.Render("Check on startup:"), settings.Updates.CheckOnStartup)
	fmt.Printf("  %s %s\n", styleLabel.Render("Frequency:"), settings.Updates.CheckFrequency)
	if settings.Updates.LastChecked != nil {
		fmt.Printf("  %s %s\n", styleLabel.Render("Last checked:"), settings.Updates.LastChecked.Format(time.RFC3339))
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func promptInt(reader *bufio.Reader, label string, current int) (int, bool) {
	fmt.Printf("%s [%d]: ", label, current)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, false
	}
	parsed, err := strconv.Atoi(input)
	if err != nil || parsed < 1 || parsed == current {
		return 0, false
	}
	return parsed, true
}

func promptYesNo(reader *bufio.Reader, label string, current bool) bool {
	def := "y/N"
	if current {
		def = "Y/n"
	}
	fmt.Printf("%s [%s]: ", label, def)
	input, _ := reader.ReadString('\n')
	input = strings.ToLower(strings.TrimSpace(input))
	switch input {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return current
	}
}
