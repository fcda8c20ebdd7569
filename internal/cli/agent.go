package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sidekick-io/sidekick/internal/agent"
	"github.com/sidekick-io/sidekick/internal/config"
	"github.com/sidekick-io/sidekick/internal/models"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Inspect and control the assistant agent",
	Long:  `Inspect agent status and logs, and start, stop, or poll the agent.`,
}

var agentStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show agent status",
	RunE:  runAgentStatus,
}

var agentLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show recent agent activity",
	RunE:  runAgentLogs,
}

var agentStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the agent",
	RunE:  runAgentStart,
}

var agentStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the agent",
	RunE:  runAgentStop,
}

var agentPollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Trigger an immediate poll cycle",
	RunE:  runAgentPoll,
}

var (
	statusNoCache      bool
	logsLimit          int
	logsHours          int
	startAutonomyLevel string
)

func init() {
	agentStatusCmd.Flags().BoolVar(&statusNoCache, "no-cache", false, "Bypass the status cache")
	agentLogsCmd.Flags().IntVar(&logsLimit, "limit", 5, "Maximum number of log entries")
	agentLogsCmd.Flags().IntVar(&logsHours, "hours", 24, "How far back to look, in hours")
	agentStartCmd.Flags().StringVar(&startAutonomyLevel, "autonomy", "", "Autonomy level (suggest, auto_low, auto, full); empty uses the configured default")

	agentCmd.AddCommand(agentLogsCmd)
	agentCmd.AddCommand(agentPollCmd)
	agentCmd.AddCommand(agentStartCmd)
	agentCmd.AddCommand(agentStatusCmd)
	agentCmd.AddCommand(agentStopCmd)
}

// newAgentClient builds a client from the global settings. The caller
// must Close it.
func newAgentClient() (*agent.Client, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return agent.NewFromSettings(settings)
}

func runAgentStatus(cmd *cobra.Command, args []string) error {
	client, err := newAgentClient()
	if err != nil {
		return err
	}
	defer client.Close()

	status := client.Status(!statusNoCache)
	printStatus(status)

	if status.AutonomyLevel == models.AutonomyUnknown {
		if state := client.LoadState(); state != nil {
			fmt.Println()
			fmt.Println(staleStateHint(state))
		}
	}
	return nil
}

// staleStateHint describes the last persisted agent state, shown when
// the daemon cannot be reached for a live one.
func staleStateHint(state *models.AgentState) string {
	return styleWarning.Render(fmt.Sprintf(
		"Daemon unreachable; last known state from %s: running=%v autonomy=%s",
		state.Timestamp, state.IsRunning, state.AutonomyLevel))
}

func printStatus(status *models.Status) {
	running := styleError.Render("stopped")
	if status.IsRunning {
		running = styleSuccess.Render("running")
	}

	fmt.Printf("%s %s\n", styleBrand.Render("Agent:"), running)
	fmt.Printf("  %s %s\n", styleLabel.Render("Autonomy:"), styleValue.Render(status.AutonomyLevel))
	if status.LastPoll != "" {
		fmt.Printf("  %s %s\n", styleLabel.Render("Last poll:"), styleValue.Render(status.LastPoll))
	}
	if status.SessionStart != "" {
		fmt.Printf("  %s %s\n", styleLabel.Render("Session started:"), styleValue.Render(status.SessionStart))
	}
	fmt.Printf("  %s %d suggestions, %d recommendations\n",
		styleLabel.Render("Pending:"), status.PendingSuggestions, status.PendingRecommendations)

	if status.LastRecommendation != "" {
		fmt.Printf("  %s %s\n", styleLabel.Render("Last recommendation:"), styleValue.Render(status.LastRecommendation))
	}

	if len(status.SessionStats) > 0 {
		fmt.Printf("  %s\n", styleLabel.Render("Session stats:"))
		for _, name := range sortedKeys(status.SessionStats) {
			fmt.Printf("    %s: %d\n", name, status.SessionStats[name])
		}
	}

	if len(status.Integrations) > 0 {
		fmt.Printf("  %s\n", styleLabel.Render("Integrations:"))
		for _, name := range sortedKeys(status.Integrations) {
			mark := styleError.Render("off")
			if status.Integrations[name] {
				mark = styleSuccess.Render("on")
			}
			fmt.Printf("    %s: %s\n", name, mark)
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runAgentLogs(cmd *cobra.Command, args []string) error {
	client, err := newAgentClient()
	if err != nil {
		return err
	}
	defer client.Close()

	entries := client.Logs(logsLimit, logsHours)
	if len(entries) == 0 {
		fmt.Println("No recent activity.")
		return nil
	}

	for _, e := range entries {
		line := fmt.Sprintf("[%s] %s", levelBadge(e.Level), e.Message)
		if e.Action != "" {
			line += styleLabel.Render(" (" + e.Action + ")")
		}
		fmt.Println(line)
		if e.Detail != "" {
			fmt.Printf("    %s\n", styleHint.Render(e.Detail))
		}
		if e.TokensUsed > 0 {
			fmt.Printf("    %s\n", styleHint.Render(fmt.Sprintf("%d tokens (%s)", e.TokensUsed, e.Model)))
		}
	}
	return nil
}

func runAgentStart(cmd *cobra.Command, args []string) error {
	if startAutonomyLevel != "" && !validAutonomyLevel(startAutonomyLevel) {
		return fmt.Errorf("invalid autonomy level: %s", startAutonomyLevel)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	client, err := agent.NewFromSettings(settings)
	if err != nil {
		return err
	}
	defer client.Close()

	level := startAutonomyLevel
	if level == "" {
		level = settings.Defaults.AutonomyLevel
	}

	status, err := client.Start(level)
	if err != nil {
		return err
	}

	fmt.Printf("%s (autonomy: %s)\n", styleSuccess.Render("Agent started."), status.AutonomyLevel)
	return nil
}

func runAgentStop(cmd *cobra.Command, args []string) error {
	client, err := newAgentClient()
	if err != nil {
		return err
	}
	defer client.Close()

	if _, err := client.Stop(); err != nil {
		return err
	}

	fmt.Println(styleSuccess.Render("Agent stopped."))
	return nil
}

func runAgentPoll(cmd *cobra.Command, args []string) error {
	client, err := newAgentClient()
	if err != nil {
		return err
	}
	defer client.Close()

	if _, err := client.PollNow(); err != nil {
		return err
	}

	fmt.Println(styleSuccess.Render("Poll triggered."))
	return nil
}

func validAutonomyLevel(level string) bool {
	switch level {
	case models.AutonomySuggest, models.AutonomyAutoLow, models.AutonomyAuto, models.AutonomyFull:
		return true
	}
	return false
}
