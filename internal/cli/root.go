// Package cli implements the sidekick CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sidekick",
	Short: "Inspect and control the Sidekick assistant agent",
	Long: `Sidekick talks to the assistant daemon's control API.
It shows agent status and logs, starts and stops the agent, and can
watch the agent continuously.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		maybeCheckForUpdate(cmd)
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add subcommands (alphabetical)
	rootCmd.AddCommand(agentCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(watchCmd)
}
