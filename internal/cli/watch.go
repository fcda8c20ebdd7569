package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/sidekick-io/sidekick/internal/agent"
	"github.com/sidekick-io/sidekick/internal/config"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Continuously watch agent status",
	Long: `Poll the agent on an interval and print one status line per tick.
The status cache keeps the request rate below the tick rate when the
interval is short. If the daemon restarts under a new address, the
connection is re-resolved automatically.`,
	RunE: runWatch,
}

var watchInterval time.Duration

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 10*time.Second, "Refresh interval")
}

func runWatch(cmd *cobra.Command, args []string) error {
	client, err := newAgentClient()
	if err != nil {
		return err
	}
	defer func() { client.Close() }()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	globalDir, err := config.GlobalDir()
	if err == nil {
		if err := watcher.Add(globalDir); err != nil {
			log.Printf("Warning: failed to watch %s: %v", globalDir, err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	printTick(client)

	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil

		case <-ticker.C:
			printTick(client)

		case event := <-watcher.Events:
			if filepath.Base(event.Name) != config.DaemonFileName {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
				continue
			}
			// Daemon restarted or went away; rebuild against the new address.
			fresh, err := newAgentClient()
			if err != nil {
				log.Printf("Daemon connection changed but could not reconnect: %v", err)
				continue
			}
			client.Close()
			client = fresh
			printTick(client)

		case err := <-watcher.Errors:
			log.Printf("Watcher error: %v", err)
		}
	}
}

func printTick(client *agent.Client) {
	status := client.Status(true)

	state := styleError.Render("stopped")
	if status.IsRunning {
		state = styleSuccess.Render("running")
	}

	line := fmt.Sprintf("%s  %s  autonomy=%s  pending=%d/%d",
		styleLabel.Render(time.Now().Format("15:04:05")),
		state,
		status.AutonomyLevel,
		status.PendingSuggestions,
		status.PendingRecommendations)

	if status.LastRecommendation != "" {
		line += "  " + styleHint.Render(truncate(status.LastRecommendation, 60))
	}
	fmt.Println(line)
}

// truncate shortens s to at most max runes, ending in an ellipsis.
// Counting runes keeps multi-byte text intact.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
