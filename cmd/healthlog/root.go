// ABOUTME: Root Cobra command for healthlog CLI.
// ABOUTME: Handles store and engine lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harperreed/healthlog/internal/config"
	"github.com/harperreed/healthlog/internal/engine"
	"github.com/harperreed/healthlog/internal/store"
	"github.com/spf13/cobra"
)

var (
	cfg *config.Config
	eng *engine.Engine
)

var rootCmd = &cobra.Command{
	Use:   "healthlog",
	Short: "Personal daily health tracker",
	Long: `Healthlog tracks four categories of daily health data, bucketed by
calendar date and synced to a remote document store.

WHAT IT TRACKS:

  Sleep    sleep sessions (start/end, overnight-aware duration)
  Workout  exercise minutes per activity
  Water    water intake in ounces
  Meal     calories per meal

QUICK START:

  $ healthlog add sleep --start 23:00 --end 07:00   # Log last night
  $ healthlog add workout 30 --activity running     # Log a workout
  $ healthlog add water 8                           # Log a glass of water
  $ healthlog add meal 550 --meal lunch --food "burrito"
  $ healthlog today                                 # Today's totals
  $ healthlog week water                            # 7-day rollup
  $ healthlog log sleep --date 2024-01-01           # Entries for a date

SYNC (AUTOMATIC):

  With the default charm backend, data syncs across devices via Charm
  Cloud, E2E encrypted with your SSH key, after every write.

  $ healthlog sync link      # Link device to your Charm account
  $ healthlog sync status    # Check sync status

  Set "backend": "sqlite" in the config for fully offline storage.

MCP INTEGRATION:

  Run 'healthlog mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "healthlog": { "command": "healthlog", "args": ["mcp"] }
    }
  }`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip store init for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		st, err := cfg.OpenStore()
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}

		eng = engine.New(st, engine.WithLogger(log.New(os.Stderr)))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if eng != nil {
			// Close flushes in-flight background persists first.
			return eng.Close()
		}
		return nil
	},
}

// charmStore returns the underlying Charm backend, or nil when another
// backend is configured.
func charmStore() *store.CharmStore {
	if eng == nil {
		return nil
	}
	cs, _ := eng.Store().(*store.CharmStore)
	return cs
}
