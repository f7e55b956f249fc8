// swim is the terminal edition of the wellness app's reflex minigame.
//
// Usage:
//
//	swim play                  - Swim in this terminal
//	swim serve                 - Start SSH server for remote play
//	swim status                - Show swims left today and eligibility
//	swim log journal|breathing - Record today's wellness activity
//	swim scores                - Show best swims
//	swim tiers                 - List the ocean environments
//
// Global flags:
//
//	--user <id>        - Player identity (default: $SWIM_USER or $USER)
//	--backend <name>   - Quota backend: sqlite or supabase
//	--db <path>        - Local database path (default: ~/.swim/swim.db)
//	--config <path>    - Custom swim.yaml
//	--fps <rate>       - Tick rate (default: 33, about 30ms per tick)
//	--seed <value>     - RNG seed for reproducible obstacles
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-swim/internal/config"
	"github.com/vovakirdan/tui-swim/internal/core"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagUser     string
	flagBackend  string
	flagLogLevel string
	flagEnvFile  string

	// Resolved in PersistentPreRunE
	env     config.Env
	gameCfg config.SwimConfig
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "swim",
	Short: "Swim - a reflex minigame for your terminal",
	Long: `Swim is a small reflex game: guide a fish through the ocean, eat the
small fish and dodge the predators. You get three swims a day once you
have written in your journal and done a breathing exercise.

Available commands:
  play     - Swim in this terminal
  serve    - Start SSH server for remote play
  status   - Swims left today and whether you are unlocked
  log      - Record a journal entry or breathing exercise
  scores   - Best swims
  tiers    - The ocean environments and when they unlock

Examples:
  swim log journal && swim log breathing
  swim play
  swim play --user ana --backend supabase
  swim serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultTickRate, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the local database (default $SWIM_DB or ~/.swim/swim.db)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a custom swim.yaml")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "Player ID (default $SWIM_USER or $USER)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", backendSQLite, "Quota backend: sqlite or supabase")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Environment file with SWIM_* settings")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(tiersCmd)
}

// loadSettings resolves the environment, game config and logger before any
// subcommand runs.
func loadSettings(cmd *cobra.Command, _ []string) error {
	var err error
	env, err = config.LoadEnv(flagEnvFile)
	if err != nil {
		return err
	}

	gameCfg, err = config.LoadSwim(flagConfig)
	if err != nil {
		return err
	}

	if flagDBPath == "" {
		flagDBPath = env.DBPath
	}
	if flagUser == "" {
		flagUser = env.User
	}
	if flagUser == "" {
		flagUser = os.Getenv("USER")
	}
	if flagUser == "" {
		flagUser = "swimmer"
	}

	return setupLogger(cmd.Name() == playCmd.Name())
}
