package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-swim/internal/platform/tui"
	"github.com/vovakirdan/tui-swim/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show best swims",
	Long: `Browse the best swims recorded in the local database.

Opens an interactive table in a terminal; use --plain for text output.

Examples:
  swim scores
  swim scores --plain --limit 5`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print scores as text")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to print with --plain")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open scores database: %w", err)
	}
	defer store.Close()

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if !flagPlain && interactive {
		width, height, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			width, height = 80, 24
		}
		return tui.RunScoreboard(store, gameCfg.Tiers, flagUser, width, height)
	}

	scores, err := store.TopScores(tui.GameID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieve scores: %w", err)
	}

	fmt.Println("Best Swims")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No swims recorded yet.")
		fmt.Println()
		fmt.Println("Run 'swim play' to set the first one!")
		return nil
	}

	fmt.Printf("  %-4s  %-14s  %-5s  %-14s  %s\n", "Rank", "Swimmer", "Prey", "Reached", "Date")
	fmt.Printf("  %-4s  %-14s  %-5s  %-14s  %s\n", "----", "-------", "----", "-------", "----")

	for i, entry := range scores {
		tier := gameCfg.Tier(entry.Tier).Name
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-14s  %-5d  %-14s  %s\n", i+1, entry.UserID, entry.Score, tier, dateStr)
	}

	if stats, err := store.GetGameStats(tui.GameID, flagUser); err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("%s: %d swims, best %d, average %.1f\n", flagUser, stats.GamesCount, stats.HighScore, stats.AvgScore)
	}
	return nil
}
