package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "List the ocean environments",
	Long: `Shows the environments a swim passes through and how many prey it
takes to reach each one, from the loaded swim.yaml.`,
	Args: cobra.NoArgs,
	Run:  runTiers,
}

func runTiers(_ *cobra.Command, _ []string) {
	fmt.Println("Environments:")
	fmt.Println()

	maxName := 4 // "Name" header
	for _, t := range gameCfg.Tiers {
		maxName = max(maxName, len(t.Name))
	}

	fmt.Printf("  %-*s  %-6s  %-9s  %-9s  %-4s  %s\n", maxName, "Name", "Prey", "Spawn ms", "Cross ms", "Max", "Prey %")
	fmt.Printf("  %-*s  %-6s  %-9s  %-9s  %-4s  %s\n", maxName, "----", "----", "--------", "--------", "---", "------")

	for _, t := range gameCfg.Tiers {
		fmt.Printf("  %-*s  %-6d  %-9d  %-9d  %-4d  %.0f%%\n",
			maxName, t.Name, t.MinPrey, t.SpawnIntervalMs, t.ObstacleSpeedMs, t.MaxObstacles, t.PreyRatio*100)
	}

	fmt.Println()
	g := gameCfg.Gameplay
	fmt.Printf("Every %d prey starting at %d grants a %ds shield.\n", g.InvincibleEvery, g.InvincibleAt, g.InvincibilityMs/1000)
	fmt.Printf("%d swims per day.\n", g.DailyLimit)
}
