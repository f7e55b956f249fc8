package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-swim/internal/platform/tui"
	"github.com/vovakirdan/tui-swim/internal/quota"
	"github.com/vovakirdan/tui-swim/internal/swim"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show swims left today and eligibility",
	Long: `Show how many swims are left today for the player and whether
today's journal entry and breathing exercise are done.

Examples:
  swim status
  swim status --user ana --backend supabase`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(_ *cobra.Command, _ []string) error {
	gw, store, err := openBackend()
	if err != nil {
		return fmt.Errorf("open backend: %w", err)
	}
	defer closeStore(store)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	tcfg := quota.DefaultTrackerConfig(flagUser)
	tcfg.Logger = log.Default()
	tracker := quota.NewTracker(gw, tcfg)
	if err := tracker.Refresh(ctx); err != nil {
		return fmt.Errorf("load play count: %w", err)
	}
	st := tracker.Status()

	in := swim.OverlayInputs{
		Eligible:        st.Eligible,
		PlayCount:       st.PlayCount,
		DailyLimit:      gameCfg.Gameplay.DailyLimit,
		HasPlayedBefore: st.PlayCount > 0,
	}

	fmt.Printf("Swimmer:      %s\n", flagUser)
	fmt.Printf("Date:         %s\n", tracker.Date())
	fmt.Printf("Swims today:  %d of %d\n", st.PlayCount, gameCfg.Gameplay.DailyLimit)
	fmt.Printf("Swims left:   %d\n", max(in.PlaysLeft(), 0))
	fmt.Printf("Unlocked:     %s\n", yesNo(st.Eligible))

	if store != nil {
		if best, err := store.HighScore(tui.GameID, flagUser); err == nil && best > 0 {
			fmt.Printf("Best swim:    %d prey\n", best)
		}
	}

	fmt.Println()
	switch swim.SelectMode(in) {
	case swim.ModeNoPlaysLeft:
		fmt.Println("No swims left today. Come back tomorrow!")
	case swim.ModeMustCompletePrerequisite:
		fmt.Println("Write in your journal and do a breathing exercise to unlock:")
		fmt.Println("  swim log journal")
		fmt.Println("  swim log breathing")
	default:
		fmt.Println("Ready to swim: swim play")
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
