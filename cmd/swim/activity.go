package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-swim/internal/quota"
	"github.com/vovakirdan/tui-swim/internal/storage"
)

var activityCmd = &cobra.Command{
	Use:       "log <journal|breathing>",
	Short:     "Record today's journal entry or breathing exercise",
	ValidArgs: []string{string(storage.ActivityJournal), string(storage.ActivityBreathing)},
	Long: `Record a completed wellness activity for today in the local store.
Swimming unlocks once both a journal entry and a breathing exercise are
recorded for the same day.

Only the sqlite backend keeps activities; with Supabase they are written
by the app itself.

Examples:
  swim log journal
  swim log breathing --user ana`,
	Args: cobra.ExactArgs(1),
	RunE: runActivity,
}

func runActivity(_ *cobra.Command, args []string) error {
	kind, err := storage.ParseActivity(args[0])
	if err != nil {
		return err
	}
	if flagBackend != backendSQLite {
		return fmt.Errorf("activities can only be logged with the %s backend", backendSQLite)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	date := quota.DateKey(time.Now())
	if err := store.MarkActivity(ctx, flagUser, date, kind); err != nil {
		return err
	}
	log.Debug("activity recorded", "user", flagUser, "date", date, "kind", kind)

	eligible, err := store.EligibleToday(ctx, flagUser, date)
	if err != nil {
		return err
	}

	fmt.Printf("Recorded %s for %s on %s.\n", kind, flagUser, date)
	if eligible {
		fmt.Println("Swimming is unlocked for today: swim play")
	}
	return nil
}
