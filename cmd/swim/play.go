package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-swim/internal/core"
	"github.com/vovakirdan/tui-swim/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Swim in this terminal",
	Long: `Start the swim minigame.

Controls:
  Space/Up   - Start, then swim up
  ?          - More keys
  Ctrl+S     - Screenshot to ~/.swim/screenshots
  Q/Esc      - Quit

Leaving the game mid-swim still uses up that swim.

Examples:
  swim play
  swim play --user ana
  swim play --seed 42 --fps 60
  swim play --config ./my-swim.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultTickRate
	}

	gw, store, err := openBackend()
	if err != nil {
		return fmt.Errorf("open backend: %w", err)
	}
	defer closeStore(store)

	sc := tui.SessionConfig{
		UserID:  flagUser,
		Game:    gameCfg,
		Runtime: rt,
		Gateway: gw,
		Logger:  log.Default(),
	}
	if store != nil {
		sc.Scores = store
	}

	log.Info("starting swim", "user", flagUser, "backend", flagBackend, "seed", seed)
	if err := tui.Run(tui.NewSession(sc), rt.TickPeriod(), width, height); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
