package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-swim/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the swim SSH server",
	Long: `Start an SSH server that lets people swim remotely.

The SSH username is the player ID, so quota and eligibility follow the
name people connect with. All sessions share one backend.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.swim/host_key

Examples:
  swim serve                           # Listen on :23234
  swim serve --ssh :2222               # Listen on port 2222
  swim serve --backend supabase        # Quota from Supabase

Players connect with:
  ssh ana@localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	gw, store, err := openBackend()
	if err != nil {
		return fmt.Errorf("open backend: %w", err)
	}
	defer closeStore(store)

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Game = gameCfg
	cfg.Gateway = gw
	cfg.Logger = log.Default().WithPrefix("swim-ssh")
	if store != nil {
		cfg.Scores = store
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	fmt.Printf("Starting swim SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh <name>@localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
