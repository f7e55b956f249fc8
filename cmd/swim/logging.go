package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// setupLogger configures the default logger. The TUI owns the terminal
// while playing, so logs go to ~/.swim/swim.log instead of stderr.
func setupLogger(toFile bool) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	out := os.Stderr
	if toFile {
		if f, err := openLogFile(); err == nil {
			out = f
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "swim",
		Level:           level,
	})
	log.SetDefault(logger)
	return nil
}

func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".swim")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "swim.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
