// Package tui provides the Bubble Tea integration for the swim minigame.
// It handles the terminal UI loop, input mapping, quota refreshes and the
// SSH server.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-swim/internal/quota"
)

// How often the model checks for a new local day and reloads an idle quota,
// and how long it waits before retrying a failed quota load.
const (
	rolloverInterval = 30 * time.Second
	retryInterval    = 5 * time.Second
	refreshTimeout   = 10 * time.Second
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// refreshedMsg carries the result of a tracker refresh.
type refreshedMsg struct{ err error }

// rolloverMsg triggers the periodic day and quota check.
type rolloverMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick after one period.
func tickCmd(period time.Duration) tea.Cmd {
	return tea.Tick(period, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// refreshCmd reloads the tracker off the Update goroutine.
func refreshCmd(tr *quota.Tracker) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		return refreshedMsg{err: tr.Refresh(ctx)}
	}
}

func retryCmd(tr *quota.Tracker) tea.Cmd {
	return tea.Tick(retryInterval, func(time.Time) tea.Msg {
		return refreshCmd(tr)()
	})
}

func rolloverCmd() tea.Cmd {
	return tea.Tick(rolloverInterval, func(t time.Time) tea.Msg {
		return rolloverMsg(t)
	})
}
