package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-swim/internal/core"
	"github.com/vovakirdan/tui-swim/internal/swim"
)

// helpRows is the number of terminal rows kept below the play area.
const helpRows = 1

// noticeDuration is how long a refusal message stays on screen.
const noticeDuration = 2 * time.Second

// Model is the Bubble Tea model for one swim session.
type Model struct {
	session *Session
	engine  *swim.Engine
	screen  *core.Screen
	period  time.Duration

	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	notice      string
	noticeUntil time.Time
	quitting    bool
}

// NewModel creates a model for the session. width and height are the full
// terminal size; one row is kept for the help line.
func NewModel(s *Session, period time.Duration, width, height int) Model {
	playH := max(height-helpRows, 1)
	s.Engine.Resize(width, playH)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	h := help.New()
	h.Width = width

	return Model{
		session: s,
		engine:  s.Engine,
		screen:  core.NewScreen(width, playH),
		period:  period,
		keys:    DefaultKeyMap(),
		help:    h,
		spinner: sp,
	}
}

// Init starts the tick loop, the first quota load and the rollover check.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.period),
		refreshCmd(m.session.Tracker),
		rolloverCmd(),
		m.spinner.Tick,
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		playH := max(msg.Height-helpRows, 1)
		m.screen.Resize(msg.Width, playH)
		m.engine.Resize(msg.Width, playH)
		m.help.Width = msg.Width
		return m, nil

	case tea.BlurMsg:
		// Leaving the screen ends the session
		m.engine.Reset()
		return m, nil

	case TickMsg:
		m.engine.Tick()
		return m, tickCmd(m.period)

	case refreshedMsg:
		if msg.err != nil {
			return m, retryCmd(m.session.Tracker)
		}
		return m, nil

	case rolloverMsg:
		cmds := []tea.Cmd{rolloverCmd()}
		switch {
		case m.session.Tracker.RolledOver():
			m.engine.Reset()
			cmds = append(cmds, refreshCmd(m.session.Tracker))
		default:
			if refresh, recheck := m.quotaPoll(); refresh {
				if recheck {
					// Pick up activities logged elsewhere
					m.session.Tracker.InvalidateEligibility()
				}
				cmds = append(cmds, refreshCmd(m.session.Tracker))
			}
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// quotaPoll reports whether an idle screen should reload the quota, and
// whether eligibility must be asked for again too. Other connections for
// the same player may have used plays since the last load.
func (m Model) quotaPoll() (refresh, recheckEligibility bool) {
	if m.engine.Running() {
		return false, false
	}
	switch m.engine.Mode() {
	case swim.ModeMustCompletePrerequisite:
		return true, true
	case swim.ModeWelcome, swim.ModeReadyToStart, swim.ModeGameOver:
		return true, false
	default:
		return false, false
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.engine.Reset()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Swim):
		if m.engine.Jump() {
			return m, nil
		}
		if err := m.engine.Start(); err != nil {
			m.setNotice(err)
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) setNotice(err error) {
	switch {
	case errors.Is(err, swim.ErrLoading):
		m.notice = "Still checking today's swims..."
	case errors.Is(err, swim.ErrNoPlaysLeft):
		m.notice = "No swims left today"
	case errors.Is(err, swim.ErrNotEligible):
		m.notice = "Journal and breathe first"
	default:
		m.notice = err.Error()
	}
	m.noticeUntil = time.Now().Add(noticeDuration)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.engine.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".swim", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("swim_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.engine.Render(m.screen)

	if m.engine.Mode() == swim.ModeLoading {
		h := m.screen.Height()
		m.screen.DrawTextCentered(h/2, m.spinner.View()+" Checking today's swims", core.ColorCyan)
	}
	if m.notice != "" && time.Now().Before(m.noticeUntil) {
		x := m.screen.Width() - len([]rune(m.notice)) - 2
		m.screen.DrawText(x, 0, m.notice, core.ColorRed)
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for the session and closes the
// session once the program exits.
func Run(s *Session, period time.Duration, width, height int) error {
	model := NewModel(s, period, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)

	_, err := p.Run()
	s.Close()
	return err
}
