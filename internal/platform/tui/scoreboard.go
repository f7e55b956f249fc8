package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-swim/internal/config"
	"github.com/vovakirdan/tui-swim/internal/storage"
)

// Scoreboard layout constants
const (
	tableMinWidth = 50  // Below this the date column is dropped
	maxScores     = 100 // Max scores to load
)

// ScoreSource reads finished sessions. storage.Store implements it.
type ScoreSource interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Filter key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Filter, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Filter, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Filter: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "mine / everyone"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the best-swims screen.
type ScoreboardModel struct {
	source   ScoreSource
	tiers    []config.Tier
	userID   string
	onlyMine bool
	all      []storage.ScoreEntry
	scores   []storage.ScoreEntry
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	err      error
	quitting bool
}

// NewScoreboardModel creates a scoreboard. When userID is set the view
// starts filtered to that swimmer.
func NewScoreboardModel(source ScoreSource, tiers []config.Tier, userID string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		source:   source,
		tiers:    tiers,
		userID:   userID,
		onlyMine: userID != "",
		keys:     DefaultScoreboardKeyMap(),
		help:     h,
		width:    width,
		height:   height,
	}

	m.table = m.createTable()
	m.loadScores()

	return m
}

// createTable creates a new table with columns sized to the terminal.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Swimmer", Width: 14},
		{Title: "Prey", Width: 6},
		{Title: "Reached", Width: 14},
	}
	if m.width-4 >= tableMinWidth+18 {
		columns = append(columns, table.Column{Title: "Date", Width: 14})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("24")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadScores reads the best swims and applies the current filter.
func (m *ScoreboardModel) loadScores() {
	m.all, m.err = nil, nil
	if m.source != nil {
		m.all, m.err = m.source.TopScores(GameID, maxScores)
	}
	m.applyFilter()
}

func (m *ScoreboardModel) applyFilter() {
	if !m.onlyMine {
		m.scores = m.all
	} else {
		m.scores = m.scores[:0:0]
		for _, s := range m.all {
			if s.UserID == m.userID {
				m.scores = append(m.scores, s)
			}
		}
	}
	m.updateTableRows()
}

func (m ScoreboardModel) tierName(idx int) string {
	if idx >= 0 && idx < len(m.tiers) {
		return m.tiers[idx].Name
	}
	return fmt.Sprintf("tier %d", idx+1)
}

// updateTableRows updates the table with current scores.
func (m *ScoreboardModel) updateTableRows() {
	withDate := len(m.table.Columns()) > 4
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		row := table.Row{
			fmt.Sprintf("#%d", i+1),
			s.UserID,
			fmt.Sprintf("%d", s.Score),
			m.tierName(s.Tier),
		}
		if withDate {
			row = append(row, s.CreatedAt.Format("Jan 02 15:04"))
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Filter):
			if m.userID != "" {
				m.onlyMine = !m.onlyMine
				m.applyFilter()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "BEST SWIMS - everyone"
	if m.onlyMine {
		title = fmt.Sprintf("BEST SWIMS - %s", m.userID)
	}

	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.err != nil {
		return emptyStyle.Render("Could not load scores:\n" + m.err.Error())
	}
	if len(m.scores) == 0 {
		return emptyStyle.Render("No swims recorded yet.\nEat some prey to get on the board!")
	}

	return m.table.View()
}

// Rows returns the entries currently shown.
func (m ScoreboardModel) Rows() []storage.ScoreEntry {
	return m.scores
}

// centerText centers each line of text within width.
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		pad := (width - lipgloss.Width(line)) / 2
		if pad > 0 {
			lines[i] = strings.Repeat(" ", pad) + line
		}
	}
	return strings.Join(lines, "\n")
}

// RunScoreboard runs the scoreboard screen until the user quits.
func RunScoreboard(source ScoreSource, tiers []config.Tier, userID string, width, height int) error {
	model := NewScoreboardModel(source, tiers, userID, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
