package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/vitron-bros/internal/storage"
	"github.com/vovakirdan/vitron-bros/internal/store"
)

// HighScoresKeyMap defines the key bindings for the high-score page.
type HighScoresKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HighScoresKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HighScoresKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Back, k.Quit},
	}
}

// DefaultHighScoresKeyMap returns default key bindings.
func DefaultHighScoresKeyMap() HighScoresKeyMap {
	return HighScoresKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "enter"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HighScoresPage lists the persisted top-10 table and, when a database is
// attached, the best run across every player.
type HighScoresPage struct {
	scores []store.HighScore
	best   *storage.Run
	stats  *storage.RunStats
	table  table.Model
	help   help.Model
	keys   HighScoresKeyMap
	width  int
	height int
}

// NewHighScoresPage creates the page for the given terminal size.
func NewHighScoresPage(width, height int) HighScoresPage {
	h := help.New()
	h.ShowAll = false
	p := HighScoresPage{
		keys:   DefaultHighScoresKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	p.table = p.createTable()
	return p
}

func (p *HighScoresPage) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Name", Width: 6},
		{Title: "Score", Width: 12},
	}

	height := p.height - 10
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// Load refreshes the page from the store and, if db is not nil, the run log.
// A failing database only hides the server line.
func (p *HighScoresPage) Load(s *store.Store, db *storage.Store) {
	p.scores = s.Game().HighScores
	p.best, p.stats = nil, nil
	if db != nil {
		if best, err := db.BestRun(); err == nil {
			p.best = best
		}
		if stats, err := db.Stats(); err == nil {
			p.stats = stats
		}
	}

	rows := make([]table.Row, len(p.scores))
	for i, hs := range p.scores {
		rows[i] = table.Row{
			fmt.Sprintf("%d.", i+1),
			hs.Name,
			fmt.Sprintf("Score: %d", hs.Score),
		}
	}
	p.table.SetRows(rows)
	p.table.GotoTop()
}

// Resize adapts the table to a new terminal size.
func (p *HighScoresPage) Resize(width, height int) {
	p.width = width
	p.height = height
	rows := p.table.Rows()
	p.table = p.createTable()
	p.table.SetRows(rows)
	p.help.Width = width
}

// Update handles a key. It reports whether the user asked to go back or quit.
func (p *HighScoresPage) Update(msg tea.KeyMsg) (back, quit bool, cmd tea.Cmd) {
	switch {
	case key.Matches(msg, p.keys.Quit):
		return false, true, nil
	case key.Matches(msg, p.keys.Back):
		return true, false, nil
	}
	p.table, cmd = p.table.Update(msg)
	return false, false, cmd
}

// View renders the page.
func (p HighScoresPage) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("HIGH SCORES", p.width)))
	b.WriteString("\n\n")

	if len(p.scores) == 0 {
		b.WriteString(centerText("No scores yet. Be the first!", p.width))
		b.WriteString("\n")
	} else {
		tableStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
		b.WriteString(lipgloss.PlaceHorizontal(p.width, lipgloss.Center, tableStyle.Render(p.table.View())))
		b.WriteString("\n")
	}

	if line := p.serverLine(); line != "" {
		dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
		b.WriteString("\n")
		b.WriteString(dim.Render(centerText(line, p.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(lipgloss.PlaceHorizontal(p.width, lipgloss.Center, helpStyle.Render(p.help.View(p.keys))))
	return b.String()
}

func (p HighScoresPage) serverLine() string {
	if p.best == nil || p.stats == nil {
		return ""
	}
	return fmt.Sprintf("Best run: %d by %s  |  %d runs played", p.best.Score, p.best.Player, p.stats.Runs)
}
