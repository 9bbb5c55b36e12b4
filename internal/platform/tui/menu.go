package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/vitron-bros/internal/ui"
)

// MainMenu is the landing page.
type MainMenu struct {
	cursor int
}

// Move shifts the cursor, clamped to the item list.
func (m *MainMenu) Move(delta int) {
	m.cursor = ui.Move(m.cursor, delta, len(ui.MenuItems))
}

// Selected returns the item under the cursor.
func (m MainMenu) Selected() ui.MenuItem {
	return ui.MenuItems[m.cursor]
}

// View renders the menu for a terminal of the given width.
func (m MainMenu) View(width int, best int) string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render(centerText(ui.Title, width)))
	b.WriteString("\n\n")
	if best > 0 {
		b.WriteString(dim.Render(centerText("Top score: "+strconv.Itoa(best), width)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, item := range ui.MenuItems {
		line := "  " + item.String()
		if i == m.cursor {
			b.WriteString(selectedStyle.Render(centerText("> "+item.String(), width)))
		} else {
			b.WriteString(centerText(line, width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render(centerText("Up/Down: Navigate  |  Enter: Select  |  Q: Quit", width)))
	b.WriteString("\n")
	return b.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}
