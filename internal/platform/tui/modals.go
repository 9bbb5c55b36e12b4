package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/vitron-bros/internal/core"
	"github.com/vovakirdan/vitron-bros/internal/store"
	"github.com/vovakirdan/vitron-bros/internal/ui"
)

func (a *App) updatePause(msg tea.KeyMsg) tea.Cmd {
	switch a.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		return a.quit()
	case MenuActionBack:
		a.resume()
	case MenuActionUp:
		a.modalCursor = core.Clamp(a.modalCursor-1, 0, ui.PauseRows-1)
	case MenuActionDown:
		a.modalCursor = core.Clamp(a.modalCursor+1, 0, ui.PauseRows-1)
	case MenuActionLeft:
		a.adjustOption(a.modalCursor, -1)
	case MenuActionRight:
		a.adjustOption(a.modalCursor, 1)
	case MenuActionSelect:
		switch a.modalCursor {
		case ui.PauseContinue:
			a.resume()
		case ui.PauseRestart:
			a.restart()
		case ui.PauseMainMenu:
			a.toMainMenu()
		default:
			a.adjustOption(a.modalCursor, 1)
		}
	}
	return nil
}

func (a *App) updateGameOver(msg tea.KeyMsg) tea.Cmd {
	switch a.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		return a.quit()
	case MenuActionUp:
		a.modalCursor = core.Clamp(a.modalCursor-1, 0, ui.OverRows-1)
	case MenuActionDown:
		a.modalCursor = core.Clamp(a.modalCursor+1, 0, ui.OverRows-1)
	case MenuActionBack:
		a.toMainMenu()
	case MenuActionSelect:
		if a.modalCursor == ui.OverPlayAgain {
			a.restart()
		} else {
			a.toMainMenu()
		}
	}
	if msg.String() == "r" {
		a.restart()
	}
	return nil
}

// updateInitials edits the 3-letter name. Only letters are kept and Save
// stays disabled until exactly three are typed.
func (a *App) updateInitials(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		a.saveInitials()
		return nil
	case tea.KeyEsc:
		a.initials.Blur()
		a.deps.Store.SkipHighScore()
		return nil
	}

	var cmd tea.Cmd
	a.initials, cmd = a.initials.Update(msg)
	a.initials.SetValue(ui.LettersOnly(a.initials.Value()))
	a.initialsErr = ""
	return cmd
}

func (a *App) saveInitials() {
	name := a.initials.Value()
	if len(name) != 3 {
		a.initialsErr = "Enter exactly 3 letters"
		return
	}
	err := a.deps.Store.AddHighScore(name)
	switch {
	case errors.Is(err, store.ErrInvalidInitials):
		a.initialsErr = "Enter exactly 3 letters"
	case err != nil:
		a.deps.Logger.Warn("high score rejected", "err", err)
		a.initialsErr = "Could not save score"
	default:
		a.initials.Blur()
		a.initialsErr = ""
		a.modalCursor = ui.OverPlayAgain
	}
}

func (a *App) drawPause() {
	lines := a.options.Lines(a.modalCursor)
	lines = append(lines, modalLine{})
	for i, label := range ui.PauseButtons {
		lines = append(lines, modalLine{Text: label, Focused: a.modalCursor == ui.PauseContinue+i})
	}
	drawModal(a.screen, "Paused", lines)
}

func (a *App) drawGameOver(g store.GameState) {
	lines := []modalLine{
		{Text: fmt.Sprintf("Your final score: %d", g.Score)},
	}
	if hs := g.HighScores; len(hs) > 0 {
		lines = append(lines, modalLine{Text: fmt.Sprintf("Top score: %d (%s)", hs[0].Score, hs[0].Name), Color: core.ColorGray})
	}
	lines = append(lines, modalLine{})
	for i, label := range ui.OverButtons {
		lines = append(lines, modalLine{Text: label, Focused: a.modalCursor == i})
	}
	drawModal(a.screen, "Game Over", lines)
}

func (a *App) drawInitials(g store.GameState) {
	name := a.initials.Value()
	slots := name + strings.Repeat("_", core.Max(3-len(name), 0))

	save := modalLine{Text: "Enter: Save", Color: core.ColorGray}
	if len(name) == 3 {
		save.Color = core.ColorBrightGreen
	}
	lines := []modalLine{
		{Text: fmt.Sprintf("Score: %d", g.Score)},
		{},
		{Text: "Your initials: " + slots, Color: core.ColorBrightWhite},
		{Text: a.initialsErr, Color: core.ColorBrightRed},
		save,
		{Text: "Esc: Skip", Color: core.ColorGray},
	}
	drawModal(a.screen, "New High Score!", lines)
}
