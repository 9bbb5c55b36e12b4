// Package ui holds the parts of the UI shell that do not depend on how it
// is drawn: the main menu entries, which modal the game page shows, the
// option rows and the initials filter. The terminal and desktop front-ends
// render these their own way.
package ui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/vovakirdan/vitron-bros/internal/core"
	"github.com/vovakirdan/vitron-bros/internal/store"
)

// Title is the game title shown on the main menu.
const Title = "Super Vitron Bros."

// MenuItem is one entry of the main menu.
type MenuItem int

const (
	MenuStartGame MenuItem = iota
	MenuHighScores
	MenuOptions
	MenuQuit
)

// MenuItems lists the main menu in display order.
var MenuItems = []MenuItem{MenuStartGame, MenuHighScores, MenuOptions, MenuQuit}

func (i MenuItem) String() string {
	switch i {
	case MenuStartGame:
		return "Start Game"
	case MenuHighScores:
		return "High Scores"
	case MenuOptions:
		return "Options"
	case MenuQuit:
		return "Quit"
	default:
		return "?"
	}
}

// Modal is the dialog shown over the game page.
type Modal int

const (
	ModalNone Modal = iota
	ModalPause
	ModalGameOver
	ModalInitials
)

// ModalFor derives the open modal from the store. The initials prompt comes
// before the game-over modal.
func ModalFor(g store.GameState) Modal {
	switch {
	case g.IsGameOver && g.AwaitingHighScoreName:
		return ModalInitials
	case g.IsGameOver:
		return ModalGameOver
	case g.IsPaused:
		return ModalPause
	}
	return ModalNone
}

// Option rows, in display order.
const (
	OptionTheme = iota
	OptionCoinSize
	OptionBombSize
	OptionSound
	OptionMusic
	OptionRows
)

// OptionLabels names the option rows.
var OptionLabels = [OptionRows]string{"Theme", "Coin Size", "Bomb Size", "Sound FX", "Music"}

// Pause modal buttons follow the option rows, so one cursor covers both.
const (
	PauseContinue = OptionRows + iota
	PauseRestart
	PauseMainMenu
	PauseRows
)

// PauseButtons labels the pause modal buttons.
var PauseButtons = []string{"Continue", "Restart", "Main Menu"}

// Game-over modal buttons.
const (
	OverPlayAgain = iota
	OverMainMenu
	OverRows
)

// OverButtons labels the game-over modal buttons.
var OverButtons = []string{"Play Again", "Main Menu"}

// AdjustOption changes the option at row by one step in dir (-1 or +1)
// through the store's actions. Switches flip regardless of direction.
// Rows outside the option range are ignored.
func AdjustOption(s *store.Store, row, dir int) error {
	g := s.Game()
	switch row {
	case OptionTheme:
		return s.SetTheme(NextTheme(g, dir))
	case OptionCoinSize:
		s.SetCoinScale(g.CoinScale + float64(dir)*store.CoinScaleStep)
	case OptionBombSize:
		s.SetBombScale(g.BombScale + float64(dir)*store.BombScaleStep)
	case OptionSound:
		s.ToggleSound()
	case OptionMusic:
		s.ToggleMusic()
	}
	return nil
}

// NextTheme returns the id next to the current theme in dir, wrapping.
func NextTheme(g store.GameState, dir int) int {
	n := len(g.AvailableThemes)
	if n == 0 {
		return g.CurrentThemeID
	}
	idx := 0
	for i, t := range g.AvailableThemes {
		if t.ID == g.CurrentThemeID {
			idx = i
		}
	}
	idx = ((idx+dir)%n + n) % n
	return g.AvailableThemes[idx].ID
}

// ThemeName returns the name of the current theme.
func ThemeName(g store.GameState) string {
	for _, t := range g.AvailableThemes {
		if t.ID == g.CurrentThemeID {
			return t.Name
		}
	}
	return "?"
}

// OptionValue formats the value of an option row as plain text.
func OptionValue(g store.GameState, row int) string {
	switch row {
	case OptionTheme:
		return ThemeName(g)
	case OptionCoinSize:
		return fmt.Sprintf("%.2f", g.CoinScale)
	case OptionBombSize:
		return fmt.Sprintf("%.1f", g.BombScale)
	case OptionSound:
		return OnOff(g.IsSoundEnabled)
	case OptionMusic:
		return OnOff(g.IsMusicEnabled)
	}
	return ""
}

// OnOff formats a switch.
func OnOff(on bool) string {
	if on {
		return "On"
	}
	return "Off"
}

// Move shifts a cursor by delta, clamped to [0, rows).
func Move(cursor, delta, rows int) int {
	return core.Clamp(cursor+delta, 0, rows-1)
}

// LettersOnly upper-cases s and drops everything but A-Z.
func LettersOnly(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if r <= unicode.MaxASCII && unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
