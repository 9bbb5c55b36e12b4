package tui

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/vitron-bros/internal/core"
	"github.com/vovakirdan/vitron-bros/internal/store"
	"github.com/vovakirdan/vitron-bros/internal/ui"
)

const sliderWidth = 10

// Options edits the persisted game options through store actions. It owns
// no cursor; the page or modal hosting it decides which row is focused.
type Options struct {
	store *store.Store
}

// NewOptions creates the options component.
func NewOptions(s *store.Store) Options {
	return Options{store: s}
}

// Adjust changes the option at row by one step in dir (-1 or +1).
func (o Options) Adjust(row, dir int) error {
	return ui.AdjustOption(o.store, row, dir)
}

// Lines renders the option rows. focus is the focused row or -1.
func (o Options) Lines(focus int) []modalLine {
	g := o.store.Game()

	rows := []string{
		fmt.Sprintf("%-10s < %s >", ui.OptionLabels[ui.OptionTheme], ui.ThemeName(g)),
		fmt.Sprintf("%-10s %s %.2f", ui.OptionLabels[ui.OptionCoinSize], slider(g.CoinScale, store.MinCoinScale, store.MaxCoinScale), g.CoinScale),
		fmt.Sprintf("%-10s %s %.1f", ui.OptionLabels[ui.OptionBombSize], slider(g.BombScale, store.MinBombScale, store.MaxBombScale), g.BombScale),
		fmt.Sprintf("%-10s %s", ui.OptionLabels[ui.OptionSound], onOff(g.IsSoundEnabled)),
		fmt.Sprintf("%-10s %s", ui.OptionLabels[ui.OptionMusic], onOff(g.IsMusicEnabled)),
	}
	lines := make([]modalLine, len(rows))
	for i, r := range rows {
		lines[i] = modalLine{Text: r, Focused: i == focus}
	}
	return lines
}

func slider(v, min, max float64) string {
	filled := core.Clamp(int((v-min)/(max-min)*sliderWidth+0.5), 0, sliderWidth)
	return "[" + strings.Repeat("■", filled) + strings.Repeat("─", sliderWidth-filled) + "]"
}

func onOff(on bool) string {
	if on {
		return "[On ]"
	}
	return "[Off]"
}
