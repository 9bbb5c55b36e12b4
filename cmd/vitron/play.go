package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/vitron-bros/internal/platform/tui"
	"github.com/vovakirdan/vitron-bros/internal/theme"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the game in the terminal.

Controls:
  Left/Right, A/D  - Run
  Up/W/Space       - Jump
  P/Esc            - Pause (options, restart, main menu)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Terminals report key presses but not releases, so a held key counts as
held until its auto-repeat stops. The control bar on the bottom row can
be clicked with the mouse.

Examples:
  vitron play
  vitron play --seed 42
  vitron play --config ./my-scene.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger := newLogger(true, "vitron")

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	db := openDB(logger)
	if db != nil {
		defer db.Close()
	}

	err := tui.Run(tui.Deps{
		Store:   newStore(db, logger),
		DB:      db,
		Scene:   loadScene(logger),
		Themes:  theme.Default(),
		Runtime: runtimeConfig(width, height),
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
