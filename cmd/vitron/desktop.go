package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vitron-bros/internal/platform/desktop"
	"github.com/vovakirdan/vitron-bros/internal/theme"
)

var flagMute bool

var desktopCmd = &cobra.Command{
	Use:   "desktop",
	Short: "Play in a desktop window",
	Long: `Open an 800x600 window and play with real key press and release.

Controls:
  Left/Right, A/D  - Run
  Up/W/Space       - Jump
  P/Esc            - Pause
  Mouse / touch    - On-screen buttons

The window can be resized; the game keeps its aspect ratio.

Examples:
  vitron desktop
  vitron desktop --fps 120
  vitron desktop --mute`,
	Args: cobra.NoArgs,
	RunE: runDesktop,
}

func init() {
	desktopCmd.Flags().BoolVar(&flagMute, "mute", false, "Do not open an audio device")
}

func runDesktop(_ *cobra.Command, _ []string) error {
	logger := newLogger(false, "vitron")

	db := openDB(logger)
	if db != nil {
		defer db.Close()
	}

	cfg := desktop.Config{
		Store:   newStore(db, logger),
		DB:      db,
		Scene:   loadScene(logger),
		Themes:  theme.Default(),
		Runtime: runtimeConfig(desktop.ScreenWidth, desktop.ScreenHeight),
		Logger:  logger,
	}
	if flagMute {
		cfg.Sound = silence{}
	}

	if err := desktop.Run(cfg); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// silence is an audio player that plays nothing.
type silence struct{}

func (silence) Play(string, float64)     {}
func (silence) PlayLoop(string, float64) {}
func (silence) Stop(string)              {}
