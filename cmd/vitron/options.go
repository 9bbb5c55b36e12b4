package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vitron-bros/internal/storage"
	"github.com/vovakirdan/vitron-bros/internal/ui"
)

var (
	flagTheme     int
	flagCoinScale float64
	flagBombScale float64
	flagSound     bool
	flagMusic     bool
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Show or change the persisted options",
	Long: `Without flags, prints the current options. With flags, changes them
the same way the Options page does: sizes are clamped and snapped to
their step, unknown themes are rejected.

Examples:
  vitron options
  vitron options --theme 2
  vitron options --coin-scale 0.8 --bomb-scale 1.5
  vitron options --music=false`,
	Args: cobra.NoArgs,
	RunE: runOptions,
}

func init() {
	optionsCmd.Flags().IntVar(&flagTheme, "theme", 0, "Theme id (see 'vitron themes')")
	optionsCmd.Flags().Float64Var(&flagCoinScale, "coin-scale", 0, "Coin size, 0.1 to 1.0")
	optionsCmd.Flags().Float64Var(&flagBombScale, "bomb-scale", 0, "Bomb size, 0.5 to 2.0")
	optionsCmd.Flags().BoolVar(&flagSound, "sound", true, "Sound effects on or off")
	optionsCmd.Flags().BoolVar(&flagMusic, "music", true, "Music on or off")
}

func runOptions(cmd *cobra.Command, _ []string) error {
	logger := newLogger(false, "vitron")

	db, err := storage.Open(settings.Database.Path)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer db.Close()

	st := newStore(db, logger)
	flags := cmd.Flags()
	if flags.Changed("theme") {
		if err := st.SetTheme(flagTheme); err != nil {
			return fmt.Errorf("cannot set theme %d: %w", flagTheme, err)
		}
	}
	if flags.Changed("coin-scale") {
		st.SetCoinScale(flagCoinScale)
	}
	if flags.Changed("bomb-scale") {
		st.SetBombScale(flagBombScale)
	}
	if flags.Changed("sound") && flagSound != st.SoundEnabled() {
		st.ToggleSound()
	}
	if flags.Changed("music") && flagMusic != st.MusicEnabled() {
		st.ToggleMusic()
	}

	g := st.Game()
	for row := 0; row < ui.OptionRows; row++ {
		fmt.Printf("  %-10s  %s\n", ui.OptionLabels[row], ui.OptionValue(g, row))
	}
	return nil
}
