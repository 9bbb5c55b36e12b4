package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vitron-bros/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the available themes",
	Long: `Shows every theme with its id. The current one is marked with *.

Change it with 'vitron options --theme <id>'.`,
	Args: cobra.NoArgs,
	RunE: runThemes,
}

func runThemes(_ *cobra.Command, _ []string) error {
	logger := newLogger(false, "vitron")
	current := theme.DefaultID
	if db := openDB(logger); db != nil {
		current = newStore(db, logger).Game().CurrentThemeID
		db.Close()
	}

	fmt.Println("Available themes:")
	fmt.Println()
	fmt.Printf("    %-2s  %s\n", "ID", "Name")
	fmt.Printf("    %-2s  %s\n", "--", "----")
	for _, t := range theme.Default().Themes() {
		mark := " "
		if t.ID == current {
			mark = "*"
		}
		fmt.Printf("  %s %-2d  %s\n", mark, t.ID, t.Name)
	}
	return nil
}
