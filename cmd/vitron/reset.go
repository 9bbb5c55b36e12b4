package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vitron-bros/internal/storage"
)

var flagResetRuns bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear persisted options and high scores",
	Long: `Restores the default options and empties the top-10 table.
With --runs the run log is cleared too.

Examples:
  vitron reset
  vitron reset --runs`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetRuns, "runs", false, "Also clear the run log")
}

func runReset(_ *cobra.Command, _ []string) error {
	logger := newLogger(false, "vitron")

	db, err := storage.Open(settings.Database.Path)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer db.Close()

	if err := newStore(db, logger).Reset(); err != nil {
		return fmt.Errorf("cannot reset state: %w", err)
	}
	fmt.Println("Options and high scores reset.")

	if flagResetRuns {
		if err := db.ClearRuns(); err != nil {
			return fmt.Errorf("cannot clear runs: %w", err)
		}
		fmt.Println("Run log cleared.")
	}
	return nil
}
