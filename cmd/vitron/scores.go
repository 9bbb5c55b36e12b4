package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/vitron-bros/internal/platform/tui"
	"github.com/vovakirdan/vitron-bros/internal/storage"
	"github.com/vovakirdan/vitron-bros/internal/store"
	"github.com/vovakirdan/vitron-bros/internal/theme"
)

var (
	flagRecent int
	flagUser   string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high-score table",
	Long: `Display the top 10 high scores, the best run ever recorded and
overall run statistics.

Examples:
  vitron scores
  vitron scores --recent 5
  vitron scores --user alice   # table of an SSH user`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 0, "Also list the N most recent runs")
	scoresCmd.Flags().StringVar(&flagUser, "user", "", "Show the table of an SSH user instead of the local one")
}

func runScores(_ *cobra.Command, _ []string) error {
	logger := newLogger(false, "vitron")

	// Open storage
	db, err := storage.Open(settings.Database.Path)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer db.Close()

	opts := []store.Option{store.WithPersister(db), store.WithLogger(logger)}
	if flagUser != "" {
		opts = append(opts, store.WithKey(tui.SessionKey(flagUser)))
	}
	st := store.New(theme.Default().Themes(), opts...)
	if err := st.Rehydrate(); err != nil {
		return fmt.Errorf("error reading high scores: %w", err)
	}

	// Display scores
	fmt.Println("High Scores - Super Vitron Bros.")
	fmt.Println()

	scores := st.Game().HighScores
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'vitron' to set the first high score!")
	} else {
		// Print header
		fmt.Printf("  %-4s  %-4s  %s\n", "Rank", "Name", "Score")
		fmt.Printf("  %-4s  %-4s  %s\n", "----", "----", "-----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-4s  %d\n", i+1, entry.Name, entry.Score)
		}
	}

	// Show run log
	stats, err := db.Stats()
	if err != nil {
		return fmt.Errorf("error retrieving run stats: %w", err)
	}
	if stats.Runs == 0 {
		return nil
	}
	fmt.Println()
	if best, err := db.BestRun(); err == nil && best != nil {
		fmt.Printf("Best run: %d by %s (%s)\n", best.Score, best.Player, best.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Printf("Runs: %d  Average: %.1f  Last played: %s\n",
		stats.Runs, stats.AvgScore, stats.LastPlayed.Format("2006-01-02 15:04"))

	if flagRecent > 0 {
		runs, err := db.RecentRuns(flagRecent)
		if err != nil {
			return fmt.Errorf("error retrieving runs: %w", err)
		}
		fmt.Println()
		fmt.Printf("  %-16s  %-10s  %-6s  %s\n", "Date", "Player", "Theme", "Score")
		for _, r := range runs {
			fmt.Printf("  %-16s  %-10s  %-6d  %d\n", r.CreatedAt.Format("2006-01-02 15:04"), r.Player, r.ThemeID, r.Score)
		}
	}
	return nil
}
