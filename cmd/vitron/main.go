// vitron is a side-scrolling platformer: collect coins, dodge bombs and
// chase the high-score table, in the terminal, in a window or over SSH.
//
// Usage:
//
//	vitron                   - Play in the terminal (same as "vitron play")
//	vitron desktop           - Play in a desktop window
//	vitron serve             - Start SSH server for remote play
//	vitron scores            - Show the high-score table and run stats
//	vitron themes            - List themes
//	vitron options           - Show or change persisted options
//	vitron reset             - Clear persisted options and high scores
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.vitron/vitron.db)
//	--config <path>      - Custom scene tuning YAML
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/vitron-bros/internal/config"
	"github.com/vovakirdan/vitron-bros/internal/core"
	"github.com/vovakirdan/vitron-bros/internal/storage"
	"github.com/vovakirdan/vitron-bros/internal/store"
	"github.com/vovakirdan/vitron-bros/internal/theme"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string

	settings config.Settings
	logFile  *os.File
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vitron",
	Short: "Super Vitron Bros. - a coin-collecting platformer",
	Long: `Super Vitron Bros. is a side-scrolling platformer. Run left and right,
jump between platforms, collect every coin and keep away from the bombs
that bounce in with each new wave.

Available commands:
  play     - Play in the terminal (default)
  desktop  - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View high scores
  themes   - List themes
  options  - Show or change options
  reset    - Clear persisted state

Settings are read from ~/.vitron/config.toml (or $VITRON_CONFIG) and
VITRON_* environment variables; flags override both.

Examples:
  vitron
  vitron desktop
  vitron serve --ssh :2222
  vitron options --theme 3 --music=false`,
	SilenceUsage:       true,
	PersistentPreRunE:  loadSettings,
	PersistentPostRunE: closeLog,
	RunE:               runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.vitron/vitron.db", "Path to the database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom scene config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(desktopCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(resetCmd)
}

// loadSettings reads settings from file and env, then applies the flags
// that were set explicitly.
func loadSettings(cmd *cobra.Command, _ []string) error {
	s, err := config.LoadSettings()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("fps") {
		s.Game.TickRate = flagFPS
	}
	if flags.Changed("db") {
		s.Database.Path = flagDBPath
	}
	if flags.Changed("config") {
		s.Game.SceneConfig = flagConfig
	}
	if flags.Changed("log-level") {
		s.Log.Level = flagLogLevel
	}
	if s.Game.TickRate <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", s.Game.TickRate)
	}
	settings = s
	return nil
}

func closeLog(_ *cobra.Command, _ []string) error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// newLogger builds the charm logger. Terminal play logs to the log file so
// it never draws over the game; other commands log to stderr.
func newLogger(toFile bool, prefix string) *log.Logger {
	var w io.Writer = os.Stderr
	if toFile {
		w = io.Discard
		if f, err := openLogFile(settings.Log.File); err == nil {
			logFile = f
			w = f
		}
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(settings.Log.Level); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, os.ErrNotExist
	}
	path, err := config.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// openDB opens the database. Play continues without it.
func openDB(logger *log.Logger) *storage.Store {
	db, err := storage.Open(settings.Database.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		logger.Warn("could not open database", "path", settings.Database.Path, "err", err)
		return nil
	}
	return db
}

// newStore creates the local UI store and restores the persisted state.
func newStore(db *storage.Store, logger *log.Logger) *store.Store {
	opts := []store.Option{store.WithLogger(logger)}
	if db != nil {
		opts = append(opts, store.WithPersister(db))
	}
	st := store.New(theme.Default().Themes(), opts...)
	if err := st.Rehydrate(); err != nil {
		logger.Warn("could not restore state", "err", err)
	}
	return st
}

// loadScene reads the scene tuning, falling back to the built-in defaults.
func loadScene(logger *log.Logger) config.SceneConfig {
	cfg, err := config.LoadScene(settings.Game.SceneConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; using default scene config\n", err)
		logger.Warn("could not load scene config", "err", err)
		return config.DefaultSceneConfig()
	}
	return cfg
}

func runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: settings.Game.TickRate,
		Seed:     flagSeed,
	}
}
