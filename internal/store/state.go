// Package store holds the UI state shared between the menus and the game
// scene: score, pause and game-over flags, the persisted options and the
// high-score table. Every mutation goes through a named action so that
// subscribers and the action log see the same history.
package store

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/vovakirdan/vitron-bros/internal/theme"
)

// Option limits.
const (
	MinCoinScale  = 0.1
	MaxCoinScale  = 1.0
	CoinScaleStep = 0.05
	MinBombScale  = 0.5
	MaxBombScale  = 2.0
	BombScaleStep = 0.1

	MaxHighScores = 10
)

// Sentinel errors returned by actions.
var (
	ErrInvalidInitials = errors.New("store: initials must be exactly 3 letters")
	ErrUnknownTheme    = errors.New("store: unknown theme")
	ErrNotQualified    = errors.New("store: score does not qualify for the high-score table")
)

// HighScore is one entry of the top-10 table. ID tells apart equal
// entries saved by different sessions; blobs written before it existed
// leave it empty.
type HighScore struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// GameState is the "game" slice of the state tree.
type GameState struct {
	Score                 int           `json:"score"`
	IsGameOver            bool          `json:"isGameOver"`
	IsPaused              bool          `json:"isPaused"`
	AwaitingHighScoreName bool          `json:"awaitingHighScoreName"`
	CurrentThemeID        int           `json:"currentThemeId"`
	AvailableThemes       []theme.Theme `json:"availableThemes"`
	CoinScale             float64       `json:"coinScale"`
	BombScale             float64       `json:"bombScale"`
	IsSoundEnabled        bool          `json:"isSoundEnabled"`
	IsMusicEnabled        bool          `json:"isMusicEnabled"`
	HighScores            []HighScore   `json:"highScores"`
}

// State is the whole state tree.
type State struct {
	HackedBy string    `json:"hackedBy"`
	Game     GameState `json:"game"`
}

// DefaultState returns the state of a fresh install.
func DefaultState(themes []theme.Theme) State {
	return State{
		HackedBy: "Blade",
		Game: GameState{
			CurrentThemeID:  theme.DefaultID,
			AvailableThemes: append([]theme.Theme(nil), themes...),
			CoinScale:       0.5,
			BombScale:       1.0,
			IsSoundEnabled:  true,
			IsMusicEnabled:  true,
			HighScores:      []HighScore{},
		},
	}
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := s
	out.Game.AvailableThemes = append([]theme.Theme(nil), s.Game.AvailableThemes...)
	out.Game.HighScores = append([]HighScore{}, s.Game.HighScores...)
	return out
}

// Qualifies reports whether score earns a place in the high-score table.
// Zero never qualifies.
func (g GameState) Qualifies(score int) bool {
	if score <= 0 {
		return false
	}
	if len(g.HighScores) < MaxHighScores {
		return true
	}
	return score > g.HighScores[len(g.HighScores)-1].Score
}

// HasTheme reports whether id is one of the available themes.
func (g GameState) HasTheme(id int) bool {
	for _, t := range g.AvailableThemes {
		if t.ID == id {
			return true
		}
	}
	return false
}

// NormalizeInitials trims and upper-cases name and checks it is exactly
// three letters.
func NormalizeInitials(name string) (string, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if len([]rune(n)) != 3 {
		return "", ErrInvalidInitials
	}
	for _, r := range n {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidInitials
		}
	}
	return n, nil
}

// insertHighScore adds an entry, keeping the table sorted by descending
// score and capped at MaxHighScores. Earlier entries win ties.
func insertHighScore(table []HighScore, e HighScore) []HighScore {
	out := append(append([]HighScore{}, table...), e)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > MaxHighScores {
		out = out[:MaxHighScores]
	}
	return out
}

// sanitizeHighScores drops entries with bad initials or no score and
// returns the rest normalised, sorted and capped. The result is never nil.
func sanitizeHighScores(table []HighScore) []HighScore {
	out := []HighScore{}
	for _, hs := range table {
		if name, err := NormalizeInitials(hs.Name); err == nil && hs.Score > 0 {
			out = insertHighScore(out, HighScore{ID: hs.ID, Name: name, Score: hs.Score})
		}
	}
	return out
}

// mergeHighScores adds the stored entries that mine does not hold yet.
// Entries match by ID, or by name and score when either has no ID.
func mergeHighScores(mine, stored []HighScore) []HighScore {
	out := append([]HighScore{}, mine...)
	matched := make([]bool, len(mine))
	for _, e := range sanitizeHighScores(stored) {
		if i := matchHighScore(mine, matched, e); i >= 0 {
			matched[i] = true
			continue
		}
		out = insertHighScore(out, e)
	}
	return out
}

func matchHighScore(table []HighScore, matched []bool, e HighScore) int {
	for i, hs := range table {
		if matched[i] {
			continue
		}
		if hs.ID != "" && e.ID != "" {
			if hs.ID == e.ID {
				return i
			}
			continue
		}
		if hs.Name == e.Name && hs.Score == e.Score {
			return i
		}
	}
	return -1
}

// snap clamps v to [min, max] and rounds it to the nearest step.
func snap(v, min, max, step float64) float64 {
	if math.IsNaN(v) {
		return min
	}
	v = math.Max(min, math.Min(max, v))
	v = math.Round(v/step) * step
	// Keep two decimals so 0.15000000000000002 persists as 0.15.
	v = math.Round(v*100) / 100
	return math.Max(min, math.Min(max, v))
}
