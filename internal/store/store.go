package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/vitron-bros/internal/storage"
	"github.com/vovakirdan/vitron-bros/internal/theme"
)

// StorageKey is the key the state tree is persisted under.
const StorageKey = "mario-storage"

// Action names reported to subscribers and the action log.
const (
	ActionRehydrate     = "persist/rehydrate"
	ActionReset         = "app/reset"
	ActionSetScore      = "game/setScore"
	ActionSetGameOver   = "game/setGameOver"
	ActionTogglePause   = "game/togglePause"
	ActionSetTheme      = "game/setTheme"
	ActionSetCoinScale  = "game/setCoinScale"
	ActionSetBombScale  = "game/setBombScale"
	ActionToggleSound   = "game/toggleSound"
	ActionToggleMusic   = "game/toggleMusic"
	ActionAddHighScore  = "game/addHighScore"
	ActionSkipHighScore = "game/skipHighScore"
)

// Persister stores the serialised state tree as an opaque blob.
// Get must return storage.ErrNotFound for keys that were never written.
// Update must run its read and write as one step, handing fn nil for a
// missing key.
type Persister interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Update(key string, fn func(old []byte) ([]byte, error)) error
}

// Listener is called after every action with the new state.
type Listener func(action string, s State)

// Option configures a Store.
type Option func(*Store)

// WithPersister saves the state tree through p after every action.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persist = p }
}

// WithKey overrides the persistence key. SSH sessions use one key per user.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger logs every action name at debug level.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Store is the UI state container. It is safe for concurrent use;
// listeners run synchronously on the caller's goroutine, outside the lock.
type Store struct {
	mu        sync.Mutex
	state     State
	themes    []theme.Theme
	listeners map[int]Listener
	nextID    int

	persist Persister
	key     string
	logger  *log.Logger
}

// New creates a store with default state. themes is the catalogue the
// theme option may choose from.
func New(themes []theme.Theme, opts ...Option) *Store {
	s := &Store{
		state:     DefaultState(themes),
		themes:    append([]theme.Theme(nil), themes...),
		listeners: make(map[int]Listener),
		key:       StorageKey,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Game returns a copy of the game slice.
func (s *Store) Game() GameState {
	return s.State().Game
}

// SoundEnabled reports the sound-effects switch.
func (s *Store) SoundEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Game.IsSoundEnabled
}

// MusicEnabled reports the music switch.
func (s *Store) MusicEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Game.IsMusicEnabled
}

// Subscribe registers fn for every subsequent action. The returned func
// removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Rehydrate loads the persisted tree. A missing blob keeps the defaults.
// Transient flags are reset and the theme list is replaced by the
// catalogue, so stale or hand-edited blobs cannot leave the UI stuck.
func (s *Store) Rehydrate() error {
	if s.persist == nil {
		return nil
	}
	blob, err := s.persist.Get(s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("store: cannot load %q: %w", s.key, err)
	}

	loaded := DefaultState(s.themes)
	if err := json.Unmarshal(blob, &loaded); err != nil {
		return fmt.Errorf("store: cannot parse persisted state: %w", err)
	}

	return s.dispatch(ActionRehydrate, false, func(st *State) error {
		g := &loaded.Game
		g.Score = 0
		g.IsGameOver = false
		g.IsPaused = false
		g.AwaitingHighScoreName = false
		g.AvailableThemes = append([]theme.Theme(nil), s.themes...)
		if !g.HasTheme(g.CurrentThemeID) {
			g.CurrentThemeID = theme.DefaultID
		}
		g.CoinScale = snap(g.CoinScale, MinCoinScale, MaxCoinScale, CoinScaleStep)
		g.BombScale = snap(g.BombScale, MinBombScale, MaxBombScale, BombScaleStep)

		g.HighScores = sanitizeHighScores(g.HighScores)

		*st = loaded
		return nil
	})
}

// Reset restores the defaults and persists them, dropping the stored
// high-score table.
func (s *Store) Reset() error {
	return s.dispatch(ActionReset, true, func(st *State) error {
		*st = DefaultState(s.themes)
		return nil
	})
}

// SetScore mirrors the running score reported by the scene.
func (s *Store) SetScore(to int) {
	_ = s.dispatch(ActionSetScore, true, func(st *State) error {
		st.Game.Score = to
		return nil
	})
}

// SetGameOver raises or clears the game-over flag. Raising it asks for
// initials when the score qualifies; clearing it also zeroes the score.
func (s *Store) SetGameOver(isOver bool) {
	_ = s.dispatch(ActionSetGameOver, true, func(st *State) error {
		g := &st.Game
		g.IsGameOver = isOver
		if isOver {
			g.AwaitingHighScoreName = g.Qualifies(g.Score)
		} else {
			g.Score = 0
			g.AwaitingHighScoreName = false
		}
		return nil
	})
}

// TogglePause sets the pause flag.
func (s *Store) TogglePause(isPaused bool) {
	_ = s.dispatch(ActionTogglePause, true, func(st *State) error {
		st.Game.IsPaused = isPaused
		return nil
	})
}

// SetTheme selects the theme used from the next scene start.
func (s *Store) SetTheme(id int) error {
	return s.dispatch(ActionSetTheme, true, func(st *State) error {
		if !st.Game.HasTheme(id) {
			return fmt.Errorf("%w: %d", ErrUnknownTheme, id)
		}
		st.Game.CurrentThemeID = id
		return nil
	})
}

// SetCoinScale sets the coin size, clamped to [0.1, 1.0] in 0.05 steps.
func (s *Store) SetCoinScale(v float64) {
	_ = s.dispatch(ActionSetCoinScale, true, func(st *State) error {
		st.Game.CoinScale = snap(v, MinCoinScale, MaxCoinScale, CoinScaleStep)
		return nil
	})
}

// SetBombScale sets the bomb size, clamped to [0.5, 2.0] in 0.1 steps.
func (s *Store) SetBombScale(v float64) {
	_ = s.dispatch(ActionSetBombScale, true, func(st *State) error {
		st.Game.BombScale = snap(v, MinBombScale, MaxBombScale, BombScaleStep)
		return nil
	})
}

// ToggleSound flips the sound-effects switch.
func (s *Store) ToggleSound() {
	_ = s.dispatch(ActionToggleSound, true, func(st *State) error {
		st.Game.IsSoundEnabled = !st.Game.IsSoundEnabled
		return nil
	})
}

// ToggleMusic flips the music switch.
func (s *Store) ToggleMusic() {
	_ = s.dispatch(ActionToggleMusic, true, func(st *State) error {
		st.Game.IsMusicEnabled = !st.Game.IsMusicEnabled
		return nil
	})
}

// AddHighScore records the current score under the given initials.
func (s *Store) AddHighScore(name string) error {
	initials, err := NormalizeInitials(name)
	if err != nil {
		return err
	}
	return s.dispatch(ActionAddHighScore, true, func(st *State) error {
		g := &st.Game
		if !g.Qualifies(g.Score) {
			return ErrNotQualified
		}
		g.HighScores = insertHighScore(g.HighScores, HighScore{ID: uuid.NewString(), Name: initials, Score: g.Score})
		g.AwaitingHighScoreName = false
		return nil
	})
}

// SkipHighScore dismisses the initials prompt without saving.
func (s *Store) SkipHighScore() {
	_ = s.dispatch(ActionSkipHighScore, true, func(st *State) error {
		st.Game.AwaitingHighScoreName = false
		return nil
	})
}

// dispatch applies fn to a copy of the state. On success the copy becomes
// the state, is persisted when save is set, and listeners are notified.
func (s *Store) dispatch(action string, save bool, fn func(*State) error) error {
	s.mu.Lock()
	next := s.state.Clone()
	if err := fn(&next); err != nil {
		s.mu.Unlock()
		s.logger.Debug("action rejected", "action", action, "err", err)
		return err
	}
	s.state = next
	listeners := make([]Listener, 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	s.mu.Unlock()

	s.logger.Debug("action", "action", action)
	if save {
		if table, ok := s.save(next, action == ActionReset); ok && !slices.Equal(table, next.Game.HighScores) {
			next.Game.HighScores = table
			s.mu.Lock()
			s.state.Game.HighScores = mergeHighScores(s.state.Game.HighScores, table)
			s.mu.Unlock()
		}
	}
	for _, fn := range listeners {
		fn(action, next.Clone())
	}
	return nil
}

// save writes the tree. Other stores may share the key (one SSH user in
// several sessions), so the stored high-score table is merged in unless
// overwrite is set. It returns the table as written. Failures are logged,
// never fatal.
func (s *Store) save(st State, overwrite bool) ([]HighScore, bool) {
	if s.persist == nil {
		return nil, false
	}
	if overwrite {
		blob, err := json.Marshal(st)
		if err != nil {
			s.logger.Error("cannot encode state", "err", err)
			return nil, false
		}
		if err := s.persist.Put(s.key, blob); err != nil {
			s.logger.Error("cannot persist state", "key", s.key, "err", err)
			return nil, false
		}
		return st.Game.HighScores, true
	}

	table := st.Game.HighScores
	err := s.persist.Update(s.key, func(old []byte) ([]byte, error) {
		table = st.Game.HighScores
		if old != nil {
			var stored State
			if err := json.Unmarshal(old, &stored); err != nil {
				s.logger.Warn("overwriting unreadable state", "key", s.key, "err", err)
			} else {
				table = mergeHighScores(st.Game.HighScores, stored.Game.HighScores)
			}
		}
		out := st
		out.Game.HighScores = table
		return json.Marshal(out)
	})
	if err != nil {
		s.logger.Error("cannot persist state", "key", s.key, "err", err)
		return nil, false
	}
	return table, true
}
