// Package desktop is the windowed front-end. It runs the same UI shell as
// the terminal front-end (menu, game page with its modals, high scores and
// options) on Ebitengine, with real key press and release events,
// clickable touch controls and synthesized sound.
package desktop

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/vitron-bros/internal/audio"
	"github.com/vovakirdan/vitron-bros/internal/config"
	"github.com/vovakirdan/vitron-bros/internal/core"
	"github.com/vovakirdan/vitron-bros/internal/scene"
	"github.com/vovakirdan/vitron-bros/internal/storage"
	"github.com/vovakirdan/vitron-bros/internal/store"
	"github.com/vovakirdan/vitron-bros/internal/theme"
	"github.com/vovakirdan/vitron-bros/internal/ui"
)

// Logical screen size. The window letterboxes it at any size.
const (
	ScreenWidth  = 800
	ScreenHeight = 600
)

// launchSeedStride keeps the seeds of successive launches apart from the
// per-restart offsets the scene adds itself.
const launchSeedStride = 1 << 20

// Config holds the services the desktop game runs against. Store is
// required; DB may be nil.
type Config struct {
	Store   *store.Store
	DB      *storage.Store
	Scene   config.SceneConfig
	Themes  *theme.Catalog
	Runtime core.RuntimeConfig
	Player  string
	Logger  *log.Logger
	// Sound plays the mixed audio. Nil uses the built-in synthesizer.
	Sound audio.Player
}

type page int

const (
	pageMenu page = iota
	pageGame
	pageHighScores
	pageOptions
)

// Game implements ebiten.Game.
type Game struct {
	cfg Config

	page        page
	menuCursor  int
	optCursor   int
	modalCursor int
	initials    []rune
	initialsErr string
	chars       []rune

	engine   *scene.Game
	launches int64
	mixer    *audio.Mixer
	synth    *Synth
	controls *scene.TouchControls
	buttons  []touchButton
	pointers map[int]core.Action
	touchIDs []ebiten.TouchID

	scores []store.HighScore
	best   *storage.Run
	stats  *storage.RunStats

	unsubscribe func()
	quitting    bool
	text        *textCache
}

// New builds the desktop game. Without a Sound player it starts the
// synthesizer; when that fails the game runs silent.
func New(cfg Config) (*Game, error) {
	if cfg.Store == nil {
		return nil, errors.New("desktop: store is required")
	}
	if cfg.Themes == nil {
		cfg.Themes = theme.Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Player == "" {
		cfg.Player = "local"
	}
	if err := cfg.Scene.Validate(); err != nil {
		cfg.Logger.Warn("invalid scene config, using defaults", "err", err)
		cfg.Scene = config.DefaultSceneConfig()
	}
	if cfg.Runtime.TickRate <= 0 {
		cfg.Runtime.TickRate = 60
	}
	if cfg.Runtime.Seed == 0 {
		cfg.Runtime.Seed = time.Now().UnixNano()
	}
	cfg.Runtime.ScreenW, cfg.Runtime.ScreenH = ScreenWidth, ScreenHeight

	g := &Game{
		cfg:      cfg,
		buttons:  touchButtons(ScreenWidth, ScreenHeight),
		pointers: make(map[int]core.Action),
		text:     newTextCache(),
	}

	out := cfg.Sound
	if out == nil {
		synth, err := NewSynth()
		if err != nil {
			cfg.Logger.Warn("audio unavailable", "err", err)
		} else {
			g.synth = synth
			out = synth
		}
	}
	g.mixer = audio.NewMixer(out, cfg.Store)
	g.unsubscribe = cfg.Store.Subscribe(g.onAction)
	return g, nil
}

// Run opens the window and blocks until it is closed or Quit is chosen.
func Run(cfg Config) error {
	g, err := New(cfg)
	if err != nil {
		return err
	}
	defer g.Close()

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle(ui.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.cfg.Runtime.TickRate)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Close destroys the running scene and releases audio.
func (g *Game) Close() {
	g.stopGame()
	if g.unsubscribe != nil {
		g.unsubscribe()
		g.unsubscribe = nil
	}
	if g.synth != nil {
		g.synth.Close()
	}
}

// Layout keeps a fixed logical size; Ebitengine scales it to fit the
// window and letterboxes the rest.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Update advances the UI by one tick.
func (g *Game) Update() error {
	justPressed := inpututil.IsKeyJustPressed
	switch g.page {
	case pageMenu:
		g.updateMenu(readCommand(justPressed))
	case pageHighScores:
		if readCommand(justPressed) != cmdNone {
			g.page = pageMenu
		}
	case pageOptions:
		g.updateOptions(readCommand(justPressed))
	case pageGame:
		g.updateGame()
	}
	if g.quitting {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) updateMenu(cmd command) {
	switch cmd {
	case cmdUp:
		g.menuCursor = ui.Move(g.menuCursor, -1, len(ui.MenuItems))
	case cmdDown:
		g.menuCursor = ui.Move(g.menuCursor, 1, len(ui.MenuItems))
	case cmdBack:
		g.quitting = true
	case cmdSelect:
		switch ui.MenuItems[g.menuCursor] {
		case ui.MenuStartGame:
			g.startGame()
		case ui.MenuHighScores:
			g.loadScores()
			g.page = pageHighScores
		case ui.MenuOptions:
			g.optCursor = 0
			g.page = pageOptions
		case ui.MenuQuit:
			g.quitting = true
		}
	}
}

// updateOptions drives the options page: the option rows plus Back.
func (g *Game) updateOptions(cmd command) {
	rows := ui.OptionRows + 1
	switch cmd {
	case cmdUp:
		g.optCursor = ui.Move(g.optCursor, -1, rows)
	case cmdDown:
		g.optCursor = ui.Move(g.optCursor, 1, rows)
	case cmdLeft:
		g.adjustOption(g.optCursor, -1)
	case cmdRight:
		g.adjustOption(g.optCursor, 1)
	case cmdBack:
		g.page = pageMenu
	case cmdSelect:
		if g.optCursor == ui.OptionRows {
			g.page = pageMenu
			return
		}
		g.adjustOption(g.optCursor, 1)
	}
}

func (g *Game) adjustOption(row, dir int) {
	if err := ui.AdjustOption(g.cfg.Store, row, dir); err != nil {
		g.cfg.Logger.Error("cannot change option", "row", ui.OptionLabels[row], "err", err)
	}
}

func (g *Game) loadScores() {
	g.scores = g.cfg.Store.Game().HighScores
	g.best, g.stats = nil, nil
	if g.cfg.DB == nil {
		return
	}
	best, err := g.cfg.DB.BestRun()
	if err != nil {
		g.cfg.Logger.Warn("cannot load best run", "err", err)
	}
	stats, err := g.cfg.DB.Stats()
	if err != nil {
		g.cfg.Logger.Warn("cannot load run stats", "err", err)
	}
	g.best, g.stats = best, stats
}

// onAction keeps the scene and the music in step with the store.
func (g *Game) onAction(action string, st store.State) {
	if g.engine != nil {
		g.engine.SetLaunchData(g.launchData(st.Game))
	}
	switch action {
	case store.ActionToggleMusic:
		g.mixer.Sync()
	case store.ActionTogglePause:
		if st.Game.IsPaused {
			g.modalCursor = ui.PauseContinue
		}
	}
}
