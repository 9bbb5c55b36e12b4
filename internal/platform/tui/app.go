package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/vitron-bros/internal/audio"
	"github.com/vovakirdan/vitron-bros/internal/config"
	"github.com/vovakirdan/vitron-bros/internal/core"
	"github.com/vovakirdan/vitron-bros/internal/scene"
	"github.com/vovakirdan/vitron-bros/internal/storage"
	"github.com/vovakirdan/vitron-bros/internal/store"
	"github.com/vovakirdan/vitron-bros/internal/theme"
	"github.com/vovakirdan/vitron-bros/internal/ui"
)

// chromeRows is the number of terminal rows around the scene: the HUD on
// top and the touch control bar at the bottom.
const chromeRows = 2

// Deps are the services an App runs against. Store is required; DB may be
// nil, in which case finished runs are not logged.
type Deps struct {
	Store   *store.Store
	DB      *storage.Store
	Scene   config.SceneConfig
	Themes  *theme.Catalog
	Runtime core.RuntimeConfig
	Player  string // recorded with every run; "local" unless served over SSH
	Logger  *log.Logger
	Clock   func() time.Time
}

type page int

const (
	pageMenu page = iota
	pageGame
	pageHighScores
	pageOptions
)

// App is the top-level Bubble Tea model: main menu, game page with its
// modals, high scores and options. It is used through a pointer because
// the scene calls back into it.
type App struct {
	deps   Deps
	keys   *KeyMapper
	holds  *HoldTracker
	frame  core.InputFrame
	screen *core.Screen
	width  int
	height int

	page        page
	menu        MainMenu
	options     Options
	optCursor   int
	modalCursor int
	scores      HighScoresPage
	initials    textinput.Model
	initialsErr string

	game     *scene.Game
	launches int64
	mixer    *audio.Mixer
	sounds   *audio.Recorder
	cue      string
	cueTicks int
	controls *scene.TouchControls
	touching map[core.Action]bool

	lastRun     *storage.Run
	unsubscribe func()
	quitting    bool
}

// NewApp creates the app. Zero-valued deps other than Store get defaults.
func NewApp(deps Deps) *App {
	if deps.Themes == nil {
		deps.Themes = theme.Default()
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Player == "" {
		deps.Player = "local"
	}
	if deps.Scene.Validate() != nil {
		deps.Scene = config.DefaultSceneConfig()
	}
	def := core.DefaultConfig()
	if deps.Runtime.TickRate <= 0 {
		deps.Runtime.TickRate = def.TickRate
	}
	if deps.Runtime.ScreenW <= 0 || deps.Runtime.ScreenH <= 0 {
		deps.Runtime.ScreenW, deps.Runtime.ScreenH = def.ScreenW, def.ScreenH
	}
	if deps.Runtime.Seed == 0 {
		deps.Runtime.Seed = time.Now().UnixNano()
	}

	ti := textinput.New()
	ti.Placeholder = "AAA"
	ti.CharLimit = 3
	ti.Prompt = ""

	a := &App{
		deps:     deps,
		keys:     NewKeyMapper(),
		holds:    NewHoldTracker(0, 0),
		frame:    core.NewInputFrame(),
		screen:   core.NewScreen(deps.Runtime.ScreenW, core.Max(deps.Runtime.ScreenH-chromeRows, 1)),
		width:    deps.Runtime.ScreenW,
		height:   deps.Runtime.ScreenH,
		options:  NewOptions(deps.Store),
		scores:   NewHighScoresPage(deps.Runtime.ScreenW, deps.Runtime.ScreenH),
		initials: ti,
		sounds:   &audio.Recorder{},
		touching: make(map[core.Action]bool),
	}
	a.mixer = audio.NewMixer(a.sounds, deps.Store)
	a.unsubscribe = deps.Store.Subscribe(a.onAction)
	return a
}

// Init starts the tick loop.
func (a *App) Init() tea.Cmd {
	return tickCmd(a.deps.Runtime.TickRate)
}

// Update handles messages and updates the app state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case tea.MouseMsg:
		a.handleMouse(msg)
		return a, nil

	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case TickMsg:
		a.handleTick(time.Time(msg))
		return a, tickCmd(a.deps.Runtime.TickRate)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return a.quit()
	}

	switch a.page {
	case pageMenu:
		return a.updateMenu(msg)
	case pageHighScores:
		back, quit, cmd := a.scores.Update(msg)
		if quit {
			return a.quit()
		}
		if back {
			a.page = pageMenu
		}
		return cmd
	case pageOptions:
		return a.updateOptionsPage(msg)
	case pageGame:
		return a.updateGame(msg)
	}
	return nil
}

func (a *App) updateMenu(msg tea.KeyMsg) tea.Cmd {
	switch a.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		return a.quit()
	case MenuActionUp:
		a.menu.Move(-1)
	case MenuActionDown:
		a.menu.Move(1)
	case MenuActionSelect:
		switch a.menu.Selected() {
		case ui.MenuStartGame:
			a.startGame()
		case ui.MenuHighScores:
			a.scores.Load(a.deps.Store, a.deps.DB)
			a.page = pageHighScores
		case ui.MenuOptions:
			a.optCursor = 0
			a.page = pageOptions
		case ui.MenuQuit:
			return a.quit()
		}
	}
	return nil
}

// updateOptionsPage drives the options rows plus a trailing Back row.
func (a *App) updateOptionsPage(msg tea.KeyMsg) tea.Cmd {
	rows := ui.OptionRows + 1
	switch a.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		return a.quit()
	case MenuActionBack:
		a.page = pageMenu
	case MenuActionUp:
		a.optCursor = core.Clamp(a.optCursor-1, 0, rows-1)
	case MenuActionDown:
		a.optCursor = core.Clamp(a.optCursor+1, 0, rows-1)
	case MenuActionLeft:
		a.adjustOption(a.optCursor, -1)
	case MenuActionRight:
		a.adjustOption(a.optCursor, 1)
	case MenuActionSelect:
		if a.optCursor == ui.OptionRows {
			a.page = pageMenu
			return nil
		}
		a.adjustOption(a.optCursor, 1)
	}
	return nil
}

func (a *App) adjustOption(row, dir int) {
	if row < 0 || row >= ui.OptionRows {
		return
	}
	if err := a.options.Adjust(row, dir); err != nil {
		a.deps.Logger.Warn("option rejected", "row", row, "err", err)
	}
}

// onAction keeps the scene's launch data and the music loop in step with
// the store.
func (a *App) onAction(action string, st store.State) {
	if a.game != nil {
		a.game.SetLaunchData(a.launchData(st.Game))
	}
	switch action {
	case store.ActionToggleMusic:
		a.mixer.Sync()
	case store.ActionTogglePause:
		if st.Game.IsPaused {
			a.modalCursor = ui.OptionRows
		}
	}
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height
	a.screen.Resize(width, core.Max(height-chromeRows, 1))
	a.scores.Resize(width, height)
}

func (a *App) quit() tea.Cmd {
	a.stopGame()
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	a.quitting = true
	return tea.Quit
}

// View renders the current page.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.page {
	case pageGame:
		if a.game != nil {
			return a.gameView()
		}
	case pageHighScores:
		return a.scores.View()
	case pageOptions:
		a.screen.Clear()
		lines := append(a.options.Lines(a.optCursor), modalLine{}, modalLine{Text: "Back", Focused: a.optCursor == ui.OptionRows})
		drawModal(a.screen, "Options", lines)
		return RenderScreen(a.screen)
	}

	best := 0
	if hs := a.deps.Store.Game().HighScores; len(hs) > 0 {
		best = hs[0].Score
	}
	return a.menu.View(a.width, best)
}

// Run starts the Bubble Tea program with a new App.
func Run(deps Deps) error {
	p := tea.NewProgram(
		NewApp(deps),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Touch control bar
	)

	_, err := p.Run()
	return err
}
