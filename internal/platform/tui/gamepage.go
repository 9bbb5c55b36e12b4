package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/vitron-bros/internal/core"
	"github.com/vovakirdan/vitron-bros/internal/scene"
	"github.com/vovakirdan/vitron-bros/internal/storage"
	"github.com/vovakirdan/vitron-bros/internal/store"
	"github.com/vovakirdan/vitron-bros/internal/ui"
)

// launchSeedStride separates the seeds of successive launches from the
// per-restart offsets the scene adds itself.
const launchSeedStride = 1 << 20

// startGame creates a fresh engine for the game page.
func (a *App) startGame() {
	a.stopGame()
	st := a.deps.Store
	st.TogglePause(false)
	st.SetGameOver(false)

	rt := a.deps.Runtime
	rt.Seed += a.launches * launchSeedStride
	a.launches++

	a.holds.Reset()
	a.frame = core.NewInputFrame()
	a.game = scene.Launch(rt, a.deps.Scene, a.launchData(st.Game()),
		scene.WithAudio(a.mixer),
		scene.WithLogger(a.deps.Logger),
	)
	a.page = pageGame
	a.deps.Logger.Debug("game started", "seed", rt.Seed, "player", a.deps.Player)
}

// stopGame destroys the engine, if any.
func (a *App) stopGame() {
	if a.game == nil {
		return
	}
	a.game.Destroy()
	a.game = nil
	a.controls = nil
	clear(a.touching)
	a.cue, a.cueTicks = "", 0
}

func (a *App) resume() {
	a.game.Resume(scene.Key)
	a.deps.Store.TogglePause(false)
	a.holds.Reset()
}

func (a *App) restart() {
	st := a.deps.Store
	st.TogglePause(false)
	st.SetGameOver(false)
	a.game.SetLaunchData(a.launchData(st.Game()))
	a.game.Restart(scene.Key)
	a.holds.Reset()
	a.frame = core.NewInputFrame()
	clear(a.touching)
}

func (a *App) toMainMenu() {
	a.stopGame()
	a.deps.Store.TogglePause(false)
	a.deps.Store.SetGameOver(false)
	a.page = pageMenu
}

// launchData wires the scene callbacks to store actions.
func (a *App) launchData(g store.GameState) scene.LaunchData {
	return scene.LaunchData{
		OnScoreUpdate:     a.deps.Store.SetScore,
		OnGameOver:        a.onGameOver,
		OnPause:           func() { a.deps.Store.TogglePause(true) },
		OnControlsCreated: func(c scene.TouchControls) { a.controls = &c },
		ThemeID:           g.CurrentThemeID,
		CoinScale:         g.CoinScale,
		BombScale:         g.BombScale,
	}
}

func (a *App) onGameOver() {
	st := a.deps.Store
	score := st.Game().Score
	st.SetGameOver(true)
	a.holds.Reset()
	clear(a.touching)
	a.modalCursor = 0
	a.recordRun(score)

	if st.Game().AwaitingHighScoreName {
		a.initials.Reset()
		a.initials.Focus()
		a.initialsErr = ""
	}
}

// recordRun logs the finished run. Failures are logged, never fatal.
func (a *App) recordRun(score int) {
	if a.deps.DB == nil {
		return
	}
	run, err := a.deps.DB.RecordRun(storage.Run{
		Player:  a.deps.Player,
		ThemeID: a.deps.Store.Game().CurrentThemeID,
		Score:   score,
	})
	if err != nil {
		a.deps.Logger.Error("cannot record run", "err", err)
		return
	}
	a.lastRun = &run
	a.deps.Logger.Info("run finished", "run", run.RunID, "player", run.Player, "score", run.Score)
}

// handleTick advances the scene by one step on the game page.
func (a *App) handleTick(now time.Time) {
	if a.page != pageGame || a.game == nil {
		return
	}
	a.holds.Apply(&a.frame, now)
	a.game.Step(a.frame)
	a.frame.Clear()
	a.collectCues()
}

// collectCues turns sound effects into a short HUD flash.
func (a *App) collectCues() {
	played := false
	for _, e := range a.sounds.Drain() {
		if e.Op == "play" {
			a.cue = e.Key
			played = true
		}
	}
	if played {
		a.cueTicks = a.deps.Runtime.TickRate / 2
		return
	}
	if a.cueTicks > 0 {
		a.cueTicks--
		if a.cueTicks == 0 {
			a.cue = ""
		}
	}
}

func (a *App) updateGame(msg tea.KeyMsg) tea.Cmd {
	switch ui.ModalFor(a.deps.Store.Game()) {
	case ui.ModalInitials:
		return a.updateInitials(msg)
	case ui.ModalGameOver:
		return a.updateGameOver(msg)
	case ui.ModalPause:
		return a.updatePause(msg)
	}

	if msg.String() == "ctrl+s" {
		a.saveScreenshot()
		return nil
	}

	action, isQuit := a.keys.MapKey(msg)
	if isQuit {
		return a.quit()
	}
	switch action {
	case core.ActionLeft, core.ActionRight, core.ActionJump:
		a.holds.Press(action, a.deps.Clock())
	case core.ActionPause:
		a.frame.Set(core.ActionPause)
	}
	return nil
}

// touchButton is one clickable cell range of the control bar.
type touchButton struct {
	Label  string
	Action core.Action
	Rect   core.Rect
}

var touchLabels = []struct {
	label  string
	action core.Action
}{
	{"[ ◀ ]", core.ActionLeft},
	{"[ ▲ ]", core.ActionJump},
	{"[ ▶ ]", core.ActionRight},
}

const touchGap = 4

// touchButtons lays the control bar out centred on the last row.
func (a *App) touchButtons() []touchButton {
	total := touchGap * (len(touchLabels) - 1)
	for _, l := range touchLabels {
		total += lipgloss.Width(l.label)
	}
	x := core.Max((a.width-total)/2, 0)
	y := a.height - 1

	out := make([]touchButton, 0, len(touchLabels))
	for _, l := range touchLabels {
		w := lipgloss.Width(l.label)
		out = append(out, touchButton{Label: l.label, Action: l.action, Rect: core.NewRect(x, y, w, 1)})
		x += w + touchGap
	}
	return out
}

// handleMouse forwards clicks on the control bar to the scene's touch
// controls. Terminals do not say which button was released, so any release
// lifts both directions.
func (a *App) handleMouse(msg tea.MouseMsg) {
	if a.page != pageGame || a.controls == nil {
		return
	}
	if ui.ModalFor(a.deps.Store.Game()) != ui.ModalNone {
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		for _, b := range a.touchButtons() {
			if !b.Rect.Contains(msg.X, msg.Y) {
				continue
			}
			switch b.Action {
			case core.ActionLeft:
				a.controls.Left(true)
			case core.ActionRight:
				a.controls.Right(true)
			case core.ActionJump:
				a.controls.Up()
			}
			a.touching[b.Action] = true
		}
	case tea.MouseActionRelease:
		if a.touching[core.ActionLeft] {
			a.controls.Left(false)
		}
		if a.touching[core.ActionRight] {
			a.controls.Right(false)
		}
		clear(a.touching)
	}
}

func (a *App) gameView() string {
	a.screen.Clear()
	snap := a.game.Snapshot()
	scene.Render(a.screen, snap, a.deps.Themes)

	g := a.deps.Store.Game()
	switch ui.ModalFor(g) {
	case ui.ModalPause:
		a.drawPause()
	case ui.ModalGameOver:
		a.drawGameOver(g)
	case ui.ModalInitials:
		a.drawInitials(g)
	}

	var b strings.Builder
	b.WriteString(a.hud(g, snap))
	b.WriteString("\n")
	b.WriteString(RenderScreen(a.screen))
	b.WriteString("\n")
	b.WriteString(a.controlBar())
	return b.String()
}

var (
	hudStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	cueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (a *App) hud(g store.GameState, snap scene.Snapshot) string {
	left := hudStyle.Render(fmt.Sprintf(" Score: %d", g.Score))
	if snap.Wave > 0 {
		left += hintStyle.Render(fmt.Sprintf("   Wave %d", snap.Wave+1))
	}
	right := hintStyle.Render("Esc: pause ")
	if a.cue != "" {
		right = cueStyle.Render("♪ "+a.cue) + "   " + right
	}
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (a *App) controlBar() string {
	var b strings.Builder
	x := 0
	for _, btn := range a.touchButtons() {
		b.WriteString(strings.Repeat(" ", btn.Rect.X-x))
		style := hintStyle
		if a.touching[btn.Action] {
			style = cueStyle
		}
		b.WriteString(style.Render(btn.Label))
		x = btn.Rect.Right()
	}
	return b.String()
}

// saveScreenshot writes the current scene to ~/.vitron/screenshots.
func (a *App) saveScreenshot() {
	dir := filepath.Join(os.Getenv("HOME"), ".vitron", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := a.deps.Clock().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("vitron_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(a.screen.String()), 0o600)
}
