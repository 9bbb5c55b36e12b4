package desktop

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/vitron-bros/internal/core"
	"github.com/vovakirdan/vitron-bros/internal/scene"
	"github.com/vovakirdan/vitron-bros/internal/storage"
	"github.com/vovakirdan/vitron-bros/internal/store"
	"github.com/vovakirdan/vitron-bros/internal/ui"
)

func (g *Game) startGame() {
	g.stopGame()
	st := g.cfg.Store
	st.TogglePause(false)
	st.SetGameOver(false)

	rt := g.cfg.Runtime
	rt.Seed += g.launches * launchSeedStride
	g.launches++

	g.engine = scene.Launch(rt, g.cfg.Scene, g.launchData(st.Game()),
		scene.WithAudio(g.mixer),
		scene.WithLogger(g.cfg.Logger),
	)
	g.page = pageGame
	g.cfg.Logger.Debug("game started", "seed", rt.Seed, "player", g.cfg.Player)
}

func (g *Game) stopGame() {
	if g.engine == nil {
		return
	}
	g.engine.Destroy()
	g.engine = nil
	g.controls = nil
	clear(g.pointers)
}

// resume lets go of every pointer, since releases during the pause were
// never polled.
func (g *Game) resume() {
	g.releasePointers()
	g.engine.Resume(scene.Key)
	g.cfg.Store.TogglePause(false)
}

func (g *Game) restart() {
	st := g.cfg.Store
	st.TogglePause(false)
	st.SetGameOver(false)
	g.engine.SetLaunchData(g.launchData(st.Game()))
	g.engine.Restart(scene.Key)
	clear(g.pointers)
}

func (g *Game) toMainMenu() {
	g.stopGame()
	g.cfg.Store.TogglePause(false)
	g.cfg.Store.SetGameOver(false)
	g.page = pageMenu
}

func (g *Game) launchData(gs store.GameState) scene.LaunchData {
	return scene.LaunchData{
		OnScoreUpdate:     g.cfg.Store.SetScore,
		OnGameOver:        g.onGameOver,
		OnPause:           func() { g.cfg.Store.TogglePause(true) },
		OnControlsCreated: func(c scene.TouchControls) { g.controls = &c },
		ThemeID:           gs.CurrentThemeID,
		CoinScale:         gs.CoinScale,
		BombScale:         gs.BombScale,
	}
}

func (g *Game) onGameOver() {
	st := g.cfg.Store
	score := st.Game().Score
	st.SetGameOver(true)
	g.releasePointers()
	g.modalCursor = ui.OverPlayAgain
	g.initials = g.initials[:0]
	g.initialsErr = ""
	g.recordRun(score)
}

func (g *Game) recordRun(score int) {
	if g.cfg.DB == nil {
		return
	}
	run, err := g.cfg.DB.RecordRun(storage.Run{
		Player:  g.cfg.Player,
		ThemeID: g.cfg.Store.Game().CurrentThemeID,
		Score:   score,
	})
	if err != nil {
		g.cfg.Logger.Error("cannot record run", "err", err)
		return
	}
	g.cfg.Logger.Info("run finished", "run", run.RunID, "player", run.Player, "score", run.Score)
}

// updateGame steps the scene, or drives the open modal instead.
func (g *Game) updateGame() {
	if g.engine == nil {
		g.page = pageMenu
		return
	}
	switch ui.ModalFor(g.cfg.Store.Game()) {
	case ui.ModalInitials:
		g.updateInitials()
		return
	case ui.ModalGameOver:
		g.updateGameOver(readCommand(inpututil.IsKeyJustPressed))
		return
	case ui.ModalPause:
		g.updatePause(readCommand(inpututil.IsKeyJustPressed))
		return
	}

	frame := keyboardFrame(ebiten.IsKeyPressed, inpututil.IsKeyJustPressed)
	g.handlePointers(&frame)
	g.engine.Step(frame)
}

// handlePointers turns presses on the control surface into touch control
// calls. The pause button feeds the frame like the pause key.
func (g *Game) handlePointers(frame *core.InputFrame) {
	var events []pointerEvent
	events, g.touchIDs = pollPointers(g.touchIDs)
	for _, e := range events {
		if !e.Pressed {
			g.release(e.ID)
			continue
		}
		a, ok := hitButton(g.buttons, e.X, e.Y)
		if !ok {
			continue
		}
		g.press(e.ID, a, frame)
	}
}

func (g *Game) press(id int, a core.Action, frame *core.InputFrame) {
	if a == core.ActionPause {
		frame.Set(core.ActionPause)
		return
	}
	if g.controls == nil {
		return
	}
	g.pointers[id] = a
	switch a {
	case core.ActionLeft:
		g.controls.Left(true)
	case core.ActionRight:
		g.controls.Right(true)
	case core.ActionJump:
		g.controls.Up()
	}
}

func (g *Game) release(id int) {
	a, ok := g.pointers[id]
	if !ok {
		return
	}
	delete(g.pointers, id)
	if g.controls == nil || g.touching(a) {
		return
	}
	switch a {
	case core.ActionLeft:
		g.controls.Left(false)
	case core.ActionRight:
		g.controls.Right(false)
	}
}

// touching reports whether another pointer still holds a.
func (g *Game) touching(a core.Action) bool {
	for _, held := range g.pointers {
		if held == a {
			return true
		}
	}
	return false
}

func (g *Game) releasePointers() {
	for id := range g.pointers {
		g.release(id)
	}
}

func (g *Game) updatePause(cmd command) {
	switch cmd {
	case cmdBack:
		g.resume()
	case cmdUp:
		g.modalCursor = ui.Move(g.modalCursor, -1, ui.PauseRows)
	case cmdDown:
		g.modalCursor = ui.Move(g.modalCursor, 1, ui.PauseRows)
	case cmdLeft:
		g.adjustOption(g.modalCursor, -1)
	case cmdRight:
		g.adjustOption(g.modalCursor, 1)
	case cmdSelect:
		switch g.modalCursor {
		case ui.PauseContinue:
			g.resume()
		case ui.PauseRestart:
			g.restart()
		case ui.PauseMainMenu:
			g.toMainMenu()
		default:
			g.adjustOption(g.modalCursor, 1)
		}
	}
}

func (g *Game) updateGameOver(cmd command) {
	switch cmd {
	case cmdUp:
		g.modalCursor = ui.Move(g.modalCursor, -1, ui.OverRows)
	case cmdDown:
		g.modalCursor = ui.Move(g.modalCursor, 1, ui.OverRows)
	case cmdBack:
		g.toMainMenu()
	case cmdSelect:
		if g.modalCursor == ui.OverPlayAgain {
			g.restart()
			return
		}
		g.toMainMenu()
	}
}

// updateInitials reads typed letters for the high-score prompt.
func (g *Game) updateInitials() {
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range ui.LettersOnly(string(g.chars)) {
		if len(g.initials) < 3 {
			g.initials = append(g.initials, r)
		}
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(g.initials) > 0:
		g.initials = g.initials[:len(g.initials)-1]
		g.initialsErr = ""
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter):
		g.saveInitials()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.cfg.Store.SkipHighScore()
		g.modalCursor = ui.OverPlayAgain
	}
}

func (g *Game) saveInitials() {
	err := g.cfg.Store.AddHighScore(string(g.initials))
	switch {
	case err == nil:
		g.initialsErr = ""
		g.modalCursor = ui.OverPlayAgain
	case errors.Is(err, store.ErrInvalidInitials):
		g.initialsErr = "Enter exactly 3 letters"
	default:
		g.cfg.Logger.Error("cannot save high score", "err", err)
		g.initialsErr = "Could not save score"
	}
}
