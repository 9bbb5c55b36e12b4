package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/vitron-bros/internal/audio"
	"github.com/vovakirdan/vitron-bros/internal/config"
	"github.com/vovakirdan/vitron-bros/internal/core"
	"github.com/vovakirdan/vitron-bros/internal/scene"
	"github.com/vovakirdan/vitron-bros/internal/storage"
	"github.com/vovakirdan/vitron-bros/internal/store"
	"github.com/vovakirdan/vitron-bros/internal/theme"
	"github.com/vovakirdan/vitron-bros/internal/ui"
)

type testApp struct {
	*App
	t   *testing.T
	now time.Time
	db  *storage.Store
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "vitron.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ta := &testApp{t: t, now: time.Unix(1_700_000_000, 0), db: db}
	st := store.New(theme.Default().Themes(), store.WithPersister(db))
	ta.App = NewApp(Deps{
		Store:   st,
		DB:      db,
		Scene:   config.DefaultSceneConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42},
		Clock:   func() time.Time { return ta.now },
	})
	return ta
}

func (ta *testApp) press(keys ...string) {
	for _, k := range keys {
		ta.Update(keyMsg(k))
	}
}

func (ta *testApp) tick(n int) {
	for i := 0; i < n; i++ {
		ta.now = ta.now.Add(time.Second / 60)
		ta.Update(TickMsg(ta.now))
	}
}

func (ta *testApp) store() *store.Store { return ta.deps.Store }

// startSettled starts a game and lets the player land.
func (ta *testApp) startSettled() {
	ta.t.Helper()
	ta.press("enter")
	if ta.page != pageGame || ta.game == nil {
		ta.t.Fatalf("Start Game did not open the game page")
	}
	ta.tick(180)
}

// endRun drives the scene callbacks the way a bomb hit would.
func (ta *testApp) endRun(score int) {
	ld := ta.launchData(ta.store().Game())
	ld.OnScoreUpdate(score)
	ld.OnGameOver()
}

func TestMainMenuNavigation(t *testing.T) {
	ta := newTestApp(t)
	if !strings.Contains(ta.View(), ui.Title) {
		t.Fatal("main menu should show the title")
	}

	ta.press("down", "enter")
	if ta.page != pageHighScores {
		t.Fatalf("page = %v, want high scores", ta.page)
	}
	if !strings.Contains(ta.View(), "No scores yet. Be the first!") {
		t.Error("empty table message missing")
	}

	ta.press("esc", "down", "enter")
	if ta.page != pageOptions {
		t.Fatalf("page = %v, want options", ta.page)
	}
	view := ta.View()
	for _, label := range []string{"Theme", "Coin Size", "Bomb Size", "Sound FX", "Music"} {
		if !strings.Contains(view, label) {
			t.Errorf("options page missing %q", label)
		}
	}

	ta.press("esc")
	if ta.page != pageMenu {
		t.Errorf("esc should return to the menu, page = %v", ta.page)
	}
}

func TestStartGame(t *testing.T) {
	ta := newTestApp(t)
	ta.press("enter")

	if ta.game == nil || ta.page != pageGame {
		t.Fatal("Start Game should launch the scene")
	}
	if ta.controls == nil {
		t.Error("touch controls should be handed over on create")
	}
	if ta.sounds.Count("loop", audio.Music) != 1 {
		t.Error("music should loop once the scene starts")
	}

	ta.tick(1)
	view := ta.View()
	if !strings.Contains(view, "Score: 0") {
		t.Error("HUD should show the score")
	}
	if got := strings.Count(view, "\n") + 1; got != ta.height {
		t.Errorf("game view has %d lines, want %d", got, ta.height)
	}
}

func TestHeldKeyDecays(t *testing.T) {
	ta := newTestApp(t)
	ta.startSettled()
	x0 := ta.game.Snapshot().Player.Box.X

	ta.press("d")
	ta.tick(10)
	snap := ta.game.Snapshot()
	if snap.Anim != scene.AnimRight || snap.Player.Box.X <= x0 {
		t.Fatalf("holding right: anim %q, x %v -> %v", snap.Anim, x0, snap.Player.Box.X)
	}

	// No auto-repeat arrives, so the hold window runs out.
	ta.tick(40)
	if got := ta.game.Snapshot().Anim; got != scene.AnimTurn {
		t.Errorf("anim after the hold window = %q, want %q", got, scene.AnimTurn)
	}
}

func TestJumpFlashesSoundCue(t *testing.T) {
	ta := newTestApp(t)
	ta.startSettled()

	ta.press(" ")
	ta.tick(1)
	if ta.cue != audio.Jump {
		t.Fatalf("cue = %q, want %q", ta.cue, audio.Jump)
	}
	if !strings.Contains(ta.View(), "♪ jump") {
		t.Error("HUD should flash the sound cue")
	}

	ta.tick(ta.deps.Runtime.TickRate)
	if ta.cue != "" {
		t.Errorf("cue %q should fade", ta.cue)
	}
}

func TestTouchControlBar(t *testing.T) {
	ta := newTestApp(t)
	ta.startSettled()

	var right touchButton
	for _, b := range ta.touchButtons() {
		if b.Action == core.ActionRight {
			right = b
		}
	}
	ta.Update(tea.MouseMsg{X: right.Rect.X + 1, Y: ta.height - 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	ta.tick(2)
	if got := ta.game.Snapshot().Anim; got != scene.AnimTurn {
		t.Fatalf("click above the control bar moved the player: anim %q", got)
	}

	ta.Update(tea.MouseMsg{X: right.Rect.X + 1, Y: ta.height - 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	ta.tick(2)
	if got := ta.game.Snapshot().Anim; got != scene.AnimRight {
		t.Fatalf("anim while touching right = %q", got)
	}

	ta.Update(tea.MouseMsg{X: right.Rect.X + 1, Y: ta.height - 1, Action: tea.MouseActionRelease})
	ta.tick(1)
	if got := ta.game.Snapshot().Anim; got != scene.AnimTurn {
		t.Errorf("anim after release = %q, want %q", got, scene.AnimTurn)
	}
}

func TestPauseModal(t *testing.T) {
	ta := newTestApp(t)
	ta.startSettled()

	ta.press("p")
	ta.tick(1)
	if !ta.store().Game().IsPaused || !ta.game.Paused() {
		t.Fatal("pause key should pause the scene and the store")
	}
	view := ta.View()
	for _, label := range []string{"Paused", "Continue", "Restart", "Main Menu", "Coin Size"} {
		if !strings.Contains(view, label) {
			t.Errorf("pause modal missing %q", label)
		}
	}

	tick := ta.game.Tick()
	ta.tick(5)
	if ta.game.Tick() != tick {
		t.Error("scene should not advance while paused")
	}

	ta.press("enter") // Continue
	if ta.store().Game().IsPaused || ta.game.Paused() {
		t.Error("Continue should resume")
	}
}

func TestPauseModalOptionsAndRestart(t *testing.T) {
	ta := newTestApp(t)
	ta.startSettled()
	ta.press("p")
	ta.tick(1)

	// Continue -> Music -> Sound FX -> Bomb Size -> Coin Size -> Theme.
	ta.press("up", "up", "up", "up")
	ta.press("right")
	if got := ta.store().Game().CoinScale; got != 0.55 {
		t.Errorf("coin scale = %v, want 0.55", got)
	}
	ta.press("up", "right")
	if got := ta.store().Game().CurrentThemeID; got != 2 {
		t.Errorf("theme = %d, want 2", got)
	}
	if ta.game.Snapshot().ThemeID != 1 {
		t.Error("theme should not change until restart")
	}

	// Theme -> ... -> Restart.
	ta.press("down", "down", "down", "down", "down", "down")
	ta.press("enter")
	g := ta.store().Game()
	if g.IsPaused || g.IsGameOver || g.Score != 0 {
		t.Errorf("restart should clear the flags: %+v", g)
	}
	if ta.game.Snapshot().ThemeID != 2 {
		t.Error("restart should pick up the new theme")
	}
	if ta.game.Tick() != 0 {
		t.Error("restart should reset the scene")
	}
}

func TestPauseToMainMenu(t *testing.T) {
	ta := newTestApp(t)
	ta.startSettled()
	ta.press("esc")
	ta.tick(1)

	ta.press("down", "down", "enter") // Continue -> Restart -> Main Menu
	if ta.page != pageMenu || ta.game != nil {
		t.Fatalf("Main Menu should close the game, page = %v", ta.page)
	}
	if ta.store().Game().IsPaused {
		t.Error("pause flag should be cleared")
	}
	if ta.sounds.Count("stop", audio.Music) == 0 {
		t.Error("leaving the game should stop the music")
	}
}

func TestGameOverWithHighScore(t *testing.T) {
	ta := newTestApp(t)
	ta.startSettled()
	ta.endRun(70)

	g := ta.store().Game()
	if !g.IsGameOver || !g.AwaitingHighScoreName {
		t.Fatalf("qualifying game over should ask for initials: %+v", g)
	}
	if !strings.Contains(ta.View(), "New High Score!") {
		t.Error("initials modal should be shown first")
	}

	runs, err := ta.db.RecentRuns(1)
	if err != nil || len(runs) != 1 || runs[0].Score != 70 || runs[0].Player != "local" {
		t.Fatalf("run log = %+v, %v", runs, err)
	}

	ta.press("v", "1", "t")
	ta.press("enter")
	if ta.initialsErr == "" {
		t.Error("two letters should not save")
	}
	if len(ta.store().Game().HighScores) != 0 {
		t.Fatal("nothing should be saved yet")
	}

	ta.press("b", "x", "enter")
	hs := ta.store().Game().HighScores
	if len(hs) != 1 || hs[0].Name != "VTB" || hs[0].Score != 70 {
		t.Fatalf("high scores = %+v", hs)
	}

	view := ta.View()
	if !strings.Contains(view, "Game Over") || !strings.Contains(view, "Your final score: 70") {
		t.Error("game-over modal should follow the initials")
	}

	ta.press("enter") // Play Again
	g = ta.store().Game()
	if g.IsGameOver || g.Score != 0 || ta.game.Over() {
		t.Errorf("Play Again should restart: %+v", g)
	}
}

func TestGameOverSkipInitials(t *testing.T) {
	ta := newTestApp(t)
	ta.startSettled()
	ta.endRun(30)

	ta.press("esc")
	g := ta.store().Game()
	if g.AwaitingHighScoreName || len(g.HighScores) != 0 {
		t.Fatalf("skip should dismiss without saving: %+v", g)
	}

	ta.press("down", "enter") // Main Menu
	if ta.page != pageMenu || ta.store().Game().IsGameOver {
		t.Error("Main Menu should leave the game and clear game over")
	}
}

func TestZeroScoreGoesStraightToGameOver(t *testing.T) {
	ta := newTestApp(t)
	ta.startSettled()
	ta.endRun(0)

	if ui.ModalFor(ta.store().Game()) != ui.ModalGameOver {
		t.Error("a zero score should skip the initials prompt")
	}
}

func TestMusicSwitchFollowsStore(t *testing.T) {
	ta := newTestApp(t)
	ta.press("enter")

	ta.store().ToggleMusic()
	if ta.sounds.Count("stop", audio.Music) != 1 {
		t.Error("switching music off should stop the loop")
	}
	ta.store().ToggleMusic()
	if ta.sounds.Count("loop", audio.Music) != 2 {
		t.Error("switching music on should restart the loop")
	}
}

func TestQuitDestroysGame(t *testing.T) {
	ta := newTestApp(t)
	ta.press("enter")

	_, cmd := ta.Update(keyMsg("ctrl+c"))
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if ta.game != nil || ta.View() != "" {
		t.Error("quit should destroy the game and blank the view")
	}
}

func TestResize(t *testing.T) {
	ta := newTestApp(t)
	ta.press("enter")
	ta.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	ta.tick(1)

	if ta.screen.Width() != 100 || ta.screen.Height() != 30-chromeRows {
		t.Errorf("screen = %dx%d", ta.screen.Width(), ta.screen.Height())
	}
	if got := strings.Count(ta.View(), "\n") + 1; got != 30 {
		t.Errorf("view has %d lines, want 30", got)
	}
}

func TestHighScoresPageShowsServerBest(t *testing.T) {
	ta := newTestApp(t)
	if _, err := ta.db.RecordRun(storage.Run{Player: "alice", ThemeID: 1, Score: 300}); err != nil {
		t.Fatal(err)
	}
	ta.store().SetScore(90)
	if err := ta.store().AddHighScore("ABC"); err != nil {
		t.Fatal(err)
	}

	ta.press("down", "enter")
	view := ta.View()
	if !strings.Contains(view, "ABC") || !strings.Contains(view, "Score: 90") {
		t.Error("table should list the saved entry")
	}
	if !strings.Contains(view, "Best run: 300 by alice") {
		t.Error("server best should be shown")
	}
}

func TestSessionKey(t *testing.T) {
	if got := SessionKey("alice"); got != "mario-storage@alice" {
		t.Errorf("SessionKey = %q", got)
	}
}
