package scene

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/vitron-bros/internal/audio"
	"github.com/vovakirdan/vitron-bros/internal/config"
	"github.com/vovakirdan/vitron-bros/internal/core"
)

type harness struct {
	g         *Game
	rec       *audio.Recorder
	scores    []int
	gameOvers int
	pauses    int
	controls  []TouchControls
}

func newHarness(t *testing.T, seed int64) *harness {
	t.Helper()
	h := &harness{rec: &audio.Recorder{}}
	rt := core.DefaultConfig()
	rt.Seed = seed
	h.g = Launch(rt, config.DefaultSceneConfig(), h.launchData(1), WithAudio(h.rec))
	return h
}

func (h *harness) launchData(themeID int) LaunchData {
	return LaunchData{
		OnScoreUpdate:     func(score int) { h.scores = append(h.scores, score) },
		OnGameOver:        func() { h.gameOvers++ },
		OnPause:           func() { h.pauses++ },
		OnControlsCreated: func(c TouchControls) { h.controls = append(h.controls, c) },
		ThemeID:           themeID,
		CoinScale:         0.5,
		BombScale:         1,
	}
}

// step runs n ticks with the given actions held.
func (h *harness) step(n int, held ...core.Action) {
	for i := 0; i < n; i++ {
		in := core.NewInputFrame()
		for _, a := range held {
			in.Hold(a)
		}
		h.g.Step(in)
	}
}

// settle lets the player and the coins come to rest.
func (h *harness) settle() {
	h.step(180)
}

// placeOnPlayer moves a body so that it overlaps the player.
func (h *harness) placeOnPlayer(b *Body) {
	p := h.g.scene.player.Box
	h.g.scene.world.Enable(b, p.X+4, p.Y+8)
}

func TestLaunchBuildsLevel(t *testing.T) {
	h := newHarness(t, 1)
	snap := h.g.Snapshot()

	if n := len(h.g.scene.platforms); n != 18 {
		t.Errorf("platforms = %d, want 18", n)
	}
	if snap.ActiveCoins != 24 {
		t.Errorf("coins = %d, want 24", snap.ActiveCoins)
	}
	if snap.Bombs != 0 || snap.Score != 0 || snap.Over || snap.Paused {
		t.Errorf("unexpected initial state %+v", snap)
	}
	if len(h.controls) != 1 {
		t.Errorf("OnControlsCreated called %d times, want 1", len(h.controls))
	}
	if h.rec.Count("loop", audio.Music) != 1 {
		t.Error("music should start looping on create")
	}
	if snap.Player.Key != "player1" || snap.BackgroundKey != "sky1" {
		t.Errorf("asset keys = %q/%q", snap.Player.Key, snap.BackgroundKey)
	}
	if snap.ScrollX != 0 {
		t.Errorf("camera should start clamped at 0, got %v", snap.ScrollX)
	}

	coin := h.g.scene.coins[0].Box
	if coin.W != 12 || coin.H != 11 {
		t.Errorf("coin size = %vx%v, want 12x11 at coin scale 0.5", coin.W, coin.H)
	}
}

func TestPlayerLandsOnGround(t *testing.T) {
	h := newHarness(t, 1)
	h.settle()

	p := h.g.scene.player
	if !p.Touching.Down {
		t.Fatal("player should be standing on the ground")
	}
	// Ground row: centre y=568, height 32*2.
	if got := p.Box.Bottom(); got < 535.5 || got > 536.5 {
		t.Errorf("player bottom = %v, want ~536", got)
	}
	if len(h.scores) != 0 {
		t.Error("standing still should not collect coins")
	}
}

func TestPlayerLandsOnGroundAtLowTickRate(t *testing.T) {
	h := &harness{rec: &audio.Recorder{}}
	rt := core.DefaultConfig()
	rt.TickRate = 10
	rt.Seed = 1
	h.g = Launch(rt, config.DefaultSceneConfig(), h.launchData(1), WithAudio(h.rec))
	h.step(30)

	p := h.g.scene.player
	if !p.Touching.Down {
		t.Fatal("player should be standing on the ground")
	}
	if got := p.Box.Bottom(); got < 535.5 || got > 536.5 {
		t.Errorf("player bottom = %v, want ~536", got)
	}
}

func TestRunAnimations(t *testing.T) {
	tests := []struct {
		name string
		held []core.Action
		vx   float64
		anim string
	}{
		{"left", []core.Action{core.ActionLeft}, -200, AnimLeft},
		{"right", []core.Action{core.ActionRight}, 200, AnimRight},
		{"left wins over right", []core.Action{core.ActionLeft, core.ActionRight}, -200, AnimLeft},
		{"idle", nil, 0, AnimTurn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, 1)
			h.step(1, tt.held...)
			if got := h.g.scene.player.VX; got != tt.vx {
				t.Errorf("VX = %v, want %v", got, tt.vx)
			}
			if got := h.g.Snapshot().Anim; got != tt.anim {
				t.Errorf("anim = %q, want %q", got, tt.anim)
			}
		})
	}
}

func TestJumpOnlyFromGround(t *testing.T) {
	h := newHarness(t, 1)

	h.step(1, core.ActionJump)
	if h.rec.Count("play", audio.Jump) != 0 {
		t.Fatal("player spawned in the air and must not jump")
	}

	h.settle()
	before := h.g.scene.player.Box.Y
	h.rec.Drain()

	h.step(1, core.ActionJump)
	if h.rec.Count("play", audio.Jump) != 1 {
		t.Errorf("jump sound count = %d, want 1", h.rec.Count("play", audio.Jump))
	}
	if h.g.scene.player.VY >= 0 {
		t.Errorf("VY = %v, want upward", h.g.scene.player.VY)
	}
	h.step(5)
	if h.g.scene.player.Box.Y >= before {
		t.Error("player should rise after jumping")
	}

	// Airborne: a second jump request is ignored.
	h.step(1, core.ActionJump)
	if h.rec.Count("play", audio.Jump) != 1 {
		t.Error("double jump should be impossible")
	}
}

func TestTouchControls(t *testing.T) {
	h := newHarness(t, 1)
	controls := h.controls[0]

	controls.Right(true)
	h.step(1)
	if h.g.scene.player.VX != 200 {
		t.Errorf("touch right: VX = %v", h.g.scene.player.VX)
	}

	controls.Right(false)
	controls.Left(true)
	h.step(1)
	if h.g.scene.player.VX != -200 {
		t.Errorf("touch left: VX = %v", h.g.scene.player.VX)
	}
	controls.Left(false)

	controls.Up()
	if h.rec.Count("play", audio.Jump) != 0 {
		t.Error("touch jump in the air should be ignored")
	}

	h.settle()
	controls.Up()
	if h.rec.Count("play", audio.Jump) != 1 || h.g.scene.player.VY != -350 {
		t.Errorf("touch jump on ground: VY = %v", h.g.scene.player.VY)
	}
}

func TestCollectCoin(t *testing.T) {
	h := newHarness(t, 1)
	h.settle()

	coin := h.g.scene.coins[5]
	h.placeOnPlayer(coin)
	h.step(1)

	if coin.Enabled {
		t.Error("collected coin should be disabled")
	}
	if !reflect.DeepEqual(h.scores, []int{10}) {
		t.Errorf("OnScoreUpdate calls = %v, want [10]", h.scores)
	}
	if h.g.Score() != 10 {
		t.Errorf("Score() = %d", h.g.Score())
	}
	if h.rec.Count("play", audio.Coin) != 1 {
		t.Error("coin sound should play")
	}
	if h.g.Snapshot().ActiveCoins != 23 {
		t.Errorf("active coins = %d, want 23", h.g.Snapshot().ActiveCoins)
	}
}

// clearWave disables every coin but the last and drops that one on the player.
func (h *harness) clearWave() {
	s := h.g.scene
	for _, c := range s.coins[:len(s.coins)-1] {
		s.world.Disable(c)
	}
	h.placeOnPlayer(s.coins[len(s.coins)-1])
	h.step(1)
}

func TestWaveClearRespawnsCoinsAndBombs(t *testing.T) {
	tests := []struct {
		name       string
		playerX    float64
		minX, maxX float64
	}{
		{"player on the left half", 100, 1200, 2400},
		{"player on the right half", 1500, 0, 1200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, 7)
			h.settle()
			h.g.scene.player.Box.X = tt.playerX - h.g.scene.player.Box.W/2

			s := h.g.scene
			last := len(s.coins) - 1
			before := make([]float64, last)
			for i, c := range s.coins[:last] {
				before[i] = c.CenterX()
			}

			h.clearWave()

			if h.rec.Count("play", audio.Powerup) != 1 {
				t.Error("powerup should play when the wave is cleared")
			}
			if n := s.activeCoins(); n != 24 {
				t.Errorf("active coins = %d, want 24", n)
			}
			for i, c := range s.coins {
				if i < last && c.CenterX() != before[i] {
					t.Errorf("coin %d respawned at x=%v, want %v", i, c.CenterX(), before[i])
					break
				}
				if _, cy := c.Box.Center(); cy != 0 {
					t.Errorf("coin %d respawned at y=%v, want 0", i, cy)
					break
				}
			}

			if len(s.bombs) != 2 {
				t.Fatalf("bombs = %d, want 2", len(s.bombs))
			}
			for _, b := range s.bombs {
				if x := b.CenterX(); x < tt.minX || x > tt.maxX {
					t.Errorf("bomb x = %v, want in [%v, %v]", x, tt.minX, tt.maxX)
				}
				if b.VX < -200 || b.VX > 200 || b.VY != 20 {
					t.Errorf("bomb velocity = (%v, %v)", b.VX, b.VY)
				}
				if !b.CollideWorldBounds || b.BounceX != 1 || b.BounceY != 1 {
					t.Errorf("bomb body = %+v", b)
				}
				if b.Box.W != 14 {
					t.Errorf("bomb width = %v at bomb scale 1", b.Box.W)
				}
			}
		})
	}
}

func TestHitBombEndsGame(t *testing.T) {
	h := newHarness(t, 3)
	h.settle()

	s := h.g.scene
	s.spawnBomb(s.player.CenterX())
	h.placeOnPlayer(s.bombs[0])
	h.step(1)

	if h.gameOvers != 1 {
		t.Fatalf("OnGameOver calls = %d, want 1", h.gameOvers)
	}
	snap := h.g.Snapshot()
	if !snap.Over || !h.g.Over() {
		t.Error("scene should report game over")
	}
	if snap.Player.Tint != core.ColorRed {
		t.Errorf("player tint = %v, want red", snap.Player.Tint)
	}
	if snap.Anim != AnimTurn {
		t.Errorf("anim = %q, want turn", snap.Anim)
	}
	if !s.world.Paused() {
		t.Error("physics should be paused")
	}
	if h.rec.Count("stop", audio.Music) != 1 || h.rec.Count("play", audio.GameOver) != 1 {
		t.Errorf("audio events = %+v", h.rec.Events())
	}

	frozen := s.player.Box
	h.step(30, core.ActionRight, core.ActionJump)
	if s.player.Box != frozen {
		t.Error("player moved after game over")
	}
	if h.gameOvers != 1 {
		t.Errorf("OnGameOver fired %d times", h.gameOvers)
	}
	if h.rec.Count("play", audio.Jump) != 0 {
		t.Error("no jumping after game over")
	}
}

func TestPauseKey(t *testing.T) {
	h := newHarness(t, 1)
	h.step(3)

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	h.g.Step(in)

	if h.pauses != 1 || !h.g.Paused() {
		t.Fatalf("pause key: pauses=%d paused=%v", h.pauses, h.g.Paused())
	}
	tick := h.g.Tick()
	h.step(10)
	if h.g.Tick() != tick {
		t.Error("paused scene should not advance")
	}

	h.g.Resume("SomethingElse")
	if !h.g.Paused() {
		t.Error("unknown scene key must be ignored")
	}
	h.g.Resume(Key)
	h.step(1)
	if h.g.Paused() || h.g.Tick() != tick+1 {
		t.Errorf("resume: paused=%v tick=%d", h.g.Paused(), h.g.Tick())
	}

	h.g.Pause(Key)
	if !h.g.Paused() || h.pauses != 1 {
		t.Error("programmatic pause should not invoke OnPause")
	}
}

func TestPauseIgnoredAfterGameOver(t *testing.T) {
	h := newHarness(t, 1)
	h.settle()
	s := h.g.scene
	s.spawnBomb(s.player.CenterX())
	h.placeOnPlayer(s.bombs[0])
	h.step(1)

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	h.g.Step(in)
	if h.pauses != 0 || h.g.Paused() {
		t.Error("pause after game over should be ignored")
	}
}

func TestRestartReadsNewLaunchData(t *testing.T) {
	h := newHarness(t, 1)
	h.settle()
	h.placeOnPlayer(h.g.scene.coins[0])
	h.step(1)

	data := h.launchData(3)
	data.CoinScale = 1
	h.g.SetLaunchData(data)
	if h.g.Snapshot().ThemeID != 1 {
		t.Error("launch data must not apply before restart")
	}

	h.g.Restart("Unknown")
	if h.g.Score() != 10 {
		t.Error("unknown scene key must not restart")
	}

	h.g.Restart(Key)
	snap := h.g.Snapshot()
	if snap.ThemeID != 3 || snap.Player.Key != "player3" {
		t.Errorf("theme after restart = %d (%s)", snap.ThemeID, snap.Player.Key)
	}
	if snap.Score != 0 || snap.Over || snap.Paused || snap.Tick != 0 {
		t.Errorf("restart should reset state: %+v", snap)
	}
	if w := h.g.scene.coins[0].Box.W; w != 24 {
		t.Errorf("coin width = %v, want 24 at coin scale 1", w)
	}
	if len(h.controls) != 2 {
		t.Errorf("OnControlsCreated calls = %d, want 2", len(h.controls))
	}
	if h.rec.Count("loop", audio.Music) != 2 {
		t.Error("music should restart with the scene")
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	h := newHarness(t, 1)
	h.settle()
	s := h.g.scene
	s.spawnBomb(s.player.CenterX())
	h.placeOnPlayer(s.bombs[0])
	h.step(1)

	h.g.Restart(Key)
	snap := h.g.Snapshot()
	if snap.Over || snap.Bombs != 0 || snap.Player.Tint != core.ColorDefault {
		t.Errorf("restart should clear game over: %+v", snap)
	}
	h.step(1, core.ActionRight)
	if h.g.scene.player.VX != 200 {
		t.Error("player should respond to input after restart")
	}
}

func TestDestroy(t *testing.T) {
	h := newHarness(t, 1)
	h.g.Destroy()
	h.g.Destroy()

	if h.rec.Count("stop", audio.Music) != 1 {
		t.Error("destroy should stop the music once")
	}
	tick := h.g.Tick()
	h.step(5)
	h.g.Restart(Key)
	if h.g.Tick() != tick {
		t.Error("destroyed game should ignore steps and restarts")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		h := newHarness(t, 12345)
		h.settle()
		h.clearWave()
		for i := 0; i < 240; i++ {
			switch {
			case i%90 < 40:
				h.step(1, core.ActionRight)
			case i%90 < 45:
				h.step(1, core.ActionJump)
			default:
				h.step(1, core.ActionLeft)
			}
		}
		return h.g.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("snapshots differ for the same seed:\n%+v\n%+v", a, b)
	}
}

func TestSeedChangesBombSpawns(t *testing.T) {
	spawn := func(seed int64) []float64 {
		h := newHarness(t, seed)
		h.settle()
		h.clearWave()
		var xs []float64
		for _, b := range h.g.scene.bombs {
			xs = append(xs, b.CenterX(), b.VX)
		}
		return xs
	}
	if reflect.DeepEqual(spawn(1), spawn(2)) {
		t.Error("different seeds should give different bomb spawns")
	}
}
