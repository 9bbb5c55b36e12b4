// Package scene implements the side-scrolling platformer: a player running
// and jumping across ground tiles, collecting coin waves and dodging the
// bombs each cleared wave releases. It knows nothing about terminals or
// windows; front-ends feed it input frames and draw its snapshots.
package scene

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/vitron-bros/internal/audio"
	"github.com/vovakirdan/vitron-bros/internal/config"
	"github.com/vovakirdan/vitron-bros/internal/core"
	"github.com/vovakirdan/vitron-bros/internal/theme"
)

// Key identifies the game scene for Pause, Resume and Restart.
const Key = "GameScene"

// Scene holds one run of the level, from create until game over.
type Scene struct {
	cfg    config.SceneConfig
	audio  audio.Player
	logger *log.Logger
	rng    *rand.Rand

	// Copied from LaunchData at init.
	data      LaunchData
	themeID   int
	keys      theme.AssetKeys
	coinScale float64
	bombScale float64

	world     *World
	camera    *Camera
	platforms []*Body
	player    *Body
	coins     []*Body
	bombs     []*Body
	anim      *Animator
	tint      core.Color
	active    bool
	paused    bool

	backgroundX float64
	score       int
	wave        int

	touchLeft  bool
	touchRight bool
}

func newScene(cfg config.SceneConfig, out audio.Player, logger *log.Logger, seed int64) *Scene {
	return &Scene{
		cfg:    cfg,
		audio:  out,
		logger: logger,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// init copies the launch parameters and derives the theme's asset keys.
func (s *Scene) init(data LaunchData) {
	s.data = data
	s.themeID = data.ThemeID
	s.keys = theme.Keys(data.ThemeID)
	s.coinScale = positiveOr(data.CoinScale, 1)
	s.bombScale = positiveOr(data.BombScale, 1)
}

// create builds the level, the player and the first coin wave, then hands
// the touch controls to the UI and starts the music.
func (s *Scene) create() {
	cfg := s.cfg
	s.world = NewWorld(cfg.World.Width, cfg.World.Height, cfg.Physics.Gravity)

	s.platforms = nil
	for _, p := range cfg.Layout() {
		box := core.BoxFromCenter(p.X, p.Y, cfg.Ground.Width*p.ScaleX, cfg.Ground.Height*p.ScaleY)
		s.platforms = append(s.platforms, s.world.Add(&Body{
			Kind:   KindPlatform,
			Key:    s.keys.Ground,
			Box:    box,
			Static: true,
		}))
	}

	pc := cfg.Player
	s.player = s.world.Add(&Body{
		Kind:               KindPlayer,
		Key:                s.keys.Player,
		Box:                core.BoxFromCenter(pc.X, pc.Y, pc.Width, pc.Height),
		BounceX:            pc.Bounce,
		BounceY:            pc.Bounce,
		CollideWorldBounds: true,
	})
	s.active = true
	s.tint = core.ColorDefault

	cc := cfg.Coins
	s.coins = nil
	for i := 0; i < cc.Count; i++ {
		x := cc.X + float64(i)*cc.StepX
		s.coins = append(s.coins, s.world.Add(&Body{
			Kind:    KindCoin,
			Key:     s.keys.Coin,
			Box:     core.BoxFromCenter(x, cc.Y, cc.Width*s.coinScale, cc.Height*s.coinScale),
			BounceY: s.floatBetween(cc.MinBounce, cc.MaxBounce),
		}))
	}
	s.bombs = nil

	s.anim = NewAnimator(PlayerAnimations(cfg.Animation.FrameRate)...)

	s.touchLeft, s.touchRight = false, false
	s.data.controlsCreated(TouchControls{
		Left:  func(isDown bool) { s.touchLeft = isDown },
		Right: func(isDown bool) { s.touchRight = isDown },
		Up:    s.jump,
	})

	s.camera = NewCamera(cfg.Viewport.Width, cfg.Viewport.Height, s.world.Bounds(), cfg.Camera.Lerp)
	s.camera.Follow(s.player.Box, true)

	s.score = 0
	s.wave = 0
	s.backgroundX = 0

	s.audio.PlayLoop(audio.Music, cfg.Audio.MusicVolume)
	s.logger.Debug("scene created", "theme", s.themeID, "platforms", len(s.platforms), "coins", len(s.coins))
}

// update applies player input. It runs before the physics step.
func (s *Scene) update(in core.InputFrame) {
	if !s.active {
		return
	}
	s.backgroundX = s.camera.ScrollX * s.cfg.Camera.Parallax

	run := s.cfg.Physics.RunSpeed
	switch {
	case in.IsDown(core.ActionLeft) || s.touchLeft:
		s.player.VX = -run
		s.anim.Play(AnimLeft, true)
	case in.IsDown(core.ActionRight) || s.touchRight:
		s.player.VX = run
		s.anim.Play(AnimRight, true)
	default:
		s.player.VX = 0
		s.anim.Play(AnimTurn, false)
	}

	if in.IsDown(core.ActionJump) {
		s.jump()
	}
}

// jump launches the player, but only from the ground.
func (s *Scene) jump() {
	if !s.active || s.paused || !s.player.Touching.Down {
		return
	}
	s.player.VY = -s.cfg.Physics.JumpVelocity
	s.audio.Play(audio.Jump, s.cfg.Audio.JumpVolume)
}

// postUpdate resolves bomb and coin contacts after the physics step.
// Bombs are checked first.
func (s *Scene) postUpdate(dt float64) {
	if s.active && !s.world.Paused() {
		if bombs := s.world.Overlaps(s.player, KindBomb); len(bombs) > 0 {
			s.hitBomb(bombs[0])
		}
	}
	if s.active && !s.world.Paused() {
		for _, coin := range s.world.Overlaps(s.player, KindCoin) {
			if coin.Enabled {
				s.collectCoin(coin)
			}
		}
	}
	s.anim.Update(dt)
	s.camera.Follow(s.player.Box, false)
}

func (s *Scene) collectCoin(coin *Body) {
	s.world.Disable(coin)
	s.score += s.cfg.Coins.Value
	s.data.scoreUpdate(s.score)
	s.audio.Play(audio.Coin, s.cfg.Audio.CoinVolume)

	if s.activeCoins() > 0 {
		return
	}

	s.audio.Play(audio.Powerup, s.cfg.Audio.PowerupVolume)
	for _, c := range s.coins {
		s.world.Enable(c, c.CenterX()-c.Box.W/2, s.cfg.Coins.Y-c.Box.H/2)
	}

	half := s.cfg.World.Width / 2
	for i := 0; i < s.cfg.Bombs.PerWave; i++ {
		var x float64
		if s.player.CenterX() < half {
			x = s.intBetween(half, s.cfg.World.Width)
		} else {
			x = s.intBetween(0, half)
		}
		s.spawnBomb(x)
	}
	s.wave++
	s.logger.Debug("coin wave cleared", "wave", s.wave, "score", s.score, "bombs", len(s.bombs))
}

func (s *Scene) spawnBomb(x float64) {
	bc := s.cfg.Bombs
	bomb := s.world.Add(&Body{
		Kind:               KindBomb,
		Key:                s.keys.Bomb,
		Box:                core.BoxFromCenter(x, bc.SpawnY, bc.Width*s.bombScale, bc.Height*s.bombScale),
		BounceX:            bc.Bounce,
		BounceY:            bc.Bounce,
		CollideWorldBounds: true,
	})
	bomb.SetVelocity(s.intBetween(bc.MinVX, bc.MaxVX), bc.VY)
	s.bombs = append(s.bombs, bomb)
}

func (s *Scene) hitBomb(bomb *Body) {
	s.world.Pause()
	s.tint = core.ColorRed
	s.anim.Play(AnimTurn, false)
	s.active = false
	s.audio.Stop(audio.Music)
	s.audio.Play(audio.GameOver, s.cfg.Audio.GameOverVolume)
	s.logger.Debug("player hit bomb", "score", s.score, "bomb", bomb.id)
	s.data.gameOver()
}

// shutdown releases what outlives the scene.
func (s *Scene) shutdown() {
	s.audio.Stop(audio.Music)
}

// dynamic returns the bodies the physics step moves.
func (s *Scene) dynamic() []*Body {
	out := make([]*Body, 0, 1+len(s.coins)+len(s.bombs))
	out = append(out, s.player)
	out = append(out, s.coins...)
	out = append(out, s.bombs...)
	return out
}

func (s *Scene) activeCoins() int {
	n := 0
	for _, c := range s.coins {
		if c.Enabled {
			n++
		}
	}
	return n
}

// floatBetween returns a uniform float in [min, max).
func (s *Scene) floatBetween(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}

// intBetween returns a uniform integer in [min, max], both inclusive.
func (s *Scene) intBetween(min, max float64) float64 {
	lo, hi := int(min), int(max)
	if hi <= lo {
		return float64(lo)
	}
	return float64(lo + s.rng.Intn(hi-lo+1))
}

func positiveOr(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}
