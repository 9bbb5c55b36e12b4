package scene

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/vitron-bros/internal/audio"
	"github.com/vovakirdan/vitron-bros/internal/config"
	"github.com/vovakirdan/vitron-bros/internal/core"
)

// Option configures a Game at launch.
type Option func(*Game)

// WithAudio routes scene sounds to p. Without it the game is silent.
func WithAudio(p audio.Player) Option {
	return func(g *Game) {
		if p != nil {
			g.audio = p
		}
	}
}

// WithLogger sets the logger for scene lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// Game is the engine instance hosting the game scene. It must be driven
// from a single goroutine: Step, the lifecycle methods and the touch
// controls handed out through LaunchData all touch the same state.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.SceneConfig
	data    LaunchData
	audio   audio.Player
	logger  *log.Logger

	scene     *Scene
	tick      uint64
	restarts  int64
	destroyed bool
}

// Launch creates the engine and starts the game scene with data.
func Launch(runtime core.RuntimeConfig, cfg config.SceneConfig, data LaunchData, opts ...Option) *Game {
	g := &Game{
		runtime: runtime,
		cfg:     cfg,
		data:    data,
		audio:   audio.NewMixer(nil, nil),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.start()
	return g
}

func (g *Game) start() {
	g.scene = newScene(g.cfg, g.audio, g.logger, g.runtime.Seed+g.restarts)
	g.scene.init(g.data)
	g.scene.create()
}

// SetLaunchData replaces the launch data without restarting. The running
// scene keeps its copy; the new data is read at the next Restart.
func (g *Game) SetLaunchData(data LaunchData) {
	g.data = data
}

// Step advances the scene by one fixed tick.
func (g *Game) Step(in core.InputFrame) {
	if g.destroyed || g.scene.paused {
		return
	}
	s := g.scene
	if in.Has(core.ActionPause) && s.active {
		g.pause()
		s.data.pause()
		return
	}

	g.tick++
	dt := g.runtime.Step()
	s.update(in)
	s.world.Advance(dt, s.dynamic())
	s.postUpdate(dt)
}

// Pause freezes the scene identified by key. Unknown keys are ignored.
func (g *Game) Pause(key string) {
	if !g.known(key) {
		return
	}
	g.pause()
}

func (g *Game) pause() {
	g.scene.paused = true
	g.logger.Debug("scene paused", "tick", g.tick)
}

// Resume unfreezes the scene identified by key. Unknown keys are ignored.
func (g *Game) Resume(key string) {
	if !g.known(key) {
		return
	}
	g.scene.paused = false
	g.logger.Debug("scene resumed", "tick", g.tick)
}

// Restart tears the scene down and runs init and create again with the
// current launch data. Unknown keys are ignored.
func (g *Game) Restart(key string) {
	if !g.known(key) {
		return
	}
	g.scene.shutdown()
	g.restarts++
	g.tick = 0
	g.start()
	g.logger.Debug("scene restarted", "restarts", g.restarts)
}

// Destroy stops the scene for good. Later calls become no-ops.
func (g *Game) Destroy() {
	if g.destroyed {
		return
	}
	g.scene.shutdown()
	g.destroyed = true
}

// Score returns the running score.
func (g *Game) Score() int { return g.scene.score }

// Paused reports whether the scene is paused.
func (g *Game) Paused() bool { return g.scene.paused }

// Over reports whether the player has hit a bomb.
func (g *Game) Over() bool { return !g.scene.active }

// Tick returns the number of ticks simulated since the last (re)start.
func (g *Game) Tick() uint64 { return g.tick }

func (g *Game) known(key string) bool {
	if g.destroyed {
		return false
	}
	if key != Key {
		g.logger.Debug("unknown scene key", "key", key)
		return false
	}
	return true
}
