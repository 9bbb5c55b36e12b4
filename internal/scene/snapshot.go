package scene

import "github.com/vovakirdan/vitron-bros/internal/core"

// Sprite is one visible body in a Snapshot.
type Sprite struct {
	Kind  Kind
	Key   string   // asset key, resolved to a skin by the renderer
	Box   core.Box // world pixels, top-left origin
	Frame int      // spritesheet frame, players only
	Tint  core.Color
}

// Snapshot is a read-only view of the scene for renderers and tests.
type Snapshot struct {
	Tick    uint64
	Score   int
	Wave    int
	Paused  bool
	Over    bool
	ThemeID int

	WorldW float64
	WorldH float64
	ViewW  float64
	ViewH  float64

	ScrollX       float64
	ScrollY       float64
	BackgroundKey string
	BackgroundX   float64 // parallax tile offset

	Player      Sprite
	Anim        string
	ActiveCoins int
	Bombs       int

	// Sprites in draw order: platforms, player, coins, bombs.
	Sprites []Sprite
}

// Snapshot captures the current scene state.
func (g *Game) Snapshot() Snapshot {
	s := g.scene
	bounds := s.world.Bounds()
	snap := Snapshot{
		Tick:    g.tick,
		Score:   s.score,
		Wave:    s.wave,
		Paused:  s.paused,
		Over:    !s.active,
		ThemeID: s.themeID,

		WorldW: bounds.W,
		WorldH: bounds.H,
		ViewW:  s.camera.Width,
		ViewH:  s.camera.Height,

		ScrollX:       s.camera.ScrollX,
		ScrollY:       s.camera.ScrollY,
		BackgroundKey: s.keys.Background,
		BackgroundX:   s.backgroundX,

		Anim:        s.anim.Current(),
		ActiveCoins: s.activeCoins(),
		Bombs:       len(s.bombs),
	}

	snap.Player = Sprite{
		Kind:  KindPlayer,
		Key:   s.player.Key,
		Box:   s.player.Box,
		Frame: s.anim.Frame(),
		Tint:  s.tint,
	}

	snap.Sprites = make([]Sprite, 0, len(s.platforms)+1+len(s.coins)+len(s.bombs))
	for _, p := range s.platforms {
		snap.Sprites = append(snap.Sprites, Sprite{Kind: p.Kind, Key: p.Key, Box: p.Box})
	}
	snap.Sprites = append(snap.Sprites, snap.Player)
	for _, group := range [][]*Body{s.coins, s.bombs} {
		for _, b := range group {
			if !b.Enabled {
				continue
			}
			snap.Sprites = append(snap.Sprites, Sprite{Kind: b.Kind, Key: b.Key, Box: b.Box})
		}
	}
	return snap
}
