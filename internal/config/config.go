// Package config provides YAML-based scene tuning and viper-based application
// settings for Super Vitron Bros.
package config

// SceneConfig contains all tuning for the game scene.
type SceneConfig struct {
	World     Size            `yaml:"world"`
	Viewport  Size            `yaml:"viewport"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Ground    Size            `yaml:"ground"`
	Platforms []PlatformSpec  `yaml:"platforms"`
	Coins     CoinConfig      `yaml:"coins"`
	Bombs     BombConfig      `yaml:"bombs"`
	Camera    CameraConfig    `yaml:"camera"`
	Animation AnimationConfig `yaml:"animation"`
	Audio     AudioConfig     `yaml:"audio"`
}

// Size is a width/height pair in world pixels.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines world gravity and player velocities.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	RunSpeed     float64 `yaml:"run_speed"`
	JumpVelocity float64 `yaml:"jump_velocity"`
}

// PlayerConfig defines the player's spawn point, body size and bounce.
type PlayerConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Bounce float64 `yaml:"bounce"`
}

// PlatformSpec places one ground tile (or a row of them) by centre point.
// Zero scales mean 1; Repeat places additional tiles StepX apart.
type PlatformSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	ScaleX float64 `yaml:"scale_x"`
	ScaleY float64 `yaml:"scale_y"`
	Repeat int     `yaml:"repeat"`
	StepX  float64 `yaml:"step_x"`
}

// CoinConfig defines the row of collectible coins.
type CoinConfig struct {
	Count     int     `yaml:"count"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	StepX     float64 `yaml:"step_x"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	MinBounce float64 `yaml:"min_bounce"`
	MaxBounce float64 `yaml:"max_bounce"`
	Value     int     `yaml:"value"`
}

// BombConfig defines the hazards released after each cleared coin wave.
type BombConfig struct {
	PerWave int     `yaml:"per_wave"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	SpawnY  float64 `yaml:"spawn_y"`
	MinVX   float64 `yaml:"min_vx"`
	MaxVX   float64 `yaml:"max_vx"`
	VY      float64 `yaml:"vy"`
	Bounce  float64 `yaml:"bounce"`
}

// CameraConfig controls camera follow smoothing and background parallax.
type CameraConfig struct {
	Lerp     float64 `yaml:"lerp"`
	Parallax float64 `yaml:"parallax"`
}

// AnimationConfig controls spritesheet playback.
type AnimationConfig struct {
	FrameRate float64 `yaml:"frame_rate"`
}

// AudioConfig holds per-sound playback volumes.
type AudioConfig struct {
	MusicVolume    float64 `yaml:"music_volume"`
	JumpVolume     float64 `yaml:"jump_volume"`
	CoinVolume     float64 `yaml:"coin_volume"`
	PowerupVolume  float64 `yaml:"powerup_volume"`
	GameOverVolume float64 `yaml:"gameover_volume"`
}

// Layout expands the platform specs into individual tiles.
func (c SceneConfig) Layout() []PlatformSpec {
	var out []PlatformSpec
	for _, p := range c.Platforms {
		n := p.Repeat
		if n < 1 {
			n = 1
		}
		for i := 0; i < n; i++ {
			tile := p
			tile.X = p.X + float64(i)*p.StepX
			tile.Repeat = 1
			if tile.ScaleX == 0 {
				tile.ScaleX = 1
			}
			if tile.ScaleY == 0 {
				tile.ScaleY = 1
			}
			out = append(out, tile)
		}
	}
	return out
}
