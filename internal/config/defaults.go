package config

import (
	_ "embed"
)

//go:embed defaults/scene.yaml
var defaultSceneYAML []byte

// DefaultSceneConfig returns the hard-coded scene tuning. It mirrors
// defaults/scene.yaml and is used when the embedded file cannot be parsed.
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		World:    Size{Width: 2400, Height: 600},
		Viewport: Size{Width: 800, Height: 600},
		Physics: PhysicsConfig{
			Gravity:      450,
			RunSpeed:     200,
			JumpVelocity: 350,
		},
		Player: PlayerConfig{
			X:      100,
			Y:      450,
			Width:  32,
			Height: 48,
			Bounce: 0.2,
		},
		Ground: Size{Width: 400, Height: 32},
		Platforms: []PlatformSpec{
			{X: 128, Y: 568, ScaleX: 2, ScaleY: 2, Repeat: 10, StepX: 256},
			{X: 600, Y: 400},
			{X: 50, Y: 300},
			{X: 750, Y: 280},
			{X: 1100, Y: 450},
			{X: 1300, Y: 320},
			{X: 1550, Y: 200},
			{X: 1800, Y: 400, ScaleX: 0.5, ScaleY: 1},
			{X: 2000, Y: 300},
		},
		Coins: CoinConfig{
			Count:     24,
			X:         12,
			Y:         0,
			StepX:     90,
			Width:     24,
			Height:    22,
			MinBounce: 0.4,
			MaxBounce: 0.8,
			Value:     10,
		},
		Bombs: BombConfig{
			PerWave: 2,
			Width:   14,
			Height:  14,
			SpawnY:  16,
			MinVX:   -200,
			MaxVX:   200,
			VY:      20,
			Bounce:  1,
		},
		Camera: CameraConfig{
			Lerp:     0.08,
			Parallax: 0.3,
		},
		Animation: AnimationConfig{FrameRate: 10},
		Audio: AudioConfig{
			MusicVolume:    0.4,
			JumpVolume:     0.6,
			CoinVolume:     1.0,
			PowerupVolume:  0.6,
			GameOverVolume: 1.0,
		},
	}
}
