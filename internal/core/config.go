package core

// RuntimeConfig contains configuration passed to the scene at launch.
// Front-ends use it to size their viewport; the scene uses TickRate for its
// fixed step and Seed for deterministic spawns.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters (terminal) or pixels (desktop)
	ScreenH  int   // Screen height in characters or pixels
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Step returns the fixed time step in seconds.
func (c RuntimeConfig) Step() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}
