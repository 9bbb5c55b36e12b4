package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadScene loads the scene tuning.
// Search order: customPath -> ~/.vitron/configs/scene.yaml -> ./configs/scene.yaml -> embedded default
func LoadScene(customPath string) (SceneConfig, error) {
	var cfg SceneConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("scene.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil && cfg.Validate() == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/scene.yaml"); err == nil {
		cfg = SceneConfig{}
		if err := yaml.Unmarshal(data, &cfg); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg = SceneConfig{}
	if err := yaml.Unmarshal(defaultSceneYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultSceneConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Validate rejects tunings the scene cannot run with.
func (c SceneConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("world size must be positive")
	case c.Viewport.Width <= 0 || c.Viewport.Height <= 0:
		return fmt.Errorf("viewport size must be positive")
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("player size must be positive")
	case c.Ground.Width <= 0 || c.Ground.Height <= 0:
		return fmt.Errorf("ground tile size must be positive")
	case c.Coins.Count < 0:
		return fmt.Errorf("coin count must not be negative")
	case c.Coins.MinBounce > c.Coins.MaxBounce:
		return fmt.Errorf("coin min_bounce exceeds max_bounce")
	case c.Bombs.MinVX > c.Bombs.MaxVX:
		return fmt.Errorf("bomb min_vx exceeds max_vx")
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vitron", "configs", filename)
}
