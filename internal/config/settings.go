package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings holds application-level configuration (as opposed to scene tuning).
type Settings struct {
	Database DatabaseSettings `mapstructure:"database"`
	Game     GameSettings     `mapstructure:"game"`
	Log      LogSettings      `mapstructure:"log"`
	SSH      SSHSettings      `mapstructure:"ssh"`
}

// DatabaseSettings holds sqlite settings.
type DatabaseSettings struct {
	Path string `mapstructure:"path"`
}

// GameSettings holds runtime settings shared by all front-ends.
type GameSettings struct {
	TickRate    int    `mapstructure:"tick_rate"`
	SceneConfig string `mapstructure:"scene_config"`
}

// LogSettings controls the charm logger.
type LogSettings struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// SSHSettings configures `vitron serve`.
type SSHSettings struct {
	Address     string        `mapstructure:"address"`
	HostKeyPath string        `mapstructure:"host_key"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
}

// LoadSettings reads settings from file and env. Env var overrides use prefix VITRON_,
// e.g. VITRON_DATABASE_PATH. VITRON_CONFIG points at an explicit settings file.
func LoadSettings() (Settings, error) {
	v := viper.New()

	v.SetDefault("database.path", "~/.vitron/vitron.db")
	v.SetDefault("game.tick_rate", 60)
	v.SetDefault("game.scene_config", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "~/.vitron/vitron.log")
	v.SetDefault("ssh.address", ":23235")
	v.SetDefault("ssh.host_key", "")
	v.SetDefault("ssh.idle_timeout", 30*time.Minute)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("VITRON_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".vitron"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("VITRON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, missing := err.(viper.ConfigFileNotFoundError); cfgPath != "" || !missing {
			return Settings{}, fmt.Errorf("config: read settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("config: unmarshal settings: %w", err)
	}
	if s.Game.TickRate <= 0 {
		s.Game.TickRate = 60
	}
	return s, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
