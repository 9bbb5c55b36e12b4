package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedSceneMatchesHardcoded(t *testing.T) {
	cfg, err := LoadScene("")
	if err != nil {
		t.Fatalf("LoadScene() failed: %v", err)
	}
	def := DefaultSceneConfig()

	if cfg.Physics != def.Physics {
		t.Errorf("physics = %+v, expected %+v", cfg.Physics, def.Physics)
	}
	if cfg.Coins != def.Coins {
		t.Errorf("coins = %+v, expected %+v", cfg.Coins, def.Coins)
	}
	if cfg.Bombs != def.Bombs {
		t.Errorf("bombs = %+v, expected %+v", cfg.Bombs, def.Bombs)
	}
	if len(cfg.Layout()) != len(def.Layout()) {
		t.Errorf("layout has %d tiles, expected %d", len(cfg.Layout()), len(def.Layout()))
	}
}

func TestLayoutExpandsRepeats(t *testing.T) {
	tiles := DefaultSceneConfig().Layout()

	// 10 ground segments plus 8 floating ledges
	if len(tiles) != 18 {
		t.Fatalf("Layout() returned %d tiles, expected 18", len(tiles))
	}
	for i := 0; i < 10; i++ {
		want := 128 + float64(i)*256
		if tiles[i].X != want || tiles[i].Y != 568 || tiles[i].ScaleX != 2 {
			t.Errorf("ground tile %d = %+v, expected x=%v y=568 scale 2", i, tiles[i], want)
		}
	}
	narrow := tiles[16]
	if narrow.X != 1800 || narrow.ScaleX != 0.5 || narrow.ScaleY != 1 {
		t.Errorf("narrow ledge = %+v", narrow)
	}
	if tiles[11].ScaleX != 1 || tiles[11].ScaleY != 1 {
		t.Errorf("unscaled ledge should default to scale 1, got %+v", tiles[11])
	}
}

func TestLoadSceneCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	data := []byte(`
world: { width: 1000, height: 400 }
viewport: { width: 500, height: 400 }
physics: { gravity: 300, run_speed: 150, jump_velocity: 250 }
player: { x: 10, y: 10, width: 16, height: 24, bounce: 0 }
ground: { width: 100, height: 16 }
coins: { count: 3, step_x: 50, width: 8, height: 8, min_bounce: 0.1, max_bounce: 0.2, value: 5 }
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadScene(path)
	if err != nil {
		t.Fatalf("LoadScene() failed: %v", err)
	}
	if cfg.World.Width != 1000 || cfg.Physics.Gravity != 300 || cfg.Coins.Value != 5 {
		t.Errorf("custom config not applied: %+v", cfg)
	}
}

func TestLoadSceneRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("world: { width: 0, height: 0 }\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScene(path); err == nil {
		t.Error("LoadScene should reject a zero-sized world")
	}

	if _, err := LoadScene(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadScene should fail for a missing custom path")
	}
}

func TestLoadSettingsFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := []byte(`
[database]
path = "/tmp/vitron-test.db"

[game]
tick_rate = 30

[ssh]
idle_timeout = "5m"
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("VITRON_CONFIG", path)
	t.Setenv("VITRON_LOG_LEVEL", "debug")

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if s.Database.Path != "/tmp/vitron-test.db" {
		t.Errorf("database path = %q", s.Database.Path)
	}
	if s.Game.TickRate != 30 {
		t.Errorf("tick rate = %d, expected 30", s.Game.TickRate)
	}
	if s.Log.Level != "debug" {
		t.Errorf("log level = %q, expected env override 'debug'", s.Log.Level)
	}
	if s.SSH.IdleTimeout != 5*time.Minute {
		t.Errorf("idle timeout = %v, expected 5m", s.SSH.IdleTimeout)
	}
	if s.SSH.Address != ":23235" {
		t.Errorf("ssh address default = %q", s.SSH.Address)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandHome("~/.vitron/vitron.db")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, ".vitron", "vitron.db") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got, _ := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute paths should be unchanged, got %q", got)
	}
}
