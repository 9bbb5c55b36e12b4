// Package theme defines the selectable asset skins. The catalogue loaded from
// themes.yaml is the single source of truth for available themes; the scene
// derives its asset keys from the theme id and front-ends resolve those keys
// to glyphs or colours.
package theme

import (
	_ "embed"
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/vitron-bros/internal/core"
)

//go:embed themes.yaml
var defaultThemesYAML []byte

// DefaultID is the theme used when a requested id is unknown.
const DefaultID = 1

// Theme is a named asset-skin selection.
type Theme struct {
	ID   int    `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// AssetKeys names the five assets the game scene loads for one theme.
type AssetKeys struct {
	Background string
	Player     string
	Coin       string
	Ground     string
	Bomb       string
}

// Keys generates the asset keys for a theme id.
func Keys(id int) AssetKeys {
	return AssetKeys{
		Background: fmt.Sprintf("sky%d", id),
		Player:     fmt.Sprintf("player%d", id),
		Coin:       fmt.Sprintf("coin%d", id),
		Ground:     fmt.Sprintf("ground%d", id),
		Bomb:       fmt.Sprintf("bomb%d", id),
	}
}

// Skin describes how one asset is drawn.
type Skin struct {
	Glyph  string     `yaml:"glyph"`
	Frames []string   `yaml:"frames"`
	Color  core.Color `yaml:"color"`
	RGB    string     `yaml:"rgb"`
}

// Rune returns the glyph for a spritesheet frame, falling back to the
// first rune of Glyph when the frame is not defined.
func (s Skin) Rune(frame int) rune {
	if frame >= 0 && frame < len(s.Frames) {
		r, _ := utf8.DecodeRuneInString(s.Frames[frame])
		return r
	}
	if s.Glyph == "" {
		return '?'
	}
	r, _ := utf8.DecodeRuneInString(s.Glyph)
	return r
}

// RGBA parses the "#rrggbb" colour. Malformed values yield opaque magenta so
// missing skins are visible.
func (s Skin) RGBA() color.RGBA {
	hex := strings.TrimPrefix(s.RGB, "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if len(hex) != 6 || err != nil {
		return color.RGBA{R: 0xff, B: 0xff, A: 0xff}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

type themeFile struct {
	Themes []struct {
		ID    int             `yaml:"id"`
		Name  string          `yaml:"name"`
		Skins map[string]Skin `yaml:"skins"`
	} `yaml:"themes"`
}

// Catalog holds the available themes and the skins keyed by asset key.
type Catalog struct {
	themes []Theme
	skins  map[string]Skin
}

// Load parses a theme catalogue.
func Load(data []byte) (*Catalog, error) {
	var f themeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("theme: cannot parse catalogue: %w", err)
	}
	if len(f.Themes) == 0 {
		return nil, fmt.Errorf("theme: catalogue defines no themes")
	}

	c := &Catalog{skins: make(map[string]Skin)}
	for _, t := range f.Themes {
		c.themes = append(c.themes, Theme{ID: t.ID, Name: t.Name})
		keys := Keys(t.ID)
		for role, key := range map[string]string{
			"background": keys.Background,
			"player":     keys.Player,
			"coin":       keys.Coin,
			"ground":     keys.Ground,
			"bomb":       keys.Bomb,
		} {
			skin, ok := t.Skins[role]
			if !ok {
				return nil, fmt.Errorf("theme: %q has no %s skin", t.Name, role)
			}
			c.skins[key] = skin
		}
	}
	sort.Slice(c.themes, func(i, j int) bool {
		return c.themes[i].ID < c.themes[j].ID
	})
	return c, nil
}

var builtin = mustLoadBuiltin()

func mustLoadBuiltin() *Catalog {
	c, err := Load(defaultThemesYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the embedded catalogue.
func Default() *Catalog {
	return builtin
}

// Themes returns the themes sorted by id.
func (c *Catalog) Themes() []Theme {
	out := make([]Theme, len(c.themes))
	copy(out, c.themes)
	return out
}

// Lookup finds a theme by id.
func (c *Catalog) Lookup(id int) (Theme, bool) {
	for _, t := range c.themes {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}

// Resolve returns id when it is known and DefaultID otherwise.
func (c *Catalog) Resolve(id int) int {
	if _, ok := c.Lookup(id); ok {
		return id
	}
	return DefaultID
}

// Skin returns the skin for an asset key.
func (c *Catalog) Skin(assetKey string) Skin {
	return c.skins[assetKey]
}
