package scene

import (
	"math"

	"github.com/vovakirdan/vitron-bros/internal/core"
	"github.com/vovakirdan/vitron-bros/internal/theme"
)

// Render projects a snapshot onto a character screen. The camera viewport
// is stretched to fill dst; every sprite covers at least one cell.
func Render(dst *core.Screen, snap Snapshot, skins *theme.Catalog) {
	if dst.Width() == 0 || dst.Height() == 0 || snap.ViewW <= 0 || snap.ViewH <= 0 {
		return
	}
	sx := float64(dst.Width()) / snap.ViewW
	sy := float64(dst.Height()) / snap.ViewH

	renderBackground(dst, skins.Skin(snap.BackgroundKey), int(snap.BackgroundX*sx))

	for _, sp := range snap.Sprites {
		skin := skins.Skin(sp.Key)
		color := skin.Color
		if sp.Tint != core.ColorDefault {
			color = sp.Tint
		}
		r := skin.Rune(sp.Frame)
		if sp.Kind != KindPlayer {
			r = skin.Rune(-1)
		}

		x0 := int(math.Floor((sp.Box.X - snap.ScrollX) * sx))
		y0 := int(math.Floor((sp.Box.Y - snap.ScrollY) * sy))
		x1 := int(math.Ceil((sp.Box.Right()-snap.ScrollX)*sx)) - 1
		y1 := int(math.Ceil((sp.Box.Bottom()-snap.ScrollY)*sy)) - 1
		if x1 < x0 {
			x1 = x0
		}
		if y1 < y0 {
			y1 = y0
		}
		dst.DrawRect(core.NewRect(x0, y0, x1-x0+1, y1-y0+1), r, color)
	}
}

// renderBackground tiles the sky pattern, shifted by the parallax offset.
func renderBackground(dst *core.Screen, sky theme.Skin, offset int) {
	pattern := []rune(sky.Glyph)
	if len(pattern) == 0 {
		return
	}
	n := len(pattern)
	for y := range dst.Height() {
		for x := range dst.Width() {
			i := ((x+offset+y*7)%n + n) % n
			if pattern[i] == ' ' {
				continue
			}
			dst.SetColored(x, y, pattern[i], sky.Color)
		}
	}
}
