package scene

import "github.com/vovakirdan/vitron-bros/internal/core"

// Camera follows a target with linear interpolation and stays inside its
// bounds.
type Camera struct {
	ScrollX float64
	ScrollY float64
	Width   float64
	Height  float64

	bounds core.Box
	lerp   float64
}

// NewCamera creates a camera with the given viewport, bounds and follow
// smoothing. A lerp of 1 locks onto the target.
func NewCamera(width, height float64, bounds core.Box, lerp float64) *Camera {
	if lerp <= 0 || lerp > 1 {
		lerp = 1
	}
	return &Camera{Width: width, Height: height, bounds: bounds, lerp: lerp}
}

// Follow moves the camera toward centring target. With snap set it jumps
// straight there.
func (c *Camera) Follow(target core.Box, snap bool) {
	cx, cy := target.Center()
	tx := cx - c.Width/2
	ty := cy - c.Height/2
	if snap {
		c.ScrollX, c.ScrollY = tx, ty
	} else {
		c.ScrollX = core.Lerp(c.ScrollX, tx, c.lerp)
		c.ScrollY = core.Lerp(c.ScrollY, ty, c.lerp)
	}
	c.clamp()
}

func (c *Camera) clamp() {
	maxX := c.bounds.Right() - c.Width
	maxY := c.bounds.Bottom() - c.Height
	if maxX < c.bounds.X {
		maxX = c.bounds.X
	}
	if maxY < c.bounds.Y {
		maxY = c.bounds.Y
	}
	c.ScrollX = core.ClampF(c.ScrollX, c.bounds.X, maxX)
	c.ScrollY = core.ClampF(c.ScrollY, c.bounds.Y, maxY)
}
