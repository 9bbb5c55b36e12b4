package scene

import (
	"math"
	"sort"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/vitron-bros/internal/core"
)

// Kind tells bodies apart in the world.
type Kind int

const (
	KindPlatform Kind = iota
	KindPlayer
	KindCoin
	KindBomb
)

var (
	tagPlatform = resolv.NewTag("platform")
	tagPlayer   = resolv.NewTag("player")
	tagCoin     = resolv.NewTag("coin")
	tagBomb     = resolv.NewTag("bomb")
)

func tagFor(k Kind) resolv.Tags {
	switch k {
	case KindPlayer:
		return tagPlayer
	case KindCoin:
		return tagCoin
	case KindBomb:
		return tagBomb
	default:
		return tagPlatform
	}
}

// Blocked records which sides of a body touched something during the last
// physics step.
type Blocked struct {
	Up, Down, Left, Right bool
}

// Body is an arcade physics body: an AABB with velocity and bounce.
// Static bodies never move.
type Body struct {
	Kind    Kind
	Key     string // asset key used by renderers
	Box     core.Box
	VX, VY  float64
	BounceX float64
	BounceY float64
	Static  bool
	Enabled bool // inactive bodies are neither simulated nor drawn

	CollideWorldBounds bool

	Touching Blocked // contacts with other bodies
	Blocked  Blocked // contacts with bodies or world bounds

	id    int
	shape *resolv.ConvexPolygon
}

// SetVelocity sets both velocity components.
func (b *Body) SetVelocity(vx, vy float64) {
	b.VX, b.VY = vx, vy
}

// CenterX returns the horizontal centre of the body.
func (b *Body) CenterX() float64 {
	cx, _ := b.Box.Center()
	return cx
}

// World steps dynamic bodies under gravity and separates them from static
// platforms. resolv's spatial hash supplies the candidates; overlap and
// separation are decided axis by axis on the boxes.
type World struct {
	space   *resolv.Space
	bodies  map[resolv.IShape]*Body
	bounds  core.Box
	gravity float64
	paused  bool
	nextID  int
}

// worldCell is the spatial hash cell size in world pixels.
const worldCell = 32

// NewWorld creates an empty world with the given bounds and gravity.
func NewWorld(width, height, gravity float64) *World {
	return &World{
		space:   resolv.NewSpace(int(width), int(height), worldCell, worldCell),
		bodies:  make(map[resolv.IShape]*Body),
		bounds:  core.Box{W: width, H: height},
		gravity: gravity,
	}
}

// Bounds returns the world rectangle.
func (w *World) Bounds() core.Box {
	return w.bounds
}

// Add registers an enabled body with the world.
func (w *World) Add(b *Body) *Body {
	w.nextID++
	b.id = w.nextID
	b.Enabled = true
	b.shape = resolv.NewRectangleFromTopLeft(b.Box.X, b.Box.Y, b.Box.W, b.Box.H)
	b.shape.Tags().Set(tagFor(b.Kind))
	w.space.Add(b.shape)
	w.bodies[b.shape] = b
	return b
}

// Disable hides a body and removes it from collision queries.
func (w *World) Disable(b *Body) {
	if !b.Enabled {
		return
	}
	b.Enabled = false
	b.VX, b.VY = 0, 0
	w.space.Remove(b.shape)
}

// Enable re-activates a body at (x, y) (top-left) with zero velocity.
func (w *World) Enable(b *Body, x, y float64) {
	b.Box.X, b.Box.Y = x, y
	b.VX, b.VY = 0, 0
	w.sync(b)
	if !b.Enabled {
		b.Enabled = true
		w.space.Add(b.shape)
	}
}

// Pause freezes the simulation; Step becomes a no-op.
func (w *World) Pause() { w.paused = true }

// Resume unfreezes the simulation.
func (w *World) Resume() { w.paused = false }

// Paused reports whether the simulation is frozen.
func (w *World) Paused() bool { return w.paused }

// PhysicsStep is the physics slice in seconds. It does not follow the tick
// rate, so a body never moves further per slice than it would at 60 Hz.
const PhysicsStep = 1.0 / 60.0

// Advance integrates dt seconds in equal slices no longer than PhysicsStep.
// Contact flags describe the last slice.
func (w *World) Advance(dt float64, bodies []*Body) {
	n := max(int(math.Ceil(dt/PhysicsStep-1e-9)), 1)
	slice := dt / float64(n)
	for range n {
		w.Step(slice, bodies)
	}
}

// Step integrates every enabled dynamic body by dt seconds.
func (w *World) Step(dt float64, bodies []*Body) {
	if w.paused {
		return
	}
	for _, b := range bodies {
		if !b.Enabled || b.Static {
			continue
		}
		b.Touching = Blocked{}
		b.Blocked = Blocked{}
		b.VY += w.gravity * dt

		b.Box.X += b.VX * dt
		w.sync(b)
		w.separateX(b)

		b.Box.Y += b.VY * dt
		w.sync(b)
		w.separateY(b)

		if b.CollideWorldBounds {
			w.collideBounds(b)
		}
		w.sync(b)
	}
}

// sync moves the resolv shape, which is positioned by its centre.
func (w *World) sync(b *Body) {
	b.shape.SetPosition(b.Box.Center())
}

// overlapping returns the enabled bodies with the given tag whose boxes
// intersect b, in insertion order so that stepping stays deterministic.
func (w *World) overlapping(b *Body, tag resolv.Tags) []*Body {
	var hits []*Body
	seen := make(map[*Body]bool)
	b.shape.SelectTouchingCells(1).FilterShapes().ByTags(tag).ForEach(func(shape resolv.IShape) bool {
		other, ok := w.bodies[shape]
		if ok && !seen[other] && other != b && other.Enabled && b.Box.Intersects(other.Box) {
			seen[other] = true
			hits = append(hits, other)
		}
		return true
	})
	sort.Slice(hits, func(i, j int) bool { return hits[i].id < hits[j].id })
	return hits
}

func (w *World) separateX(b *Body) {
	hit := false
	for _, p := range w.overlapping(b, tagPlatform) {
		dx, dy := b.Box.Overlap(p.Box)
		// Shallow vertical contact (standing on a tile) is left to separateY.
		if dx == 0 || dy <= dx {
			continue
		}
		bx, _ := b.Box.Center()
		px, _ := p.Box.Center()
		if bx < px {
			b.Box.X = p.Box.X - b.Box.W
			b.Touching.Right, b.Blocked.Right = true, true
		} else {
			b.Box.X = p.Box.Right()
			b.Touching.Left, b.Blocked.Left = true, true
		}
		hit = true
		w.sync(b)
	}
	if hit && ((b.VX > 0 && b.Blocked.Right) || (b.VX < 0 && b.Blocked.Left)) {
		b.VX = -b.VX * b.BounceX
	}
}

func (w *World) separateY(b *Body) {
	falling := b.VY >= 0
	hit := false
	for _, p := range w.overlapping(b, tagPlatform) {
		_, dy := b.Box.Overlap(p.Box)
		if dy == 0 {
			continue
		}
		if falling {
			b.Box.Y = p.Box.Y - b.Box.H
			b.Touching.Down, b.Blocked.Down = true, true
		} else {
			b.Box.Y = p.Box.Bottom()
			b.Touching.Up, b.Blocked.Up = true, true
		}
		hit = true
		w.sync(b)
	}
	if hit {
		b.VY = -b.VY * b.BounceY
	}
}

func (w *World) collideBounds(b *Body) {
	if b.Box.X < w.bounds.X {
		b.Box.X = w.bounds.X
		b.VX = -b.VX * b.BounceX
		b.Blocked.Left = true
	} else if b.Box.Right() > w.bounds.Right() {
		b.Box.X = w.bounds.Right() - b.Box.W
		b.VX = -b.VX * b.BounceX
		b.Blocked.Right = true
	}
	if b.Box.Y < w.bounds.Y {
		b.Box.Y = w.bounds.Y
		b.VY = -b.VY * b.BounceY
		b.Blocked.Up = true
	} else if b.Box.Bottom() > w.bounds.Bottom() {
		b.Box.Y = w.bounds.Bottom() - b.Box.H
		b.VY = -b.VY * b.BounceY
		b.Blocked.Down = true
	}
}

// Overlaps returns the enabled bodies of kind k that intersect b.
func (w *World) Overlaps(b *Body, k Kind) []*Body {
	if !b.Enabled {
		return nil
	}
	return w.overlapping(b, tagFor(k))
}
