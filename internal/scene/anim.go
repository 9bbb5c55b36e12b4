package scene

// Animation keys created for the player spritesheet.
const (
	AnimLeft  = "left"
	AnimTurn  = "turn"
	AnimRight = "right"
)

// Animation is a named frame sequence of a spritesheet.
type Animation struct {
	Key       string
	Frames    []int
	FrameRate float64
	Loop      bool
}

// PlayerAnimations returns the three animations every player spritesheet
// supports: nine frames, run-left 0..3, idle 4, run-right 5..8.
func PlayerAnimations(frameRate float64) []Animation {
	return []Animation{
		{Key: AnimLeft, Frames: []int{0, 1, 2, 3}, FrameRate: frameRate, Loop: true},
		{Key: AnimTurn, Frames: []int{4}, FrameRate: 20},
		{Key: AnimRight, Frames: []int{5, 6, 7, 8}, FrameRate: frameRate, Loop: true},
	}
}

// Animator plays one animation at a time.
type Animator struct {
	anims   map[string]Animation
	current string
	index   int
	elapsed float64
	playing bool
}

// NewAnimator registers the given animations.
func NewAnimator(anims ...Animation) *Animator {
	a := &Animator{anims: make(map[string]Animation, len(anims))}
	for _, an := range anims {
		a.anims[an.Key] = an
	}
	return a
}

// Play starts the named animation. With ignoreIfPlaying set, a request for
// the animation that is already running keeps its current frame.
// Unknown keys are ignored.
func (a *Animator) Play(key string, ignoreIfPlaying bool) {
	if _, ok := a.anims[key]; !ok {
		return
	}
	if ignoreIfPlaying && a.playing && a.current == key {
		return
	}
	a.current = key
	a.index = 0
	a.elapsed = 0
	a.playing = true
}

// Update advances the running animation by dt seconds.
func (a *Animator) Update(dt float64) {
	if !a.playing {
		return
	}
	an := a.anims[a.current]
	if an.FrameRate <= 0 || len(an.Frames) == 0 {
		return
	}
	a.elapsed += dt
	step := 1 / an.FrameRate
	for a.elapsed >= step {
		a.elapsed -= step
		a.index++
		if a.index >= len(an.Frames) {
			if an.Loop {
				a.index = 0
			} else {
				a.index = len(an.Frames) - 1
				a.playing = false
				return
			}
		}
	}
}

// Current returns the running animation key.
func (a *Animator) Current() string {
	return a.current
}

// Frame returns the spritesheet frame to draw.
func (a *Animator) Frame() int {
	an, ok := a.anims[a.current]
	if !ok || len(an.Frames) == 0 {
		return 0
	}
	return an.Frames[a.index]
}
