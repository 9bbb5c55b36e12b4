// Package audio defines the sound boundary between the game scene and the
// front-ends. The scene only names sounds by key; back-ends decide how (and
// whether) to make noise.
package audio

import "sync"

// Sound keys loaded by the game scene.
const (
	Music    = "music"
	Jump     = "jump"
	Coin     = "coin"
	GameOver = "gameover"
	Powerup  = "powerup"
)

// Keys lists every sound key the scene may play.
var Keys = []string{Music, Jump, Coin, GameOver, Powerup}

// Player plays named sounds.
type Player interface {
	// Play fires a one-shot sound effect.
	Play(key string, volume float64)
	// PlayLoop starts a looping track, replacing any running loop of the same key.
	PlayLoop(key string, volume float64)
	// Stop halts a looping track. Unknown keys are ignored.
	Stop(key string)
}

// Switches reports the user's sound preferences.
type Switches interface {
	SoundEnabled() bool
	MusicEnabled() bool
}

// Mixer gates effects and music on the user's switches before forwarding
// to the real player.
type Mixer struct {
	out      Player
	switches Switches

	mu      sync.Mutex
	looping map[string]float64
}

// NewMixer wraps out. A nil out or switches makes the mixer silent or
// ungated respectively.
func NewMixer(out Player, switches Switches) *Mixer {
	return &Mixer{
		out:      out,
		switches: switches,
		looping:  make(map[string]float64),
	}
}

// Play forwards an effect when sound is enabled.
func (m *Mixer) Play(key string, volume float64) {
	if m == nil || m.out == nil {
		return
	}
	if m.switches != nil && !m.switches.SoundEnabled() {
		return
	}
	m.out.Play(key, volume)
}

// PlayLoop starts music when music is enabled. The loop is remembered so
// Sync can start it later if music is switched on mid-run.
func (m *Mixer) PlayLoop(key string, volume float64) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.looping[key] = volume
	m.mu.Unlock()

	if m.out == nil {
		return
	}
	if m.switches != nil && !m.switches.MusicEnabled() {
		return
	}
	m.out.PlayLoop(key, volume)
}

// Stop halts a loop and forgets it.
func (m *Mixer) Stop(key string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	delete(m.looping, key)
	m.mu.Unlock()

	if m.out != nil {
		m.out.Stop(key)
	}
}

// Sync reapplies the music switch to the running loops. Call it after the
// user toggles music.
func (m *Mixer) Sync() {
	if m == nil || m.out == nil {
		return
	}
	m.mu.Lock()
	loops := make(map[string]float64, len(m.looping))
	for k, v := range m.looping {
		loops[k] = v
	}
	m.mu.Unlock()

	on := m.switches == nil || m.switches.MusicEnabled()
	for key, volume := range loops {
		if on {
			m.out.PlayLoop(key, volume)
		} else {
			m.out.Stop(key)
		}
	}
}

// Event is one call recorded by Recorder.
type Event struct {
	Op     string // "play", "loop" or "stop"
	Key    string
	Volume float64
}

// Recorder is a Player that remembers every call. The terminal front-end
// uses it to flash sound cues; tests use it to assert on audio.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Play records a one-shot.
func (r *Recorder) Play(key string, volume float64) {
	r.record(Event{Op: "play", Key: key, Volume: volume})
}

// PlayLoop records a loop start.
func (r *Recorder) PlayLoop(key string, volume float64) {
	r.record(Event{Op: "loop", Key: key, Volume: volume})
}

// Stop records a loop stop.
func (r *Recorder) Stop(key string) {
	r.record(Event{Op: "stop", Key: key})
}

func (r *Recorder) record(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of the recorded calls.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Drain returns the recorded calls and clears the log.
func (r *Recorder) Drain() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.events
	r.events = nil
	return out
}

// Count returns how many times op was recorded for key.
func (r *Recorder) Count(op, key string) int {
	n := 0
	for _, e := range r.Events() {
		if e.Op == op && e.Key == key {
			n++
		}
	}
	return n
}
