package desktop

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/vovakirdan/vitron-bros/internal/audio"
)

// SampleRate is the audio context sample rate.
const SampleRate = 44100

// Note frequencies used by the synthesized sounds.
const (
	noteG3 = 196.00
	noteC4 = 261.63
	noteE4 = 329.63
	noteG4 = 392.00
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	noteB5 = 987.77
	noteC6 = 1046.50
	noteE6 = 1318.51
)

// voice is one note of a synthesized sound.
type voice struct {
	freq  float64
	dur   float64
	amp   float64
	decay float64
}

// sounds maps every scene sound key to its notes, played back to back.
var sounds = map[string][]voice{
	audio.Jump: {
		{freq: noteC5, dur: 0.06, amp: 4000, decay: 6},
		{freq: noteG5, dur: 0.08, amp: 4000, decay: 8},
	},
	audio.Coin: {
		{freq: noteB5, dur: 0.07, amp: 3500, decay: 2},
		{freq: noteE6, dur: 0.25, amp: 3500, decay: 6},
	},
	audio.Powerup: {
		{freq: noteC5, dur: 0.07, amp: 3500, decay: 3},
		{freq: noteE5, dur: 0.07, amp: 3500, decay: 3},
		{freq: noteG5, dur: 0.07, amp: 3500, decay: 3},
		{freq: noteC6, dur: 0.15, amp: 3500, decay: 4},
	},
	audio.GameOver: {
		{freq: noteG4, dur: 0.2, amp: 4000, decay: 3},
		{freq: noteE4, dur: 0.2, amp: 4000, decay: 3},
		{freq: noteC4, dur: 0.2, amp: 4000, decay: 3},
		{freq: noteG3, dur: 0.5, amp: 4000, decay: 2},
	},
	audio.Music: {
		{freq: noteC4, dur: 0.25, amp: 2000, decay: 2},
		{freq: noteE4, dur: 0.25, amp: 2000, decay: 2},
		{freq: noteG4, dur: 0.25, amp: 2000, decay: 2},
		{freq: noteC5, dur: 0.25, amp: 2000, decay: 2},
		{freq: noteG4, dur: 0.25, amp: 2000, decay: 2},
		{freq: noteE4, dur: 0.25, amp: 2000, decay: 2},
	},
}

// tone renders one decaying sine note as 16-bit little-endian stereo PCM.
func tone(v voice) []byte {
	n := int(float64(SampleRate) * v.dur)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		s := int16(math.Sin(2*math.Pi*v.freq*t) * v.amp * math.Exp(-v.decay*t))
		buf[4*i] = byte(s)
		buf[4*i+1] = byte(s >> 8)
		buf[4*i+2] = byte(s)
		buf[4*i+3] = byte(s >> 8)
	}
	return buf
}

// render concatenates the notes of a sound.
func render(voices []voice) []byte {
	var buf []byte
	for _, v := range voices {
		buf = append(buf, tone(v)...)
	}
	return buf
}

// Synth is an audio.Player that plays synthesized tones through Ebitengine.
// Effects restart on every Play; loops run until Stop.
type Synth struct {
	ctx *ebaudio.Context

	mu      sync.Mutex
	effects map[string]*ebaudio.Player
	loops   map[string]*ebaudio.Player
}

var _ audio.Player = (*Synth)(nil)

// NewSynth renders every sound up front. It reuses the process-wide audio
// context when one exists.
func NewSynth() (*Synth, error) {
	ctx := ebaudio.CurrentContext()
	if ctx == nil {
		ctx = ebaudio.NewContext(SampleRate)
	}
	s := &Synth{
		ctx:     ctx,
		effects: make(map[string]*ebaudio.Player),
		loops:   make(map[string]*ebaudio.Player),
	}
	for key, voices := range sounds {
		buf := render(voices)
		if key == audio.Music {
			loop := ebaudio.NewInfiniteLoop(bytes.NewReader(buf), int64(len(buf)))
			p, err := ctx.NewPlayer(loop)
			if err != nil {
				return nil, fmt.Errorf("desktop: cannot create %s player: %w", key, err)
			}
			s.loops[key] = p
			continue
		}
		s.effects[key] = ctx.NewPlayerFromBytes(buf)
	}
	return s, nil
}

// Play restarts an effect at the given volume.
func (s *Synth) Play(key string, volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.effects[key]
	if !ok {
		return
	}
	p.SetVolume(volume)
	if err := p.Rewind(); err != nil {
		return
	}
	p.Play()
}

// PlayLoop starts a loop from the top, replacing a running one.
func (s *Synth) PlayLoop(key string, volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.loops[key]
	if !ok {
		return
	}
	p.SetVolume(volume)
	if err := p.Rewind(); err != nil {
		return
	}
	p.Play()
}

// Stop pauses a loop.
func (s *Synth) Stop(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.loops[key]; ok {
		p.Pause()
	}
}

// Close releases every player.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, group := range []map[string]*ebaudio.Player{s.effects, s.loops} {
		for _, p := range group {
			p.Pause()
			_ = p.Close()
		}
	}
}
