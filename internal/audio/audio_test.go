package audio

import "testing"

type switches struct{ sound, music bool }

func (s *switches) SoundEnabled() bool { return s.sound }
func (s *switches) MusicEnabled() bool { return s.music }

func TestMixerGatesEffects(t *testing.T) {
	rec := &Recorder{}
	sw := &switches{sound: false, music: true}
	m := NewMixer(rec, sw)

	m.Play(Coin, 1)
	if rec.Count("play", Coin) != 0 {
		t.Error("effects should be muted when sound is disabled")
	}

	sw.sound = true
	m.Play(Coin, 1)
	if rec.Count("play", Coin) != 1 {
		t.Error("effects should play when sound is enabled")
	}
}

func TestMixerSyncFollowsMusicSwitch(t *testing.T) {
	rec := &Recorder{}
	sw := &switches{sound: true, music: false}
	m := NewMixer(rec, sw)

	m.PlayLoop(Music, 0.4)
	if rec.Count("loop", Music) != 0 {
		t.Fatal("music should not start while disabled")
	}

	sw.music = true
	m.Sync()
	if rec.Count("loop", Music) != 1 {
		t.Errorf("Sync should start the remembered loop, events: %+v", rec.Events())
	}

	sw.music = false
	m.Sync()
	if rec.Count("stop", Music) != 1 {
		t.Errorf("Sync should stop music when switched off, events: %+v", rec.Events())
	}

	m.Stop(Music)
	sw.music = true
	before := rec.Count("loop", Music)
	m.Sync()
	if rec.Count("loop", Music) != before {
		t.Error("stopped loops should not restart on Sync")
	}
}

func TestNilMixerIsSilent(t *testing.T) {
	var m *Mixer
	m.Play(Jump, 1)
	m.PlayLoop(Music, 1)
	m.Stop(Music)
	m.Sync()

	silent := NewMixer(nil, nil)
	silent.Play(Jump, 1)
	silent.PlayLoop(Music, 1)
	silent.Sync()
}

func TestRecorderDrain(t *testing.T) {
	rec := &Recorder{}
	rec.Play(Jump, 0.6)
	rec.Stop(Music)

	events := rec.Drain()
	if len(events) != 2 || events[0] != (Event{Op: "play", Key: Jump, Volume: 0.6}) {
		t.Errorf("Drain() = %+v", events)
	}
	if len(rec.Events()) != 0 {
		t.Error("Drain should clear the log")
	}
}
