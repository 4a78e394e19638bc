package terminal

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/gallery/ecs"
	"github.com/plus3/gallery/gallery"
)

const sampleRate = beep.SampleRate(44100)

type tone struct {
	freq     float64
	duration time.Duration
}

var (
	fireTones  = []tone{{660, 40 * time.Millisecond}}
	hitTones   = []tone{{880, 60 * time.Millisecond}, {1320, 60 * time.Millisecond}}
	clearTones = []tone{{523, 90 * time.Millisecond}, {659, 90 * time.Millisecond}, {784, 90 * time.Millisecond}, {1047, 180 * time.Millisecond}}
)

// Sound plays short tones for game events through the system speaker. A
// zero Sound, or one whose speaker failed to open, is silent.
type Sound struct {
	mixer  *beep.Mixer
	volume float64
	ready  bool
}

// NewSound opens the speaker. volume is in beep's exponential (base 2)
// scale; 0 leaves tones unchanged and negative values make them quieter.
func NewSound(volume float64) (*Sound, error) {
	s := &Sound{mixer: &beep.Mixer{}, volume: volume}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return s, fmt.Errorf("failed to open speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.ready = true
	return s, nil
}

// Subscribe hooks the sounds up to gallery events.
func (s *Sound) Subscribe(events *ecs.Events) {
	ecs.On(events, func(frame *ecs.UpdateFrame, ev gallery.ProjectileFired) {
		s.play(fireTones)
	})
	ecs.On(events, func(frame *ecs.UpdateFrame, ev gallery.TargetDestroyed) {
		s.play(hitTones)
	})
	ecs.On(events, func(frame *ecs.UpdateFrame, ev gallery.RoundOver) {
		if ev.Cleared {
			s.play(clearTones)
		}
	})
}

func (s *Sound) play(tones []tone) {
	if s == nil || !s.ready {
		return
	}
	streamer, err := sequence(tones)
	if err != nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(&effects.Volume{Streamer: streamer, Base: 2, Volume: s.volume})
	speaker.Unlock()
}

// sequence renders tones back to back.
func sequence(tones []tone) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		sine, err := generators.SineTone(sampleRate, t.freq)
		if err != nil {
			return nil, fmt.Errorf("tone %gHz: %w", t.freq, err)
		}
		parts = append(parts, beep.Take(sampleRate.N(t.duration), sine))
	}
	return beep.Seq(parts...), nil
}

// Close silences everything and releases the speaker.
func (s *Sound) Close() {
	if s == nil || !s.ready {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.ready = false
}
