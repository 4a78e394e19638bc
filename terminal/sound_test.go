package terminal

import (
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceLength(t *testing.T) {
	streamer, err := sequence(hitTones)
	require.NoError(t, err)

	want := 0
	for _, tone := range hitTones {
		want += sampleRate.N(tone.duration)
	}

	buf := make([][2]float64, 512)
	got := 0
	for {
		n, ok := streamer.Stream(buf)
		got += n
		if !ok {
			break
		}
	}
	assert.Equal(t, want, got)
}

func TestSequenceRejectsBadTone(t *testing.T) {
	_, err := sequence([]tone{{freq: float64(sampleRate), duration: 1}})
	assert.Error(t, err)
}

func TestSilentSound(t *testing.T) {
	var s *Sound
	assert.NotPanics(t, func() {
		s.play(fireTones)
		s.Close()
	})

	idle := &Sound{mixer: &beep.Mixer{}}
	assert.NotPanics(t, func() { idle.play(clearTones) })
	assert.Equal(t, 0, idle.mixer.Len())
}
