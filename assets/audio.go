package assets

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const SampleRate = 44100

var (
	audioOnce    sync.Once
	audioContext *audio.Context
)

// Context returns the process-wide audio context, creating it on first use.
func Context() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.CurrentContext()
		if audioContext == nil {
			audioContext = audio.NewContext(SampleRate)
		}
	})
	return audioContext
}

// SynthTone renders a sine tone as 16-bit little-endian stereo PCM, the
// format audio.Context players take. A short linear fade at both ends keeps
// it from clicking.
func SynthTone(frequency, seconds float64, sampleRate int) []byte {
	if frequency <= 0 || seconds <= 0 || sampleRate <= 0 {
		return nil
	}
	n := int(seconds * float64(sampleRate))
	fade := sampleRate / 200
	if fade*2 > n {
		fade = n / 2
	}

	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		amp := 1.0
		switch {
		case fade > 0 && i < fade:
			amp = float64(i) / float64(fade)
		case fade > 0 && i >= n-fade:
			amp = float64(n-1-i) / float64(fade)
		}
		v := amp * math.Sin(2*math.Pi*frequency*float64(i)/float64(sampleRate))
		s := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(out[i*4:], s)
		binary.LittleEndian.PutUint16(out[i*4+2:], s)
	}
	return out
}

// LoadTonePlayer creates a player for a generated tone.
func LoadTonePlayer(frequency, seconds float64) *audio.Player {
	ctx := Context()
	return ctx.NewPlayerFromBytes(SynthTone(frequency, seconds, ctx.SampleRate()))
}
