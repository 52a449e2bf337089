// Package synth turns APU triggers into 16-bit stereo PCM. A Mixer owns the
// sequencer's timing: it ticks the APU every step's worth of samples while
// it is read, so any io.Reader based audio player can drive playback.
package synth

import (
	"encoding/binary"
	"math"
	"math/rand"
	"sync"

	"github.com/lhaig/tenten/internal/apu"
	"github.com/lhaig/tenten/internal/memmap"
)

// DefaultSampleRate is the rate used by the player.
const DefaultSampleRate = 44100

// BytesPerFrame is one little-endian int16 sample for each of two channels.
const BytesPerFrame = 4

const masterGain = 0.35

// Mixer renders an APU as PCM. It is safe for concurrent use; the audio
// device reads from its own goroutine while callers start and stop playback.
type Mixer struct {
	mu         sync.Mutex
	apu        *apu.APU
	bank       bank
	sampleRate int
	countdown  float64 // samples until the next step
}

// NewMixer attaches a mixer to a. The mixer becomes a's voice receiver.
func NewMixer(a *apu.APU, sampleRate int) *Mixer {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	m := &Mixer{
		apu:        a,
		sampleRate: sampleRate,
		bank:       bank{rng: rand.New(rand.NewSource(1010))},
	}
	a.SetVoices(&m.bank)
	return m
}

// SampleRate returns the output rate in Hz.
func (m *Mixer) SampleRate() int { return m.sampleRate }

// Start begins playback from the APU's current step.
func (m *Mixer) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apu.Start()
	m.countdown = 0
}

// Stop halts the sequencer. Sounds already triggered ring out.
func (m *Mixer) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apu.Stop()
}

// IsPlaying reports whether the sequencer is running.
func (m *Mixer) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.apu.IsPlaying()
}

// Step returns the step that plays next.
func (m *Mixer) Step() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.apu.Step()
}

// Gates returns the step bytes of every voice in memmap.Voices order.
func (m *Mixer) Gates() [][memmap.Steps]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][memmap.Steps]int, len(memmap.Voices))
	for i, v := range memmap.Voices {
		for step := range out[i] {
			out[i][step] = m.apu.Read(v.Base + step)
		}
	}
	return out
}

// Done reports whether the sequencer has stopped and every sound has
// decayed.
func (m *Mixer) Done() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.apu.IsPlaying() && len(m.bank.active) == 0
}

// Read fills p with whole frames and never returns an error. Silence is
// produced while nothing is playing.
func (m *Mixer) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	frames := len(p) / BytesPerFrame
	dt := 1 / float64(m.sampleRate)
	for i := 0; i < frames; i++ {
		m.advance()
		s := toInt16(m.bank.mix(dt) * masterGain)
		off := i * BytesPerFrame
		binary.LittleEndian.PutUint16(p[off:], uint16(s))
		binary.LittleEndian.PutUint16(p[off+2:], uint16(s))
	}
	return frames * BytesPerFrame, nil
}

// advance ticks the sequencer when a step boundary is reached.
func (m *Mixer) advance() {
	if !m.apu.IsPlaying() {
		return
	}
	if m.countdown <= 0 {
		m.apu.Tick()
		m.countdown += m.apu.StepDuration().Seconds() * float64(m.sampleRate)
	}
	m.countdown--
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}
