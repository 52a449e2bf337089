package synth

import (
	"math"
	"math/rand"
)

// sound is one triggered note. next returns the sample at the current
// position and advances by dt seconds; done reports when it has decayed.
type sound interface {
	next(dt float64) float64
	done() bool
}

// MidiFreq converts a note number to Hz, A4 (69) = 440.
func MidiFreq(note int) float64 {
	return 440 * math.Pow(2, float64(note-69)/12)
}

// envelope is an exponential decay cut off after length seconds.
type envelope struct {
	t      float64
	length float64
	decay  float64
}

func (e *envelope) level() float64 {
	return math.Exp(-e.t / e.decay)
}

func (e *envelope) advance(dt float64) { e.t += dt }

func (e *envelope) done() bool { return e.t >= e.length }

// kick is a sine falling from four times its pitch.
type kick struct {
	envelope
	phase float64
	base  float64
}

func newKick(pitch int) *kick {
	return &kick{envelope: envelope{length: 0.5, decay: 0.12}, base: MidiFreq(pitch)}
}

func (k *kick) next(dt float64) float64 {
	freq := k.base * (1 + 3*math.Exp(-k.t/0.02))
	k.phase += 2 * math.Pi * freq * dt
	v := math.Sin(k.phase) * k.level()
	k.advance(dt)
	return v
}

// snare mixes a tone at tone Hz with noise scaled by snap.
type snare struct {
	envelope
	phase float64
	tone  float64
	snap  float64
	rng   *rand.Rand
}

func newSnare(tone, snap int, rng *rand.Rand) *snare {
	return &snare{
		envelope: envelope{length: 0.3, decay: 0.06},
		tone:     float64(tone),
		snap:     float64(snap) / 255,
		rng:      rng,
	}
}

func (s *snare) next(dt float64) float64 {
	s.phase += 2 * math.Pi * s.tone * dt
	body := math.Sin(s.phase) * (1 - s.snap)
	noise := (s.rng.Float64()*2 - 1) * s.snap
	v := (body + noise) * s.level()
	s.advance(dt)
	return v
}

// lead is a square wave.
type lead struct {
	envelope
	phase float64
	freq  float64
}

func newLead(note int) *lead {
	return &lead{envelope: envelope{length: 0.4, decay: 0.15}, freq: MidiFreq(note)}
}

func (l *lead) next(dt float64) float64 {
	l.phase += l.freq * dt
	l.phase -= math.Floor(l.phase)
	v := 0.5 * l.level()
	if l.phase >= 0.5 {
		v = -v
	}
	l.advance(dt)
	return v
}

// bass is a two-operator FM tone; fm sets the modulation index.
type bass struct {
	envelope
	carrier   float64
	modulator float64
	freq      float64
	index     float64
}

func newBass(note, fm int) *bass {
	return &bass{
		envelope: envelope{length: 0.5, decay: 0.2},
		freq:     MidiFreq(note),
		index:    float64(fm) / 32,
	}
}

func (b *bass) next(dt float64) float64 {
	b.modulator += 2 * math.Pi * b.freq * 2 * dt
	b.carrier += 2 * math.Pi * b.freq * dt
	v := math.Sin(b.carrier+b.index*b.level()*math.Sin(b.modulator)) * b.level()
	b.advance(dt)
	return v
}

// noise is white noise; decay is in hundredths of a second.
type noise struct {
	envelope
	rng *rand.Rand
}

func newNoise(decay int, rng *rand.Rand) *noise {
	if decay < 1 {
		decay = 1
	}
	d := float64(decay) / 100
	return &noise{envelope: envelope{length: d * 5, decay: d}, rng: rng}
}

func (n *noise) next(dt float64) float64 {
	v := (n.rng.Float64()*2 - 1) * 0.4 * n.level()
	n.advance(dt)
	return v
}

// bank collects the sounds the APU triggers.
type bank struct {
	active []sound
	rng    *rand.Rand
}

func (b *bank) TriggerKick(pitch int)       { b.add(newKick(pitch)) }
func (b *bank) TriggerSnare(tone, snap int) { b.add(newSnare(tone, snap, b.rng)) }
func (b *bank) TriggerLead(note int)        { b.add(newLead(note)) }
func (b *bank) TriggerBass(note, fm int)    { b.add(newBass(note, fm)) }
func (b *bank) TriggerNoise(decay int)      { b.add(newNoise(decay, b.rng)) }

func (b *bank) add(s sound) { b.active = append(b.active, s) }

// mix renders one sample from every active sound and drops finished ones.
func (b *bank) mix(dt float64) float64 {
	var sum float64
	live := b.active[:0]
	for _, s := range b.active {
		sum += s.next(dt)
		if !s.done() {
			live = append(live, s)
		}
	}
	b.active = live
	return sum
}
