package apu

import (
	"github.com/pkg/errors"
	"github.com/sarchlab/akita/v4/sim"
)

// StepFreq is the sequencer step rate, four steps per beat.
func StepFreq(bpm int) sim.Freq {
	return sim.Freq(float64(bpm*4) / 60)
}

// ClockBuilder creates step clocks.
type ClockBuilder struct {
	engine   sim.Engine
	freq     sim.Freq
	maxSteps int
}

// WithEngine sets the engine.
func (b ClockBuilder) WithEngine(engine sim.Engine) ClockBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the step rate.
func (b ClockBuilder) WithFreq(freq sim.Freq) ClockBuilder {
	b.freq = freq
	return b
}

// WithMaxSteps stops the clock after n steps. Zero means no limit.
func (b ClockBuilder) WithMaxSteps(n int) ClockBuilder {
	b.maxSteps = n
	return b
}

// Build creates a clock that drives apu.
func (b ClockBuilder) Build(name string, apu *APU) *Clock {
	c := &Clock{apu: apu, maxSteps: b.maxSteps}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)
	return c
}

// Clock ticks an APU once per cycle in virtual time.
type Clock struct {
	*sim.TickingComponent

	apu      *APU
	maxSteps int
	steps    int
}

// Tick plays one step.
func (c *Clock) Tick() (madeProgress bool) {
	if c.maxSteps > 0 && c.steps >= c.maxSteps {
		return false
	}
	if !c.apu.IsPlaying() {
		return false
	}
	c.steps++
	return c.apu.Tick()
}

// Steps returns the number of steps played.
func (c *Clock) Steps() int { return c.steps }

// Run schedules the first tick and runs the engine until the clock stops.
func (c *Clock) Run() error {
	c.TickNow()
	return c.Engine.Run()
}

// Trigger is one voice trigger observed during a simulation.
type Trigger struct {
	Time  sim.VTimeInSec
	Step  int
	Voice string
	Args  []int
}

// Simulate plays apu on a serial engine for at most maxSteps steps at its
// current tempo and returns every trigger with its virtual time. Triggers
// are still forwarded to the APU's voices.
func Simulate(apu *APU, maxSteps int) ([]Trigger, error) {
	if maxSteps <= 0 {
		return nil, errors.Errorf("step limit must be positive, got %d", maxSteps)
	}

	engine := sim.NewSerialEngine()
	rec := &recorder{apu: apu, next: apu.voices, engine: engine}
	apu.voices = rec
	defer func() { apu.voices = rec.next }()

	clock := ClockBuilder{}.
		WithEngine(engine).
		WithFreq(StepFreq(apu.Tempo())).
		WithMaxSteps(maxSteps).
		Build("APU.Clock", apu)
	if err := clock.Run(); err != nil {
		return nil, errors.Wrap(err, "running step clock")
	}
	return rec.log, nil
}

// recorder logs triggers and passes them on.
type recorder struct {
	apu    *APU
	next   Voices
	engine sim.Engine
	log    []Trigger
}

func (r *recorder) record(voice string, args ...int) {
	r.log = append(r.log, Trigger{
		Time:  r.engine.CurrentTime(),
		Step:  r.apu.Step(),
		Voice: voice,
		Args:  args,
	})
}

func (r *recorder) TriggerKick(pitch int) {
	r.record("kick", pitch)
	r.next.TriggerKick(pitch)
}

func (r *recorder) TriggerSnare(tone, snap int) {
	r.record("snare", tone, snap)
	r.next.TriggerSnare(tone, snap)
}

func (r *recorder) TriggerLead(note int) {
	r.record("lead", note)
	r.next.TriggerLead(note)
}

func (r *recorder) TriggerBass(note, fm int) {
	r.record("bass", note, fm)
	r.next.TriggerBass(note, fm)
}

func (r *recorder) TriggerNoise(decay int) {
	r.record("noise", decay)
	r.next.TriggerNoise(decay)
}
