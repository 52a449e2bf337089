// Package apu is the $1010 runtime host: 64 KiB of memory holding the
// sequencer registers and voice gates, and a 16-step sequencer that calls
// out to a Voices implementation for every gate it plays.
//
// An APU is not safe for concurrent use.
package apu

import (
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/lhaig/tenten/internal/hexbe"
	"github.com/lhaig/tenten/internal/ir"
	"github.com/lhaig/tenten/internal/memmap"
)

// MemSize is the size of the host memory in bytes.
const MemSize = 0x10000

// DefaultTempo is used while SEQ_TEMPO holds 0.
const DefaultTempo = 120

// Parameter values used when the register is 0.
const (
	DefaultKickPitch  = 36
	DefaultSnareTone  = 180
	DefaultSnareSnap  = 100
	DefaultBassFM     = 40
	DefaultNoiseDecay = 8
)

// Voices receives triggers from the sequencer.
type Voices interface {
	TriggerKick(pitch int)
	TriggerSnare(tone, snap int)
	TriggerLead(note int)
	TriggerBass(note, fm int)
	TriggerNoise(decay int)
}

// APU is the sequencer and its memory.
type APU struct {
	mem    [MemSize]byte
	voices Voices
}

// New creates an APU with cleared memory and the default tempo. A nil
// voices value discards triggers.
func New(voices Voices) *APU {
	a := &APU{}
	a.SetVoices(voices)
	a.Reset()
	return a
}

// SetVoices replaces the trigger receiver.
func (a *APU) SetVoices(voices Voices) {
	if voices == nil {
		voices = discard{}
	}
	a.voices = voices
}

// Reset clears memory, stops playback and restores the default tempo.
func (a *APU) Reset() {
	a.mem = [MemSize]byte{}
	a.mem[memmap.SeqTempo] = DefaultTempo
}

// Read returns the byte at addr, or 0 outside memory.
func (a *APU) Read(addr int) int {
	if addr < 0 || addr >= MemSize {
		return 0
	}
	return int(a.mem[addr])
}

// Write stores the low byte of value at addr. Writes outside memory are
// dropped.
func (a *APU) Write(addr, value int) {
	if addr < 0 || addr >= MemSize {
		return
	}
	a.mem[addr] = byte(value)
}

// Poke is Write under the name pack loaders expect.
func (a *APU) Poke(addr, value int) { a.Write(addr, value) }

// Slice copies length bytes starting at start.
func (a *APU) Slice(start, length int) []byte {
	out := make([]byte, length)
	for i := range out {
		out[i] = byte(a.Read(start + i))
	}
	return out
}

// Start sets the play bit. The current step is kept.
func (a *APU) Start() { a.mem[memmap.SeqCtrl] |= memmap.CtrlPlay }

// Stop clears the play bit.
func (a *APU) Stop() { a.mem[memmap.SeqCtrl] &^= memmap.CtrlPlay }

// IsPlaying reports whether the play bit is set.
func (a *APU) IsPlaying() bool { return a.mem[memmap.SeqCtrl]&memmap.CtrlPlay != 0 }

// IsLooping reports whether the loop bit is set.
func (a *APU) IsLooping() bool { return a.mem[memmap.SeqCtrl]&memmap.CtrlLoop != 0 }

// Step returns the step the next Tick plays.
func (a *APU) Step() int { return int(a.mem[memmap.SeqStep]) % memmap.Steps }

// SetStep moves the playhead.
func (a *APU) SetStep(step int) { a.mem[memmap.SeqStep] = byte(step % memmap.Steps) }

// Tempo returns the tempo in BPM.
func (a *APU) Tempo() int {
	if bpm := a.mem[memmap.SeqTempo]; bpm != 0 {
		return int(bpm)
	}
	return DefaultTempo
}

// SetTempo stores bpm in SEQ_TEMPO.
func (a *APU) SetTempo(bpm int) { a.Write(memmap.SeqTempo, bpm) }

// StepDuration is the length of one sixteenth note at the current tempo.
func (a *APU) StepDuration() time.Duration {
	return time.Minute / time.Duration(a.Tempo()*4)
}

// Tick plays the current step and advances the playhead. It returns false
// when the sequencer is stopped, or when the pattern wrapped without the
// loop bit, which also clears the play bit.
func (a *APU) Tick() bool {
	if !a.IsPlaying() {
		return false
	}

	step := a.Step()
	a.playStep(step)

	next := (step + 1) % memmap.Steps
	a.mem[memmap.SeqStep] = byte(next)
	if next == 0 && !a.IsLooping() {
		a.Stop()
		return false
	}
	return true
}

func (a *APU) playStep(step int) {
	for _, v := range memmap.Voices {
		gate := a.Read(v.Base + step)
		if gate == 0 {
			continue
		}
		switch v.Name {
		case "kick":
			a.voices.TriggerKick(a.param(memmap.KickPitch, DefaultKickPitch))
		case "snare":
			a.voices.TriggerSnare(a.param(memmap.SnareTone, DefaultSnareTone), a.param(memmap.SnareSnap, DefaultSnareSnap))
		case "lead":
			a.voices.TriggerLead(gate)
		case "bass":
			a.voices.TriggerBass(gate, a.param(memmap.BassFM, DefaultBassFM))
		case "noise":
			a.voices.TriggerNoise(a.param(memmap.NoiseDecay, DefaultNoiseDecay))
		}
	}
}

func (a *APU) param(addr, def int) int {
	if v := a.Read(addr); v != 0 {
		return v
	}
	return def
}

// LoadIR applies every WRITE of the program in order.
func (a *APU) LoadIR(p ir.Program) {
	for _, in := range p.Writes() {
		a.Write(in.Addr(), in.Value())
	}
}

// LoadHex reads an Intel HEX image and copies its data records into memory.
// Nothing is written unless the whole image parses.
func (a *APU) LoadHex(r io.Reader) error {
	records, err := hexbe.Parse(r)
	if err != nil {
		return errors.Wrap(err, "loading hex image")
	}
	for _, rec := range records {
		if rec.Type != hexbe.TypeData {
			continue
		}
		if rec.Addr+len(rec.Data) > MemSize {
			return errors.Errorf("record at $%04X runs past end of memory", rec.Addr)
		}
	}
	for _, rec := range records {
		if rec.Type != hexbe.TypeData {
			continue
		}
		copy(a.mem[rec.Addr:], rec.Data)
	}
	return nil
}

type discard struct{}

func (discard) TriggerKick(int)       {}
func (discard) TriggerSnare(int, int) {}
func (discard) TriggerLead(int)       {}
func (discard) TriggerBass(int, int)  {}
func (discard) TriggerNoise(int)      {}
