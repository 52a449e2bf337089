// Package memmap describes the $1010 audio memory map: the five voice
// regions, the sequencer registers and the names used when annotating
// generated code.
package memmap

import (
	"fmt"
	"strings"
)

// Audio region bounds. Every register lives in [AudioStart, AudioEnd).
const (
	AudioStart = 0x1000
	AudioEnd   = 0x1600
	AudioSize  = AudioEnd - AudioStart

	Steps = 16
)

// Sequencer registers.
const (
	SeqCtrl  = 0x1500
	SeqTempo = 0x1501
	SeqStep  = 0x1502
	SeqSwing = 0x1503
)

// SEQ_CTRL bits.
const (
	CtrlPlay = 0x01
	CtrlLoop = 0x02
)

// Voice parameter registers read by the runtime host.
const (
	KickPitch  = 0x1010
	SnareTone  = 0x1030
	SnareSnap  = 0x1040
	LeadArp    = 0x1110
	BassFM     = 0x1210
	BassFilt   = 0x1220
	NoiseDecay = 0x1310
	NoiseType  = 0x1320
)

// Voice identifies one of the five fixed sound sources.
type Voice struct {
	Name  string
	Base  int
	Index int
	span  int // bytes annotated as belonging to the voice
}

// Voices in index order. Index is the value the WebAssembly get_gate
// accessor and the runtime host use.
var Voices = []Voice{
	{Name: "kick", Base: 0x1000, Index: 0, span: 0x20},
	{Name: "snare", Base: 0x1020, Index: 1, span: 0x30},
	{Name: "lead", Base: 0x1100, Index: 2, span: 0x20},
	{Name: "bass", Base: 0x1200, Index: 3, span: 0x30},
	{Name: "noise", Base: 0x1300, Index: 4, span: 0x30},
}

// VoiceNames returns the valid voice names in index order.
func VoiceNames() []string {
	names := make([]string, len(Voices))
	for i, v := range Voices {
		names[i] = v.Name
	}
	return names
}

// LookupVoice returns the voice with the given name.
func LookupVoice(name string) (Voice, bool) {
	for _, v := range Voices {
		if v.Name == name {
			return v, true
		}
	}
	return Voice{}, false
}

// InAudioRegion reports whether addr is inside the audio MMIO region.
func InAudioRegion(addr int) bool {
	return addr >= AudioStart && addr < AudioEnd
}

// RegisterName returns a readable name for addr, e.g. "KICK[4]" or
// "SEQ_TEMPO", or "" when the address has no name.
func RegisterName(addr int) string {
	for _, v := range Voices {
		if addr >= v.Base && addr < v.Base+v.span {
			return fmt.Sprintf("%s[%d]", strings.ToUpper(v.Name), addr-v.Base)
		}
	}
	switch addr {
	case SeqCtrl:
		return "SEQ_CTRL"
	case SeqTempo:
		return "SEQ_TEMPO"
	case SeqSwing:
		return "SEQ_SWING"
	}
	return ""
}
