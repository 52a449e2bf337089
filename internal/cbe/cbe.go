// Package cbe emits C for embedded targets: register #defines, an
// audio_init function with one volatile store per WRITE, and sequencer
// control functions.
package cbe

import (
	"fmt"
	"strings"

	"github.com/lhaig/tenten/internal/ir"
)

// register is a named MMIO register, as an offset from AUDIO_BASE.
type register struct {
	name   string
	offset int
}

var registers = []register{
	{"KICK_GATE", 0x000},
	{"KICK_PITCH", 0x010},
	{"SNARE_GATE", 0x020},
	{"SNARE_TONE", 0x030},
	{"SNARE_SNAP", 0x040},
	{"LEAD_GATE", 0x100},
	{"LEAD_ARP", 0x110},
	{"BASS_GATE", 0x200},
	{"BASS_FM", 0x210},
	{"BASS_FILT", 0x220},
	{"NOISE_GATE", 0x300},
	{"NOISE_DECAY", 0x310},
	{"NOISE_TYPE", 0x320},
	{"SEQ_CTRL", 0x500},
	{"SEQ_TEMPO", 0x501},
	{"SEQ_STEP", 0x502},
	{"SEQ_SWING", 0x503},
}

const footer = `}

void seq_start(void) {
    *SEQ_CTRL = 0x03;  // loop + play
}

void seq_stop(void) {
    *SEQ_CTRL = 0x00;
}

// Call this from your main loop or timer ISR
void seq_tick(void) {
    uint8_t step = *SEQ_STEP;

    // Trigger voices based on gate values
    // (Implement your synthesis here)

    // Advance step
    *SEQ_STEP = (step + 1) & 0x0F;
}
`

type generator struct {
	sb strings.Builder
}

// Generate produces C source from an IR program.
func Generate(p ir.Program, opts ir.EmitOptions) string {
	opts = opts.WithDefaults()
	g := &generator{}

	g.emitLine("/**")
	g.emitLinef(" * %s", opts.Title)
	g.emitLine(" * Generated by $1010 Compiler")
	g.emitLine(" * Target: C (embedded)")
	g.emitLine(" */")
	g.emitLine("")
	g.emitLine("#include <stdint.h>")
	g.emitLine("")
	g.emitLine("// Audio MMIO base address (adjust for your platform)")
	g.emitLine("#define AUDIO_BASE 0x1000")
	g.emitLine("")
	g.emitLine("// Memory-mapped registers")
	for _, r := range registers {
		g.emitLinef("#define %-12s ((volatile uint8_t*)(AUDIO_BASE + 0x%03x))", r.name, r.offset)
	}
	g.emitLine("")
	g.emitLine("void audio_init(void) {")

	for _, in := range p.Writes() {
		g.emitLinef("    *((volatile uint8_t*)0x%x) = %d;", in.Addr(), in.Value())
	}

	g.sb.WriteString(footer)
	return g.sb.String()
}

func (g *generator) emitLine(s string) {
	g.sb.WriteString(s)
	g.sb.WriteString("\n")
}

func (g *generator) emitLinef(format string, args ...any) {
	g.sb.WriteString(fmt.Sprintf(format, args...))
	g.sb.WriteString("\n")
}
