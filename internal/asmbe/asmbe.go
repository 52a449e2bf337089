// Package asmbe emits MTMC-16 assembly. The program is a fixed skeleton:
// main calls audio_init (tempo and swing registers), load_patterns (every
// audio-region byte) and seq_start, then polls the joystick until a button
// stops the sequencer.
package asmbe

import (
	"fmt"
	"strings"

	"github.com/lhaig/tenten/internal/ir"
	"github.com/lhaig/tenten/internal/memmap"
)

type generator struct {
	sb strings.Builder
}

// Generate produces MTMC-16 assembly from an IR program.
func Generate(p ir.Program, opts ir.EmitOptions) string {
	opts = opts.WithDefaults()
	g := &generator{}

	g.emitLinef("; %s", opts.Title)
	g.emitLine("; Generated by $1010 Compiler")
	g.emitLine("; Target: MTMC-16")
	g.emitLine("")
	g.emitLine(".data")
	g.emitLine("  ; Pattern data will be embedded inline")
	g.emitLine("")
	g.emitLine(".text")
	g.emitLine("main:")
	g.emitLine("  jal audio_init")
	g.emitLine("  jal load_patterns")
	g.emitLine("  jal seq_start")
	g.emitLine("")
	g.emitLine("main_loop:")
	g.emitLine("  sys joystick")
	g.emitLine("  mov t0 rv")
	g.emitLine("  andi t0 1")
	g.emitLine("  jz main_loop")
	g.emitLine("  jal seq_stop")
	g.emitLine("  sys exit")
	g.emitLine("")

	g.generateAudioInit(p)
	g.generateLoadPatterns(p)

	g.emitLine("seq_start:")
	g.emitLine("  li t0 3              ; loop=1, play=1")
	g.emitLine("  sb t0 $1500          ; SEQ_CTRL")
	g.emitLine("  ret")
	g.emitLine("")
	g.emitLine("seq_stop:")
	g.emitLine("  li t0 0")
	g.emitLine("  sb t0 $1500")
	g.emitLine("  ret")

	return g.sb.String()
}

// generateAudioInit stores every TEMPO and SWING value in program order.
func (g *generator) generateAudioInit(p ir.Program) {
	g.emitLine("audio_init:")
	for _, in := range p {
		switch in.Op {
		case ir.TEMPO:
			g.emitLinef("  li t0 %d", in.Args[0])
			g.emitLine("  sb t0 $1501          ; SEQ_TEMPO")
		case ir.SWING:
			g.emitLinef("  li t0 %d", in.Args[0])
			g.emitLine("  sb t0 $1503          ; SEQ_SWING")
		}
	}
	g.emitLine("  ret")
	g.emitLine("")
}

// generateLoadPatterns stores every audio-region WRITE in program order.
func (g *generator) generateLoadPatterns(p ir.Program) {
	g.emitLine("load_patterns:")
	for _, in := range p.Writes() {
		if !memmap.InAudioRegion(in.Addr()) {
			continue
		}
		g.emitLinef("  li t0 %d", in.Value())
		g.emitLinef("  sb t0 $%X          ; %s", in.Addr(), memmap.RegisterName(in.Addr()))
	}
	g.emitLine("  ret")
	g.emitLine("")
}

func (g *generator) emitLine(s string) {
	g.sb.WriteString(s)
	g.sb.WriteString("\n")
}

func (g *generator) emitLinef(format string, args ...any) {
	g.sb.WriteString(fmt.Sprintf(format, args...))
	g.sb.WriteString("\n")
}
