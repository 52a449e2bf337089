package rustbe

import (
	"fmt"
	"strings"

	"github.com/lhaig/tenten/internal/ir"
)

type generator struct {
	sb     strings.Builder
	indent int
}

// Generate produces no_std Rust source from an IR program.
func Generate(p ir.Program, opts ir.EmitOptions) string {
	opts = opts.WithDefaults()
	g := &generator{}

	g.emitLinef("//! %s", opts.Title)
	g.emitLine("//! Generated by $1010 Compiler")
	g.emitLine("//! Target: Rust (embedded, no_std)")
	g.emitLine("")
	g.emitLine("#![no_std]")
	g.emitLine("")

	g.generateConstants()
	g.generateMMIO()
	g.generateAudioInit(p)
	g.generateSequencer()

	return g.sb.String()
}

func (g *generator) generateConstants() {
	g.emitLine("/// Audio MMIO base address")
	g.emitLine("const AUDIO_BASE: usize = 0x1000;")
	g.emitLine("")
	g.emitLine("/// Voice gate addresses")
	g.emitLine("const KICK_GATE: usize = AUDIO_BASE + 0x000;")
	g.emitLine("const SNARE_GATE: usize = AUDIO_BASE + 0x020;")
	g.emitLine("const LEAD_GATE: usize = AUDIO_BASE + 0x100;")
	g.emitLine("const BASS_GATE: usize = AUDIO_BASE + 0x200;")
	g.emitLine("const NOISE_GATE: usize = AUDIO_BASE + 0x300;")
	g.emitLine("")
	g.emitLine("/// Sequencer control registers")
	g.emitLine("const SEQ_CTRL: usize = AUDIO_BASE + 0x500;")
	g.emitLine("const SEQ_TEMPO: usize = AUDIO_BASE + 0x501;")
	g.emitLine("const SEQ_STEP: usize = AUDIO_BASE + 0x502;")
	g.emitLine("")
}

func (g *generator) generateMMIO() {
	g.emitLine("/// Write to MMIO")
	g.emitLine("#[inline(always)]")
	g.emitLine("unsafe fn mmio_write(addr: usize, val: u8) {")
	g.incIndent()
	g.emitLine("core::ptr::write_volatile(addr as *mut u8, val);")
	g.decIndent()
	g.emitLine("}")
	g.emitLine("")
	g.emitLine("/// Read from MMIO")
	g.emitLine("#[inline(always)]")
	g.emitLine("unsafe fn mmio_read(addr: usize) -> u8 {")
	g.incIndent()
	g.emitLine("core::ptr::read_volatile(addr as *const u8)")
	g.decIndent()
	g.emitLine("}")
	g.emitLine("")
}

// generateAudioInit emits one volatile write per WRITE, in program order.
func (g *generator) generateAudioInit(p ir.Program) {
	g.emitLine("/// Initialize audio patterns")
	g.emitLine("pub fn audio_init() {")
	g.incIndent()
	g.emitLine("unsafe {")
	g.incIndent()
	for _, in := range p.Writes() {
		g.emitLinef("mmio_write(0x%x, %d);", in.Addr(), in.Value())
	}
	g.decIndent()
	g.emitLine("}")
	g.decIndent()
	g.emitLine("}")
	g.emitLine("")
}

func (g *generator) generateSequencer() {
	g.emitLine("/// Start sequencer (loop mode)")
	g.emitLine("pub fn seq_start() {")
	g.incIndent()
	g.emitLine("unsafe { mmio_write(SEQ_CTRL, 0x03); }")
	g.decIndent()
	g.emitLine("}")
	g.emitLine("")
	g.emitLine("/// Stop sequencer")
	g.emitLine("pub fn seq_stop() {")
	g.incIndent()
	g.emitLine("unsafe { mmio_write(SEQ_CTRL, 0x00); }")
	g.decIndent()
	g.emitLine("}")
	g.emitLine("")
	g.emitLine("/// Advance sequencer (call from timer ISR)")
	g.emitLine("pub fn seq_tick() {")
	g.incIndent()
	g.emitLine("unsafe {")
	g.incIndent()
	g.emitLine("let step = mmio_read(SEQ_STEP);")
	g.emitLine("// Trigger voices based on gate values here")
	g.emitLine("mmio_write(SEQ_STEP, (step + 1) & 0x0F);")
	g.decIndent()
	g.emitLine("}")
	g.decIndent()
	g.emitLine("}")
}

func (g *generator) emitLinef(format string, args ...any) {
	g.emitLine(fmt.Sprintf(format, args...))
}

func (g *generator) emitLine(s string) {
	if s == "" {
		g.sb.WriteString("\n")
	} else {
		g.sb.WriteString(g.indentStr())
		g.sb.WriteString(s)
		g.sb.WriteString("\n")
	}
}

func (g *generator) incIndent() { g.indent++ }
func (g *generator) decIndent() { g.indent-- }

func (g *generator) indentStr() string {
	return strings.Repeat("    ", g.indent)
}
