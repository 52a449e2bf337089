package asmbe

import (
	"strings"
	"testing"

	"github.com/lhaig/tenten/internal/ir"
)

func TestGenerate_Skeleton(t *testing.T) {
	out := Generate(nil, ir.EmitOptions{})

	expected := `; Untitled
; Generated by $1010 Compiler
; Target: MTMC-16

.data
  ; Pattern data will be embedded inline

.text
main:
  jal audio_init
  jal load_patterns
  jal seq_start

main_loop:
  sys joystick
  mov t0 rv
  andi t0 1
  jz main_loop
  jal seq_stop
  sys exit

audio_init:
  ret

load_patterns:
  ret

seq_start:
  li t0 3              ; loop=1, play=1
  sb t0 $1500          ; SEQ_CTRL
  ret

seq_stop:
  li t0 0
  sb t0 $1500
  ret
`
	if out != expected {
		t.Errorf("unexpected skeleton:\n%s", out)
	}
}

func TestGenerate_TempoSwingAndPatterns(t *testing.T) {
	p := ir.Program{
		{Op: ir.COMMENT, Text: "TITLE: Demo"},
		{Op: ir.TEMPO, Args: []int{128}},
		{Op: ir.WRITE, Args: []int{0x1501, 128}},
		{Op: ir.SWING, Args: []int{12}},
		{Op: ir.WRITE, Args: []int{0x1503, 12}},
		{Op: ir.WRITE, Args: []int{0x1004, 1}},
		{Op: ir.WRITE, Args: []int{0x1024, 127}},
		{Op: ir.WRITE, Args: []int{0x1502, 3}},
		{Op: ir.WRITE, Args: []int{0x2000, 9}},
		{Op: ir.WRITE, Args: []int{0x1500, 3}},
		{Op: ir.PLAY},
	}
	out := Generate(p, ir.EmitOptions{Title: "Demo"})

	if !strings.HasPrefix(out, "; Demo\n") {
		t.Errorf("expected title in header, got %q", strings.SplitN(out, "\n", 2)[0])
	}

	audioInit := "audio_init:\n" +
		"  li t0 128\n" +
		"  sb t0 $1501          ; SEQ_TEMPO\n" +
		"  li t0 12\n" +
		"  sb t0 $1503          ; SEQ_SWING\n" +
		"  ret\n"
	if !strings.Contains(out, audioInit) {
		t.Errorf("missing audio_init block:\n%s", out)
	}

	loadPatterns := "load_patterns:\n" +
		"  li t0 128\n" +
		"  sb t0 $1501          ; SEQ_TEMPO\n" +
		"  li t0 12\n" +
		"  sb t0 $1503          ; SEQ_SWING\n" +
		"  li t0 1\n" +
		"  sb t0 $1004          ; KICK[4]\n" +
		"  li t0 127\n" +
		"  sb t0 $1024          ; SNARE[4]\n" +
		"  li t0 3\n" +
		"  sb t0 $1502          ; \n" +
		"  li t0 3\n" +
		"  sb t0 $1500          ; SEQ_CTRL\n" +
		"  ret\n"
	if !strings.Contains(out, loadPatterns) {
		t.Errorf("missing load_patterns block:\n%s", out)
	}

	if strings.Contains(out, "$2000") {
		t.Error("writes outside the audio region must not be emitted")
	}
}

func TestGenerate_RegisterAnnotations(t *testing.T) {
	tests := []struct {
		addr int
		name string
	}{
		{0x1000, "KICK[0]"},
		{0x101F, "KICK[31]"},
		{0x1020, "SNARE[0]"},
		{0x104F, "SNARE[47]"},
		{0x1100, "LEAD[0]"},
		{0x1210, "BASS[16]"},
		{0x132F, "NOISE[47]"},
		{0x1503, "SEQ_SWING"},
	}

	for _, tt := range tests {
		out := Generate(ir.Program{{Op: ir.WRITE, Args: []int{tt.addr, 1}}}, ir.EmitOptions{})
		if !strings.Contains(out, "; "+tt.name+"\n") {
			t.Errorf("expected annotation %s for $%X", tt.name, tt.addr)
		}
	}
}
