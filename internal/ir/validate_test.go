package ir

import (
	"strings"
	"testing"
)

func TestValidateGeneratedProgram(t *testing.T) {
	src := `@title "Valid"
@tempo 120
@swing 10
@pattern k "x...x...x...x..."
@scene a
kick: k
@play a loop
@poke $1310 200
@wait 16
@loop 2
@stop`
	p := parseAndGenerate(t, src, Options{EmitZeroClears: true})

	if errors := Validate(p); len(errors) > 0 {
		t.Errorf("expected no errors, got: %v", errors)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      Instruction
		message string
	}{
		{"unknown opcode", Instruction{Op: Opcode(0x42)}, "unknown opcode"},
		{"write arity", Instruction{Op: WRITE, Args: []int{0x1000}}, "WRITE takes 2 argument(s), got 1"},
		{"tempo arity", Instruction{Op: TEMPO}, "TEMPO takes 1 argument(s), got 0"},
		{"play with args", Instruction{Op: PLAY, Args: []int{1}}, "PLAY takes 0 argument(s), got 1"},
		{"write value", Instruction{Op: WRITE, Args: []int{0x1000, 300}}, "WRITE value 300 is not a byte"},
		{"write negative value", Instruction{Op: WRITE, Args: []int{0x1000, -1}}, "WRITE value -1 is not a byte"},
		{"write address", Instruction{Op: WRITE, Args: []int{0x10000, 1}}, "WRITE address $10000 outside memory"},
		{"text on non-comment", Instruction{Op: STOP, Text: "x"}, "STOP carries comment text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := Validate(Program{tt.in})
			if len(errors) != 1 {
				t.Fatalf("expected 1 error, got %v", errors)
			}
			if !strings.Contains(errors[0], tt.message) {
				t.Errorf("expected error containing %q, got %q", tt.message, errors[0])
			}
			if !strings.HasPrefix(errors[0], "instruction 0: ") {
				t.Errorf("expected the instruction index in %q", errors[0])
			}
		})
	}
}

func TestValidateEmpty(t *testing.T) {
	if errors := Validate(nil); len(errors) != 0 {
		t.Errorf("expected no errors for an empty program, got %v", errors)
	}
}
