package main

import (
	"strings"
	"testing"

	"github.com/lhaig/tenten/internal/apu"
	"github.com/lhaig/tenten/internal/compiler"
	"github.com/lhaig/tenten/internal/hexbe"
	"github.com/lhaig/tenten/internal/ir"
)

func TestStripVerbose(t *testing.T) {
	args, verbose := stripVerbose([]string{"-v", "build", "song.1010", "--verbose"})
	if !verbose {
		t.Error("expected verbose")
	}
	if strings.Join(args, " ") != "build song.1010" {
		t.Errorf("args = %v", args)
	}
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    cmdArgs
		wantErr string
	}{
		{
			name:    "build options",
			args:    []string{"-t", "hex", "--title", "Demo", "--zero-clears", "song.1010", "-o", "out.hex"},
			allowed: []string{"target", "out", "title", "zero-clears"},
			want:    cmdArgs{target: "hex", out: "out.hex", title: "Demo", zeroClears: true, positional: []string{"song.1010"}},
		},
		{
			name:    "steps",
			args:    []string{"--steps", "64", "song.1010"},
			allowed: []string{"steps"},
			want:    cmdArgs{steps: 64, positional: []string{"song.1010"}},
		},
		{
			name:    "option not allowed here",
			args:    []string{"-w", "song.1010"},
			wantErr: "Unknown option: -w",
		},
		{
			name:    "unknown option",
			args:    []string{"--fast"},
			wantErr: "Unknown option: --fast",
		},
		{
			name:    "missing value",
			args:    []string{"-t"},
			allowed: []string{"target"},
			wantErr: "option -t needs a value",
		},
		{
			name:    "bad step count",
			args:    []string{"-n", "0"},
			allowed: []string{"steps"},
			wantErr: "invalid step count: 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(tt.args, tt.allowed...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.target != tt.want.target || got.out != tt.want.out || got.title != tt.want.title ||
				got.zeroClears != tt.want.zeroClears || got.steps != tt.want.steps ||
				strings.Join(got.positional, ",") != strings.Join(tt.want.positional, ",") {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMapRows(t *testing.T) {
	res := compiler.Compile("@tempo 100\n@pattern k \"x...............\"\nkick: k", compiler.Options{Target: "hex"})
	if !res.Success {
		t.Fatalf("compile failed: %v", res.Errors)
	}

	rows := mapRows(hexbe.Image(res.IR))
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %v", len(rows), rows)
	}
	if rows[0][0] != "$1000" || rows[0][1] != "KICK[0]" || rows[0][2] != 1 {
		t.Errorf("unexpected kick row %v", rows[0])
	}
	if rows[1][0] != "$1501" || rows[1][1] != "SEQ_TEMPO" || rows[1][3] != "$64" {
		t.Errorf("unexpected tempo row %v", rows[1])
	}
}

func TestIRRowsAnnotateRegisters(t *testing.T) {
	res := compiler.Compile("@poke $1010 40", compiler.Options{Target: "hex"})
	if !res.Success {
		t.Fatalf("compile failed: %v", res.Errors)
	}

	found := false
	for _, row := range irRows(res.IR) {
		if row[2] == "WRITE" {
			found = true
			if row[3] != "$1010, 40" || row[4] != "KICK[16]" {
				t.Errorf("unexpected write row %v", row)
			}
		}
	}
	if !found {
		t.Error("expected a WRITE row")
	}
}

func TestTriggerRows(t *testing.T) {
	rows := triggerRows([]apu.Trigger{{Time: 0.125, Step: 1, Voice: "bass", Args: []int{36, 40}}})
	if rows[0][0] != "125.0" || rows[0][1] != 1 || rows[0][2] != "bass" || rows[0][3] != "36, 40" {
		t.Errorf("unexpected row %v", rows[0])
	}
}

func TestSessionAdd(t *testing.T) {
	s := &session{target: compiler.DefaultTarget}

	if d := s.add(`@pattern k "x...x...x...x..."`); d.HasErrors() {
		t.Fatalf("unexpected errors: %s", d.Format(replName))
	}
	if d := s.add("kick: missing"); !d.HasErrors() {
		t.Fatal("expected an undefined pattern error")
	}
	if d := s.add("kick: k"); d.HasErrors() {
		t.Fatalf("unexpected errors: %s", d.Format(replName))
	}
	if len(s.lines) != 2 {
		t.Errorf("expected the failing line to be dropped, got %v", s.lines)
	}

	res := s.compile()
	if !res.Success || !strings.Contains(res.Output, "1000") {
		t.Errorf("expected the session to compile, got %v", res.Errors)
	}
}

func TestIRProblems(t *testing.T) {
	res := compiler.Compile("@tempo 120\n@play", compiler.Options{})
	if !res.Success {
		t.Fatalf("compile failed: %v", res.Errors)
	}
	if report := irProblems(res.IR); report != "" {
		t.Errorf("expected a valid program, got:\n%s", report)
	}

	// out-of-memory pokes only warn at lint time
	res = compiler.Compile("@poke $12345 1", compiler.Options{})
	if !res.Success {
		t.Fatalf("compile failed: %v", res.Errors)
	}
	report := irProblems(res.IR)
	if !strings.Contains(report, "IR validation failed (1 problems)") ||
		!strings.Contains(report, "WRITE address $12345 outside memory") {
		t.Errorf("unexpected report:\n%s", report)
	}

	report = irProblems(ir.Program{{Op: ir.PLAY, Args: []int{1}}})
	if !strings.Contains(report, "PLAY takes 0 argument(s), got 1") {
		t.Errorf("unexpected report:\n%s", report)
	}
}
