package formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lhaig/tenten/internal/ir"
	"github.com/lhaig/tenten/internal/parser"
)

// helper: parse source, format, return formatted string
func formatSource(t *testing.T, source string) string {
	t.Helper()
	got, diags := FormatSource(source)
	if diags.HasErrors() {
		t.Fatalf("parse error: %s", diags.Format("<test>"))
	}
	return got
}

func lower(t *testing.T, source string) string {
	t.Helper()
	prog, diags := parser.ParseSource(source)
	if diags.HasErrors() {
		t.Fatalf("parse error: %s", diags.Format("<test>"))
	}
	return ir.Format(ir.Generate(prog))
}

func TestFormatCanonicalLayout(t *testing.T) {
	src := `@TITLE 'Messy'   @tempo 0x78
@pattern   k "x...x...x...x..."
@pattern s 'X.......X.......'
@scene   verse kick:k   snare :s
@play verse   loop
@poke 4096 7`

	want := `@title "Messy"
@tempo 120

@pattern k "x...x...x...x..."
@pattern s "X.......X......."

@scene verse
    kick: k
    snare: s

@play verse loop

@poke $1000 7
`
	if got := formatSource(t, src); got != want {
		t.Errorf("unexpected format:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatDirectives(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"swing", "@swing 33", "@swing 33\n"},
		{"clamped tempo", "@tempo 999", "@tempo 255\n"},
		{"stop", "@stop", "@stop\n"},
		{"bare play", "@play", "@play\n"},
		{"play loop", "@play loop", "@play loop\n"},
		{"param", "@param lead.arp 3", "@param lead.arp 3\n"},
		{"param default", "@param kick 1", "@param kick.gate 1\n"},
		{"wait", "@wait 8", "@wait 8\n"},
		{"loop", "@loop 2", "@loop 2\n"},
		{"hex poke", "@poke $1501 $80", "@poke $1501 128\n"},
		{"voice assign", "@pattern p \"x\"\nlead:p", "@pattern p \"x\"\n\nlead: p\n"},
		{"quote fallback", `@title 'say "hi"'`, `@title 'say "hi"'` + "\n"},
		{"empty comment", "#", ";\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatSource(t, tt.src); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatComments(t *testing.T) {
	src := `# intro
@tempo 100
# drums
@pattern k "x...x...x...x..."
; more drums
@pattern h "..x...x...x...x."`

	want := `; intro
@tempo 100

; drums
@pattern k "x...x...x...x..."
; more drums
@pattern h "..x...x...x...x."
`
	if got := formatSource(t, src); got != want {
		t.Errorf("unexpected format:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatScenesAreSeparated(t *testing.T) {
	src := "@pattern p \"x...............\"\n@scene a kick: p\n@scene b snare: p"
	got := formatSource(t, src)

	if !strings.Contains(got, "    kick: p\n\n@scene b\n") {
		t.Errorf("expected a blank line between scenes:\n%s", got)
	}
}

func TestFormatIdempotent(t *testing.T) {
	src := `@title "Loop"
@tempo 90 @swing 20
@pattern a "C4..E4..G4......"
@scene s lead: a bass: a
@play s`

	once := formatSource(t, src)
	twice := formatSource(t, once)
	if once != twice {
		t.Errorf("format is not idempotent:\n%s\n---\n%s", once, twice)
	}
}

func TestFormatPreservesIR(t *testing.T) {
	examples, err := filepath.Glob(filepath.Join("..", "..", "examples", "*.1010"))
	if err != nil {
		t.Fatal(err)
	}
	if len(examples) == 0 {
		t.Fatal("no examples found")
	}

	for _, path := range examples {
		t.Run(filepath.Base(path), func(t *testing.T) {
			src, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			formatted := formatSource(t, string(src))
			if lower(t, string(src)) != lower(t, formatted) {
				t.Errorf("formatted source lowers differently:\n%s", formatted)
			}
		})
	}
}

func TestFormatSourceRejectsErrors(t *testing.T) {
	out, diags := FormatSource("@pattern \"x\"")
	if !diags.HasErrors() {
		t.Fatal("expected parse errors")
	}
	if out != "" {
		t.Errorf("expected no output, got %q", out)
	}
}
