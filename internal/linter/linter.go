package linter

import (
	"sort"
	"unicode/utf8"

	"github.com/lhaig/tenten/internal/ast"
	"github.com/lhaig/tenten/internal/diagnostic"
	"github.com/lhaig/tenten/internal/memmap"
	"github.com/lhaig/tenten/internal/parser"
)

// Linter performs semantic checks on a parsed program. Undefined patterns,
// out-of-range tempos and out-of-range poke values are errors; everything
// else is a warning.
type Linter struct {
	prog     *ast.Program
	diag     *diagnostic.Diagnostics
	patterns []string // defined pattern names, sorted, for hints
}

// Lint runs all lint rules on the given program and returns diagnostics.
// The program is not modified.
func Lint(prog *ast.Program) *diagnostic.Diagnostics {
	l := &Linter{
		prog: prog,
		diag: diagnostic.New(),
	}
	for name := range prog.Patterns {
		l.patterns = append(l.patterns, name)
	}
	sort.Strings(l.patterns)

	for _, stmt := range prog.Body {
		l.lintStatement(stmt)
	}
	return l.diag
}

func (l *Linter) lintStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Scene:
		for _, a := range s.Assignments {
			l.checkPatternDefined(a.Pattern, a.Line, a.Column)
			l.checkVoice(a.Voice, a.Line, a.Column)
		}
	case *ast.VoiceAssign:
		l.checkPatternDefined(s.Pattern, s.Line, s.Column)
		l.checkVoice(s.Voice, s.Line, s.Column)
	case *ast.Param:
		l.checkVoice(s.Voice, s.Line, s.Column)
	case *ast.Pattern:
		l.checkPatternLength(s)
	case *ast.Tempo:
		l.checkTempo(s)
	case *ast.Poke:
		l.checkPoke(s)
	case *ast.Title, *ast.Swing, *ast.Play, *ast.Stop, *ast.Loop, *ast.Wait, *ast.Comment:
		// nothing to check
	default:
		panic("linter: unhandled statement type")
	}
}

// --- Lint rules ---

// checkPatternDefined reports a reference to a pattern that was never defined.
func (l *Linter) checkPatternDefined(name string, line, col int) {
	if name == "" {
		return
	}
	if _, ok := l.prog.Patterns[name]; ok {
		return
	}
	l.diag.ErrorWithHint(line, col, "Undefined pattern: "+name,
		diagnostic.DidYouMean(name, l.patterns, nil))
}

// checkVoice warns about a voice name outside the five fixed voices.
func (l *Linter) checkVoice(voice string, line, col int) {
	if voice == "" {
		return
	}
	if _, ok := memmap.LookupVoice(voice); ok {
		return
	}
	l.diag.WarningWithHint(line, col, "Unknown voice: "+voice,
		diagnostic.DidYouMean(voice, memmap.VoiceNames(), nil))
}

// checkPatternLength warns when the source string is not 16 characters.
func (l *Linter) checkPatternLength(p *ast.Pattern) {
	if n := utf8.RuneCountInString(p.Data); n != 16 {
		l.diag.Warningf(p.Line, p.Column, "Pattern %q has %d chars (expected 16)", p.Name, n)
	}
}

// checkTempo rejects a tempo outside the sequencer's range. The parser
// clamps tempos, so this only fires for programs built without it.
func (l *Linter) checkTempo(t *ast.Tempo) {
	if t.Value < parser.MinTempo || t.Value > parser.MaxTempo {
		l.diag.Errorf(t.Line, t.Column, "Tempo %d out of range (%d-%d)", t.Value, parser.MinTempo, parser.MaxTempo)
	}
}

// checkPoke warns about writes outside the audio region and rejects values
// that do not fit in a byte.
func (l *Linter) checkPoke(p *ast.Poke) {
	if !memmap.InAudioRegion(p.Addr) {
		l.diag.Warningf(p.Line, p.Column, "Address $%x outside audio region ($%X-$%X)",
			p.Addr, memmap.AudioStart, memmap.AudioEnd-1)
	}
	if p.Value < 0 || p.Value > 255 {
		l.diag.Errorf(p.Line, p.Column, "Value %d out of byte range (0-255)", p.Value)
	}
}
