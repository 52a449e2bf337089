package formatter

import (
	"fmt"
	"strings"

	"github.com/lhaig/tenten/internal/ast"
	"github.com/lhaig/tenten/internal/diagnostic"
	"github.com/lhaig/tenten/internal/parser"
)

// Format takes an AST Program and returns canonical $1010 source. Statement
// order is kept; only layout, spelling of numbers and quoting change.
func Format(prog *ast.Program) string {
	f := &formatter{}
	f.formatProgram(prog)
	return f.sb.String()
}

// FormatSource parses and formats source. Source with parse errors is not
// formatted; the diagnostics are returned instead.
func FormatSource(source string) (string, *diagnostic.Diagnostics) {
	prog, diags := parser.ParseSource(source)
	if diags.HasErrors() {
		return "", diags
	}
	return Format(prog), diags
}

type formatter struct {
	sb     strings.Builder
	indent int
}

// --- helpers ---

func (f *formatter) emitLine(s string) {
	if s == "" {
		f.sb.WriteString("\n")
	} else {
		f.sb.WriteString(f.indentStr())
		f.sb.WriteString(s)
		f.sb.WriteString("\n")
	}
}

func (f *formatter) emitLinef(format string, args ...any) {
	f.emitLine(fmt.Sprintf(format, args...))
}

func (f *formatter) incIndent() { f.indent++ }
func (f *formatter) decIndent() { f.indent-- }

func (f *formatter) indentStr() string {
	return strings.Repeat("    ", f.indent)
}

func (f *formatter) blankLine() {
	f.sb.WriteString("\n")
}

// --- program-level ---

// group classifies statements so a blank line separates unlike runs.
type group int

const (
	groupNone group = iota
	groupHeader
	groupPattern
	groupScene
	groupAssign
	groupTransport
	groupRegister
)

func groupOf(stmt ast.Statement) group {
	switch stmt.(type) {
	case *ast.Title, *ast.Tempo, *ast.Swing:
		return groupHeader
	case *ast.Pattern:
		return groupPattern
	case *ast.Scene:
		return groupScene
	case *ast.VoiceAssign:
		return groupAssign
	case *ast.Play, *ast.Stop, *ast.Loop, *ast.Wait:
		return groupTransport
	case *ast.Param, *ast.Poke:
		return groupRegister
	default:
		return groupNone
	}
}

func (f *formatter) formatProgram(prog *ast.Program) {
	prev := groupNone
	afterComment := false

	for i, stmt := range prog.Body {
		if c, ok := stmt.(*ast.Comment); ok {
			// a comment travels with the statement below it
			if i > 0 && !afterComment && startsGroup(prog.Body[i:], prev) {
				f.blankLine()
			}
			f.formatComment(c)
			afterComment = true
			continue
		}

		g := groupOf(stmt)
		if i > 0 && !afterComment && (g != prev || g == groupScene) {
			f.blankLine()
		}
		f.formatStatement(stmt)
		prev = g
		afterComment = false
	}
}

// startsGroup reports whether the first non-comment statement in rest
// begins a new group.
func startsGroup(rest []ast.Statement, prev group) bool {
	for _, stmt := range rest {
		if _, ok := stmt.(*ast.Comment); ok {
			continue
		}
		g := groupOf(stmt)
		return g != prev || g == groupScene
	}
	return true
}

func (f *formatter) formatStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Title:
		f.emitLinef("@title %s", quote(s.Value))
	case *ast.Tempo:
		f.emitLinef("@tempo %d", s.Value)
	case *ast.Swing:
		f.emitLinef("@swing %d", s.Value)
	case *ast.Pattern:
		f.emitLinef("@pattern %s %s", s.Name, quote(s.Data))
	case *ast.Scene:
		f.formatScene(s)
	case *ast.VoiceAssign:
		f.emitLinef("%s: %s", s.Voice, s.Pattern)
	case *ast.Play:
		f.formatPlay(s)
	case *ast.Stop:
		f.emitLine("@stop")
	case *ast.Param:
		f.emitLinef("@param %s.%s %d", s.Voice, s.Param, s.Value)
	case *ast.Poke:
		f.emitLinef("@poke %s %d", address(s.Addr), s.Value)
	case *ast.Loop:
		f.emitLinef("@loop %d", s.Count)
	case *ast.Wait:
		f.emitLinef("@wait %d", s.Steps)
	case *ast.Comment:
		f.formatComment(s)
	default:
		panic(fmt.Sprintf("formatter: unhandled statement type %T", stmt))
	}
}

func (f *formatter) formatComment(c *ast.Comment) {
	if c.Text == "" {
		f.emitLine(";")
		return
	}
	f.emitLine("; " + c.Text)
}

func (f *formatter) formatScene(s *ast.Scene) {
	f.emitLinef("@scene %s", s.Name)
	f.incIndent()
	for _, a := range s.Assignments {
		f.emitLinef("%s: %s", a.Voice, a.Pattern)
	}
	f.decIndent()
}

func (f *formatter) formatPlay(p *ast.Play) {
	parts := []string{"@play"}
	if p.Scene != "" {
		parts = append(parts, p.Scene)
	}
	if p.Loop {
		parts = append(parts, "loop")
	}
	f.emitLine(strings.Join(parts, " "))
}

// quote prefers double quotes and falls back to single quotes when the
// text itself contains a double quote.
func quote(s string) string {
	if strings.Contains(s, `"`) {
		return "'" + s + "'"
	}
	return `"` + s + `"`
}

// address prints register addresses in the $hhhh form the memory map uses.
func address(addr int) string {
	if addr < 0 {
		return fmt.Sprintf("%d", addr)
	}
	return fmt.Sprintf("$%04X", addr)
}
