package ir

import (
	"fmt"

	"github.com/lhaig/tenten/internal/ast"
	"github.com/lhaig/tenten/internal/memmap"
)

// Options controls IR generation.
type Options struct {
	// EmitZeroClears emits WRITE base+i, 0 for rest steps so a pattern
	// fully overwrites whatever an earlier pattern left in its voice region.
	EmitZeroClears bool
}

// generator walks an AST program and emits IR instructions.
type generator struct {
	prog *ast.Program
	opts Options
	out  Program
}

// Generate lowers a program to IR with default options.
func Generate(prog *ast.Program) Program {
	return GenerateWith(prog, Options{})
}

// GenerateWith lowers a program to IR. Statements are emitted in source
// order; pattern definitions produce no instructions until a voice is
// assigned to them.
func GenerateWith(prog *ast.Program, opts Options) Program {
	g := &generator{
		prog: prog,
		opts: opts,
		out:  make(Program, 0, len(prog.Body)*4),
	}
	for _, stmt := range prog.Body {
		g.lowerStatement(stmt)
	}
	return g.out
}

func (g *generator) emit(op Opcode, line int, args ...int) {
	g.out = append(g.out, Instruction{Op: op, Args: args, Line: line})
}

func (g *generator) comment(text string, line int) {
	g.out = append(g.out, Instruction{Op: COMMENT, Text: text, Line: line})
}

func (g *generator) lowerStatement(stmt ast.Statement) {
	line, _ := stmt.Pos()

	switch s := stmt.(type) {
	case *ast.Comment:
		g.comment(s.Text, line)

	case *ast.Title:
		g.comment("TITLE: "+s.Value, line)

	case *ast.Tempo:
		g.emit(TEMPO, line, s.Value)
		g.emit(WRITE, line, memmap.SeqTempo, s.Value)

	case *ast.Swing:
		g.emit(SWING, line, s.Value)
		g.emit(WRITE, line, memmap.SeqSwing, s.Value)

	case *ast.Pattern:
		// emitted when assigned to a voice

	case *ast.Scene:
		g.lowerScene(s, line)

	case *ast.VoiceAssign:
		g.lowerAssign(s.Voice, s.Pattern, line)

	case *ast.Play:
		if scene, ok := g.prog.Scenes[s.Scene]; ok && s.Scene != "" {
			g.lowerScene(scene, line)
		}
		ctrl := memmap.CtrlPlay
		if s.Loop {
			ctrl |= memmap.CtrlLoop
		}
		g.emit(WRITE, line, memmap.SeqCtrl, ctrl)
		g.emit(PLAY, line)

	case *ast.Stop:
		g.emit(WRITE, line, memmap.SeqCtrl, 0)
		g.emit(STOP, line)

	case *ast.Poke:
		g.emit(WRITE, line, s.Addr, s.Value)

	case *ast.Wait:
		g.emit(WAIT, line, s.Steps)

	case *ast.Loop:
		g.emit(LOOP, line, s.Count)

	case *ast.Param:
		// no register semantics defined for parameters yet

	default:
		panic(fmt.Sprintf("ir: unhandled statement type %T", stmt))
	}
}

func (g *generator) lowerScene(scene *ast.Scene, line int) {
	g.comment("SCENE: "+scene.Name, line)
	for _, a := range scene.Assignments {
		g.lowerAssign(a.Voice, a.Pattern, line)
	}
}

// lowerAssign writes a pattern into a voice's step region. Unknown voices
// and undefined patterns are dropped silently; the linter reports them.
func (g *generator) lowerAssign(voiceName, patternName string, line int) {
	pattern, ok := g.prog.Patterns[patternName]
	if !ok {
		return
	}
	voice, ok := memmap.LookupVoice(voiceName)
	if !ok {
		return
	}

	for i, value := range pattern.Steps {
		if value == 0 && !g.opts.EmitZeroClears {
			continue
		}
		g.emit(WRITE, line, voice.Base+i, value)
	}
}
