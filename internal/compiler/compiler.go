package compiler

import (
	"log/slog"

	"github.com/lhaig/tenten/internal/ast"
	"github.com/lhaig/tenten/internal/diagnostic"
	"github.com/lhaig/tenten/internal/ir"
	"github.com/lhaig/tenten/internal/linter"
	"github.com/lhaig/tenten/internal/parser"
)

// Options controls a compilation. The zero value compiles to MTMC-16
// assembly titled "Untitled" at 120 BPM.
type Options struct {
	Target         string
	Title          string
	Tempo          int
	EmitZeroClears bool
	Logger         *slog.Logger
}

// Result holds the output of a compilation
type Result struct {
	Success  bool
	Output   string // text targets
	Binary   []byte // binary targets (wasm32)
	Errors   []diagnostic.Diagnostic
	Warnings []diagnostic.Diagnostic
	AST      *ast.Program // nil only when lexing failed
	IR       ir.Program   // nil unless linting passed
}

// DefaultTarget is used when Options.Target is empty.
const DefaultTarget = "mtmc16"

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Compile runs the full pipeline: lex -> parse -> lint -> IR -> backend.
// The pipeline stops at the first phase that reports an error; the AST and
// IR are populated up to the last completed phase.
func Compile(source string, opts Options) *Result {
	res := &Result{}
	log := opts.logger()

	target := opts.Target
	if target == "" {
		target = DefaultTarget
	}

	// Lex and parse
	prog, diags := parser.ParseSource(source)
	res.collect(diags)
	res.AST = prog
	log.Debug("phase complete", "phase", "parser", "errors", diags.ErrorCount(), "warnings", diags.WarningCount())
	if diags.HasErrors() {
		return res
	}

	// Lint
	lintDiags := linter.Lint(prog).Tag(diagnostic.PhaseLinter)
	res.collect(lintDiags)
	log.Debug("phase complete", "phase", "linter", "errors", lintDiags.ErrorCount(), "warnings", lintDiags.WarningCount())
	if lintDiags.HasErrors() {
		return res
	}

	// Lower to IR
	res.IR = ir.GenerateWith(prog, ir.Options{EmitZeroClears: opts.EmitZeroClears})
	log.Debug("phase complete", "phase", "ir", "instructions", len(res.IR))

	// Backend
	emitOpts := ir.EmitOptions{Title: titleFor(opts, prog), Tempo: opts.Tempo}.WithDefaults()
	if bbe, ok := getBinaryBackend(target); ok {
		res.Binary = bbe.GenerateBytes(res.IR, emitOpts)
		log.Debug("phase complete", "phase", "backend", "target", bbe.Name(), "bytes", len(res.Binary))
		res.Success = true
		return res
	}

	be, err := getBackend(target)
	if err != nil {
		bd := diagnostic.New()
		bd.ErrorWithHint(0, 0, err.Error(), diagnostic.DidYouMean(target, TargetNames(), nil))
		res.collect(bd.Tag(diagnostic.PhaseBackend))
		log.Debug("phase failed", "phase", "backend", "target", target)
		return res
	}
	res.Output = be.Generate(res.IR, emitOpts)
	log.Debug("phase complete", "phase", "backend", "target", be.Name(), "bytes", len(res.Output))
	res.Success = true
	return res
}

// Check runs lex + parse + lint only (no codegen). Diagnostics from every
// phase that ran are returned together.
func Check(source string) *diagnostic.Diagnostics {
	prog, diags := parser.ParseSource(source)
	if diags.HasErrors() {
		return diags
	}

	all := diagnostic.New()
	all.Append(diags.All()...)
	all.Append(linter.Lint(prog).Tag(diagnostic.PhaseLinter).All()...)
	return all
}

func (r *Result) collect(d *diagnostic.Diagnostics) {
	r.Errors = append(r.Errors, d.Errors()...)
	r.Warnings = append(r.Warnings, d.Warnings()...)
}

// titleFor prefers an explicit option, then the program's last @title.
func titleFor(opts Options, prog *ast.Program) string {
	if opts.Title != "" {
		return opts.Title
	}
	title := ""
	for _, stmt := range prog.Body {
		if t, ok := stmt.(*ast.Title); ok {
			title = t.Value
		}
	}
	return title
}
