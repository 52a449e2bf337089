package main

import (
	"fmt"
	"os"

	"github.com/tebeka/atexit"

	"github.com/lhaig/tenten/internal/compiler"
	"github.com/lhaig/tenten/internal/diagnostic"
	"github.com/lhaig/tenten/internal/formatter"
	"github.com/lhaig/tenten/internal/linter"
	"github.com/lhaig/tenten/internal/parser"
)

func handleBuild(args []string) {
	a := mustArgs(args, 1, "input file", "target", "out", "title", "zero-clears")
	filePath := a.positional[0]

	opts, cfg := resolveOptions(filePath, a)
	outPath := a.out
	if outPath == "" {
		outPath = compiler.OutputPath(filePath, opts.Target, cfg.OutDir)
	}

	res, err := compiler.EmitToTarget(readSource(filePath), opts, outPath)
	if !res.Success {
		fmt.Fprintln(os.Stderr, diagnostic.FormatList(res.Errors, filePath))
		atexit.Exit(1)
	}
	printWarnings(filePath, res.Warnings)
	if err != nil {
		fail("Error: %s", err)
	}
	fmt.Printf("Wrote %s\n", outPath)
}

func handleCheck(args []string) {
	a := mustArgs(args, 1, "input file")
	filePath := a.positional[0]

	diag := compiler.Check(readSource(filePath))
	if diag.HasErrors() {
		fmt.Fprintln(os.Stderr, diagnostic.FormatList(diag.Errors(), filePath))
		atexit.Exit(1)
	}
	printWarnings(filePath, diag.Warnings())

	fmt.Println("No errors found.")
}

func handleLint(args []string) {
	a := mustArgs(args, 1, "input file")
	filePath := a.positional[0]

	prog, diags := parser.ParseSource(readSource(filePath))
	if diags.HasErrors() {
		fmt.Fprintln(os.Stderr, diags.Format(filePath))
		atexit.Exit(1)
	}

	diag := linter.Lint(prog)
	if diag.Count() == 0 {
		fmt.Println("No lint warnings.")
		return
	}

	fmt.Print(diag.Format(filePath))
	fmt.Println()
	if diag.HasErrors() {
		fmt.Printf("%d error(s), %d warning(s) found.\n", diag.ErrorCount(), diag.WarningCount())
		atexit.Exit(1)
	}
	fmt.Printf("%d warning(s) found.\n", diag.WarningCount())
}

func handleFmt(args []string) {
	a := mustArgs(args, 1, "input file", "write")
	filePath := a.positional[0]

	out, diags := formatter.FormatSource(readSource(filePath))
	if diags.HasErrors() {
		fmt.Fprintln(os.Stderr, diags.Format(filePath))
		atexit.Exit(1)
	}

	if !a.write {
		fmt.Print(out)
		return
	}
	info, err := os.Stat(filePath)
	if err != nil {
		fail("Error: %s", err)
	}
	if err := os.WriteFile(filePath, []byte(out), info.Mode().Perm()); err != nil {
		fail("Error writing file: %s", err)
	}
	fmt.Printf("Formatted %s\n", filePath)
}
