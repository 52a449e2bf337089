package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tebeka/atexit"

	"github.com/lhaig/tenten/internal/compiler"
	"github.com/lhaig/tenten/internal/config"
	"github.com/lhaig/tenten/internal/diagnostic"
)

const usage = `tentenc - The $1010 sequencer compiler

Usage:
  tentenc build [-t target] [-o out] [--title T] [--zero-clears] <file.1010>
  tentenc check <file.1010>                  Parse and lint only
  tentenc lint <file.1010>                   Report lint warnings
  tentenc fmt [-w] <file.1010>               Print (or rewrite) canonical source
  tentenc ast <file.1010>                    Print the syntax tree
  tentenc ir [-t target] <file.1010>         Print the IR listing
  tentenc map <file.1010>                    Table of the final memory image
  tentenc packs [name]                       List preset packs, or show one
  tentenc pack2src [-o out] <pack> <pattern> Render a pack pattern as source
  tentenc simulate [-n steps] <file.1010>    Run the sequencer in virtual time
  tentenc repl                               Interactive session
  tentenc help                               Show this message

Options:
  -t, --target    mtmc16 (asm), wasm (wat), wasm32, c, rust (rs), hex
  -o, --out       Output path (default: <file> with the target's extension)
  --title         Title for generated headers (overrides @title)
  --zero-clears   Emit writes for rest steps so patterns overwrite fully
  -w              Write formatted source back to the file
  -n, --steps     Number of steps to simulate (default 16)
  -v, --verbose   Log pipeline phases to stderr

Defaults for target, title, tempo, zero_clears and out_dir are read from the
nearest .tenten.yaml above the source file.

Examples:
  tentenc build song.1010                 Build song.asm
  tentenc build -t hex song.1010          Build song.hex
  tentenc simulate -n 64 song.1010        Show four bars of triggers
  tentenc pack2src TR-808 "Boom Bap"      Print the pattern as $1010 source
`

func main() {
	args, verbose := stripVerbose(os.Args[1:])
	slog.SetDefault(newLogger(verbose))

	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		atexit.Exit(1)
	}

	command := args[0]
	rest := args[1:]

	switch command {
	case "build":
		handleBuild(rest)
	case "check":
		handleCheck(rest)
	case "lint":
		handleLint(rest)
	case "fmt":
		handleFmt(rest)
	case "ast":
		handleAST(rest)
	case "ir":
		handleIR(rest)
	case "map":
		handleMap(rest)
	case "packs":
		handlePacks(rest)
	case "pack2src":
		handlePack2Src(rest)
	case "simulate":
		handleSimulate(rest)
	case "repl":
		handleRepl(rest)
	case "help", "--help", "-h":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		fmt.Fprint(os.Stderr, usage)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// stripVerbose removes -v/--verbose from anywhere in args.
func stripVerbose(args []string) ([]string, bool) {
	out := make([]string, 0, len(args))
	verbose := false
	for _, arg := range args {
		if arg == "-v" || arg == "--verbose" {
			verbose = true
			continue
		}
		out = append(out, arg)
	}
	return out, verbose
}

// cmdArgs holds the options every subcommand may accept.
type cmdArgs struct {
	target     string
	out        string
	title      string
	zeroClears bool
	write      bool
	steps      int
	positional []string
}

// parseArgs accepts the named options only; anything else starting with a
// dash is an error.
func parseArgs(args []string, allowed ...string) (cmdArgs, error) {
	var a cmdArgs
	ok := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		ok[name] = true
	}

	value := func(i int, name string) (string, error) {
		if i+1 >= len(args) {
			return "", errors.Errorf("option %s needs a value", name)
		}
		return args[i+1], nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		name := canonicalOption(arg)
		if name == "" {
			if strings.HasPrefix(arg, "-") && arg != "-" {
				return a, errors.Errorf("Unknown option: %s", arg)
			}
			a.positional = append(a.positional, arg)
			continue
		}
		if !ok[name] {
			return a, errors.Errorf("Unknown option: %s", arg)
		}

		switch name {
		case "target", "out", "title", "steps":
			v, err := value(i, arg)
			if err != nil {
				return a, err
			}
			i++
			switch name {
			case "target":
				a.target = v
			case "out":
				a.out = v
			case "title":
				a.title = v
			case "steps":
				n, err := strconv.Atoi(v)
				if err != nil || n <= 0 {
					return a, errors.Errorf("invalid step count: %s", v)
				}
				a.steps = n
			}
		case "zero-clears":
			a.zeroClears = true
		case "write":
			a.write = true
		}
	}
	return a, nil
}

func canonicalOption(arg string) string {
	switch arg {
	case "-t", "--target":
		return "target"
	case "-o", "--out":
		return "out"
	case "--title":
		return "title"
	case "--zero-clears":
		return "zero-clears"
	case "-w", "--write":
		return "write"
	case "-n", "--steps":
		return "steps"
	}
	return ""
}

// mustArgs parses args and requires exactly n positional arguments.
func mustArgs(args []string, n int, what string, allowed ...string) cmdArgs {
	a, err := parseArgs(args, allowed...)
	if err != nil {
		fail("%s", err)
	}
	if len(a.positional) < n {
		fail("Error: no %s specified", what)
	}
	if len(a.positional) > n {
		fail("Error: unexpected argument %q", a.positional[n])
	}
	return a
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	atexit.Exit(1)
}

func readSource(path string) string {
	source, err := os.ReadFile(path)
	if err != nil {
		fail("Error reading file: %s", err)
	}
	return string(source)
}

// resolveOptions layers flags over the project config over built-in
// defaults.
func resolveOptions(path string, a cmdArgs) (compiler.Options, config.Config) {
	cfg, err := config.Resolve(filepath.Dir(path))
	if err != nil {
		fail("Error: %s", err)
	}
	if cfg.Path != "" {
		slog.Debug("using config", "path", cfg.Path)
	}

	opts := compiler.Options{
		Target:         cfg.Target,
		Tempo:          cfg.Tempo,
		EmitZeroClears: cfg.ZeroClears || a.zeroClears,
		Logger:         slog.Default(),
	}
	// the built-in title only names untitled programs, so it must not
	// override @title
	if cfg.Title != config.Default().Title {
		opts.Title = cfg.Title
	}
	if a.target != "" {
		opts.Target = a.target
	}
	if a.title != "" {
		opts.Title = a.title
	}
	return opts, cfg
}

func printWarnings(path string, items []diagnostic.Diagnostic) {
	for _, d := range items {
		fmt.Fprintf(os.Stderr, "%s:%d:%d: warning: %s\n", path, d.Line, d.Column, d.Message)
		if d.Hint != "" {
			fmt.Fprintf(os.Stderr, "  hint: %s\n", d.Hint)
		}
	}
}

// compileOrExit compiles path and exits with the diagnostics on error.
func compileOrExit(path string, a cmdArgs) *compiler.Result {
	opts, _ := resolveOptions(path, a)
	res := compiler.Compile(readSource(path), opts)
	if !res.Success {
		fmt.Fprintln(os.Stderr, diagnostic.FormatList(res.Errors, path))
		atexit.Exit(1)
	}
	printWarnings(path, res.Warnings)
	return res
}
