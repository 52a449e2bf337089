package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/tebeka/atexit"

	"github.com/lhaig/tenten/internal/apu"
	"github.com/lhaig/tenten/internal/compiler"
	"github.com/lhaig/tenten/internal/diagnostic"
	"github.com/lhaig/tenten/internal/formatter"
	"github.com/lhaig/tenten/internal/hexbe"
	"github.com/lhaig/tenten/internal/packs"
)

const (
	historyFile = ".tenten_history"
	replPrompt  = "1010> "
	replName    = "repl"
)

const replHelp = `Enter $1010 statements; each line is added to the session source when
the whole session still compiles.

Commands:
  :help              Show this message
  :src               Print the session source, formatted
  :ir                Show the IR
  :map               Show the memory image
  :emit              Compile with the current target and print the output
  :target <name>     Set the target (default mtmc16)
  :sim [steps]       Simulate the session (default 16 steps)
  :pack <id> <name>  Replace the session with a pack pattern
  :reset             Clear the session
  :quit              Leave (Ctrl+D also works)`

// session is the source built up in the REPL.
type session struct {
	lines  []string
	target string
}

func (s *session) source() string {
	return strings.Join(s.lines, "\n")
}

// add appends line when the combined source has no errors and returns the
// diagnostics of the attempt.
func (s *session) add(line string) *diagnostic.Diagnostics {
	candidate := strings.Join(append(append([]string(nil), s.lines...), line), "\n")
	diags := compiler.Check(candidate)
	if !diags.HasErrors() {
		s.lines = append(s.lines, line)
	}
	return diags
}

func (s *session) compile() *compiler.Result {
	return compiler.Compile(s.source(), compiler.Options{Target: s.target})
}

func handleRepl(args []string) {
	if len(args) > 0 {
		fail("Error: repl takes no arguments")
	}

	fmt.Println("tentenc repl - type :help for commands")

	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	atexit.Register(func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
		ln.Close()
	})

	s := &session{target: compiler.DefaultTarget}
	for {
		line, err := ln.Prompt(replPrompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return
		}
		if err != nil {
			// Ctrl+C drops the current line
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(line, ":") {
			if quit := handleReplCommand(s, line); quit {
				return
			}
			continue
		}

		diags := s.add(line)
		if diags.HasErrors() {
			fmt.Println(diagnostic.FormatList(diags.Errors(), replName))
			continue
		}
		for _, w := range diags.Warnings() {
			fmt.Println(diagnostic.FormatList([]diagnostic.Diagnostic{w}, replName))
		}
	}
}

// handleReplCommand runs a :command and reports whether to quit.
func handleReplCommand(s *session, line string) (quit bool) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true

	case ":help":
		fmt.Println(replHelp)

	case ":reset":
		s.lines = nil
		fmt.Println("Session cleared.")

	case ":src":
		out, diags := formatter.FormatSource(s.source())
		if diags.HasErrors() {
			fmt.Println(diags.Format(replName))
			return false
		}
		fmt.Print(out)

	case ":target":
		if len(fields) != 2 {
			fmt.Printf("Target: %s\n", s.target)
			return false
		}
		if _, ok := compiler.CanonicalTarget(fields[1]); !ok {
			msg := "Unknown target: " + fields[1]
			if hint := diagnostic.DidYouMean(fields[1], compiler.TargetNames(), nil); hint != "" {
				msg += " (" + hint + ")"
			}
			fmt.Println(msg)
			return false
		}
		s.target = fields[1]

	case ":ir", ":map", ":emit":
		res := s.compile()
		if !res.Success {
			fmt.Println(diagnostic.FormatList(res.Errors, replName))
			return false
		}
		switch fields[0] {
		case ":ir":
			t := newTable(fmt.Sprintf("IR (%d instructions)", len(res.IR)))
			t.AppendHeader(table.Row{"#", "Line", "Op", "Operands", "Register"})
			t.AppendRows(irRows(res.IR))
			fmt.Println(t.Render())
		case ":map":
			t := newTable("Memory image")
			t.AppendHeader(table.Row{"Address", "Register", "Dec", "Hex"})
			t.AppendRows(mapRows(hexbe.Image(res.IR)))
			fmt.Println(t.Render())
		case ":emit":
			if res.Binary != nil {
				fmt.Printf("%d bytes of binary output\n", len(res.Binary))
			} else {
				fmt.Print(res.Output)
			}
		}

	case ":sim":
		steps := defaultSimSteps
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil || n <= 0 {
				fmt.Printf("invalid step count: %s\n", fields[1])
				return false
			}
			steps = n
		}
		res := s.compile()
		if !res.Success {
			fmt.Println(diagnostic.FormatList(res.Errors, replName))
			return false
		}
		host := apu.New(nil)
		host.LoadIR(res.IR)
		host.Start()
		log, err := apu.Simulate(host, steps)
		if err != nil {
			fmt.Println(err)
			return false
		}
		t := newTable(fmt.Sprintf("%d BPM (%d triggers)", host.Tempo(), len(log)))
		t.AppendHeader(table.Row{"Time (ms)", "Step", "Voice", "Args"})
		t.AppendRows(triggerRows(log))
		fmt.Println(t.Render())

	case ":pack":
		if len(fields) < 3 {
			fmt.Println("usage: :pack <id> <pattern name>")
			return false
		}
		name := strings.Join(fields[2:], " ")
		src, err := packs.ToSource(fields[1], name)
		if err != nil {
			fmt.Println(err)
			return false
		}
		s.lines = strings.Split(strings.TrimRight(src, "\n"), "\n")
		fmt.Printf("Loaded %s %s (%d lines).\n", fields[1], name, len(s.lines))

	default:
		fmt.Printf("Unknown command: %s (type :help)\n", fields[0])
	}
	return false
}
