package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tebeka/atexit"

	"github.com/lhaig/tenten/internal/ast"
	"github.com/lhaig/tenten/internal/hexbe"
	"github.com/lhaig/tenten/internal/ir"
	"github.com/lhaig/tenten/internal/memmap"
	"github.com/lhaig/tenten/internal/parser"
)

func handleAST(args []string) {
	a := mustArgs(args, 1, "input file")
	filePath := a.positional[0]

	prog, diags := parser.ParseSource(readSource(filePath))
	if diags.HasErrors() {
		fmt.Fprintln(os.Stderr, diags.Format(filePath))
		atexit.Exit(1)
	}
	fmt.Print(ast.Print(prog))
}

func handleIR(args []string) {
	a := mustArgs(args, 1, "input file", "zero-clears")
	res := compileOrExit(a.positional[0], a)

	t := newTable(fmt.Sprintf("IR (%d instructions)", len(res.IR)))
	t.AppendHeader(table.Row{"#", "Line", "Op", "Operands", "Register"})
	t.AppendRows(irRows(res.IR))
	fmt.Println(t.Render())

	if report := irProblems(res.IR); report != "" {
		fmt.Fprint(os.Stderr, report)
		atexit.Exit(1)
	}
}

// irProblems formats the IR validation failures, or returns "" for a valid
// program.
func irProblems(p ir.Program) string {
	problems := ir.Validate(p)
	if len(problems) == 0 {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "IR validation failed (%d problems):\n", len(problems))
	for _, msg := range problems {
		sb.WriteString("  " + msg + "\n")
	}
	return sb.String()
}

func handleMap(args []string) {
	a := mustArgs(args, 1, "input file", "zero-clears")
	res := compileOrExit(a.positional[0], a)

	rows := mapRows(hexbe.Image(res.IR))
	t := newTable(fmt.Sprintf("Memory image (%d non-zero bytes)", len(rows)))
	t.AppendHeader(table.Row{"Address", "Register", "Dec", "Hex"})
	t.AppendRows(rows)
	fmt.Println(t.Render())
}

func newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetTitle(title)
	t.SetStyle(table.StyleLight)
	return t
}

func irRows(p ir.Program) []table.Row {
	rows := make([]table.Row, 0, len(p))
	for i, in := range p {
		var operands []string
		register := ""
		switch {
		case in.Op == ir.COMMENT:
			operands = append(operands, in.Text)
		case in.IsWrite():
			operands = append(operands, fmt.Sprintf("$%04X", in.Addr()), fmt.Sprintf("%d", in.Value()))
			register = memmap.RegisterName(in.Addr())
		default:
			for _, arg := range in.Args {
				operands = append(operands, fmt.Sprintf("%d", arg))
			}
		}
		rows = append(rows, table.Row{i, in.Line, in.Op.String(), strings.Join(operands, ", "), register})
	}
	return rows
}

// mapRows lists the non-zero bytes of an audio-region image.
func mapRows(img []byte) []table.Row {
	var rows []table.Row
	for off, b := range img {
		if b == 0 {
			continue
		}
		addr := memmap.AudioStart + off
		rows = append(rows, table.Row{
			fmt.Sprintf("$%04X", addr),
			memmap.RegisterName(addr),
			int(b),
			fmt.Sprintf("$%02X", b),
		})
	}
	return rows
}
