package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/lhaig/tenten/internal/apu"
)

const defaultSimSteps = 16

func handleSimulate(args []string) {
	a := mustArgs(args, 1, "input file", "steps", "zero-clears")
	filePath := a.positional[0]
	res := compileOrExit(filePath, a)

	steps := a.steps
	if steps == 0 {
		steps = defaultSimSteps
	}

	host := apu.New(nil)
	host.LoadIR(res.IR)
	if !host.IsPlaying() {
		fmt.Println("Program never sets the play bit; starting from step 0.")
		host.Start()
	}

	log, err := apu.Simulate(host, steps)
	if err != nil {
		fail("Error: %s", err)
	}

	t := newTable(fmt.Sprintf("%s at %d BPM (%d triggers)", filePath, host.Tempo(), len(log)))
	t.AppendHeader(table.Row{"Time (ms)", "Step", "Voice", "Args"})
	t.AppendRows(triggerRows(log))
	fmt.Println(t.Render())

	state := "stopped"
	if host.IsPlaying() {
		state = "playing"
	}
	fmt.Printf("Sequencer %s at step %d.\n", state, host.Step())
}

func triggerRows(log []apu.Trigger) []table.Row {
	rows := make([]table.Row, 0, len(log))
	for _, tr := range log {
		args := make([]string, len(tr.Args))
		for i, v := range tr.Args {
			args[i] = fmt.Sprintf("%d", v)
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%.1f", float64(tr.Time)*1000),
			tr.Step,
			tr.Voice,
			strings.Join(args, ", "),
		})
	}
	return rows
}
