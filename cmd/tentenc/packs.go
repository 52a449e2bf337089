package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/lhaig/tenten/internal/memmap"
	"github.com/lhaig/tenten/internal/packs"
)

func handlePacks(args []string) {
	a, err := parseArgs(args)
	if err != nil {
		fail("%s", err)
	}

	switch len(a.positional) {
	case 0:
		listPacks()
	case 1:
		showPack(a.positional[0])
	default:
		fail("Error: unexpected argument %q", a.positional[1])
	}
}

func listPacks() {
	catalog := packs.Default()
	groups := catalog.ByCategory()

	t := newTable(fmt.Sprintf("Packs (%d)", len(catalog.Names())))
	t.AppendHeader(table.Row{"Category", "ID", "Name", "Year", "Patterns"})
	for _, cat := range catalog.Categories() {
		for _, p := range groups[cat] {
			t.AppendRow(table.Row{cat, p.ID, p.Name, p.Year, strings.Join(p.PatternNames(), ", ")})
		}
		t.AppendSeparator()
	}
	fmt.Println(t.Render())
}

func showPack(id string) {
	p, err := packs.Get(id)
	if err != nil {
		fail("Error: %s", err)
	}

	fmt.Printf("%s (%s, %d)\n", p.Name, p.Manufacturer, p.Year)
	fmt.Println(p.Description)
	if len(p.Teaches) > 0 {
		fmt.Println()
		fmt.Println("Teaches:")
		for _, topic := range p.Teaches {
			fmt.Printf("  - %s\n", topic)
		}
	}
	fmt.Println()

	t := newTable("Patterns")
	header := table.Row{"Pattern", "BPM"}
	for _, name := range memmap.VoiceNames() {
		header = append(header, name)
	}
	t.AppendHeader(header)
	for i := range p.Patterns {
		pat := &p.Patterns[i]
		row := table.Row{pat.Name, pat.BPM}
		for _, name := range memmap.VoiceNames() {
			row = append(row, pat.Voice(name))
		}
		t.AppendRow(row)
	}
	fmt.Println(t.Render())
}

func handlePack2Src(args []string) {
	a := mustArgs(args, 2, "pack and pattern", "out")

	src, err := packs.ToSource(a.positional[0], a.positional[1])
	if err != nil {
		fail("Error: %s", err)
	}

	if a.out == "" {
		fmt.Print(src)
		return
	}
	if err := os.WriteFile(a.out, []byte(src), 0644); err != nil {
		fail("Error writing file: %s", err)
	}
	fmt.Printf("Wrote %s\n", a.out)
}
