package packs

import (
	"fmt"

	"github.com/lhaig/tenten/internal/ast"
	"github.com/lhaig/tenten/internal/formatter"
	"github.com/lhaig/tenten/internal/memmap"
	"github.com/lhaig/tenten/internal/parser"
)

// ParsePattern decodes a pack step string into 16 values:
//
//	x    1
//	X    127 (accent)
//	.    0
//	hh   two hex digits, one byte (e.g. 3C = note 60)
//
// A hex digit followed by a non-hex character still consumes both and
// yields the single digit. Other characters, and a hex digit in the last
// position, are skipped.
// Decoding stops after 16 values; short input is padded with zeros.
func ParsePattern(s string) [16]int {
	var out [16]int
	n := 0
	for i := 0; i < len(s) && n < len(out); {
		ch := s[i]
		switch {
		case ch == 'x':
			out[n] = 1
			n++
			i++
		case ch == 'X':
			out[n] = 127
			n++
			i++
		case ch == '.':
			n++
			i++
		case isHexDigit(ch) && i+1 < len(s):
			v := hexValue(ch)
			if next := s[i+1]; isHexDigit(next) {
				v = v<<4 | hexValue(next)
			}
			out[n] = v
			n++
			i += 2
		default:
			i++
		}
	}
	return out
}

func isHexDigit(ch byte) bool {
	return '0' <= ch && ch <= '9' || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}

func hexValue(ch byte) int {
	switch {
	case '0' <= ch && ch <= '9':
		return int(ch - '0')
	case 'a' <= ch && ch <= 'f':
		return int(ch-'a') + 10
	case 'A' <= ch && ch <= 'F':
		return int(ch-'A') + 10
	}
	return 0
}

// SceneName is the scene ToSource assigns every pattern voice to.
const SceneName = "main"

// ToSource renders a pattern as $1010 source that leaves the same non-zero
// bytes in memory as LoadPattern. Voices whose steps fit the source pattern
// grammar become @pattern definitions in a looping scene; note data becomes
// @poke lines.
func (c *Catalog) ToSource(id, pattern string) (string, error) {
	pack, pat, err := c.GetPattern(id, pattern)
	if err != nil {
		return "", err
	}

	prog := ast.NewProgram()
	prog.Append(&ast.Comment{Text: fmt.Sprintf("%s (%d): %s", pack.Name, pack.Year, pat.Name)})
	prog.Append(&ast.Title{Value: pack.ID + " " + pat.Name})

	switch {
	case pat.BPM >= parser.MinTempo && pat.BPM <= parser.MaxTempo:
		prog.Append(&ast.Tempo{Value: pat.BPM})
	case pat.BPM != 0:
		prog.Append(&ast.Poke{Addr: memmap.SeqTempo, Value: pat.BPM})
	}

	for _, pk := range pack.Init {
		prog.Append(&ast.Poke{Addr: pk.Addr, Value: pk.Value})
	}

	scene := &ast.Scene{Name: SceneName}
	var notes []*ast.Poke
	for _, v := range memmap.Voices {
		data := pat.Voice(v.Name)
		if data == "" {
			continue
		}
		steps := ast.Steps(ParsePattern(data))
		if encoded, ok := parser.EncodePattern(steps); ok {
			prog.Append(&ast.Pattern{Name: v.Name, Data: encoded, Steps: steps})
			scene.Assignments = append(scene.Assignments, &ast.Assignment{Voice: v.Name, Pattern: v.Name})
			continue
		}
		for i, val := range steps {
			if val != 0 {
				notes = append(notes, &ast.Poke{Addr: v.Base + i, Value: val})
			}
		}
	}

	if len(notes) > 0 {
		prog.Append(&ast.Comment{Text: "note data"})
		for _, n := range notes {
			prog.Append(n)
		}
	}

	prog.Append(scene)
	prog.Append(&ast.Play{Scene: SceneName, Loop: true})

	return formatter.Format(prog), nil
}
