package parser

import (
	"regexp"
	"strings"

	"github.com/lhaig/tenten/internal/ast"
)

// Step values produced by the trigger characters.
const (
	Rest    = 0
	Trigger = 1
	Accent  = 127
)

var noteRegex = regexp.MustCompile(`^([A-Ga-g][#b]?)([0-9])$`)

var semitones = map[string]int{
	"C": 0, "C#": 1, "DB": 1, "D": 2, "D#": 3, "EB": 3, "E": 4, "F": 5,
	"F#": 6, "GB": 6, "G": 7, "G#": 8, "AB": 8, "A": 9, "A#": 10, "BB": 10, "B": 11,
}

// DecodePattern turns a pattern string into 16 step values.
//
//	. or -    rest (0)
//	x         trigger (1)
//	X         accented trigger (127)
//	C4, d#3   note number, (octave+1)*12 + semitone
//	0-9       the digit's value
//
// A note consumes all of its characters but yields a single step, so the
// steps after it move left and the tail is padded with rests. Input longer
// than 16 characters is truncated, shorter input is padded with rests.
func DecodePattern(data string) ast.Steps {
	var steps ast.Steps
	chars := []rune(data)
	n := 0

	at := func(i int) rune {
		if i < len(chars) {
			return chars[i]
		}
		return '.'
	}

	for i := 0; i < 16; i++ {
		ch := at(i)
		value := Rest

		switch {
		case ch == '.' || ch == '-':
		case ch == 'x':
			value = Trigger
		case ch == 'X':
			value = Accent
		case isNoteLetter(ch):
			j := i + 1
			for j < len(chars) && isNoteTail(chars[j]) {
				j++
			}
			if note, ok := noteNumber(string(chars[i:j])); ok {
				value = note
				i = j - 1
			}
		case '0' <= ch && ch <= '9':
			value = int(ch - '0')
		}

		steps[n] = value
		n++
	}

	return steps
}

// EncodePattern renders steps as a 16-character pattern string using only
// single-character step forms. It reports false when a step value has no
// single-character form (notes, values above 9 other than 127).
func EncodePattern(steps ast.Steps) (string, bool) {
	var sb strings.Builder
	for _, v := range steps {
		switch {
		case v == Rest:
			sb.WriteByte('.')
		case v == Trigger:
			sb.WriteByte('x')
		case v == Accent:
			sb.WriteByte('X')
		case v >= 2 && v <= 9:
			sb.WriteByte(byte('0' + v))
		default:
			return "", false
		}
	}
	return sb.String(), true
}

// noteNumber converts a note name such as "C4" or "Bb2" to its number.
func noteNumber(s string) (int, bool) {
	m := noteRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	octave := int(m[2][0] - '0')
	return (octave+1)*12 + semitones[strings.ToUpper(m[1])], true
}

func isNoteLetter(ch rune) bool {
	return 'A' <= ch && ch <= 'G' || 'a' <= ch && ch <= 'g'
}

func isNoteTail(ch rune) bool {
	return ch == '#' || ch == 'b' || '0' <= ch && ch <= '9'
}
