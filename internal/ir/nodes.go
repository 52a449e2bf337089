package ir

import (
	"fmt"
	"strings"
)

// Opcode identifies an IR instruction. Values are stable; they are the
// bytecode numbering shared with other $1010 tools.
type Opcode byte

const (
	NOP     Opcode = 0x00
	WRITE   Opcode = 0x01 // WRITE addr, value
	TEMPO   Opcode = 0x02 // TEMPO bpm
	SWING   Opcode = 0x03 // SWING percent
	PLAY    Opcode = 0x04
	STOP    Opcode = 0x05
	LOOP    Opcode = 0x06 // LOOP count
	ENDLOOP Opcode = 0x07
	WAIT    Opcode = 0x08 // WAIT steps
	COPY    Opcode = 0x09 // COPY src, dst, len
	COMMENT Opcode = 0xFF // metadata only, never a memory effect
)

// String returns the mnemonic of the opcode
func (op Opcode) String() string {
	switch op {
	case NOP:
		return "NOP"
	case WRITE:
		return "WRITE"
	case TEMPO:
		return "TEMPO"
	case SWING:
		return "SWING"
	case PLAY:
		return "PLAY"
	case STOP:
		return "STOP"
	case LOOP:
		return "LOOP"
	case ENDLOOP:
		return "ENDLOOP"
	case WAIT:
		return "WAIT"
	case COPY:
		return "COPY"
	case COMMENT:
		return "COMMENT"
	default:
		return fmt.Sprintf("Opcode(0x%02X)", byte(op))
	}
}

// Arity returns the number of integer arguments the opcode carries, or -1
// for an unknown opcode.
func (op Opcode) Arity() int {
	switch op {
	case NOP, PLAY, STOP, ENDLOOP, COMMENT:
		return 0
	case TEMPO, SWING, LOOP, WAIT:
		return 1
	case WRITE:
		return 2
	case COPY:
		return 3
	default:
		return -1
	}
}

// Instruction is a single IR instruction. Args holds the integer operands;
// Text is only used by COMMENT. Line is the source line that produced it.
type Instruction struct {
	Op   Opcode
	Args []int
	Text string
	Line int
}

// Addr returns the address operand of a WRITE.
func (in Instruction) Addr() int { return in.Args[0] }

// Value returns the value operand of a WRITE.
func (in Instruction) Value() int { return in.Args[1] }

// IsWrite reports whether the instruction is a WRITE.
func (in Instruction) IsWrite() bool { return in.Op == WRITE && len(in.Args) == 2 }

// String renders the instruction as a listing line without its index.
func (in Instruction) String() string {
	switch in.Op {
	case COMMENT:
		return fmt.Sprintf("%-7s %s", in.Op, in.Text)
	case WRITE:
		if len(in.Args) == 2 {
			return fmt.Sprintf("%-7s $%04X, %d", in.Op, in.Args[0], in.Args[1])
		}
	}
	if len(in.Args) == 0 {
		return in.Op.String()
	}
	args := make([]string, len(in.Args))
	for i, a := range in.Args {
		args[i] = fmt.Sprintf("%d", a)
	}
	return fmt.Sprintf("%-7s %s", in.Op, strings.Join(args, ", "))
}

// Program is the flat instruction sequence produced for one compilation.
// It is never modified after generation.
type Program []Instruction

// Writes returns the WRITE instructions in program order.
func (p Program) Writes() []Instruction {
	out := make([]Instruction, 0, len(p))
	for _, in := range p {
		if in.IsWrite() {
			out = append(out, in)
		}
	}
	return out
}

// Format renders a numbered listing of the program, one instruction per line.
//
//	0000  COMMENT TITLE: Demo
//	0001  TEMPO   120
//	0002  WRITE   $1501, 120
func Format(p Program) string {
	var sb strings.Builder
	for i, in := range p {
		sb.WriteString(fmt.Sprintf("%04d  %s\n", i, in))
	}
	return sb.String()
}
