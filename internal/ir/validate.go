package ir

import (
	"fmt"
)

// MemorySize is the size of the address space a WRITE may target.
const MemorySize = 0x10000

// Validate checks an IR program for correctness and returns a list of error
// messages. An empty slice indicates the program is valid.
func Validate(p Program) []string {
	var errors []string

	for i, in := range p {
		arity := in.Op.Arity()
		if arity < 0 {
			errors = append(errors, fmt.Sprintf("instruction %d: unknown opcode %s", i, in.Op))
			continue
		}
		if len(in.Args) != arity {
			errors = append(errors, fmt.Sprintf("instruction %d: %s takes %d argument(s), got %d",
				i, in.Op, arity, len(in.Args)))
			continue
		}
		if in.Op != COMMENT && in.Text != "" {
			errors = append(errors, fmt.Sprintf("instruction %d: %s carries comment text", i, in.Op))
		}

		if in.Op == WRITE {
			if in.Addr() < 0 || in.Addr() >= MemorySize {
				errors = append(errors, fmt.Sprintf("instruction %d: WRITE address $%X outside memory", i, in.Addr()))
			}
			if in.Value() < 0 || in.Value() > 255 {
				errors = append(errors, fmt.Sprintf("instruction %d: WRITE value %d is not a byte", i, in.Value()))
			}
		}
	}

	return errors
}
