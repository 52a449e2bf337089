// Package watbe emits a WebAssembly text module. The module exports one
// page of memory, an init function that performs every WRITE, and
// accessors for the sequencer registers and voice gates.
package watbe

import (
	"fmt"
	"strings"

	"github.com/lhaig/tenten/internal/ir"
)

// accessors are the fixed exported functions following init.
const accessors = `
  ;; Read byte from audio memory
  (func (export "read") (param $addr i32) (result i32)
    (i32.load8_u (local.get $addr))
  )

  ;; Write byte to audio memory
  (func (export "write") (param $addr i32) (param $val i32)
    (i32.store8 (local.get $addr) (local.get $val))
  )

  ;; Get sequencer control
  (func (export "get_ctrl") (result i32)
    (i32.load8_u (i32.const 0x1500))
  )

  ;; Get tempo
  (func (export "get_tempo") (result i32)
    (i32.load8_u (i32.const 0x1501))
  )

  ;; Get current step
  (func (export "get_step") (result i32)
    (i32.load8_u (i32.const 0x1502))
  )

  ;; Set current step
  (func (export "set_step") (param $step i32)
    (i32.store8 (i32.const 0x1502) (local.get $step))
  )

  ;; Get gate value for voice at step
  (func (export "get_gate") (param $voice i32) (param $step i32) (result i32)
    (i32.load8_u
      (i32.add
        (i32.add
          (i32.const 0x1000)
          (i32.mul (local.get $voice) (i32.const 0x100))
        )
        (local.get $step)
      )
    )
  )
)
`

// Generate produces a WebAssembly text module from an IR program.
func Generate(p ir.Program, opts ir.EmitOptions) string {
	opts = opts.WithDefaults()
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(";; %s\n", opts.Title))
	sb.WriteString(";; Generated by $1010 Compiler\n")
	sb.WriteString(";; Target: WebAssembly\n")
	sb.WriteString("\n")
	sb.WriteString("(module\n")
	sb.WriteString("  ;; Memory: 64KB (1 page)\n")
	sb.WriteString("  (memory (export \"memory\") 1)\n")
	sb.WriteString("\n")
	sb.WriteString("  ;; Audio MMIO region: 0x1000-0x15FF\n")
	sb.WriteString("\n")
	sb.WriteString("  ;; Initialize audio memory\n")
	sb.WriteString("  (func (export \"init\")\n")

	for _, in := range p.Writes() {
		sb.WriteString(fmt.Sprintf("    (i32.store8 (i32.const %d) (i32.const %d))\n", in.Addr(), in.Value()))
	}

	sb.WriteString("  )\n")
	sb.WriteString(accessors)

	return sb.String()
}
