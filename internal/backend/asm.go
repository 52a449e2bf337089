package backend

import (
	"github.com/lhaig/tenten/internal/asmbe"
	"github.com/lhaig/tenten/internal/ir"
)

// AsmBackend wraps asmbe as a Backend implementation.
type AsmBackend struct{}

// Name returns the backend name.
func (b *AsmBackend) Name() string {
	return "mtmc16"
}

// Generate produces MTMC-16 assembly from an IR program.
func (b *AsmBackend) Generate(p ir.Program, opts ir.EmitOptions) string {
	return asmbe.Generate(p, opts)
}
