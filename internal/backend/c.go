package backend

import (
	"github.com/lhaig/tenten/internal/cbe"
	"github.com/lhaig/tenten/internal/ir"
)

// CBackend wraps cbe as a Backend implementation.
type CBackend struct{}

// Name returns the backend name.
func (b *CBackend) Name() string {
	return "c"
}

// Generate produces embedded C source from an IR program.
func (b *CBackend) Generate(p ir.Program, opts ir.EmitOptions) string {
	return cbe.Generate(p, opts)
}
