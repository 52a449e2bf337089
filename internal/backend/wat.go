package backend

import (
	"github.com/lhaig/tenten/internal/ir"
	"github.com/lhaig/tenten/internal/watbe"
)

// WatBackend wraps watbe as a Backend implementation.
type WatBackend struct{}

// Name returns the backend name.
func (b *WatBackend) Name() string {
	return "wasm"
}

// Generate produces a WebAssembly text module from an IR program.
func (b *WatBackend) Generate(p ir.Program, opts ir.EmitOptions) string {
	return watbe.Generate(p, opts)
}
