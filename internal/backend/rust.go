package backend

import (
	"github.com/lhaig/tenten/internal/ir"
	"github.com/lhaig/tenten/internal/rustbe"
)

// RustBackend wraps rustbe as a Backend implementation.
type RustBackend struct{}

// Name returns the backend name.
func (b *RustBackend) Name() string {
	return "rust"
}

// Generate produces no_std Rust source from an IR program.
func (b *RustBackend) Generate(p ir.Program, opts ir.EmitOptions) string {
	return rustbe.Generate(p, opts)
}
