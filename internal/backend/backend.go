package backend

import "github.com/lhaig/tenten/internal/ir"

// Backend is the interface that all text code generation backends implement.
type Backend interface {
	// Name returns the backend name (e.g., "mtmc16", "wasm", "c")
	Name() string
	// Generate produces output text from an IR program.
	Generate(p ir.Program, opts ir.EmitOptions) string
}

// BinaryBackend is implemented by backends whose output is not text.
type BinaryBackend interface {
	Name() string
	// GenerateBytes produces the binary artifact for an IR program.
	GenerateBytes(p ir.Program, opts ir.EmitOptions) []byte
}
