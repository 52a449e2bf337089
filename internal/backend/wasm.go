package backend

import (
	"github.com/lhaig/tenten/internal/ir"
	"github.com/lhaig/tenten/internal/wasmbe"
)

// WasmBackend wraps the wasmbe as a BinaryBackend implementation.
type WasmBackend struct{}

// Name returns the backend name.
func (b *WasmBackend) Name() string {
	return "wasm32"
}

// GenerateBytes produces a WASM binary module from an IR program.
func (b *WasmBackend) GenerateBytes(p ir.Program, opts ir.EmitOptions) []byte {
	return wasmbe.Generate(p, opts)
}
