package backend

import (
	"github.com/lhaig/tenten/internal/hexbe"
	"github.com/lhaig/tenten/internal/ir"
)

// HexBackend wraps hexbe as a Backend implementation.
type HexBackend struct{}

// Name returns the backend name.
func (b *HexBackend) Name() string {
	return "hex"
}

// Generate produces an Intel HEX image of the audio region from an IR program.
func (b *HexBackend) Generate(p ir.Program, opts ir.EmitOptions) string {
	return hexbe.Generate(p, opts)
}
