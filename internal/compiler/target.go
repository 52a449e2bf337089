package compiler

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"github.com/lhaig/tenten/internal/backend"
	"github.com/lhaig/tenten/internal/diagnostic"
)

// targetAliases maps every accepted target name to its canonical name.
var targetAliases = map[string]string{
	"mtmc16": "mtmc16",
	"asm":    "mtmc16",
	"wasm":   "wasm",
	"wat":    "wasm",
	"c":      "c",
	"rust":   "rust",
	"rs":     "rust",
	"hex":    "hex",
	"wasm32": "wasm32",
}

// TargetNames returns every accepted target name, sorted.
func TargetNames() []string {
	names := make([]string, 0, len(targetAliases))
	for name := range targetAliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CanonicalTarget resolves an alias ("asm", "wat", "rs") to its canonical
// target name.
func CanonicalTarget(target string) (string, bool) {
	name, ok := targetAliases[target]
	return name, ok
}

// getBackend returns the appropriate backend for the given target
func getBackend(target string) (backend.Backend, error) {
	name, _ := CanonicalTarget(target)
	switch name {
	case "mtmc16":
		return &backend.AsmBackend{}, nil
	case "wasm":
		return &backend.WatBackend{}, nil
	case "c":
		return &backend.CBackend{}, nil
	case "rust":
		return &backend.RustBackend{}, nil
	case "hex":
		return &backend.HexBackend{}, nil
	default:
		return nil, errors.Errorf("Unknown target: %s", target)
	}
}

// getBinaryBackend returns a binary backend for targets that produce binary output
func getBinaryBackend(target string) (backend.BinaryBackend, bool) {
	switch target {
	case "wasm32":
		return &backend.WasmBackend{}, true
	default:
		return nil, false
	}
}

// FileExtension returns the file extension for the given target
func FileExtension(target string) string {
	name, _ := CanonicalTarget(target)
	switch name {
	case "mtmc16":
		return ".asm"
	case "wasm":
		return ".wat"
	case "c":
		return ".c"
	case "rust":
		return ".rs"
	case "hex":
		return ".hex"
	case "wasm32":
		return ".wasm"
	default:
		return ""
	}
}

// OutputPath derives the artifact path for a source file: the source's base
// name with the target's extension, placed in outDir when it is set.
func OutputPath(sourcePath, target, outDir string) string {
	base := filepath.Base(sourcePath)
	base = base[:len(base)-len(filepath.Ext(base))]
	if outDir == "" {
		outDir = filepath.Dir(sourcePath)
	}
	return filepath.Join(outDir, base+FileExtension(target))
}

// EmitToTarget compiles source and writes the artifact to outPath. The
// compile result is returned even when writing fails so callers can report
// warnings.
func EmitToTarget(source string, opts Options, outPath string) (*Result, error) {
	res := Compile(source, opts)
	if !res.Success {
		return res, errors.Errorf("compilation errors:\n%s", diagnostic.FormatList(res.Errors, "input"))
	}

	data := res.Binary
	if data == nil {
		data = []byte(res.Output)
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return res, errors.Wrap(err, "failed to create output directory")
		}
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return res, errors.Wrap(err, "failed to write output file")
	}
	opts.logger().Debug("wrote artifact", "path", outPath, "bytes", len(data))
	return res, nil
}
