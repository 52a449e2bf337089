// Package wasmbe generates a WASM binary module directly from IR. The module
// mirrors the text backend: one exported page of memory, an init function
// that performs every WRITE, and accessors for the sequencer registers.
package wasmbe

import (
	"github.com/lhaig/tenten/internal/ir"
	"github.com/lhaig/tenten/internal/memmap"
)

// Generate produces a WASM binary module from an IR program.
func Generate(p ir.Program, _ ir.EmitOptions) []byte {
	g := newGenerator()

	g.addFunction("init", nil, nil, initBody(p))
	g.addFunction("read", []byte{valI32}, []byte{valI32}, cat(
		localGet(0), load8(),
	))
	g.addFunction("write", []byte{valI32, valI32}, nil, cat(
		localGet(0), localGet(1), store8(),
	))
	g.addFunction("get_ctrl", nil, []byte{valI32}, cat(i32Const(memmap.SeqCtrl), load8()))
	g.addFunction("get_tempo", nil, []byte{valI32}, cat(i32Const(memmap.SeqTempo), load8()))
	g.addFunction("get_step", nil, []byte{valI32}, cat(i32Const(memmap.SeqStep), load8()))
	g.addFunction("set_step", []byte{valI32}, nil, cat(
		i32Const(memmap.SeqStep), localGet(0), store8(),
	))
	g.addFunction("get_gate", []byte{valI32, valI32}, []byte{valI32}, cat(
		i32Const(memmap.AudioStart),
		localGet(0), i32Const(0x100), []byte{opI32Mul},
		[]byte{opI32Add},
		localGet(1),
		[]byte{opI32Add},
		load8(),
	))

	return g.emit()
}

// ExportNames lists the function exports in index order.
var ExportNames = []string{
	"init", "read", "write", "get_ctrl", "get_tempo", "get_step", "set_step", "get_gate",
}

// funcSig represents a WASM function type signature.
type funcSig struct {
	params  []byte
	results []byte
}

// generator builds a WASM binary module.
type generator struct {
	types     []funcSig      // type section entries
	typeCache map[string]int // sig string -> type index
	funcs     []int          // function section: type index per function
	exports   []wasmExport   // export section entries
	codes     [][]byte       // code section: encoded function bodies
}

type wasmExport struct {
	name  string
	kind  byte
	index int
}

func newGenerator() *generator {
	return &generator{typeCache: make(map[string]int)}
}

// typeIndex returns the type section index for a given signature, adding it if new.
func (g *generator) typeIndex(params, results []byte) int {
	key := string(params) + "|" + string(results)
	if idx, ok := g.typeCache[key]; ok {
		return idx
	}
	idx := len(g.types)
	g.types = append(g.types, funcSig{params: params, results: results})
	g.typeCache[key] = idx
	return idx
}

// addFunction registers an exported function. The body holds instructions
// only; the locals vector and the trailing end are added here.
func (g *generator) addFunction(name string, params, results, body []byte) {
	fidx := len(g.funcs)
	g.funcs = append(g.funcs, g.typeIndex(params, results))
	g.exports = append(g.exports, wasmExport{name: name, kind: exportFunc, index: fidx})

	code := encodeLEB128U(0) // no locals beyond parameters
	code = append(code, body...)
	code = append(code, opEnd)
	g.codes = append(g.codes, code)
}

// emit produces the complete WASM binary.
func (g *generator) emit() []byte {
	var wasm []byte
	wasm = append(wasm, wasmMagic...)
	wasm = append(wasm, wasmVersion...)
	wasm = append(wasm, g.emitTypeSection()...)
	wasm = append(wasm, g.emitFunctionSection()...)
	wasm = append(wasm, g.emitMemorySection()...)
	wasm = append(wasm, g.emitExportSection()...)
	wasm = append(wasm, g.emitCodeSection()...)
	return wasm
}

func (g *generator) emitTypeSection() []byte {
	var contents []byte
	for _, sig := range g.types {
		contents = append(contents, 0x60)
		contents = append(contents, encodeLEB128U(uint64(len(sig.params)))...)
		contents = append(contents, sig.params...)
		contents = append(contents, encodeLEB128U(uint64(len(sig.results)))...)
		contents = append(contents, sig.results...)
	}
	return encodeSection(sectionType, encodeVector(len(g.types), contents))
}

func (g *generator) emitFunctionSection() []byte {
	var contents []byte
	for _, tidx := range g.funcs {
		contents = append(contents, encodeLEB128U(uint64(tidx))...)
	}
	return encodeSection(sectionFunction, encodeVector(len(g.funcs), contents))
}

func (g *generator) emitMemorySection() []byte {
	// limits: flags=0 (no max), min=1 page
	contents := []byte{0x00}
	contents = append(contents, encodeLEB128U(1)...)
	return encodeSection(sectionMemory, encodeVector(1, contents))
}

func (g *generator) emitExportSection() []byte {
	// memory first, then the functions in index order
	contents := encodeString("memory")
	contents = append(contents, exportMemory)
	contents = append(contents, encodeLEB128U(0)...)

	for _, exp := range g.exports {
		contents = append(contents, encodeString(exp.name)...)
		contents = append(contents, exp.kind)
		contents = append(contents, encodeLEB128U(uint64(exp.index))...)
	}

	return encodeSection(sectionExport, encodeVector(len(g.exports)+1, contents))
}

func (g *generator) emitCodeSection() []byte {
	var contents []byte
	for _, code := range g.codes {
		contents = append(contents, encodeLEB128U(uint64(len(code)))...)
		contents = append(contents, code...)
	}
	return encodeSection(sectionCode, encodeVector(len(g.codes), contents))
}

// initBody stores every WRITE's value, in program order.
func initBody(p ir.Program) []byte {
	var body []byte
	for _, in := range p.Writes() {
		body = append(body, i32Const(in.Addr())...)
		body = append(body, i32Const(in.Value())...)
		body = append(body, store8()...)
	}
	return body
}

func i32Const(v int) []byte {
	return append([]byte{opI32Const}, encodeLEB128S(int64(int32(v)))...)
}

func localGet(idx int) []byte {
	return append([]byte{opLocalGet}, encodeLEB128U(uint64(idx))...)
}

// load8 and store8 use byte alignment and a zero offset.
func load8() []byte  { return []byte{opI32Load8U, 0x00, 0x00} }
func store8() []byte { return []byte{opI32Store8, 0x00, 0x00} }

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
