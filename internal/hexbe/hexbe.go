// Package hexbe emits the audio region as an Intel HEX memory image and
// reads such images back.
package hexbe

import (
	"fmt"
	"strings"

	"github.com/lhaig/tenten/internal/ir"
	"github.com/lhaig/tenten/internal/memmap"
)

// RecordSize is the number of data bytes per record.
const RecordSize = 16

// EOFRecord terminates every image.
const EOFRecord = ":00000001FF"

// Record types.
const (
	TypeData = 0x00
	TypeEOF  = 0x01
)

// Image applies every audio-region WRITE in program order and returns the
// resulting bytes. Index 0 is address memmap.AudioStart. Later writes to an
// address replace earlier ones; values are truncated to a byte.
func Image(p ir.Program) []byte {
	mem := make([]byte, memmap.AudioSize)
	for _, in := range p.Writes() {
		if memmap.InAudioRegion(in.Addr()) {
			mem[in.Addr()-memmap.AudioStart] = byte(in.Value())
		}
	}
	return mem
}

// Generate produces an Intel HEX image of the audio region. Blocks of 16
// bytes that are entirely zero are omitted.
func Generate(p ir.Program, _ ir.EmitOptions) string {
	mem := Image(p)
	var sb strings.Builder

	for off := 0; off < len(mem); off += RecordSize {
		end := off + RecordSize
		if end > len(mem) {
			end = len(mem)
		}
		block := mem[off:end]
		if allZero(block) {
			continue
		}
		sb.WriteString(EncodeRecord(memmap.AudioStart+off, TypeData, block))
		sb.WriteString("\n")
	}

	sb.WriteString(EOFRecord)
	sb.WriteString("\n")
	return sb.String()
}

// EncodeRecord formats one record: length, 16-bit address, type, data and
// checksum, each byte as two upper-case hex digits.
func EncodeRecord(addr, recType int, data []byte) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(":%02X%04X%02X", len(data), addr&0xFFFF, recType))
	for _, b := range data {
		sb.WriteString(fmt.Sprintf("%02X", b))
	}
	sb.WriteString(fmt.Sprintf("%02X", Checksum(addr, recType, data)))
	return sb.String()
}

// Checksum returns the two's complement of the byte sum of a record's
// length, address, type and data fields.
func Checksum(addr, recType int, data []byte) byte {
	sum := len(data) + (addr>>8)&0xFF + addr&0xFF + recType
	for _, b := range data {
		sum += int(b)
	}
	return byte(-sum)
}

func allZero(block []byte) bool {
	for _, b := range block {
		if b != 0 {
			return false
		}
	}
	return true
}
