package hexbe

import (
	"bufio"
	"encoding/hex"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Record is one decoded Intel HEX record.
type Record struct {
	Addr int
	Type int
	Data []byte
}

// Parse reads Intel HEX records up to and including the end-of-file record.
// Blank lines are ignored. Every record's checksum is verified.
func Parse(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		rec, err := parseRecord(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		records = append(records, rec)
		if rec.Type == TypeEOF {
			return records, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading hex image")
	}
	return nil, errors.New("missing end-of-file record")
}

func parseRecord(line string) (Record, error) {
	if !strings.HasPrefix(line, ":") {
		return Record{}, errors.Errorf("record does not start with ':': %q", line)
	}
	raw, err := hex.DecodeString(line[1:])
	if err != nil {
		return Record{}, errors.Wrap(err, "decoding record")
	}
	if len(raw) < 5 {
		return Record{}, errors.Errorf("record too short: %d bytes", len(raw))
	}

	length := int(raw[0])
	if len(raw) != length+5 {
		return Record{}, errors.Errorf("record declares %d data bytes but carries %d", length, len(raw)-5)
	}

	var sum byte
	for _, b := range raw {
		sum += b
	}
	if sum != 0 {
		return Record{}, errors.Errorf("checksum mismatch in %q", line)
	}

	rec := Record{
		Addr: int(raw[1])<<8 | int(raw[2]),
		Type: int(raw[3]),
		Data: raw[4 : 4+length],
	}
	if rec.Type != TypeData && rec.Type != TypeEOF {
		return Record{}, errors.Errorf("unsupported record type %02X", rec.Type)
	}
	return rec, nil
}
