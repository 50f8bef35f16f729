// Package bnd4 reads the BND4 archive container wrapping SL2 save
// files. The archive header is followed by fixed-size entry headers,
// each pointing at an encrypted payload and a UTF-16LE entry name.
package bnd4

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf16"
)

const (
	headerLen      = 64
	entryHeaderLen = 32

	// maxEntrySize rejects garbage entry headers before they force a
	// huge allocation.
	maxEntrySize = 1_000_000_000
)

var (
	archiveMagic = []byte("BND4")
	entryMagic   = []byte{0x40, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF}
)

// ErrNotArchive is returned when the BND4 identifier is missing.
var ErrNotArchive = errors.New("BND4 identifier not found")

// Entry is one decrypted archive entry.
type Entry struct {
	Name string
	Data []byte
}

// Decode parses a raw SL2 archive and decrypts every entry it can.
// A malformed archive header is fatal, individually broken entries are
// skipped with a debug log so one corrupt slot does not hide the rest.
func Decode(data []byte) ([]Entry, error) {
	if len(data) < headerLen {
		return nil, fmt.Errorf("not enough data to hold archive header (%d bytes)", len(data))
	}
	if !bytes.Equal(data[:len(archiveMagic)], archiveMagic) {
		return nil, ErrNotArchive
	}

	count := int(int32(binary.LittleEndian.Uint32(data[12:16])))
	unicodeNames := data[48] == 1
	slog.Debug("parsing archive", "entries", count, "unicode", unicodeNames)

	entries := make([]Entry, 0, max(count, 0))
	for i := 0; i < count; i++ {
		pos := headerLen + entryHeaderLen*i
		if pos+entryHeaderLen > len(data) {
			slog.Debug("file too small for entry header", "entry", i)
			break
		}
		header := data[pos : pos+entryHeaderLen]
		if !bytes.Equal(header[:len(entryMagic)], entryMagic) {
			slog.Debug("entry header magic mismatch", "entry", i)
			continue
		}

		size := int(int32(binary.LittleEndian.Uint32(header[8:12])))
		dataOff := int(int32(binary.LittleEndian.Uint32(header[16:20])))
		nameOff := int(int32(binary.LittleEndian.Uint32(header[20:24])))

		if size <= 0 || size > maxEntrySize {
			slog.Debug("entry has invalid size", "entry", i, "size", size)
			continue
		}
		if dataOff <= 0 || dataOff+size > len(data) {
			slog.Debug("entry has invalid data offset", "entry", i, "offset", dataOff)
			continue
		}
		if nameOff <= 0 || nameOff >= len(data) {
			slog.Debug("entry has invalid name offset", "entry", i, "offset", nameOff)
			continue
		}

		plain, err := DecryptEntry(data[dataOff : dataOff+size])
		if err != nil {
			slog.Debug("entry decryption failed", "entry", i, "err", err)
			continue
		}
		entries = append(entries, Entry{
			Name: utf16Name(data, nameOff),
			Data: plain,
		})
	}

	slog.Debug("archive decoded", "decrypted", len(entries), "declared", count)
	return entries, nil
}

// utf16Name decodes the UTF-16LE entry name starting at off, ending at
// the first double-zero terminator.
func utf16Name(data []byte, off int) string {
	units := make([]uint16, 0, 16)
	for i := off; i+1 < len(data); i += 2 {
		u := binary.LittleEndian.Uint16(data[i:])
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	return string(utf16.Decode(units))
}
