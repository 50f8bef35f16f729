// Package testutil builds synthetic save archives for tests. Real SL2
// files are large and personal, so tests assemble the smallest
// archives that still exercise the binary format end to end.
package testutil

import (
	"encoding/binary"
	"testing"
	"unicode/utf16"

	"github.com/varkala/relicsmith/internal/bnd4"
)

// ArchiveEntry is one named plaintext payload for BuildArchive.
type ArchiveEntry struct {
	Name string
	Data []byte
}

// BuildArchive assembles an encrypted BND4 archive holding the given
// entries. Entry payloads must be a multiple of the AES block size.
func BuildArchive(t testing.TB, entries []ArchiveEntry) []byte {
	t.Helper()

	const (
		headerLen      = 64
		entryHeaderLen = 32
	)

	// Layout: archive header, entry headers, names, data blobs.
	nameRegion := headerLen + entryHeaderLen*len(entries)
	nameOffsets := make([]int, len(entries))
	names := make([]byte, 0, 64)
	for i, e := range entries {
		nameOffsets[i] = nameRegion + len(names)
		for _, u := range utf16.Encode([]rune(e.Name)) {
			names = binary.LittleEndian.AppendUint16(names, u)
		}
		names = binary.LittleEndian.AppendUint16(names, 0)
	}

	dataRegion := nameRegion + len(names)
	blobs := make([][]byte, len(entries))
	dataOffsets := make([]int, len(entries))
	off := dataRegion
	for i, e := range entries {
		iv := make([]byte, 16)
		for j := range iv {
			iv[j] = byte(i*16 + j + 1)
		}
		blob, err := bnd4.EncryptEntry(iv, e.Data)
		if err != nil {
			t.Fatalf("encrypting entry %d: %v", i, err)
		}
		blobs[i] = blob
		dataOffsets[i] = off
		off += len(blob)
	}

	out := make([]byte, off)
	copy(out, "BND4")
	binary.LittleEndian.PutUint32(out[12:], uint32(len(entries)))
	out[48] = 1 // unicode names

	for i := range entries {
		h := out[headerLen+entryHeaderLen*i:]
		copy(h, []byte{0x40, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF})
		binary.LittleEndian.PutUint32(h[8:], uint32(len(blobs[i])))
		binary.LittleEndian.PutUint32(h[16:], uint32(dataOffsets[i]))
		binary.LittleEndian.PutUint32(h[20:], uint32(nameOffsets[i]))
	}
	copy(out[nameRegion:], names)
	for i, blob := range blobs {
		copy(out[dataOffsets[i]:], blob)
	}
	return out
}
