package testutil

import (
	"encoding/binary"
	"testing"
	"unicode/utf16"

	"github.com/varkala/relicsmith/internal/save"
)

// SlotSpec describes a synthetic decrypted save slot.
type SlotSpec struct {
	Name   string
	Murk   uint32
	Sigils uint32
	Relics []save.RelicRecord
}

const (
	slotInventoryOffset = 20
	slotNameOffset      = 760
	slotLen             = 864
)

// MakeCharacterSlot lays out a decrypted save slot the way the parser
// expects to find one: inventory records at a small offset, the
// character name as the first long printable UTF-16LE run, murk and
// sigils at their offsets relative to the name. The result length is a
// multiple of the AES block size so it can go straight into
// BuildArchive.
func MakeCharacterSlot(t testing.TB, spec SlotSpec) []byte {
	t.Helper()

	if len(spec.Name) < 4 {
		t.Fatalf("slot name %q too short, the scan needs more than 3 printable characters", spec.Name)
	}

	data := make([]byte, slotLen)
	// Non-zero filler before the inventory so the scan cannot lock
	// onto offset 0.
	for i := 0; i < slotInventoryOffset; i++ {
		data[i] = 0x11
	}

	off := slotInventoryOffset
	// One weapon and one armor slot ahead of the relics, as real
	// inventories have.
	off = putInventorySlot(data, off, 0xC1, 0x80, 80)
	off = putInventorySlot(data, off, 0xC2, 0x90, 16)
	for i, rec := range spec.Relics {
		if off+72 > slotNameOffset-80 {
			t.Fatalf("too many relics for the synthetic slot (%d)", len(spec.Relics))
		}
		start := off
		off = putInventorySlot(data, off, uint16(i+1), 0xC0, 72)
		binary.LittleEndian.PutUint16(data[start+4:], uint16(rec.ItemID))
		binary.LittleEndian.PutUint32(data[start+16:], rec.EffectIDs[0])
		binary.LittleEndian.PutUint32(data[start+20:], rec.EffectIDs[1])
		binary.LittleEndian.PutUint32(data[start+24:], rec.EffectIDs[2])
	}
	// Empty-slot markers terminate the inventory walk and pad the
	// entry count past the minimum the offset scan requires.
	markers := 6 - (2 + len(spec.Relics))
	if markers < 1 {
		markers = 1
	}
	for range markers {
		copy(data[off:], []byte{0x00, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF})
		off += 8
	}

	for i, u := range utf16.Encode([]rune(spec.Name)) {
		binary.LittleEndian.PutUint16(data[slotNameOffset+2*i:], u)
	}
	binary.LittleEndian.PutUint32(data[slotNameOffset+52:], spec.Murk)
	binary.LittleEndian.PutUint32(data[slotNameOffset-64:], spec.Sigils)
	return data
}

// putInventorySlot writes the slot index and type pair shared by every
// inventory record and returns the offset of the next record.
func putInventorySlot(data []byte, off int, index uint16, typ byte, size int) int {
	binary.LittleEndian.PutUint16(data[off:], index)
	data[off+2] = 0x80
	data[off+3] = typ
	return off + size
}
