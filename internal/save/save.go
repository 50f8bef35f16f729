// Package save recovers character data from decrypted Nightreign save
// slots. The slot layout is undocumented, so everything here works off
// byte-level heuristics: the character name is the first long printable
// UTF-16LE run, murk and sigils sit at fixed offsets relative to the
// name, and the inventory is found by walking typed slot records from
// near the start of the data.
package save

import (
	"bytes"
	"encoding/binary"
	"log/slog"
	"unicode/utf16"
)

// EmptyEffectID marks an unused effect slot in a relic record.
const EmptyEffectID = 0xFFFFFFFF

const (
	// minInventoryEntries is how many consecutive valid slot records a
	// candidate offset must produce before it counts as the inventory.
	minInventoryEntries = 5

	// minNameChars is the shortest printable run accepted as the
	// character name. Shorter runs match non-name data.
	minNameChars = 3

	// inventorySearchEnd bounds the inventory scan. Known saves start
	// the inventory at 20, the margin allows for format drift.
	inventorySearchEnd = 100
)

const (
	slotWeapon = 0x80
	slotArmor  = 0x90
	slotRelic  = 0xC0
	slotEmpty  = 0x00
)

var emptySlot = []byte{0x00, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF}

var slotSizes = map[byte]int{
	slotWeapon: 80,
	slotArmor:  16,
	slotRelic:  72,
	slotEmpty:  len(emptySlot),
}

// RelicRecord is a raw relic inventory entry before table resolution.
type RelicRecord struct {
	ItemID    int
	EffectIDs [3]uint32
}

// Character holds everything recovered from one decrypted save slot.
// Murk, Sigils and the offsets are -1 when the heuristics found
// nothing, Relics is empty in that case.
type Character struct {
	Title           string
	Name            string
	Murk            int
	Sigils          int
	NameOffset      int
	InventoryOffset int
	Relics          []RelicRecord
}

// Parse scans one decrypted save slot. It never fails: slots that do
// not hold a character (settings, profile summaries) come back with
// empty fields.
func Parse(title string, data []byte) *Character {
	c := &Character{
		Title:           title,
		Murk:            -1,
		Sigils:          -1,
		NameOffset:      -1,
		InventoryOffset: -1,
	}

	c.NameOffset = findNameOffset(data)
	if c.NameOffset >= 0 {
		c.Name = decodeUTF16(data[c.NameOffset:])
		if v, ok := readU32(data, c.NameOffset+52); ok {
			c.Murk = int(v)
		}
		if v, ok := readU32(data, c.NameOffset-64); ok {
			c.Sigils = int(v)
		}
	}

	c.InventoryOffset = findInventoryOffset(data)
	c.Relics = readRelics(data, c.InventoryOffset)
	return c
}

// findNameOffset returns the start of the first printable UTF-16LE run
// longer than minNameChars, or the start of the last unfinished run
// when the data ends before one grows long enough.
func findNameOffset(data []byte) int {
	off := -1
	for i := 0; i+1 < len(data); i += 2 {
		if data[i] >= 32 && data[i] <= 126 && data[i+1] == 0 {
			if off < 0 {
				off = i
			}
			if i-off+2 > minNameChars*2 {
				return off
			}
		} else {
			off = -1
		}
	}
	return off
}

// slotType reads the inventory slot type byte at off. The type pair
// sits two bytes in: a valid first byte is 0x80..0x85, the second byte
// selects the record size. Empty slots carry a fixed marker instead.
func slotType(data []byte, off int) (byte, bool) {
	if p := off + 2; p+1 < len(data) && data[p] >= 0x80 && data[p] <= 0x85 {
		return data[p+1], true
	}
	if off >= 0 && off+len(emptySlot) < len(data) && bytes.Equal(data[off:off+len(emptySlot)], emptySlot) {
		return slotEmpty, true
	}
	return 0, false
}

func findInventoryOffset(data []byte) int {
	for start := 0; start < inventorySearchEnd; start += 2 {
		off := start
		entries := 0
		for off < len(data) {
			t, ok := slotType(data, off)
			if !ok {
				break
			}
			size, known := slotSizes[t]
			if !known {
				break
			}
			entries++
			if entries >= minInventoryEntries {
				return start
			}
			off += size
		}
	}
	return -1
}

func readRelics(data []byte, off int) []RelicRecord {
	if off < 0 {
		return nil
	}
	var out []RelicRecord
	for {
		t, ok := slotType(data, off)
		if !ok {
			break
		}
		size, known := slotSizes[t]
		if !known {
			slog.Debug("inventory slot of unknown type", "type", t, "offset", off)
			break
		}
		if t == slotRelic {
			if off+28 > len(data) {
				break
			}
			out = append(out, RelicRecord{
				ItemID: int(binary.LittleEndian.Uint16(data[off+4:])),
				EffectIDs: [3]uint32{
					binary.LittleEndian.Uint32(data[off+16:]),
					binary.LittleEndian.Uint32(data[off+20:]),
					binary.LittleEndian.Uint32(data[off+24:]),
				},
			})
		} else if t != slotEmpty {
			slog.Debug("non-relic inventory slot", "type", t, "offset", off)
		}
		off += size
	}
	return out
}

func readU32(data []byte, off int) (uint32, bool) {
	if off < 0 || off+4 > len(data) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(data[off:]), true
}

// decodeUTF16 decodes a little-endian UTF-16 string running up to the
// first double-zero terminator or the end of data.
func decodeUTF16(b []byte) string {
	units := make([]uint16, 0, 16)
	for i := 0; i+1 < len(b); i += 2 {
		u := binary.LittleEndian.Uint16(b[i:])
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	return string(utf16.Decode(units))
}
