package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/varkala/relicsmith/internal/bnd4"
	"github.com/varkala/relicsmith/internal/save"
)

// savePathArg resolves the save file path from the positional argument
// or the config file.
func savePathArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Save != "" {
		return cfg.Save, nil
	}
	return "", fmt.Errorf("no save file: pass one as the argument or set save: in %s", configPath)
}

// loadSave reads an .sl2 archive and parses every entry into a
// character slot.
func loadSave(path string) ([]*save.Character, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading save: %w", err)
	}
	entries, err := bnd4.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding save %s: %w", path, err)
	}
	chars := make([]*save.Character, 0, len(entries))
	for _, e := range entries {
		chars = append(chars, save.Parse(e.Name, e.Data))
	}
	slog.Debug("save decoded", "path", path, "entries", len(chars))
	return chars, nil
}

// slotCharacter picks one save slot, by archive entry title first and
// by position when the titles do not follow the USER_DATA scheme.
func slotCharacter(chars []*save.Character, slot int) (*save.Character, error) {
	title := fmt.Sprintf("USER_DATA%03d", slot)
	for _, c := range chars {
		if c.Title == title {
			return c, nil
		}
	}
	if slot >= 0 && slot < len(chars) {
		return chars[slot], nil
	}
	return nil, fmt.Errorf("save has no slot %d (%d entries)", slot, len(chars))
}
