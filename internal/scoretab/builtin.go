package scoretab

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed builtin/*.json
var builtinFS embed.FS

const (
	builtinDir    = "builtin"
	builtinPrefix = "scores_"
	builtinSuffix = ".json"
)

// Builtins returns the names of the embedded score tables, sorted.
func Builtins() []string {
	entries, err := builtinFS.ReadDir(builtinDir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, builtinPrefix) || !strings.HasSuffix(name, builtinSuffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(strings.TrimPrefix(name, builtinPrefix), builtinSuffix))
	}
	sort.Strings(names)
	return names
}

// BuiltinText returns the raw text of an embedded score table, as a
// starting point for a user's own file.
func BuiltinText(name string) ([]byte, error) {
	raw, err := builtinFS.ReadFile(builtinDir + "/" + builtinPrefix + name + builtinSuffix)
	if err != nil {
		return nil, fmt.Errorf("no builtin score table %q (have %s)", name, strings.Join(Builtins(), ", "))
	}
	return raw, nil
}

// LoadBuiltin parses an embedded score table by name.
func LoadBuiltin(name string) (*Table, error) {
	raw, err := BuiltinText(name)
	if err != nil {
		return nil, err
	}
	t, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("builtin score table %s: %w", name, err)
	}
	return t, nil
}
