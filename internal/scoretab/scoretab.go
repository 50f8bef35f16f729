// Package scoretab loads the effect score table that drives build
// ranking. A table file is a JSON object in one of two shapes, freely
// mixed entry by entry:
//
//	{"Improved Critical Hits": 10}          effect name to score
//	{"10": ["Vigor", "Endurance"]}          score to effect name(s)
//
// A bare effect name scales with the effect level, a name with a "+N"
// suffix matches that exact level only. Comments and trailing commas
// in the json5 style are tolerated.
package scoretab

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/varkala/relicsmith/internal/relic"
)

// Table is an immutable effect score lookup. Lookups resolve the
// exact (name, level) entry first, then fall back to the base name
// entry with a (1+level) multiplier, then to zero.
type Table struct {
	exact map[exactKey]int
	base  map[string]int
}

type exactKey struct {
	name  string
	level int
}

// Load reads and parses a score table file.
func Load(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read score table: %w", err)
	}
	t, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("score table %s: %w", path, err)
	}
	return t, nil
}

// Parse builds a table from score table JSON text.
func Parse(src []byte) (*Table, error) {
	clean := stripTrailingCommas(stripComments(src))
	if !gjson.ValidBytes(clean) {
		return nil, fmt.Errorf("not valid JSON")
	}
	root := gjson.ParseBytes(clean)
	if !root.IsObject() {
		return nil, fmt.Errorf("root element is %s, want an object", typeName(root))
	}

	t := &Table{
		exact: make(map[exactKey]int),
		base:  make(map[string]int),
	}
	var entryErr error
	root.ForEach(func(key, value gjson.Result) bool {
		switch {
		case value.Type == gjson.Number:
			// name: score
			t.add(key.Str, int(value.Int()))
		case value.Type == gjson.String:
			// score: name
			score, err := groupScore(key.Str)
			if err != nil {
				entryErr = err
				return false
			}
			t.add(value.Str, score)
		case value.IsArray():
			// score: [names]
			score, err := groupScore(key.Str)
			if err != nil {
				entryErr = err
				return false
			}
			for _, name := range value.Array() {
				if name.Type != gjson.String {
					entryErr = fmt.Errorf("score group %q: entry %s is not an effect name", key.Str, name.Raw)
					return false
				}
				t.add(name.Str, score)
			}
		default:
			entryErr = fmt.Errorf("entry %q: unsupported value %s", key.Str, value.Raw)
			return false
		}
		return true
	})
	if entryErr != nil {
		return nil, entryErr
	}
	return t, nil
}

func groupScore(key string) (int, error) {
	score, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil {
		return 0, fmt.Errorf("score group %q: key is not an integer", key)
	}
	return score, nil
}

// add stores one entry. Names carrying a valid "+N" suffix become
// exact entries, everything else a base entry. Later entries win.
func (t *Table) add(rawName string, score int) {
	name := strings.TrimSpace(rawName)
	if i := strings.LastIndex(name, " +"); i >= 0 {
		if level, err := strconv.Atoi(name[i+2:]); err == nil && level >= 0 {
			t.exact[exactKey{strings.ToLower(name[:i]), level}] = score
			return
		}
	}
	t.base[strings.ToLower(name)] = score
}

// Score resolves the score of one leveled effect. Unknown effects
// score zero, partial tables are the normal case.
func (t *Table) Score(name string, level int) int {
	key := strings.ToLower(name)
	if s, ok := t.exact[exactKey{key, level}]; ok {
		return s
	}
	if s, ok := t.base[key]; ok {
		return s * (1 + level)
	}
	return 0
}

// RelicScore sums the scores of every effect on the relic.
func (t *Table) RelicScore(r relic.Relic) int {
	total := 0
	for _, e := range r.Effects {
		total += t.Score(e.Name, e.Level)
	}
	return total
}

// Len reports how many entries the table holds.
func (t *Table) Len() int {
	return len(t.exact) + len(t.base)
}

func typeName(r gjson.Result) string {
	if r.IsArray() {
		return "an array"
	}
	switch r.Type {
	case gjson.String:
		return "a string"
	case gjson.Number:
		return "a number"
	case gjson.True, gjson.False:
		return "a boolean"
	case gjson.Null:
		return "null"
	default:
		return r.Type.String()
	}
}
