package relic

import (
	"fmt"
	"strconv"
	"strings"
)

// Effect is one resolved relic effect. Name carries no level suffix,
// the level is split out so score lookups can try both the qualified
// and the base form.
type Effect struct {
	ID    uint32
	Name  string
	Level int
}

// String returns the display form, "Improved Critical Hits +1" for
// level 1 and the bare name for level 0.
func (e Effect) String() string {
	if e.Name == "" {
		return fmt.Sprintf("unknown effect %d", e.ID)
	}
	if e.Level > 0 {
		return fmt.Sprintf("%s +%d", e.Name, e.Level)
	}
	return e.Name
}

// ParseEffectName splits a trailing " +N" level suffix off an effect
// name. Names without a suffix are level 0.
func ParseEffectName(s string) (string, int) {
	i := strings.LastIndex(s, " +")
	if i < 0 {
		return s, 0
	}
	level, err := strconv.Atoi(s[i+2:])
	if err != nil || level < 0 {
		return s, 0
	}
	return s[:i], level
}

// Relic is one resolved inventory relic. Effects holds 1..3 entries,
// empty effect slots are dropped during resolution. Unknown effect
// ids are kept with an empty name so listings can still surface them.
type Relic struct {
	ItemID  int
	Name    string
	Color   Color
	Effects []Effect

	// Unresolved is set when the item id or any effect id was missing
	// from the embedded tables. Listings show such relics, the solver
	// never sees them.
	Unresolved bool
}
