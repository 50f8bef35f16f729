package relic

import (
	"fmt"
	"log/slog"

	"github.com/varkala/relicsmith/internal/save"
)

// FromRecord resolves one raw inventory record against the item and
// effect tables. Unknown item ids fall back to a color inferred from
// the id itself, unknown effect ids stay in the relic with an empty
// name, and either case marks the relic unresolved. Empty effect
// slots are dropped.
func FromRecord(rec save.RelicRecord) Relic {
	name, color, ok := LookupItem(rec.ItemID)
	if !ok {
		name = fmt.Sprintf("Unknown Relic %d", rec.ItemID)
		color = ColorFromItemID(rec.ItemID)
		slog.Warn("item id missing from table", "id", rec.ItemID, "inferred_color", color)
	}

	r := Relic{ItemID: rec.ItemID, Name: name, Color: color, Unresolved: !ok}
	for _, id := range rec.EffectIDs {
		if id == save.EmptyEffectID {
			continue
		}
		eff, ok := LookupEffect(id)
		if !ok {
			eff = Effect{ID: id}
			r.Unresolved = true
			slog.Warn("effect id missing from table", "id", id)
		}
		r.Effects = append(r.Effects, eff)
	}
	return r
}

// Catalog resolves every relic record of a parsed save slot, keeping
// inventory order. Unresolved relics are included, filter with
// Resolved before solving.
func Catalog(records []save.RelicRecord) []Relic {
	out := make([]Relic, 0, len(records))
	for _, rec := range records {
		out = append(out, FromRecord(rec))
	}
	return out
}

// Resolved narrows a catalog to fully resolved relics.
func Resolved(relics []Relic) []Relic {
	out := make([]Relic, 0, len(relics))
	for _, r := range relics {
		if !r.Unresolved {
			out = append(out, r)
		}
	}
	return out
}
