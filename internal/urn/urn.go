// Package urn holds the relic slot layouts of the urns and grails a
// character can equip. Layouts are static game data: every class has
// five class urns, the three universal grails are open to everyone.
package urn

import (
	"fmt"
	"sort"
	"strings"

	"github.com/varkala/relicsmith/internal/relic"
)

// SlotKind selects how a slot matches relic colors.
type SlotKind uint8

const (
	// SlotColor accepts exactly one standard color.
	SlotColor SlotKind = iota
	// SlotAnyStandard accepts any standard-color relic.
	SlotAnyStandard
	// SlotAnyDeep accepts any deep relic.
	SlotAnyDeep
)

// Slot is one relic socket of a layout. Color is set only for
// SlotColor slots.
type Slot struct {
	Kind  SlotKind
	Color relic.Color
}

// Accepts reports whether a relic of color c fits this slot. Relics of
// unknown color fit nothing.
func (s Slot) Accepts(c relic.Color) bool {
	switch s.Kind {
	case SlotColor:
		return c == s.Color
	case SlotAnyStandard:
		return c != relic.ColorUnknown && !c.IsDeep()
	case SlotAnyDeep:
		return c.IsDeep()
	default:
		return false
	}
}

// String returns the slot label used in rendered output.
func (s Slot) String() string {
	switch s.Kind {
	case SlotAnyStandard:
		return "Any"
	case SlotAnyDeep:
		return "Deep"
	default:
		return s.Color.String()
	}
}

// Layout is one named urn or grail with its ordered relic slots.
type Layout struct {
	Name  string
	Slots []Slot
}

func c(col relic.Color) Slot { return Slot{Kind: SlotColor, Color: col} }

var anySlot = Slot{Kind: SlotAnyStandard}

// grails — универсальные сосуды, доступные каждому классу.
var grails = []Layout{
	{Name: "Sacred Erdtree Grail", Slots: []Slot{c(relic.Yellow), c(relic.Yellow), c(relic.Yellow)}},
	{Name: "Spirit Shelter Grail", Slots: []Slot{c(relic.Green), c(relic.Green), c(relic.Green)}},
	{Name: "Giant's Cradle Grail", Slots: []Slot{c(relic.Blue), c(relic.Blue), c(relic.Blue)}},
}

// classUrns — сосуды по классам. Chalices несут wildcard третий слот.
var classUrns = map[string][]Layout{
	"raider": {
		{Name: "Raider's Urn", Slots: []Slot{c(relic.Red), c(relic.Green), c(relic.Green)}},
		{Name: "Raider's Goblet", Slots: []Slot{c(relic.Red), c(relic.Blue), c(relic.Yellow)}},
		{Name: "Raider's Chalice", Slots: []Slot{c(relic.Red), c(relic.Red), anySlot}},
		{Name: "Soot-Covered Raider's Urn", Slots: []Slot{c(relic.Blue), c(relic.Blue), c(relic.Green)}},
		{Name: "Sealed Raider's Urn", Slots: []Slot{c(relic.Green), c(relic.Green), c(relic.Red)}},
	},
	"guardian": {
		{Name: "Guardian's Urn", Slots: []Slot{c(relic.Red), c(relic.Yellow), c(relic.Yellow)}},
		{Name: "Guardian's Goblet", Slots: []Slot{c(relic.Blue), c(relic.Blue), c(relic.Green)}},
		{Name: "Guardian's Chalice", Slots: []Slot{c(relic.Blue), c(relic.Yellow), anySlot}},
		{Name: "Soot-Covered Guardian's Urn", Slots: []Slot{c(relic.Red), c(relic.Green), c(relic.Green)}},
		{Name: "Sealed Guardian's Urn", Slots: []Slot{c(relic.Yellow), c(relic.Yellow), c(relic.Red)}},
	},
	"executor": {
		{Name: "Executor's Urn", Slots: []Slot{c(relic.Red), c(relic.Yellow), c(relic.Yellow)}},
		{Name: "Executor's Goblet", Slots: []Slot{c(relic.Red), c(relic.Blue), c(relic.Green)}},
		{Name: "Executor's Chalice", Slots: []Slot{c(relic.Blue), c(relic.Yellow), anySlot}},
		{Name: "Soot-Covered Executor's Urn", Slots: []Slot{c(relic.Red), c(relic.Red), c(relic.Blue)}},
		{Name: "Sealed Executor's Urn", Slots: []Slot{c(relic.Yellow), c(relic.Yellow), c(relic.Red)}},
	},
}

// Classes returns the known class names, sorted.
func Classes() []string {
	out := make([]string, 0, len(classUrns))
	for name := range classUrns {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ForClass returns the layouts available to one class: its class urns
// followed by the universal grails. With deep enabled every layout
// gains one trailing deep slot, disabling it removes exactly that
// slot.
func ForClass(class string, deep bool) ([]Layout, error) {
	urns, ok := classUrns[strings.ToLower(class)]
	if !ok {
		return nil, fmt.Errorf("unknown class %q (have %s)", class, strings.Join(Classes(), ", "))
	}
	out := make([]Layout, 0, len(urns)+len(grails))
	for _, l := range urns {
		out = append(out, l.withDeep(deep))
	}
	for _, l := range grails {
		out = append(out, l.withDeep(deep))
	}
	return out, nil
}

// Grails returns just the universal layouts.
func Grails(deep bool) []Layout {
	out := make([]Layout, 0, len(grails))
	for _, l := range grails {
		out = append(out, l.withDeep(deep))
	}
	return out
}

// withDeep copies the layout so callers can never mutate the shared
// tables.
func (l Layout) withDeep(deep bool) Layout {
	slots := make([]Slot, len(l.Slots), len(l.Slots)+1)
	copy(slots, l.Slots)
	if deep {
		slots = append(slots, Slot{Kind: SlotAnyDeep})
	}
	return Layout{Name: l.Name, Slots: slots}
}
