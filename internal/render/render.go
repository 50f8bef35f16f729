// Package render formats solver results and relic listings for the
// terminal.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/varkala/relicsmith/internal/relic"
	"github.com/varkala/relicsmith/internal/save"
	"github.com/varkala/relicsmith/internal/solver"
)

// Renderer turns solve results into text. Construct with New.
type Renderer struct {
	s Styles
}

// New returns a renderer, colored or plain.
func New(color bool) *Renderer {
	if color {
		return &Renderer{s: DefaultStyles()}
	}
	return &Renderer{s: PlainStyles()}
}

// Builds renders the flat listing, best build first, one block per
// build separated by blank lines.
func (r *Renderer) Builds(builds []solver.Build) string {
	blocks := make([]string, 0, len(builds))
	for _, b := range builds {
		var sb strings.Builder
		sb.WriteString(r.s.Header.Render(fmt.Sprintf("%s [%d]", b.Layout.Name, b.Score)))
		sb.WriteByte('\n')
		for _, c := range b.Relics {
			r.relicLines(&sb, "  ", c.Relic, true)
		}
		blocks = append(blocks, sb.String())
	}
	return strings.Join(blocks, "\n")
}

// Tree renders builds grouped by urn. Urns print lowest best score
// first, and inside every slot the relics of higher ranked builds go
// last, so the strongest options end up at the bottom of the screen
// where the eye lands.
func (r *Renderer) Tree(builds []solver.Build) string {
	if len(builds) == 0 {
		return ""
	}

	var order []string
	groups := make(map[string][]solver.Build)
	for _, b := range builds {
		if _, ok := groups[b.Layout.Name]; !ok {
			order = append(order, b.Layout.Name)
		}
		groups[b.Layout.Name] = append(groups[b.Layout.Name], b)
	}

	var sb strings.Builder
	for gi := len(order) - 1; gi >= 0; gi-- {
		group := groups[order[gi]]
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		maxScore := group[0].Score
		minScore := group[len(group)-1].Score
		sb.WriteString(r.s.Header.Render(fmt.Sprintf("%s [%d, %d]", order[gi], minScore, maxScore)))
		sb.WriteByte('\n')

		layout := group[0].Layout
		for si := range layout.Slots {
			sb.WriteString("  ")
			sb.WriteString(r.s.Slot.Render("[" + layout.Slots[si].String() + "]"))
			sb.WriteByte('\n')

			seen := make(map[int]bool)
			var unique []relic.Relic
			for _, b := range group {
				c := b.Relics[si]
				if !seen[c.Index] {
					seen[c.Index] = true
					unique = append(unique, c.Relic)
				}
			}
			for i := len(unique) - 1; i >= 0; i-- {
				r.relicLines(&sb, "    ", unique[i], false)
			}
		}
	}
	return sb.String()
}

// Relics renders the raw catalog listing with unresolved entries
// flagged, ending with a count line.
func (r *Renderer) Relics(relics []relic.Relic) string {
	var sb strings.Builder
	unresolved := 0
	for _, rel := range relics {
		r.relicLines(&sb, "", rel, true)
		if rel.Unresolved {
			unresolved++
		}
	}
	tail := fmt.Sprintf("%d relics", len(relics))
	if unresolved > 0 {
		tail += fmt.Sprintf(", %d unresolved", unresolved)
	}
	sb.WriteString(r.s.Muted.Render(tail))
	sb.WriteByte('\n')
	return sb.String()
}

// Characters renders the per-slot summary of a save file.
func (r *Renderer) Characters(chars []*save.Character) string {
	var sb strings.Builder
	for _, c := range chars {
		if c.Name == "" {
			sb.WriteString(r.s.Muted.Render(fmt.Sprintf("%s: no character", c.Title)))
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(r.s.Header.Render(c.Title+": "+c.Name) +
			fmt.Sprintf("  (murk %s, sigils %s, %d relics)",
				formatCount(c.Murk), formatCount(c.Sigils), len(c.Relics)))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Stats renders the one line solve summary.
func (r *Renderer) Stats(st solver.Stats) string {
	return r.s.Muted.Render(fmt.Sprintf("%d of %d relics kept, %d combinations searched in %s",
		st.Kept, st.Catalog, st.Enumerated, st.Elapsed.Round(time.Millisecond)))
}

// relicLines writes one relic block: the tagged name line and one
// line per effect. Unresolved names and effects use the warn style.
func (r *Renderer) relicLines(sb *strings.Builder, indent string, rel relic.Relic, withColor bool) {
	sb.WriteString(indent)
	if withColor {
		sb.WriteString(r.s.colorTag(rel.Color))
		sb.WriteByte(' ')
	}
	if rel.Unresolved {
		sb.WriteString(r.s.Warn.Render(rel.Name))
	} else {
		sb.WriteString(rel.Name)
	}
	sb.WriteByte('\n')
	for _, e := range rel.Effects {
		sb.WriteString(indent)
		sb.WriteString("- ")
		if e.Name == "" {
			sb.WriteString(r.s.Warn.Render(e.String()))
		} else {
			sb.WriteString(e.String())
		}
		sb.WriteByte('\n')
	}
}

func formatCount(v int) string {
	if v < 0 {
		return "?"
	}
	return fmt.Sprintf("%d", v)
}
