package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/varkala/relicsmith/internal/relic"
)

// Terminal palette. Relic colors map onto the basic ANSI colors so
// the output matches in-game color language on any terminal.
var (
	ansiRed    = lipgloss.Color("1")
	ansiGreen  = lipgloss.Color("2")
	ansiYellow = lipgloss.Color("3")
	ansiBlue   = lipgloss.Color("4")
)

// Styles holds every style the renderer applies. The zero value
// renders everything unstyled, which is the --no-color mode.
type Styles struct {
	Header lipgloss.Style
	Slot   lipgloss.Style
	Muted  lipgloss.Style
	Warn   lipgloss.Style

	colors map[relic.Color]lipgloss.Style
}

// DefaultStyles returns the colored style set.
func DefaultStyles() Styles {
	bold := lipgloss.NewStyle().Bold(true)
	tag := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	deepTag := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return Styles{
		Header: bold,
		Slot:   bold,
		Muted:  lipgloss.NewStyle().Faint(true),
		Warn:   lipgloss.NewStyle().Foreground(ansiRed).Bold(true),
		colors: map[relic.Color]lipgloss.Style{
			relic.Red:        tag(ansiRed),
			relic.Blue:       tag(ansiBlue),
			relic.Yellow:     tag(ansiYellow),
			relic.Green:      tag(ansiGreen),
			relic.DeepRed:    deepTag(ansiRed),
			relic.DeepBlue:   deepTag(ansiBlue),
			relic.DeepYellow: deepTag(ansiYellow),
			relic.DeepGreen:  deepTag(ansiGreen),
		},
	}
}

// PlainStyles returns styles that pass text through untouched.
func PlainStyles() Styles {
	return Styles{}
}

// colorTag styles the "[Color]" marker of one relic line.
func (s Styles) colorTag(c relic.Color) string {
	text := "[" + c.String() + "]"
	style, ok := s.colors[c]
	if !ok {
		return s.Muted.Render(text)
	}
	return style.Render(text)
}
