package relic

import (
	"fmt"
	"strings"
)

// Color classifies a relic and the urn slots that accept it. The four
// standard colors each have a deep counterpart carried by night-tier
// relics.
type Color uint8

const (
	ColorUnknown Color = iota
	Red
	Blue
	Yellow
	Green
	DeepRed
	DeepBlue
	DeepYellow
	DeepGreen
)

// String returns the canonical color name as used in the item table.
func (c Color) String() string {
	switch c {
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	case Yellow:
		return "Yellow"
	case Green:
		return "Green"
	case DeepRed:
		return "DeepRed"
	case DeepBlue:
		return "DeepBlue"
	case DeepYellow:
		return "DeepYellow"
	case DeepGreen:
		return "DeepGreen"
	default:
		return "Unknown"
	}
}

// IsDeep reports whether c is one of the deep colors.
func (c Color) IsDeep() bool {
	return c >= DeepRed && c <= DeepGreen
}

// Base returns the standard counterpart of a deep color. Standard
// colors return themselves.
func (c Color) Base() Color {
	if c.IsDeep() {
		return c - DeepRed + Red
	}
	return c
}

// ParseColor maps a color name from the item table to a Color.
// Matching is case-insensitive.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(s) {
	case "red":
		return Red, nil
	case "blue":
		return Blue, nil
	case "yellow":
		return Yellow, nil
	case "green":
		return Green, nil
	case "deepred":
		return DeepRed, nil
	case "deepblue":
		return DeepBlue, nil
	case "deepyellow":
		return DeepYellow, nil
	case "deepgreen":
		return DeepGreen, nil
	default:
		return ColorUnknown, fmt.Errorf("unknown color %q", s)
	}
}

// ColorFromItemID infers a relic color from its item id for items
// missing from the table. Two id layouts are known: seven-digit grid
// ids keep the color in the hundreds digit, compact ids band the last
// two digits by nine.
func ColorFromItemID(id int) Color {
	if id >= 1_000_000 {
		if digit := (id / 100) % 10; digit <= 3 {
			return Red + Color(digit)
		}
		return ColorUnknown
	}
	if last2 := id % 100; last2 >= 0 && last2 <= 35 {
		return Red + Color(last2/9)
	}
	return ColorUnknown
}
