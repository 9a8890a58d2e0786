package tags

import (
	"fmt"
	"math/rand"
)

// PredefinedColors is the palette handed out to tags created without an
// explicit color, in order of preference.
var PredefinedColors = []string{
	"#FFADAD", "#FFD6A5", "#FDFFB6", "#CAFFBF", "#9BF6FF",
	"#A0C4FF", "#BDB2FF", "#FFC6FF", "#E4F0D0", "#F7D6E0",
	"#F2B5D4", "#FBC4AB", "#FFDAB9", "#E6E6FA", "#D8BFD8",
	"#B0E0E6", "#ADD8E6", "#87CEFA", "#7FFFD4", "#F0FFF0",
}

// FallbackColor is returned when every random attempt collides with an
// existing color. Degenerate but not an error.
const FallbackColor = "#CCCCCC"

const maxRandomAttempts = 100

// PickColor returns an unused color given the set of colors already taken.
// Palette entries win first; once the palette is exhausted it generates
// random hex colors, giving up on uniqueness after maxRandomAttempts.
func PickColor(used map[string]bool) string {
	var available []string
	for _, c := range PredefinedColors {
		if !used[c] {
			available = append(available, c)
		}
	}
	if len(available) > 0 {
		return available[rand.Intn(len(available))]
	}

	for i := 0; i < maxRandomAttempts; i++ {
		c := fmt.Sprintf("#%02X%02X%02X", rand.Intn(256), rand.Intn(256), rand.Intn(256))
		if !used[c] {
			return c
		}
	}
	return FallbackColor
}

// UsedColors collects the color set from a tag list, for feeding PickColor.
func UsedColors(existing []Tag) map[string]bool {
	used := make(map[string]bool, len(existing))
	for _, t := range existing {
		if t.Cor != "" {
			used[t.Cor] = true
		}
	}
	return used
}
