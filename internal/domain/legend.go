package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// LegendPosition is the Leaflet control corner the legend is pinned to.
const LegendPosition = "bottomleft"

// legendBreakpoints are the lower edges of each legend row.
var legendBreakpoints = []int{-10, 10, 30, 50, 70, 90}

// LegendEntry is one legend row.
type LegendEntry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Legend is the static depth key shown on the map.
type Legend struct {
	Position string        `json:"position"`
	Entries  []LegendEntry `json:"entries"`
}

// BuildLegend derives the legend from the depth bands. Each row's color is the
// band of breakpoint+1 so the row shows the band just above its lower edge.
func BuildLegend() Legend {
	entries := make([]LegendEntry, 0, len(legendBreakpoints))
	for i, low := range legendBreakpoints {
		label := strconv.Itoa(low) + "+"
		if i+1 < len(legendBreakpoints) {
			label = fmt.Sprintf("%d–%d", low, legendBreakpoints[i+1])
		}
		entries = append(entries, LegendEntry{
			Label: label,
			Color: ColorForDepth(float64(low + 1)),
		})
	}
	return Legend{Position: LegendPosition, Entries: entries}
}

// HTML renders the legend body: a color swatch before each label, rows
// separated by <br>.
func (l Legend) HTML() string {
	rows := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		rows[i] = fmt.Sprintf(
			`<i style="background: %s; width: 18px; height: 18px; display: inline-block; margin-right: 8px;"></i> %s`,
			e.Color, e.Label)
	}
	return strings.Join(rows, "<br>")
}
