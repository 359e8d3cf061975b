// Package viz renders extracted cross-sections in the terminal: a
// color-block heat view, an asciigraph profile preview, and a Bubble Tea
// live animation over output indices.
package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mwaite/fieldview/internal/section"
)

// heatRamp is a coarse blue-to-red ANSI ramp for terminal cells.
var heatRamp = []string{
	"17", "19", "20", "26", "32", "38", "44", "50",
	"86", "122", "157", "192", "214", "208", "202", "196",
}

var nanStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

// HeatString renders a section as rows of colored block characters,
// top row = highest vertical coordinate. NaN cells (terrain) render dim.
func HeatString(s *section.Section, cols, rows int) string {
	s = section.Regrid(s)
	nr, nc := s.Data.Dims()
	if nr == 0 || nc == 0 {
		return ""
	}
	if cols > nc {
		cols = nc
	}
	if rows > nr {
		rows = nr
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			v := s.Data.At(i, j)
			if math.IsNaN(v) {
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if lo >= hi {
		hi = lo + 1
	}

	var b strings.Builder
	for r := rows - 1; r >= 0; r-- {
		i := r * (nr - 1) / max(rows-1, 1)
		for c := 0; c < cols; c++ {
			j := c * (nc - 1) / max(cols-1, 1)
			v := s.Data.At(i, j)
			if math.IsNaN(v) {
				b.WriteString(nanStyle.Render("·"))
				continue
			}
			t := (v - lo) / (hi - lo)
			idx := int(t * float64(len(heatRamp)-1))
			if idx < 0 {
				idx = 0
			}
			if idx >= len(heatRamp) {
				idx = len(heatRamp) - 1
			}
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(heatRamp[idx])).Render("█"))
		}
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("range [%.4g, %.4g]\n", lo, hi))
	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
