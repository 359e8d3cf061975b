package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/mwaite/fieldview/internal/section"
)

// Profile extracts one horizontal row of a section. Negative row selects
// the middle. NaN cells are dropped so the graph stays connected over
// terrain gaps.
func Profile(s *section.Section, row int) []float64 {
	s = section.Regrid(s)
	nr, nc := s.Data.Dims()
	if nr == 0 {
		return nil
	}
	if row < 0 || row >= nr {
		row = nr / 2
	}
	out := make([]float64, 0, nc)
	for j := 0; j < nc; j++ {
		v := s.Data.At(row, j)
		if math.IsNaN(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// ProfileGraph plots a horizontal profile of the section as an ASCII line
// graph.
func ProfileGraph(s *section.Section, row, width, height int) string {
	data := Profile(s, row)
	if len(data) == 0 {
		return "no finite data in profile"
	}
	caption := fmt.Sprintf("%s along the horizontal axis", s.FieldName)
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
