package render

import (
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/plotter"

	"github.com/mwaite/fieldview/internal/field"
	"github.com/mwaite/fieldview/internal/section"
)

// heatGrid adapts a section to plotter.GridXYZ. Section data is stored
// rows-vertical, columns-horizontal, except streamline sections which keep
// the raw orientation and set flip.
type heatGrid struct {
	x, y []float64
	m    *mat.Dense
	flip bool
}

func (g heatGrid) Dims() (c, r int) { return len(g.x), len(g.y) }
func (g heatGrid) Z(c, r int) float64 {
	if g.flip {
		return g.m.At(c, r)
	}
	return g.m.At(r, c)
}
func (g heatGrid) X(c int) float64 { return g.x[c] }
func (g heatGrid) Y(r int) float64 { return g.y[r] }

// sectionGrid returns the separable-axis view of a section, resampling
// curvilinear sections onto their uniform vertical vector first.
func sectionGrid(s *section.Section) heatGrid {
	s = section.Regrid(s)
	return heatGrid{x: s.X, y: s.Y, m: s.Data, flip: s.Kind == field.Streamline}
}

// vecField adapts a streamline section to plotter.FieldXY. Streamline
// sections keep the raw, untransposed orientation: Data.At(h, v).
type vecField struct {
	x, y []float64
	u, v *mat.Dense
	ref  float64 // reference speed subtracted from the first component
}

func (f vecField) Dims() (c, r int) { return len(f.x), len(f.y) }
func (f vecField) X(c int) float64  { return f.x[c] }
func (f vecField) Y(r int) float64  { return f.y[r] }
func (f vecField) Vector(c, r int) plotter.XY {
	return plotter.XY{X: f.u.At(c, r) - f.ref, Y: f.v.At(c, r)}
}

// uniform is a one-color palette for overlay contour lines.
type uniform struct {
	col color.Color
}

func (u uniform) Colors() []color.Color { return []color.Color{u.col} }
