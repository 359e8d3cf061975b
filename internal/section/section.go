// Package section reduces full-domain field data to the 2-D cross-section
// that gets drawn: a direct index slice on rectilinear grids, with a
// constant-height re-interpolation pass for terrain-following grids.
package section

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"

	"github.com/mwaite/fieldview/internal/field"
	"github.com/mwaite/fieldview/internal/grid"
)

// Section is one extracted cross-section ready for drawing. Data is
// oriented rows-vertical, columns-horizontal (the transpose of the raw
// read) for every field kind except Streamline, which keeps the raw
// orientation and carries its second component in V.
//
// ZCurv is set for mapped-grid X/Y slices: physical height per (row, col),
// replacing the separable Y vector for rendering and the terrain outline.
type Section struct {
	FieldName string
	Kind      field.Kind
	X, Y      []float64
	Data      *mat.Dense
	V         *mat.Dense
	ZCurv     *mat.Dense
}

// Extract cuts a 2-D cross-section out of a resolved frame at the physical
// location loc along dimen.
func Extract(f *field.Frame, dimen grid.Axis, loc float64, g *grid.Grid) (*Section, error) {
	if g.NDims == 2 {
		return extract2D(f, g)
	}
	switch dimen {
	case grid.AxisX, grid.AxisY:
		return extractHorizontalNormal(f, dimen, loc, g)
	case grid.AxisZ:
		if g.Mapped {
			return extractMappedZ(f, loc, g)
		}
		return extractUnmappedZ(f, loc, g)
	}
	return nil, fmt.Errorf("section: unknown cross-section axis %v", dimen)
}

// extract2D handles two-dimensional domains, where the only plane is x-z.
func extract2D(f *field.Frame, g *grid.Grid) (*Section, error) {
	nx, nz := g.Nx(), g.Nz()
	s := &Section{
		FieldName: f.Name,
		Kind:      f.Kind,
		X:         g.Vec(grid.AxisX),
	}
	if g.Mapped {
		s.ZCurv = mat.NewDense(nz, nx, nil)
		for k := 0; k < nz; k++ {
			for i := 0; i < nx; i++ {
				s.ZCurv.Set(k, i, g.Z.At(i, 0, k))
			}
		}
		s.Y = columnSpan(s.ZCurv, nz)
	} else {
		s.Y = g.Vec(grid.AxisZ)
	}
	fill(s, f, nx, nz, func(i, k int) float64 { return f.Data.At(i, 0, k) },
		func(i, k int) float64 {
			if f.V == nil {
				return 0
			}
			return f.V.At(i, 0, k)
		})
	return s, nil
}

// extractHorizontalNormal slices at a fixed x or y index. Mapped grids are
// regular in the horizontal, so the cut itself is a direct index; the
// curvilinear vertical coordinate rides along for rendering.
func extractHorizontalNormal(f *field.Frame, dimen grid.Axis, loc float64, g *grid.Grid) (*Section, error) {
	idx := g.NearestIndex(dimen, loc)
	nz := g.Nz()

	var nh int
	var horiz []float64
	var at func(h, k int) float64
	var atV func(h, k int) float64
	var zAt func(h, k int) float64

	if dimen == grid.AxisX {
		nh = g.Ny()
		horiz = g.Vec(grid.AxisY)
		at = func(h, k int) float64 { return f.Data.At(idx, spanIdx(f.Data, h), k) }
		atV = func(h, k int) float64 { return f.V.At(idx, spanIdx(f.V, h), k) }
		zAt = func(h, k int) float64 { return g.Z.At(idx, h, k) }
	} else {
		nh = g.Nx()
		horiz = g.Vec(grid.AxisX)
		at = func(h, k int) float64 { return f.Data.At(h, spanIdx(f.Data, idx), k) }
		atV = func(h, k int) float64 { return f.V.At(h, spanIdx(f.V, idx), k) }
		zAt = func(h, k int) float64 { return g.Z.At(h, idx, k) }
	}

	s := &Section{FieldName: f.Name, Kind: f.Kind, X: horiz}
	if g.Mapped {
		s.ZCurv = mat.NewDense(nz, nh, nil)
		for k := 0; k < nz; k++ {
			for h := 0; h < nh; h++ {
				s.ZCurv.Set(k, h, zAt(h, k))
			}
		}
		s.Y = columnSpan(s.ZCurv, nz)
	} else {
		s.Y = g.Vec(grid.AxisZ)
	}

	if f.Kind == field.Streamline && f.V == nil {
		return nil, fmt.Errorf("section: streamline frame missing second component")
	}
	safeAtV := func(h, k int) float64 {
		if f.V == nil {
			return 0
		}
		return atV(h, k)
	}
	fill(s, f, nh, nz, at, safeAtV)
	return s, nil
}

// extractUnmappedZ slices at the nearest z index of a rectilinear grid.
func extractUnmappedZ(f *field.Frame, loc float64, g *grid.Grid) (*Section, error) {
	idx := g.NearestIndex(grid.AxisZ, loc)
	nx, ny := g.Nx(), g.Ny()
	s := &Section{
		FieldName: f.Name,
		Kind:      f.Kind,
		X:         g.Vec(grid.AxisX),
		Y:         g.Vec(grid.AxisY),
	}
	fill(s, f, nx, ny, func(i, j int) float64 { return f.Data.At(i, spanIdx(f.Data, j), idx) },
		func(i, j int) float64 {
			if f.V == nil {
				return 0
			}
			return f.V.At(i, spanIdx(f.V, j), idx)
		})
	return s, nil
}

// extractMappedZ re-interpolates every horizontal column of a
// terrain-following grid onto the constant physical height loc. Columns
// whose vertical extent does not reach loc come back NaN; that is expected
// over terrain and not an error.
func extractMappedZ(f *field.Frame, loc float64, g *grid.Grid) (*Section, error) {
	nx, ny := g.Nx(), g.Ny()
	s := &Section{
		FieldName: f.Name,
		Kind:      f.Kind,
		X:         g.Vec(grid.AxisX),
		Y:         g.Vec(grid.AxisY),
	}
	sample := func(src *grid.Array, i, j int) float64 {
		z := g.ZColumn(i, j)
		jj := spanIdx(src, j)
		col := make([]float64, len(z))
		for k := range col {
			col[k] = src.At(i, jj, k)
		}
		return interpolateColumn(z, col, loc)
	}
	fill(s, f, nx, ny, func(i, j int) float64 { return sample(f.Data, i, j) },
		func(i, j int) float64 {
			if f.V == nil {
				return 0
			}
			return sample(f.V, i, j)
		})
	return s, nil
}

// spanIdx maps a grid y index into a frame's data. Spanwise-reduced
// frames hold a single plane, so every grid index lands on it.
func spanIdx(a *grid.Array, j int) int {
	if a.Ny == 1 {
		return 0
	}
	return j
}

// fill populates Data (and V for streamline frames) honoring the
// orientation convention: transposed for everything except Streamline.
func fill(s *Section, f *field.Frame, nh, nv int, at, atV func(h, v int) float64) {
	if f.Kind == field.Streamline {
		s.Data = mat.NewDense(nh, nv, nil)
		s.V = mat.NewDense(nh, nv, nil)
		for h := 0; h < nh; h++ {
			for v := 0; v < nv; v++ {
				s.Data.Set(h, v, at(h, v))
				s.V.Set(h, v, atV(h, v))
			}
		}
		return
	}
	s.Data = mat.NewDense(nv, nh, nil)
	for h := 0; h < nh; h++ {
		for v := 0; v < nv; v++ {
			s.Data.Set(v, h, at(h, v))
		}
	}
}

// interpolateColumn linearly interpolates one vertical profile at height
// loc, returning NaN outside the profile's extent.
func interpolateColumn(z, vals []float64, loc float64) float64 {
	zs, vs := z, vals
	if len(zs) > 1 && zs[0] > zs[len(zs)-1] {
		zs = reversed(zs)
		vs = reversed(vs)
	}
	if len(zs) == 0 || loc < zs[0] || loc > zs[len(zs)-1] {
		return math.NaN()
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(zs, vs); err != nil {
		return math.NaN()
	}
	return pl.Predict(loc)
}

func reversed(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[len(v)-1-i] = x
	}
	return out
}

// columnSpan builds a uniform vertical vector spanning the full curvilinear
// height range, used as the render axis for mapped sections.
func columnSpan(zc *mat.Dense, n int) []float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	r, c := zc.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := zc.At(i, j)
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}
