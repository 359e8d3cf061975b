package section

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/mwaite/fieldview/internal/field"
)

// Regrid resamples a curvilinear section onto its uniform Y vector so that
// separable-axis draw primitives can render it. Cells outside a column's
// physical extent become NaN. Sections without a curvilinear coordinate
// are returned unchanged.
func Regrid(s *Section) *Section {
	if s.ZCurv == nil {
		return s
	}
	nv := len(s.Y)
	nh := len(s.X)
	out := mat.NewDense(nv, nh, nil)
	zcol := make([]float64, 0)
	vcol := make([]float64, 0)
	nz, _ := s.ZCurv.Dims()
	for h := 0; h < nh; h++ {
		zcol = zcol[:0]
		vcol = vcol[:0]
		for k := 0; k < nz; k++ {
			zcol = append(zcol, s.ZCurv.At(k, h))
			vcol = append(vcol, s.Data.At(k, h))
		}
		for v := 0; v < nv; v++ {
			out.Set(v, h, interpolateColumn(zcol, vcol, s.Y[v]))
		}
	}
	return &Section{
		FieldName: s.FieldName,
		Kind:      s.Kind,
		X:         s.X,
		Y:         s.Y,
		Data:      out,
	}
}

// TerrainLine returns the physical boundary along a mapped cross-section:
// the z coordinate at the top vertical index per horizontal column. The
// second return is nil for separable sections, which have no terrain to
// outline.
func TerrainLine(s *Section) ([]float64, []float64) {
	if s.ZCurv == nil {
		return nil, nil
	}
	nz, nh := s.ZCurv.Dims()
	xs := make([]float64, nh)
	zs := make([]float64, nh)
	for h := 0; h < nh; h++ {
		xs[h] = s.X[h]
		zs[h] = s.ZCurv.At(nz-1, h)
	}
	return xs, zs
}

// Subsample keeps every hskip-th column and vskip-th row. Skip factors
// below one are treated as one.
func (s *Section) Subsample(hskip, vskip int) *Section {
	if hskip < 1 {
		hskip = 1
	}
	if vskip < 1 {
		vskip = 1
	}
	if hskip == 1 && vskip == 1 {
		return s
	}
	x := thin(s.X, hskip)
	y := thin(s.Y, vskip)
	out := &Section{FieldName: s.FieldName, Kind: s.Kind, X: x, Y: y}
	rskip, cskip := vskip, hskip
	if s.Kind == field.Streamline {
		rskip, cskip = hskip, vskip
	}
	out.Data = thinDense(s.Data, rskip, cskip)
	if s.V != nil {
		out.V = thinDense(s.V, rskip, cskip)
	}
	if s.ZCurv != nil {
		out.ZCurv = thinDense(s.ZCurv, vskip, hskip)
	}
	return out
}

func thin(v []float64, skip int) []float64 {
	out := make([]float64, 0, (len(v)+skip-1)/skip)
	for i := 0; i < len(v); i += skip {
		out = append(out, v[i])
	}
	return out
}

func thinDense(m *mat.Dense, rskip, cskip int) *mat.Dense {
	r, c := m.Dims()
	nr := (r + rskip - 1) / rskip
	nc := (c + cskip - 1) / cskip
	out := mat.NewDense(nr, nc, nil)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			out.Set(i, j, m.At(i*rskip, j*cskip))
		}
	}
	return out
}

// HasNaN reports whether any cell of the section is NaN, which happens for
// constant-height slices over terrain.
func (s *Section) HasNaN() bool {
	r, c := s.Data.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if math.IsNaN(s.Data.At(i, j)) {
				return true
			}
		}
	}
	return false
}
