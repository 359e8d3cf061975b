// Package colorscale picks color-axis limits and a colormap per field
// kind, honoring explicit overrides and the trim clamp.
package colorscale

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"

	"github.com/mwaite/fieldview/internal/config"
	"github.com/mwaite/fieldview/internal/field"
)

// Scale is a chosen color mapping for one frame.
type Scale struct {
	Min, Max  float64
	ColorMap  palette.ColorMap
	Diverging bool
}

// velocityLike lists raw variables that change sign and want a diverging
// map centered at zero.
var velocityLike = map[string]bool{
	"u": true, "v": true, "w": true,
	"vortx": true, "vorty": true, "vortz": true,
}

// diverging reports whether the request should be centered at zero.
// Spanwise deviations are non-negative regardless of the base field, so
// only plain and mean-reduced velocity components qualify.
func diverging(req field.Request) bool {
	switch req.Kind {
	case field.Raw, field.Mean:
		return velocityLike[req.Base]
	case field.Streamline:
		return true
	}
	return false
}

// Choose selects limits and a colormap for the request. An explicit
// two-element colaxis overrides the heuristic unconditionally. Trimming
// demands an explicit range: it fails before any drawing when the color
// axis is left on auto.
func Choose(req field.Request, data *mat.Dense, opt *config.Options) (*Scale, error) {
	if opt.Trim && len(opt.Colaxis) != 2 {
		return nil, config.Errorf("trim requires an axis range for %q", req.Name)
	}

	div := diverging(req)
	s := &Scale{Diverging: div}
	if div {
		s.ColorMap = moreland.SmoothBlueRed()
	} else {
		s.ColorMap = moreland.Kindlmann()
	}

	if len(opt.Colaxis) == 2 {
		s.Min, s.Max = opt.Colaxis[0], opt.Colaxis[1]
	} else if div {
		m := maxAbs(data)
		if m == 0 {
			m = 1
		}
		s.Min, s.Max = -m, m
	} else {
		s.Min, s.Max = bounds(data)
		if s.Min == s.Max {
			s.Max = s.Min + 1
		}
	}

	s.ColorMap.SetMin(s.Min)
	s.ColorMap.SetMax(s.Max)
	return s, nil
}

// Trim clamps every value into [lo, hi] in place. Clamping runs before
// contour levels are computed so the bands concentrate inside the
// meaningful range instead of stretching to outliers. NaNs pass through.
func Trim(m *mat.Dense, lo, hi float64) {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			switch {
			case math.IsNaN(v):
			case v < lo:
				m.Set(i, j, lo)
			case v > hi:
				m.Set(i, j, hi)
			}
		}
	}
}

// Levels spaces n contour levels across [lo, hi], excluding the ends.
func Levels(lo, hi float64, n int) []float64 {
	if n < 1 {
		n = 1
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n+1)
	for i := range out {
		out[i] = lo + step*float64(i+1)
	}
	return out
}

func maxAbs(m *mat.Dense) float64 {
	r, c := m.Dims()
	out := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := math.Abs(m.At(i, j))
			if math.IsNaN(v) {
				continue
			}
			if v > out {
				out = v
			}
		}
	}
	return out
}

func bounds(m *mat.Dense) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
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
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	return lo, hi
}
