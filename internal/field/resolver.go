package field

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/mwaite/fieldview/internal/eos"
	"github.com/mwaite/fieldview/internal/grid"
)

// Reader is the raw-data collaborator. Implementations return the full
// domain array for a named variable at one output index.
type Reader interface {
	Read(name string, step int) (*grid.Array, error)
	Has(name string) bool
}

// UnknownFieldError reports a field name that matches no derivation rule
// and no raw variable.
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("field: no derivation rule or raw variable for %q", e.Name)
}

// Frame is one resolved field at one output index, still on the full grid.
// V is set only for Streamline requests and holds the second in-plane
// velocity component.
type Frame struct {
	Name string
	Kind Kind
	Data *grid.Array
	V    *grid.Array
}

// Resolver maps parsed field requests to data via the raw Reader.
type Resolver struct {
	reader Reader
	grid   *grid.Grid
}

func NewResolver(r Reader, g *grid.Grid) *Resolver {
	return &Resolver{reader: r, grid: g}
}

// Grid returns the grid the resolver was built with.
func (rv *Resolver) Grid() *grid.Grid { return rv.grid }

// Resolve produces the full-domain data for a request. The cross-section
// axis is needed for Streamline requests, which pick the two in-plane
// velocity components; the location loc along that axis anchors the
// per-slice normalization of Scaled SD.
func (rv *Resolver) Resolve(req Request, step int, dimen grid.Axis, loc float64) (*Frame, error) {
	switch req.Kind {
	case Raw:
		data, err := rv.readRaw(req.Name, step)
		if err != nil {
			return nil, err
		}
		return &Frame{Name: req.Name, Kind: Raw, Data: data}, nil

	case Mean, SD, ScaledSD:
		return rv.resolveSpanwise(req, step, dimen, loc)

	case Density:
		data, err := rv.density(step)
		if err != nil {
			return nil, err
		}
		return &Frame{Name: req.Name, Kind: Density, Data: data}, nil

	case KineticEnergy:
		data, err := rv.velocityCombine(step, func(u, v, w float64) float64 {
			return 0.5 * (u*u + v*v + w*w)
		})
		if err != nil {
			return nil, err
		}
		return &Frame{Name: req.Name, Kind: KineticEnergy, Data: data}, nil

	case Speed:
		data, err := rv.velocityCombine(step, func(u, v, w float64) float64 {
			return math.Sqrt(u*u + v*v + w*w)
		})
		if err != nil {
			return nil, err
		}
		return &Frame{Name: req.Name, Kind: Speed, Data: data}, nil

	case Richardson:
		data, err := rv.richardson(step)
		if err != nil {
			return nil, err
		}
		return &Frame{Name: req.Name, Kind: Richardson, Data: data}, nil

	case Streamline:
		return rv.streamline(step, dimen)
	}
	return nil, &UnknownFieldError{Name: req.Name}
}

func (rv *Resolver) readRaw(name string, step int) (*grid.Array, error) {
	if !rv.reader.Has(name) {
		return nil, &UnknownFieldError{Name: name}
	}
	data, err := rv.reader.Read(name, step)
	if err != nil {
		return nil, fmt.Errorf("field: read %q at index %d: %w", name, step, err)
	}
	return data, nil
}

// resolveSpanwise reduces the base field along the spanwise (y) axis. On a
// two-dimensional domain there is nothing to reduce: the mean is the field
// itself and the deviation is zero.
func (rv *Resolver) resolveSpanwise(req Request, step int, dimen grid.Axis, loc float64) (*Frame, error) {
	base := Parse(req.Base)
	if base.Kind == Streamline {
		return nil, fmt.Errorf("field: cannot take spanwise statistics of %q", req.Base)
	}
	bf, err := rv.Resolve(base, step, dimen, loc)
	if err != nil {
		return nil, err
	}

	nx, ny, nz := bf.Data.Nx, bf.Data.Ny, bf.Data.Nz
	out := grid.NewArray(nx, 1, nz)
	col := make([]float64, ny)
	for k := 0; k < nz; k++ {
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				col[j] = bf.Data.At(i, j, k)
			}
			switch req.Kind {
			case Mean:
				out.Set(i, 0, k, stat.Mean(col, nil))
			default:
				if ny < 2 {
					out.Set(i, 0, k, 0)
				} else {
					out.Set(i, 0, k, stat.StdDev(col, nil))
				}
			}
		}
	}

	// Scaled SD normalizes by the max |base| over the slice being drawn,
	// not over the whole domain.
	if req.Kind == ScaledSD {
		scale := rv.sliceMaxAbs(bf.Data, dimen, loc)
		if scale > 0 {
			for k := 0; k < nz; k++ {
				for i := 0; i < nx; i++ {
					out.Set(i, 0, k, out.At(i, 0, k)/scale)
				}
			}
		}
	}

	return &Frame{Name: req.Name, Kind: req.Kind, Data: out}, nil
}

// sliceMaxAbs is the largest |value| over the plane nearest loc along
// dimen, ignoring NaNs. Mapped grids have no single z index, so vertical
// cuts there fall back to the full domain.
func (rv *Resolver) sliceMaxAbs(a *grid.Array, dimen grid.Axis, loc float64) float64 {
	if rv.grid.Mapped && dimen == grid.AxisZ {
		return a.MaxAbs()
	}
	idx := rv.grid.NearestIndex(dimen, loc)
	m := 0.0
	visit := func(v float64) {
		if av := math.Abs(v); !math.IsNaN(av) && av > m {
			m = av
		}
	}
	switch dimen {
	case grid.AxisX:
		for k := 0; k < a.Nz; k++ {
			for j := 0; j < a.Ny; j++ {
				visit(a.At(idx, j, k))
			}
		}
	case grid.AxisY:
		if idx >= a.Ny {
			idx = a.Ny - 1
		}
		for k := 0; k < a.Nz; k++ {
			for i := 0; i < a.Nx; i++ {
				visit(a.At(i, idx, k))
			}
		}
	default:
		for j := 0; j < a.Ny; j++ {
			for i := 0; i < a.Nx; i++ {
				visit(a.At(i, j, idx))
			}
		}
	}
	return m
}

// density prefers a raw rho snapshot and falls back to the equation of
// state over salinity and temperature.
func (rv *Resolver) density(step int) (*grid.Array, error) {
	if rv.reader.Has("rho") {
		return rv.readRaw("rho", step)
	}
	salt, err := rv.readRaw("Salt", step)
	if err != nil {
		return nil, err
	}
	temp, err := rv.readRaw("Temp", step)
	if err != nil {
		return nil, err
	}
	out := grid.NewArray(salt.Nx, salt.Ny, salt.Nz)
	return out.Fill(func(i, j, k int) float64 {
		return eos.Density(salt.At(i, j, k), temp.At(i, j, k))
	}), nil
}

// velocityCombine reads the velocity components present for the domain
// dimensionality and maps them pointwise. The spanwise component is zero
// on two-dimensional domains.
func (rv *Resolver) velocityCombine(step int, f func(u, v, w float64) float64) (*grid.Array, error) {
	u, err := rv.readRaw("u", step)
	if err != nil {
		return nil, err
	}
	w, err := rv.readRaw("w", step)
	if err != nil {
		return nil, err
	}
	var v *grid.Array
	if rv.grid.NDims == 3 {
		if v, err = rv.readRaw("v", step); err != nil {
			return nil, err
		}
	}
	out := grid.NewArray(u.Nx, u.Ny, u.Nz)
	return out.Fill(func(i, j, k int) float64 {
		vv := 0.0
		if v != nil {
			vv = v.At(i, j, k)
		}
		return f(u.At(i, j, k), vv, w.At(i, j, k))
	}), nil
}

// richardson computes the gradient Richardson number N^2 / (du/dz)^2 from
// the buoyancy frequency snapshot and the vertical shear of u.
func (rv *Resolver) richardson(step int) (*grid.Array, error) {
	n2, err := rv.readRaw("N2", step)
	if err != nil {
		return nil, err
	}
	u, err := rv.readRaw("u", step)
	if err != nil {
		return nil, err
	}
	out := grid.NewArray(u.Nx, u.Ny, u.Nz)
	jmax := u.Ny
	for j := 0; j < jmax; j++ {
		for i := 0; i < u.Nx; i++ {
			z := rv.grid.ZColumn(i, j)
			for k := 0; k < u.Nz; k++ {
				shear := dudz(u, z, i, j, k)
				if shear == 0 {
					out.Set(i, j, k, math.Inf(1))
					continue
				}
				out.Set(i, j, k, n2.At(i, j, k)/(shear*shear))
			}
		}
	}
	return out, nil
}

// dudz is a one-sided difference at the vertical boundaries and a centered
// difference in the interior.
func dudz(u *grid.Array, z []float64, i, j, k int) float64 {
	nz := u.Nz
	switch {
	case nz < 2:
		return 0
	case k == 0:
		return (u.At(i, j, 1) - u.At(i, j, 0)) / (z[1] - z[0])
	case k == nz-1:
		return (u.At(i, j, nz-1) - u.At(i, j, nz-2)) / (z[nz-1] - z[nz-2])
	default:
		return (u.At(i, j, k+1) - u.At(i, j, k-1)) / (z[k+1] - z[k-1])
	}
}

// streamline packages the two in-plane velocity components for the given
// cross-section axis.
func (rv *Resolver) streamline(step int, dimen grid.Axis) (*Frame, error) {
	var first, second string
	switch dimen {
	case grid.AxisX:
		first, second = "v", "w"
	case grid.AxisY:
		first, second = "u", "w"
	default:
		first, second = "u", "v"
	}
	a, err := rv.readRaw(first, step)
	if err != nil {
		return nil, err
	}
	b, err := rv.readRaw(second, step)
	if err != nil {
		return nil, err
	}
	return &Frame{Name: "Streamline", Kind: Streamline, Data: a, V: b}, nil
}
