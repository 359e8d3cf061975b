package grid

import (
	"fmt"
	"math"
	"strings"
)

// Axis identifies a coordinate direction of the simulation domain.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// ParseAxis accepts "X", "Y" or "Z" in either case.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return AxisX, nil
	case "Y":
		return AxisY, nil
	case "Z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("unknown axis %q (want X, Y or Z)", s)
}

// Grid holds the physical coordinates of a simulation domain.
//
// For unmapped (rectilinear) grids the coordinate arrays are separable: X
// has shape (Nx,1,1), Y (1,Ny,1) and Z (1,1,Nz). For mapped
// (terrain-following) grids the arrays carry the full physical position of
// every grid index; the horizontal coordinates are still regular but Z
// varies per column.
type Grid struct {
	X, Y, Z *Array
	Mapped  bool
	NDims   int
}

func (g *Grid) Nx() int { return g.X.Nx }

func (g *Grid) Ny() int {
	if g.NDims < 3 {
		return 1
	}
	return g.Y.Ny
}

func (g *Grid) Nz() int { return g.Z.Nz }

// Size returns the number of points along the given axis.
func (g *Grid) Size(a Axis) int {
	switch a {
	case AxisX:
		return g.Nx()
	case AxisY:
		return g.Ny()
	default:
		return g.Nz()
	}
}

// Vec returns the 1-D coordinate vector for an axis. For mapped grids the
// horizontal axes are regular, so a representative line through the array
// is returned; calling Vec(AxisZ) on a mapped grid is invalid since no
// single vertical vector exists.
func (g *Grid) Vec(a Axis) []float64 {
	switch a {
	case AxisX:
		v := make([]float64, g.Nx())
		for i := range v {
			v[i] = g.X.At(i, 0, 0)
		}
		return v
	case AxisY:
		if g.Y == nil {
			return []float64{0}
		}
		v := make([]float64, g.Ny())
		for j := range v {
			v[j] = g.Y.At(0, j, 0)
		}
		return v
	default:
		if g.Mapped {
			panic("grid: no separable z vector on a mapped grid")
		}
		v := make([]float64, g.Nz())
		for k := range v {
			v[k] = g.Z.At(0, 0, k)
		}
		return v
	}
}

// ZColumn returns the vertical coordinate profile above horizontal index
// (i, j). For unmapped grids this is the shared z vector.
func (g *Grid) ZColumn(i, j int) []float64 {
	v := make([]float64, g.Nz())
	if !g.Mapped {
		for k := range v {
			v[k] = g.Z.At(0, 0, k)
		}
		return v
	}
	if g.NDims < 3 {
		j = 0
	}
	for k := range v {
		v[k] = g.Z.At(i, j, k)
	}
	return v
}

// NearestIndex locates the grid index whose coordinate is closest to loc
// along the given axis. Mapped vertical coordinates have no single nearest
// index; those slices go through interpolation instead.
func (g *Grid) NearestIndex(a Axis, loc float64) int {
	vec := g.Vec(a)
	best, bestDist := 0, math.Inf(1)
	for i, v := range vec {
		if d := math.Abs(v - loc); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// BuildRegularView collapses an unmapped grid whose coordinates were
// produced as full-dimensional arrays into the separable per-axis vector
// form. Mapped grids are returned unchanged.
func BuildRegularView(g *Grid) *Grid {
	if g.Mapped {
		return g
	}
	if g.X.Ny == 1 && g.X.Nz == 1 && (g.Y == nil || g.Y.Nx == 1) && g.Z.Nx == 1 {
		return g // already separable
	}
	nx, nz := g.X.Nx, g.Z.Nz
	x := NewArray(nx, 1, 1)
	for i := 0; i < nx; i++ {
		x.Set(i, 0, 0, g.X.At(i, 0, 0))
	}
	var y *Array
	if g.Y != nil {
		ny := g.Y.Ny
		y = NewArray(1, ny, 1)
		for j := 0; j < ny; j++ {
			y.Set(0, j, 0, g.Y.At(0, j, 0))
		}
	}
	z := NewArray(1, 1, nz)
	for k := 0; k < nz; k++ {
		z.Set(0, 0, k, g.Z.At(0, 0, k))
	}
	return &Grid{X: x, Y: y, Z: z, Mapped: false, NDims: g.NDims}
}
