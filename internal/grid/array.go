package grid

import "math"

// Array is a dense 3-D scalar array indexed (i, j, k) for the x, y and z
// axes. Two-dimensional fields use Ny == 1. Storage is x-major, matching the
// on-disk layout of simulation snapshots.
type Array struct {
	Nx, Ny, Nz int
	data       []float64
}

func NewArray(nx, ny, nz int) *Array {
	return &Array{Nx: nx, Ny: ny, Nz: nz, data: make([]float64, nx*ny*nz)}
}

// FromSlice wraps an existing x-major slice. The slice is not copied.
func FromSlice(nx, ny, nz int, data []float64) *Array {
	return &Array{Nx: nx, Ny: ny, Nz: nz, data: data}
}

func (a *Array) At(i, j, k int) float64 {
	return a.data[i+a.Nx*(j+a.Ny*k)]
}

func (a *Array) Set(i, j, k int, v float64) {
	a.data[i+a.Nx*(j+a.Ny*k)] = v
}

func (a *Array) Len() int { return len(a.data) }

// Raw exposes the backing slice in x-major order.
func (a *Array) Raw() []float64 { return a.data }

func (a *Array) Clone() *Array {
	c := NewArray(a.Nx, a.Ny, a.Nz)
	copy(c.data, a.data)
	return c
}

// Fill evaluates f at every grid index.
func (a *Array) Fill(f func(i, j, k int) float64) *Array {
	for k := 0; k < a.Nz; k++ {
		for j := 0; j < a.Ny; j++ {
			for i := 0; i < a.Nx; i++ {
				a.Set(i, j, k, f(i, j, k))
			}
		}
	}
	return a
}

// MaxAbs returns the largest absolute value in the array, ignoring NaNs.
func (a *Array) MaxAbs() float64 {
	m := 0.0
	for _, v := range a.data {
		if math.IsNaN(v) {
			continue
		}
		if av := math.Abs(v); av > m {
			m = av
		}
	}
	return m
}
