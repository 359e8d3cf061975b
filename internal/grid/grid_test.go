package grid

import (
	"math"
	"testing"
)

func linspace(lo, hi float64, n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return v
}

func regularGrid(nx, ny, nz int) *Grid {
	x := NewArray(nx, 1, 1)
	for i, v := range linspace(0, 1, nx) {
		x.Set(i, 0, 0, v)
	}
	y := NewArray(1, ny, 1)
	for j, v := range linspace(0, 0.5, ny) {
		y.Set(0, j, 0, v)
	}
	z := NewArray(1, 1, nz)
	for k, v := range linspace(-1, 0, nz) {
		z.Set(0, 0, k, v)
	}
	return &Grid{X: x, Y: y, Z: z, NDims: 3}
}

func TestArrayIndexing(t *testing.T) {
	a := NewArray(3, 2, 4)
	a.Set(2, 1, 3, 7.5)
	if a.At(2, 1, 3) != 7.5 {
		t.Errorf("expected 7.5, got %f", a.At(2, 1, 3))
	}
	if a.Len() != 24 {
		t.Errorf("expected 24 elements, got %d", a.Len())
	}
}

func TestArrayMaxAbs(t *testing.T) {
	a := NewArray(2, 1, 2)
	a.Set(0, 0, 0, -3)
	a.Set(1, 0, 1, math.NaN())
	if a.MaxAbs() != 3 {
		t.Errorf("expected 3, got %f", a.MaxAbs())
	}
}

func TestParseAxis(t *testing.T) {
	tests := []struct {
		in   string
		want Axis
		ok   bool
	}{
		{"X", AxisX, true},
		{"y", AxisY, true},
		{" Z ", AxisZ, true},
		{"w", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseAxis(tt.in)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("ParseAxis(%q) = %v, %v", tt.in, got, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("ParseAxis(%q): expected error", tt.in)
		}
	}
}

func TestNearestIndex(t *testing.T) {
	g := regularGrid(11, 5, 9)
	if idx := g.NearestIndex(AxisX, 0.52); idx != 5 {
		t.Errorf("expected index 5, got %d", idx)
	}
	if idx := g.NearestIndex(AxisZ, -1.2); idx != 0 {
		t.Errorf("expected clamp to 0, got %d", idx)
	}
	if idx := g.NearestIndex(AxisZ, 0.4); idx != 8 {
		t.Errorf("expected clamp to 8, got %d", idx)
	}
}

func TestBuildRegularViewCollapses(t *testing.T) {
	nx, ny, nz := 4, 3, 5
	x := NewArray(nx, ny, nz).Fill(func(i, j, k int) float64 { return float64(i) })
	y := NewArray(nx, ny, nz).Fill(func(i, j, k int) float64 { return float64(j) * 2 })
	z := NewArray(nx, ny, nz).Fill(func(i, j, k int) float64 { return float64(k) * 3 })
	g := BuildRegularView(&Grid{X: x, Y: y, Z: z, NDims: 3})

	if g.X.Ny != 1 || g.X.Nz != 1 {
		t.Fatalf("x not collapsed: %dx%dx%d", g.X.Nx, g.X.Ny, g.X.Nz)
	}
	vec := g.Vec(AxisY)
	if len(vec) != ny || vec[2] != 4 {
		t.Errorf("y vector wrong: %v", vec)
	}
	if g.Vec(AxisZ)[4] != 12 {
		t.Errorf("z vector wrong: %v", g.Vec(AxisZ))
	}
}

func TestBuildRegularViewMappedUnchanged(t *testing.T) {
	z := NewArray(4, 1, 5).Fill(func(i, j, k int) float64 { return float64(i + k) })
	g := &Grid{
		X:      NewArray(4, 1, 1),
		Y:      NewArray(1, 1, 1),
		Z:      z,
		Mapped: true,
		NDims:  2,
	}
	if got := BuildRegularView(g); got != g {
		t.Error("mapped grid should pass through untouched")
	}
}

func TestZColumnMapped(t *testing.T) {
	z := NewArray(3, 1, 4).Fill(func(i, j, k int) float64 { return float64(i*10 + k) })
	g := &Grid{X: NewArray(3, 1, 1), Y: NewArray(1, 1, 1), Z: z, Mapped: true, NDims: 2}
	col := g.ZColumn(2, 0)
	want := []float64{20, 21, 22, 23}
	for k := range want {
		if col[k] != want[k] {
			t.Errorf("column[%d] = %f, want %f", k, col[k], want[k])
		}
	}
}
