// Package rawio reads simulation snapshot directories: one flat binary
// file of little-endian float64 per variable per output index, named
// <var>.<index>, plus xgrid/ygrid/zgrid coordinate files. Nothing outside
// this package depends on the on-disk layout.
package rawio

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/mwaite/fieldview/internal/grid"
)

// Store reads snapshots for a fixed grid shape out of one directory. It
// implements field.Reader.
type Store struct {
	dir        string
	nx, ny, nz int
}

func Open(dir string, nx, ny, nz int) *Store {
	if ny < 1 {
		ny = 1
	}
	return &Store{dir: dir, nx: nx, ny: ny, nz: nz}
}

func (s *Store) path(name string, step int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s.%d", name, step))
}

// Has reports whether at least the first output index of a variable
// exists.
func (s *Store) Has(name string) bool {
	if _, err := os.Stat(s.path(name, 0)); err == nil {
		return true
	}
	// Runs restarted mid-sequence may not have index 0 on disk.
	matches, _ := filepath.Glob(filepath.Join(s.dir, name+".*"))
	return len(matches) > 0
}

// Read loads one variable at one output index as a full-domain array.
func (s *Store) Read(name string, step int) (*grid.Array, error) {
	return s.readFile(s.path(name, step))
}

func (s *Store) readFile(path string) (*grid.Array, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	want := s.nx * s.ny * s.nz
	if len(raw) != 8*want {
		return nil, fmt.Errorf("rawio: %s: got %d bytes, want %d (%dx%dx%d float64)",
			path, len(raw), 8*want, s.nx, s.ny, s.nz)
	}
	data := make([]float64, want)
	for i := range data {
		data[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[8*i:]))
	}
	return grid.FromSlice(s.nx, s.ny, s.nz, data), nil
}

// WriteField writes a full-domain array in the store's on-disk format.
// Used by tests and by tools that stage data for plotting.
func (s *Store) WriteField(name string, step int, a *grid.Array) error {
	raw := make([]byte, 8*a.Len())
	for i, v := range a.Raw() {
		binary.LittleEndian.PutUint64(raw[8*i:], math.Float64bits(v))
	}
	return os.WriteFile(s.path(name, step), raw, 0644)
}

// ReadGrid builds the grid model from the coordinate files. Mapped grids
// keep the full z array; unmapped grids collapse to separable vectors.
func (s *Store) ReadGrid(ndims int, mapped bool) (*grid.Grid, error) {
	x, err := s.readFile(filepath.Join(s.dir, "xgrid"))
	if err != nil {
		return nil, fmt.Errorf("rawio: x coordinates: %w", err)
	}
	z, err := s.readFile(filepath.Join(s.dir, "zgrid"))
	if err != nil {
		return nil, fmt.Errorf("rawio: z coordinates: %w", err)
	}
	y := grid.NewArray(1, 1, 1)
	if ndims == 3 {
		if y, err = s.readFile(filepath.Join(s.dir, "ygrid")); err != nil {
			return nil, fmt.Errorf("rawio: y coordinates: %w", err)
		}
	}
	g := &grid.Grid{X: x, Y: y, Z: z, Mapped: mapped, NDims: ndims}
	return grid.BuildRegularView(g), nil
}
