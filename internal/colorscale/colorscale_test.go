package colorscale

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/mwaite/fieldview/internal/config"
	"github.com/mwaite/fieldview/internal/field"
)

func TestChooseDivergingForVelocity(t *testing.T) {
	data := mat.NewDense(2, 2, []float64{-1, 0.5, 2, -3})
	s, err := Choose(field.Parse("u"), data, config.Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if !s.Diverging {
		t.Error("u should get a diverging scale")
	}
	if s.Min != -3 || s.Max != 3 {
		t.Errorf("limits (%f, %f), want symmetric ±3", s.Min, s.Max)
	}
}

func TestChooseSequentialForDensity(t *testing.T) {
	data := mat.NewDense(2, 2, []float64{999, 1001, 1000, 1002})
	s, err := Choose(field.Parse("Density"), data, config.Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if s.Diverging {
		t.Error("density should get a sequential scale")
	}
	if s.Min != 999 || s.Max != 1002 {
		t.Errorf("limits (%f, %f), want data bounds", s.Min, s.Max)
	}
}

func TestChooseSDIsSequentialEvenForVelocity(t *testing.T) {
	data := mat.NewDense(1, 2, []float64{0, 0.4})
	s, err := Choose(field.Parse("SD u"), data, config.Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if s.Diverging {
		t.Error("spanwise deviations are non-negative; scale must be sequential")
	}
}

func TestChooseMeanVelocityStaysDiverging(t *testing.T) {
	data := mat.NewDense(1, 2, []float64{-0.2, 0.1})
	s, err := Choose(field.Parse("Mean u"), data, config.Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if !s.Diverging {
		t.Error("mean of a velocity component keeps the diverging scale")
	}
}

func TestExplicitColaxisOverrides(t *testing.T) {
	opt := config.Defaults()
	opt.Colaxis = []float64{-0.5, 0.5}
	data := mat.NewDense(1, 2, []float64{-100, 100})
	s, err := Choose(field.Parse("u"), data, opt)
	if err != nil {
		t.Fatal(err)
	}
	if s.Min != -0.5 || s.Max != 0.5 {
		t.Errorf("explicit colaxis must win, got (%f, %f)", s.Min, s.Max)
	}
}

func TestTrimWithoutAxisRangeFails(t *testing.T) {
	opt := config.Defaults()
	opt.Trim = true
	data := mat.NewDense(1, 1, []float64{1})
	_, err := Choose(field.Parse("u"), data, opt)
	var cfgErr *config.Error
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected config.Error, got %v", err)
	}
}

func TestTrimClampsAndIsIdempotent(t *testing.T) {
	data := mat.NewDense(1, 5, []float64{-10, -1, 0, 1, 10})
	Trim(data, -1, 1)
	want := []float64{-1, -1, 0, 1, 1}
	for j, w := range want {
		if data.At(0, j) != w {
			t.Errorf("trim[%d] = %f, want %f", j, data.At(0, j), w)
		}
	}
	once := mat.DenseCopyOf(data)
	Trim(data, -1, 1)
	if !mat.Equal(once, data) {
		t.Error("trim is not idempotent")
	}
}

func TestTrimPassesNaN(t *testing.T) {
	data := mat.NewDense(1, 2, []float64{math.NaN(), 5})
	Trim(data, 0, 1)
	if !math.IsNaN(data.At(0, 0)) {
		t.Error("NaN cells must survive trimming")
	}
	if data.At(0, 1) != 1 {
		t.Errorf("clamp failed: %f", data.At(0, 1))
	}
}

func TestLevelsStayInsideRange(t *testing.T) {
	ls := Levels(0, 10, 4)
	if len(ls) != 4 {
		t.Fatalf("got %d levels", len(ls))
	}
	for _, l := range ls {
		if l <= 0 || l >= 10 {
			t.Errorf("level %f escapes the open interval", l)
		}
	}
}
