package eos

import (
	"math"
	"testing"
)

func TestDensityAtReference(t *testing.T) {
	// At the reference temperature with no salinity only the offset
	// survives.
	if got := Density(0, TempRef); got != RhoRef {
		t.Errorf("Density(0, TempRef) = %f, want %f", got, RhoRef)
	}
}

func TestDensitySaltIncreases(t *testing.T) {
	fresh := Density(0, 10)
	salty := Density(35, 10)
	if salty <= fresh {
		t.Errorf("salinity must raise density: %f <= %f", salty, fresh)
	}
	if math.Abs((salty-fresh)-35*0.78) > 1e-9 {
		t.Errorf("salt contribution off: %f", salty-fresh)
	}
}

func TestDensityWarmDecreases(t *testing.T) {
	cool := Density(0, 16)
	warm := Density(0, 25)
	if warm >= cool {
		t.Errorf("warming above the reference must lower density: %f >= %f", warm, cool)
	}
}
