package procgen

import (
	"math"
	"testing"

	"galaxy-server/internal/shared/errors"
)

func TestComposition_Normalize(t *testing.T) {
	c := Composition{Foliage: 1, Minerals: 2, Gases: 3, Water: 4}
	if err := c.Normalize(); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	want := Composition{Foliage: 0.1, Minerals: 0.2, Gases: 0.3, Water: 0.4}
	for _, pair := range [][2]float64{
		{c.Foliage, want.Foliage},
		{c.Minerals, want.Minerals},
		{c.Gases, want.Gases},
		{c.Water, want.Water},
	} {
		if math.Abs(pair[0]-pair[1]) > 1e-12 {
			t.Errorf("fraction = %v, want %v", pair[0], pair[1])
		}
	}
	if math.Abs(c.Sum()-1) > 1e-9 {
		t.Errorf("Sum() = %v, want 1", c.Sum())
	}
}

func TestComposition_NormalizeRejectsDegenerate(t *testing.T) {
	tests := []struct {
		name string
		c    Composition
	}{
		{"all zero", Composition{}},
		{"negative fraction", Composition{Foliage: -1, Minerals: 1, Gases: 1, Water: 1}},
		{"infinite", Composition{Foliage: math.Inf(1)}},
		{"nan", Composition{Water: math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.c
			err := c.Normalize()
			if err == nil {
				t.Fatal("Normalize() succeeded, want invariant violation")
			}
			if got := errors.GetType(err); got != errors.ErrorTypeInvariantViolation {
				t.Errorf("error type = %s, want %s", got, errors.ErrorTypeInvariantViolation)
			}
		})
	}
}

func TestEvenComposition(t *testing.T) {
	if EvenComposition.Sum() != 1 {
		t.Errorf("EvenComposition sums to %v", EvenComposition.Sum())
	}
}
