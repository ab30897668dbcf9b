package procgen

import (
	"math"

	"galaxy-server/internal/shared/errors"
)

// Composition is the surface makeup of a planet. After Normalize the four
// fractions are non-negative and sum to 1.
type Composition struct {
	Foliage  float64 `json:"foliage"`
	Minerals float64 `json:"minerals"`
	Gases    float64 `json:"gases"`
	Water    float64 `json:"water"`
}

// EvenComposition is the split used when the raw draws cannot be normalized.
var EvenComposition = Composition{Foliage: 0.25, Minerals: 0.25, Gases: 0.25, Water: 0.25}

// Sum returns the total of the four fractions.
func (c Composition) Sum() float64 {
	return c.Foliage + c.Minerals + c.Gases + c.Water
}

// Normalize scales the fractions so they sum to 1. A zero or non-finite
// total, or any negative fraction, cannot be normalized and is reported as
// an invariant violation with c left unchanged.
func (c *Composition) Normalize() error {
	if c.Foliage < 0 || c.Minerals < 0 || c.Gases < 0 || c.Water < 0 {
		return errors.InvariantViolationf("composition has a negative fraction: %+v", *c)
	}

	sum := c.Sum()
	if sum == 0 || math.IsInf(sum, 0) || math.IsNaN(sum) {
		return errors.InvariantViolationf("composition sum %v cannot be normalized", sum)
	}

	scale := 1.0 / sum
	c.Foliage *= scale
	c.Minerals *= scale
	c.Gases *= scale
	c.Water *= scale
	return nil
}
