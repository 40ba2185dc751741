// Package utils collects small numeric helpers shared across the
// engine.
package utils

import "math"

// Distance computes √(x²+y²), used by the Distance/DistanceBelow
// condition threshold types.
func Distance(x, y float64) float64 {
	return math.Sqrt(x*x + y*y)
}

// Clip clamps v to [lo, hi].
func Clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Shuffle performs an in-place Fisher-Yates shuffle using rng to draw
// indices, used by random_remap installation and Parent's random child
// selection.
func Shuffle(n int, rng func(n int) int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := rng(i + 1)
		swap(i, j)
	}
}
