// Package grid constructs the ascending price grids the strategy
// engine is evaluated over.
package grid

import "fmt"

// Build returns samples evenly spaced over [spot*lower, spot*upper],
// the conventional evaluation window (typically 0.7 .. 1.3 at 1000
// samples). The result is strictly ascending.
func Build(spot, lower, upper float64, samples int) ([]float64, error) {
	if spot <= 0 {
		return nil, fmt.Errorf("spot must be positive, got %g", spot)
	}
	if lower <= 0 || upper <= lower {
		return nil, fmt.Errorf("grid factors must satisfy 0 < lower < upper, got %g and %g", lower, upper)
	}
	if samples < 2 {
		return nil, fmt.Errorf("grid needs at least 2 samples, got %d", samples)
	}
	return Linspace(spot*lower, spot*upper, samples), nil
}

// Linspace returns n evenly spaced samples from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	step := (hi - lo) / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
