// Package curve derives discrete features from computed strategy
// curves: breakeven prices, extrema, the gamma/theta ratio and min-max
// normalization. Every function is pure and holds no state.
package curve

import (
	"errors"
	"fmt"
	"math"
)

// RatioEpsilon is added to |theta| in GammaThetaRatio to avoid division
// by zero where theta is exactly zero. It is part of the output
// contract: ratios at near-zero theta scale with 1/RatioEpsilon.
const RatioEpsilon = 1e-10

// ErrFlatCurve is returned by Normalize when max == min and the curve
// cannot be mapped onto [0,1].
var ErrFlatCurve = errors.New("flat curve cannot be normalized")

// Extremum is a curve sample identified as a global maximum or minimum.
type Extremum struct {
	Index int
	Value float64
}

// Breakevens returns the underlying prices at which the P&L curve
// crosses zero, found by scanning adjacent samples for sign changes and
// linearly interpolating each crossing. The grid must be ascending and
// hold at least 2 samples. The result may be empty.
func Breakevens(grid, pnl []float64) ([]float64, error) {
	if len(grid) < 2 {
		return nil, fmt.Errorf("breakeven analysis needs at least 2 grid points, got %d", len(grid))
	}
	if len(grid) != len(pnl) {
		return nil, fmt.Errorf("grid and pnl length mismatch: %d vs %d", len(grid), len(pnl))
	}
	if !Ascending(grid) {
		return nil, errors.New("price grid must be strictly ascending")
	}

	var crossings []float64
	for i := 0; i < len(pnl)-1; i++ {
		y1, y2 := pnl[i], pnl[i+1]
		if math.Signbit(y1) == math.Signbit(y2) {
			continue
		}
		if y2 == y1 {
			// Signbit differs only through signed zero; no real crossing.
			continue
		}
		x1, x2 := grid[i], grid[i+1]
		crossings = append(crossings, x1+(x2-x1)*(0-y1)/(y2-y1))
	}
	return crossings, nil
}

// Extrema returns the global maximum and minimum of the curve. Ties
// resolve to the first occurrence.
func Extrema(values []float64) (max, min Extremum, err error) {
	if len(values) == 0 {
		return Extremum{}, Extremum{}, errors.New("extrema of an empty curve")
	}
	max = Extremum{Index: 0, Value: values[0]}
	min = max
	for i, v := range values[1:] {
		if v > max.Value {
			max = Extremum{Index: i + 1, Value: v}
		}
		if v < min.Value {
			min = Extremum{Index: i + 1, Value: v}
		}
	}
	return max, min, nil
}

// GammaThetaRatio returns the elementwise gamma / (|theta| + RatioEpsilon)
// curve, a scalping-quality measure.
func GammaThetaRatio(gamma, theta []float64) ([]float64, error) {
	if len(gamma) != len(theta) {
		return nil, fmt.Errorf("gamma and theta length mismatch: %d vs %d", len(gamma), len(theta))
	}
	ratio := make([]float64, len(gamma))
	for i := range gamma {
		ratio[i] = gamma[i] / (math.Abs(theta[i]) + RatioEpsilon)
	}
	return ratio, nil
}

// Normalize maps the curve onto [0,1] via (v - min) / (max - min).
// A flat curve is a domain error, never a NaN-filled result.
func Normalize(values []float64) ([]float64, error) {
	maxE, minE, err := Extrema(values)
	if err != nil {
		return nil, err
	}
	span := maxE.Value - minE.Value
	if span == 0 {
		return nil, ErrFlatCurve
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - minE.Value) / span
	}
	return out, nil
}

// Ascending reports whether xs is strictly increasing.
func Ascending(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return false
		}
	}
	return true
}

// NearestIndex returns the index of the grid sample closest to x.
// Used by callers to read a curve value at the current spot.
func NearestIndex(grid []float64, x float64) int {
	best := 0
	bestDist := math.Abs(grid[0] - x)
	for i, g := range grid[1:] {
		if d := math.Abs(g - x); d < bestDist {
			best, bestDist = i+1, d
		}
	}
	return best
}
