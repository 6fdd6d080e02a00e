package pricing

import "fmt"

// GammaSurface evaluates gamma over the cross product of strikes and
// days to expiry, for building a surface chart. The result is indexed
// [day][strike]. Days are converted to year fractions; every cell is
// subject to the same domain validation as Gamma.
func GammaSurface(spot, r, sigma float64, strikes, days []float64) ([][]float64, error) {
	if len(strikes) == 0 {
		return nil, fmt.Errorf("%w: no strikes supplied", ErrInvalidInput)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: no expiry days supplied", ErrInvalidInput)
	}

	surface := make([][]float64, len(days))
	for i, d := range days {
		t := d / 365
		row := make([]float64, len(strikes))
		for j, k := range strikes {
			g, err := Gamma(spot, k, t, r, sigma)
			if err != nil {
				return nil, fmt.Errorf("surface cell (day %g, strike %g): %w", d, k, err)
			}
			row[j] = g
		}
		surface[i] = row
	}
	return surface, nil
}
