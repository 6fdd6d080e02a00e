package pricing

import "testing"

func TestGammaSurface_Shape(t *testing.T) {
	strikes := []float64{80, 90, 100, 110, 120}
	days := []float64{1, 5, 10, 30}

	surface, err := GammaSurface(100, 0.05, 0.2, strikes, days)
	if err != nil {
		t.Fatal(err)
	}

	if len(surface) != len(days) {
		t.Fatalf("expected %d rows, got %d", len(days), len(surface))
	}
	for i, row := range surface {
		if len(row) != len(strikes) {
			t.Fatalf("row %d: expected %d cells, got %d", i, len(strikes), len(row))
		}
		for j, g := range row {
			if g < 0 {
				t.Errorf("negative gamma at day %g strike %g: %v", days[i], strikes[j], g)
			}
		}
	}
}

func TestGammaSurface_CellsMatchGamma(t *testing.T) {
	strikes := []float64{90, 110}
	days := []float64{10}

	surface, err := GammaSurface(100, 0.05, 0.2, strikes, days)
	if err != nil {
		t.Fatal(err)
	}

	for j, k := range strikes {
		want, err := Gamma(100, k, 10.0/365, 0.05, 0.2)
		if err != nil {
			t.Fatal(err)
		}
		if surface[0][j] != want {
			t.Errorf("surface cell strike %g: got %v, want %v", k, surface[0][j], want)
		}
	}
}

func TestGammaSurface_InvalidInputs(t *testing.T) {
	if _, err := GammaSurface(100, 0.05, 0.2, nil, []float64{10}); err == nil {
		t.Error("expected error for empty strikes")
	}
	if _, err := GammaSurface(100, 0.05, 0.2, []float64{100}, nil); err == nil {
		t.Error("expected error for empty days")
	}
	// A non-positive day must fail cell validation, not produce NaN.
	if _, err := GammaSurface(100, 0.05, 0.2, []float64{100}, []float64{0}); err == nil {
		t.Error("expected error for zero days to expiry")
	}
}
