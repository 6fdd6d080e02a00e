package strategy

import (
	"context"
	"math"
	"testing"

	"optcurve/internal/pricing"
)

func testMarket() Market {
	return Market{
		Spot:         100,
		RiskFreeRate: 0.05,
		Volatility:   0.2,
		DaysToExpiry: 30,
	}
}

func testGrid() []float64 {
	// Ascending grid that contains the spot exactly.
	grid := make([]float64, 61)
	for i := range grid {
		grid[i] = 70 + float64(i)
	}
	return grid
}

func TestComputeMetrics_EmptyPositions(t *testing.T) {
	e := NewEngine(1)
	grid := testGrid()

	m, err := e.ComputeMetrics(context.Background(), nil, grid, testMarket())
	if err != nil {
		t.Fatal(err)
	}

	if len(m.PnL) != len(grid) {
		t.Fatalf("expected %d samples, got %d", len(grid), len(m.PnL))
	}
	for i := range grid {
		if m.PnL[i] != 0 || m.Delta[i] != 0 || m.Gamma[i] != 0 || m.Theta[i] != 0 || m.Vega[i] != 0 {
			t.Fatalf("expected all-zero curves for empty strategy, index %d nonzero", i)
		}
	}
}

func TestComputeMetrics_ArrayLengths(t *testing.T) {
	e := NewEngine(1)
	grid := testGrid()
	positions := []Position{{Type: pricing.Call, Side: Long, Strike: 100, Quantity: 1}}

	m, err := e.ComputeMetrics(context.Background(), positions, grid, testMarket())
	if err != nil {
		t.Fatal(err)
	}

	for name, arr := range map[string][]float64{
		"prices": m.Prices, "pnl": m.PnL, "delta": m.Delta,
		"gamma": m.Gamma, "theta": m.Theta, "vega": m.Vega,
	} {
		if len(arr) != len(grid) {
			t.Errorf("%s length %d, want %d", name, len(arr), len(grid))
		}
	}
}

func TestComputeMetrics_PnLZeroAtSpot(t *testing.T) {
	e := NewEngine(1)
	grid := testGrid() // contains 100 exactly
	positions := []Position{{Type: pricing.Call, Side: Long, Strike: 105, Quantity: 2}}

	m, err := e.ComputeMetrics(context.Background(), positions, grid, testMarket())
	if err != nil {
		t.Fatal(err)
	}

	// P&L is measured against the entry value at spot, so the curve
	// passes through zero at the spot grid point.
	spotIdx := 30
	if grid[spotIdx] != 100 {
		t.Fatalf("test grid broken: expected spot at index 30, got %g", grid[spotIdx])
	}
	if math.Abs(m.PnL[spotIdx]) > 1e-9 {
		t.Errorf("expected zero P&L at spot, got %v", m.PnL[spotIdx])
	}
}

func TestComputeMetrics_ShortMirrorsLong(t *testing.T) {
	e := NewEngine(1)
	grid := testGrid()
	long := []Position{{Type: pricing.Put, Side: Long, Strike: 95, Quantity: 3}}
	short := []Position{{Type: pricing.Put, Side: Short, Strike: 95, Quantity: 3}}

	ml, err := e.ComputeMetrics(context.Background(), long, grid, testMarket())
	if err != nil {
		t.Fatal(err)
	}
	ms, err := e.ComputeMetrics(context.Background(), short, grid, testMarket())
	if err != nil {
		t.Fatal(err)
	}

	for i := range grid {
		if ml.PnL[i] != -ms.PnL[i] {
			t.Fatalf("pnl not mirrored at index %d: %v vs %v", i, ml.PnL[i], ms.PnL[i])
		}
		if ml.Delta[i] != -ms.Delta[i] {
			t.Fatalf("delta not mirrored at index %d", i)
		}
	}
}

func TestComputeMetrics_QuantityScales(t *testing.T) {
	e := NewEngine(1)
	grid := testGrid()
	one := []Position{{Type: pricing.Call, Side: Long, Strike: 100, Quantity: 1}}
	five := []Position{{Type: pricing.Call, Side: Long, Strike: 100, Quantity: 5}}

	m1, err := e.ComputeMetrics(context.Background(), one, grid, testMarket())
	if err != nil {
		t.Fatal(err)
	}
	m5, err := e.ComputeMetrics(context.Background(), five, grid, testMarket())
	if err != nil {
		t.Fatal(err)
	}

	for i := range grid {
		if math.Abs(m5.Vega[i]-5*m1.Vega[i]) > 1e-12 {
			t.Fatalf("vega does not scale with quantity at index %d", i)
		}
	}
}

func TestComputeMetrics_DuplicateLegsAddExposure(t *testing.T) {
	e := NewEngine(1)
	grid := testGrid()
	single := []Position{{Type: pricing.Call, Side: Long, Strike: 100, Quantity: 2}}
	duplicated := []Position{
		{Type: pricing.Call, Side: Long, Strike: 100, Quantity: 1},
		{Type: pricing.Call, Side: Long, Strike: 100, Quantity: 1},
	}

	ms, err := e.ComputeMetrics(context.Background(), single, grid, testMarket())
	if err != nil {
		t.Fatal(err)
	}
	md, err := e.ComputeMetrics(context.Background(), duplicated, grid, testMarket())
	if err != nil {
		t.Fatal(err)
	}

	for i := range grid {
		if math.Abs(ms.PnL[i]-md.PnL[i]) > 1e-9 {
			t.Fatalf("duplicate legs diverge from doubled quantity at index %d", i)
		}
	}
}

func TestComputeMetrics_ParallelMatchesSerial(t *testing.T) {
	grid := testGrid()
	positions := []Position{
		{Type: pricing.Call, Side: Long, Strike: 105, Quantity: 1},
		{Type: pricing.Put, Side: Long, Strike: 95, Quantity: 1},
		{Type: pricing.Call, Side: Short, Strike: 110, Quantity: 2},
	}

	serial, err := NewEngine(1).ComputeMetrics(context.Background(), positions, grid, testMarket())
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := NewEngine(4).ComputeMetrics(context.Background(), positions, grid, testMarket())
	if err != nil {
		t.Fatal(err)
	}

	for i := range grid {
		if serial.PnL[i] != parallel.PnL[i] {
			t.Fatalf("parallel pnl differs at index %d: %v vs %v", i, serial.PnL[i], parallel.PnL[i])
		}
		if serial.Theta[i] != parallel.Theta[i] {
			t.Fatalf("parallel theta differs at index %d", i)
		}
	}
}

func TestComputeMetrics_GreeksNotOffsetByEntry(t *testing.T) {
	e := NewEngine(1)
	grid := testGrid()
	mkt := testMarket()
	positions := []Position{{Type: pricing.Call, Side: Long, Strike: 100, Quantity: 1}}

	m, err := e.ComputeMetrics(context.Background(), positions, grid, mkt)
	if err != nil {
		t.Fatal(err)
	}

	// Delta at a grid point is the instantaneous sensitivity, equal to
	// the pricer's delta at that price with no entry baseline applied.
	want, err := pricing.Delta(grid[0], 100, mkt.TimeToExpiry(), mkt.RiskFreeRate, mkt.Volatility, pricing.Call)
	if err != nil {
		t.Fatal(err)
	}
	if m.Delta[0] != want {
		t.Errorf("delta offset by entry baseline: got %v, want %v", m.Delta[0], want)
	}
}

func TestComputeMetrics_InvalidInputs(t *testing.T) {
	e := NewEngine(1)
	grid := testGrid()
	ctx := context.Background()

	if _, err := e.ComputeMetrics(ctx, nil, nil, testMarket()); err == nil {
		t.Error("expected error for empty grid")
	}
	if _, err := e.ComputeMetrics(ctx, nil, []float64{110, 100, 90}, testMarket()); err == nil {
		t.Error("expected error for descending grid")
	}
	if _, err := e.ComputeMetrics(ctx, nil, []float64{-10, 50, 100}, testMarket()); err == nil {
		t.Error("expected error for non-positive grid prices")
	}

	bad := testMarket()
	bad.Volatility = 0
	if _, err := e.ComputeMetrics(ctx, nil, grid, bad); err == nil {
		t.Error("expected error for zero volatility")
	}

	positions := []Position{{Type: pricing.Call, Side: Long, Strike: -5, Quantity: 1}}
	if _, err := e.ComputeMetrics(ctx, positions, grid, testMarket()); err == nil {
		t.Error("expected error for negative strike")
	}

	positions = []Position{{Type: pricing.Call, Side: Long, Strike: 100, Quantity: 0}}
	if _, err := e.ComputeMetrics(ctx, positions, grid, testMarket()); err == nil {
		t.Error("expected error for zero quantity")
	}
}

func TestMarket_TimeToExpiry(t *testing.T) {
	m := Market{Spot: 100, Volatility: 0.2, DaysToExpiry: 365}
	if m.TimeToExpiry() != 1 {
		t.Errorf("expected 1 year, got %v", m.TimeToExpiry())
	}
}
