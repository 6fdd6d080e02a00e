package strategy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"optcurve/internal/curve"
	"optcurve/internal/pricing"
)

// Engine aggregates per-option prices and Greeks into strategy-level
// curves over a price grid. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	workers int
}

// NewEngine returns an engine that evaluates the grid with the given
// number of workers. Values below 2 mean serial evaluation. Grid
// samples are independent, so parallelism never changes the result:
// each index is written by exactly one goroutine and the per-index
// summation order over positions is fixed.
func NewEngine(workers int) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{workers: workers}
}

// ComputeMetrics evaluates the strategy across the grid. An empty
// position set is a valid degenerate strategy and yields all-zero
// curves. The grid must be non-empty, strictly ascending and positive.
func (e *Engine) ComputeMetrics(ctx context.Context, positions []Position, grid []float64, mkt Market) (*Metrics, error) {
	if err := mkt.Validate(); err != nil {
		return nil, err
	}
	for i, p := range positions {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
	}
	if len(grid) == 0 {
		return nil, errors.New("price grid is empty")
	}
	if grid[0] <= 0 {
		return nil, fmt.Errorf("price grid must be positive, starts at %g", grid[0])
	}
	if !curve.Ascending(grid) {
		return nil, errors.New("price grid must be strictly ascending")
	}

	t := mkt.TimeToExpiry()

	// Entry fair value per leg at the current spot. This, not
	// EntryPremium, is the P&L baseline.
	entry := make([]float64, len(positions))
	for j, p := range positions {
		v, err := pricing.Price(mkt.Spot, p.Strike, t, mkt.RiskFreeRate, mkt.Volatility, p.Type)
		if err != nil {
			return nil, fmt.Errorf("position %d entry value: %w", j, err)
		}
		entry[j] = v
	}

	m := newMetrics(grid)

	if e.workers < 2 || len(grid) < e.workers {
		for i, s := range grid {
			if err := evalPoint(m, i, s, positions, entry, t, mkt); err != nil {
				return nil, err
			}
		}
	} else {
		g, _ := errgroup.WithContext(ctx)
		chunk := (len(grid) + e.workers - 1) / e.workers
		for start := 0; start < len(grid); start += chunk {
			end := start + chunk
			if end > len(grid) {
				end = len(grid)
			}
			start, end := start, end
			g.Go(func() error {
				for i := start; i < end; i++ {
					if err := evalPoint(m, i, grid[i], positions, entry, t, mkt); err != nil {
						return err
					}
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	slog.Debug("strategy metrics computed",
		"positions", len(positions),
		"samples", len(grid),
		"workers", e.workers,
	)
	return m, nil
}

// evalPoint accumulates every position's contribution at grid index i.
// The loop order over positions is the same on every run so repeated
// computations produce bit-identical floating-point sums.
func evalPoint(m *Metrics, i int, s float64, positions []Position, entry []float64, t float64, mkt Market) error {
	for j, p := range positions {
		g, err := pricing.PriceAndGreeks(s, p.Strike, t, mkt.RiskFreeRate, mkt.Volatility, p.Type)
		if err != nil {
			return fmt.Errorf("position %d at price %g: %w", j, s, err)
		}
		mult := float64(p.Quantity) * p.Side.multiplier()
		m.PnL[i] += (g.Price - entry[j]) * mult
		m.Delta[i] += g.Delta * mult
		m.Gamma[i] += g.Gamma * mult
		m.Theta[i] += g.Theta * mult
		m.Vega[i] += g.Vega * mult
	}
	return nil
}
