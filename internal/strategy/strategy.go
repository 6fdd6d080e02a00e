package strategy

import (
	"fmt"

	"optcurve/internal/pricing"
)

// Side is the direction of a strategy leg.
type Side int

const (
	Long Side = iota
	Short
)

func (s Side) String() string {
	switch s {
	case Long:
		return "long"
	case Short:
		return "short"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// multiplier is the signed exposure factor applied to a leg's
// contributions: +1 for long, -1 for short.
func (s Side) multiplier() float64 {
	if s == Short {
		return -1
	}
	return 1
}

// Position is one leg of an options strategy. EntryPremium is the
// price paid or received per unit when the position was opened; it is
// cost-basis bookkeeping for the caller and never feeds the pricing
// loop — P&L is measured against the recomputed theoretical value at
// the current spot.
type Position struct {
	Type         pricing.OptionType
	Side         Side
	Strike       float64
	Quantity     int
	EntryPremium float64
}

func (p Position) Validate() error {
	if p.Strike <= 0 {
		return fmt.Errorf("position strike must be positive, got %g", p.Strike)
	}
	if p.Quantity <= 0 {
		return fmt.Errorf("position quantity must be positive, got %d", p.Quantity)
	}
	if p.EntryPremium < 0 {
		return fmt.Errorf("position entry premium cannot be negative, got %g", p.EntryPremium)
	}
	return nil
}

// Market is an immutable snapshot of the pricing context shared by all
// legs: one spot, one rate, one volatility, one expiry.
type Market struct {
	Spot         float64
	RiskFreeRate float64
	Volatility   float64
	DaysToExpiry int
}

// TimeToExpiry converts the day count to year fractions.
func (m Market) TimeToExpiry() float64 {
	return float64(m.DaysToExpiry) / 365
}

func (m Market) Validate() error {
	if m.Spot <= 0 {
		return fmt.Errorf("market spot must be positive, got %g", m.Spot)
	}
	if m.RiskFreeRate < 0 {
		return fmt.Errorf("market risk-free rate cannot be negative, got %g", m.RiskFreeRate)
	}
	if m.Volatility <= 0 {
		return fmt.Errorf("market volatility must be positive, got %g", m.Volatility)
	}
	if m.DaysToExpiry <= 0 {
		return fmt.Errorf("market days to expiry must be positive, got %d", m.DaysToExpiry)
	}
	return nil
}

// Metrics holds the aggregated strategy curves, one value per grid
// sample. All slices have the same length as the price grid. A Metrics
// is produced fresh per computation and never mutated afterwards.
type Metrics struct {
	Prices []float64 // echoed price grid
	PnL    []float64
	Delta  []float64
	Gamma  []float64
	Theta  []float64
	Vega   []float64
}

func newMetrics(grid []float64) *Metrics {
	prices := make([]float64, len(grid))
	copy(prices, grid)
	return &Metrics{
		Prices: prices,
		PnL:    make([]float64, len(grid)),
		Delta:  make([]float64, len(grid)),
		Gamma:  make([]float64, len(grid)),
		Theta:  make([]float64, len(grid)),
		Vega:   make([]float64, len(grid)),
	}
}
