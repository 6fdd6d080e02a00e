// Package report condenses computed strategy curves into the summary a
// caller presents: breakevens, payoff extrema, the at-spot Greeks and
// the entry cost basis.
package report

import (
	"errors"

	"github.com/shopspring/decimal"

	"optcurve/internal/curve"
	"optcurve/internal/strategy"
)

// PricePoint is a curve value at an underlying price.
type PricePoint struct {
	Price float64
	Value float64
}

// AtSpot holds the strategy curves sampled at the grid point nearest
// the current spot.
type AtSpot struct {
	PnL   float64
	Delta float64
	Gamma float64
	Theta float64
	Vega  float64
}

// Summary contains the headline analytics for one computation.
type Summary struct {
	Breakevens []float64
	MaxProfit  PricePoint
	MaxLoss    PricePoint
	AtSpot     AtSpot
	NetPremium decimal.Decimal
}

// Build derives a Summary from computed metrics. The metrics' price
// grid must be the one the computation ran over.
func Build(m *strategy.Metrics, positions []strategy.Position, spot float64) (*Summary, error) {
	if m == nil || len(m.Prices) == 0 {
		return nil, errors.New("no metrics to summarize")
	}

	breakevens, err := curve.Breakevens(m.Prices, m.PnL)
	if err != nil {
		return nil, err
	}

	maxE, minE, err := curve.Extrema(m.PnL)
	if err != nil {
		return nil, err
	}

	i := curve.NearestIndex(m.Prices, spot)

	return &Summary{
		Breakevens: breakevens,
		MaxProfit:  PricePoint{Price: m.Prices[maxE.Index], Value: maxE.Value},
		MaxLoss:    PricePoint{Price: m.Prices[minE.Index], Value: minE.Value},
		AtSpot: AtSpot{
			PnL:   m.PnL[i],
			Delta: m.Delta[i],
			Gamma: m.Gamma[i],
			Theta: m.Theta[i],
			Vega:  m.Vega[i],
		},
		NetPremium: strategy.NetPremium(positions),
	}, nil
}
