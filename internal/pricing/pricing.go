package pricing

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// OptionType discriminates European calls and puts.
type OptionType int

const (
	Call OptionType = iota
	Put
)

func (t OptionType) String() string {
	switch t {
	case Call:
		return "call"
	case Put:
		return "put"
	default:
		return fmt.Sprintf("OptionType(%d)", int(t))
	}
}

// ErrInvalidInput is wrapped by all domain errors returned from this package.
var ErrInvalidInput = errors.New("invalid pricing input")

// Greeks bundles an option's theoretical value and its sensitivities.
// Theta is daily (yearly/365); Vega and Rho are per 1 percentage-point
// move in volatility and rate respectively.
type Greeks struct {
	Price float64
	Delta float64
	Gamma float64
	Theta float64
	Vega  float64
	Rho   float64
}

var stdNormal = distuv.UnitNormal

// validate rejects inputs that would feed a log or a division with a
// non-positive value. Errors name the offending input, per contract.
func validate(s, k, t, sigma float64) error {
	switch {
	case s <= 0:
		return fmt.Errorf("%w: spot must be positive, got %g", ErrInvalidInput, s)
	case k <= 0:
		return fmt.Errorf("%w: strike must be positive, got %g", ErrInvalidInput, k)
	case t <= 0:
		return fmt.Errorf("%w: time to expiry must be positive, got %g", ErrInvalidInput, t)
	case sigma <= 0:
		return fmt.Errorf("%w: volatility must be positive, got %g", ErrInvalidInput, sigma)
	}
	return nil
}

// terms holds the intermediates shared by every formula so the bundled
// API prices an option without recomputing d1/d2 per Greek.
type terms struct {
	d1       float64
	d2       float64
	sqrtT    float64
	discount float64 // e^(-rT)
}

func newTerms(s, k, t, r, sigma float64) terms {
	sqrtT := math.Sqrt(t)
	d1 := (math.Log(s/k) + (r+0.5*sigma*sigma)*t) / (sigma * sqrtT)
	return terms{
		d1:       d1,
		d2:       d1 - sigma*sqrtT,
		sqrtT:    sqrtT,
		discount: math.Exp(-r * t),
	}
}

func (tm terms) price(s, k float64, typ OptionType) float64 {
	if typ == Call {
		return s*stdNormal.CDF(tm.d1) - k*tm.discount*stdNormal.CDF(tm.d2)
	}
	return k*tm.discount*stdNormal.CDF(-tm.d2) - s*stdNormal.CDF(-tm.d1)
}

func (tm terms) delta(typ OptionType) float64 {
	if typ == Call {
		return stdNormal.CDF(tm.d1)
	}
	return stdNormal.CDF(tm.d1) - 1
}

func (tm terms) gamma(s, sigma float64) float64 {
	return stdNormal.Prob(tm.d1) / (s * sigma * tm.sqrtT)
}

// theta returns the daily theta (yearly/365), the convention all
// downstream consumers expect.
func (tm terms) theta(s, k, r, sigma float64, typ OptionType) float64 {
	decay := -s * stdNormal.Prob(tm.d1) * sigma / (2 * tm.sqrtT)
	if typ == Call {
		return (decay - r*k*tm.discount*stdNormal.CDF(tm.d2)) / 365
	}
	return (decay + r*k*tm.discount*stdNormal.CDF(-tm.d2)) / 365
}

func (tm terms) vega(s float64) float64 {
	return s * tm.sqrtT * stdNormal.Prob(tm.d1) / 100
}

func (tm terms) rho(k, t float64, typ OptionType) float64 {
	if typ == Call {
		return k * t * tm.discount * stdNormal.CDF(tm.d2) / 100
	}
	return -k * t * tm.discount * stdNormal.CDF(-tm.d2) / 100
}

// Price returns the Black-Scholes value of a European option.
// s is the spot price, k the strike, t the time to expiry in years,
// r the annualized risk-free rate and sigma the annualized volatility.
func Price(s, k, t, r, sigma float64, typ OptionType) (float64, error) {
	if err := validate(s, k, t, sigma); err != nil {
		return 0, err
	}
	return newTerms(s, k, t, r, sigma).price(s, k, typ), nil
}

// Delta returns the option's sensitivity to the spot price.
// Call delta lies in [0,1], put delta in [-1,0].
func Delta(s, k, t, r, sigma float64, typ OptionType) (float64, error) {
	if err := validate(s, k, t, sigma); err != nil {
		return 0, err
	}
	return newTerms(s, k, t, r, sigma).delta(typ), nil
}

// Gamma returns the delta's sensitivity to the spot price. It is
// identical for calls and puts and always non-negative.
func Gamma(s, k, t, r, sigma float64) (float64, error) {
	if err := validate(s, k, t, sigma); err != nil {
		return 0, err
	}
	return newTerms(s, k, t, r, sigma).gamma(s, sigma), nil
}

// Theta returns the daily time decay of the option value.
func Theta(s, k, t, r, sigma float64, typ OptionType) (float64, error) {
	if err := validate(s, k, t, sigma); err != nil {
		return 0, err
	}
	return newTerms(s, k, t, r, sigma).theta(s, k, r, sigma, typ), nil
}

// Vega returns the price change per 1 percentage-point move in volatility.
func Vega(s, k, t, r, sigma float64) (float64, error) {
	if err := validate(s, k, t, sigma); err != nil {
		return 0, err
	}
	return newTerms(s, k, t, r, sigma).vega(s), nil
}

// Rho returns the price change per 1 percentage-point move in the rate.
func Rho(s, k, t, r, sigma float64, typ OptionType) (float64, error) {
	if err := validate(s, k, t, sigma); err != nil {
		return 0, err
	}
	return newTerms(s, k, t, r, sigma).rho(k, t, typ), nil
}

// PriceAndGreeks computes the value and all sensitivities from one set
// of shared intermediates. Results are numerically identical to the
// individual operations.
func PriceAndGreeks(s, k, t, r, sigma float64, typ OptionType) (Greeks, error) {
	if err := validate(s, k, t, sigma); err != nil {
		return Greeks{}, err
	}
	tm := newTerms(s, k, t, r, sigma)
	return Greeks{
		Price: tm.price(s, k, typ),
		Delta: tm.delta(typ),
		Gamma: tm.gamma(s, sigma),
		Theta: tm.theta(s, k, r, sigma, typ),
		Vega:  tm.vega(s),
		Rho:   tm.rho(k, t, typ),
	}, nil
}
